// Package tracker owns the task and template collections together with the
// per-task timers. Every mutation goes through Store.
package tracker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nissyi-gh/tasksplit/internal/apperr"
	"github.com/nissyi-gh/tasksplit/internal/clock"
	"github.com/nissyi-gh/tasksplit/internal/model"
)

// Store is the single source of truth for tasks, templates and timers.
// It is not safe for concurrent use; callers drive it from one event loop.
type Store struct {
	clock     clock.Clock
	newID     func() string
	tasks     []model.Task
	templates []model.TaskTemplate

	// timers maps a task id to its running entry: "" for the task itself,
	// otherwise the running subtask id.
	timers  map[string]string
	pending map[string]pending
	seq     Token

	onChange func()
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for creation and completion stamps.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDs sets the id generator.
func WithIDs(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:   clock.System,
		newID:   uuid.NewString,
		timers:  make(map[string]string),
		pending: make(map[string]pending),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a hook called after every effective mutation.
func (s *Store) OnChange(fn func()) { s.onChange = fn }

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Tasks returns a deep copy of all tasks, newest first.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = copyTask(t)
	}
	return out
}

// Task returns a copy of a single task.
func (s *Store) Task(id string) (model.Task, error) {
	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, apperr.NotFound("task", id)
	}
	return copyTask(s.tasks[i]), nil
}

// Templates returns a copy of the templates in declaration order.
func (s *Store) Templates() []model.TaskTemplate {
	out := make([]model.TaskTemplate, len(s.templates))
	for i, tpl := range s.templates {
		out[i] = model.NewTemplate(tpl.ID, tpl.Trigger, tpl.Subtasks)
	}
	return out
}

// AddTask creates a task, optionally pre-populated with one subtask per
// step, and puts it at the top of the list.
func (s *Store) AddTask(title string, steps ...string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, apperr.Invalid("title", "must not be empty")
	}
	t := model.NewTask(s.newID(), title, s.clock.Now())
	t.Subtasks = s.instantiate(steps)
	s.tasks = append([]model.Task{t}, s.tasks...)
	s.changed()
	return copyTask(t), nil
}

// SetDescription replaces a task's free-form description.
func (s *Store) SetDescription(taskID, desc string) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	s.tasks[i].Description = strings.TrimSpace(desc)
	s.changed()
}

// DeleteTask removes a task and its subtasks. Its timer stops and any
// pending decomposition is cancelled.
func (s *Store) DeleteTask(id string) {
	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	delete(s.timers, id)
	s.cancelPending(id)
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.changed()
}

// AddSubtask appends a step to a task. Unknown tasks are ignored.
func (s *Store) AddSubtask(taskID, title string) (model.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Subtask{}, apperr.Invalid("title", "must not be empty")
	}
	i := s.taskIndex(taskID)
	if i < 0 {
		return model.Subtask{}, nil
	}
	sub := model.NewSubtask(s.newID(), title)
	s.tasks[i].Subtasks = append(s.tasks[i].Subtasks, sub)
	s.changed()
	return sub, nil
}

// DeleteSubtask removes a step, stopping its timer if it was running.
func (s *Store) DeleteSubtask(taskID, subtaskID string) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	j := s.tasks[i].SubtaskIndex(subtaskID)
	if j < 0 {
		return
	}
	if running, ok := s.timers[taskID]; ok && running == subtaskID {
		delete(s.timers, taskID)
	}
	subs := s.tasks[i].Subtasks
	s.tasks[i].Subtasks = append(subs[:j:j], subs[j+1:]...)
	s.changed()
}

// ToggleSubtask flips a step's completion. completedAt is stamped on the
// way to done and cleared on the way back.
func (s *Store) ToggleSubtask(taskID, subtaskID string) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	j := s.tasks[i].SubtaskIndex(subtaskID)
	if j < 0 {
		return
	}
	sub := &s.tasks[i].Subtasks[j]
	sub.Completed = !sub.Completed
	if sub.Completed {
		now := s.clock.Now()
		sub.CompletedAt = &now
	} else {
		sub.CompletedAt = nil
	}
	s.changed()
}

// ReplaceSubtasks swaps a task's steps for fresh subtasks built from
// steps. A running subtask timer stops with its subtask; time already
// mirrored into the task total stays.
func (s *Store) ReplaceSubtasks(taskID string, steps []string) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	if running, ok := s.timers[taskID]; ok && running != "" {
		delete(s.timers, taskID)
	}
	s.tasks[i].Subtasks = s.instantiate(steps)
	s.changed()
}

// AddTemplate saves a custom breakdown. The trigger is trimmed and
// lower-cased; blank steps are dropped.
func (s *Store) AddTemplate(trigger string, steps []string) (model.TaskTemplate, error) {
	trigger = strings.ToLower(strings.TrimSpace(trigger))
	if trigger == "" {
		return model.TaskTemplate{}, apperr.Invalid("trigger", "must not be empty")
	}
	var clean []string
	for _, st := range steps {
		if st = strings.TrimSpace(st); st != "" {
			clean = append(clean, st)
		}
	}
	if len(clean) == 0 {
		return model.TaskTemplate{}, apperr.Invalid("steps", "must contain at least one step")
	}
	tpl := model.NewTemplate(s.newID(), trigger, clean)
	s.templates = append(s.templates, tpl)
	s.changed()
	return model.NewTemplate(tpl.ID, tpl.Trigger, tpl.Subtasks), nil
}

// DeleteTemplate removes a template. Unknown ids are ignored.
func (s *Store) DeleteTemplate(id string) {
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			s.changed()
			return
		}
	}
}

// Remember flags a task as a reference for future estimates. An empty
// level keeps whatever level the task already had.
func (s *Store) Remember(taskID string, level model.EnergyLevel) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	s.tasks[i].IsRemembered = true
	if level != "" {
		s.tasks[i].EnergyLevel = level
	}
	s.changed()
}

// SetEnergyLevel tags a task with the level it is being worked at.
func (s *Store) SetEnergyLevel(taskID string, level model.EnergyLevel) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	s.tasks[i].EnergyLevel = level
	s.changed()
}

func (s *Store) instantiate(steps []string) []model.Subtask {
	subs := make([]model.Subtask, 0, len(steps))
	for _, st := range steps {
		st = strings.TrimSpace(st)
		if st == "" {
			continue
		}
		subs = append(subs, model.NewSubtask(s.newID(), st))
	}
	return subs
}

func copyTask(t model.Task) model.Task {
	subs := make([]model.Subtask, len(t.Subtasks))
	for i, sub := range t.Subtasks {
		if sub.CompletedAt != nil {
			at := *sub.CompletedAt
			sub.CompletedAt = &at
		}
		subs[i] = sub
	}
	t.Subtasks = subs
	return t
}
