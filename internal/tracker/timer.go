package tracker

import (
	"github.com/nissyi-gh/tasksplit/internal/apperr"
)

// StartTaskTimer starts the task-level timer, stopping whichever subtask
// of the same task was running. Starting a running timer is a no-op.
func (s *Store) StartTaskTimer(taskID string) {
	s.start(taskID, "")
}

// StartSubtaskTimer starts a subtask timer, stopping the task-level timer
// or any other subtask of the same task first.
func (s *Store) StartSubtaskTimer(taskID, subtaskID string) {
	if subtaskID == "" {
		return
	}
	s.start(taskID, subtaskID)
}

func (s *Store) start(taskID, subtaskID string) {
	i := s.taskIndex(taskID)
	if i < 0 {
		return
	}
	if subtaskID != "" && s.tasks[i].SubtaskIndex(subtaskID) < 0 {
		return
	}
	if running, ok := s.timers[taskID]; ok && running == subtaskID {
		return
	}
	// Time is accumulated on every tick, so switching needs no flush.
	s.timers[taskID] = subtaskID
	s.syncFlags(i)
	s.changed()
}

// StopTimer stops the task timer (subtaskID == "") or a subtask timer.
// timeSpent is left as is. Stopping an idle timer is a no-op.
func (s *Store) StopTimer(taskID, subtaskID string) {
	running, ok := s.timers[taskID]
	if !ok || running != subtaskID {
		return
	}
	delete(s.timers, taskID)
	if i := s.taskIndex(taskID); i >= 0 {
		s.syncFlags(i)
	}
	s.changed()
}

// StopAll stops every running timer.
func (s *Store) StopAll() {
	if len(s.timers) == 0 {
		return
	}
	for id := range s.timers {
		delete(s.timers, id)
	}
	for i := range s.tasks {
		s.syncFlags(i)
	}
	s.changed()
}

// Running returns the running entry of a task: "" for the task timer or
// the subtask id. ok is false when nothing runs for the task.
func (s *Store) Running(taskID string) (subtaskID string, ok bool) {
	subtaskID, ok = s.timers[taskID]
	return subtaskID, ok
}

// AnyRunning reports whether any timer runs in any task.
func (s *Store) AnyRunning() bool {
	return len(s.timers) > 0
}

// Tick advances every running timer by one second. Subtask seconds are
// also added to the parent task's total.
func (s *Store) Tick() {
	if len(s.timers) == 0 {
		return
	}
	for i := range s.tasks {
		t := &s.tasks[i]
		running, ok := s.timers[t.ID]
		if !ok {
			continue
		}
		if running == "" {
			t.TimeSpent++
			continue
		}
		j := t.SubtaskIndex(running)
		if j < 0 {
			delete(s.timers, t.ID)
			s.syncFlags(i)
			continue
		}
		t.Subtasks[j].TimeSpent++
		t.TimeSpent++
	}
	s.changed()
}

// ManualLog adds seconds to a task (subtaskID == "") or a subtask. Time
// logged on a subtask is added to the parent total too. Running flags are
// left untouched.
func (s *Store) ManualLog(taskID, subtaskID string, seconds int) error {
	if seconds <= 0 {
		return apperr.Invalid("duration", "must be positive")
	}
	i := s.taskIndex(taskID)
	if i < 0 {
		return nil
	}
	t := &s.tasks[i]
	if subtaskID != "" {
		j := t.SubtaskIndex(subtaskID)
		if j < 0 {
			return nil
		}
		t.Subtasks[j].TimeSpent += seconds
	}
	t.TimeSpent += seconds
	s.changed()
	return nil
}

// syncFlags mirrors the timer registry onto the task's running flags.
func (s *Store) syncFlags(i int) {
	t := &s.tasks[i]
	running, ok := s.timers[t.ID]
	t.IsTimerRunning = ok && running == ""
	for j := range t.Subtasks {
		t.Subtasks[j].IsTimerRunning = ok && t.Subtasks[j].ID == running
	}
}
