package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// EnergyLevel tags how much energy a task was done with.
type EnergyLevel string

const (
	EnergyHigh EnergyLevel = "high"
	EnergyMid  EnergyLevel = "mid"
	EnergyLow  EnergyLevel = "low"
)

// EnergyLevels lists the valid levels in display order.
var EnergyLevels = []EnergyLevel{EnergyHigh, EnergyMid, EnergyLow}

// ParseEnergyLevel validates a level name (case-insensitive).
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	lvl := EnergyLevel(strings.ToLower(strings.TrimSpace(s)))
	switch lvl {
	case EnergyHigh, EnergyMid, EnergyLow:
		return lvl, nil
	}
	return "", fmt.Errorf("unknown energy level %q", s)
}

// Subtask is a single step of a Task.
type Subtask struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Completed      bool       `json:"completed"`
	TimeSpent      int        `json:"timeSpent"`
	IsTimerRunning bool       `json:"isTimerRunning"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// Task is a large piece of work, optionally broken down into subtasks.
type Task struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Subtasks       []Subtask   `json:"subtasks"`
	CreatedAt      time.Time   `json:"createdAt"`
	TimeSpent      int         `json:"timeSpent"`
	IsTimerRunning bool        `json:"isTimerRunning"`
	EnergyLevel    EnergyLevel `json:"energyLevel,omitempty"`
	IsRemembered   bool        `json:"isRemembered,omitempty"`
}

// NewTask returns a task with no subtasks and no tracked time.
func NewTask(id, title string, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Title:     title,
		Subtasks:  []Subtask{},
		CreatedAt: createdAt,
	}
}

// NewSubtask returns an open subtask with no tracked time.
func NewSubtask(id, title string) Subtask {
	return Subtask{ID: id, Title: title}
}

// Normalize applies load-time defaults. Timers never survive a restart.
func (s *Subtask) Normalize(fallback time.Time) {
	s.IsTimerRunning = false
	if s.TimeSpent < 0 {
		s.TimeSpent = 0
	}
	switch {
	case !s.Completed:
		s.CompletedAt = nil
	case s.CompletedAt == nil:
		t := fallback
		s.CompletedAt = &t
	}
}

// Normalize applies load-time defaults to the task and its subtasks.
func (t *Task) Normalize() {
	t.IsTimerRunning = false
	if t.TimeSpent < 0 {
		t.TimeSpent = 0
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	if t.EnergyLevel != "" {
		if lvl, err := ParseEnergyLevel(string(t.EnergyLevel)); err == nil {
			t.EnergyLevel = lvl
		} else {
			t.EnergyLevel = ""
		}
	}
	for i := range t.Subtasks {
		t.Subtasks[i].Normalize(t.CreatedAt)
	}
}

// CompletedCount returns the number of completed subtasks.
func (t Task) CompletedCount() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

// TotalCount returns the number of subtasks.
func (t Task) TotalCount() int {
	return len(t.Subtasks)
}

// Progress returns the completion percentage, rounded. A task without
// subtasks is at 0%.
func (t Task) Progress() int {
	total := t.TotalCount()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(t.CompletedCount()) * 100 / float64(total)))
}

// IsComplete reports whether the task has subtasks and all are done.
func (t Task) IsComplete() bool {
	return len(t.Subtasks) > 0 && t.CompletedCount() == len(t.Subtasks)
}

// SubtaskIndex returns the index of the subtask with the given id, or -1.
func (t Task) SubtaskIndex(id string) int {
	for i, s := range t.Subtasks {
		if s.ID == id {
			return i
		}
	}
	return -1
}
