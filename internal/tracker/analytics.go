package tracker

import (
	"github.com/nissyi-gh/tasksplit/internal/model"
)

// TotalTime is the time tracked across all tasks, in seconds.
func (s *Store) TotalTime() int {
	total := 0
	for _, t := range s.tasks {
		total += t.TimeSpent
	}
	return total
}

// CompletedTasks counts tasks whose subtasks are all done.
func (s *Store) CompletedTasks() int {
	n := 0
	for _, t := range s.tasks {
		if t.IsComplete() {
			n++
		}
	}
	return n
}

// Recent returns up to n of the newest tasks.
func (s *Store) Recent(n int) []model.Task {
	if n > len(s.tasks) {
		n = len(s.tasks)
	}
	if n <= 0 {
		return nil
	}
	out := make([]model.Task, n)
	for i := 0; i < n; i++ {
		out[i] = copyTask(s.tasks[i])
	}
	return out
}

// Estimate averages the tracked time of remembered tasks done at the
// given energy level. count is the number of tasks averaged.
func (s *Store) Estimate(level model.EnergyLevel) (avg, count int) {
	total := 0
	for _, t := range s.tasks {
		if !t.IsRemembered || t.EnergyLevel != level {
			continue
		}
		total += t.TimeSpent
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return total / count, count
}
