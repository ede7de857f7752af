package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/nissyi-gh/tasksplit/internal/clock"
	"github.com/nissyi-gh/tasksplit/internal/model"
)

var testNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	return New(
		WithClock(clock.Fixed(testNow)),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func mustAddTask(t *testing.T, s *Store, title string, steps ...string) model.Task {
	t.Helper()
	task, err := s.AddTask(title, steps...)
	if err != nil {
		t.Fatalf("AddTask(%q): %v", title, err)
	}
	return task
}

func mustTask(t *testing.T, s *Store, id string) model.Task {
	t.Helper()
	task, err := s.Task(id)
	if err != nil {
		t.Fatalf("Task(%q): %v", id, err)
	}
	return task
}

// runningCount counts running entities within one task.
func runningCount(task model.Task) int {
	n := 0
	if task.IsTimerRunning {
		n++
	}
	for _, sub := range task.Subtasks {
		if sub.IsTimerRunning {
			n++
		}
	}
	return n
}

type memBlobs map[string][]byte

func (m memBlobs) Get(name string) ([]byte, bool, error) {
	data, ok := m[name]
	return data, ok, nil
}

func (m memBlobs) Put(name string, data []byte) error {
	m[name] = append([]byte(nil), data...)
	return nil
}
