package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/tasksplit/internal/app"
	"github.com/nissyi-gh/tasksplit/internal/breakdown"
	"github.com/nissyi-gh/tasksplit/internal/clock"
	"github.com/nissyi-gh/tasksplit/internal/model"
)

type memBlobs map[string][]byte

func (m memBlobs) Get(name string) ([]byte, bool, error) {
	data, ok := m[name]
	return data, ok, nil
}

func (m memBlobs) Put(name string, data []byte) error {
	m[name] = append([]byte(nil), data...)
	return nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	n := 0
	s, err := app.Open(memBlobs{}, nil, app.Options{
		Clock: clock.Fixed(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)),
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Engine: breakdown.NewEngine(0, 0),
	})
	if err != nil {
		t.Fatalf("app.Open: %v", err)
	}
	m := NewModel(s)
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, s string) Model {
	switch s {
	case "enter":
		return send(m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return send(m, tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return send(m, tea.KeyMsg{Type: tea.KeyTab})
	case " ":
		return send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestBuildTree(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Title: "Clean room", Subtasks: []model.Subtask{
			{ID: "s1", Title: "Pick up"},
			{ID: "s2", Title: "Vacuum"},
		}},
		{ID: "t2", Title: "Empty"},
	}
	items := BuildTree(tasks, func(id string) bool { return id == "t2" })

	if len(items) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(items))
	}
	if items[0].IsSubtask() || items[0].Pending {
		t.Errorf("Expected first row to be an idle task row")
	}
	if items[1].Prefix != " ├─ " || items[2].Prefix != " └─ " {
		t.Errorf("Unexpected prefixes %q %q", items[1].Prefix, items[2].Prefix)
	}
	if items[2].SubtaskID() != "s2" {
		t.Errorf("Expected s2, got %q", items[2].SubtaskID())
	}
	if !items[3].Pending {
		t.Errorf("Expected t2 to be pending")
	}
}

func TestTaskItemTitle(t *testing.T) {
	task := model.Task{ID: "t1", Title: "Write essay", TimeSpent: 65, IsTimerRunning: true, IsRemembered: true,
		Subtasks: []model.Subtask{{ID: "s1", Title: "Outline", Completed: true}, {ID: "s2", Title: "Draft"}}}

	title := TaskItem{Task: task}.Title()
	for _, want := range []string{"⏱", "★", "Write essay", "1/2", "50%", "1m 5s"} {
		if !strings.Contains(title, want) {
			t.Errorf("Expected task row to contain %q, got %q", want, title)
		}
	}

	sub := task.Subtasks[0]
	row := TaskItem{Task: task, Subtask: &sub, Prefix: " └─ "}.Title()
	if !strings.Contains(row, "[x] Outline") {
		t.Errorf("Expected completed subtask row, got %q", row)
	}
}

func TestAddTaskAndSubtask(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "n")
	if m.state != stateAdd {
		t.Fatalf("Expected add state, got %d", m.state)
	}
	m = press(m, "Plan trip")
	m = press(m, "enter")

	tasks := m.session.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Plan trip" {
		t.Fatalf("Expected one task 'Plan trip', got %+v", tasks)
	}
	if len(tasks[0].Subtasks) != 0 {
		t.Errorf("Expected plain add to skip the breakdown")
	}

	m = press(m, "s")
	m = press(m, "Book hotel")
	m = press(m, "enter")
	tasks = m.session.Tasks.Tasks()
	if len(tasks[0].Subtasks) != 1 {
		t.Fatalf("Expected one subtask, got %d", len(tasks[0].Subtasks))
	}

	m = press(m, "j")
	m = press(m, "x")
	if !m.session.Tasks.Tasks()[0].Subtasks[0].Completed {
		t.Errorf("Expected subtask to be toggled")
	}
}

func TestAddWithBreakdown(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "a")
	m = press(m, "Cook dinner")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a breakdown command")
	}
	id := m.session.Tasks.Tasks()[0].ID
	if !m.session.Tasks.Decomposing(id) {
		t.Errorf("Expected the task to be decomposing")
	}

	m = send(m, cmd())
	task := m.session.Tasks.Tasks()[0]
	if len(task.Subtasks) != len(breakdown.Suggest("Cook dinner")) {
		t.Errorf("Expected suggested steps, got %+v", task.Subtasks)
	}
	if m.session.Tasks.Decomposing(id) {
		t.Errorf("Expected the request to be finished")
	}
}

func TestTimerTick(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n")
	m = press(m, "Focus")
	m = press(m, "enter")

	m = press(m, " ")
	if !m.session.Tasks.AnyRunning() {
		t.Fatal("Expected timer to run")
	}
	m = send(m, TickMsg{})
	m = send(m, TickMsg{})
	if got := m.session.Tasks.Tasks()[0].TimeSpent; got != 2 {
		t.Errorf("Expected 2s, got %d", got)
	}

	m = press(m, " ")
	if m.session.Tasks.AnyRunning() {
		t.Errorf("Expected timer to stop")
	}
}

func TestManualLogInvalidStaysOpen(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n")
	m = press(m, "Focus")
	m = press(m, "enter")

	m = press(m, "l")
	m = press(m, "09:00")
	m = press(m, "enter")
	if m.state != stateManualLog || m.err == nil {
		t.Fatalf("Expected validation error with the form still open")
	}

	m = press(m, "tab")
	m = press(m, "09:30")
	m = press(m, "enter")
	if m.state != stateList {
		t.Fatalf("Expected list state, got %d", m.state)
	}
	if got := m.session.Tasks.Tasks()[0].TimeSpent; got != 1800 {
		t.Errorf("Expected 1800s, got %d", got)
	}
}

func TestCopyPrompt(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n")
	m = press(m, "Ship release")
	m = press(m, "enter")

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	m = press(m, "y")
	if !strings.Contains(copied, "Ship release") {
		t.Errorf("Expected prompt to mention the task, got %q", copied)
	}
	if m.notice == "" {
		t.Errorf("Expected a notice after copying")
	}
}

func TestDailyPane(t *testing.T) {
	m := newTestModel(t)
	before := len(m.session.Daily.Items())

	m = press(m, "tab")
	if m.state != stateDaily {
		t.Fatalf("Expected daily state")
	}
	m = press(m, "x")
	if !m.session.Daily.Items()[0].Completed {
		t.Errorf("Expected first daily item to be completed")
	}

	m = press(m, "n")
	m = press(m, "Stretch")
	m = press(m, "enter")
	if m.state != stateDaily {
		t.Errorf("Expected to return to the daily pane")
	}
	if got := len(m.session.Daily.Items()); got != before+1 {
		t.Errorf("Expected %d items, got %d", before+1, got)
	}
}

func TestDeleteConfirm(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n")
	m = press(m, "Temp")
	m = press(m, "enter")

	m = press(m, "d")
	if m.state != stateConfirm {
		t.Fatalf("Expected confirm state")
	}
	m = press(m, "n")
	if len(m.session.Tasks.Tasks()) != 1 {
		t.Fatalf("Expected the task to survive a cancelled delete")
	}

	m = press(m, "d")
	m = press(m, "y")
	if len(m.session.Tasks.Tasks()) != 0 {
		t.Errorf("Expected the task to be deleted")
	}
}

func TestBreakDownAgainAsksFirst(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n")
	m = press(m, "Cook dinner")
	m = press(m, "enter")
	m = press(m, "s")
	m = press(m, "My own step")
	m = press(m, "enter")

	m = press(m, "b")
	if m.state != stateConfirm {
		t.Fatalf("Expected confirm state, got %d", m.state)
	}
	m = press(m, "n")
	task := m.session.Tasks.Tasks()[0]
	if m.state != stateList || len(task.Subtasks) != 1 || task.Subtasks[0].Title != "My own step" {
		t.Fatalf("Expected steps to be kept after cancelling, got %+v", task.Subtasks)
	}

	m = press(m, "b")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a breakdown command after confirming")
	}
	m = send(m, cmd())
	task = m.session.Tasks.Tasks()[0]
	if len(task.Subtasks) != len(breakdown.Suggest("Cook dinner")) {
		t.Errorf("Expected suggested steps, got %+v", task.Subtasks)
	}
}

func TestBreakDownEmptyTaskSkipsConfirm(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "n")
	m = press(m, "Clean room")
	m = press(m, "enter")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	m = next.(Model)
	if m.state != stateList || cmd == nil {
		t.Errorf("Expected an immediate breakdown, state=%d", m.state)
	}
}
