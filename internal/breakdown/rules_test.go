package breakdown

import (
	"reflect"
	"testing"

	"github.com/nissyi-gh/tasksplit/internal/model"
)

func TestDecomposeBuiltinRules(t *testing.T) {
	tests := []struct {
		title     string
		wantFirst string
		wantLen   int
	}{
		{"Clean my room", "Declutter surfaces and pick up items from the floor", 5},
		{"Tidy the HOUSE", "Declutter surfaces and pick up items from the floor", 5},
		{"Build a todo app", "Define the core requirements and user stories", 6},
		{"Write quarterly report", "Research the topic and gather key references", 6},
		{"Cook dinner", "Find a recipe and check for available ingredients", 6},
		{"xyz", "Research and gather necessary materials", 6},
		{"", "Research and gather necessary materials", 6},
	}
	for _, tt := range tests {
		got := Decompose(tt.title, nil)
		if len(got) != tt.wantLen {
			t.Errorf("Decompose(%q) returned %d steps, want %d", tt.title, len(got), tt.wantLen)
			continue
		}
		if got[0] != tt.wantFirst {
			t.Errorf("Decompose(%q)[0] = %q, want %q", tt.title, got[0], tt.wantFirst)
		}
	}
}

func TestDecomposeRulePriority(t *testing.T) {
	// "clean" beats "code": cleaning rules are checked first.
	got := Decompose("clean up the code", nil)
	if got[0] != rules[0].steps[0] {
		t.Errorf("expected cleaning steps, got %q", got[0])
	}
}

func TestDecomposeCleanRoomVerbatim(t *testing.T) {
	want := []string{
		"Declutter surfaces and pick up items from the floor",
		"Dust all furniture and electronics",
		"Vacuum or sweep the entire area",
		"Wipe down windows and mirrors",
		"Take out the trash and replace liners",
	}
	if got := Decompose("Clean my room", []model.TaskTemplate{}); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecomposeCustomTemplateWins(t *testing.T) {
	templates := []model.TaskTemplate{
		{ID: "1", Trigger: "morning routine", Subtasks: []string{"A", "B"}},
	}
	got := Decompose("Morning Routine", templates)
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("got %v, want [A B]", got)
	}

	// A template beats the built-in rules even when a keyword matches.
	templates = []model.TaskTemplate{{ID: "2", Trigger: "room", Subtasks: []string{"open window"}}}
	if got := Decompose("Clean my room", templates); !reflect.DeepEqual(got, []string{"open window"}) {
		t.Errorf("got %v, want [open window]", got)
	}
}

func TestMatchFirstTemplateWins(t *testing.T) {
	templates := []model.TaskTemplate{
		{ID: "1", Trigger: "report", Subtasks: []string{"short"}},
		{ID: "2", Trigger: "weekly report", Subtasks: []string{"long"}},
	}
	got, ok := Match("Weekly Report", templates)
	if !ok || !reflect.DeepEqual(got, []string{"short"}) {
		t.Errorf("Match = %v, %v; want first declared template", got, ok)
	}
}

func TestMatchUppercaseTrigger(t *testing.T) {
	templates := []model.TaskTemplate{{ID: "1", Trigger: "Gym Day", Subtasks: []string{"pack bag"}}}
	if _, ok := Match("gym day tomorrow", templates); !ok {
		t.Error("trigger should be compared lower-cased")
	}
}

func TestMatchSkipsEmptyTrigger(t *testing.T) {
	templates := []model.TaskTemplate{{ID: "1", Trigger: "", Subtasks: []string{"never"}}}
	if _, ok := Match("anything", templates); ok {
		t.Error("empty trigger must not match every title")
	}
}

func TestDecomposeReturnsCopies(t *testing.T) {
	templates := []model.TaskTemplate{{ID: "1", Trigger: "x", Subtasks: []string{"A"}}}
	got := Decompose("x", templates)
	got[0] = "mutated"
	if templates[0].Subtasks[0] != "A" {
		t.Error("template steps were mutated through the result")
	}

	s := Suggest("xyz")
	s[0] = "mutated"
	if fallback[0] == "mutated" {
		t.Error("fallback list was mutated through the result")
	}
}
