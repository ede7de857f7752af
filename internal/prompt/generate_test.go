package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/nissyi-gh/tasksplit/internal/model"
)

func TestGenerateNew(t *testing.T) {
	p := GenerateNew()
	if !strings.Contains(p, "```yaml") || !strings.Contains(p, "steps:") {
		t.Errorf("prompt is missing the YAML format:\n%s", p)
	}
}

func TestGenerateFromTask(t *testing.T) {
	task := model.NewTask("t1", "Write report", time.Now())
	task.Description = "Q3 numbers"
	task.EnergyLevel = model.EnergyLow
	task.TimeSpent = 3660
	task.Subtasks = []model.Subtask{
		{ID: "s1", Title: "Collect data", Completed: true},
		{ID: "s2", Title: "Draft"},
	}

	p := GenerateFromTask(task)
	for _, want := range []string{
		"- Title: Write report",
		"- Description: Q3 numbers",
		"- Energy: low",
		"- Time spent so far: 1h 1m 0s",
		"- Collect data (done)",
		"- Draft (open)",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateFromTaskMinimal(t *testing.T) {
	p := GenerateFromTask(model.NewTask("t1", "Cook dinner", time.Now()))
	if strings.Contains(p, "Existing steps") || strings.Contains(p, "Description:") {
		t.Errorf("optional sections should be omitted:\n%s", p)
	}
}
