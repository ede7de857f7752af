package prompt

import (
	"fmt"
	"strings"

	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/timefmt"
)

const yamlFormat = `Answer in the YAML format below. Output only the YAML code block and nothing else.

` + "```yaml" + `
tasks:
  - title: "Task title"
    description: "What the task is about"
    energy: "high | mid | low"
    steps:
      - "First small, concrete step"
      - "Next step"
` + "```" + `

Fields:
- title: (required) the task title
- description: (optional) a short description
- energy: (optional) the energy level the task needs
- steps: (optional) ordered steps, each doable in one sitting`

// GenerateNew returns a prompt for planning new tasks from scratch.
func GenerateNew() string {
	return fmt.Sprintf(`You are a task planning assistant.
Break the user's goals down into tasks of a sensible size.

%s
`, yamlFormat)
}

// GenerateFromTask returns a prompt for breaking down an existing task.
func GenerateFromTask(task model.Task) string {
	var sb strings.Builder

	sb.WriteString("You are a task planning assistant.\n")
	sb.WriteString("Break the task below down into small, concrete steps.\n\n")

	sb.WriteString("## Task\n")
	sb.WriteString(fmt.Sprintf("- Title: %s\n", task.Title))

	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("- Description: %s\n", task.Description))
	}
	if task.EnergyLevel != "" {
		sb.WriteString(fmt.Sprintf("- Energy: %s\n", task.EnergyLevel))
	}
	if task.TimeSpent > 0 {
		sb.WriteString(fmt.Sprintf("- Time spent so far: %s\n", timefmt.Format(task.TimeSpent)))
	}

	if len(task.Subtasks) > 0 {
		sb.WriteString("\n## Existing steps\n")
		for _, s := range task.Subtasks {
			status := "open"
			if s.Completed {
				status = "done"
			}
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", s.Title, status))
		}
		sb.WriteString("\nKeep the existing steps in mind and list the complete set of steps.\n")
	}

	sb.WriteString("\n")
	sb.WriteString(yamlFormat)
	sb.WriteString("\n")

	return sb.String()
}
