package ui

import (
	"fmt"

	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/timefmt"
)

// TaskItem wraps a task or one of its subtasks to satisfy list.DefaultItem.
type TaskItem struct {
	Task    model.Task
	Subtask *model.Subtask
	// Prefix holds the tree-drawing characters, e.g. " └─ "
	Prefix string
	// Pending is set while a breakdown is in flight for the task.
	Pending bool
}

func (i TaskItem) IsSubtask() bool { return i.Subtask != nil }

func (i TaskItem) SubtaskID() string {
	if i.Subtask == nil {
		return ""
	}
	return i.Subtask.ID
}

func (i TaskItem) Running() bool {
	if i.Subtask != nil {
		return i.Subtask.IsTimerRunning
	}
	return i.Task.IsTimerRunning
}

func (i TaskItem) Title() string {
	timer := ""
	if i.Running() {
		timer = "⏱ "
	}

	if i.Subtask != nil {
		check := "[ ]"
		if i.Subtask.Completed {
			check = "[x]"
		}
		return fmt.Sprintf("%s%s %s%s  %s", i.Prefix, check, timer, i.Subtask.Title,
			statusStyle.Render(timefmt.Format(i.Subtask.TimeSpent)))
	}

	mark := ""
	if i.Task.IsRemembered {
		mark = "★ "
	}
	pending := ""
	if i.Pending {
		pending = statusStyle.Render("  breaking down…")
	}
	return fmt.Sprintf("%s%s%s  %s%s", timer, mark, i.Task.Title,
		statusStyle.Render(fmt.Sprintf("%d/%d · %d%% · %s",
			i.Task.CompletedCount(), i.Task.TotalCount(), i.Task.Progress(), timefmt.Format(i.Task.TimeSpent))),
		pending)
}

func (i TaskItem) Description() string {
	return ""
}

func (i TaskItem) FilterValue() string {
	if i.Subtask != nil {
		return i.Task.Title + " " + i.Subtask.Title
	}
	return i.Task.Title
}
