package ui

import "github.com/nissyi-gh/tasksplit/internal/model"

// BuildTree flattens tasks into rows: each task followed by its subtasks
// with tree-drawing prefixes (├─, └─). pending marks tasks whose
// breakdown is in flight.
func BuildTree(tasks []model.Task, pending func(taskID string) bool) []TaskItem {
	var items []TaskItem
	for _, task := range tasks {
		items = append(items, TaskItem{
			Task:    task,
			Pending: pending != nil && pending(task.ID),
		})
		for idx := range task.Subtasks {
			prefix := " ├─ "
			if idx == len(task.Subtasks)-1 {
				prefix = " └─ "
			}
			sub := task.Subtasks[idx]
			items = append(items, TaskItem{Task: task, Subtask: &sub, Prefix: prefix})
		}
	}
	return items
}
