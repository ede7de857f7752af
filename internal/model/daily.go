package model

// DailyTask is a recurring ritual scoped to a single calendar day.
type DailyTask struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	IsAiSuggested bool   `json:"isAiSuggested"`
	Date          string `json:"date"` // YYYY-MM-DD, local time
}

// NewDailyTask returns an open daily item for the given day.
func NewDailyTask(id, title, date string, suggested bool) DailyTask {
	return DailyTask{
		ID:            id,
		Title:         title,
		IsAiSuggested: suggested,
		Date:          date,
	}
}

// TaskTemplate maps a trigger phrase to a fixed list of steps.
type TaskTemplate struct {
	ID       string   `json:"id"`
	Trigger  string   `json:"trigger"`
	Subtasks []string `json:"subtasks"`
}

// NewTemplate returns a template. The trigger is stored as given; callers
// lower-case it.
func NewTemplate(id, trigger string, steps []string) TaskTemplate {
	cp := make([]string, len(steps))
	copy(cp, steps)
	return TaskTemplate{ID: id, Trigger: trigger, Subtasks: cp}
}
