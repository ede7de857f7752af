// Package daily keeps the list of recurring rituals that start fresh every
// calendar day.
package daily

import (
	"github.com/nissyi-gh/tasksplit/internal/model"
)

// Suggestions are the rituals offered at the start of every new day.
var Suggestions = []string{
	"Drink a glass of water",
	"Review today's top priorities",
	"Take a 10-minute walk",
	"Plan tomorrow before bed",
}

// Reconcile returns the items that belong to today, suggested items first.
// When today has no suggested item yet, fresh ones are created with newID
// and prepended. Items from other days are left out.
func Reconcile(today string, items []model.DailyTask, newID func() string) []model.DailyTask {
	var suggested, custom []model.DailyTask
	for _, it := range items {
		if it.Date != today {
			continue
		}
		if it.IsAiSuggested {
			suggested = append(suggested, it)
		} else {
			custom = append(custom, it)
		}
	}

	if len(suggested) == 0 {
		for _, title := range Suggestions {
			suggested = append(suggested, model.NewDailyTask(newID(), title, today, true))
		}
	}

	out := make([]model.DailyTask, 0, len(suggested)+len(custom))
	out = append(out, suggested...)
	return append(out, custom...)
}
