package daily

import (
	"strings"

	"github.com/nissyi-gh/tasksplit/internal/apperr"
	"github.com/nissyi-gh/tasksplit/internal/model"
)

// Board is today's view of the daily list. It is reconciled once, when it
// is created; it does not roll over at midnight.
type Board struct {
	today    string
	items    []model.DailyTask
	newID    func() string
	onChange func()
}

// NewBoard reconciles persisted items against today.
func NewBoard(today string, persisted []model.DailyTask, newID func() string) *Board {
	return &Board{
		today: today,
		items: Reconcile(today, persisted, newID),
		newID: newID,
	}
}

// OnChange registers a hook called after every mutation.
func (b *Board) OnChange(fn func()) { b.onChange = fn }

func (b *Board) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

// Today returns the day key the board was reconciled for.
func (b *Board) Today() string { return b.today }

// Items returns a copy of today's items, suggested first.
func (b *Board) Items() []model.DailyTask {
	out := make([]model.DailyTask, len(b.items))
	copy(out, b.items)
	return out
}

// Add appends a custom item for today.
func (b *Board) Add(title string) (model.DailyTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.DailyTask{}, apperr.Invalid("title", "must not be empty")
	}
	item := model.NewDailyTask(b.newID(), title, b.today, false)
	b.items = append(b.items, item)
	b.changed()
	return item, nil
}

// Toggle flips the completed flag. Unknown ids are ignored.
func (b *Board) Toggle(id string) {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Completed = !b.items[i].Completed
			b.changed()
			return
		}
	}
}

// Delete removes an item. Unknown ids are ignored.
func (b *Board) Delete(id string) {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			b.changed()
			return
		}
	}
}

// Progress returns how many of today's items are done.
func (b *Board) Progress() (done, total int) {
	for _, it := range b.items {
		if it.Completed {
			done++
		}
	}
	return done, len(b.items)
}
