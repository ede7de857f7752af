package daily

import (
	"fmt"
	"testing"

	"github.com/nissyi-gh/tasksplit/internal/model"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestReconcileNewDay(t *testing.T) {
	persisted := []model.DailyTask{
		{ID: "old", Title: "Stretch", Date: "2024-02-29"},
	}
	got := Reconcile("2024-03-01", persisted, sequentialIDs())

	if len(got) != len(Suggestions) {
		t.Fatalf("got %d items, want %d", len(got), len(Suggestions))
	}
	for i, it := range got {
		if it.ID == "old" {
			t.Error("stale item must not appear in today's view")
		}
		if !it.IsAiSuggested || it.Completed || it.Date != "2024-03-01" {
			t.Errorf("item %d = %+v, want fresh suggestion for today", i, it)
		}
		if it.Title != Suggestions[i] {
			t.Errorf("item %d title = %q, want %q", i, it.Title, Suggestions[i])
		}
	}
}

func TestReconcileKeepsTodaysSuggestions(t *testing.T) {
	persisted := []model.DailyTask{
		{ID: "c1", Title: "Journal", Date: "2024-03-01"},
		{ID: "s1", Title: "Drink a glass of water", Date: "2024-03-01", IsAiSuggested: true, Completed: true},
	}
	got := Reconcile("2024-03-01", persisted, func() string {
		t.Fatal("no new ids expected")
		return ""
	})
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].ID != "s1" || got[1].ID != "c1" {
		t.Errorf("want suggested first, got %s, %s", got[0].ID, got[1].ID)
	}
	if !got[0].Completed {
		t.Error("completion state of today's items must be preserved")
	}
}

func TestReconcileCustomOnlyToday(t *testing.T) {
	persisted := []model.DailyTask{{ID: "c1", Title: "Journal", Date: "2024-03-01"}}
	got := Reconcile("2024-03-01", persisted, sequentialIDs())
	if len(got) != len(Suggestions)+1 {
		t.Fatalf("got %d items, want %d", len(got), len(Suggestions)+1)
	}
	if got[len(got)-1].ID != "c1" {
		t.Errorf("custom item should follow the suggestions, got %+v", got)
	}
}

func TestBoard(t *testing.T) {
	changes := 0
	b := NewBoard("2024-03-01", nil, sequentialIDs())
	b.OnChange(func() { changes++ })

	if _, err := b.Add("   "); err == nil {
		t.Error("blank title should be rejected")
	}
	if changes != 0 {
		t.Error("rejected add must not count as a change")
	}

	item, err := b.Add(" Meditate ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Title != "Meditate" || item.IsAiSuggested || item.Date != "2024-03-01" {
		t.Errorf("unexpected item %+v", item)
	}

	b.Toggle(item.ID)
	done, total := b.Progress()
	if done != 1 || total != len(Suggestions)+1 {
		t.Errorf("Progress = %d/%d", done, total)
	}

	b.Toggle("missing")
	b.Delete("missing")
	b.Delete(item.ID)
	if len(b.Items()) != len(Suggestions) {
		t.Errorf("expected %d items after delete", len(Suggestions))
	}
	if changes != 3 {
		t.Errorf("changes = %d, want 3", changes)
	}
}
