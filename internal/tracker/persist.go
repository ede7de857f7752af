package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/nissyi-gh/tasksplit/internal/model"
)

// Blob names of the persisted state. The daily list is owned by the
// session but lives next to the tasks.
const (
	TasksBlob     = "tasksplit_tasks"
	TemplatesBlob = "tasksplit_templates"
	DailyBlob     = "tasksplit_daily"
)

// Blobs is an opaque named-blob store.
type Blobs interface {
	Get(name string) ([]byte, bool, error)
	Put(name string, data []byte) error
}

// Load replaces the store's contents with what is persisted in b. Missing
// blobs load as empty collections. Timers never survive a restart.
func (s *Store) Load(b Blobs) error {
	var tasks []model.Task
	if err := GetJSON(b, TasksBlob, &tasks); err != nil {
		return err
	}
	var templates []model.TaskTemplate
	if err := GetJSON(b, TemplatesBlob, &templates); err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].Normalize()
	}
	for i := range templates {
		if templates[i].Subtasks == nil {
			templates[i].Subtasks = []string{}
		}
	}

	for id := range s.pending {
		s.cancelPending(id)
	}
	s.tasks = tasks
	s.templates = templates
	s.timers = make(map[string]string)
	return nil
}

// Save writes a snapshot of tasks and templates to b.
func (s *Store) Save(b Blobs) error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	if err := PutJSON(b, TasksBlob, tasks); err != nil {
		return err
	}
	templates := s.templates
	if templates == nil {
		templates = []model.TaskTemplate{}
	}
	return PutJSON(b, TemplatesBlob, templates)
}

// GetJSON decodes a named blob into v. A missing blob leaves v untouched.
func GetJSON(b Blobs, name string, v any) error {
	data, ok, err := b.Get(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// PutJSON encodes v into a named blob.
func PutJSON(b Blobs, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := b.Put(name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
