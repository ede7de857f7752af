package importer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/tracker"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Energy      string   `yaml:"energy,omitempty"`
	Steps       []string `yaml:"steps,omitempty"`
}

// YAMLTemplate represents a custom breakdown in the YAML input.
type YAMLTemplate struct {
	Trigger string   `yaml:"trigger"`
	Steps   []string `yaml:"steps"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Templates []YAMLTemplate `yaml:"templates,omitempty"`
	Tasks     []YAMLTask     `yaml:"tasks,omitempty"`
}

// Result counts what an import created.
type Result struct {
	Tasks     int
	Templates int
}

// Import parses a YAML document and adds its templates and tasks to the
// store. Input is validated as a whole first, so a bad entry adds nothing.
func Import(s *tracker.Store, yamlStr string) (Result, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return Result{}, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 && len(input.Templates) == 0 {
		return Result{}, fmt.Errorf("no tasks or templates found in YAML")
	}
	if err := validate(input); err != nil {
		return Result{}, err
	}

	var res Result
	for _, yt := range input.Templates {
		if _, err := s.AddTemplate(yt.Trigger, yt.Steps); err != nil {
			return res, fmt.Errorf("add template %q: %w", yt.Trigger, err)
		}
		res.Templates++
	}
	for _, yt := range input.Tasks {
		if err := importTask(s, yt); err != nil {
			return res, err
		}
		res.Tasks++
	}
	return res, nil
}

// Steps parses a YAML document holding either a bare list of step titles
// or a single task with steps, as an LLM answering Prompt would produce.
func Steps(yamlStr string) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal([]byte(yamlStr), &list); err == nil && len(list) > 0 {
		return cleanSteps(list), nil
	}
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	for _, t := range input.Tasks {
		if steps := cleanSteps(t.Steps); len(steps) > 0 {
			return steps, nil
		}
	}
	return nil, fmt.Errorf("no steps found in YAML")
}

func validate(input YAMLInput) error {
	for i, yt := range input.Templates {
		if strings.TrimSpace(yt.Trigger) == "" {
			return fmt.Errorf("template %d: trigger is required", i+1)
		}
		if len(cleanSteps(yt.Steps)) == 0 {
			return fmt.Errorf("template %q: at least one step is required", yt.Trigger)
		}
	}
	for i, yt := range input.Tasks {
		if strings.TrimSpace(yt.Title) == "" {
			return fmt.Errorf("task %d: title is required", i+1)
		}
		if yt.Energy != "" {
			if _, err := model.ParseEnergyLevel(yt.Energy); err != nil {
				return fmt.Errorf("task %q: %w", yt.Title, err)
			}
		}
	}
	return nil
}

func importTask(s *tracker.Store, yt YAMLTask) error {
	task, err := s.AddTask(yt.Title, yt.Steps...)
	if err != nil {
		return fmt.Errorf("add task %q: %w", yt.Title, err)
	}

	if yt.Description != "" {
		s.SetDescription(task.ID, yt.Description)
	}

	if yt.Energy != "" {
		lvl, _ := model.ParseEnergyLevel(yt.Energy)
		s.SetEnergyLevel(task.ID, lvl)
	}
	return nil
}

func cleanSteps(steps []string) []string {
	var out []string
	for _, st := range steps {
		if st = strings.TrimSpace(st); st != "" {
			out = append(out, st)
		}
	}
	return out
}
