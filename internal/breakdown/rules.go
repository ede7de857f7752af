// Package breakdown turns a task title into an ordered list of step titles,
// from user templates first and a built-in keyword ruleset otherwise.
package breakdown

import (
	"strings"

	"github.com/nissyi-gh/tasksplit/internal/model"
)

type rule struct {
	keywords []string
	steps    []string
}

// Rules are tried in order; the first rule with a keyword contained in the
// lower-cased title wins.
var rules = []rule{
	{
		keywords: []string{"clean", "room", "house"},
		steps: []string{
			"Declutter surfaces and pick up items from the floor",
			"Dust all furniture and electronics",
			"Vacuum or sweep the entire area",
			"Wipe down windows and mirrors",
			"Take out the trash and replace liners",
		},
	},
	{
		keywords: []string{"code", "app", "build", "project"},
		steps: []string{
			"Define the core requirements and user stories",
			"Sketch the UI layout and component structure",
			"Set up the project environment and dependencies",
			"Implement the basic functionality and state management",
			"Style the components and add responsive design",
			"Test for bugs and refine the user experience",
		},
	},
	{
		keywords: []string{"write", "essay", "report"},
		steps: []string{
			"Research the topic and gather key references",
			"Create a detailed outline with main arguments",
			"Write the introductory paragraph and thesis statement",
			"Draft the body paragraphs with supporting evidence",
			"Write the conclusion and summary of findings",
			"Proofread for grammar and clarity",
		},
	},
	{
		keywords: []string{"cook", "meal", "dinner"},
		steps: []string{
			"Find a recipe and check for available ingredients",
			"Prep all vegetables and proteins (mise en place)",
			"Preheat the oven or prepare the cooking surface",
			"Follow the cooking steps in order",
			"Plate the meal and garnish",
			"Clean up the kitchen workspace",
		},
	},
}

var fallback = []string{
	"Research and gather necessary materials",
	"Set up a dedicated workspace",
	"Complete the first 25% of the work",
	"Review progress and adjust plan if needed",
	"Finish the remaining work",
	"Final review and quality check",
}

// Match returns the steps of the first template whose trigger occurs in
// title, compared case-insensitively. Templates are scanned in order.
func Match(title string, templates []model.TaskTemplate) ([]string, bool) {
	lower := strings.ToLower(title)
	for _, tpl := range templates {
		trigger := strings.ToLower(tpl.Trigger)
		if trigger == "" {
			continue
		}
		if strings.Contains(lower, trigger) {
			return clone(tpl.Subtasks), true
		}
	}
	return nil, false
}

// Suggest applies the built-in keyword rules, degrading to a generic plan.
func Suggest(title string) []string {
	lower := strings.ToLower(title)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return clone(r.steps)
			}
		}
	}
	return clone(fallback)
}

// Decompose returns the steps for title: a matching custom template wins,
// then the built-in rules. The result is never empty.
func Decompose(title string, templates []model.TaskTemplate) []string {
	if steps, ok := Match(title, templates); ok && len(steps) > 0 {
		return steps
	}
	return Suggest(title)
}

func clone(steps []string) []string {
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
