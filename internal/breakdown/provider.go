package breakdown

import (
	"context"
	"time"

	"github.com/nissyi-gh/tasksplit/internal/apperr"
	"github.com/nissyi-gh/tasksplit/internal/model"
)

// DefaultDelay is how long the simulated provider takes to answer.
const DefaultDelay = 1500 * time.Millisecond

// Provider breaks a task title down into steps. Implementations may fail.
type Provider interface {
	Breakdown(ctx context.Context, title string) ([]string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, title string) ([]string, error)

func (f ProviderFunc) Breakdown(ctx context.Context, title string) ([]string, error) {
	return f(ctx, title)
}

// Simulated stands in for a remote suggestion service: it waits Delay and
// answers from the built-in rules.
type Simulated struct {
	Delay time.Duration
}

func (s Simulated) Breakdown(ctx context.Context, title string) ([]string, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	return Suggest(title), nil
}

// Engine resolves a title against custom templates before asking the
// provider.
type Engine struct {
	Provider      Provider
	TemplateDelay time.Duration
}

// NewEngine returns an engine backed by the simulated provider.
func NewEngine(providerDelay, templateDelay time.Duration) *Engine {
	return &Engine{
		Provider:      Simulated{Delay: providerDelay},
		TemplateDelay: templateDelay,
	}
}

// Decompose returns the steps for title. A template match is returned
// verbatim after TemplateDelay. Provider errors and cancellation come back
// as *apperr.DecompositionError; the provider is never retried.
func (e *Engine) Decompose(ctx context.Context, title string, templates []model.TaskTemplate) ([]string, error) {
	if steps, ok := Match(title, templates); ok && len(steps) > 0 {
		if err := wait(ctx, e.TemplateDelay); err != nil {
			return nil, &apperr.DecompositionError{Title: title, Err: err}
		}
		return steps, nil
	}

	if e.Provider == nil {
		return Suggest(title), nil
	}
	steps, err := e.Provider.Breakdown(ctx, title)
	if err != nil {
		return nil, &apperr.DecompositionError{Title: title, Err: err}
	}
	if len(steps) == 0 {
		return nil, &apperr.DecompositionError{Title: title}
	}
	return steps, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
