// Package app wires the tracker, the daily list, persistence and the tick
// source into one session.
package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/nissyi-gh/tasksplit/internal/breakdown"
	"github.com/nissyi-gh/tasksplit/internal/clock"
	"github.com/nissyi-gh/tasksplit/internal/daily"
	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/tracker"
)

// Session owns the state of one run. All methods must be called from the
// same event loop.
type Session struct {
	Tasks  *tracker.Store
	Daily  *daily.Board
	Engine *breakdown.Engine

	blobs  tracker.Blobs
	ticker clock.Ticker
	logger *log.Logger
}

// Options configures a Session. Zero values pick the defaults.
type Options struct {
	Clock  clock.Clock
	NewID  func() string
	Engine *breakdown.Engine
	Logger *log.Logger
}

// Open loads persisted state, runs the daily reconciliation once and
// returns a session whose mutations are saved as they happen.
func Open(blobs tracker.Blobs, ticker clock.Ticker, opts Options) (*Session, error) {
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Engine == nil {
		opts.Engine = breakdown.NewEngine(breakdown.DefaultDelay, 0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	tasks := tracker.New(tracker.WithClock(opts.Clock), tracker.WithIDs(opts.NewID))
	if err := tasks.Load(blobs); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var persisted []model.DailyTask
	if err := tracker.GetJSON(blobs, tracker.DailyBlob, &persisted); err != nil {
		return nil, fmt.Errorf("load daily tasks: %w", err)
	}
	today := clock.Today(opts.Clock)
	board := daily.NewBoard(today, persisted, opts.NewID)

	s := &Session{
		Tasks:  tasks,
		Daily:  board,
		Engine: opts.Engine,
		blobs:  blobs,
		ticker: ticker,
		logger: opts.Logger,
	}
	tasks.OnChange(s.tasksChanged)
	board.OnChange(s.saveDaily)

	// Today's view replaces whatever older days were stored.
	s.saveDaily()
	s.logger.Printf("session opened for %s: %d tasks, %d daily items", today, len(tasks.Tasks()), len(board.Items()))
	return s, nil
}

func (s *Session) tasksChanged() {
	if err := s.Tasks.Save(s.blobs); err != nil {
		s.logger.Printf("save tasks: %v", err)
	}
	s.syncTicker()
}

func (s *Session) saveDaily() {
	if err := tracker.PutJSON(s.blobs, tracker.DailyBlob, s.Daily.Items()); err != nil {
		s.logger.Printf("save daily tasks: %v", err)
	}
}

// syncTicker keeps exactly one tick source alive while any timer runs and
// none otherwise.
func (s *Session) syncTicker() {
	if s.ticker == nil {
		return
	}
	running := s.Tasks.AnyRunning()
	switch {
	case running && !s.ticker.Running():
		if err := s.ticker.Start(); err != nil {
			s.logger.Printf("start ticker: %v", err)
		}
	case !running && s.ticker.Running():
		s.ticker.Stop()
	}
}

// Tick advances every running timer by one second. Ticks from a source
// that has been stopped since they fired are dropped, so a stop followed by
// a start never counts a second twice.
func (s *Session) Tick(gen uint64) {
	if s.ticker != nil && (!s.ticker.Running() || s.ticker.Generation() != gen) {
		s.logger.Printf("dropped stale tick (generation %d)", gen)
		return
	}
	s.Tasks.Tick()
}

// AddTask creates a task; with decompose set it also returns a request
// that breaks the title down.
func (s *Session) AddTask(title string, decompose bool) (model.Task, *Request, error) {
	task, err := s.Tasks.AddTask(title)
	if err != nil {
		return model.Task{}, nil, err
	}
	if !decompose {
		return task, nil, nil
	}
	req, err := s.Decompose(task.ID)
	if err != nil {
		return task, nil, err
	}
	return task, req, nil
}

// Request is an outstanding decomposition. Run may be called on any
// goroutine; Finish must be called back on the session's loop.
type Request struct {
	TaskID string
	Title  string

	ctx       context.Context
	token     tracker.Token
	engine    *breakdown.Engine
	templates []model.TaskTemplate
}

// Decompose starts a decomposition request for a task.
func (s *Session) Decompose(taskID string) (*Request, error) {
	task, err := s.Tasks.Task(taskID)
	if err != nil {
		return nil, err
	}
	ctx, tok, err := s.Tasks.BeginDecomposition(context.Background(), taskID)
	if err != nil {
		return nil, err
	}
	return &Request{
		TaskID:    taskID,
		Title:     task.Title,
		ctx:       ctx,
		token:     tok,
		engine:    s.Engine,
		templates: s.Tasks.Templates(),
	}, nil
}

// Run blocks until the steps are available or the request fails.
func (r *Request) Run() ([]string, error) {
	return r.engine.Decompose(r.ctx, r.Title, r.templates)
}

// Finish applies the outcome of Run. It reports whether the task's
// subtasks changed; a failure or a deleted task leaves the store as is.
func (s *Session) Finish(r *Request, steps []string, runErr error) (bool, error) {
	if runErr != nil {
		cancelled := r.ctx.Err() != nil
		s.Tasks.AbandonDecomposition(r.TaskID, r.token)
		if cancelled {
			// The task went away or was decomposed again.
			return false, nil
		}
		s.logger.Printf("decompose %q: %v", r.Title, runErr)
		return false, runErr
	}
	return s.Tasks.ApplyDecomposition(r.TaskID, r.token, steps), nil
}

// Close stops every timer, which saves a snapshot without running flags,
// and then the tick source.
func (s *Session) Close() {
	s.Tasks.StopAll()
	if s.ticker != nil {
		s.ticker.Stop()
	}
}
