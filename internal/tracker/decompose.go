package tracker

import (
	"context"

	"github.com/nissyi-gh/tasksplit/internal/apperr"
)

// Token identifies one decomposition request.
type Token uint64

type pending struct {
	token  Token
	cancel context.CancelFunc
}

// BeginDecomposition registers a decomposition request for a task. The
// returned context is cancelled when the task is deleted or a newer
// request supersedes this one.
func (s *Store) BeginDecomposition(parent context.Context, taskID string) (context.Context, Token, error) {
	if s.taskIndex(taskID) < 0 {
		return nil, 0, apperr.NotFound("task", taskID)
	}
	s.cancelPending(taskID)
	ctx, cancel := context.WithCancel(parent)
	s.seq++
	s.pending[taskID] = pending{token: s.seq, cancel: cancel}
	return ctx, s.seq, nil
}

// ApplyDecomposition replaces the task's subtasks with steps if tok is
// still the task's current request. It reports whether anything was
// applied; results for deleted tasks are discarded.
func (s *Store) ApplyDecomposition(taskID string, tok Token, steps []string) bool {
	p, ok := s.pending[taskID]
	if !ok || p.token != tok {
		return false
	}
	p.cancel()
	delete(s.pending, taskID)
	if s.taskIndex(taskID) < 0 {
		return false
	}
	s.ReplaceSubtasks(taskID, steps)
	return true
}

// AbandonDecomposition drops a failed request and leaves the task as it
// was.
func (s *Store) AbandonDecomposition(taskID string, tok Token) {
	if p, ok := s.pending[taskID]; ok && p.token == tok {
		p.cancel()
		delete(s.pending, taskID)
	}
}

// Decomposing reports whether a request is outstanding for the task.
func (s *Store) Decomposing(taskID string) bool {
	_, ok := s.pending[taskID]
	return ok
}

func (s *Store) cancelPending(taskID string) {
	if p, ok := s.pending[taskID]; ok {
		p.cancel()
		delete(s.pending, taskID)
	}
}
