package clock

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker is a start/stop source of one-second ticks. Every Start opens a
// new generation; ticks carry the generation that produced them so the
// owner can drop ticks from a source that has since been stopped.
type Ticker interface {
	// Start begins ticking. Starting a running ticker is a no-op.
	Start() error
	// Stop halts ticking. Stopping an idle ticker is a no-op.
	Stop()
	Running() bool
	// Generation is the generation of the running source, or of the last
	// one when idle.
	Generation() uint64
}

// CronTicker fires fn every second on a cron scheduler. Ticks run on the
// scheduler's goroutine; fn must hand them over to the owner's event loop.
type CronTicker struct {
	mu     sync.Mutex
	fn     func(gen uint64)
	loc    *time.Location
	logger *log.Logger
	cron   *cron.Cron
	gen    uint64
}

// NewCronTicker creates an idle ticker. fn receives the generation of the
// source that fired. A nil logger discards output.
func NewCronTicker(fn func(gen uint64), logger *log.Logger) *CronTicker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CronTicker{fn: fn, loc: time.Local, logger: logger}
}

func (t *CronTicker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cron != nil {
		return nil
	}
	c := cron.New(
		cron.WithLocation(t.loc),
		cron.WithSeconds(),
		cron.WithLogger(cron.PrintfLogger(t.logger)),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(t.logger))),
	)
	gen := t.gen + 1
	fn := t.fn
	if _, err := c.AddFunc("@every 1s", func() { fn(gen) }); err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}
	c.Start()
	t.cron = c
	t.gen = gen
	t.logger.Printf("ticker started (generation %d)", gen)
	return nil
}

// Stop does not wait for an in-flight tick: fn may be blocked handing a
// tick to the very loop that is calling Stop. Such a tick still carries the
// stopped generation and must be dropped by the receiver.
func (t *CronTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cron == nil {
		return
	}
	t.cron.Stop()
	t.cron = nil
	t.logger.Printf("ticker stopped")
}

func (t *CronTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cron != nil
}

func (t *CronTicker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}
