package session

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is how often the current mode is refreshed
const DefaultPollInterval = 5 * time.Second

// Poller runs fn immediately and then once per interval until stopped.
// Runs never overlap; a slow run absorbs the ticks that elapse meanwhile.
// Runs are not coordinated with switches, so a run started before a switch
// can report the old mode after it.
type Poller struct {
	interval time.Duration
	fn       func(context.Context)

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPoller creates a stopped poller. A non-positive interval uses
// DefaultPollInterval.
func NewPoller(interval time.Duration, fn func(context.Context)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval, fn: fn}
}

// Interval returns the polling period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start begins polling. It has no effect if the poller was already started
// or stopped. The context passed to fn is canceled by Stop.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.fn(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			p.fn(ctx)
		}
	}
}

// Stop cancels the schedule and waits for a running fn to return. Once Stop
// returns, fn is never called again. Stop is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
