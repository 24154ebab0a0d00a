package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/benedictjohannes/mpd-config-switcher/internal/logging"
)

// Backend is the subset of the switcher API the engine drives.
// *api.Client satisfies it.
type Backend interface {
	CurrentMode(ctx context.Context) (ConfigTarget, error)
	ConfigParts(ctx context.Context) ([]ConfigTarget, error)
	Switch(ctx context.Context, key string) (string, error)
}

// Option configures an Engine
type Option func(*Engine)

// WithPollInterval overrides DefaultPollInterval
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.interval = d
	}
}

// Engine owns the session State. A single goroutine applies every event
// through Reduce, so each step is atomic with respect to the three flows
// feeding it: the registry load, the poller and operator switches. Backend
// calls run on their own goroutines and report back as events.
//
// A scheduled poll that was already in flight when a switch started may
// resolve after the confirmation poll and report the pre-switch mode. Current
// then lags until the next tick.
type Engine struct {
	backend  Backend
	interval time.Duration

	events  chan Event
	updates chan State

	mu    sync.RWMutex
	state State

	ctx      context.Context
	cancel   context.CancelFunc
	poller   *Poller
	loopDone chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewEngine creates an engine in the initial state. Nothing runs until Start.
func NewEngine(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend:  backend,
		interval: DefaultPollInterval,
		events:   make(chan Event, 16),
		updates:  make(chan State, 1),
		state:    NewState(),
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the event loop, the one-shot registry load and the poller.
// Calls after the first have no effect.
func (e *Engine) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.ctx, e.cancel = context.WithCancel(ctx)
		go e.loop()

		go e.loadRegistry()

		e.poller = NewPoller(e.interval, e.pollScheduled)
		e.poller.Start(e.ctx)

		logging.Info("Session started", zap.Duration("poll_interval", e.poller.Interval()))
	})
}

// Close stops the poller, cancels in-flight calls and waits for the event
// loop to exit. After Close returns the State never changes again and the
// Updates channel is closed. Close is safe to call more than once.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		// Consume startOnce so a Start after Close launches nothing
		e.startOnce.Do(func() {})
		if e.cancel == nil {
			close(e.updates)
			return
		}
		e.cancel()
		e.poller.Stop()
		<-e.loopDone
		logging.Info("Session closed")
	})
}

// SwitchTo asks for target to become the active mode. It returns
// immediately; the outcome arrives through Updates. A request made while a
// switch is in flight is ignored, as is one made before Start or after Close.
func (e *Engine) SwitchTo(target ConfigTarget) {
	e.post(SwitchRequested{Target: target})
}

// Snapshot returns the latest State
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Updates delivers a snapshot after every applied event. Only the latest
// undelivered snapshot is kept, so a slow reader sees the newest State
// rather than a backlog.
func (e *Engine) Updates() <-chan State {
	return e.updates
}

func (e *Engine) loop() {
	defer close(e.loopDone)
	defer close(e.updates)

	for {
		select {
		case <-e.ctx.Done():
			return
		case ev := <-e.events:
			if e.ctx.Err() != nil {
				return
			}
			e.apply(ev)
		}
	}
}

func (e *Engine) apply(ev Event) {
	e.mu.Lock()
	next, effects := Reduce(e.state, ev)
	e.state = next
	e.mu.Unlock()

	logging.LogTransition(ev.Name(), next.Current.Key, next.Status, next.Busy)
	e.publish(next)

	for _, eff := range effects {
		e.run(eff)
	}
}

func (e *Engine) publish(s State) {
	select {
	case e.updates <- s:
	default:
		// Only the loop sends, so after dropping the stale value the send
		// cannot block.
		select {
		case <-e.updates:
		default:
		}
		e.updates <- s
	}
}

// post delivers ev to the loop unless the engine has been closed
func (e *Engine) post(ev Event) {
	if e.ctx == nil {
		return
	}
	select {
	case e.events <- ev:
	case <-e.ctx.Done():
	}
}

func (e *Engine) run(eff Effect) {
	switch eff.Kind {
	case EffectSwitch:
		go e.switchMode(eff.Target)
	case EffectConfirmPoll:
		go e.pollOnce(e.ctx, true)
	}
}

func (e *Engine) loadRegistry() {
	targets, err := e.backend.ConfigParts(e.ctx)
	if err != nil {
		logging.Warn("Registry load failed", zap.Error(err))
		e.post(RegistryLoadFailed{Err: err})
		return
	}
	e.post(RegistryLoaded{Targets: targets})
}

func (e *Engine) pollScheduled(ctx context.Context) {
	e.pollOnce(ctx, false)
}

func (e *Engine) pollOnce(ctx context.Context, forced bool) {
	mode, err := e.backend.CurrentMode(ctx)
	if err != nil {
		e.post(PollFailed{Err: err, Forced: forced})
		return
	}
	e.post(PollSucceeded{Mode: mode, Forced: forced})
}

func (e *Engine) switchMode(target ConfigTarget) {
	logging.Info("Switching mode", zap.String("key", target.Key), zap.String("name", target.Name))

	msg, err := e.backend.Switch(e.ctx, target.Key)
	if err != nil {
		logging.Warn("Switch failed", zap.String("key", target.Key), zap.Error(err))
		e.post(SwitchFailed{Target: target, Err: err})
		return
	}
	e.post(SwitchSucceeded{Target: target, Message: msg})
}
