package syncengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Autosaver submits a batch of queued actions and returns the reconciled state
type Autosaver interface {
	Autosave(ctx context.Context, userID string, actions []domain.GameAction) (*domain.AutosaveResponse, error)
}

// TimerFunc schedules fire after d and returns a function that cancels it
type TimerFunc func(d time.Duration, fire func()) (stop func() bool)

func realTimer(d time.Duration, fire func()) func() bool {
	return time.AfterFunc(d, fire).Stop
}

// Option configures an Engine
type Option func(*Engine)

// WithTimer replaces the wall-clock timer
func WithTimer(t TimerFunc) Option {
	return func(e *Engine) { e.timer = t }
}

// WithClock replaces time.Now for action timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithAutosaveInterval overrides the accumulation window length
func WithAutosaveInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithAutosaveTimeout bounds each autosave call
func WithAutosaveTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets the logger used for transitions and sync failures
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine runs the reducer's effects: one window timer and the autosave call.
// All state changes, including timer and autosave completions, go through
// Dispatch and are serialized by the engine mutex.
type Engine struct {
	saver    Autosaver
	store    *Store
	timer    TimerFunc
	now      func() time.Time
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger

	mu        sync.Mutex
	state     State
	stopTimer func() bool
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an engine for userID in the playing phase
func New(userID string, saver Autosaver, opts ...Option) *Engine {
	e := &Engine{
		saver:   saver,
		timer:   realTimer,
		now:     time.Now,
		timeout: DefaultAutosaveTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.state = Initial(userID, nil, e.now())
	e.store = newStore(e.state)
	return e
}

// Store exposes the state store
func (e *Engine) Store() *Store {
	return e.store
}

// State returns a snapshot of the current state
func (e *Engine) State() State {
	return e.store.Snapshot()
}

// Dispatch applies ev and runs the resulting effects. It never blocks on I/O.
func (e *Engine) Dispatch(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	ev = e.stamp(ev)
	prev := e.state.Phase
	next, effects := Reduce(e.state, ev)
	e.state = next

	if prev != next.Phase {
		e.log.Debug(LogMsgTransition,
			"from", prev,
			"to", next.Phase,
			"queued", len(next.Queue))
	}

	for _, eff := range effects {
		e.run(eff)
	}
	e.store.publish(next)
}

// stamp fills the time of player actions dispatched without one
func (e *Engine) stamp(ev Event) Event {
	now := e.now()
	switch a := ev.(type) {
	case PlantSeed:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case HarvestCrop:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case BuyItem:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case SellItem:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case UnlockPlot:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	case AutosaveSucceeded:
		if a.At.IsZero() {
			a.At = now
		}
		return a
	}
	return ev
}

// run must be called with e.mu held
func (e *Engine) run(eff Effect) {
	switch f := eff.(type) {
	case StartTimer:
		if e.stopTimer != nil {
			e.stopTimer()
		}
		delay := f.Delay
		if e.interval > 0 {
			delay = e.interval
		}
		gen := f.Gen
		e.stopTimer = e.timer(delay, func() { e.Dispatch(TimerFired{Gen: gen}) })

	case RunAutosave:
		e.wg.Add(1)
		go e.autosave(f)
	}
}

type autosaveResult struct {
	resp *domain.AutosaveResponse
	err  error
}

func (e *Engine) autosave(f RunAutosave) {
	defer e.wg.Done()

	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	e.log.Debug(LogMsgAutosaveStarted, "user_id", f.UserID, "actions", len(f.Actions))

	done := make(chan autosaveResult, 1)
	go func() {
		resp, err := e.saver.Autosave(ctx, f.UserID, f.Actions)
		done <- autosaveResult{resp: resp, err: err}
	}()

	var res autosaveResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = autosaveResult{err: ctx.Err()}
	}

	switch {
	case res.err != nil:
		if e.ctx.Err() != nil {
			// Engine closed while the call was in flight
			return
		}
		msg := res.err.Error()
		if errors.Is(res.err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf(ErrMsgAutosaveTimeout, e.timeout)
		}
		e.log.Warn(LogMsgAutosaveFailed, "user_id", f.UserID, "actions", len(f.Actions), "error", msg)
		e.Dispatch(AutosaveFailed{Err: msg})

	case res.resp == nil || !res.resp.Success || res.resp.State == nil:
		e.log.Warn(LogMsgAutosaveFailed, "user_id", f.UserID, "actions", len(f.Actions), "error", ErrMsgAutosaveRejected)
		e.Dispatch(AutosaveFailed{Err: ErrMsgAutosaveRejected})

	default:
		if n := len(res.resp.ConflictResolutions); n > 0 {
			e.log.Warn(LogMsgConflicts, "user_id", f.UserID, "rejected", n)
		}
		e.log.Debug(LogMsgAutosaveDone, "user_id", f.UserID, "synced_at", res.resp.SyncedAt)
		e.Dispatch(AutosaveSucceeded{Response: *res.resp})
	}
}

// Initialize installs a server-fetched game state
func (e *Engine) Initialize(gs *domain.GameState) {
	e.Dispatch(Initialize{State: gs})
}

// PlantSeed queues planting seedCode on plotID
func (e *Engine) PlantSeed(plotID, seedCode string) {
	e.Dispatch(PlantSeed{PlotID: plotID, SeedCode: seedCode})
}

// HarvestCrop queues harvesting cropID
func (e *Engine) HarvestCrop(cropID string) {
	e.Dispatch(HarvestCrop{CropID: cropID})
}

// BuyItem queues a purchase
func (e *Engine) BuyItem(itemCode string, itemType domain.ItemType, quantity int) {
	e.Dispatch(BuyItem{ItemCode: itemCode, ItemType: itemType, Quantity: quantity})
}

// SellItem queues a sale
func (e *Engine) SellItem(itemCode string, itemType domain.ItemType, quantity int) {
	e.Dispatch(SellItem{ItemCode: itemCode, ItemType: itemType, Quantity: quantity})
}

// UnlockPlot queues unlocking plotID
func (e *Engine) UnlockPlot(plotID string) {
	e.Dispatch(UnlockPlot{PlotID: plotID})
}

// SyncNow closes the current accumulation window early. It is a no-op
// outside the accumulating phase.
func (e *Engine) SyncNow() {
	e.mu.Lock()
	gen := e.state.TimerGen
	if e.stopTimer != nil {
		e.stopTimer()
	}
	e.mu.Unlock()
	e.Dispatch(TimerFired{Gen: gen})
}

// Close stops the timer, abandons any in-flight autosave and closes
// subscriber channels. Queued actions are not flushed.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.stopTimer != nil {
		e.stopTimer()
	}
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
	e.store.close()
}
