// Package gesture detects the held-key gesture that toggles inversion.
package gesture

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultHoldDuration is how long the key must stay down to fire.
	DefaultHoldDuration = 2 * time.Second
	// DefaultPollInterval is the physical key poll period (~100 Hz).
	DefaultPollInterval = 10 * time.Millisecond
)

// Callback runs when a hold completes. Panics are caught and logged per
// callback; one failing callback never stops the others or the loop.
type Callback func()

// CallbackID identifies a registered callback for removal.
type CallbackID int

// holdState is the detector's state machine over one physical hold.
type holdState int

const (
	stateIdle holdState = iota
	statePressed
	stateFired
)

// Detector polls the physical state of the configured keys and fires all
// registered callbacks exactly once per continuous hold that exceeds the
// threshold. Re-arming requires a release: holding past the threshold a
// second time without letting go does nothing.
type Detector struct {
	logger       *zap.Logger
	keys         domain.KeyState
	watched      []domain.Key
	holdDuration time.Duration
	pollInterval time.Duration
	now          func() time.Time

	mu        sync.Mutex
	callbacks map[CallbackID]Callback
	nextID    CallbackID
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}

	// Hold state is owned by the poll loop goroutine (tests drive step
	// directly instead of running the loop).
	state      holdState
	pressStart time.Time
}

// New creates a detector watching the given keys. Any one of them held
// past holdDuration counts as the gesture.
func New(logger *zap.Logger, keys domain.KeyState, watched []domain.Key, holdDuration, pollInterval time.Duration) *Detector {
	if holdDuration <= 0 {
		holdDuration = DefaultHoldDuration
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Detector{
		logger:       logger,
		keys:         keys,
		watched:      watched,
		holdDuration: holdDuration,
		pollInterval: pollInterval,
		now:          time.Now,
		callbacks:    make(map[CallbackID]Callback),
	}
}

// AddCallback registers a callback and returns its removal handle. Safe
// to call while the detection loop runs.
func (d *Detector) AddCallback(cb Callback) CallbackID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.callbacks[id] = cb
	return id
}

// RemoveCallback unregisters a callback. Unknown IDs are ignored.
func (d *Detector) RemoveCallback(id CallbackID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.callbacks, id)
}

// Start launches the poll loop. Idempotent.
func (d *Detector) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true
	d.state = stateIdle

	d.logger.Info("Hold-gesture detector started",
		zap.Duration("holdDuration", d.holdDuration),
		zap.Duration("pollInterval", d.pollInterval))

	go d.runLoop(loopCtx, d.done)
	return nil
}

// Stop signals the loop and waits for it, bounded by the context.
// Idempotent.
func (d *Detector) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	d.cancel()
	done := d.done
	d.mu.Unlock()

	select {
	case <-done:
		d.logger.Info("Hold-gesture detector stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Gesture loop did not stop in time, proceeding with teardown")
		return ctx.Err()
	}
}

func (d *Detector) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.step(d.anyKeyDown(), d.now())
		}
	}
}

func (d *Detector) anyKeyDown() bool {
	for _, k := range d.watched {
		if d.keys.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// step advances the state machine by one poll sample.
func (d *Detector) step(down bool, now time.Time) {
	switch d.state {
	case stateIdle:
		if down {
			d.state = statePressed
			d.pressStart = now
		}
	case statePressed:
		if !down {
			// Released below the threshold: no fire.
			d.state = stateIdle
			return
		}
		if now.Sub(d.pressStart) >= d.holdDuration {
			d.fire()
			d.state = stateFired
		}
	case stateFired:
		// Suppress re-fires until the key is physically released.
		if !down {
			d.state = stateIdle
		}
	}
}

// fire invokes a snapshot of the registered callbacks, isolating each
// one from the others.
func (d *Detector) fire() {
	d.mu.Lock()
	snapshot := make([]Callback, 0, len(d.callbacks))
	for _, cb := range d.callbacks {
		snapshot = append(snapshot, cb)
	}
	d.mu.Unlock()

	d.logger.Info("Hold gesture fired", zap.Int("callbacks", len(snapshot)))
	for _, cb := range snapshot {
		d.invoke(cb)
	}
}

func (d *Detector) invoke(cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Gesture callback panicked", zap.Any("panic", r))
		}
	}()
	cb()
}
