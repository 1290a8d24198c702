// Package pipeline runs the per-monitor capture -> invert -> composite
// -> render loop.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultFrameInterval targets ~30 Hz, best effort. A slow cycle
	// simply lowers the rate; ticker semantics drop missed ticks, so no
	// backlog ever queues up.
	DefaultFrameInterval = time.Second / 30

	// DefaultFailureThreshold is how many consecutive capture failures
	// raise the degraded signal.
	DefaultFailureThreshold = 3
)

// Settings are the pipeline tunables.
type Settings struct {
	FrameInterval    time.Duration
	FailureThreshold int
}

func (s *Settings) normalize() {
	if s.FrameInterval <= 0 {
		s.FrameInterval = DefaultFrameInterval
	}
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = DefaultFailureThreshold
	}
}

// Pipeline captures one monitor, inverts the frame, restores excluded
// regions, and hands the result to the renderer. The active flag is the
// shared toggle written by the controller and the gesture callback; the
// pipeline only reads it, once per cycle.
type Pipeline struct {
	logger   *zap.Logger
	capturer domain.Capturer
	regions  domain.RegionSource
	renderer domain.Renderer
	monitor  domain.MonitorDescriptor
	active   *atomic.Bool
	settings Settings

	// onDegraded fires once per failure streak when consecutive capture
	// failures reach the threshold. May be nil.
	onDegraded func(error)

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
	failures int
}

// New creates a pipeline for the given monitor.
func New(
	logger *zap.Logger,
	capturer domain.Capturer,
	regions domain.RegionSource,
	renderer domain.Renderer,
	monitor domain.MonitorDescriptor,
	active *atomic.Bool,
	settings Settings,
	onDegraded func(error),
) *Pipeline {
	settings.normalize()
	return &Pipeline{
		logger:     logger,
		capturer:   capturer,
		regions:    regions,
		renderer:   renderer,
		monitor:    monitor,
		active:     active,
		settings:   settings,
		onDegraded: onDegraded,
	}
}

// Start launches the capture loop. Idempotent.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	p.logger.Info("Capture pipeline started",
		zap.String("monitor", p.monitor.Name),
		zap.Duration("interval", p.settings.FrameInterval))

	go p.runLoop(loopCtx, p.done)
	return nil
}

// Stop signals the loop to exit and waits for it, bounded by the given
// context. A loop that fails to exit in time does not block shutdown.
func (p *Pipeline) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.cancel()
	done := p.done
	p.mu.Unlock()

	select {
	case <-done:
		p.logger.Info("Capture pipeline stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Capture pipeline did not stop in time, proceeding with teardown")
		return ctx.Err()
	}
}

func (p *Pipeline) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.settings.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle()
		}
	}
}

// cycle is one frame. Cancellation granularity is between cycles; no
// work inside a cycle is interruptible.
func (p *Pipeline) cycle() {
	if !p.active.Load() {
		// Disabled: blank the overlay and skip the capture work.
		if err := p.renderer.Clear(); err != nil {
			p.logger.Warn("Overlay clear failed", zap.Error(err))
		}
		return
	}

	frame, err := p.capturer.CaptureRegion(p.monitor.Bounds)
	if err != nil {
		p.captureFailed(err)
		return
	}
	p.failures = 0

	out := Compose(frame, p.monitor.Bounds, p.regions.Regions())

	if err := p.renderer.Show(out); err != nil {
		p.logger.Warn("Frame render failed", zap.Error(err))
	}
}

// captureFailed logs a skipped cycle and raises the degraded signal once
// the consecutive-failure threshold is reached. The loop keeps running
// either way; a reconfiguring display usually recovers within a cycle
// or two.
func (p *Pipeline) captureFailed(err error) {
	p.failures++
	p.logger.Warn("Capture failed, skipping cycle",
		zap.Int("consecutive", p.failures),
		zap.Error(err))

	if p.failures == p.settings.FailureThreshold && p.onDegraded != nil {
		p.onDegraded(err)
	}
}
