// Package controller orchestrates the inversion lifecycle: monitor
// selection, the shared active flag, and the capture pipeline and
// overlay owned per start/stop cycle.
package controller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/genricoloni/umbra/internal/config"
	"github.com/genricoloni/umbra/internal/domain"
	"github.com/genricoloni/umbra/internal/gesture"
	"github.com/genricoloni/umbra/internal/overlay"
	"github.com/genricoloni/umbra/internal/pipeline"
	"github.com/genricoloni/umbra/internal/registry"
	"go.uber.org/zap"
)

// stopTimeout bounds how long teardown waits for the capture loop. A
// loop that fails to exit must not prevent shutdown.
const stopTimeout = time.Second

// Controller is the control surface the UI talks to. All operations are
// idempotent; the UI can wire buttons to them without state tracking.
type Controller struct {
	logger   *zap.Logger
	cfg      *config.Config
	registry *registry.Registry
	regions  domain.RegionSource
	detector *gesture.Detector
	capturer domain.Capturer
	surfaces domain.SurfaceFactory

	// active is the one cross-loop flag: written here and by the gesture
	// callback, read by the pipeline every cycle.
	active atomic.Bool
	status atomic.Value // string

	mu       sync.Mutex
	running  bool
	selected int
	monitor  domain.MonitorDescriptor
	pipe     *pipeline.Pipeline
	renderer *overlay.Renderer
}

// New wires a controller and registers its toggle callback on the
// gesture detector. The detector itself is started by the application
// lifecycle, not here.
func New(
	logger *zap.Logger,
	cfg *config.Config,
	reg *registry.Registry,
	regions domain.RegionSource,
	detector *gesture.Detector,
	capturer domain.Capturer,
	surfaces domain.SurfaceFactory,
) *Controller {
	c := &Controller{
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		regions:  regions,
		detector: detector,
		capturer: capturer,
		surfaces: surfaces,
		selected: cfg.Monitor,
	}
	c.status.Store("ready")
	detector.AddCallback(c.Toggle)
	return c
}

// RefreshMonitors re-enumerates the displays and returns the new list.
func (c *Controller) RefreshMonitors() ([]domain.MonitorDescriptor, error) {
	if err := c.registry.Refresh(); err != nil {
		return nil, err
	}
	return c.registry.List(), nil
}

// Monitors returns the current display list without re-enumerating.
func (c *Controller) Monitors() []domain.MonitorDescriptor {
	return c.registry.List()
}

// SelectMonitor picks the inversion target. While running, the overlay
// and pipeline are torn down and recreated on the new monitor.
func (c *Controller) SelectMonitor(ctx context.Context, index int) error {
	mon, err := c.registry.Get(index)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == index && c.running {
		return nil
	}
	c.selected = index

	if !c.running {
		return nil
	}

	c.logger.Info("Switching monitor while running", zap.String("monitor", mon.Name))
	c.stopLocked(ctx)
	return c.startLocked(ctx, mon)
}

// Start creates the overlay and capture pipeline for the selected
// monitor. Inversion itself stays off until toggled. Idempotent: a
// second start while running is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	if len(c.registry.List()) == 0 {
		// One refresh attempt before giving up; the list may simply
		// never have been populated.
		if err := c.registry.Refresh(); err != nil {
			return fmt.Errorf("no monitors available: %w", err)
		}
	}
	mon, err := c.registry.Get(c.selected)
	if err != nil {
		return fmt.Errorf("no monitor to invert: %w", err)
	}

	return c.startLocked(ctx, mon)
}

// startLocked builds renderer and pipeline for mon. Caller holds c.mu.
// On any failure the controller stays fully stopped.
func (c *Controller) startLocked(ctx context.Context, mon domain.MonitorDescriptor) error {
	renderer, err := overlay.NewRenderer(c.logger, c.surfaces, mon.Bounds)
	if err != nil {
		c.status.Store("ready")
		return fmt.Errorf("start failed: %w", err)
	}

	pipe := pipeline.New(
		c.logger,
		c.capturer,
		c.regions,
		renderer,
		mon,
		&c.active,
		pipeline.Settings{
			FrameInterval:    c.cfg.FrameInterval,
			FailureThreshold: c.cfg.FailureThreshold,
		},
		c.onCaptureDegraded,
	)
	if err := pipe.Start(ctx); err != nil {
		renderer.Destroy()
		return fmt.Errorf("start failed: %w", err)
	}

	c.monitor = mon
	c.renderer = renderer
	c.pipe = pipe
	c.running = true
	c.setStatusLocked()

	c.logger.Info("Inversion controller started", zap.String("monitor", mon.Name))
	return nil
}

// Stop tears down the pipeline and overlay. Idempotent: stopping a
// stopped controller is a no-op, not an error.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return nil
	}
	c.stopLocked(ctx)
	c.status.Store("ready")
	c.logger.Info("Inversion controller stopped")
	return nil
}

// stopLocked tears down pipeline then renderer. Caller holds c.mu.
func (c *Controller) stopLocked(ctx context.Context) {
	waitCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	if err := c.pipe.Stop(waitCtx); err != nil {
		c.logger.Warn("Pipeline teardown timed out", zap.Error(err))
	}
	c.renderer.Destroy()

	c.pipe = nil
	c.renderer = nil
	c.running = false
	c.active.Store(false)
}

// Toggle flips the active flag. Wired as the gesture callback; also
// callable from the UI. Has no effect while stopped.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		c.logger.Debug("Toggle ignored, controller not running")
		return
	}

	now := !c.active.Load()
	c.active.Store(now)
	c.setStatusLocked()
	c.logger.Info("Inversion toggled", zap.Bool("active", now))
}

// Active reports whether inversion is currently applied.
func (c *Controller) Active() bool {
	return c.active.Load()
}

// Status returns the projection string the UI displays.
func (c *Controller) Status() string {
	return c.status.Load().(string)
}

func (c *Controller) setStatusLocked() {
	if c.active.Load() {
		c.status.Store(fmt.Sprintf("inverting %s - hold the toggle key to restore", c.monitor.Name))
	} else {
		c.status.Store(fmt.Sprintf("armed on %s - hold the toggle key to invert", c.monitor.Name))
	}
}

// onCaptureDegraded runs on the pipeline goroutine when consecutive
// capture failures cross the threshold.
func (c *Controller) onCaptureDegraded(err error) {
	c.status.Store(fmt.Sprintf("capture degraded: %v", err))
	c.logger.Error("Capture degraded", zap.Error(err))
}
