// Package overlay owns the borderless topmost click-through surface the
// pipeline draws into.
package overlay

import (
	"fmt"
	"image"
	"sync"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// Renderer wraps one platform surface with single-current-frame
// semantics: Show replaces whatever is displayed, nothing is buffered.
// The surface covers exactly one monitor; selecting another monitor
// destroys this renderer and creates a new one.
type Renderer struct {
	logger *zap.Logger

	mu        sync.Mutex
	surface   domain.Surface
	cleared   bool
	destroyed bool
}

// NewRenderer creates the overlay surface for the given monitor bounds.
// Surface creation is the one failure surfaced synchronously to the
// controller's start path.
func NewRenderer(logger *zap.Logger, factory domain.SurfaceFactory, bounds domain.ScreenRect) (*Renderer, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("invalid monitor bounds %+v", bounds)
	}
	surface, err := factory.Create(bounds)
	if err != nil {
		return nil, fmt.Errorf("overlay surface creation failed: %w", err)
	}

	logger.Info("Overlay surface created",
		zap.Int("width", bounds.Width()),
		zap.Int("height", bounds.Height()))

	return &Renderer{
		logger:  logger,
		surface: surface,
		cleared: true,
	}, nil
}

// Show replaces the displayed content with the given frame.
func (r *Renderer) Show(frame *image.NRGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return fmt.Errorf("renderer already destroyed")
	}
	if err := r.surface.Blit(frame); err != nil {
		return fmt.Errorf("blit failed: %w", err)
	}
	r.cleared = false
	return nil
}

// Clear blanks the surface. Cheap when already blank; the pipeline calls
// this every cycle while inversion is inactive.
func (r *Renderer) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed || r.cleared {
		return nil
	}
	if err := r.surface.Clear(); err != nil {
		return fmt.Errorf("surface clear failed: %w", err)
	}
	r.cleared = true
	return nil
}

// Destroy releases the surface. Idempotent; safe after a failed Show.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return
	}
	r.destroyed = true
	if err := r.surface.Close(); err != nil {
		r.logger.Warn("Surface close failed", zap.Error(err))
	}
	r.logger.Info("Overlay surface destroyed")
}
