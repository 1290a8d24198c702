// Package platform implements the display, key, capture and surface
// capabilities against the host window system. Everything above this
// package talks to interfaces in internal/domain.
package platform

import (
	"errors"
	"fmt"
	"image"

	"github.com/genricoloni/umbra/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// errUnsupported is returned by capability queries the host window
// system cannot answer.
var errUnsupported = errors.New("not supported on this platform")

// ScreenCapturer grabs raw screen pixels via the portable screenshot
// library, which handles the per-OS capture path.
type ScreenCapturer struct {
	logger *zap.Logger
}

// NewCapturer creates the screen-capture capability.
func NewCapturer(logger *zap.Logger) domain.Capturer {
	return &ScreenCapturer{logger: logger}
}

// CaptureRegion captures exactly the given virtual-screen rectangle.
func (c *ScreenCapturer) CaptureRegion(rect domain.ScreenRect) (*image.RGBA, error) {
	if !rect.Valid() {
		return nil, fmt.Errorf("invalid capture rect %+v", rect)
	}
	img, err := screenshot.CaptureRect(rect.ToImage())
	if err != nil {
		return nil, fmt.Errorf("screen capture failed: %w", err)
	}
	return img, nil
}

// enumerateDisplays lists monitors through the portable screenshot
// library: bounds only, display index as the handle, index 0 treated as
// primary. Platform display implementations that can do better (names,
// real primary flag) override this.
func enumerateDisplays() []domain.MonitorDescriptor {
	n := screenshot.NumActiveDisplays()
	monitors := make([]domain.MonitorDescriptor, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		monitors = append(monitors, domain.MonitorDescriptor{
			Handle:  uintptr(i),
			Bounds:  domain.RectFromImage(b),
			Name:    fmt.Sprintf("Display %d", i+1),
			Primary: i == 0,
		})
	}
	return monitors
}
