//go:build !windows
// +build !windows

package platform

import (
	"fmt"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// stubSurfaceFactory refuses to create overlay windows. Platforms
// without a layered-window equivalent cannot host the inverted frame.
type stubSurfaceFactory struct {
	logger *zap.Logger
}

// NewSurfaceFactory creates the surface capability for this platform.
func NewSurfaceFactory(logger *zap.Logger) domain.SurfaceFactory {
	logger.Warn("Overlay surfaces are not supported on this platform")
	return &stubSurfaceFactory{logger: logger}
}

func (f *stubSurfaceFactory) Create(bounds domain.ScreenRect) (domain.Surface, error) {
	return nil, fmt.Errorf("overlay surfaces are not supported on this platform")
}
