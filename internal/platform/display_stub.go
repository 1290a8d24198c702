//go:build !windows && !linux
// +build !windows,!linux

package platform

import (
	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// stubDisplay enumerates monitors through the portable capture library
// but cannot see windows, so no regions are ever excluded.
type stubDisplay struct {
	logger *zap.Logger
}

// NewDisplayAPI creates the display capability for this platform.
func NewDisplayAPI(logger *zap.Logger) (domain.DisplayAPI, error) {
	logger.Warn("Window enumeration is not supported on this platform; no windows will be excluded from inversion")
	return &stubDisplay{logger: logger}, nil
}

func (d *stubDisplay) Monitors() ([]domain.MonitorDescriptor, error) {
	return enumerateDisplays(), nil
}

func (d *stubDisplay) Windows() ([]domain.WindowHandle, error) {
	return nil, nil
}

func (d *stubDisplay) WindowRect(h domain.WindowHandle) (domain.ScreenRect, error) {
	return domain.ScreenRect{}, errUnsupported
}

func (d *stubDisplay) WindowClass(h domain.WindowHandle) (string, error) {
	return "", errUnsupported
}

func (d *stubDisplay) WindowTitle(h domain.WindowHandle) (string, error) {
	return "", errUnsupported
}

func (d *stubDisplay) WindowVisible(h domain.WindowHandle) bool {
	return false
}
