//go:build windows
// +build windows

package platform

import (
	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// winKeys polls physical key state via GetAsyncKeyState.
type winKeys struct{}

// NewKeyState creates the Win32 key capability.
func NewKeyState(logger *zap.Logger) domain.KeyState {
	logger.Info("Win32 key-state capability initialized")
	return &winKeys{}
}

// IsKeyDown reports whether the virtual key is physically held. The
// high-order bit of GetAsyncKeyState carries the current state.
func (k *winKeys) IsKeyDown(key domain.Key) bool {
	ret, _, _ := procGetAsyncKeyState.Call(uintptr(key))
	return ret&0x8000 != 0
}
