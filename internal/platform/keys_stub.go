//go:build !windows
// +build !windows

package platform

import (
	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// noopKeyState is used where no asynchronous key-state query exists.
// It never reports a key as held, so the toggle gesture cannot fire.
type noopKeyState struct{}

// NewKeyState creates the key-state capability for this platform.
func NewKeyState(logger *zap.Logger) domain.KeyState {
	logger.Warn("Key-state polling is not supported on this platform; the toggle gesture is disabled")
	return &noopKeyState{}
}

func (n *noopKeyState) IsKeyDown(key domain.Key) bool {
	return false
}
