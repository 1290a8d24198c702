// Package registry maintains the current list of physical displays.
package registry

import (
	"fmt"
	"sync"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// Registry caches the last successful display enumeration. The list is
// replaced wholesale on refresh so readers always see a consistent
// snapshot, never a half-updated one.
type Registry struct {
	logger  *zap.Logger
	display domain.DisplayAPI

	mu       sync.RWMutex
	monitors []domain.MonitorDescriptor
}

// New creates a registry backed by the given display capability.
func New(logger *zap.Logger, display domain.DisplayAPI) *Registry {
	return &Registry{
		logger:  logger,
		display: display,
	}
}

// Refresh re-enumerates the displays. On failure the previous list is
// kept and the error returned; zero monitors is a valid (empty) result
// that callers must treat as "no target available".
func (r *Registry) Refresh() error {
	monitors, err := r.display.Monitors()
	if err != nil {
		r.logger.Warn("Monitor enumeration failed, keeping previous list", zap.Error(err))
		return fmt.Errorf("monitor enumeration failed: %w", err)
	}

	r.mu.Lock()
	r.monitors = monitors
	r.mu.Unlock()

	r.logger.Info("Monitor list refreshed", zap.Int("count", len(monitors)))
	return nil
}

// List returns the current descriptors in enumeration order. The slice
// is a snapshot; a later Refresh does not mutate it.
func (r *Registry) List() []domain.MonitorDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.monitors
}

// Get returns the descriptor at the given index.
func (r *Registry) Get(index int) (domain.MonitorDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.monitors) {
		return domain.MonitorDescriptor{}, fmt.Errorf("monitor index %d out of range (have %d)", index, len(r.monitors))
	}
	return r.monitors[index], nil
}

// Labels returns the UI dropdown labels for the current list.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels := make([]string, len(r.monitors))
	for i, m := range r.monitors {
		labels[i] = m.Label(i)
	}
	return labels
}
