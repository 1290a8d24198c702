// Package tracker maintains the set of screen rectangles occupied by
// video-playback windows.
package tracker

import (
	"sync"
	"time"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

// DefaultScanInterval bounds how often the window set is re-enumerated.
const DefaultScanInterval = time.Second

// Tracker polls the top-level window set at a bounded rate and keeps
// the current exclusion rectangles. The stored set is replaced wholesale
// on every rescan, never patched, so a returned snapshot stays
// consistent while the pipeline iterates it.
type Tracker struct {
	logger     *zap.Logger
	display    domain.DisplayAPI
	classifier domain.Classifier
	interval   time.Duration
	now        func() time.Time

	mu       sync.Mutex
	lastScan time.Time
	regions  []domain.ScreenRect
}

// New creates a tracker. A non-positive interval falls back to
// DefaultScanInterval.
func New(logger *zap.Logger, display domain.DisplayAPI, classifier domain.Classifier, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &Tracker{
		logger:     logger,
		display:    display,
		classifier: classifier,
		interval:   interval,
		now:        time.Now,
	}
}

// Regions returns the current exclusion set, rescanning first when the
// stored set is older than the scan interval. Called from the capture
// loop every frame; the interval gate keeps enumeration off the frame
// budget on all but ~1 cycle per second.
func (t *Tracker) Regions() []domain.ScreenRect {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now := t.now(); t.lastScan.IsZero() || now.Sub(t.lastScan) >= t.interval {
		t.regions = t.scan()
		t.lastScan = now
	}
	return t.regions
}

// scan enumerates all visible top-level windows and collects the bounds
// of every one the classifier flags as video. Failures on individual
// windows (closed mid-scan, access denied) are swallowed per window;
// the scan itself never aborts.
func (t *Tracker) scan() []domain.ScreenRect {
	handles, err := t.display.Windows()
	if err != nil {
		t.logger.Warn("Window enumeration failed, keeping no exclusions this scan", zap.Error(err))
		return nil
	}

	var regions []domain.ScreenRect
	for _, h := range handles {
		if !t.display.WindowVisible(h) {
			continue
		}
		class, err := t.display.WindowClass(h)
		if err != nil {
			continue
		}
		title, err := t.display.WindowTitle(h)
		if err != nil {
			continue
		}
		if !t.classifier.IsVideo(h, class, title) {
			continue
		}
		rect, err := t.display.WindowRect(h)
		if err != nil || !rect.Valid() {
			continue
		}
		regions = append(regions, rect)
	}

	t.logger.Debug("Video window scan complete",
		zap.Int("windows", len(handles)),
		zap.Int("excluded", len(regions)))
	return regions
}
