package pipeline

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

type fakeCapturer struct {
	mu    sync.Mutex
	frame *image.RGBA
	err   error
	calls int
}

func (f *fakeCapturer) CaptureRegion(rect domain.ScreenRect) (*image.RGBA, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.frame, nil
}

func (f *fakeCapturer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRenderer struct {
	mu     sync.Mutex
	shown  int
	last   *image.NRGBA
	clears int
}

func (f *fakeRenderer) Show(frame *image.NRGBA) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown++
	f.last = frame
	return nil
}

func (f *fakeRenderer) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *fakeRenderer) Destroy() {}

type staticRegions []domain.ScreenRect

func (s staticRegions) Regions() []domain.ScreenRect { return s }

func testMonitor() domain.MonitorDescriptor {
	return domain.MonitorDescriptor{
		Name:   `\\.\DISPLAY1`,
		Bounds: domain.ScreenRect{Left: 0, Top: 0, Right: 16, Bottom: 16},
	}
}

func newTestPipeline(cap *fakeCapturer, rend *fakeRenderer, active *atomic.Bool, onDegraded func(error)) *Pipeline {
	return New(zap.NewNop(), cap, staticRegions(nil), rend, testMonitor(), active, Settings{
		FrameInterval:    time.Millisecond,
		FailureThreshold: 3,
	}, onDegraded)
}

func TestCycleInactiveClearsWithoutCapturing(t *testing.T) {
	cap := &fakeCapturer{frame: testFrame(16, 16)}
	rend := &fakeRenderer{}
	var active atomic.Bool // false

	p := newTestPipeline(cap, rend, &active, nil)
	p.cycle()
	p.cycle()

	if cap.callCount() != 0 {
		t.Errorf("capture called %d times while inactive", cap.callCount())
	}
	if rend.clears != 2 {
		t.Errorf("clears = %d, want 2", rend.clears)
	}
	if rend.shown != 0 {
		t.Errorf("shown = %d, want 0", rend.shown)
	}
}

func TestCycleActiveRendersInvertedFrame(t *testing.T) {
	src := testFrame(16, 16)
	cap := &fakeCapturer{frame: src}
	rend := &fakeRenderer{}
	var active atomic.Bool
	active.Store(true)

	p := newTestPipeline(cap, rend, &active, nil)
	p.cycle()

	if rend.shown != 1 {
		t.Fatalf("shown = %d, want 1", rend.shown)
	}
	got := rend.last.NRGBAAt(3, 5)
	want := src.RGBAAt(3, 5)
	if got.R != 255-want.R || got.G != 255-want.G || got.B != 255-want.B {
		t.Errorf("rendered frame not inverted: got %v from %v", got, want)
	}
}

func TestConsecutiveFailuresRaiseDegradedOnce(t *testing.T) {
	cap := &fakeCapturer{err: fmt.Errorf("display reconfigured")}
	rend := &fakeRenderer{}
	var active atomic.Bool
	active.Store(true)

	var degraded atomic.Int32
	p := newTestPipeline(cap, rend, &active, func(error) { degraded.Add(1) })

	for i := 0; i < 5; i++ {
		p.cycle()
	}

	if got := degraded.Load(); got != 1 {
		t.Errorf("degraded fired %d times, want exactly 1", got)
	}
	if cap.callCount() != 5 {
		t.Errorf("loop stopped capturing after failures: %d calls", cap.callCount())
	}
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	cap := &fakeCapturer{err: fmt.Errorf("transient")}
	rend := &fakeRenderer{}
	var active atomic.Bool
	active.Store(true)

	var degraded atomic.Int32
	p := newTestPipeline(cap, rend, &active, func(error) { degraded.Add(1) })

	p.cycle()
	p.cycle()

	// Recovery before the threshold.
	cap.mu.Lock()
	cap.err = nil
	cap.frame = testFrame(16, 16)
	cap.mu.Unlock()
	p.cycle()

	// Two more failures: streak restarts, still under the threshold.
	cap.mu.Lock()
	cap.err = fmt.Errorf("transient")
	cap.mu.Unlock()
	p.cycle()
	p.cycle()

	if got := degraded.Load(); got != 0 {
		t.Errorf("degraded fired %d times, want 0", got)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	cap := &fakeCapturer{frame: testFrame(16, 16)}
	rend := &fakeRenderer{}
	var active atomic.Bool
	active.Store(true)

	p := newTestPipeline(cap, rend, &active, nil)

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := p.Start(ctx); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	// Let the loop run a few cycles.
	time.Sleep(20 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}

	calls := cap.callCount()
	if calls == 0 {
		t.Fatal("loop never captured")
	}
	time.Sleep(10 * time.Millisecond)
	if cap.callCount() != calls {
		t.Error("loop still capturing after Stop")
	}
}
