package overlay

import (
	"fmt"
	"image"
	"testing"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

type fakeSurface struct {
	blits  int
	clears int
	closes int
	last   *image.NRGBA
}

func (f *fakeSurface) Blit(frame *image.NRGBA) error {
	f.blits++
	f.last = frame
	return nil
}

func (f *fakeSurface) Clear() error { f.clears++; return nil }
func (f *fakeSurface) Close() error { f.closes++; return nil }

type fakeFactory struct {
	surface domain.Surface
	err     error
	created int
}

func (f *fakeFactory) Create(bounds domain.ScreenRect) (domain.Surface, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created++
	return f.surface, nil
}

func bounds() domain.ScreenRect { return domain.ScreenRect{Left: 0, Top: 0, Right: 640, Bottom: 480} }

func TestNewRendererSurfaceFailure(t *testing.T) {
	factory := &fakeFactory{err: fmt.Errorf("no window system")}
	if _, err := NewRenderer(zap.NewNop(), factory, bounds()); err == nil {
		t.Fatal("expected surface creation failure to surface as an error")
	}
}

func TestNewRendererRejectsDegenerateBounds(t *testing.T) {
	factory := &fakeFactory{surface: &fakeSurface{}}
	if _, err := NewRenderer(zap.NewNop(), factory, domain.ScreenRect{Left: 10, Top: 10, Right: 10, Bottom: 20}); err == nil {
		t.Fatal("expected error for degenerate bounds")
	}
	if factory.created != 0 {
		t.Error("surface created despite invalid bounds")
	}
}

func TestShowReplacesCurrentFrame(t *testing.T) {
	surf := &fakeSurface{}
	r, err := NewRenderer(zap.NewNop(), &fakeFactory{surface: surf}, bounds())
	if err != nil {
		t.Fatal(err)
	}

	a := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	b := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	if err := r.Show(a); err != nil {
		t.Fatal(err)
	}
	if err := r.Show(b); err != nil {
		t.Fatal(err)
	}

	if surf.blits != 2 {
		t.Errorf("blits = %d, want 2", surf.blits)
	}
	if surf.last != b {
		t.Error("surface not showing the most recent frame")
	}
}

func TestClearIsCheapWhenAlreadyBlank(t *testing.T) {
	surf := &fakeSurface{}
	r, err := NewRenderer(zap.NewNop(), &fakeFactory{surface: surf}, bounds())
	if err != nil {
		t.Fatal(err)
	}

	// Fresh renderer is blank: repeated clears must not hit the surface.
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if surf.clears != 0 {
		t.Errorf("clears = %d, want 0 while already blank", surf.clears)
	}

	if err := r.Show(image.NewNRGBA(image.Rect(0, 0, 640, 480))); err != nil {
		t.Fatal(err)
	}
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if surf.clears != 1 {
		t.Errorf("clears = %d, want exactly 1 after a shown frame", surf.clears)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	surf := &fakeSurface{}
	r, err := NewRenderer(zap.NewNop(), &fakeFactory{surface: surf}, bounds())
	if err != nil {
		t.Fatal(err)
	}

	r.Destroy()
	r.Destroy()
	if surf.closes != 1 {
		t.Errorf("closes = %d, want 1", surf.closes)
	}

	if err := r.Show(image.NewNRGBA(image.Rect(0, 0, 640, 480))); err == nil {
		t.Error("Show after Destroy should fail")
	}
	if err := r.Clear(); err != nil {
		t.Errorf("Clear after Destroy should be a no-op, got %v", err)
	}
}
