package domain

import "image"

// DisplayAPI is the platform display-enumeration capability. The core
// never talks to the window system directly; everything goes through
// this interface so tests can mock the desktop.
//
//go:generate mockgen -destination=mocks/display_mock.go -package=mocks github.com/genricoloni/umbra/internal/domain DisplayAPI
type DisplayAPI interface {
	// Monitors enumerates the physical displays in enumeration order.
	// Zero monitors is not an error; callers treat an empty list as
	// "no target available".
	Monitors() ([]MonitorDescriptor, error)

	// Windows enumerates the visible top-level windows of the session.
	Windows() ([]WindowHandle, error)

	// WindowRect returns the bounding rectangle of a window in
	// virtual-screen coordinates.
	WindowRect(h WindowHandle) (ScreenRect, error)

	// WindowClass returns the window class name.
	WindowClass(h WindowHandle) (string, error)

	// WindowTitle returns the window title text.
	WindowTitle(h WindowHandle) (string, error)

	// WindowVisible reports whether the window is currently visible.
	WindowVisible(h WindowHandle) bool
}

// KeyState is the polled key capability used by the gesture detector.
type KeyState interface {
	// IsKeyDown reports whether the key is physically held right now.
	// Unsupported platforms report false.
	IsKeyDown(key Key) bool
}

// Capturer grabs raw pixels from the screen.
type Capturer interface {
	// CaptureRegion captures exactly the given virtual-screen rectangle.
	// The returned frame is produced fresh each call and is never
	// retained by the capturer.
	CaptureRegion(rect ScreenRect) (*image.RGBA, error)
}

// Surface is one borderless, topmost, click-through window covering a
// monitor. Created by a SurfaceFactory, owned by the overlay renderer.
type Surface interface {
	// Blit replaces the displayed content with the given frame.
	Blit(frame *image.NRGBA) error

	// Clear blanks the surface so the desktop underneath shows through.
	Clear() error

	// Close releases the surface. Safe to call more than once.
	Close() error
}

// SurfaceFactory creates overlay surfaces. Creation failure is the one
// error surfaced synchronously to controller start.
type SurfaceFactory interface {
	Create(bounds ScreenRect) (Surface, error)
}

// Classifier decides whether a window is showing video content. It is a
// heuristic: false positives and false negatives are both acceptable.
// Kept as a single-method strategy so the table can be swapped without
// touching the pipeline.
type Classifier interface {
	IsVideo(h WindowHandle, class, title string) bool
}

// RegionSource supplies the current set of screen rectangles to exclude
// from inversion. Implementations replace the set wholesale, so the
// returned slice is a consistent snapshot the caller may iterate freely.
type RegionSource interface {
	Regions() []ScreenRect
}

// Renderer is what the capture pipeline hands frames to.
type Renderer interface {
	// Show replaces the currently displayed frame.
	Show(frame *image.NRGBA) error

	// Clear blanks the overlay.
	Clear() error

	// Destroy releases the underlying surface. Idempotent.
	Destroy()
}
