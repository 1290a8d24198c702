package domain

import (
	"fmt"
	"image"
)

// ScreenRect is an axis-aligned rectangle in virtual-screen coordinates.
// A rect is valid only when Left < Right and Top < Bottom; degenerate
// rects are dropped by every consumer.
type ScreenRect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Valid reports whether the rectangle has positive area.
func (r ScreenRect) Valid() bool {
	return r.Left < r.Right && r.Top < r.Bottom
}

// Width returns the horizontal extent of the rectangle.
func (r ScreenRect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r ScreenRect) Height() int { return r.Bottom - r.Top }

// Translate returns the rectangle shifted by (dx, dy).
func (r ScreenRect) Translate(dx, dy int) ScreenRect {
	return ScreenRect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Intersect returns the overlap of two rectangles. The result may be
// invalid when they do not overlap; callers must check Valid.
func (r ScreenRect) Intersect(o ScreenRect) ScreenRect {
	out := r
	if o.Left > out.Left {
		out.Left = o.Left
	}
	if o.Top > out.Top {
		out.Top = o.Top
	}
	if o.Right < out.Right {
		out.Right = o.Right
	}
	if o.Bottom < out.Bottom {
		out.Bottom = o.Bottom
	}
	return out
}

// ToImage converts to the stdlib image.Rectangle form used by the
// capture and compositing code.
func (r ScreenRect) ToImage() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// RectFromImage converts an image.Rectangle back to a ScreenRect.
func RectFromImage(r image.Rectangle) ScreenRect {
	return ScreenRect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// MonitorDescriptor is an immutable snapshot of one physical display.
// The registry replaces descriptors wholesale on every refresh; holders
// must not retain them across a refresh or selection change.
type MonitorDescriptor struct {
	// Handle is the platform display identifier (HMONITOR on Windows,
	// display index elsewhere).
	Handle uintptr
	// Bounds is the display rectangle in virtual-screen coordinates.
	Bounds ScreenRect
	// Name is the platform device name, e.g. `\\.\DISPLAY1`.
	Name string
	// Primary marks the primary display.
	Primary bool
}

// Label renders the descriptor the way the UI dropdown presents it,
// e.g. "1: \\.\DISPLAY1 (Primary)".
func (m MonitorDescriptor) Label(index int) string {
	role := "Secondary"
	if m.Primary {
		role = "Primary"
	}
	return fmt.Sprintf("%d: %s (%s)", index+1, m.Name, role)
}

// WindowHandle identifies a top-level window of the running desktop
// session. Opaque to the core; only the display capability interprets it.
type WindowHandle uintptr

// Key is a platform virtual-key code polled by the gesture detector.
type Key int

// Virtual-key codes for the default toggle gesture. Values match the
// Win32 VK_* constants; the portable key capability maps them as it can.
const (
	KeyLeftSuper  Key = 0x5B
	KeyRightSuper Key = 0x5C
)
