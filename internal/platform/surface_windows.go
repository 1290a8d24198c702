//go:build windows
// +build windows

package platform

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

var (
	kernel32                       = syscall.NewLazyDLL("kernel32.dll")
	gdi32                          = syscall.NewLazyDLL("gdi32.dll")
	procGetModuleHandleW           = kernel32.NewProc("GetModuleHandleW")
	procRegisterClassExW           = user32.NewProc("RegisterClassExW")
	procUnregisterClassW           = user32.NewProc("UnregisterClassW")
	procCreateWindowExW            = user32.NewProc("CreateWindowExW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procDefWindowProcW             = user32.NewProc("DefWindowProcW")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procGetDC                      = user32.NewProc("GetDC")
	procReleaseDC                  = user32.NewProc("ReleaseDC")
	procGetMessageW                = user32.NewProc("GetMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessageW           = user32.NewProc("DispatchMessageW")
	procPostMessageW               = user32.NewProc("PostMessageW")
	procPostQuitMessage            = user32.NewProc("PostQuitMessage")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procStretchDIBits              = gdi32.NewProc("StretchDIBits")
)

const (
	wsPopup = 0x80000000

	wsExTopmost     = 0x00000008
	wsExTransparent = 0x00000020
	wsExToolWindow  = 0x00000080
	wsExLayered     = 0x00080000
	wsExNoActivate  = 0x08000000

	swHide           = 0
	swShowNoActivate = 4
	swShowNA         = 8

	wmDestroy = 0x0002
	wmClose   = 0x0010

	lwaAlpha = 0x02

	srcCopy      = 0x00CC0020
	dibRGBColors = 0
	biRGB        = 0

	// Keeps the overlay out of its own capture loop (Win10 2004+).
	wdaExcludeFromCapture = 0x11
)

// createTimeout bounds how long Create waits for the window thread.
const createTimeout = 5 * time.Second

type wndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

type winMsg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// WinSurfaceFactory creates layered topmost click-through overlay
// windows.
type WinSurfaceFactory struct {
	logger *zap.Logger
}

// NewSurfaceFactory creates the Win32 surface capability.
func NewSurfaceFactory(logger *zap.Logger) domain.SurfaceFactory {
	return &WinSurfaceFactory{logger: logger}
}

// winSurface is one overlay window. The window is created and pumped on
// a dedicated locked OS thread (Win32 windows are thread-affine); Blit
// and Clear run on the caller's goroutine, which is legal for GDI DC
// operations.
type winSurface struct {
	logger *zap.Logger
	width  int
	height int

	mu      sync.Mutex
	hwnd    uintptr
	visible bool
	closed  bool
	done    chan struct{}

	// Reused BGRX scratch buffer, one frame large.
	scratch []byte
}

// Create builds the overlay window covering bounds and waits for the
// window thread to report readiness.
func (f *WinSurfaceFactory) Create(bounds domain.ScreenRect) (domain.Surface, error) {
	s := &winSurface{
		logger: f.logger,
		width:  bounds.Width(),
		height: bounds.Height(),
		done:   make(chan struct{}),
	}

	ready := make(chan error, 1)
	go s.windowLoop(bounds, ready)

	if err := s.await(ready, createTimeout); err != nil {
		return nil, err
	}

	f.logger.Info("Overlay window created",
		zap.Int("width", s.width),
		zap.Int("height", s.height))
	return s, nil
}

// await waits for the window thread to report readiness. On timeout
// the thread keeps the ready channel; if it comes up late the surface
// is closed rather than leaving an orphaned message pump running.
func (s *winSurface) await(ready <-chan error, timeout time.Duration) error {
	select {
	case err := <-ready:
		return err
	case <-time.After(timeout):
		go func() {
			if err := <-ready; err == nil {
				if err := s.Close(); err != nil {
					s.logger.Warn("Late overlay window shutdown failed", zap.Error(err))
				}
			}
		}()
		return fmt.Errorf("overlay window creation timed out")
	}
}

// windowLoop owns the window: create, pump messages, destroy.
func (s *winSurface) windowLoop(bounds domain.ScreenRect, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.done)

	hInstance, _, _ := procGetModuleHandleW.Call(0)

	classNameStr := fmt.Sprintf("UmbraOverlay_%d", time.Now().UnixNano())
	className, err := syscall.UTF16PtrFromString(classNameStr)
	if err != nil {
		ready <- err
		return
	}

	wc := wndClassExW{
		Size:      uint32(unsafe.Sizeof(wndClassExW{})),
		WndProc:   syscall.NewCallback(overlayWndProc),
		Instance:  hInstance,
		ClassName: className,
	}
	if atom, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		ready <- fmt.Errorf("RegisterClassEx failed: %w", callErr)
		return
	}
	defer procUnregisterClassW.Call(uintptr(unsafe.Pointer(className)), hInstance)

	hwnd, _, callErr := procCreateWindowExW.Call(
		wsExTopmost|wsExLayered|wsExTransparent|wsExToolWindow|wsExNoActivate,
		uintptr(unsafe.Pointer(className)),
		0,
		wsPopup,
		uintptr(bounds.Left), uintptr(bounds.Top),
		uintptr(bounds.Width()), uintptr(bounds.Height()),
		0, 0, hInstance, 0,
	)
	if hwnd == 0 {
		ready <- fmt.Errorf("CreateWindowEx failed: %w", callErr)
		return
	}

	// A layered window stays invisible until its attributes are set.
	procSetLayeredWindowAttributes.Call(hwnd, 0, 255, lwaAlpha)

	// Best effort: older Windows builds reject this affinity.
	if ret, _, _ := procSetWindowDisplayAffinity.Call(hwnd, wdaExcludeFromCapture); ret == 0 {
		s.logger.Warn("Overlay cannot be excluded from capture on this system")
	}

	s.mu.Lock()
	s.hwnd = hwnd
	s.mu.Unlock()
	ready <- nil

	var msg winMsg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 { // WM_QUIT or error
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}

	procDestroyWindow.Call(hwnd)
}

func overlayWndProc(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	if msg == wmDestroy {
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, uintptr(msg), wparam, lparam)
	return ret
}

// Blit paints the frame onto the window and reveals it without stealing
// activation.
func (s *winSurface) Blit(frame *image.NRGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("surface closed")
	}
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if w != s.width || h != s.height {
		return fmt.Errorf("frame %dx%d does not match surface %dx%d", w, h, s.width, s.height)
	}

	if len(s.scratch) != w*h*4 {
		s.scratch = make([]byte, w*h*4)
	}
	// NRGBA -> top-down BGRX rows for the DIB.
	for i := 0; i < w*h*4; i += 4 {
		s.scratch[i] = frame.Pix[i+2]
		s.scratch[i+1] = frame.Pix[i+1]
		s.scratch[i+2] = frame.Pix[i]
		s.scratch[i+3] = 255
	}

	hdc, _, _ := procGetDC.Call(s.hwnd)
	if hdc == 0 {
		return fmt.Errorf("GetDC failed")
	}
	defer procReleaseDC.Call(s.hwnd, hdc)

	bmi := bitmapInfoHeader{
		Size:     uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:    int32(w),
		Height:   -int32(h), // top-down
		Planes:   1,
		BitCount: 32,
	}
	ret, _, err := procStretchDIBits.Call(
		hdc,
		0, 0, uintptr(w), uintptr(h),
		0, 0, uintptr(w), uintptr(h),
		uintptr(unsafe.Pointer(&s.scratch[0])),
		uintptr(unsafe.Pointer(&bmi)),
		dibRGBColors,
		srcCopy,
	)
	if ret == 0 {
		return fmt.Errorf("StretchDIBits failed: %w", err)
	}

	if !s.visible {
		procShowWindow.Call(s.hwnd, swShowNA)
		s.visible = true
	}
	return nil
}

// Clear hides the window so the desktop shows through unmodified.
func (s *winSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.visible {
		return nil
	}
	procShowWindow.Call(s.hwnd, swHide)
	s.visible = false
	return nil
}

// Close asks the window thread to shut down and waits for it, bounded.
func (s *winSurface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	hwnd := s.hwnd
	s.mu.Unlock()

	procPostMessageW.Call(hwnd, wmClose, 0, 0)
	select {
	case <-s.done:
		return nil
	case <-time.After(time.Second):
		return fmt.Errorf("overlay window thread did not exit in time")
	}
}
