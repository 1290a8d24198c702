//go:build windows
// +build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	procEnumDisplayMonitors      = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW          = user32.NewProc("GetMonitorInfoW")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetAsyncKeyState         = user32.NewProc("GetAsyncKeyState")
	procSetWindowDisplayAffinity = user32.NewProc("SetWindowDisplayAffinity")
)

const monitorinfofPrimary = 1

type winRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

func (r winRect) toScreenRect() domain.ScreenRect {
	return domain.ScreenRect{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Right:  int(r.Right),
		Bottom: int(r.Bottom),
	}
}

type monitorInfoExW struct {
	Size    uint32
	Monitor winRect
	Work    winRect
	Flags   uint32
	Device  [32]uint16
}

// winDisplay implements domain.DisplayAPI against Win32.
type winDisplay struct {
	logger *zap.Logger
}

// NewDisplayAPI creates the Win32 display capability.
func NewDisplayAPI(logger *zap.Logger) (domain.DisplayAPI, error) {
	logger.Info("Win32 display capability initialized")
	return &winDisplay{logger: logger}, nil
}

// Callbacks registered with syscall.NewCallback are never released and
// the runtime caps their total count, so each enumeration callback is
// created exactly once and the result accumulator travels through
// lparam.
var (
	enumMonitorsCallback = syscall.NewCallback(func(hMonitor, hdc, lprc, lparam uintptr) uintptr {
		acc := (*[]domain.MonitorDescriptor)(unsafe.Pointer(lparam))
		var mi monitorInfoExW
		mi.Size = uint32(unsafe.Sizeof(mi))
		ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
		if ret != 0 {
			*acc = append(*acc, domain.MonitorDescriptor{
				Handle:  hMonitor,
				Bounds:  mi.Monitor.toScreenRect(),
				Name:    syscall.UTF16ToString(mi.Device[:]),
				Primary: mi.Flags&monitorinfofPrimary != 0,
			})
		}
		return 1 // continue enumeration
	})

	enumWindowsCallback = syscall.NewCallback(func(hwnd, lparam uintptr) uintptr {
		acc := (*[]domain.WindowHandle)(unsafe.Pointer(lparam))
		*acc = append(*acc, domain.WindowHandle(hwnd))
		return 1
	})
)

// Monitors enumerates physical displays with device names and the real
// primary flag.
func (d *winDisplay) Monitors() ([]domain.MonitorDescriptor, error) {
	var monitors []domain.MonitorDescriptor

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumMonitorsCallback, uintptr(unsafe.Pointer(&monitors)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", err)
	}
	return monitors, nil
}

// Windows enumerates all top-level windows. Visibility is filtered by
// the caller via WindowVisible, matching the capability contract.
func (d *winDisplay) Windows() ([]domain.WindowHandle, error) {
	var handles []domain.WindowHandle

	ret, _, err := procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(&handles)))
	if ret == 0 && len(handles) == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	return handles, nil
}

func (d *winDisplay) WindowRect(h domain.WindowHandle) (domain.ScreenRect, error) {
	var r winRect
	ret, _, err := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return domain.ScreenRect{}, fmt.Errorf("GetWindowRect failed for %#x: %w", uintptr(h), err)
	}
	return r.toScreenRect(), nil
}

func (d *winDisplay) WindowClass(h domain.WindowHandle) (string, error) {
	var buf [256]uint16
	ret, _, err := procGetClassNameW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return "", fmt.Errorf("GetClassName failed for %#x: %w", uintptr(h), err)
	}
	return syscall.UTF16ToString(buf[:ret]), nil
}

func (d *winDisplay) WindowTitle(h domain.WindowHandle) (string, error) {
	var buf [512]uint16
	// Zero return is both "no title" and "error"; an untitled window is
	// fine either way.
	ret, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf[:ret]), nil
}

func (d *winDisplay) WindowVisible(h domain.WindowHandle) bool {
	ret, _, _ := procIsWindowVisible.Call(uintptr(h))
	return ret != 0
}
