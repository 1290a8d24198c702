//go:build linux
// +build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// ShellClient defines the interface for the GNOME Shell window
// introspection calls provided by the Window Calls extension.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/shell_client_mock.go -package=mocks github.com/genricoloni/umbra/internal/platform ShellClient
type ShellClient interface {
	// Close closes the D-Bus connection
	Close() error

	// ListWindows returns the extension's JSON description of all
	// top-level windows
	ListWindows() (string, error)

	// WindowTitle returns the title of one window by its id
	WindowTitle(id uint64) (string, error)
}

const (
	shellBusName      = "org.gnome.Shell"
	shellWindowsPath  = "/org/gnome/Shell/Extensions/Windows"
	shellWindowsIface = "org.gnome.Shell.Extensions.Windows"
	shellListMethod   = shellWindowsIface + ".List"
	shellGetTitleCall = shellWindowsIface + ".GetTitle"
)

// StdShellClient is the real implementation using godbus
type StdShellClient struct {
	conn *dbus.Conn
}

// NewStdShellClient creates a real D-Bus client connected to the session bus
func NewStdShellClient() (*StdShellClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdShellClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdShellClient) Close() error {
	return c.conn.Close()
}

// ListWindows returns the extension's JSON description of all top-level windows
func (c *StdShellClient) ListWindows() (string, error) {
	var payload string
	obj := c.conn.Object(shellBusName, dbus.ObjectPath(shellWindowsPath))
	err := obj.Call(shellListMethod, 0).Store(&payload)
	return payload, err
}

// WindowTitle returns the title of one window by its id
func (c *StdShellClient) WindowTitle(id uint64) (string, error) {
	var title string
	obj := c.conn.Object(shellBusName, dbus.ObjectPath(shellWindowsPath))
	err := obj.Call(shellGetTitleCall, 0, id).Store(&title)
	return title, err
}
