//go:build linux

package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/bivex/wic/internal/x11"
)

// LinuxBackend implements Backend over an X11 connection.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend wraps an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil exposes the xgbutil connection for hotkey registration.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Displays returns all active displays with their usable frames.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.Monitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}
	sort.Slice(displays, func(i, j int) bool { return displays[i].ID < displays[j].ID })
	return displays, nil
}

// ActiveDisplay returns the display holding the focused window.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	m, err := conn.ActiveMonitor()
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(m), nil
}

// ActiveWindow returns the currently focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// ListWindowsOnDisplay lists normal, visible windows on the current
// desktop whose centers fall inside the display bounds.
func (b *LinuxBackend) ListWindowsOnDisplay(displayID int) ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	displays, err := b.Displays()
	if err != nil {
		return nil, err
	}
	var target *Display
	for i := range displays {
		if displays[i].ID == displayID {
			target = &displays[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("display with id %d not found", displayID)
	}

	clients, err := ewmh.ClientListGet(conn.XUtil)
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(conn.XUtil)
	hasDesktop := desktopErr == nil

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !conn.IsNormalWindow(windowID) {
			continue
		}
		if hasDesktop {
			desktop, err := ewmh.WmDesktopGet(conn.XUtil, windowID)
			if err == nil && desktop != uint(0xFFFFFFFF) && desktop != currentDesktop {
				continue
			}
		}
		if b.shouldSkipByState(windowID) {
			continue
		}

		x, y, w, h, ok := conn.WindowGeometry(windowID)
		if !ok {
			continue
		}
		rect := Rect{X: x, Y: y, Width: w, Height: h}
		if !containsPoint(target.Bounds, x+w/2, y+h/2) {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(conn.XUtil, windowID); err == nil {
			pid = int(p)
		}

		windows = append(windows, Window{
			ID:     WindowID(windowID),
			PID:    pid,
			AppID:  b.windowAppID(windowID),
			Title:  b.windowTitle(windowID),
			Bounds: rect,
		})
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].ID < windows[j].ID })
	return windows, nil
}

// MoveResize moves and resizes a window to the given bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(windowID), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) shouldSkipByState(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.conn.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) windowAppID(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(b.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (b *LinuxBackend) windowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(b.conn.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(b.conn.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return ""
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:     m.ID,
		Name:   m.Name,
		Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		Usable: Rect{X: m.UsableX, Y: m.UsableY, Width: m.UsableWidth, Height: m.UsableHeight},
	}
}

func containsPoint(r Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
