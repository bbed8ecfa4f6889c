// Package platform abstracts window-system operations behind a
// platform-neutral interface. The layout engine talks to it only
// through the arrange source/sink adapters in the control package.
package platform

import "github.com/bivex/wic/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in integer screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Geometry converts to the engine's float rect.
func (r Rect) Geometry() geometry.Rect {
	return geometry.Rect{
		X:      float64(r.X),
		Y:      float64(r.Y),
		Width:  float64(r.Width),
		Height: float64(r.Height),
	}
}

// FromGeometry rounds an engine rect back to pixel coordinates.
func FromGeometry(g geometry.Rect) Rect {
	return Rect{
		X:      int(g.X + 0.5),
		Y:      int(g.Y + 0.5),
		Width:  int(g.Width + 0.5),
		Height: int(g.Height + 0.5),
	}
}

// Display describes a physical display. Usable excludes reserved
// chrome (panels, docks) and is the container layout runs against.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Screen converts the display frames to the engine's screen type.
func (d Display) Screen() geometry.Screen {
	return geometry.Screen{Full: d.Bounds.Geometry(), Usable: d.Usable.Geometry()}
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindowsOnDisplay(displayID int) ([]Window, error)
	MoveResize(windowID WindowID, bounds Rect) error
}
