package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor describes a physical display. Usable* is the frame left after
// subtracting dock/panel struts; it is what layout operates on.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int

	UsableX      int
	UsableY      int
	UsableWidth  int
	UsableHeight int
}

// Monitors retrieves all active monitors via XRandR, each with its
// usable work area resolved.
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		m := Monitor{
			ID:     i,
			Name:   name,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		c.resolveUsable(&m)
		monitors = append(monitors, m)
	}

	return monitors, nil
}

// ActiveMonitor returns the monitor containing the focused window,
// falling back to the monitor under the pointer, then the first one.
func (c *Connection) ActiveMonitor() (Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	if activeWin, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && activeWin != 0 {
		if cx, cy, ok := c.windowCenter(activeWin); ok {
			for _, m := range monitors {
				if pointInMonitor(m, cx, cy) {
					return m, nil
				}
			}
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		for _, m := range monitors {
			if pointInMonitor(m, int(pointer.RootX), int(pointer.RootY)) {
				return m, nil
			}
		}
	}

	return monitors[0], nil
}

// resolveUsable subtracts dock struts from the monitor frame. When no
// dock publishes struts it falls back to the EWMH work area of the
// current desktop.
func (c *Connection) resolveUsable(m *Monitor) {
	m.UsableX = m.X
	m.UsableY = m.Y
	m.UsableWidth = m.Width
	m.UsableHeight = m.Height

	if c.applyStruts(m) {
		return
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return
	}
	idx := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		idx = int(current)
	}
	wa := workArea[idx]

	x1 := maxInt(m.X, int(wa.X))
	y1 := maxInt(m.Y, int(wa.Y))
	x2 := minInt(m.X+m.Width, int(wa.X)+int(wa.Width))
	y2 := minInt(m.Y+m.Height, int(wa.Y)+int(wa.Height))
	if x2 > x1 && y2 > y1 {
		m.UsableX = x1
		m.UsableY = y1
		m.UsableWidth = x2 - x1
		m.UsableHeight = y2 - y1
	}
}

type struts struct {
	left, right, top, bottom int
}

// applyStruts accumulates _NET_WM_STRUT_PARTIAL (or plain _NET_WM_STRUT)
// reservations from dock windows that overlap this monitor.
func (c *Connection) applyStruts(m *Monitor) bool {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return false
	}
	rootW := int(rootGeom.Width)
	rootH := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}

	var acc struts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}
		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID)
		if err != nil {
			s, err := ewmh.WmStrutGet(c.XUtil, windowID)
			if err != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftStartY: 0, LeftEndY: uint(rootH - 1),
				RightStartY: 0, RightEndY: uint(rootH - 1),
				TopStartX: 0, TopEndX: uint(rootW - 1),
				BottomStartX: 0, BottomEndX: uint(rootW - 1),
			}
		}
		accumulateStruts(m, rootW, rootH, sp, &acc)
	}

	if acc.left == 0 && acc.right == 0 && acc.top == 0 && acc.bottom == 0 {
		return false
	}

	m.UsableX = m.X + acc.left
	m.UsableY = m.Y + acc.top
	m.UsableWidth = maxInt(m.Width-acc.left-acc.right, 1)
	m.UsableHeight = maxInt(m.Height-acc.top-acc.bottom, 1)
	return true
}

func accumulateStruts(m *Monitor, rootW, rootH int, sp *ewmh.WmStrutPartial, acc *struts) {
	mx1, my1 := m.X, m.Y
	mx2, my2 := m.X+m.Width, m.Y+m.Height

	if sp.Top > 0 {
		if w, h := overlapSize(mx1, my1, mx2, my2, int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top)); w > 0 {
			acc.top = maxInt(acc.top, h)
		}
	}
	if sp.Bottom > 0 {
		if w, h := overlapSize(mx1, my1, mx2, my2, int(sp.BottomStartX), rootH-int(sp.Bottom), int(sp.BottomEndX)+1, rootH); w > 0 {
			acc.bottom = maxInt(acc.bottom, h)
		}
	}
	if sp.Left > 0 {
		if w, _ := overlapSize(mx1, my1, mx2, my2, 0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1); w > 0 {
			acc.left = maxInt(acc.left, w)
		}
	}
	if sp.Right > 0 {
		if w, _ := overlapSize(mx1, my1, mx2, my2, rootW-int(sp.Right), int(sp.RightStartY), rootW, int(sp.RightEndY)+1); w > 0 {
			acc.right = maxInt(acc.right, w)
		}
	}
}

func overlapSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) (int, int) {
	x1 := maxInt(ax1, bx1)
	y1 := maxInt(ay1, by1)
	x2 := minInt(ax2, bx2)
	y2 := minInt(ay2, by2)
	if x2 <= x1 || y2 <= y1 {
		return 0, 0
	}
	return x2 - x1, y2 - y1
}

func (c *Connection) windowCenter(windowID xproto.Window) (int, int, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, false
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(translate.DstX) + int(geom.Width)/2, int(translate.DstY) + int(geom.Height)/2, true
}

func pointInMonitor(m Monitor, x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
