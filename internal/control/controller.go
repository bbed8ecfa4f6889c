// Package control owns the daemon-side arrangement state: the active
// mode, per-display undo snapshots, and the bridge between the
// platform backend and the pure layout engine.
package control

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/bivex/wic/internal/arrange"
	"github.com/bivex/wic/internal/boundary"
	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/geometry"
	"github.com/bivex/wic/internal/platform"
)

// DisplayState tracks the last arrangement performed on a display.
type DisplayState struct {
	DisplayID          int
	WindowCount        int
	Mode               string
	LastArrangedAt     time.Time
	PreviousGeometries map[platform.WindowID]platform.Rect
}

// Controller manages arrangement state across displays.
type Controller struct {
	mu         sync.RWMutex
	backend    platform.Backend
	config     *config.Config
	activeMode string
	displays   map[int]*DisplayState
}

// NewController creates a controller bound to a backend and config.
func NewController(backend platform.Backend, cfg *config.Config) *Controller {
	return &Controller{
		backend:    backend,
		config:     cfg,
		activeMode: cfg.DefaultMode,
		displays:   make(map[int]*DisplayState),
	}
}

// ArrangeActiveDisplay arranges all windows on the currently active
// display using the active mode.
func (c *Controller) ArrangeActiveDisplay() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.arrangeLocked("", -1)
}

// ArrangeDisplay arranges a specific display, optionally overriding
// the active mode for this one invocation. An empty mode means the
// controller's active mode; displayID -1 means the active display.
func (c *Controller) ArrangeDisplay(mode string, displayID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.arrangeLocked(mode, displayID)
}

func (c *Controller) arrangeLocked(modeName string, displayID int) error {
	start := time.Now()

	if modeName == "" {
		modeName = c.activeMode
	}
	if modeName == "" {
		modeName = c.config.DefaultMode
	}

	mode, profile, err := c.config.ResolveMode(modeName)
	if err != nil {
		log.Printf("Failed to resolve mode %q: %v", modeName, err)
		return err
	}
	log.Printf("Using mode: %s", modeName)

	display, err := c.resolveDisplay(displayID)
	if err != nil {
		log.Printf("Failed to get display: %v", err)
		return err
	}
	log.Printf("Display: %s (%dx%d at %d,%d, usable %dx%d)",
		display.Name, display.Bounds.Width, display.Bounds.Height,
		display.Bounds.X, display.Bounds.Y,
		display.Usable.Width, display.Usable.Height)

	windows, err := c.backend.ListWindowsOnDisplay(display.ID)
	if err != nil {
		log.Printf("Failed to list windows: %v", err)
		return err
	}
	log.Printf("Found %d window(s)", len(windows))

	if len(windows) == 0 {
		return nil
	}

	previous := make(map[platform.WindowID]platform.Rect, len(windows))
	for _, w := range windows {
		previous[w.ID] = w.Bounds
	}

	session := newSession(c.backend, c.config, windows)
	req := arrange.Request{
		Mode:    mode,
		Windows: session.handles(),
		Screen:  display.Screen(),
		Options: c.config.Options(),
	}

	var moved int
	if profile != nil {
		moved, err = arrange.ArrangeProfile(session, session, *profile, req)
	} else {
		moved, err = arrange.Arrange(session, session, req)
	}
	if err != nil {
		return err
	}

	c.displays[display.ID] = &DisplayState{
		DisplayID:          display.ID,
		WindowCount:        len(windows),
		Mode:               modeName,
		LastArrangedAt:     time.Now(),
		PreviousGeometries: previous,
	}

	log.Printf("Completed: arrange in %.2fms (moved %d of %d)",
		float64(time.Since(start).Microseconds())/1000.0, moved, len(windows))
	return nil
}

// Undo restores windows on the active display to the geometry captured
// before the last arrangement. A second undo is a no-op.
func (c *Controller) Undo() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()

	display, err := c.backend.ActiveDisplay()
	if err != nil {
		return err
	}

	state := c.displays[display.ID]
	if state == nil || len(state.PreviousGeometries) == 0 {
		log.Println("Nothing to undo")
		return nil
	}

	for id, rect := range state.PreviousGeometries {
		if err := c.backend.MoveResize(id, rect); err != nil {
			log.Printf("Warning: failed to restore window %d: %v", id, err)
		}
	}
	state.PreviousGeometries = nil

	log.Printf("Completed: undo in %.2fms",
		float64(time.Since(start).Microseconds())/1000.0)
	return nil
}

// KeepOnScreen corrects every window on the active display that sits
// outside the usable frame, leaving compliant windows untouched.
func (c *Controller) KeepOnScreen() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()

	display, err := c.backend.ActiveDisplay()
	if err != nil {
		return 0, err
	}
	windows, err := c.backend.ListWindowsOnDisplay(display.ID)
	if err != nil {
		return 0, err
	}
	log.Printf("Found %d window(s)", len(windows))

	session := newSession(c.backend, c.config, windows)
	lim := boundary.Limits{
		MinWidth:  c.config.MinWidth,
		MinHeight: c.config.MinHeight,
	}
	moved, err := arrange.KeepOnScreen(session, session, display.Screen(), lim)
	if err != nil {
		return 0, err
	}

	log.Printf("Completed: keep-on-screen in %.2fms (corrected %d)",
		float64(time.Since(start).Microseconds())/1000.0, moved)
	return moved, nil
}

// ActiveMode returns the current mode name.
func (c *Controller) ActiveMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.activeMode != "" {
		return c.activeMode
	}
	return c.config.DefaultMode
}

// SetActiveMode switches the mode used by subsequent arrangements.
func (c *Controller) SetActiveMode(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, err := c.config.ResolveMode(name); err != nil {
		return err
	}
	c.activeMode = name
	return nil
}

// CycleMode moves to the next/previous selectable mode and returns the
// new mode name.
func (c *Controller) CycleMode(delta int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := c.config.ModeNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no modes available")
	}

	current := c.activeMode
	if current == "" {
		current = c.config.DefaultMode
	}

	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}

	n := len(names)
	next := (idx + delta) % n
	if next < 0 {
		next += n
	}

	c.activeMode = names[next]
	return c.activeMode, nil
}

// UpdateConfig swaps in a reloaded configuration. If the active mode no
// longer resolves it falls back to the new default.
func (c *Controller) UpdateConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = cfg
	if c.activeMode == "" {
		c.activeMode = cfg.DefaultMode
		return
	}
	if _, _, err := cfg.ResolveMode(c.activeMode); err != nil {
		log.Printf("Active mode %q no longer valid, falling back to %q",
			c.activeMode, cfg.DefaultMode)
		c.activeMode = cfg.DefaultMode
	}
}

// DisplayStates returns a copy of the per-display arrangement state,
// sorted by display ID.
func (c *Controller) DisplayStates() []DisplayState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]DisplayState, 0, len(c.displays))
	for _, st := range c.displays {
		cp := *st
		cp.PreviousGeometries = nil
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayID < out[j].DisplayID })
	return out
}

func (c *Controller) resolveDisplay(displayID int) (platform.Display, error) {
	if displayID < 0 {
		return c.backend.ActiveDisplay()
	}
	displays, err := c.backend.Displays()
	if err != nil {
		return platform.Display{}, err
	}
	for _, d := range displays {
		if d.ID == displayID {
			return d, nil
		}
	}
	return platform.Display{}, fmt.Errorf("no display with ID %d", displayID)
}

// session adapts one backend window listing to the engine's source and
// sink interfaces. Margins are applied on the way out, so the engine
// never sees per-application adjustments.
type session struct {
	backend platform.Backend
	config  *config.Config
	windows map[arrange.Handle]platform.Window
	order   []arrange.Handle
}

func newSession(backend platform.Backend, cfg *config.Config, windows []platform.Window) *session {
	s := &session{
		backend: backend,
		config:  cfg,
		windows: make(map[arrange.Handle]platform.Window, len(windows)),
		order:   make([]arrange.Handle, 0, len(windows)),
	}
	for _, w := range windows {
		h := arrange.Handle(w.ID)
		s.windows[h] = w
		s.order = append(s.order, h)
	}
	return s
}

func (s *session) handles() []arrange.Handle {
	return s.order
}

// ListWindows implements arrange.Source over the captured listing.
func (s *session) ListWindows() ([]arrange.Handle, error) {
	return s.order, nil
}

// CurrentFrame implements arrange.Source.
func (s *session) CurrentFrame(h arrange.Handle) (geometry.Rect, error) {
	w, ok := s.windows[h]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("unknown window handle %d", h)
	}
	return w.Bounds.Geometry(), nil
}

// SetFrame implements arrange.Sink: it applies per-application margins
// and hands the rounded frame to the backend.
func (s *session) SetFrame(h arrange.Handle, target geometry.Rect) error {
	w, ok := s.windows[h]
	if !ok {
		return fmt.Errorf("unknown window handle %d", h)
	}

	margins := s.config.GetMargins(w.AppID)
	adjusted := geometry.Rect{
		X:      target.X + margins.Left,
		Y:      target.Y + margins.Top,
		Width:  target.Width - margins.Left - margins.Right,
		Height: target.Height - margins.Top - margins.Bottom,
	}
	if adjusted.Width < 1 || adjusted.Height < 1 {
		return fmt.Errorf("margins for %q leave no usable space", w.AppID)
	}

	return s.backend.MoveResize(w.ID, platform.FromGeometry(adjusted))
}
