package control

import (
	"testing"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/platform"
)

type fakeBackend struct {
	display platform.Display
	windows []platform.Window
	moves   map[platform.WindowID][]platform.Rect
}

func newFakeBackend(n int) *fakeBackend {
	fb := &fakeBackend{
		display: platform.Display{
			ID:     0,
			Name:   "fake-0",
			Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			Usable: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1040},
		},
		moves: make(map[platform.WindowID][]platform.Rect),
	}
	for i := 0; i < n; i++ {
		fb.windows = append(fb.windows, platform.Window{
			ID:     platform.WindowID(100 + i),
			AppID:  "app",
			Title:  "window",
			Bounds: platform.Rect{X: 40 * i, Y: 30 * i, Width: 600, Height: 400},
		})
	}
	return fb
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return []platform.Display{f.display}, nil
}

func (f *fakeBackend) ActiveDisplay() (platform.Display, error) {
	return f.display, nil
}

func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) {
	if len(f.windows) == 0 {
		return 0, nil
	}
	return f.windows[0].ID, nil
}

func (f *fakeBackend) ListWindowsOnDisplay(displayID int) ([]platform.Window, error) {
	out := make([]platform.Window, len(f.windows))
	copy(out, f.windows)
	return out, nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.moves[id] = append(f.moves[id], bounds)
	for i := range f.windows {
		if f.windows[i].ID == id {
			f.windows[i].Bounds = bounds
		}
	}
	return nil
}

func TestArrangeMovesEveryWindow(t *testing.T) {
	fb := newFakeBackend(4)
	cfg := config.Default()
	ctrl := NewController(fb, cfg)

	if err := ctrl.ArrangeActiveDisplay(); err != nil {
		t.Fatalf("ArrangeActiveDisplay: %v", err)
	}

	if len(fb.moves) != 4 {
		t.Fatalf("expected 4 windows moved, got %d", len(fb.moves))
	}
	for id, rects := range fb.moves {
		last := rects[len(rects)-1]
		if last.X < 0 || last.Y < 0 ||
			last.X+last.Width > 1920 || last.Y+last.Height > 1040 {
			t.Errorf("window %d placed outside usable frame: %+v", id, last)
		}
	}

	states := ctrl.DisplayStates()
	if len(states) != 1 || states[0].WindowCount != 4 {
		t.Fatalf("unexpected display state: %+v", states)
	}
}

func TestUndoRestoresPreviousGeometry(t *testing.T) {
	fb := newFakeBackend(3)
	original := make(map[platform.WindowID]platform.Rect)
	for _, w := range fb.windows {
		original[w.ID] = w.Bounds
	}

	ctrl := NewController(fb, config.Default())
	if err := ctrl.ArrangeActiveDisplay(); err != nil {
		t.Fatalf("ArrangeActiveDisplay: %v", err)
	}
	if err := ctrl.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	for _, w := range fb.windows {
		if w.Bounds != original[w.ID] {
			t.Errorf("window %d not restored: got %+v want %+v", w.ID, w.Bounds, original[w.ID])
		}
	}

	// Second undo has no snapshot and must not move anything.
	movesBefore := len(fb.moves[fb.windows[0].ID])
	if err := ctrl.Undo(); err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if len(fb.moves[fb.windows[0].ID]) != movesBefore {
		t.Error("second undo moved windows")
	}
}

func TestSetActiveModeRejectsUnknown(t *testing.T) {
	ctrl := NewController(newFakeBackend(0), config.Default())

	if err := ctrl.SetActiveMode("no-such-mode"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if err := ctrl.SetActiveMode("focus"); err != nil {
		t.Fatalf("SetActiveMode(focus): %v", err)
	}
	if got := ctrl.ActiveMode(); got != "focus" {
		t.Fatalf("ActiveMode = %q, want focus", got)
	}
}

func TestCycleModeWrapsAround(t *testing.T) {
	cfg := config.Default()
	ctrl := NewController(newFakeBackend(0), cfg)

	names := cfg.ModeNames()
	first := names[0]
	if err := ctrl.SetActiveMode(first); err != nil {
		t.Fatalf("SetActiveMode: %v", err)
	}

	prev, err := ctrl.CycleMode(-1)
	if err != nil {
		t.Fatalf("CycleMode(-1): %v", err)
	}
	if prev != names[len(names)-1] {
		t.Fatalf("cycling back from first mode gave %q, want %q", prev, names[len(names)-1])
	}

	back, err := ctrl.CycleMode(1)
	if err != nil {
		t.Fatalf("CycleMode(1): %v", err)
	}
	if back != first {
		t.Fatalf("cycling forward gave %q, want %q", back, first)
	}
}

func TestArrangeWithCustomProfile(t *testing.T) {
	fb := newFakeBackend(2)
	cfg := config.Default()
	cfg.Profiles = map[string]config.ProfileSpec{
		"split": {Slots: []config.SlotSpec{{Frac: 0.5}, {Frac: 0.5}}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	ctrl := NewController(fb, cfg)
	if err := ctrl.ArrangeDisplay("split", -1); err != nil {
		t.Fatalf("ArrangeDisplay(split): %v", err)
	}
	if len(fb.moves) != 2 {
		t.Fatalf("expected 2 windows moved, got %d", len(fb.moves))
	}
}

func TestKeepOnScreenOnlyTouchesOffenders(t *testing.T) {
	fb := newFakeBackend(2)
	fb.windows[0].Bounds = platform.Rect{X: 100, Y: 100, Width: 400, Height: 300} // fine
	fb.windows[1].Bounds = platform.Rect{X: 1800, Y: -50, Width: 600, Height: 400}

	ctrl := NewController(fb, config.Default())
	moved, err := ctrl.KeepOnScreen()
	if err != nil {
		t.Fatalf("KeepOnScreen: %v", err)
	}
	if moved != 1 {
		t.Fatalf("corrected %d windows, want 1", moved)
	}
	if _, touched := fb.moves[fb.windows[0].ID]; touched {
		t.Error("compliant window was moved")
	}
	fixed := fb.windows[1].Bounds
	if fixed.X < 0 || fixed.Y < 0 || fixed.X+fixed.Width > 1920 || fixed.Y+fixed.Height > 1040 {
		t.Errorf("offending window still outside usable frame: %+v", fixed)
	}
}

func TestMarginsAppliedOnSetFrame(t *testing.T) {
	fb := newFakeBackend(1)
	cfg := config.Default()
	cfg.AppMargins = map[string]config.Margins{
		"app": {Top: 10, Bottom: 10, Left: 5, Right: 5},
	}

	ctrl := NewController(fb, cfg)
	if err := ctrl.ArrangeActiveDisplay(); err != nil {
		t.Fatalf("ArrangeActiveDisplay: %v", err)
	}

	rects := fb.moves[fb.windows[0].ID]
	if len(rects) == 0 {
		t.Fatal("window was not moved")
	}
	got := rects[len(rects)-1]
	// Grid with one window starts at (padding, padding); margins shift
	// the frame further inward.
	if got.X != 15 {
		t.Errorf("X = %d, want 15 (padding 10 plus left margin 5)", got.X)
	}
	if got.Y != 20 {
		t.Errorf("Y = %d, want 20 (padding 10 plus top margin 10)", got.Y)
	}
}
