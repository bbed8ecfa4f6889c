package ipc

import (
	"path/filepath"
	"testing"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/control"
	"github.com/bivex/wic/internal/platform"
)

type stubBackend struct {
	display platform.Display
	windows []platform.Window
}

func (s *stubBackend) Displays() ([]platform.Display, error) {
	return []platform.Display{s.display}, nil
}

func (s *stubBackend) ActiveDisplay() (platform.Display, error) {
	return s.display, nil
}

func (s *stubBackend) ActiveWindow() (platform.WindowID, error) {
	return 0, nil
}

func (s *stubBackend) ListWindowsOnDisplay(displayID int) ([]platform.Window, error) {
	return s.windows, nil
}

func (s *stubBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	for i := range s.windows {
		if s.windows[i].ID == id {
			s.windows[i].Bounds = bounds
		}
	}
	return nil
}

func newTestServer(t *testing.T) (*Server, *Client) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	backend := &stubBackend{
		display: platform.Display{
			ID:     0,
			Name:   "stub-0",
			Bounds: platform.Rect{Width: 1920, Height: 1080},
			Usable: platform.Rect{Width: 1920, Height: 1040},
		},
		windows: []platform.Window{
			{ID: 1, AppID: "a", Bounds: platform.Rect{X: 5, Y: 5, Width: 500, Height: 400}},
			{ID: 2, AppID: "b", Bounds: platform.Rect{X: 50, Y: 50, Width: 500, Height: 400}},
		},
	}

	cfg, err := config.LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	ctrl := control.NewController(backend, cfg)
	srv, err := NewServer(cfg, ctrl, backend, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	return srv, NewClient()
}

func TestStatusRoundTrip(t *testing.T) {
	_, client := newTestServer(t)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.DaemonRunning {
		t.Error("DaemonRunning = false")
	}
	if status.ActiveMode != "grid" {
		t.Errorf("ActiveMode = %q, want grid", status.ActiveMode)
	}
}

func TestArrangeAndModesRoundTrip(t *testing.T) {
	_, client := newTestServer(t)

	if err := client.Arrange("focus"); err != nil {
		t.Fatalf("Arrange: %v", err)
	}

	modes, err := client.ListModes()
	if err != nil {
		t.Fatalf("ListModes: %v", err)
	}
	if modes.ActiveMode != "focus" {
		t.Errorf("ActiveMode = %q, want focus", modes.ActiveMode)
	}
	if len(modes.Modes) == 0 {
		t.Error("no modes listed")
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.WindowCount != 2 {
		t.Errorf("WindowCount = %d, want 2", status.WindowCount)
	}
}

func TestArrangeRejectsUnknownMode(t *testing.T) {
	_, client := newTestServer(t)

	if err := client.Arrange("no-such-mode"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestGetMonitorsIncludesUsableFrame(t *testing.T) {
	_, client := newTestServer(t)

	monitors, err := client.GetMonitors()
	if err != nil {
		t.Fatalf("GetMonitors: %v", err)
	}
	if len(monitors.Monitors) != 1 {
		t.Fatalf("got %d monitors, want 1", len(monitors.Monitors))
	}
	m := monitors.Monitors[0]
	if m.Height != 1080 || m.UsableHeight != 1040 {
		t.Errorf("monitor frames wrong: %+v", m)
	}
}

func TestSetDefaultModeSwapsConfigCopy(t *testing.T) {
	srv, client := newTestServer(t)

	before := srv.GetConfig()
	if err := client.SetDefaultMode("focus", false); err != nil {
		t.Fatalf("SetDefaultMode: %v", err)
	}

	// The previously shared config must not be written in place.
	if before.DefaultMode != "grid" {
		t.Errorf("shared config mutated in place: DefaultMode = %q", before.DefaultMode)
	}
	after := srv.GetConfig()
	if after == before {
		t.Error("config pointer not swapped")
	}
	if after.DefaultMode != "focus" {
		t.Errorf("DefaultMode = %q, want focus", after.DefaultMode)
	}

	modes, err := client.ListModes()
	if err != nil {
		t.Fatalf("ListModes: %v", err)
	}
	if modes.DefaultMode != "focus" {
		t.Errorf("reported default = %q, want focus", modes.DefaultMode)
	}
	if modes.ActiveMode != "focus" {
		t.Errorf("reported active = %q, want focus", modes.ActiveMode)
	}
}

func TestUndoRoundTrip(t *testing.T) {
	srv, client := newTestServer(t)

	backend := srv.backend.(*stubBackend)
	before := backend.windows[0].Bounds

	if err := client.Arrange(""); err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if backend.windows[0].Bounds == before {
		t.Fatal("arrange did not move window")
	}
	if err := client.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if backend.windows[0].Bounds != before {
		t.Errorf("undo did not restore window: %+v", backend.windows[0].Bounds)
	}
}
