package mcp

import (
	"context"
	"testing"

	"github.com/bivex/wic/internal/config"
)

func TestPreviewModeComputesFrames(t *testing.T) {
	s := NewServer(config.Default())

	_, out, err := s.handlePreviewMode(context.Background(), nil, PreviewModeInput{
		Mode:        "grid",
		WindowCount: 4,
	})
	if err != nil {
		t.Fatalf("preview_mode: %v", err)
	}
	if out.Mode != "grid" {
		t.Errorf("mode = %q, want grid", out.Mode)
	}
	if len(out.Windows) != 4 {
		t.Fatalf("got %d frames, want 4", len(out.Windows))
	}
	for i, r := range out.Windows {
		if r.Width <= 0 || r.Height <= 0 {
			t.Errorf("frame %d has empty size: %+v", i, r)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.Width > 1920 || r.Y+r.Height > 1040 {
			t.Errorf("frame %d outside simulated screen: %+v", i, r)
		}
	}
}

func TestPreviewModeDefaults(t *testing.T) {
	s := NewServer(config.Default())

	_, out, err := s.handlePreviewMode(context.Background(), nil, PreviewModeInput{Mode: "focus"})
	if err != nil {
		t.Fatalf("preview_mode: %v", err)
	}
	if len(out.Windows) != 4 {
		t.Errorf("got %d frames with defaulted window_count, want 4", len(out.Windows))
	}
}

func TestPreviewModeCustomProfile(t *testing.T) {
	cfg := config.Default()
	cfg.Profiles = map[string]config.ProfileSpec{
		"split": {Slots: []config.SlotSpec{{Frac: 0.6}, {Frac: 0.4}}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	s := NewServer(cfg)

	_, out, err := s.handlePreviewMode(context.Background(), nil, PreviewModeInput{
		Mode:        "split",
		WindowCount: 2,
		Width:       1000,
		Height:      500,
	})
	if err != nil {
		t.Fatalf("preview_mode: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("got %d frames, want 2", len(out.Windows))
	}
	if out.Windows[0].X >= out.Windows[1].X {
		t.Errorf("slots out of order: first at x=%.1f, second at x=%.1f",
			out.Windows[0].X, out.Windows[1].X)
	}
}

func TestPreviewModeRejectsUnknown(t *testing.T) {
	s := NewServer(config.Default())

	if _, _, err := s.handlePreviewMode(context.Background(), nil, PreviewModeInput{Mode: "bogus"}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, _, err := s.handlePreviewMode(context.Background(), nil, PreviewModeInput{}); err == nil {
		t.Error("expected error for empty mode")
	}
}

func TestListModesWithoutDaemon(t *testing.T) {
	// Point the client at a socket that does not exist so daemon
	// lookups fail and the tool falls back to config-derived data.
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	cfg := config.Default()
	s := NewServer(cfg)

	_, out, err := s.handleListModes(context.Background(), nil, ListModesInput{})
	if err != nil {
		t.Fatalf("list_modes: %v", err)
	}
	if out.DefaultMode != cfg.DefaultMode {
		t.Errorf("default = %q, want %q", out.DefaultMode, cfg.DefaultMode)
	}
	if len(out.Modes) != len(cfg.ModeNames()) {
		t.Errorf("got %d modes, want %d", len(out.Modes), len(cfg.ModeNames()))
	}
	for _, m := range out.Modes {
		if m.Custom {
			t.Errorf("builtin mode %q flagged custom", m.Name)
		}
		if m.Description == "" {
			t.Errorf("builtin mode %q has no description", m.Name)
		}
	}
}
