package tui

import (
	"strings"
	"testing"

	"github.com/bivex/wic/internal/config"
)

func TestComputePreviewCountMatches(t *testing.T) {
	cfg := config.Default()

	for _, n := range []int{1, 2, 4, 9} {
		rects := computePreview(cfg, "grid", n)
		if len(rects) != n {
			t.Errorf("grid with %d windows produced %d rects", n, len(rects))
		}
	}
}

func TestComputePreviewCustomProfile(t *testing.T) {
	cfg := config.Default()
	cfg.Profiles = map[string]config.ProfileSpec{
		"split": {Slots: []config.SlotSpec{{Frac: 0.6}, {Frac: 0.4}}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	rects := computePreview(cfg, "split", 2)
	if len(rects) != 2 {
		t.Fatalf("profile preview produced %d rects, want 2", len(rects))
	}
	if rects[0].Width <= rects[1].Width {
		t.Errorf("first slot should be wider: %.0f vs %.0f", rects[0].Width, rects[1].Width)
	}
}

func TestRenderASCIIPreviewDimensions(t *testing.T) {
	cfg := config.Default()

	lines := renderASCIIPreview(cfg, "grid", 4, 40, 12)
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	for i, line := range lines {
		if got := len([]rune(line)); got != 40 {
			t.Errorf("line %d has %d columns, want 40", i, got)
		}
	}

	// Outer border corners
	if !strings.HasPrefix(lines[0], "╔") || !strings.HasSuffix(lines[0], "╗") {
		t.Error("top border missing")
	}
	if !strings.HasPrefix(lines[11], "╚") || !strings.HasSuffix(lines[11], "╝") {
		t.Error("bottom border missing")
	}

	// All four window numbers should appear somewhere
	joined := strings.Join(lines, "\n")
	for _, num := range []string{"1", "2", "3", "4"} {
		if !strings.Contains(joined, num) {
			t.Errorf("window number %s not drawn", num)
		}
	}
}

func TestRenderASCIIPreviewTinyCanvas(t *testing.T) {
	lines := renderASCIIPreview(nil, "grid", 4, 3, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			t.Errorf("tiny canvas should be blank, got %q", line)
		}
	}
}
