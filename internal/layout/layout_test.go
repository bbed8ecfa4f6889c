package layout

import (
	"math"
	"testing"

	"github.com/bivex/wic/internal/geometry"
)

func screenOf(w, h float64) geometry.Screen {
	r := geometry.Rect{X: 0, Y: 0, Width: w, Height: h}
	return geometry.Screen{Full: r, Usable: r}
}

func TestGridDeterminism(t *testing.T) {
	rects := Compute(ModeGrid, 4, screenOf(1920, 1080), Options{})
	want := []geometry.Rect{
		{X: 0, Y: 0, Width: 960, Height: 540},
		{X: 960, Y: 0, Width: 960, Height: 540},
		{X: 0, Y: 540, Width: 960, Height: 540},
		{X: 960, Y: 540, Width: 960, Height: 540},
	}
	if len(rects) != len(want) {
		t.Fatalf("expected %d rects, got %d", len(want), len(rects))
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, rects[i], want[i])
		}
	}
}

func TestGridPaddingShrinksArea(t *testing.T) {
	rects := Compute(ModeGrid, 1, screenOf(1920, 1080), Options{Padding: 10})
	r := rects[0]
	if r.X != 10 || r.Y != 10 {
		t.Errorf("padded origin = (%v,%v), want (10,10)", r.X, r.Y)
	}
	if r.Width != 1900 {
		t.Errorf("padded width = %v, want 1900", r.Width)
	}
	// One extra padding at the bottom for dock clearance.
	if r.Height != 1080-3*10 {
		t.Errorf("padded height = %v, want %v", r.Height, 1080-3*10)
	}
}

func TestFocusSingleWindow(t *testing.T) {
	rects := Compute(ModeFocus, 1, screenOf(1920, 1080), Options{})
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	r := rects[0]
	if r.X != 0 {
		t.Errorf("x = %v, want 0", r.X)
	}
	if math.Abs(r.Width-1344) > 0.01 {
		t.Errorf("width = %v, want 1344", r.Width)
	}
}

func TestFocusThreeWindows(t *testing.T) {
	rects := Compute(ModeFocus, 3, screenOf(1920, 1080), Options{})
	if len(rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(rects))
	}
	if math.Abs(rects[0].Width-1280) > 0.01 {
		t.Errorf("main width = %v, want 1280", rects[0].Width)
	}
	for i := 1; i < 3; i++ {
		if math.Abs(rects[i].Height-540) > 0.01 {
			t.Errorf("side %d height = %v, want 540", i, rects[i].Height)
		}
		if math.Abs(rects[i].X-1280) > 0.01 {
			t.Errorf("side %d x = %v, want 1280", i, rects[i].X)
		}
	}
}

func TestFibonacciMainProportion(t *testing.T) {
	rects := Compute(ModeFibonacci, 2, screenOf(1000, 1000), Options{})
	if got := rects[0].Width / 1000; math.Abs(got-0.618) > 0.001 {
		t.Errorf("fibonacci main fraction = %v, want ~0.618", got)
	}
}

func TestUltrawideDelegation(t *testing.T) {
	// Below the 2.0 aspect threshold, ultrawide modes must produce
	// output identical to Focus on the same input.
	std := screenOf(1920, 1080)
	for _, mode := range []Mode{ModeUltrawideDev, ModeUltrawideMedia} {
		for _, n := range []int{1, 2, 3, 5} {
			got := Compute(mode, n, std, Options{})
			want := Compute(ModeFocus, n, std, Options{})
			if len(got) != len(want) {
				t.Fatalf("%s n=%d: %d rects, want %d", mode, n, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("%s n=%d rect %d = %+v, want focus %+v", mode, n, i, got[i], want[i])
				}
			}
		}
	}

	// On a true ultrawide it must not delegate.
	uw := screenOf(3440, 1440)
	got := Compute(ModeUltrawideDev, 3, uw, Options{})
	want := Compute(ModeFocus, 3, uw, Options{})
	same := true
	for i := range got {
		if got[i] != want[i] {
			same = false
		}
	}
	if same {
		t.Error("ultrawide-dev on a 21:9 screen should differ from focus")
	}
}

func TestCascadeOverlapsByDesign(t *testing.T) {
	rects := Compute(ModeCascade, 3, screenOf(1920, 1080), Options{})
	for i := 1; i < len(rects); i++ {
		if rects[i].X-rects[i-1].X != 30 || rects[i].Y-rects[i-1].Y != 30 {
			t.Errorf("cascade offset %d = (%v,%v), want (30,30)",
				i, rects[i].X-rects[i-1].X, rects[i].Y-rects[i-1].Y)
		}
		if geometry.Intersection(rects[i-1], rects[i]).Empty() {
			t.Errorf("cascade panes %d and %d should overlap", i-1, i)
		}
	}
}

func TestProfilesExplicitDegeneracy(t *testing.T) {
	screen := screenOf(1920, 1080)
	for m, p := range profileTable {
		rects := Compute(m, 1, screen, Options{})
		if len(rects) != 1 {
			t.Fatalf("%s n=1: got %d rects", m, len(rects))
		}
		switch p.Single {
		case SingleFull:
			if rects[0] != screen.Usable {
				t.Errorf("%s n=1 = %+v, want full usable area", m, rects[0])
			}
		case SingleCentered:
			if rects[0] == screen.Usable {
				t.Errorf("%s n=1 should be centered, got full area", m)
			}
			if !geometry.Contains(screen.Usable, rects[0]) {
				t.Errorf("%s n=1 centered rect %+v escapes screen", m, rects[0])
			}
		}
		if got := Compute(m, 0, screen, Options{}); len(got) != 0 {
			t.Errorf("%s n=0: expected empty result, got %d rects", m, len(got))
		}
	}
}

func TestProfileFractionsSumToOne(t *testing.T) {
	for m, p := range profileTable {
		var sum float64
		for _, s := range p.Slots {
			sum += s.Frac
		}
		if math.Abs(sum-1) > 0.001 {
			t.Errorf("%s slot fractions sum to %v, want 1", m, sum)
		}
	}
}

func TestProfileOverflowStacksInLastSlot(t *testing.T) {
	screen := screenOf(1920, 1080)
	// Coding has 3 slots; windows 2..5 share the console slot.
	rects := Compute(ModeCoding, 6, screen, Options{})
	if len(rects) != 6 {
		t.Fatalf("got %d rects", len(rects))
	}
	lastSlotX := 1920 * 0.8
	for i := 2; i < 6; i++ {
		if math.Abs(rects[i].X-lastSlotX) > 0.01 {
			t.Errorf("overflow window %d x = %v, want %v", i, rects[i].X, lastSlotX)
		}
	}
	// Stacked equally along the cross-axis.
	if math.Abs(rects[2].Height-1080.0/4) > 0.01 {
		t.Errorf("overflow height = %v, want %v", rects[2].Height, 1080.0/4)
	}
}

func TestProjectionNonOverlap(t *testing.T) {
	screen := screenOf(1920, 1080)
	tol := DefaultTolerance + 0.01
	for _, n := range []int{2, 5, 8, 12} {
		rects := Compute(ModeProjection, n, screen, Options{})
		for i := 0; i < len(rects); i++ {
			for j := i + 1; j < len(rects); j++ {
				inter := geometry.Intersection(rects[i], rects[j])
				if inter.Width > float64(tol) {
					t.Errorf("n=%d: rects %d and %d overlap by %v px", n, i, j, inter.Width)
				}
			}
		}
	}
}

func TestBarrierKeepsMargin(t *testing.T) {
	screen := screenOf(1920, 1080)
	rects := Compute(ModeBarrier, 4, screen, Options{})
	for i, r := range rects {
		if r.X < screen.Usable.X+1 || r.Right() > screen.Usable.Right()-1 {
			t.Errorf("rect %d touches the screen edge: %+v", i, r)
		}
	}
}

func TestBarrierFallsBackOnTinyScreen(t *testing.T) {
	// Shrinking a screen this small below the minimum usable size must
	// fall back to the grid on the original rect.
	screen := screenOf(210, 160)
	rects := Compute(ModeBarrier, 1, screen, Options{})
	if len(rects) != 1 {
		t.Fatalf("got %d rects", len(rects))
	}
	if rects[0] != screen.Usable {
		t.Errorf("fallback rect = %+v, want full usable %+v", rects[0], screen.Usable)
	}
}

func TestActiveSetPinsBoundaryWindows(t *testing.T) {
	screen := screenOf(1920, 1080)
	n := 5
	rects := Compute(ModeActiveSet, n, screen, Options{})
	if rects[0].X != 0 {
		t.Errorf("first window moved off the left edge: %+v", rects[0])
	}
	if math.Abs(rects[n-1].Right()-1920) > 1 {
		t.Errorf("last window moved off the right edge: %+v", rects[n-1])
	}
	// Interior windows share the central 60% band.
	band := 1920 * 0.6
	share := band / float64(n-2)
	for i := 1; i < n-1; i++ {
		if math.Abs(rects[i].Width-share) > 0.01 {
			t.Errorf("interior window %d width = %v, want %v", i, rects[i].Width, share)
		}
	}
}

func TestRelaxationAnchorsEnds(t *testing.T) {
	screen := screenOf(1920, 1080)
	rects := Compute(ModeRelaxation, 4, screen, Options{})
	if rects[0].X < 0 || rects[0].X > 8 {
		t.Errorf("first window not anchored near the left inset: x=%v", rects[0].X)
	}
	if d := math.Abs(rects[3].Right() - (1920 - 4)); d > 8 {
		t.Errorf("last window not anchored near the right inset: right=%v", rects[3].Right())
	}
}

func TestPivotRightEdgeNormalized(t *testing.T) {
	screen := screenOf(1920, 1080)
	for _, n := range []int{2, 3, 6} {
		rects := Compute(ModePivot, n, screen, Options{})
		if d := math.Abs(rects[n-1].Right() - 1920); d > 0.01 {
			t.Errorf("n=%d: rightmost edge = %v, want 1920", n, rects[n-1].Right())
		}
	}
}

func TestComputeEmptyInput(t *testing.T) {
	for _, m := range Modes() {
		if got := Compute(m, 0, screenOf(1920, 1080), Options{}); len(got) != 0 {
			t.Errorf("%s: n=0 returned %d rects", m, len(got))
		}
	}
}

func TestComputeCountMatches(t *testing.T) {
	screen := screenOf(1920, 1080)
	for _, m := range Modes() {
		for _, n := range []int{1, 2, 3, 4, 7, 13} {
			if got := Compute(m, n, screen, Options{}); len(got) != n {
				t.Errorf("%s n=%d: returned %d rects", m, n, len(got))
			}
		}
	}
}

func TestModesClosedSet(t *testing.T) {
	all := Modes()
	if len(all) != 29 {
		t.Errorf("mode count = %d, want 29", len(all))
	}
	seen := map[Mode]bool{}
	for _, m := range all {
		if seen[m] {
			t.Errorf("duplicate mode %s", m)
		}
		seen[m] = true
		if !Valid(m) {
			t.Errorf("mode %s not valid", m)
		}
		if Family(m) == "unknown" {
			t.Errorf("mode %s has unknown family", m)
		}
	}
	if Valid(Mode("bogus")) {
		t.Error("bogus mode reported valid")
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode accepted bogus mode")
	}
}
