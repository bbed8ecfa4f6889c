package geometry

import "testing"

func TestContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	cases := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"fully inside", Rect{X: 100, Y: 100, Width: 200, Height: 200}, true},
		{"exact fit", Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, true},
		{"touching right edge", Rect{X: 1720, Y: 0, Width: 200, Height: 200}, true},
		{"overhangs right", Rect{X: 1800, Y: 0, Width: 200, Height: 200}, false},
		{"negative origin", Rect{X: -1, Y: 0, Width: 100, Height: 100}, false},
		{"overhangs bottom", Rect{X: 0, Y: 1000, Width: 100, Height: 200}, false},
	}

	for _, tc := range cases {
		if got := Contains(outer, tc.inner); got != tc.want {
			t.Errorf("%s: Contains = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got := Intersection(a, b)
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}

	// Disjoint rects intersect in the zero rect.
	c := Rect{X: 200, Y: 200, Width: 10, Height: 10}
	if got := Intersection(a, c); !got.Empty() {
		t.Errorf("disjoint Intersection = %+v, want empty", got)
	}

	// Edge contact has no area.
	d := Rect{X: 100, Y: 0, Width: 50, Height: 100}
	if got := Intersection(a, d); !got.Empty() {
		t.Errorf("edge-contact Intersection = %+v, want empty", got)
	}
}

func TestClampInto(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	cases := []struct {
		name string
		in   Rect
		want Rect
	}{
		{
			"already inside",
			Rect{X: 10, Y: 10, Width: 100, Height: 100},
			Rect{X: 10, Y: 10, Width: 100, Height: 100},
		},
		{
			"off left",
			Rect{X: -50, Y: 10, Width: 100, Height: 100},
			Rect{X: 0, Y: 10, Width: 100, Height: 100},
		},
		{
			"off bottom right",
			Rect{X: 1900, Y: 1050, Width: 100, Height: 100},
			Rect{X: 1820, Y: 980, Width: 100, Height: 100},
		},
		{
			"wider than bounds",
			Rect{X: -100, Y: 0, Width: 2500, Height: 100},
			Rect{X: 0, Y: 0, Width: 1920, Height: 100},
		},
	}

	for _, tc := range cases {
		got := ClampInto(tc.in, bounds)
		if got != tc.want {
			t.Errorf("%s: ClampInto = %+v, want %+v", tc.name, got, tc.want)
		}
		if !Contains(bounds, got) {
			t.Errorf("%s: result %+v escapes bounds", tc.name, got)
		}
	}
}

func TestClampIntoDegenerateBounds(t *testing.T) {
	got := ClampInto(Rect{X: 5, Y: 5, Width: 100, Height: 100}, Rect{})
	if !got.Empty() {
		t.Errorf("expected zero-area result for zero-area bounds, got %+v", got)
	}
}

func TestCentered(t *testing.T) {
	within := Rect{X: 100, Y: 100, Width: 800, Height: 600}
	got := Centered(400, 300, within)
	want := Rect{X: 300, Y: 250, Width: 400, Height: 300}
	if got != want {
		t.Errorf("Centered = %+v, want %+v", got, want)
	}
}

func TestAspectRatio(t *testing.T) {
	if ar := (Rect{Width: 3440, Height: 1440}).AspectRatio(); ar < 2.38 || ar > 2.39 {
		t.Errorf("ultrawide aspect = %v", ar)
	}
	if ar := (Rect{Width: 100, Height: 0}).AspectRatio(); ar != 0 {
		t.Errorf("degenerate aspect = %v, want 0", ar)
	}
}
