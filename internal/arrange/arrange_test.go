package arrange

import (
	"errors"
	"testing"

	"github.com/bivex/wic/internal/boundary"
	"github.com/bivex/wic/internal/geometry"
	"github.com/bivex/wic/internal/layout"
)

type fakeWM struct {
	frames   map[Handle]geometry.Rect
	setCalls int
	failOn   map[Handle]bool
}

func newFakeWM(handles ...Handle) *fakeWM {
	f := &fakeWM{frames: make(map[Handle]geometry.Rect), failOn: make(map[Handle]bool)}
	for _, h := range handles {
		f.frames[h] = geometry.Rect{X: 10, Y: 10, Width: 640, Height: 480}
	}
	return f
}

func (f *fakeWM) ListWindows() ([]Handle, error) {
	out := make([]Handle, 0, len(f.frames))
	for h := range f.frames {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeWM) CurrentFrame(h Handle) (geometry.Rect, error) {
	r, ok := f.frames[h]
	if !ok {
		return geometry.Rect{}, errors.New("no such window")
	}
	return r, nil
}

func (f *fakeWM) SetFrame(h Handle, r geometry.Rect) error {
	f.setCalls++
	if f.failOn[h] {
		return errors.New("window gone")
	}
	f.frames[h] = r
	return nil
}

func testScreen() geometry.Screen {
	r := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	return geometry.Screen{Full: r, Usable: r}
}

func TestArrangeEmptyBatchNoSinkCalls(t *testing.T) {
	wm := newFakeWM()
	for _, m := range layout.Modes() {
		applied, err := Arrange(wm, wm, Request{Mode: m, Windows: nil, Screen: testScreen()})
		if err != nil {
			t.Errorf("%s: %v", m, err)
		}
		if applied != 0 {
			t.Errorf("%s: applied = %d, want 0", m, applied)
		}
	}
	if wm.setCalls != 0 {
		t.Errorf("sink called %d times for empty batches", wm.setCalls)
	}
}

func TestArrangeMovesAllWindows(t *testing.T) {
	wm := newFakeWM(1, 2, 3, 4)
	applied, err := Arrange(wm, wm, Request{
		Mode:    layout.ModeGrid,
		Windows: []Handle{1, 2, 3, 4},
		Screen:  testScreen(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if applied != 4 {
		t.Errorf("applied = %d, want 4", applied)
	}
	for h, r := range wm.frames {
		if !geometry.Contains(testScreen().Usable, r) {
			t.Errorf("window %d left off screen: %+v", h, r)
		}
	}
}

func TestArrangeContainmentAcrossModesAndAspects(t *testing.T) {
	aspects := []struct {
		name string
		w, h float64
	}{
		{"16:9", 1920, 1080},
		{"21:9", 3440, 1440},
		{"9:16", 1080, 1920},
		{"1:1", 1200, 1200},
	}
	for _, a := range aspects {
		usable := geometry.Rect{X: 0, Y: 0, Width: a.w, Height: a.h}
		screen := geometry.Screen{Full: usable, Usable: usable}
		for _, m := range layout.Modes() {
			for n := 0; n <= 50; n += 7 {
				windows := make([]Handle, n)
				wm := newFakeWM()
				for i := range windows {
					windows[i] = Handle(i + 1)
					wm.frames[Handle(i+1)] = geometry.Rect{X: 5, Y: 5, Width: 300, Height: 300}
				}
				if _, err := Arrange(wm, wm, Request{Mode: m, Windows: windows, Screen: screen}); err != nil {
					t.Fatalf("%s %s n=%d: %v", a.name, m, n, err)
				}
				for h, r := range wm.frames {
					if !geometry.Contains(usable, r) {
						t.Errorf("%s %s n=%d: window %d off screen: %+v", a.name, m, n, h, r)
					}
					if r.Width < layout.DefaultMinWidth || r.Height < layout.DefaultMinHeight {
						t.Errorf("%s %s n=%d: window %d below floor: %+v", a.name, m, n, h, r)
					}
				}
			}
		}
	}
}

func TestArrangeSinkFailureDoesNotAbortSiblings(t *testing.T) {
	wm := newFakeWM(1, 2, 3)
	wm.failOn[2] = true
	applied, err := Arrange(wm, wm, Request{
		Mode:    layout.ModeHorizontal,
		Windows: []Handle{1, 2, 3},
		Screen:  testScreen(),
	})
	if err != nil {
		t.Fatalf("sink failure surfaced as error: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if wm.setCalls != 3 {
		t.Errorf("sink calls = %d, want 3", wm.setCalls)
	}
}

func TestArrangeSkipsWindowsAlreadyInPlace(t *testing.T) {
	wm := newFakeWM(1, 2)
	req := Request{Mode: layout.ModeHorizontal, Windows: []Handle{1, 2}, Screen: testScreen()}
	if _, err := Arrange(wm, wm, req); err != nil {
		t.Fatal(err)
	}
	before := wm.setCalls

	// Second run: everything is already at its target.
	applied, err := Arrange(wm, wm, req)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}
	if wm.setCalls != before {
		t.Errorf("second run wrote to the sink %d times", wm.setCalls-before)
	}
}

func TestArrangeRejectsUnknownMode(t *testing.T) {
	wm := newFakeWM(1)
	if _, err := Arrange(wm, wm, Request{Mode: "nope", Windows: []Handle{1}, Screen: testScreen()}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestKeepOnScreen(t *testing.T) {
	wm := newFakeWM()
	wm.frames[1] = geometry.Rect{X: 10, Y: 10, Width: 400, Height: 300} // fine
	wm.frames[2] = geometry.Rect{X: -500, Y: 40, Width: 400, Height: 300}
	wm.frames[3] = geometry.Rect{X: 40, Y: 40, Width: 20, Height: 20}

	applied, err := KeepOnScreen(wm, wm, testScreen(), boundary.Limits{})
	if err != nil {
		t.Fatal(err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if got := wm.frames[1]; got != (geometry.Rect{X: 10, Y: 10, Width: 400, Height: 300}) {
		t.Errorf("valid window was touched: %+v", got)
	}
	for _, h := range []Handle{2, 3} {
		if !geometry.Contains(testScreen().Usable, wm.frames[h]) {
			t.Errorf("window %d still off screen: %+v", h, wm.frames[h])
		}
	}
}
