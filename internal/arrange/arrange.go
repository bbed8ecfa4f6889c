// Package arrange is the engine's sole public entry point: it maps a
// mode selector plus a window batch onto corrected target rectangles
// and drives them through the window sink. It is the only package
// aware of the external window source/sink contract.
package arrange

import (
	"fmt"
	"log"
	"math"

	"github.com/bivex/wic/internal/boundary"
	"github.com/bivex/wic/internal/geometry"
	"github.com/bivex/wic/internal/layout"
)

// Handle is an opaque window identifier. The engine never inspects it,
// only counts and orders.
type Handle uint32

// Source supplies the current set of movable windows and their frames.
type Source interface {
	ListWindows() ([]Handle, error)
	CurrentFrame(Handle) (geometry.Rect, error)
}

// Sink accepts a handle and a target rectangle and physically moves
// the window. A failure for one handle must not abort the rest of a
// batch; Arrange logs and continues.
type Sink interface {
	SetFrame(Handle, geometry.Rect) error
}

// Request describes a single arrangement invocation.
type Request struct {
	Mode    layout.Mode
	Windows []Handle
	Screen  geometry.Screen
	Options layout.Options
}

// frameEps is the movement threshold below which a window is left
// alone, avoiding pointless sink writes for sub-pixel differences.
const frameEps = 0.5

// Arrange computes the layout for the request, corrects every target
// against the usable frame, and applies the result window by window.
// It returns how many windows were actually moved. Per-window sink
// failures (e.g. a window closed mid-operation) are logged and skipped;
// they never abort sibling moves. Zero windows is a no-op.
func Arrange(src Source, sink Sink, req Request) (int, error) {
	n := len(req.Windows)
	if n == 0 {
		return 0, nil
	}
	if !layout.Valid(req.Mode) {
		return 0, fmt.Errorf("unknown layout mode: %q", req.Mode)
	}

	targets := layout.Compute(req.Mode, n, req.Screen, req.Options)
	return apply(src, sink, req, targets)
}

// ArrangeProfile is Arrange for an ad-hoc (user-defined) profile
// instead of a builtin mode.
func ArrangeProfile(src Source, sink Sink, p layout.Profile, req Request) (int, error) {
	n := len(req.Windows)
	if n == 0 {
		return 0, nil
	}
	targets := layout.ComputeProfile(p, n, req.Screen, req.Options)
	return apply(src, sink, req, targets)
}

func apply(src Source, sink Sink, req Request, targets []geometry.Rect) (int, error) {
	lim := boundary.Limits{MinWidth: req.Options.MinWidth, MinHeight: req.Options.MinHeight}

	applied := 0
	for i, h := range req.Windows {
		if i >= len(targets) {
			break
		}
		target, _ := boundary.Correct(targets[i], req.Screen.Usable, lim)

		// Skip windows already at their target; the source read is
		// best-effort, an error just means we write unconditionally.
		if cur, err := src.CurrentFrame(h); err == nil && sameFrame(cur, target) {
			continue
		}

		if err := sink.SetFrame(h, target); err != nil {
			log.Printf("arrange: window %d rejected frame %+v: %v", h, target, err)
			continue
		}
		applied++
	}
	return applied, nil
}

// KeepOnScreen is the standalone safety net: it reads every window's
// actual current frame, corrects it against the usable frame, and
// moves only the windows that needed a correction.
func KeepOnScreen(src Source, sink Sink, screen geometry.Screen, lim boundary.Limits) (int, error) {
	windows, err := src.ListWindows()
	if err != nil {
		return 0, fmt.Errorf("listing windows: %w", err)
	}

	applied := 0
	for _, h := range windows {
		cur, err := src.CurrentFrame(h)
		if err != nil {
			log.Printf("arrange: skipping window %d: %v", h, err)
			continue
		}
		corrected, changed := boundary.Correct(cur, screen.Usable, lim)
		if !changed {
			continue
		}
		if err := sink.SetFrame(h, corrected); err != nil {
			log.Printf("arrange: window %d rejected correction: %v", h, err)
			continue
		}
		applied++
	}
	return applied, nil
}

func sameFrame(a, b geometry.Rect) bool {
	return math.Abs(a.X-b.X) < frameEps &&
		math.Abs(a.Y-b.Y) < frameEps &&
		math.Abs(a.Width-b.Width) < frameEps &&
		math.Abs(a.Height-b.Height) < frameEps
}
