// Package boundary keeps window rectangles on screen. Correct is
// applied unconditionally to every computed layout before it reaches
// the window sink, and doubles as the general-purpose safety net for
// windows that drifted off screen on their own.
package boundary

import (
	"github.com/bivex/wic/internal/geometry"
)

// Limits are the absolute minimum window dimensions enforced after
// clamping.
type Limits struct {
	MinWidth  float64
	MinHeight float64
}

// DefaultLimits matches the corrector's standard floors.
var DefaultLimits = Limits{MinWidth: 200, MinHeight: 150}

// oversizeShrink is the fraction of the screen width an oversized
// window is reduced to, preserving aspect ratio.
const oversizeShrink = 0.95

func (l Limits) withDefaults() Limits {
	if l.MinWidth <= 0 {
		l.MinWidth = DefaultLimits.MinWidth
	}
	if l.MinHeight <= 0 {
		l.MinHeight = DefaultLimits.MinHeight
	}
	return l
}

// Correct returns a rect guaranteed to satisfy the minimum size and to
// lie inside screen whenever the screen can hold it; on screens smaller
// than the floor the floor wins and the rect extends past the screen,
// trading containment for a usable window. The bool reports whether
// anything changed, so batched callers can skip sink writes for
// windows that were already valid. Correct is idempotent.
func Correct(r, screen geometry.Rect, lim Limits) (geometry.Rect, bool) {
	lim = lim.withDefaults()
	out := r

	// Horizontal pass.
	if out.Width > screen.Width {
		// Shrink proportionally, preserving aspect ratio. The size
		// floor outranks the screen: on screens narrower than the
		// floor the window keeps the floor width and overhangs.
		target := screen.Width * oversizeShrink
		if target < lim.MinWidth {
			target = lim.MinWidth
		}
		if target < out.Width {
			factor := target / out.Width
			out.Width = target
			out.Height *= factor
		}
		if out.Width <= screen.Width {
			out.X = screen.X + (screen.Width-out.Width)/2
		} else {
			out.X = screen.X
		}
	} else if out.X < screen.X || out.Right() > screen.Right() {
		// Fits but overflows; a centered placement is always feasible
		// here and preferred over pinning to the violated edge.
		out.X = screen.X + (screen.Width-out.Width)/2
	}

	// Vertical pass. No aspect preservation here: oversized windows
	// drop to the screen height and reposition to the top.
	if out.Height > screen.Height {
		target := screen.Height
		if target < lim.MinHeight {
			target = lim.MinHeight
		}
		if target < out.Height {
			out.Height = target
		}
		out.Y = screen.Y
	} else if out.Y < screen.Y || out.Bottom() > screen.Bottom() {
		out.Y = screen.Y + (screen.Height-out.Height)/2
	}

	// Minimum size floor, then re-fit the now-larger rect.
	if out.Width < lim.MinWidth {
		out.Width = lim.MinWidth
		out = refit(out, screen)
	}
	if out.Height < lim.MinHeight {
		out.Height = lim.MinHeight
		out = refit(out, screen)
	}

	return out, out != r
}

// refit translates a grown rect back into the screen without shrinking
// it below the floor it was just grown to.
func refit(r, screen geometry.Rect) geometry.Rect {
	if r.Width <= screen.Width {
		if r.X < screen.X {
			r.X = screen.X
		} else if r.Right() > screen.Right() {
			r.X = screen.Right() - r.Width
		}
	} else {
		r.X = screen.X
	}
	if r.Height <= screen.Height {
		if r.Y < screen.Y {
			r.Y = screen.Y
		} else if r.Bottom() > screen.Bottom() {
			r.Y = screen.Bottom() - r.Height
		}
	} else {
		r.Y = screen.Y
	}
	return r
}

// CorrectAll corrects a batch in place order, returning the corrected
// rects and how many of them actually changed.
func CorrectAll(rects []geometry.Rect, screen geometry.Rect, lim Limits) ([]geometry.Rect, int) {
	out := make([]geometry.Rect, len(rects))
	changed := 0
	for i, r := range rects {
		c, moved := Correct(r, screen, lim)
		out[i] = c
		if moved {
			changed++
		}
	}
	return out, changed
}
