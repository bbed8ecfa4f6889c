package layout

import (
	"fmt"

	"github.com/bivex/wic/internal/geometry"
)

// ultrawideAspectThreshold is the usable-frame aspect ratio below which
// ultrawide-aware modes delegate to Focus. On narrower screens the
// wide-screen column math would produce degenerate thin columns, so the
// substitution is unconditional.
const ultrawideAspectThreshold = 2.0

// Compute returns one target rect per window, index-aligned with the
// caller's window order. It never fails: unknown modes fall back to
// Grid, n == 0 yields an empty result, and degenerate screens propagate
// zero-area rects for the boundary corrector to handle.
func Compute(mode Mode, n int, screen geometry.Screen, opts Options) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	opts = opts.withDefaults()
	usable := screen.Usable

	if ultrawideAware(mode) && usable.AspectRatio() < ultrawideAspectThreshold {
		mode = ModeFocus
	}

	switch mode {
	case ModeGrid:
		return gridLayout(n, usable, opts.Padding)
	case ModeHorizontal:
		return columnsLayout(n, usable)
	case ModeVertical:
		return rowsLayout(n, usable)
	case ModeCascade:
		return cascadeLayout(n, usable)
	case ModeFibonacci:
		return masterStackLayout(n, usable, invPhi)
	case ModeFocus:
		return focusLayout(n, usable)
	case ModeMultiTask:
		return multiTaskLayout(n, usable, opts)
	case ModeProjection:
		return projectionLayout(n, usable, opts)
	case ModeBarrier:
		return barrierLayout(n, usable, opts)
	case ModeActiveSet:
		return activeSetLayout(n, usable)
	case ModeRelaxation:
		return relaxationLayout(n, usable)
	case ModePivot:
		return pivotLayout(n, usable)
	}

	if p, ok := profileTable[mode]; ok {
		return p.apply(n, usable)
	}

	return gridLayout(n, usable, opts.Padding)
}

func ultrawideAware(m Mode) bool {
	if p, ok := profileTable[m]; ok {
		return p.Ultrawide
	}
	return false
}

// Describe returns a one-line human description of a mode, for listings.
func Describe(m Mode) string {
	switch m {
	case ModeGrid:
		return "near-square grid, row-major"
	case ModeHorizontal:
		return "equal-width columns, left to right"
	case ModeVertical:
		return "equal-height rows, top to bottom"
	case ModeCascade:
		return "overlapping stack offset toward bottom-right"
	case ModeFibonacci:
		return "golden-ratio master pane with stacked side panes"
	case ModeFocus:
		return "2:1 master pane with stacked side panes"
	case ModeMultiTask:
		return "count-tuned split for 1-4 windows, grid beyond"
	case ModeProjection:
		return "golden-ratio widths with iterative overlap projection"
	case ModeBarrier:
		return "density-scaled interior margin around a grid"
	case ModeActiveSet:
		return "edge-pinned columns, interior shares the central band"
	case ModeRelaxation:
		return "under-relaxed successive position correction"
	case ModePivot:
		return "greedy width expansion with neighbor compression"
	}
	if p, ok := profileTable[m]; ok {
		return p.describe()
	}
	return fmt.Sprintf("unknown mode %q", m)
}
