package layout

import (
	"math"

	"github.com/bivex/wic/internal/geometry"
)

// Iteration caps. Every solver terminates within its cap and returns
// the best-effort result; the boundary corrector guarantees final
// validity regardless of solver quality.
const (
	projectionMaxPasses = 20
	relaxationMaxPasses = 20
	pivotMaxSteps       = 32
)

// projectionLayout assigns golden-ratio-decaying widths and then
// iteratively projects out pairwise overlaps. Each window's width is
// weight-proportional (weight = invPhi^i) with an adaptive floor of
// half the equal share, so minimum widths scale with density. Initial
// positions follow the unfloored widths, which is where the overlaps
// come from; up to projectionMaxPasses sweeps split each overlap
// between the two neighbors, translating where there is room and
// shrinking against the screen edge otherwise.
func projectionLayout(n int, r geometry.Rect, opts Options) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []geometry.Rect{r}
	}

	weights := make([]float64, n)
	var sum float64
	for i := range weights {
		weights[i] = math.Pow(invPhi, float64(i))
		sum += weights[i]
	}

	floor := 0.5 * r.Width / float64(n)
	rects := make([]geometry.Rect, n)
	x := r.X
	for i := range rects {
		natural := r.Width * weights[i] / sum
		w := math.Max(natural, floor)
		rects[i] = geometry.Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += natural // floored width may overhang into the next slot
	}

	tol := opts.Tolerance
	for pass := 0; pass < projectionMaxPasses; pass++ {
		moved := false
		for i := 0; i < n-1; i++ {
			a := &rects[i]
			b := &rects[i+1]
			overlap := a.Right() - b.X
			if overlap <= tol {
				continue
			}
			moved = true
			half := overlap / 2

			// Left neighbor retreats leftward, or shrinks at the edge.
			if a.X-half >= r.X {
				a.X -= half
			} else {
				a.Width = math.Max(a.Width-half, 0)
			}
			// Right neighbor advances rightward, or gives up its left
			// edge when pinned against the screen.
			if b.Right()+half <= r.Right() {
				b.X += half
			} else {
				b.X += half
				b.Width = math.Max(b.Width-half, 0)
			}
		}
		if !moved {
			break
		}
	}
	return rects
}

// barrierLayout shrinks the usable rect by an interior margin before
// delegating to the grid. The margin scales with screen size and drops
// with window density, with a fixed floor. When the shrunk rect would
// be too small to be useful the solver falls back to the grid on the
// original rect instead.
func barrierLayout(n int, r geometry.Rect, opts Options) []geometry.Rect {
	if n <= 0 {
		return nil
	}

	const marginFloor = 8.0
	margin := math.Max(marginFloor, 0.04*math.Min(r.Width, r.Height)/math.Sqrt(float64(n)))

	inner := r.Inset(margin)
	if inner.Width < opts.MinWidth || inner.Height < opts.MinHeight {
		return gridLayout(n, r, 0)
	}

	rects := gridLayout(n, inner, 0)
	for i := range rects {
		if !geometry.Contains(inner, rects[i]) {
			rects[i] = geometry.ClampInto(rects[i], inner)
		}
	}
	return rects
}

// activeSetLayout starts from equal columns and pins every window whose
// edge already coincides with a screen boundary (within one unit).
// The remaining interior windows are redistributed to share the central
// band of the axis equally.
func activeSetLayout(n int, r geometry.Rect) []geometry.Rect {
	rects := columnsLayout(n, r)
	if n <= 2 {
		return rects
	}

	const (
		edgeEps     = 1.0
		centralFrac = 0.6
	)

	interior := make([]int, 0, n)
	for i, rc := range rects {
		leftActive := math.Abs(rc.X-r.X) <= edgeEps
		rightActive := math.Abs(rc.Right()-r.Right()) <= edgeEps
		if !leftActive && !rightActive {
			interior = append(interior, i)
		}
	}
	if len(interior) == 0 {
		return rects
	}

	band := geometry.Rect{
		X:      r.X + r.Width*(1-centralFrac)/2,
		Y:      r.Y,
		Width:  r.Width * centralFrac,
		Height: r.Height,
	}
	share := band.Width / float64(len(interior))
	for k, i := range interior {
		rects[i] = geometry.Rect{
			X:      band.X + float64(k)*share,
			Y:      r.Y,
			Width:  share,
			Height: r.Height,
		}
	}
	return rects
}

// relaxationLayout runs an under-relaxed fixed-point iteration over
// window positions. The first and last windows anchor to the screen
// edges with a small inset; interior windows target a position just
// past their left neighbor plus a spacing fraction. Every pass moves
// each window only partway toward its target and stops early once the
// largest movement falls below tolerance.
func relaxationLayout(n int, r geometry.Rect) []geometry.Rect {
	rects := columnsLayout(n, r)
	if n <= 1 {
		return rects
	}

	const (
		omega      = 0.7
		inset      = 4.0
		moveTol    = 0.5
		spacingPct = 0.01
	)
	spacing := r.Width * spacingPct

	for pass := 0; pass < relaxationMaxPasses; pass++ {
		maxMove := 0.0
		for i := range rects {
			var target float64
			switch i {
			case 0:
				target = r.X + inset
			case n - 1:
				target = r.Right() - rects[i].Width - inset
			default:
				target = rects[i-1].Right() + spacing
			}
			next := rects[i].X*(1-omega) + target*omega
			if d := math.Abs(next - rects[i].X); d > maxMove {
				maxMove = d
			}
			rects[i].X = next
		}
		if maxMove < moveTol {
			break
		}
	}
	return rects
}

// pivotLayout greedily grows the column with the most room below a
// soft cap, compressing its right neighbor by the same amount, for a
// bounded number of pivots. A final pass re-normalizes so the rightmost
// edge meets the screen edge exactly.
func pivotLayout(n int, r geometry.Rect) []geometry.Rect {
	rects := columnsLayout(n, r)
	if n <= 1 {
		return rects
	}

	equal := r.Width / float64(n)
	softCap := math.Min(1.6*equal, 0.5*r.Width)
	increment := 0.02 * r.Width
	minNeighbor := 0.3 * equal

	for step := 0; step < pivotMaxSteps; step++ {
		best := -1
		bestRoom := 0.0
		for i := 0; i < n-1; i++ { // last column has no one to take from
			room := softCap - rects[i].Width
			if room > bestRoom && rects[i+1].Width-increment >= minNeighbor {
				best = i
				bestRoom = room
			}
		}
		if best < 0 || bestRoom < increment {
			break
		}
		rects[best].Width += increment
		rects[best+1].X += increment
		rects[best+1].Width -= increment
	}

	// Pair-local pivots preserve the total width; snap the last edge to
	// absorb float drift.
	last := &rects[n-1]
	if w := r.Right() - last.X; w >= 0 {
		last.Width = w
	}
	return rects
}
