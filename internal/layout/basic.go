package layout

import (
	"math"

	"github.com/bivex/wic/internal/geometry"
)

// invPhi is the golden-ratio reciprocal used by the fibonacci master
// pane and the projection solver's width decay.
var invPhi = (math.Sqrt(5) - 1) / 2

// Absolute caps for cascade panes so they stay manageable on large
// displays.
const (
	cascadeMaxWidth  = 1280.0
	cascadeMaxHeight = 800.0
	cascadeStep      = 30.0
)

// gridLayout partitions the area into a near-square grid. The area is
// shrunk by the caller's padding on all sides plus one extra padding at
// the bottom for dock clearance, then divided into equal cells in
// row-major order.
func gridLayout(n int, r geometry.Rect, padding float64) []geometry.Rect {
	if n <= 0 {
		return nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	area := geometry.Rect{
		X:      r.X + padding,
		Y:      r.Y + padding,
		Width:  r.Width - 2*padding,
		Height: r.Height - 2*padding - padding, // extra bottom margin
	}
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}

	cellW := area.Width / float64(cols)
	cellH := area.Height / float64(rows)

	out := make([]geometry.Rect, n)
	for i := 0; i < n; i++ {
		col := i % cols
		row := i / cols
		out[i] = geometry.Rect{
			X:      area.X + float64(col)*cellW,
			Y:      area.Y + float64(row)*cellH,
			Width:  cellW,
			Height: cellH,
		}
	}
	return out
}

// columnsLayout gives every window an equal-width full-height column.
func columnsLayout(n int, r geometry.Rect) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	w := r.Width / float64(n)
	out := make([]geometry.Rect, n)
	for i := range out {
		out[i] = geometry.Rect{X: r.X + float64(i)*w, Y: r.Y, Width: w, Height: r.Height}
	}
	return out
}

// rowsLayout gives every window an equal-height full-width row.
func rowsLayout(n int, r geometry.Rect) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	h := r.Height / float64(n)
	out := make([]geometry.Rect, n)
	for i := range out {
		out[i] = geometry.Rect{X: r.X, Y: r.Y + float64(i)*h, Width: r.Width, Height: h}
	}
	return out
}

// cascadeLayout stacks fixed-proportion panes toward the bottom-right.
// Overlap is intentional.
func cascadeLayout(n int, r geometry.Rect) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	w := math.Min(r.Width*0.7, cascadeMaxWidth)
	h := math.Min(r.Height*0.7, cascadeMaxHeight)

	out := make([]geometry.Rect, n)
	for i := range out {
		off := cascadeStep * float64(i)
		out[i] = geometry.Rect{X: r.X + off, Y: r.Y + off, Width: w, Height: h}
	}
	return out
}

// masterStackLayout places window 0 in a main pane covering mainFrac of
// the width; the rest equally divide the remaining column's height.
func masterStackLayout(n int, r geometry.Rect, mainFrac float64) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	mainW := r.Width * mainFrac
	if n == 1 {
		return []geometry.Rect{{X: r.X, Y: r.Y, Width: mainW, Height: r.Height}}
	}

	out := make([]geometry.Rect, n)
	out[0] = geometry.Rect{X: r.X, Y: r.Y, Width: mainW, Height: r.Height}

	stackX := r.X + mainW
	stackW := r.Width - mainW
	stackH := r.Height / float64(n-1)
	for i := 1; i < n; i++ {
		out[i] = geometry.Rect{
			X:      stackX,
			Y:      r.Y + float64(i-1)*stackH,
			Width:  stackW,
			Height: stackH,
		}
	}
	return out
}

// focusLayout is the 2:1 master-stack. A single window gets 70% of the
// width at the left edge rather than the full area.
func focusLayout(n int, r geometry.Rect) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []geometry.Rect{{X: r.X, Y: r.Y, Width: r.Width * 0.7, Height: r.Height}}
	}
	return masterStackLayout(n, r, 2.0/3.0)
}

// multiTaskLayout dispatches on exact window count with hand-tuned
// proportions for 1-4 windows and falls back to the grid beyond that.
func multiTaskLayout(n int, r geometry.Rect, opts Options) []geometry.Rect {
	switch n {
	case 1:
		return []geometry.Rect{geometry.Centered(r.Width*0.8, r.Height*0.85, r)}
	case 2:
		leftW := r.Width * 0.6
		return []geometry.Rect{
			{X: r.X, Y: r.Y, Width: leftW, Height: r.Height},
			{X: r.X + leftW, Y: r.Y, Width: r.Width - leftW, Height: r.Height},
		}
	case 3:
		mainW := r.Width * 0.5
		sideH := r.Height / 2
		return []geometry.Rect{
			{X: r.X, Y: r.Y, Width: mainW, Height: r.Height},
			{X: r.X + mainW, Y: r.Y, Width: r.Width - mainW, Height: sideH},
			{X: r.X + mainW, Y: r.Y + sideH, Width: r.Width - mainW, Height: sideH},
		}
	case 4:
		leftW := r.Width * 0.55
		rightW := r.Width - leftW
		leftTopH := r.Height * 0.6
		rightH := r.Height / 2
		return []geometry.Rect{
			{X: r.X, Y: r.Y, Width: leftW, Height: leftTopH},
			{X: r.X + leftW, Y: r.Y, Width: rightW, Height: rightH},
			{X: r.X, Y: r.Y + leftTopH, Width: leftW, Height: r.Height - leftTopH},
			{X: r.X + leftW, Y: r.Y + rightH, Width: rightW, Height: r.Height - rightH},
		}
	}
	return gridLayout(n, r, opts.Padding)
}
