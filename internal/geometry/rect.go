// Package geometry provides the rectangle math shared by every layout
// mode and the boundary corrector. All operations are total: degenerate
// inputs (zero-area screens, disjoint rects) produce zero-area results
// instead of errors, so callers never branch on failure.
package geometry

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Screen describes a display: the full frame and the usable frame after
// excluding reserved chrome (panels, docks). Usable is the authoritative
// container for layout.
type Screen struct {
	Full   Rect
	Usable Rect
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns the rect area. Zero for degenerate rects.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// AspectRatio returns width/height, or 0 for a degenerate rect.
func (r Rect) AspectRatio() float64 {
	if r.Height <= 0 {
		return 0
	}
	return r.Width / r.Height
}

// Inset shrinks the rect by the given amount on all four sides. The
// result may be degenerate; callers decide what that means.
func (r Rect) Inset(by float64) Rect {
	return Rect{
		X:      r.X + by,
		Y:      r.Y + by,
		Width:  r.Width - 2*by,
		Height: r.Height - 2*by,
	}
}

// Contains reports whether inner lies fully inside outer. Edge contact
// counts as contained.
func Contains(outer, inner Rect) bool {
	return inner.X >= outer.X &&
		inner.Y >= outer.Y &&
		inner.Right() <= outer.Right() &&
		inner.Bottom() <= outer.Bottom()
}

// Intersection returns the overlapping region of a and b, or a zero
// rect when they are disjoint.
func Intersection(a, b Rect) Rect {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.Right(), b.Right())
	y2 := min(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// ClampInto moves r the minimal distance so it lies inside bounds,
// shrinking it only when it is larger than bounds on an axis.
func ClampInto(r, bounds Rect) Rect {
	out := r
	if out.Width > bounds.Width {
		out.Width = bounds.Width
	}
	if out.Height > bounds.Height {
		out.Height = bounds.Height
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	if out.X < bounds.X {
		out.X = bounds.X
	} else if out.Right() > bounds.Right() {
		out.X = bounds.Right() - out.Width
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	} else if out.Bottom() > bounds.Bottom() {
		out.Y = bounds.Bottom() - out.Height
	}
	return out
}

// Centered returns a rect of the given size centered inside within.
func Centered(width, height float64, within Rect) Rect {
	return Rect{
		X:      within.X + (within.Width-width)/2,
		Y:      within.Y + (within.Height-height)/2,
		Width:  width,
		Height: height,
	}
}
