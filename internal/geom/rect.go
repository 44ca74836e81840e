package geom

// Rect is an axis-aligned rectangle. Whether coordinates are tile-local
// (unscaled) or world-space is decided by the owner; the two spaces are
// only ever mixed through Scale and Translate.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether the point lies inside the rectangle.
// Closed on the min edge, open on the max edge, so adjacent rectangles
// never both claim a shared edge. Zero-area rectangles contain nothing.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Scale multiplies position and size by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, W: r.W * f, H: r.H * f}
}

// Translate shifts the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// DistSq returns the squared distance from the point to the nearest
// point of the rectangle. Zero when the point is inside.
func (r Rect) DistSq(x, y float64) float64 {
	cx := clamp(x, r.X, r.X+r.W)
	cy := clamp(y, r.Y, r.Y+r.H)
	dx := x - cx
	dy := y - cy
	return dx*dx + dy*dy
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
