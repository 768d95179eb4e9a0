package textflow

// Point is a 2D position in layout space.
type Point struct {
	X, Y float64
}

// Size is a 2D extent.
type Size struct {
	Width, Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle identified by its top-left corner
// and its extent.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inflate grows the rectangle by m on every side. Negative m shrinks it.
func (r Rect) Inflate(m float64) Rect {
	return Rect{
		X:      r.X - m,
		Y:      r.Y - m,
		Width:  r.Width + 2*m,
		Height: r.Height + 2*m,
	}
}

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle does not contribute to the union.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(r.MaxX(), o.MaxX()) - x,
		Height: max(r.MaxY(), o.MaxY()) - y,
	}
}

// boundingBox returns the size of the smallest rectangle enclosing points.
func boundingBox(points []Point) Size {
	if len(points) == 0 {
		return Size{}
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return Size{Width: maxX - minX, Height: maxY - minY}
}
