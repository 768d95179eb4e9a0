package textflow

import (
	"math"
	"sort"
)

// LineSegment is one usable horizontal span of a line after exclusions.
type LineSegment struct {
	StartX float64
	Width  float64
	// Priority is reserved for weighted segment filling.
	Priority int
}

// EndX returns the segment's right edge.
func (s LineSegment) EndX() float64 { return s.StartX + s.Width }

// LineConstraints are the usable spans for one line band plus their
// summed width.
type LineConstraints struct {
	Segments   []LineSegment
	TotalWidth float64
}

type lineSpan struct {
	start, end float64
}

// LineConstraintsAt computes the usable spans for the band
// [y, y+lineHeight). Boundaries seed the spans, exclusions inflated by
// the exclusion margin carve them up.
func LineConstraintsAt(y, lineHeight float64, c *UnifiedConstraints) LineConstraints {
	y1 := y + lineHeight

	var spans []lineSpan
	if len(c.ShapeBoundaries) == 0 {
		spans = []lineSpan{{0, c.AvailableWidth}}
	} else {
		for _, shape := range c.ShapeBoundaries {
			spans = append(spans, shapeSpans(shape, y, y1, 0)...)
		}
		spans = mergeSpans(spans)
	}

	for _, shape := range c.ShapeExclusions {
		for _, ex := range shapeSpans(shape, y, y1, c.ExclusionMargin) {
			spans = subtractSpan(spans, ex)
		}
	}

	lc := LineConstraints{Segments: make([]LineSegment, 0, len(spans))}
	for _, sp := range spans {
		w := sp.end - sp.start
		if w <= 0 {
			continue
		}
		lc.Segments = append(lc.Segments, LineSegment{StartX: sp.start, Width: w})
		lc.TotalWidth += w
	}
	return lc
}

// shapeSpans returns the horizontal extent of a shape within the band,
// sampled at the band midline for curved and polygonal shapes. A
// non-zero margin inflates the result on every side.
func shapeSpans(shape Shape, y0, y1, margin float64) []lineSpan {
	y0 -= margin
	y1 += margin
	mid := (y0 + y1) / 2

	switch v := shape.(type) {
	case ShapeRect:
		r := v.Rect
		if y1 <= r.Y || y0 >= r.MaxY() {
			return nil
		}
		return []lineSpan{{r.X - margin, r.MaxX() + margin}}

	case ShapeCircle:
		return ellipseSpans(v.Center, v.Radius+margin, v.Radius+margin, mid)

	case ShapeEllipse:
		return ellipseSpans(v.Center, v.RadiusX+margin, v.RadiusY+margin, mid)

	case ShapePolygon:
		spans := polygonSpans(v.Points, mid)
		if margin != 0 {
			for i := range spans {
				spans[i].start -= margin
				spans[i].end += margin
			}
			spans = mergeSpans(spans)
		}
		return spans

	default:
		return nil
	}
}

// ellipseSpans returns the chord of an axis-aligned ellipse at height y.
func ellipseSpans(center Point, rx, ry, y float64) []lineSpan {
	if ry <= 0 || rx <= 0 {
		return nil
	}
	dy := (y - center.Y) / ry
	if dy*dy >= 1 {
		return nil
	}
	half := rx * math.Sqrt(1-dy*dy)
	return []lineSpan{{center.X - half, center.X + half}}
}

// polygonSpans intersects a horizontal scanline with a closed polygon
// using the non-zero winding rule.
func polygonSpans(points []Point, y float64) []lineSpan {
	if len(points) < 3 {
		return nil
	}

	type crossing struct {
		x   float64
		dir int
	}
	var crossings []crossing
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		if a.Y == b.Y {
			continue
		}
		dir := 1
		lo, hi := a, b
		if a.Y > b.Y {
			dir = -1
			lo, hi = b, a
		}
		// Half-open on the top end keeps shared vertices from double
		// counting.
		if y < lo.Y || y >= hi.Y {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		crossings = append(crossings, crossing{x: a.X + t*(b.X-a.X), dir: dir})
	}
	if len(crossings) == 0 {
		return nil
	}
	sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

	var spans []lineSpan
	winding := 0
	var open float64
	for _, cr := range crossings {
		was := winding
		winding += cr.dir
		if was == 0 && winding != 0 {
			open = cr.x
		} else if was != 0 && winding == 0 {
			spans = append(spans, lineSpan{open, cr.x})
		}
	}
	return spans
}

// mergeSpans sorts and coalesces overlapping or touching spans.
func mergeSpans(spans []lineSpan) []lineSpan {
	if len(spans) < 2 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// subtractSpan removes ex from every span, splitting spans it bisects.
func subtractSpan(spans []lineSpan, ex lineSpan) []lineSpan {
	var out []lineSpan
	for _, sp := range spans {
		if ex.end <= sp.start || ex.start >= sp.end {
			out = append(out, sp)
			continue
		}
		if ex.start > sp.start {
			out = append(out, lineSpan{sp.start, ex.start})
		}
		if ex.end < sp.end {
			out = append(out, lineSpan{ex.end, sp.end})
		}
	}
	return out
}
