package textflow

import (
	"math"
	"testing"
)

func TestLineConstraintsPlainWidth(t *testing.T) {
	c := &UnifiedConstraints{AvailableWidth: 300}
	lc := LineConstraintsAt(0, 20, c)
	if len(lc.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(lc.Segments))
	}
	if lc.Segments[0].StartX != 0 || lc.Segments[0].Width != 300 {
		t.Errorf("segment = %+v, want [0, 300]", lc.Segments[0])
	}
	if lc.TotalWidth != 300 {
		t.Errorf("total = %v, want 300", lc.TotalWidth)
	}
}

func TestLineConstraintsRectExclusionSplits(t *testing.T) {
	c := &UnifiedConstraints{
		AvailableWidth:  300,
		ShapeExclusions: []Shape{ShapeRect{Rect: Rect{X: 100, Y: 0, Width: 50, Height: 100}}},
	}
	lc := LineConstraintsAt(10, 20, c)
	if len(lc.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(lc.Segments))
	}
	left, right := lc.Segments[0], lc.Segments[1]
	if left.StartX != 0 || left.Width != 100 {
		t.Errorf("left segment = %+v, want [0, 100]", left)
	}
	if right.StartX != 150 || right.Width != 150 {
		t.Errorf("right segment = %+v, want [150, 150]", right)
	}
	if lc.TotalWidth != 250 {
		t.Errorf("total = %v, want 250", lc.TotalWidth)
	}
}

func TestLineConstraintsExclusionBelowBand(t *testing.T) {
	c := &UnifiedConstraints{
		AvailableWidth:  300,
		ShapeExclusions: []Shape{ShapeRect{Rect: Rect{X: 100, Y: 200, Width: 50, Height: 50}}},
	}
	lc := LineConstraintsAt(0, 20, c)
	if len(lc.Segments) != 1 || lc.TotalWidth != 300 {
		t.Errorf("exclusion below band should not carve: %+v", lc)
	}
}

func TestLineConstraintsExclusionMargin(t *testing.T) {
	c := &UnifiedConstraints{
		AvailableWidth:  300,
		ExclusionMargin: 10,
		ShapeExclusions: []Shape{ShapeRect{Rect: Rect{X: 100, Y: 0, Width: 50, Height: 100}}},
	}
	lc := LineConstraintsAt(10, 20, c)
	if len(lc.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(lc.Segments))
	}
	if lc.Segments[0].Width != 90 {
		t.Errorf("left width = %v, want 90", lc.Segments[0].Width)
	}
	if lc.Segments[1].StartX != 160 {
		t.Errorf("right start = %v, want 160", lc.Segments[1].StartX)
	}
}

func TestLineConstraintsCircleExclusion(t *testing.T) {
	// A 300x200 region with a circle of radius 50 at (150, 100). A band
	// through the circle's center splits into two segments with a gap
	// of about the diameter.
	c := &UnifiedConstraints{
		AvailableWidth:  300,
		ShapeExclusions: []Shape{ShapeCircle{Center: Point{X: 150, Y: 100}, Radius: 50}},
	}
	lc := LineConstraintsAt(90, 20, c)
	if len(lc.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(lc.Segments))
	}
	gap := lc.Segments[1].StartX - lc.Segments[0].EndX()
	if gap < 99 || gap > 101 {
		t.Errorf("gap = %v, want about 100 (diameter at midline)", gap)
	}

	// A band far above the circle is untouched.
	clear := LineConstraintsAt(0, 20, c)
	if len(clear.Segments) != 1 || clear.TotalWidth != 300 {
		t.Errorf("band above circle should be clear: %+v", clear)
	}
}

func TestLineConstraintsCircleBoundary(t *testing.T) {
	// Text flows inside the circle: narrow near the top, widest at the
	// center.
	c := &UnifiedConstraints{
		AvailableWidth:  200,
		ShapeBoundaries: []Shape{ShapeCircle{Center: Point{X: 100, Y: 100}, Radius: 80}},
	}
	top := LineConstraintsAt(30, 10, c)
	mid := LineConstraintsAt(95, 10, c)
	if len(top.Segments) != 1 || len(mid.Segments) != 1 {
		t.Fatalf("want one segment per band: top %d, mid %d", len(top.Segments), len(mid.Segments))
	}
	if top.TotalWidth >= mid.TotalWidth {
		t.Errorf("top chord %v should be narrower than center chord %v",
			top.TotalWidth, mid.TotalWidth)
	}
	if mid.TotalWidth < 155 || mid.TotalWidth > 160 {
		t.Errorf("center chord = %v, want just under 160", mid.TotalWidth)
	}
}

func TestLineConstraintsEllipse(t *testing.T) {
	c := &UnifiedConstraints{
		AvailableWidth:  400,
		ShapeExclusions: []Shape{ShapeEllipse{Center: Point{X: 200, Y: 50}, RadiusX: 100, RadiusY: 25}},
	}
	lc := LineConstraintsAt(45, 10, c)
	if len(lc.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(lc.Segments))
	}
	gap := lc.Segments[1].StartX - lc.Segments[0].EndX()
	if gap < 190 || gap > 200 {
		t.Errorf("gap = %v, want just under 200", gap)
	}
}

func TestLineConstraintsPolygonDiamond(t *testing.T) {
	diamond := ShapePolygon{Points: []Point{
		{X: 100, Y: 0}, {X: 200, Y: 100}, {X: 100, Y: 200}, {X: 0, Y: 100},
	}}
	c := &UnifiedConstraints{
		AvailableWidth:  300,
		ShapeExclusions: []Shape{diamond},
	}

	// At the diamond's vertical center the exclusion spans [0, 200].
	lc := LineConstraintsAt(95, 10, c)
	if len(lc.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(lc.Segments))
	}
	seg := lc.Segments[0]
	if seg.StartX < 195 || seg.StartX > 205 {
		t.Errorf("segment start = %v, want about 200", seg.StartX)
	}

	// Near the top the exclusion is narrow and centered.
	lc = LineConstraintsAt(10, 10, c)
	if len(lc.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(lc.Segments))
	}
}

func TestLineConstraintsFullyExcludedBand(t *testing.T) {
	c := &UnifiedConstraints{
		AvailableWidth:  100,
		ShapeExclusions: []Shape{ShapeRect{Rect: Rect{X: 0, Y: 0, Width: 100, Height: 50}}},
	}
	lc := LineConstraintsAt(10, 20, c)
	if lc.TotalWidth != 0 {
		t.Errorf("total = %v, want 0", lc.TotalWidth)
	}
}

func TestEllipseSpansOutside(t *testing.T) {
	if spans := ellipseSpans(Point{X: 0, Y: 0}, 10, 10, 20); spans != nil {
		t.Errorf("got %v, want nil outside the ellipse", spans)
	}
}

func TestMergeSpans(t *testing.T) {
	got := mergeSpans([]lineSpan{{50, 80}, {0, 30}, {20, 60}})
	if len(got) != 1 || got[0] != (lineSpan{0, 80}) {
		t.Errorf("got %v, want [{0 80}]", got)
	}

	disjoint := mergeSpans([]lineSpan{{40, 60}, {0, 30}})
	if len(disjoint) != 2 || disjoint[0] != (lineSpan{0, 30}) || disjoint[1] != (lineSpan{40, 60}) {
		t.Errorf("got %v, want [{0 30} {40 60}]", disjoint)
	}
}

func TestSubtractSpanBisects(t *testing.T) {
	got := subtractSpan([]lineSpan{{0, 100}}, lineSpan{40, 60})
	want := []lineSpan{{0, 40}, {60, 100}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCircleChordMath(t *testing.T) {
	// Chord half-width at distance d from center: sqrt(r^2 - d^2).
	spans := ellipseSpans(Point{X: 100, Y: 100}, 50, 50, 130)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	want := math.Sqrt(50*50 - 30*30)
	half := (spans[0].end - spans[0].start) / 2
	if !closeTo(half, want) {
		t.Errorf("half chord = %v, want %v", half, want)
	}
}
