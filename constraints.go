package textflow

// Shape is a geometric region used as a flow boundary or exclusion.
// Implementations are ShapeRect, ShapeCircle, ShapeEllipse and
// ShapePolygon.
type Shape interface {
	isShape()
}

// ShapeRect is an axis-aligned rectangle.
type ShapeRect struct {
	Rect Rect
}

func (ShapeRect) isShape() {}

// ShapeCircle is a circle given by center and radius.
type ShapeCircle struct {
	Center Point
	Radius float64
}

func (ShapeCircle) isShape() {}

// ShapeEllipse is an axis-aligned ellipse.
type ShapeEllipse struct {
	Center  Point
	RadiusX float64
	RadiusY float64
}

func (ShapeEllipse) isShape() {}

// ShapePolygon is a closed polygon; the last point connects back to
// the first.
type ShapePolygon struct {
	Points []Point
}

func (ShapePolygon) isShape() {}

// InitialLetter requests a drop cap: the first Count items of the flow
// sized to span Lines lines, with the remaining text excluded from the
// occupied box.
type InitialLetter struct {
	Count int
	Lines int
}

// UnifiedConstraints configure one layout fragment.
type UnifiedConstraints struct {
	AvailableWidth  float64
	AvailableHeight *float64
	LineHeight      float64

	TextAlign        TextAlign
	JustifyContent   JustifyContent
	SegmentAlignment SegmentAlignment
	VerticalAlign    VerticalAlign

	Columns   int
	ColumnGap float64

	WritingMode     WritingMode
	TextOrientation TextOrientation
	// BaseDirection pins the paragraph direction; nil means first
	// strong character, defaulting to LTR.
	BaseDirection *Direction

	ShapeBoundaries []Shape
	ShapeExclusions []Shape
	ExclusionMargin float64

	Overflow OverflowBehavior

	Hyphenation bool
	// HyphenationLanguage is a BCP 47 tag; empty means "en".
	HyphenationLanguage string

	// LineClamp caps the number of lines laid out; zero means no cap.
	LineClamp int

	TextIndent         float64
	HangingPunctuation bool

	InitialLetter *InitialLetter
}

// effectiveColumns returns the usable column count, at least one.
func (c *UnifiedConstraints) effectiveColumns() int {
	if c.Columns < 2 {
		return 1
	}
	return c.Columns
}

// resolvedLineHeight returns the configured line height, falling back
// to a multiple of the first cluster's font size when unset.
func (c *UnifiedConstraints) resolvedLineHeight(fallbackFontSize float64) float64 {
	if c.LineHeight > 0 {
		return c.LineHeight
	}
	return fallbackFontSize * 1.2
}

// hash mixes every field that affects geometry into the layout stage
// cache key.
func (c *UnifiedConstraints) hash(h *contentHasher) {
	h.float(c.AvailableWidth)
	h.floatPtr(c.AvailableHeight)
	h.float(c.LineHeight)
	h.byte(byte(c.TextAlign))
	h.byte(byte(c.JustifyContent))
	h.byte(byte(c.SegmentAlignment))
	h.byte(byte(c.VerticalAlign))
	h.int(c.Columns)
	h.float(c.ColumnGap)
	h.byte(byte(c.WritingMode))
	h.byte(byte(c.TextOrientation))
	if c.BaseDirection != nil {
		h.byte(1)
		h.byte(byte(*c.BaseDirection))
	} else {
		h.byte(0)
	}
	hashShapes(h, c.ShapeBoundaries)
	hashShapes(h, c.ShapeExclusions)
	h.float(c.ExclusionMargin)
	h.byte(byte(c.Overflow))
	h.bool(c.Hyphenation)
	h.string(c.HyphenationLanguage)
	h.int(c.LineClamp)
	h.float(c.TextIndent)
	h.bool(c.HangingPunctuation)
	if c.InitialLetter != nil {
		h.byte(1)
		h.int(c.InitialLetter.Count)
		h.int(c.InitialLetter.Lines)
	} else {
		h.byte(0)
	}
}

func hashShapes(h *contentHasher, shapes []Shape) {
	h.int(len(shapes))
	for _, s := range shapes {
		switch v := s.(type) {
		case ShapeRect:
			h.byte(1)
			h.float(v.Rect.X)
			h.float(v.Rect.Y)
			h.float(v.Rect.Width)
			h.float(v.Rect.Height)
		case ShapeCircle:
			h.byte(2)
			h.float(v.Center.X)
			h.float(v.Center.Y)
			h.float(v.Radius)
		case ShapeEllipse:
			h.byte(3)
			h.float(v.Center.X)
			h.float(v.Center.Y)
			h.float(v.RadiusX)
			h.float(v.RadiusY)
		case ShapePolygon:
			h.byte(4)
			h.int(len(v.Points))
			for _, p := range v.Points {
				h.float(p.X)
				h.float(p.Y)
			}
		}
	}
}

// LayoutFragment is one flow region identified by the caller.
type LayoutFragment struct {
	ID          string
	Constraints UnifiedConstraints
}
