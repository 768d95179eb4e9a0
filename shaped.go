package textflow

// ShapedGlyph is one glyph inside a shaped cluster, in pixels at the
// cluster's font size.
type ShapedGlyph struct {
	Kind    GlyphKind
	GlyphID uint16
	Advance float64
	Offset  Point

	// ClusterOffset is the byte offset of the glyph's source position
	// within the cluster text. Offsets are monotonically non-decreasing
	// across the cluster's glyphs.
	ClusterOffset uint32

	// Vertical metrics are installed by ApplyTextOrientation; zero in
	// horizontal layouts.
	VerticalAdvance float64
	VerticalBearing Point
	// Rotated marks glyphs drawn sideways in a vertical line.
	Rotated bool
}

// ShapedItem is one unit of the shaped stream. Implementations are
// ShapedCluster, CombinedBlock, ShapedObject, ShapedTab and ShapedBreak.
type ShapedItem interface {
	isShapedItem()
	// Source returns the first source position covered by the item.
	Source() ContentIndex
}

// ShapedCluster is an indivisible group of glyphs produced by shaping,
// mapping back to one grapheme-addressable slice of source text.
type ShapedCluster struct {
	// Text is the source slice the cluster covers, kept for
	// hyphenation of unbreakable runs.
	Text      string
	Glyphs    []ShapedGlyph
	Advance   float64
	Direction Direction
	Script    Script
	Style     *StyleProperties
	Font      ParsedFont
	ID        GraphemeClusterID
	source    ContentIndex

	// Vertical is set once ApplyTextOrientation rewrites the cluster
	// for a vertical writing mode; Advance is then a vertical advance.
	Vertical bool
}

func (*ShapedCluster) isShapedItem()          {}
func (c *ShapedCluster) Source() ContentIndex { return c.source }

// isWhitespace reports whether the cluster is a word separator.
func (c *ShapedCluster) isWhitespace() bool {
	if c.Text == "" {
		return false
	}
	for _, r := range c.Text {
		if classifyCharacter(r) != ClassSpace {
			return false
		}
	}
	return true
}

// isSynthetic reports whether the cluster was inserted by the layout
// (hyphen, kashida) rather than shaped from source text.
func (c *ShapedCluster) isSynthetic() bool {
	return len(c.Glyphs) == 1 &&
		(c.Glyphs[0].Kind == GlyphHyphen || c.Glyphs[0].Kind == GlyphKashida)
}

// CombinedBlock is a tate-chu-yoko run shaped horizontally and placed
// as one unbreakable slot on a vertical line.
type CombinedBlock struct {
	Text   string
	Glyphs []ShapedGlyph
	Width  float64
	Height float64
	Style  *StyleProperties
	Font   ParsedFont
	source ContentIndex
}

func (*CombinedBlock) isShapedItem()          {}
func (b *CombinedBlock) Source() ContentIndex { return b.source }

// ShapedObject is a measured replaced element.
type ShapedObject struct {
	Size           Size
	BaselineOffset float64
	source         ContentIndex
}

func (*ShapedObject) isShapedItem()          {}
func (o *ShapedObject) Source() ContentIndex { return o.source }

// ShapedTab is a tab with its resolved width.
type ShapedTab struct {
	Width  float64
	Style  *StyleProperties
	source ContentIndex
}

func (*ShapedTab) isShapedItem()          {}
func (t *ShapedTab) Source() ContentIndex { return t.source }

// ShapedBreak is a forced break surviving shaping.
type ShapedBreak struct {
	Kind   BreakKind
	source ContentIndex
}

func (*ShapedBreak) isShapedItem()          {}
func (b *ShapedBreak) Source() ContentIndex { return b.source }

// itemMeasure returns the item's extent along the line's main axis.
// Breaks measure zero.
func itemMeasure(item ShapedItem, vertical bool) float64 {
	switch v := item.(type) {
	case *ShapedCluster:
		return v.Advance
	case *CombinedBlock:
		if vertical {
			return v.Height
		}
		return v.Width
	case *ShapedObject:
		if vertical {
			return v.Size.Height
		}
		return v.Size.Width
	case *ShapedTab:
		return v.Width
	default:
		return 0
	}
}

// itemIsWhitespace reports whether the item may be dropped at a line
// edge or stretched by inter-word justification.
func itemIsWhitespace(item ShapedItem) bool {
	c, ok := item.(*ShapedCluster)
	return ok && c.isWhitespace()
}
