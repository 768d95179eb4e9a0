package textflow

// ContentIndex addresses a position inside the original content array.
// RunIndex selects the InlineContent entry; ItemIndex is the byte offset
// inside a text run (zero for non-text content). The pair survives every
// pipeline stage unchanged, so output glyphs trace back to source bytes.
type ContentIndex struct {
	RunIndex  uint32
	ItemIndex uint32
}

// syntheticItemIndex marks glyphs inserted by the layout itself (hyphens,
// kashidas). Such glyphs carry no source position.
const syntheticItemIndex = ^uint32(0)

// syntheticIndex returns the ContentIndex used for layout-inserted glyphs.
func syntheticIndex(run uint32) ContentIndex {
	return ContentIndex{RunIndex: run, ItemIndex: syntheticItemIndex}
}

// IsSynthetic reports whether the index marks a layout-inserted glyph
// rather than a source position.
func (ci ContentIndex) IsSynthetic() bool {
	return ci.ItemIndex == syntheticItemIndex
}

// GraphemeClusterID stably identifies a grapheme cluster across bidi
// reordering and line breaking: the source run plus the byte offset of
// the cluster's first byte within that run.
type GraphemeClusterID struct {
	SourceRun uint32
	StartByte uint32
}

// InlineContent is one entry of the caller-supplied content array.
// Implementations are TextRun, InlineImage, InlineShape, InlineSpace,
// InlineRuby and InlineBreak.
type InlineContent interface {
	isInlineContent()
}

// TextRun is a span of text sharing one base style.
type TextRun struct {
	Text  string
	Style *StyleProperties
}

func (TextRun) isInlineContent() {}

// InlineImage is a replaced inline element with an intrinsic size and an
// optional display size override.
type InlineImage struct {
	IntrinsicSize Size
	DisplaySize   *Size
	// BaselineOffset is the distance from the image bottom to the
	// alignment baseline.
	BaselineOffset float64
}

func (InlineImage) isInlineContent() {}

// size returns the display size, falling back to the intrinsic size.
func (im *InlineImage) size() Size {
	if im.DisplaySize != nil {
		return *im.DisplaySize
	}
	return im.IntrinsicSize
}

// InlineShape is an opaque inline box (SVG, widget placeholder).
type InlineShape struct {
	Size           Size
	BaselineOffset float64
}

func (InlineShape) isInlineContent() {}

// InlineSpace is a fixed-width gap.
type InlineSpace struct {
	Width float64
}

func (InlineSpace) isInlineContent() {}

// InlineRuby is annotated text: Base runs rendered at normal size with
// Annotation runs alongside.
type InlineRuby struct {
	Base       []TextRun
	Annotation []TextRun
	Style      *StyleProperties
}

func (InlineRuby) isInlineContent() {}

// InlineBreak is a forced break.
type InlineBreak struct {
	Kind BreakKind
}

func (InlineBreak) isInlineContent() {}
