package textflow

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Direction specifies the resolved inline direction of a run of text.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// WritingMode specifies the block-flow direction of a layout fragment.
type WritingMode int

const (
	// WritingModeHorizontalTB is the default horizontal mode; lines stack
	// top to bottom and the inline direction comes from the text content.
	WritingModeHorizontalTB WritingMode = iota
	// WritingModeVerticalRL lays lines out vertically, columns flowing
	// right to left (traditional CJK).
	WritingModeVerticalRL
	// WritingModeVerticalLR lays lines out vertically, columns flowing
	// left to right (Mongolian).
	WritingModeVerticalLR
	// WritingModeSidewaysRL rotates horizontal glyphs for a vertical line,
	// columns flowing right to left.
	WritingModeSidewaysRL
	// WritingModeSidewaysLR rotates horizontal glyphs for a vertical line,
	// columns flowing left to right.
	WritingModeSidewaysLR
)

// String returns the string representation of the writing mode.
func (m WritingMode) String() string {
	switch m {
	case WritingModeHorizontalTB:
		return "HorizontalTB"
	case WritingModeVerticalRL:
		return "VerticalRL"
	case WritingModeVerticalLR:
		return "VerticalLR"
	case WritingModeSidewaysRL:
		return "SidewaysRL"
	case WritingModeSidewaysLR:
		return "SidewaysLR"
	default:
		return unknownStr
	}
}

// IsVertical reports whether glyph advances run along the vertical axis.
func (m WritingMode) IsVertical() bool {
	return m != WritingModeHorizontalTB
}

// TextOrientation controls per-glyph orientation in vertical writing modes.
type TextOrientation int

const (
	// TextOrientationMixed keeps CJK glyphs upright and rotates others.
	TextOrientationMixed TextOrientation = iota
	// TextOrientationUpright keeps every glyph upright.
	TextOrientationUpright
	// TextOrientationSideways rotates every glyph 90 degrees clockwise.
	TextOrientationSideways
)

// String returns the string representation of the orientation.
func (o TextOrientation) String() string {
	switch o {
	case TextOrientationMixed:
		return "Mixed"
	case TextOrientationUpright:
		return "Upright"
	case TextOrientationSideways:
		return "Sideways"
	default:
		return unknownStr
	}
}

// TextAlign specifies inline alignment of a line within its segments.
type TextAlign int

const (
	// AlignStart aligns to the logical start (left for LTR, right for RTL).
	AlignStart TextAlign = iota
	// AlignEnd aligns to the logical end.
	AlignEnd
	// AlignLeft aligns to the physical left edge.
	AlignLeft
	// AlignRight aligns to the physical right edge.
	AlignRight
	// AlignCenter centers the line.
	AlignCenter
	// AlignJustify stretches every line but the last.
	AlignJustify
	// AlignJustifyAll stretches every line, including the last.
	AlignJustifyAll
)

// String returns the string representation of the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignEnd:
		return "End"
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	case AlignJustify:
		return "Justify"
	case AlignJustifyAll:
		return "JustifyAll"
	default:
		return unknownStr
	}
}

// resolve maps logical Start/End onto physical Left/Right for the given
// paragraph base direction. Physical values pass through unchanged.
func (a TextAlign) resolve(base Direction) TextAlign {
	switch {
	case a == AlignStart && base == DirectionLTR:
		return AlignLeft
	case a == AlignStart && base == DirectionRTL:
		return AlignRight
	case a == AlignEnd && base == DirectionLTR:
		return AlignRight
	case a == AlignEnd && base == DirectionRTL:
		return AlignLeft
	default:
		return a
	}
}

// JustifyContent selects the space-distribution strategy for justified lines.
type JustifyContent int

const (
	// JustifyNone disables justification.
	JustifyNone JustifyContent = iota
	// JustifyInterWord distributes slack among word-separator clusters.
	JustifyInterWord
	// JustifyInterCharacter distributes slack among every justifiable gap.
	JustifyInterCharacter
	// JustifyDistribute is like InterCharacter, including line edges (CJK).
	JustifyDistribute
	// JustifyKashida stretches Arabic words with tatweel glyphs.
	JustifyKashida
)

// String returns the string representation of the justification mode.
func (j JustifyContent) String() string {
	switch j {
	case JustifyNone:
		return "None"
	case JustifyInterWord:
		return "InterWord"
	case JustifyInterCharacter:
		return "InterCharacter"
	case JustifyDistribute:
		return "Distribute"
	case JustifyKashida:
		return "Kashida"
	default:
		return unknownStr
	}
}

// VerticalAlign positions an item on the cross axis within its line box.
type VerticalAlign int

const (
	// VerticalAlignBaseline aligns the item baseline with the line baseline.
	VerticalAlignBaseline VerticalAlign = iota
	// VerticalAlignTop aligns the item top with the line top.
	VerticalAlignTop
	// VerticalAlignMiddle centers the item on the line midpoint.
	VerticalAlignMiddle
	// VerticalAlignBottom aligns the item bottom with the line bottom.
	VerticalAlignBottom
	// VerticalAlignSub lowers the item to subscript position.
	VerticalAlignSub
	// VerticalAlignSuper raises the item to superscript position.
	VerticalAlignSuper
)

// String returns the string representation of the vertical alignment.
func (v VerticalAlign) String() string {
	switch v {
	case VerticalAlignBaseline:
		return "Baseline"
	case VerticalAlignTop:
		return "Top"
	case VerticalAlignMiddle:
		return "Middle"
	case VerticalAlignBottom:
		return "Bottom"
	case VerticalAlignSub:
		return "Sub"
	case VerticalAlignSuper:
		return "Super"
	default:
		return unknownStr
	}
}

// OverflowBehavior decides what happens to content that does not fit a
// fragment.
type OverflowBehavior int

const (
	// OverflowAuto stops layout once the fragment height is exhausted.
	OverflowAuto OverflowBehavior = iota
	// OverflowVisible keeps laying lines past the fragment height.
	OverflowVisible
	// OverflowHidden stops layout at the fragment height; the rest is clipped.
	OverflowHidden
	// OverflowScroll stops layout at the fragment height; the rest scrolls.
	OverflowScroll
	// OverflowBreak stops the fragment and continues in the next one.
	OverflowBreak
)

// String returns the string representation of the overflow behavior.
func (o OverflowBehavior) String() string {
	switch o {
	case OverflowAuto:
		return "Auto"
	case OverflowVisible:
		return "Visible"
	case OverflowHidden:
		return "Hidden"
	case OverflowScroll:
		return "Scroll"
	case OverflowBreak:
		return "Break"
	default:
		return unknownStr
	}
}

// clipsHeight reports whether layout must stop once the fragment height
// is exhausted. Only Visible keeps laying lines past it.
func (o OverflowBehavior) clipsHeight() bool {
	return o != OverflowVisible
}

// SegmentAlignment decides which width alignment slack is computed against
// when a line is split into multiple disjoint segments.
type SegmentAlignment int

const (
	// SegmentAlignFirst aligns within each segment independently.
	SegmentAlignFirst SegmentAlignment = iota
	// SegmentAlignTotal aligns against the summed width of all segments.
	SegmentAlignTotal
)

// String returns the string representation of the segment alignment.
func (s SegmentAlignment) String() string {
	switch s {
	case SegmentAlignFirst:
		return "First"
	case SegmentAlignTotal:
		return "Total"
	default:
		return unknownStr
	}
}

// TextWrap selects the line wrapping strategy.
type TextWrap int

const (
	// WrapNormal is greedy first-fit wrapping.
	WrapNormal TextWrap = iota
	// WrapNone disables wrapping; only hard breaks start new lines.
	WrapNone
	// WrapBalance is reserved for balanced wrapping; currently laid out
	// the same as WrapNormal.
	WrapBalance
)

// String returns the string representation of the wrap mode.
func (w TextWrap) String() string {
	switch w {
	case WrapNormal:
		return "Normal"
	case WrapNone:
		return "None"
	case WrapBalance:
		return "Balance"
	default:
		return unknownStr
	}
}

// GlyphKind distinguishes glyphs that trace to source characters from
// glyphs inserted by the layout itself.
type GlyphKind int

const (
	// GlyphCharacter is a standard glyph shaped from source text.
	GlyphCharacter GlyphKind = iota
	// GlyphHyphen is a hyphen inserted by the line breaker.
	GlyphHyphen
	// GlyphNotDef is the .notdef glyph for an unmapped character.
	GlyphNotDef
	// GlyphKashida is a tatweel inserted by Kashida justification.
	GlyphKashida
)

// String returns the string representation of the glyph kind.
func (k GlyphKind) String() string {
	switch k {
	case GlyphCharacter:
		return "Character"
	case GlyphHyphen:
		return "Hyphen"
	case GlyphNotDef:
		return "NotDef"
	case GlyphKashida:
		return "Kashida"
	default:
		return unknownStr
	}
}

// BreakKind classifies a hard break item.
type BreakKind int

const (
	// BreakLine forces a new line.
	BreakLine BreakKind = iota
	// BreakColumn forces the next column.
	BreakColumn
	// BreakPage forces the next fragment.
	BreakPage
)

// String returns the string representation of the break kind.
func (b BreakKind) String() string {
	switch b {
	case BreakLine:
		return "Line"
	case BreakColumn:
		return "Column"
	case BreakPage:
		return "Page"
	default:
		return unknownStr
	}
}

// CharacterClass groups codepoints by their justification behavior.
type CharacterClass int

const (
	// ClassLetter is the default class.
	ClassLetter CharacterClass = iota
	// ClassSpace covers word separators (space, NBSP, ideographic space).
	ClassSpace
	// ClassPunctuation covers ASCII punctuation blocks.
	ClassPunctuation
	// ClassIdeograph covers CJK unified ideographs.
	ClassIdeograph
	// ClassSymbol covers symbol codepoints.
	ClassSymbol
	// ClassCombining covers combining marks; never a justification gap.
	ClassCombining
)

// String returns the string representation of the character class.
func (c CharacterClass) String() string {
	switch c {
	case ClassLetter:
		return "Letter"
	case ClassSpace:
		return "Space"
	case ClassPunctuation:
		return "Punctuation"
	case ClassIdeograph:
		return "Ideograph"
	case ClassSymbol:
		return "Symbol"
	case ClassCombining:
		return "Combining"
	default:
		return unknownStr
	}
}

// classifyCharacter returns the layout class of a codepoint.
func classifyCharacter(r rune) CharacterClass {
	switch {
	case r == 0x0020 || r == 0x00A0 || r == 0x3000:
		return ClassSpace
	case (r >= 0x0021 && r <= 0x002F) || (r >= 0x003A && r <= 0x0040) ||
		(r >= 0x005B && r <= 0x0060) || (r >= 0x007B && r <= 0x007E):
		return ClassPunctuation
	case (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF):
		return ClassIdeograph
	case (r >= 0x0300 && r <= 0x036F) || (r >= 0x1AB0 && r <= 0x1AFF):
		return ClassCombining
	default:
		return ClassLetter
	}
}
