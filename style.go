package textflow

// SpacingUnit selects how a Spacing value is interpreted.
type SpacingUnit int

const (
	// SpacingPx is an absolute length in pixels.
	SpacingPx SpacingUnit = iota
	// SpacingEm is a length relative to the item's font size.
	SpacingEm
)

// String returns the string representation of the unit.
func (u SpacingUnit) String() string {
	switch u {
	case SpacingPx:
		return "Px"
	case SpacingEm:
		return "Em"
	default:
		return unknownStr
	}
}

// Spacing is a length that may be absolute or font-relative.
type Spacing struct {
	Value float64
	Unit  SpacingUnit
}

// Px returns an absolute spacing.
func Px(v float64) Spacing { return Spacing{Value: v, Unit: SpacingPx} }

// Em returns a font-relative spacing.
func Em(v float64) Spacing { return Spacing{Value: v, Unit: SpacingEm} }

// Resolve converts the spacing to pixels for the given font size.
func (s Spacing) Resolve(fontSize float64) float64 {
	if s.Unit == SpacingEm {
		return s.Value * fontSize
	}
	return s.Value
}

// TextCombineMode selects tate-chu-yoko behavior for vertical text.
type TextCombineMode int

const (
	// TextCombineNone disables combining.
	TextCombineNone TextCombineMode = iota
	// TextCombineAll combines the whole run into one horizontal block.
	TextCombineAll
	// TextCombineDigits combines up to Count consecutive ASCII digits.
	TextCombineDigits
)

// String returns the string representation of the combine mode.
func (m TextCombineMode) String() string {
	switch m {
	case TextCombineNone:
		return "None"
	case TextCombineAll:
		return "All"
	case TextCombineDigits:
		return "Digits"
	default:
		return unknownStr
	}
}

// TextCombine configures horizontal-in-vertical runs (tate-chu-yoko).
type TextCombine struct {
	Mode TextCombineMode
	// Count is the maximum digit run length for TextCombineDigits.
	Count int
}

// Color is a straight-alpha RGBA color carried through layout for the
// renderer. It never influences geometry.
type Color struct {
	R, G, B, A uint8
}

// FontRef identifies a font to the FontLoader. The layout never
// interprets it beyond equality and hashing.
type FontRef struct {
	Family string
	Weight uint16
	Italic bool
}

// StyleProperties is the fully resolved style of a run. Instances are
// shared by pointer between items and must not be mutated after they
// enter the pipeline.
type StyleProperties struct {
	FontRef  FontRef
	FontSize float64
	Color    Color

	LetterSpacing *Spacing
	WordSpacing   *Spacing
	LineHeight    *float64
	TabSize       *float64

	TextCombine TextCombine
}

// defaultStyle backs text runs created without an explicit style.
var defaultStyle = StyleProperties{FontSize: 16}

// letterSpacingPx resolves the style's letter spacing, zero if unset.
func (s *StyleProperties) letterSpacingPx() float64 {
	if s.LetterSpacing == nil {
		return 0
	}
	return s.LetterSpacing.Resolve(s.FontSize)
}

// wordSpacingPx resolves the style's word spacing, zero if unset.
func (s *StyleProperties) wordSpacingPx() float64 {
	if s.WordSpacing == nil {
		return 0
	}
	return s.WordSpacing.Resolve(s.FontSize)
}

// tabSize returns the style's tab size in space-advance multiples,
// defaulting to 4.
func (s *StyleProperties) tabSize() float64 {
	if s.TabSize == nil {
		return 4
	}
	return *s.TabSize
}

// PartialStyle is a sparse style override. Nil fields inherit from the
// base style of the run the override targets.
type PartialStyle struct {
	FontRef  *FontRef
	FontSize *float64
	Color    *Color

	LetterSpacing *Spacing
	WordSpacing   *Spacing
	LineHeight    *float64
	TabSize       *float64

	TextCombine *TextCombine
}

// isZero reports whether the override changes nothing.
func (p *PartialStyle) isZero() bool {
	return p == nil || (p.FontRef == nil && p.FontSize == nil && p.Color == nil &&
		p.LetterSpacing == nil && p.WordSpacing == nil && p.LineHeight == nil &&
		p.TabSize == nil && p.TextCombine == nil)
}

// mergeInto returns a style with the override's set fields applied over
// base. The base is returned unchanged when the override is empty.
func (p *PartialStyle) mergeInto(base *StyleProperties) *StyleProperties {
	if p.isZero() {
		return base
	}
	merged := *base
	if p.FontRef != nil {
		merged.FontRef = *p.FontRef
	}
	if p.FontSize != nil {
		merged.FontSize = *p.FontSize
	}
	if p.Color != nil {
		merged.Color = *p.Color
	}
	if p.LetterSpacing != nil {
		merged.LetterSpacing = p.LetterSpacing
	}
	if p.WordSpacing != nil {
		merged.WordSpacing = p.WordSpacing
	}
	if p.LineHeight != nil {
		merged.LineHeight = p.LineHeight
	}
	if p.TabSize != nil {
		merged.TabSize = p.TabSize
	}
	if p.TextCombine != nil {
		merged.TextCombine = *p.TextCombine
	}
	return &merged
}

// StyleOverride applies a sparse style change starting at a position
// inside the original content.
type StyleOverride struct {
	Target ContentIndex
	Style  PartialStyle
}
