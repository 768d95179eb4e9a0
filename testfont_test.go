package textflow

import (
	"errors"
	"fmt"
)

// fakeFont is a deterministic ParsedFont for tests: every rune maps to
// one glyph of a fixed advance, so line geometry is easy to predict.
type fakeFont struct {
	// advance is the per-rune advance at any font size.
	advance float64
	// noHyphen and noKashida simulate missing glyphs.
	noHyphen  bool
	noKashida bool
	// vertical enables VerticalMetrics with advance verticalAdvance.
	vertical        bool
	verticalAdvance float64
	// shapeErr makes ShapeText fail.
	shapeErr error
}

func (f *fakeFont) ShapeText(text string, script Script, language string, direction Direction, fontSize float64) ([]Glyph, error) {
	if f.shapeErr != nil {
		return nil, f.shapeErr
	}
	var glyphs []Glyph
	for i, r := range text {
		glyphs = append(glyphs, Glyph{
			GlyphID: uint16(r%1000 + 1),
			Cluster: uint32(i),
			Advance: f.advance,
		})
	}
	// Shapers return RTL runs in visual order.
	if direction == DirectionRTL {
		for l, r := 0, len(glyphs)-1; l < r; l, r = l+1, r-1 {
			glyphs[l], glyphs[r] = glyphs[r], glyphs[l]
		}
	}
	return glyphs, nil
}

func (f *fakeFont) Metrics() FontMetrics {
	return FontMetrics{UnitsPerEm: 1000, Ascent: 800, Descent: -200, LineGap: 0}
}

func (f *fakeFont) SpaceAdvance(fontSize float64) (float64, bool) {
	return f.advance, true
}

func (f *fakeFont) VerticalMetrics(glyphID uint16, fontSize float64) (VerticalGlyphMetrics, bool) {
	if !f.vertical {
		return VerticalGlyphMetrics{}, false
	}
	return VerticalGlyphMetrics{
		Advance:  f.verticalAdvance,
		BearingX: -f.advance / 2,
		BearingY: 0.8 * fontSize,
	}, true
}

func (f *fakeFont) HyphenGlyph(fontSize float64) (uint16, float64, bool) {
	if f.noHyphen {
		return 0, 0, false
	}
	return 45, f.advance / 2, true
}

func (f *fakeFont) KashidaGlyph(fontSize float64) (uint16, float64, bool) {
	if f.noKashida {
		return 0, 0, false
	}
	return 1600, f.advance / 2, true
}

// fakeLoader serves one fakeFont for every family, or an error.
type fakeLoader struct {
	font  *fakeFont
	err   error
	calls int
}

func (l *fakeLoader) LoadFont(ref FontRef) (ParsedFont, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.font, nil
}

// testFonts returns a manager over a fakeFont with a 10px rune advance.
func testFonts() (*FontManager, *fakeFont) {
	f := &fakeFont{advance: 10}
	return NewFontManager(&fakeLoader{font: f}), f
}

// testStyle is a 16px style shared by test content.
func testStyle() *StyleProperties {
	return &StyleProperties{
		FontRef:  FontRef{Family: "Test"},
		FontSize: 16,
	}
}

// shapeString runs the first three pipeline stages over one text run.
func shapeString(text string, fonts *FontManager) ([]ShapedItem, error) {
	logical := AnalyzeContent([]InlineContent{TextRun{Text: text, Style: testStyle()}}, nil)
	visual := ReorderLogicalItems(logical, DetectBaseDirection(logical))
	return ShapeVisualItems(visual, logical, fonts)
}

// mustShape fails the test contract loudly in helpers without a *T.
func mustShape(text string, fonts *FontManager) []ShapedItem {
	items, err := shapeString(text, fonts)
	if err != nil {
		panic(fmt.Sprintf("shape %q: %v", text, err))
	}
	return items
}

// wordHyphenator returns fixed byte offsets for one word and nothing
// for any other.
type wordHyphenator struct {
	word    string
	offsets []int
}

func (h *wordHyphenator) Hyphenate(word string) []int {
	if word != h.word {
		return nil
	}
	return h.offsets
}

var errShapeTest = errors.New("shape failed")

// closeTo compares floats with a tolerance fit for pixel arithmetic.
func closeTo(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
