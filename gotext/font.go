package gotext

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textflow"
)

// shaperPool reuses HarfbuzzShaper instances. The shaper keeps an
// internal buffer and is not safe for concurrent use, so each ShapeText
// call checks one out for its duration.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Font is a parsed font implementing textflow.ParsedFont. The embedded
// *font.Font is read-only and safe for concurrent use; the lightweight
// font.Face wrappers created per call are not, so none are retained.
type Font struct {
	font    *font.Font
	metrics textflow.FontMetrics
}

// Metrics implements textflow.ParsedFont.
func (f *Font) Metrics() textflow.FontMetrics { return f.metrics }

// scale converts font units to pixels at the given size.
func (f *Font) scale(fontSize float64) float64 {
	if f.metrics.UnitsPerEm == 0 {
		return 0
	}
	return fontSize / float64(f.metrics.UnitsPerEm)
}

// ShapeText implements textflow.ParsedFont. Glyphs come back in visual
// order with cluster values rewritten from rune indices to byte offsets
// within text.
func (f *Font) ShapeText(text string, script textflow.Script, lang string, direction textflow.Direction, fontSize float64) ([]textflow.Glyph, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	byteOf := make([]int, 0, len(runes))
	for i := range text {
		byteOf = append(byteOf, i)
	}

	if lang == "" {
		lang = "en"
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(direction),
		Face:      font.NewFace(f.font),
		Size:      floatToFixed(fontSize),
		Script:    detectScript(runes),
		Language:  language.NewLanguage(lang),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	glyphs := make([]textflow.Glyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		cluster := uint32(0)
		if ri := g.TextIndex(); ri >= 0 && ri < len(byteOf) {
			cluster = uint32(byteOf[ri])
		}
		glyphs[i] = textflow.Glyph{
			GlyphID: uint16(g.GlyphID),
			Cluster: cluster,
			Advance: fixedToFloat(g.Advance),
			Offset: textflow.Point{
				X: fixedToFloat(g.XOffset),
				Y: fixedToFloat(g.YOffset),
			},
		}
	}
	return glyphs, nil
}

// SpaceAdvance implements textflow.ParsedFont.
func (f *Font) SpaceAdvance(fontSize float64) (float64, bool) {
	_, adv, ok := f.nominal(' ', fontSize)
	return adv, ok
}

// HyphenGlyph implements textflow.ParsedFont.
func (f *Font) HyphenGlyph(fontSize float64) (uint16, float64, bool) {
	return f.nominal('-', fontSize)
}

// KashidaGlyph implements textflow.ParsedFont. The tatweel must map to
// a real glyph with positive width to be usable for elongation.
func (f *Font) KashidaGlyph(fontSize float64) (uint16, float64, bool) {
	gid, adv, ok := f.nominal('ـ', fontSize)
	if !ok || adv <= 0 {
		return 0, 0, false
	}
	return gid, adv, true
}

// VerticalMetrics implements textflow.ParsedFont. Fonts without
// vertical tables report false and the caller synthesizes metrics.
func (f *Font) VerticalMetrics(glyphID uint16, fontSize float64) (textflow.VerticalGlyphMetrics, bool) {
	face := font.NewFace(f.font)
	ext, ok := face.FontVExtents()
	if !ok {
		return textflow.VerticalGlyphMetrics{}, false
	}
	s := f.scale(fontSize)
	adv := float64(face.VerticalAdvance(font.GID(glyphID))) * s
	if adv < 0 {
		adv = -adv
	}
	hAdv := float64(face.HorizontalAdvance(font.GID(glyphID))) * s
	return textflow.VerticalGlyphMetrics{
		Advance:  adv,
		BearingX: -hAdv / 2,
		BearingY: float64(ext.Ascender) * s,
	}, true
}

// nominal resolves a single codepoint to its glyph and horizontal
// advance in pixels.
func (f *Font) nominal(r rune, fontSize float64) (uint16, float64, bool) {
	face := font.NewFace(f.font)
	gid, ok := face.NominalGlyph(r)
	if !ok {
		return 0, 0, false
	}
	adv := float64(face.HorizontalAdvance(gid)) * f.scale(fontSize)
	return uint16(gid), adv, true
}

// mapDirection converts a layout direction to go-text's run direction.
// Vertical orientation is applied after shaping, so only the horizontal
// directions appear here.
func mapDirection(d textflow.Direction) di.Direction {
	if d == textflow.DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. Runs
// reaching a shaper are script-uniform, so one probe suffices.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
