package textflow

import (
	"hash/fnv"

	"github.com/gogpu/textflow/cache"
)

// FontMetrics are the design-space metrics of a font. Ascent, Descent
// and LineGap are in font units; scale by fontSize/UnitsPerEm for pixel
// values. Descent is negative for glyphs below the baseline.
type FontMetrics struct {
	UnitsPerEm uint16
	Ascent     float64
	Descent    float64
	LineGap    float64
}

// ScaledAscent returns the ascent in pixels at the given font size.
func (m FontMetrics) ScaledAscent(fontSize float64) float64 {
	if m.UnitsPerEm == 0 {
		return 0
	}
	return m.Ascent * fontSize / float64(m.UnitsPerEm)
}

// ScaledDescent returns the descent depth in pixels at the given font
// size, as a non-negative value.
func (m FontMetrics) ScaledDescent(fontSize float64) float64 {
	if m.UnitsPerEm == 0 {
		return 0
	}
	d := m.Descent * fontSize / float64(m.UnitsPerEm)
	if d < 0 {
		return -d
	}
	return d
}

// Glyph is one glyph produced by a shaper call. Cluster is the byte
// offset of the glyph's cluster within the shaped text slice; glyphs
// sharing a Cluster form one indivisible unit.
type Glyph struct {
	GlyphID uint16
	Cluster uint32
	Advance float64
	Offset  Point
}

// VerticalGlyphMetrics describe a glyph's layout along the vertical
// axis, in pixels at the requested font size.
type VerticalGlyphMetrics struct {
	Advance  float64
	BearingX float64
	BearingY float64
}

// ParsedFont is the boundary to an already parsed font. Implementations
// must be safe for concurrent reads; the pipeline invokes them
// single-threaded but fonts are shared across layouts.
type ParsedFont interface {
	// ShapeText shapes one uniform run. Glyphs come back in visual
	// order for the given direction, with advances and offsets in
	// pixels at fontSize.
	ShapeText(text string, script Script, language string, direction Direction, fontSize float64) ([]Glyph, error)

	// Metrics returns the font's design-space metrics.
	Metrics() FontMetrics

	// SpaceAdvance returns the advance of U+0020 at fontSize.
	SpaceAdvance(fontSize float64) (float64, bool)

	// VerticalMetrics returns vertical layout metrics for a glyph, or
	// false when the font has no vertical tables.
	VerticalMetrics(glyphID uint16, fontSize float64) (VerticalGlyphMetrics, bool)

	// HyphenGlyph returns the glyph id and advance of U+002D at
	// fontSize, or false when the font cannot display a hyphen.
	HyphenGlyph(fontSize float64) (uint16, float64, bool)

	// KashidaGlyph returns the glyph id and advance of U+0640 at
	// fontSize, or false when the font has no tatweel.
	KashidaGlyph(fontSize float64) (uint16, float64, bool)
}

// FontLoader resolves font references to parsed fonts. Fallback policy
// lives behind this boundary; the layout takes whatever the loader
// picks.
type FontLoader interface {
	LoadFont(ref FontRef) (ParsedFont, error)
}

// fontRefHasher hashes a FontRef for cache shard selection.
func fontRefHasher(ref FontRef) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ref.Family))
	var tail [3]byte
	tail[0] = byte(ref.Weight)
	tail[1] = byte(ref.Weight >> 8)
	if ref.Italic {
		tail[2] = 1
	}
	_, _ = h.Write(tail[:])
	return h.Sum64()
}

// FontManager caches parsed fonts by reference so repeated layouts do
// not re-parse font files. Load failures are not cached; a later call
// retries the loader.
type FontManager struct {
	loader FontLoader
	fonts  *cache.Sharded[FontRef, ParsedFont]
}

// NewFontManager returns a manager backed by the given loader.
func NewFontManager(loader FontLoader) *FontManager {
	return &FontManager{
		loader: loader,
		fonts:  cache.NewSharded[FontRef, ParsedFont](cache.DefaultCapacity, fontRefHasher),
	}
}

// Load resolves a font reference, consulting the cache first.
func (m *FontManager) Load(ref FontRef) (ParsedFont, error) {
	return m.fonts.GetOrCreateErr(ref, func() (ParsedFont, error) {
		font, err := m.loader.LoadFont(ref)
		if err != nil {
			Logger().Warn("font load failed", "family", ref.Family, "weight", ref.Weight)
			return nil, &FontMissingError{Ref: ref, Err: err}
		}
		return font, nil
	})
}

// CachedFonts returns how many parsed fonts the manager holds.
func (m *FontManager) CachedFonts() int { return m.fonts.Len() }
