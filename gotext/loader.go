// Package gotext implements textflow's font boundary on top of
// go-text/typesetting. Fonts are registered as raw TTF/OTF bytes and
// shaped through the HarfBuzz port in typesetting/shaping.
package gotext

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/textflow"
)

// faceKey identifies one registered face within a family.
type faceKey struct {
	family string
	weight uint16
	italic bool
}

// Loader is an in-memory font registry. It resolves textflow.FontRef
// lookups to the closest registered face: exact match first, then the
// nearest weight within the family, then the fallback family.
//
// Loader is safe for concurrent use. Registered *Font values are
// read-only and shared between lookups.
type Loader struct {
	mu       sync.RWMutex
	faces    map[faceKey]*Font
	families map[string][]faceKey
	fallback string
}

// NewLoader returns an empty registry.
func NewLoader() *Loader {
	return &Loader{
		faces:    make(map[faceKey]*Font),
		families: make(map[string][]faceKey),
	}
}

// Register parses the font data and files it under the given family,
// weight and italic flag. Registering the same key twice replaces the
// earlier face.
func (l *Loader) Register(family string, weight uint16, italic bool, data []byte) error {
	fnt, err := ParseFont(data)
	if err != nil {
		return fmt.Errorf("gotext: parse %q: %w", family, err)
	}
	key := faceKey{family: family, weight: weight, italic: italic}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.faces[key]; !exists {
		l.families[family] = append(l.families[family], key)
	}
	l.faces[key] = fnt
	if l.fallback == "" {
		l.fallback = family
	}
	return nil
}

// SetFallback names the family used when a requested family has no
// registered faces. The first registered family is the default.
func (l *Loader) SetFallback(family string) {
	l.mu.Lock()
	l.fallback = family
	l.mu.Unlock()
}

// LoadFont implements textflow.FontLoader.
func (l *Loader) LoadFont(ref textflow.FontRef) (textflow.ParsedFont, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if f, ok := l.faces[faceKey{family: ref.Family, weight: ref.Weight, italic: ref.Italic}]; ok {
		return f, nil
	}
	if f := l.closest(ref.Family, ref.Weight, ref.Italic); f != nil {
		return f, nil
	}
	if l.fallback != "" && l.fallback != ref.Family {
		if f := l.closest(l.fallback, ref.Weight, ref.Italic); f != nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("gotext: no face registered for family %q", ref.Family)
}

// closest picks the best face within one family. Matching italic wins
// over a nearer weight; ties go to the lower weight.
func (l *Loader) closest(family string, weight uint16, italic bool) *Font {
	keys := l.families[family]
	if len(keys) == 0 {
		return nil
	}
	best := -1
	bestCost := 0
	for i, k := range keys {
		cost := int(k.weight) - int(weight)
		if cost < 0 {
			cost = -cost
		}
		if k.italic != italic {
			cost += 1000
		}
		if best == -1 || cost < bestCost || (cost == bestCost && k.weight < keys[best].weight) {
			best = i
			bestCost = cost
		}
	}
	return l.faces[keys[best]]
}

// ParseFont parses raw TTF/OTF bytes into a shaping-ready font.
func ParseFont(data []byte) (*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	ext, _ := face.FontHExtents()
	return &Font{
		font: face.Font,
		metrics: textflow.FontMetrics{
			UnitsPerEm: face.Upem(),
			Ascent:     float64(ext.Ascender),
			Descent:    float64(ext.Descender),
			LineGap:    float64(ext.LineGap),
		},
	}, nil
}
