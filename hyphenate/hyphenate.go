// Package hyphenate adapts Liang-style hyphenation pattern
// dictionaries to the layout's Hyphenator boundary. Dictionaries load
// lazily per language tag and cache for the provider's lifetime.
package hyphenate

import (
	"io"
	"strings"

	"github.com/speedata/hyphenation"
	"golang.org/x/text/language"

	"github.com/gogpu/textflow"
	"github.com/gogpu/textflow/cache"
)

// Minimum untouched prefix and suffix lengths, in runes. Pattern files
// permit breaks closer to the edges than typography wants.
const (
	minPrefix = 2
	minSuffix = 2
)

// Source supplies hyphenation pattern files (TeX .pat format) for
// language tags.
type Source interface {
	// PatternReader opens the pattern file for a language, or an error
	// when the language is not covered.
	PatternReader(tag language.Tag) (io.ReadCloser, error)
}

// Dictionary hyphenates words of one language.
type Dictionary struct {
	lang *hyphenation.Lang
}

// Hyphenate returns ascending byte offsets inside word where a hyphen
// may be inserted. Word edges are excluded.
func (d *Dictionary) Hyphenate(word string) []int {
	runes := []rune(word)
	if len(runes) < minPrefix+minSuffix {
		return nil
	}

	positions := d.lang.Hyphenate(strings.ToLower(word))
	if len(positions) == 0 {
		return nil
	}

	byteOf := make([]int, 0, len(runes))
	for i := range word {
		byteOf = append(byteOf, i)
	}

	var out []int
	for _, p := range positions {
		if p < minPrefix || p > len(runes)-minSuffix {
			continue
		}
		out = append(out, byteOf[p])
	}
	return out
}

// Provider loads and caches dictionaries by language tag.
type Provider struct {
	source Source
	dicts  *cache.Sharded[string, *Dictionary]
}

// NewProvider returns a provider reading patterns from source.
func NewProvider(source Source) *Provider {
	return &Provider{
		source: source,
		dicts:  cache.NewSharded[string, *Dictionary](cache.DefaultCapacity, cache.StringHasher),
	}
}

// Get returns the dictionary for a BCP 47 tag, loading it on first use.
// Unknown or unloadable languages return a HyphenationError; callers
// typically respond by laying out without hyphenation.
func (p *Provider) Get(tag string) (textflow.Hyphenator, error) {
	if tag == "" {
		tag = "en"
	}
	d, err := p.dicts.GetOrCreateErr(tag, func() (*Dictionary, error) {
		parsed, err := language.Parse(tag)
		if err != nil {
			return nil, &textflow.HyphenationError{Language: tag, Err: err}
		}
		r, err := p.source.PatternReader(parsed)
		if err != nil {
			return nil, &textflow.HyphenationError{Language: tag, Err: err}
		}
		defer r.Close()
		lang, err := hyphenation.New(r)
		if err != nil {
			return nil, &textflow.HyphenationError{Language: tag, Err: err}
		}
		return &Dictionary{lang: lang}, nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}
