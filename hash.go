package textflow

import (
	"hash/fnv"
	"math"
)

// contentHasher accumulates an FNV-1a hash over the fields that make up
// a stage cache key. Floats are quantized to 1/100 px before hashing so
// keys stay stable across formatting round-trips.
type contentHasher struct {
	h uint64
}

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func newContentHasher() contentHasher {
	return contentHasher{h: fnvOffset}
}

func (c *contentHasher) byte(b byte) {
	c.h ^= uint64(b)
	c.h *= fnvPrime
}

func (c *contentHasher) uint64(v uint64) {
	for i := 0; i < 8; i++ {
		c.byte(byte(v >> (8 * i)))
	}
}

func (c *contentHasher) uint32(v uint32) {
	for i := 0; i < 4; i++ {
		c.byte(byte(v >> (8 * i)))
	}
}

func (c *contentHasher) int(v int) {
	c.uint64(uint64(v))
}

func (c *contentHasher) bool(v bool) {
	if v {
		c.byte(1)
	} else {
		c.byte(0)
	}
}

func (c *contentHasher) string(s string) {
	c.int(len(s))
	for i := 0; i < len(s); i++ {
		c.byte(s[i])
	}
}

// float hashes a quantized float. math.Round keeps -0 and +0 distinct
// bit patterns apart, so normalize zero first.
func (c *contentHasher) float(f float64) {
	q := math.Round(f * 100)
	if q == 0 {
		q = 0
	}
	c.uint64(math.Float64bits(q))
}

func (c *contentHasher) floatPtr(f *float64) {
	if f == nil {
		c.byte(0)
		return
	}
	c.byte(1)
	c.float(*f)
}

func (c *contentHasher) spacing(s *Spacing) {
	if s == nil {
		c.byte(0)
		return
	}
	c.byte(1)
	c.byte(byte(s.Unit))
	c.float(s.Value)
}

func (c *contentHasher) sum() uint64 { return c.h }

// hashStyle mixes every geometry-relevant style field. Color is included
// so renderer-visible changes invalidate downstream caches too.
func (c *contentHasher) style(s *StyleProperties) {
	if s == nil {
		c.byte(0)
		return
	}
	c.byte(1)
	c.string(s.FontRef.Family)
	c.uint32(uint32(s.FontRef.Weight))
	c.bool(s.FontRef.Italic)
	c.float(s.FontSize)
	c.byte(s.Color.R)
	c.byte(s.Color.G)
	c.byte(s.Color.B)
	c.byte(s.Color.A)
	c.spacing(s.LetterSpacing)
	c.spacing(s.WordSpacing)
	c.floatPtr(s.LineHeight)
	c.floatPtr(s.TabSize)
	c.byte(byte(s.TextCombine.Mode))
	c.int(s.TextCombine.Count)
}

// hashString is a standalone FNV-1a over a string, used where a full
// contentHasher is overkill.
func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
