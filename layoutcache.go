package textflow

import "github.com/gogpu/textflow/cache"

// LayoutCache memoizes the four pipeline stages by content-derived
// keys. It is owned by the caller and shared across LayoutFlow calls;
// dropping it evicts everything at once. Entries are read-only after
// insertion and never written on an error path.
type LayoutCache struct {
	logical  *cache.Sharded[uint64, []LogicalItem]
	visual   *cache.Sharded[uint64, []VisualItem]
	shaped   *cache.Sharded[uint64, []ShapedItem]
	oriented *cache.Sharded[uint64, []ShapedItem]
	flows    *cache.Sharded[uint64, *FlowLayout]
}

// NewLayoutCache returns a cache with the default per-stage capacity.
func NewLayoutCache() *LayoutCache {
	return &LayoutCache{
		logical:  cache.NewSharded[uint64, []LogicalItem](cache.DefaultCapacity, cache.Uint64Hasher),
		visual:   cache.NewSharded[uint64, []VisualItem](cache.DefaultCapacity, cache.Uint64Hasher),
		shaped:   cache.NewSharded[uint64, []ShapedItem](cache.DefaultCapacity, cache.Uint64Hasher),
		oriented: cache.NewSharded[uint64, []ShapedItem](cache.DefaultCapacity, cache.Uint64Hasher),
		flows:    cache.NewSharded[uint64, *FlowLayout](cache.DefaultCapacity, cache.Uint64Hasher),
	}
}

// Clear drops every stage entry.
func (lc *LayoutCache) Clear() {
	lc.logical.Clear()
	lc.visual.Clear()
	lc.shaped.Clear()
	lc.oriented.Clear()
	lc.flows.Clear()
}

// hashContentKey hashes the raw content plus overrides; the stage 1
// cache key.
func hashContentKey(content []InlineContent, overrides []StyleOverride) uint64 {
	h := newContentHasher()
	h.int(len(content))
	for _, run := range content {
		switch v := run.(type) {
		case TextRun:
			h.byte(1)
			h.string(v.Text)
			h.style(v.Style)
		case InlineImage:
			h.byte(2)
			h.float(v.IntrinsicSize.Width)
			h.float(v.IntrinsicSize.Height)
			if v.DisplaySize != nil {
				h.byte(1)
				h.float(v.DisplaySize.Width)
				h.float(v.DisplaySize.Height)
			} else {
				h.byte(0)
			}
			h.float(v.BaselineOffset)
		case InlineShape:
			h.byte(3)
			h.float(v.Size.Width)
			h.float(v.Size.Height)
			h.float(v.BaselineOffset)
		case InlineSpace:
			h.byte(4)
			h.float(v.Width)
		case InlineRuby:
			h.byte(5)
			h.int(len(v.Base))
			for _, r := range v.Base {
				h.string(r.Text)
				h.style(r.Style)
			}
			h.int(len(v.Annotation))
			for _, r := range v.Annotation {
				h.string(r.Text)
				h.style(r.Style)
			}
			h.style(v.Style)
		case InlineBreak:
			h.byte(6)
			h.byte(byte(v.Kind))
		}
	}
	h.int(len(overrides))
	for i := range overrides {
		h.uint32(overrides[i].Target.RunIndex)
		h.uint32(overrides[i].Target.ItemIndex)
		h.uint64(hashPartialStyle(&overrides[i].Style))
	}
	return h.sum()
}

// stageLogical returns the analyzed items, consulting the cache.
func stageLogical(lc *LayoutCache, content []InlineContent, overrides []StyleOverride) ([]LogicalItem, uint64) {
	key := hashContentKey(content, overrides)
	if lc == nil {
		return AnalyzeContent(content, overrides), key
	}
	items := lc.logical.GetOrCreate(key, func() []LogicalItem {
		return AnalyzeContent(content, overrides)
	})
	return items, key
}

// stageVisual returns the reordered items; the key mixes the logical
// key with the resolved base direction.
func stageVisual(lc *LayoutCache, logical []LogicalItem, logicalKey uint64, base Direction) ([]VisualItem, uint64) {
	h := newContentHasher()
	h.uint64(logicalKey)
	h.byte(byte(base))
	key := h.sum()
	if lc == nil {
		return ReorderLogicalItems(logical, base), key
	}
	items := lc.visual.GetOrCreate(key, func() []VisualItem {
		return ReorderLogicalItems(logical, base)
	})
	return items, key
}

// stageShaped returns the shaped stream. The key mixes the visual key
// with every participating style, so a style-only edit reshapes without
// re-running the earlier stages. Failures are never inserted.
func stageShaped(lc *LayoutCache, visual []VisualItem, visualKey uint64, logical []LogicalItem, fonts *FontManager) ([]ShapedItem, uint64, error) {
	h := newContentHasher()
	h.uint64(visualKey)
	for _, item := range logical {
		switch v := item.(type) {
		case LogicalText:
			h.style(v.Style)
		case LogicalCombined:
			h.style(v.Style)
		case LogicalTab:
			h.style(v.Style)
		case LogicalRuby:
			h.style(v.Style)
		}
	}
	key := h.sum()
	if lc == nil {
		items, err := ShapeVisualItems(visual, logical, fonts)
		return items, key, err
	}
	items, err := lc.shaped.GetOrCreateErr(key, func() ([]ShapedItem, error) {
		return ShapeVisualItems(visual, logical, fonts)
	})
	return items, key, err
}

// stageOriented returns the orientation-transformed stream for the
// flow's writing mode.
func stageOriented(lc *LayoutCache, shaped []ShapedItem, shapedKey uint64, mode WritingMode, orientation TextOrientation) ([]ShapedItem, uint64) {
	h := newContentHasher()
	h.uint64(shapedKey)
	h.byte(byte(mode))
	h.byte(byte(orientation))
	key := h.sum()
	if !mode.IsVertical() {
		// Horizontal flows reuse the shaped stream as-is.
		return shaped, key
	}
	if lc == nil {
		return ApplyTextOrientation(shaped, mode, orientation), key
	}
	items := lc.oriented.GetOrCreate(key, func() []ShapedItem {
		return ApplyTextOrientation(shaped, mode, orientation)
	})
	return items, key
}

// hashFlowKey combines the oriented stream key with every fragment's
// identity and constraints. The flow is cached whole because fragments
// share one cursor; caching per fragment would capture cursor state.
func hashFlowKey(orientedKey uint64, fragments []LayoutFragment) uint64 {
	h := newContentHasher()
	h.uint64(orientedKey)
	h.int(len(fragments))
	for i := range fragments {
		h.string(fragments[i].ID)
		fragments[i].Constraints.hash(&h)
	}
	return h.sum()
}
