package textflow

import "math"

// FlowLayout is the final output: one positioned layout per fragment
// plus whatever content did not fit anywhere.
type FlowLayout struct {
	FragmentLayouts map[string]*UnifiedLayout
	RemainingItems  []ShapedItem
}

// HyphenationSource resolves per-language hyphenators, typically the
// hyphenate package's Provider.
type HyphenationSource interface {
	Get(language string) (Hyphenator, error)
}

// layoutConfig carries the optional collaborators of a LayoutFlow call.
type layoutConfig struct {
	cache       *LayoutCache
	hyphenation HyphenationSource
}

// LayoutOption configures a LayoutFlow call.
type LayoutOption func(*layoutConfig)

// WithCache reuses stage results across calls. Without it every call
// recomputes all stages.
func WithCache(c *LayoutCache) LayoutOption {
	return func(cfg *layoutConfig) { cfg.cache = c }
}

// WithHyphenation supplies hyphenation dictionaries. Fragments with
// hyphenation disabled ignore it.
func WithHyphenation(src HyphenationSource) LayoutOption {
	return func(cfg *layoutConfig) { cfg.hyphenation = src }
}

// LayoutFlow runs the full pipeline: analysis, bidi reordering, shaping
// and orientation once over the content, then line breaking and
// positioning across the fragments in order, consuming a shared cursor.
// The first fragment's writing mode governs orientation for the whole
// flow.
func LayoutFlow(content []InlineContent, overrides []StyleOverride, fragments []LayoutFragment, fonts *FontManager, opts ...LayoutOption) (*FlowLayout, error) {
	var cfg layoutConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	out := &FlowLayout{FragmentLayouts: make(map[string]*UnifiedLayout, len(fragments))}
	if len(fragments) == 0 {
		return out, nil
	}
	first := &fragments[0].Constraints

	logical, logicalKey := stageLogical(cfg.cache, content, overrides)

	base := DetectBaseDirection(logical)
	if first.BaseDirection != nil {
		base = *first.BaseDirection
	}

	visual, visualKey := stageVisual(cfg.cache, logical, logicalKey, base)

	shaped, shapedKey, err := stageShaped(cfg.cache, visual, visualKey, logical, fonts)
	if err != nil {
		return nil, err
	}

	oriented, orientedKey := stageOriented(cfg.cache, shaped, shapedKey, first.WritingMode, first.TextOrientation)

	flowKey := hashFlowKey(orientedKey, fragments)
	if cfg.cache != nil {
		if cached, ok := cfg.cache.flows.Get(flowKey); ok {
			return cached, nil
		}
	}

	cursor := NewBreakCursor(oriented)
	for i := range fragments {
		frag := &fragments[i]
		hyph := fragmentHyphenator(&frag.Constraints, cfg.hyphenation)
		out.FragmentLayouts[frag.ID] = layoutFragment(cursor, &frag.Constraints, base, hyph)
	}
	out.RemainingItems = cursor.Remaining()

	if cfg.cache != nil {
		cfg.cache.flows.Set(flowKey, out)
	}
	return out, nil
}

// fragmentHyphenator resolves the fragment's hyphenator, degrading to
// none when the dictionary cannot load.
func fragmentHyphenator(c *UnifiedConstraints, src HyphenationSource) Hyphenator {
	if !c.Hyphenation || src == nil {
		return nil
	}
	lang := c.HyphenationLanguage
	if lang == "" {
		lang = "en"
	}
	h, err := src.Get(lang)
	if err != nil {
		Logger().Warn("hyphenation disabled for fragment", "language", lang, "error", err)
		return nil
	}
	return h
}

// layoutFragment fills one fragment from the cursor: column by column,
// line by line, until content, height or the line clamp runs out.
func layoutFragment(cursor *BreakCursor, c *UnifiedConstraints, base Direction, hyph Hyphenator) *UnifiedLayout {
	layout := &UnifiedLayout{}
	vertical := c.WritingMode.IsVertical()

	// Columns split the main axis: the width for horizontal flows, the
	// height for vertical ones, where they run top to bottom.
	columns := c.effectiveColumns()
	mainExtent := c.AvailableWidth
	if vertical && c.AvailableHeight != nil {
		mainExtent = *c.AvailableHeight
	}
	colWidth := mainExtent
	if columns > 1 {
		colWidth = (mainExtent - float64(columns-1)*c.ColumnGap) / float64(columns)
	}
	if colWidth <= 0 {
		return layout
	}

	lineHeight := c.resolvedLineHeight(fallbackFontSizeOf(cursor))

	// The cross-axis budget: height for horizontal flows, width for
	// vertical ones.
	clampHeight := math.Inf(1)
	if c.Overflow.clipsHeight() {
		if vertical {
			clampHeight = c.AvailableWidth
		} else if c.AvailableHeight != nil {
			clampHeight = *c.AvailableHeight
		}
	}

	exclusions := c.ShapeExclusions
	lineIndex := 0
	maxCross := 0.0

	// Drop cap: consume the leading items and exclude their box from
	// the rest of the pass.
	if c.InitialLetter != nil && cursor.IsAtStart() {
		if box, positioned := placeInitialLetter(cursor, c, lineHeight); len(positioned) > 0 {
			layout.Items = append(layout.Items, positioned...)
			exclusions = append(append([]Shape{}, exclusions...), ShapeRect{Rect: box})
			maxCross = maxf(maxCross, box.MaxY())
		}
	}

	// Per-band constraint geometry, memoized by quantized position.
	bandCache := make(map[int64]LineConstraints)
	local := *c
	local.ShapeExclusions = exclusions
	constraintsAt := func(cross float64, colStart, colW float64) LineConstraints {
		key := int64(math.Round(cross*100))<<16 ^ int64(math.Round(colStart*100))
		if lc, ok := bandCache[key]; ok {
			return lc
		}
		var lc LineConstraints
		if vertical {
			// Vertical flows use plain rectangular geometry; shapes
			// apply to horizontal modes. The pen starts at the
			// column's main-axis offset.
			lc = LineConstraints{
				Segments:   []LineSegment{{StartX: colStart, Width: colW}},
				TotalWidth: colW,
			}
		} else {
			lc = LineConstraintsAt(cross, lineHeight, &local)
			lc = clipToColumn(lc, colStart, colW)
		}
		bandCache[key] = lc
		return lc
	}

	clamped := func() bool {
		return c.LineClamp > 0 && lineIndex >= c.LineClamp
	}

column:
	for col := 0; col < columns; col++ {
		colStart := float64(col) * (colWidth + c.ColumnGap)
		cross := 0.0

		for {
			if cursor.Exhausted() || clamped() {
				break column
			}
			if cross+lineHeight > clampHeight {
				continue column
			}

			lc := constraintsAt(cross, colStart, colWidth)
			if lc.TotalWidth <= 0 {
				// Fully excluded band; skip down.
				cross += lineHeight
				if math.IsInf(clampHeight, 1) && cross > excludedBandLimit(c) {
					break column
				}
				continue
			}

			line, _ := BreakOneLine(cursor, lc, vertical, hyph)
			if len(line) == 0 {
				break column
			}

			isLast := cursor.Exhausted()
			positioned, boxHeight := PositionOneLine(line, lc, cross, lineIndex, base, isLast, c)
			layout.Items = append(layout.Items, positioned...)
			lineIndex++
			cross += maxf(boxHeight, lineHeight)
			maxCross = maxf(maxCross, cross)

			switch breakKindOf(line) {
			case BreakColumn:
				continue column
			case BreakPage:
				break column
			}
		}
	}

	if !cursor.Exhausted() && c.Overflow.clipsHeight() {
		layout.Overflow = true
	}

	if vertical {
		layout.Bounds = Rect{Width: maxCross, Height: mainExtent}
	} else {
		layout.Bounds = Rect{Width: c.AvailableWidth, Height: maxCross}
	}
	return layout
}

// breakKindOf returns the forced break kind ending the line, or
// BreakLine when the line ended naturally.
func breakKindOf(line []ShapedItem) BreakKind {
	if len(line) == 0 {
		return BreakLine
	}
	if br, ok := line[len(line)-1].(*ShapedBreak); ok {
		return br.Kind
	}
	return BreakLine
}

// excludedBandLimit bounds the skip-down search when the fragment has
// no height: past the deepest boundary or exclusion nothing can open a
// new segment.
func excludedBandLimit(c *UnifiedConstraints) float64 {
	limit := 0.0
	all := make([]Shape, 0, len(c.ShapeBoundaries)+len(c.ShapeExclusions))
	all = append(all, c.ShapeBoundaries...)
	all = append(all, c.ShapeExclusions...)
	for _, s := range all {
		switch v := s.(type) {
		case ShapeRect:
			limit = maxf(limit, v.Rect.MaxY())
		case ShapeCircle:
			limit = maxf(limit, v.Center.Y+v.Radius)
		case ShapeEllipse:
			limit = maxf(limit, v.Center.Y+v.RadiusY)
		case ShapePolygon:
			for _, p := range v.Points {
				limit = maxf(limit, p.Y)
			}
		}
	}
	return limit + c.ExclusionMargin
}

// clipToColumn intersects line segments with the column's span.
func clipToColumn(lc LineConstraints, colStart, colWidth float64) LineConstraints {
	colEnd := colStart + colWidth
	out := LineConstraints{}
	for _, seg := range lc.Segments {
		start := maxf(seg.StartX, colStart)
		end := seg.EndX()
		if end > colEnd {
			end = colEnd
		}
		if end-start <= 0 {
			continue
		}
		out.Segments = append(out.Segments, LineSegment{StartX: start, Width: end - start})
		out.TotalWidth += end - start
	}
	return out
}

// placeInitialLetter consumes the drop cap items, positions them at the
// fragment origin and returns the box to exclude from following lines.
func placeInitialLetter(cursor *BreakCursor, c *UnifiedConstraints, lineHeight float64) (Rect, []PositionedItem) {
	count := c.InitialLetter.Count
	if count <= 0 {
		return Rect{}, nil
	}
	lines := c.InitialLetter.Lines
	if lines <= 0 {
		lines = 1
	}

	var items []PositionedItem
	width := 0.0
	vertical := c.WritingMode.IsVertical()
	for i := 0; i < count; i++ {
		item, ok := cursor.peek(0)
		if !ok {
			break
		}
		if _, isBreak := item.(*ShapedBreak); isBreak {
			break
		}
		items = append(items, PositionedItem{
			Item:     item,
			Position: Point{X: width, Y: float64(lines) * lineHeight},
		})
		width += itemMeasure(item, vertical)
		cursor.consume(1)
	}
	if len(items) == 0 {
		return Rect{}, nil
	}
	box := Rect{Width: width, Height: float64(lines) * lineHeight}
	return box.Inflate(c.ExclusionMargin), items
}

// fallbackFontSizeOf finds a font size for the line height default when
// the constraints do not set one.
func fallbackFontSizeOf(cursor *BreakCursor) float64 {
	for i := 0; ; i++ {
		item, ok := cursor.peek(i)
		if !ok {
			return 16
		}
		if c, isCluster := item.(*ShapedCluster); isCluster {
			return c.Style.FontSize
		}
	}
}
