package textflow

// PositionedItem is a shaped item with its final position. For clusters
// the position is the baseline origin of the first glyph; for objects
// it is the top-left corner of the box.
type PositionedItem struct {
	Item      ShapedItem
	Position  Point
	LineIndex int
}

// UnifiedLayout is the positioned output of one fragment.
type UnifiedLayout struct {
	Items  []PositionedItem
	Bounds Rect
	// Overflow reports that content was clipped or pushed onward
	// because the fragment height ran out.
	Overflow bool
}

// LastBaseline returns the baseline coordinate of the layout's final
// line: Y in horizontal modes, X in vertical ones. The second result is
// false when the layout holds no clusters.
func (l *UnifiedLayout) LastBaseline() (float64, bool) {
	lastLine := -1
	baseline := 0.0
	found := false
	for _, it := range l.Items {
		c, ok := it.Item.(*ShapedCluster)
		if !ok || it.LineIndex < lastLine {
			continue
		}
		lastLine = it.LineIndex
		if c.Vertical {
			baseline = it.Position.X
		} else {
			baseline = it.Position.Y
		}
		found = true
	}
	return baseline, found
}

// UsedFonts returns the distinct fonts referenced by the positioned
// clusters, in first-use order. Renderers preload glyph atlases from it.
func (l *UnifiedLayout) UsedFonts() []ParsedFont {
	var fonts []ParsedFont
	seen := make(map[ParsedFont]struct{})
	for _, it := range l.Items {
		c, ok := it.Item.(*ShapedCluster)
		if !ok || c.Font == nil {
			continue
		}
		if _, dup := seen[c.Font]; dup {
			continue
		}
		seen[c.Font] = struct{}{}
		fonts = append(fonts, c.Font)
	}
	return fonts
}

// lineMetrics are the resolved cross-axis metrics of one line.
type lineMetrics struct {
	ascent  float64
	descent float64
}

func (m lineMetrics) height() float64 { return m.ascent + m.descent }

// measureLineMetrics computes line ascent and descent as the max over
// items. Clusters use scaled font metrics; objects use their box split
// at the baseline offset.
func measureLineMetrics(items []ShapedItem) lineMetrics {
	var m lineMetrics
	for _, item := range items {
		switch v := item.(type) {
		case *ShapedCluster:
			fm := v.Font.Metrics()
			m.ascent = maxf(m.ascent, fm.ScaledAscent(v.Style.FontSize))
			m.descent = maxf(m.descent, fm.ScaledDescent(v.Style.FontSize))
		case *CombinedBlock:
			m.ascent = maxf(m.ascent, v.Height)
		case *ShapedObject:
			m.ascent = maxf(m.ascent, v.Size.Height-v.BaselineOffset)
			m.descent = maxf(m.descent, v.BaselineOffset)
		}
	}
	return m
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// hangingPunctuationRunes are the marks allowed to overhang line edges.
func isHangingPunctuation(item ShapedItem) (float64, bool) {
	c, ok := item.(*ShapedCluster)
	if !ok {
		return 0, false
	}
	switch c.Text {
	case ".", ",", ":", ";":
		return c.Advance, true
	}
	return 0, false
}

// alignOffset converts leftover segment width into a pen offset.
func alignOffset(align TextAlign, slack float64) float64 {
	if slack <= 0 {
		return 0
	}
	switch align {
	case AlignRight:
		return slack
	case AlignCenter:
		return slack / 2
	default:
		return 0
	}
}

// PositionOneLine aligns, justifies and places one line of items at the
// given cross-axis position. It returns the positioned items and the
// line box height. Axes swap in vertical writing modes: the main axis
// pen runs down the line and crossPos is the line's horizontal origin.
func PositionOneLine(items []ShapedItem, lc LineConstraints, crossPos float64, lineIndex int, base Direction, isLast bool, c *UnifiedConstraints) ([]PositionedItem, float64) {
	if len(items) == 0 || len(lc.Segments) == 0 {
		return nil, 0
	}
	vertical := c.WritingMode.IsVertical()
	align := c.TextAlign.resolve(base)

	// A forced break ends a paragraph, so its line counts as last for
	// justification purposes.
	endsWithBreak := false
	if _, ok := items[len(items)-1].(*ShapedBreak); ok {
		endsWithBreak = true
	}

	contentEnd := lineContentEnd(items)
	used := 0.0
	for _, item := range items[:contentEnd] {
		used += itemMeasure(item, vertical)
		used += itemSpacing(item)
	}

	indent := 0.0
	if lineIndex == 0 {
		indent = c.TextIndent
	}

	available := lc.TotalWidth - indent
	if c.SegmentAlignment == SegmentAlignFirst {
		available = lc.Segments[0].Width - indent
	}

	// Hanging punctuation frees the last mark's advance from the slack
	// and shifts the start past half of a leading mark. Overflowing
	// lines get no overhang.
	startOverhang := 0.0
	if c.HangingPunctuation && used <= available {
		if adv, ok := isHangingPunctuation(items[0]); ok {
			startOverhang = adv / 2
		}
		if contentEnd > 0 {
			if adv, ok := isHangingPunctuation(items[contentEnd-1]); ok {
				available += adv / 2
			}
		}
	}

	slack := available - used

	justify := c.JustifyContent != JustifyNone && !endsWithBreak &&
		(!isLast || align == AlignJustifyAll)
	var j justification
	if justify {
		j = computeJustification(items, slack, c.JustifyContent)
		slack = 0
	} else {
		j = justification{
			gapExtra: make([]float64, len(items)),
			inserted: make([][]*ShapedCluster, len(items)),
		}
	}

	metrics := measureLineMetrics(items)
	if metrics.height() == 0 {
		metrics.ascent = c.resolvedLineHeight(16)
	}

	segIdx := 0
	seg := lc.Segments[0]
	pen := seg.StartX + indent - startOverhang + alignOffset(align, slack) + j.leadingShift
	segRemaining := seg.Width - indent

	out := make([]PositionedItem, 0, len(items))
	place := func(item ShapedItem) {
		measure := itemMeasure(item, vertical)

		// Move to the next segment when the item cannot fit and one
		// exists, mirroring the breaker's segment walk.
		if measure > segRemaining && segIdx+1 < len(lc.Segments) && !itemIsWhitespace(item) {
			segIdx++
			seg = lc.Segments[segIdx]
			pen = seg.StartX + alignOffset(align, 0)
			segRemaining = seg.Width
		}

		pos := itemCrossPosition(item, crossPos, metrics, c.VerticalAlign, vertical)
		if vertical {
			pos.Y = pen
		} else {
			pos.X = pen
		}
		out = append(out, PositionedItem{Item: item, Position: pos, LineIndex: lineIndex})

		advance := measure + itemSpacing(item)
		pen += advance
		segRemaining -= advance
	}

	for i, item := range items {
		place(item)
		for _, k := range j.inserted[i] {
			place(k)
		}
		pen += j.gapExtra[i]
		segRemaining -= j.gapExtra[i]
	}

	return out, metrics.height()
}

// itemSpacing resolves letter and word spacing added after a cluster.
func itemSpacing(item ShapedItem) float64 {
	c, ok := item.(*ShapedCluster)
	if !ok || c.isSynthetic() {
		return 0
	}
	s := c.Style.letterSpacingPx()
	if c.isWhitespace() {
		s += c.Style.wordSpacingPx()
	}
	return s
}

// itemCrossPosition computes the cross-axis coordinate of an item from
// the line metrics and the vertical-align mode.
func itemCrossPosition(item ShapedItem, crossPos float64, m lineMetrics, va VerticalAlign, vertical bool) Point {
	baseline := crossPos + m.ascent

	var cross float64
	switch v := item.(type) {
	case *ShapedCluster:
		cross = baseline
		switch va {
		case VerticalAlignSub:
			cross += v.Style.FontSize * 0.3
		case VerticalAlignSuper:
			cross -= v.Style.FontSize * 0.3
		}
	case *CombinedBlock:
		cross = baseline - v.Height
	case *ShapedObject:
		switch va {
		case VerticalAlignTop:
			cross = crossPos
		case VerticalAlignMiddle:
			cross = crossPos + (m.height()-v.Size.Height)/2
		case VerticalAlignBottom:
			cross = crossPos + m.height() - v.Size.Height
		default:
			cross = baseline - (v.Size.Height - v.BaselineOffset)
		}
	default:
		cross = baseline
	}

	if vertical {
		return Point{X: cross}
	}
	return Point{Y: cross}
}
