package textflow

// justification describes how a line's slack is distributed: extra
// advance inserted after items, kashida clusters inserted after items,
// and an optional leading shift.
type justification struct {
	// gapExtra[i] is added to the pen after placing item i.
	gapExtra []float64
	// inserted[i] are synthesized clusters placed after item i.
	inserted [][]*ShapedCluster
	// leadingShift moves the whole line's start (Distribute mode).
	leadingShift float64
}

// lineContentEnd returns the index just past the last non-whitespace,
// non-break item. Trailing whitespace never absorbs justification.
func lineContentEnd(items []ShapedItem) int {
	end := len(items)
	for end > 0 {
		switch v := items[end-1].(type) {
		case *ShapedBreak:
			end--
			continue
		case *ShapedCluster:
			if v.isWhitespace() {
				end--
				continue
			}
		}
		break
	}
	return end
}

// computeJustification distributes extra width across the line per the
// justification mode. It never mutates the items.
func computeJustification(items []ShapedItem, extra float64, mode JustifyContent) justification {
	j := justification{
		gapExtra: make([]float64, len(items)),
		inserted: make([][]*ShapedCluster, len(items)),
	}
	if extra <= 0 || len(items) == 0 {
		return j
	}

	switch mode {
	case JustifyInterWord:
		justifyInterWord(&j, items, extra)
	case JustifyInterCharacter:
		justifyInterCharacter(&j, items, extra, false)
	case JustifyDistribute:
		justifyInterCharacter(&j, items, extra, true)
	case JustifyKashida:
		if !justifyKashida(&j, items, extra) {
			// No insertion points; degrade to inter-word.
			justifyInterWord(&j, items, extra)
		}
	}
	return j
}

func justifyInterWord(j *justification, items []ShapedItem, extra float64) {
	end := lineContentEnd(items)
	var gaps []int
	for i := 0; i < end; i++ {
		if itemIsWhitespace(items[i]) {
			gaps = append(gaps, i)
		}
	}
	if len(gaps) == 0 {
		return
	}
	per := extra / float64(len(gaps))
	for _, i := range gaps {
		j.gapExtra[i] += per
	}
}

// justifyInterCharacter spreads slack across every justifiable gap.
// With edges set the line edges count as gaps too (CJK distribute).
func justifyInterCharacter(j *justification, items []ShapedItem, extra float64, edges bool) {
	end := lineContentEnd(items)
	var gaps []int
	for i := 0; i < end-1; i++ {
		if justifiableGapAfter(items[i]) {
			gaps = append(gaps, i)
		}
	}
	n := len(gaps)
	if edges {
		n += 2
	}
	if n == 0 {
		return
	}
	per := extra / float64(n)
	if edges {
		j.leadingShift = per
	}
	for _, i := range gaps {
		j.gapExtra[i] += per
	}
}

// justifiableGapAfter reports whether space may be inserted after the
// item. Combining-mark clusters must stay attached to their base.
func justifiableGapAfter(item ShapedItem) bool {
	c, ok := item.(*ShapedCluster)
	if !ok {
		return true
	}
	if c.isSynthetic() {
		return false
	}
	for _, r := range c.Text {
		if classifyCharacter(r) == ClassCombining {
			return false
		}
	}
	return true
}

// justifyKashida stretches Arabic words by inserting tatweel glyphs.
// Valid insertion points sit between two Arabic clusters where the
// following cluster is not whitespace. Returns false when the line has
// no insertion points or the font lacks a tatweel.
func justifyKashida(j *justification, items []ShapedItem, extra float64) bool {
	end := lineContentEnd(items)

	var points []int
	var template *ShapedCluster
	for i := 0; i+1 < end; i++ {
		cur, ok1 := items[i].(*ShapedCluster)
		next, ok2 := items[i+1].(*ShapedCluster)
		if !ok1 || !ok2 {
			continue
		}
		if cur.Script != ScriptArabic || next.Script != ScriptArabic {
			continue
		}
		if cur.isWhitespace() || next.isWhitespace() {
			continue
		}
		if cur.isSynthetic() || next.isSynthetic() {
			continue
		}
		points = append(points, i)
		if template == nil {
			template = cur
		}
	}
	if len(points) == 0 {
		return false
	}

	kashida, ok := synthesizeKashida(template)
	if !ok || kashida.Advance <= 0 {
		return false
	}

	count := int(extra / kashida.Advance)
	if count == 0 {
		return true
	}
	per := count / len(points)
	rem := count % len(points)
	for pi, i := range points {
		n := per
		if pi < rem {
			n++
		}
		for k := 0; k < n; k++ {
			j.inserted[i] = append(j.inserted[i], kashida)
		}
	}
	return true
}

// synthesizeKashida builds a tatweel cluster in the style and font of
// the cluster it extends.
func synthesizeKashida(after *ShapedCluster) (*ShapedCluster, bool) {
	gid, advance, ok := after.Font.KashidaGlyph(after.Style.FontSize)
	if !ok {
		return nil, false
	}
	return &ShapedCluster{
		Text:      "ـ",
		Direction: after.Direction,
		Script:    ScriptArabic,
		Style:     after.Style,
		Font:      after.Font,
		Advance:   advance,
		ID:        after.ID,
		source:    syntheticIndex(after.source.RunIndex),
		Vertical:  after.Vertical,
		Glyphs: []ShapedGlyph{{
			Kind:    GlyphKashida,
			GlyphID: gid,
			Advance: advance,
		}},
	}, true
}
