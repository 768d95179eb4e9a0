package textflow

// BreakCursor walks the shaped stream across lines, columns and
// fragments. After a hyphenation split the suffix of the split cluster
// sits in the partial slot and is consumed before the regular stream.
type BreakCursor struct {
	items   []ShapedItem
	pos     int
	partial ShapedItem
}

// NewBreakCursor returns a cursor over the full shaped stream.
func NewBreakCursor(items []ShapedItem) *BreakCursor {
	return &BreakCursor{items: items}
}

// IsAtStart reports whether nothing has been consumed yet.
func (c *BreakCursor) IsAtStart() bool {
	return c.pos == 0 && c.partial == nil
}

// Exhausted reports whether the stream is fully consumed.
func (c *BreakCursor) Exhausted() bool {
	return c.partial == nil && c.pos >= len(c.items)
}

// Remaining returns the unconsumed suffix, partial remainder first.
func (c *BreakCursor) Remaining() []ShapedItem {
	rest := c.items[min(c.pos, len(c.items)):]
	if c.partial == nil {
		return rest
	}
	out := make([]ShapedItem, 0, len(rest)+1)
	out = append(out, c.partial)
	return append(out, rest...)
}

// peek returns the item at the given lookahead distance without
// consuming it.
func (c *BreakCursor) peek(n int) (ShapedItem, bool) {
	if c.partial != nil {
		if n == 0 {
			return c.partial, true
		}
		n--
	}
	if c.pos+n < len(c.items) {
		return c.items[c.pos+n], true
	}
	return nil, false
}

// consume advances past n items.
func (c *BreakCursor) consume(n int) {
	if n <= 0 {
		return
	}
	if c.partial != nil {
		c.partial = nil
		n--
	}
	c.pos += n
}

// setPartial stores the suffix of a split cluster for the next line.
func (c *BreakCursor) setPartial(item ShapedItem) {
	c.partial = item
}

// BreakOneLine consumes items from the cursor to fill one line within
// the given segments, greedily filling each segment in order. It
// returns the line's items and whether a hyphen was inserted.
//
// Resolution when an item overflows the last segment: rewind to the
// latest safe break if one exists; otherwise hyphenate the unbreakable
// run if a hyphenator is supplied; otherwise force a single item to
// guarantee progress.
func BreakOneLine(cursor *BreakCursor, lc LineConstraints, vertical bool, hyph Hyphenator) ([]ShapedItem, bool) {
	if len(lc.Segments) == 0 {
		return nil, false
	}

	var line []ShapedItem
	segIdx := 0
	remaining := lc.Segments[0].Width

	// checkpoint is the last safe committed state: line length and the
	// count of consumed items.
	checkpoint := -1
	consumed := 0

	for {
		item, ok := cursor.peek(consumed)
		if !ok {
			cursor.consume(consumed)
			return line, false
		}

		if br, isBreak := item.(*ShapedBreak); isBreak {
			line = append(line, br)
			cursor.consume(consumed + 1)
			return line, false
		}

		measure := itemMeasure(item, vertical)
		if measure <= remaining || itemIsWhitespace(item) {
			// Trailing whitespace may hang past the segment edge.
			line = append(line, item)
			remaining -= measure
			consumed++
			if breakOpportunityAfter(item) {
				checkpoint = len(line)
			}
			continue
		}

		if segIdx+1 < len(lc.Segments) {
			segIdx++
			remaining = lc.Segments[segIdx].Width
			continue
		}

		// Line is full. Resolve the overflow.
		if checkpoint >= 0 {
			cursor.consume(checkpoint)
			return line[:checkpoint], false
		}

		if hyph != nil {
			rest := cursor.wordTail(consumed + 1)
			if hLine, hConsumed, suffix, ok := hyphenateOverflow(line, item, rest, remaining, hyph); ok {
				cursor.consume(hConsumed)
				if suffix != nil {
					cursor.setPartial(suffix)
				}
				return hLine, true
			}
		}

		// Forced progress: emit the overflowing item alone. Overflow
		// handling is the positioner's concern.
		line = append(line, item)
		cursor.consume(consumed + 1)
		return line, false
	}
}

// breakOpportunityAfter reports whether the line may safely end after
// the item: word separators, soft hyphens, tabs and objects.
func breakOpportunityAfter(item ShapedItem) bool {
	switch v := item.(type) {
	case *ShapedCluster:
		return v.isWhitespace() || v.Text == "­"
	case *ShapedTab:
		return true
	case *ShapedObject:
		return true
	case *CombinedBlock:
		return true
	default:
		return false
	}
}

// wordTail returns the clusters that continue the current word past the
// given lookahead position, so hyphenation dictionaries see whole words.
func (c *BreakCursor) wordTail(from int) []*ShapedCluster {
	var tail []*ShapedCluster
	for n := from; ; n++ {
		item, ok := c.peek(n)
		if !ok {
			break
		}
		cl, isCluster := item.(*ShapedCluster)
		if !isCluster || cl.isWhitespace() || cl.isSynthetic() {
			break
		}
		tail = append(tail, cl)
	}
	return tail
}

// hyphenateOverflow tries to split the unbreakable run that ends at the
// overflowing item. rest continues the word past the overflow; it takes
// part in pattern matching but never in the split itself. On success it
// returns the finished line including a synthesized hyphen, how many
// cursor items the line consumed, and the suffix cluster of a
// mid-cluster split to park as the cursor's partial remainder (nil for
// boundary splits).
func hyphenateOverflow(line []ShapedItem, overflow ShapedItem, rest []*ShapedCluster, remaining float64, hyph Hyphenator) ([]ShapedItem, int, *ShapedCluster, bool) {
	overflowCluster, ok := overflow.(*ShapedCluster)
	if !ok || overflowCluster.isSynthetic() {
		return nil, 0, nil, false
	}

	// The unbreakable run is the maximal trailing cluster sequence of
	// the line plus the overflowing cluster.
	runStart := len(line)
	for runStart > 0 {
		c, isCluster := line[runStart-1].(*ShapedCluster)
		if !isCluster || c.isWhitespace() {
			break
		}
		runStart--
	}
	clusters := make([]*ShapedCluster, 0, len(line)-runStart+1+len(rest))
	for _, it := range line[runStart:] {
		clusters = append(clusters, it.(*ShapedCluster))
	}
	clusters = append(clusters, overflowCluster)
	overflowIdx := len(clusters) - 1
	clusters = append(clusters, rest...)

	hyphen, ok := synthesizeHyphen(overflowCluster)
	if !ok {
		return nil, 0, nil, false
	}

	// Budget: the space left in the segment plus the run up to the
	// overflow, since the run's prefix re-occupies its own advance.
	runWidth := 0.0
	for _, c := range clusters[:overflowIdx] {
		runWidth += c.Advance
	}
	budget := remaining + runWidth

	candidates := hyphenationCandidates(clusters, hyph)
	best := -1
	for i, cand := range candidates {
		if cand.clusterIndex > overflowIdx {
			continue
		}
		if cand.prefixWidth+hyphen.Advance > budget {
			continue
		}
		if best < 0 || cand.prefixWidth > candidates[best].prefixWidth {
			best = i
		}
	}
	if best < 0 {
		return nil, 0, nil, false
	}
	cand := candidates[best]

	out := append([]ShapedItem{}, line[:runStart]...)
	for _, c := range clusters[:cand.clusterIndex] {
		out = append(out, c)
	}

	if cand.clusterOffset > 0 {
		// Mid-cluster split: the prefix joins the line, the suffix
		// becomes the partial remainder.
		prefix, suffix, ok := splitCluster(clusters[cand.clusterIndex], cand.clusterOffset)
		if !ok {
			return nil, 0, nil, false
		}
		out = append(out, prefix, hyphen)
		consumed := runStart + cand.clusterIndex + 1
		return out, consumed, suffix, true
	}

	// Boundary split: the target cluster and everything after it stay
	// in the stream.
	out = append(out, hyphen)
	return out, runStart + cand.clusterIndex, nil, true
}
