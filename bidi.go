package textflow

import "golang.org/x/text/unicode/bidi"

// objectReplacement stands in for non-text items in the paragraph
// string handed to the bidi algorithm.
const objectReplacement = '￼'

// VisualItem is one run of the paragraph in visual order: a slice of a
// single logical item with uniform bidi level and detected script.
type VisualItem struct {
	// LogicalIndex points into the logical item slice.
	LogicalIndex int
	// BidiLevel is the resolved embedding level; even levels run LTR,
	// odd levels RTL.
	BidiLevel uint8
	// Script is the dominant script of Text.
	Script Script
	// Text is the covered slice of the logical item's text, in logical
	// order. Empty for non-text items.
	Text string
	// ByteOffset is the offset of Text within the logical item's text.
	ByteOffset uint32
}

// Direction returns the run direction implied by the bidi level.
func (v VisualItem) Direction() Direction {
	if v.BidiLevel%2 == 1 {
		return DirectionRTL
	}
	return DirectionLTR
}

// DetectBaseDirection returns the paragraph direction of the first
// strong character across all text items, defaulting to LTR.
func DetectBaseDirection(items []LogicalItem) Direction {
	for _, item := range items {
		text, ok := itemText(item)
		if !ok {
			continue
		}
		for len(text) > 0 {
			p, sz := bidi.LookupString(text)
			switch p.Class() {
			case bidi.L:
				return DirectionLTR
			case bidi.R, bidi.AL:
				return DirectionRTL
			}
			if sz == 0 {
				sz = 1
			}
			text = text[sz:]
		}
	}
	return DirectionLTR
}

func itemText(item LogicalItem) (string, bool) {
	switch v := item.(type) {
	case LogicalText:
		return v.Text, true
	case LogicalCombined:
		return v.Text, true
	default:
		return "", false
	}
}

// paragraphSpan maps a byte range of the paragraph string back to the
// logical item it came from.
type paragraphSpan struct {
	logicalIndex int
	start, end   int // paragraph byte range, half open
	itemOffset   uint32
	isText       bool
}

// ReorderLogicalItems applies the Unicode Bidirectional Algorithm and
// emits visual items in visual order. Bidi runs split wherever the
// underlying logical item changes, so style boundaries stay run
// boundaries. Combined blocks and objects occupy one replacement
// character each and pass through whole.
func ReorderLogicalItems(items []LogicalItem, base Direction) []VisualItem {
	if len(items) == 0 {
		return nil
	}

	var par []byte
	spans := make([]paragraphSpan, 0, len(items))
	for i, item := range items {
		start := len(par)
		if text, ok := itemText(item); ok {
			if _, isText := item.(LogicalText); isText {
				par = append(par, text...)
				spans = append(spans, paragraphSpan{
					logicalIndex: i, start: start, end: len(par), isText: true,
				})
				continue
			}
		}
		par = append(par, string(objectReplacement)...)
		spans = append(spans, paragraphSpan{
			logicalIndex: i, start: start, end: len(par),
		})
	}

	text := string(par)
	defaultDir := bidi.LeftToRight
	if base == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	_, _ = p.SetString(text, bidi.DefaultDirection(defaultDir))
	ordering, err := p.Order()
	if err != nil {
		Logger().Warn("bidi ordering failed, using logical order", "error", err)
		return fallbackVisualItems(items, spans, text, base)
	}

	byteOf := runeByteOffsets(text)

	var visual []VisualItem
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos() // rune indices, inclusive
		runStart := byteOf[startRune]
		runEnd := byteOf[endRune+1]
		level := uint8(0)
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		visual = appendRunItems(visual, spans, text, runStart, runEnd, level)
	}
	return visual
}

// appendRunItems splits one bidi run at logical item boundaries. RTL
// runs emit their pieces in reverse logical order so the overall
// sequence stays visual.
func appendRunItems(visual []VisualItem, spans []paragraphSpan, text string, runStart, runEnd int, level uint8) []VisualItem {
	var pieces []VisualItem
	for _, sp := range spans {
		ovStart := max(sp.start, runStart)
		ovEnd := min(sp.end, runEnd)
		if ovStart >= ovEnd {
			continue
		}
		if !sp.isText {
			pieces = append(pieces, VisualItem{
				LogicalIndex: sp.logicalIndex,
				BidiLevel:    level,
			})
			continue
		}
		slice := text[ovStart:ovEnd]
		for _, seg := range splitByScript(slice) {
			pieces = append(pieces, VisualItem{
				LogicalIndex: sp.logicalIndex,
				BidiLevel:    level,
				Text:         slice[seg.start:seg.end],
				ByteOffset:   sp.itemOffset + uint32(ovStart-sp.start+seg.start),
				Script:       seg.script,
			})
		}
	}
	if level%2 == 1 {
		for l, r := 0, len(pieces)-1; l < r; l, r = l+1, r-1 {
			pieces[l], pieces[r] = pieces[r], pieces[l]
		}
	}
	return append(visual, pieces...)
}

// scriptSegment is one script-uniform byte range of a run.
type scriptSegment struct {
	start, end int
	script     Script
}

// splitByScript divides text into script-uniform segments. Common and
// inherited characters attach to the preceding script; a leading
// neutral stretch attaches to the first real script that follows.
func splitByScript(text string) []scriptSegment {
	var segs []scriptSegment
	cur := ScriptCommon
	start := 0
	for i, r := range text {
		s := DetectScript(r)
		if s == ScriptCommon || s == ScriptInherited || s == cur {
			continue
		}
		if cur == ScriptCommon {
			// Leading neutrals join the first concrete script.
			cur = s
			continue
		}
		segs = append(segs, scriptSegment{start: start, end: i, script: cur})
		start = i
		cur = s
	}
	if start < len(text) {
		segs = append(segs, scriptSegment{start: start, end: len(text), script: cur})
	}
	return segs
}

// fallbackVisualItems emits items in logical order at the base level.
func fallbackVisualItems(items []LogicalItem, spans []paragraphSpan, text string, base Direction) []VisualItem {
	level := uint8(0)
	if base == DirectionRTL {
		level = 1
	}
	visual := make([]VisualItem, 0, len(spans))
	for _, sp := range spans {
		item := VisualItem{LogicalIndex: sp.logicalIndex, BidiLevel: level}
		if sp.isText {
			slice := text[sp.start:sp.end]
			item.Text = slice
			item.Script = DominantScript(slice)
		}
		visual = append(visual, item)
	}
	return visual
}

// runeByteOffsets returns the byte offset of every rune plus a final
// entry at len(text).
func runeByteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
