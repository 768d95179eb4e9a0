package textflow

import "sort"

// LogicalItem is one atomic unit of content in logical (source) order,
// produced by AnalyzeContent. Implementations are LogicalText,
// LogicalCombined, LogicalRuby, LogicalObject, LogicalTab and
// LogicalBreak.
type LogicalItem interface {
	isLogicalItem()
	// Source returns the position of the item's first byte in the
	// original content.
	Source() ContentIndex
}

// LogicalText is a maximal span of plain text under one resolved style.
type LogicalText struct {
	Text   string
	Style  *StyleProperties
	source ContentIndex
}

func (LogicalText) isLogicalItem()         {}
func (t LogicalText) Source() ContentIndex { return t.source }

// LogicalCombined is a short horizontal run inside a vertical line
// (tate-chu-yoko), shaped as one unbreakable block.
type LogicalCombined struct {
	Text   string
	Style  *StyleProperties
	source ContentIndex
}

func (LogicalCombined) isLogicalItem()         {}
func (c LogicalCombined) Source() ContentIndex { return c.source }

// LogicalRuby is annotated text carried through to shaping, which
// currently lays it out as a placeholder block.
type LogicalRuby struct {
	Base       []TextRun
	Annotation []TextRun
	Style      *StyleProperties
	source     ContentIndex
}

func (LogicalRuby) isLogicalItem()         {}
func (r LogicalRuby) Source() ContentIndex { return r.source }

// LogicalObject is a replaced inline element reduced to its box.
type LogicalObject struct {
	Size           Size
	BaselineOffset float64
	source         ContentIndex
}

func (LogicalObject) isLogicalItem()         {}
func (o LogicalObject) Source() ContentIndex { return o.source }

// LogicalTab is a single tab character.
type LogicalTab struct {
	Style  *StyleProperties
	source ContentIndex
}

func (LogicalTab) isLogicalItem()         {}
func (t LogicalTab) Source() ContentIndex { return t.source }

// LogicalBreak is a forced break.
type LogicalBreak struct {
	Kind   BreakKind
	source ContentIndex
}

func (LogicalBreak) isLogicalItem()         {}
func (b LogicalBreak) Source() ContentIndex { return b.source }

// styleMergeKey memoizes override merging so items sharing a base style
// and override also share the merged StyleProperties value.
type styleMergeKey struct {
	base     *StyleProperties
	override uint64
}

func hashPartialStyle(p *PartialStyle) uint64 {
	h := newContentHasher()
	if p.FontRef != nil {
		h.byte(1)
		h.string(p.FontRef.Family)
		h.uint32(uint32(p.FontRef.Weight))
		h.bool(p.FontRef.Italic)
	} else {
		h.byte(0)
	}
	h.floatPtr(p.FontSize)
	if p.Color != nil {
		h.byte(1)
		h.byte(p.Color.R)
		h.byte(p.Color.G)
		h.byte(p.Color.B)
		h.byte(p.Color.A)
	} else {
		h.byte(0)
	}
	h.spacing(p.LetterSpacing)
	h.spacing(p.WordSpacing)
	h.floatPtr(p.LineHeight)
	h.floatPtr(p.TabSize)
	if p.TextCombine != nil {
		h.byte(1)
		h.byte(byte(p.TextCombine.Mode))
		h.int(p.TextCombine.Count)
	} else {
		h.byte(0)
	}
	return h.sum()
}

// analyzer walks the content runs and emits logical items. It is total;
// malformed overrides are ignored rather than rejected.
type analyzer struct {
	overrides map[uint32][]StyleOverride
	merged    map[styleMergeKey]*StyleProperties
}

// AnalyzeContent splits caller content into atomic logical items. Text
// splits at tab characters, forced breaks, combine-digit runs and at
// every byte offset where a style override takes effect.
func AnalyzeContent(content []InlineContent, overrides []StyleOverride) []LogicalItem {
	a := analyzer{
		overrides: make(map[uint32][]StyleOverride),
		merged:    make(map[styleMergeKey]*StyleProperties),
	}
	for _, ov := range overrides {
		a.overrides[ov.Target.RunIndex] = append(a.overrides[ov.Target.RunIndex], ov)
	}
	for _, list := range a.overrides {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Target.ItemIndex < list[j].Target.ItemIndex
		})
	}

	var items []LogicalItem
	for runIdx, run := range content {
		ri := uint32(runIdx)
		switch v := run.(type) {
		case TextRun:
			items = a.analyzeTextRun(items, ri, v)
		case InlineImage:
			items = append(items, LogicalObject{
				Size:           v.size(),
				BaselineOffset: v.BaselineOffset,
				source:         ContentIndex{RunIndex: ri},
			})
		case InlineShape:
			items = append(items, LogicalObject{
				Size:           v.Size,
				BaselineOffset: v.BaselineOffset,
				source:         ContentIndex{RunIndex: ri},
			})
		case InlineSpace:
			items = append(items, LogicalObject{
				Size:   Size{Width: v.Width},
				source: ContentIndex{RunIndex: ri},
			})
		case InlineRuby:
			items = append(items, LogicalRuby{
				Base:       v.Base,
				Annotation: v.Annotation,
				Style:      v.Style,
				source:     ContentIndex{RunIndex: ri},
			})
		case InlineBreak:
			items = append(items, LogicalBreak{
				Kind:   v.Kind,
				source: ContentIndex{RunIndex: ri},
			})
		}
	}
	return items
}

// resolveStyle merges the override starting exactly at offset, if any,
// into the run's base style.
func (a *analyzer) resolveStyle(base *StyleProperties, run uint32, offset uint32) *StyleProperties {
	for i := range a.overrides[run] {
		ov := &a.overrides[run][i]
		if ov.Target.ItemIndex != offset {
			continue
		}
		if ov.Style.isZero() {
			return base
		}
		key := styleMergeKey{base: base, override: hashPartialStyle(&ov.Style)}
		if m, ok := a.merged[key]; ok {
			return m
		}
		m := ov.Style.mergeInto(base)
		a.merged[key] = m
		return m
	}
	return base
}

// nextBoundary returns the next offset after from at which a style
// override begins, or end if none.
func (a *analyzer) nextBoundary(run uint32, from uint32, end uint32) uint32 {
	next := end
	for _, ov := range a.overrides[run] {
		if ov.Target.ItemIndex > from && ov.Target.ItemIndex < next {
			next = ov.Target.ItemIndex
		}
	}
	return next
}

func (a *analyzer) analyzeTextRun(items []LogicalItem, run uint32, tr TextRun) []LogicalItem {
	if tr.Style == nil {
		tr.Style = &defaultStyle
	}
	text := tr.Text
	end := uint32(len(text))
	pos := uint32(0)

	for pos < end {
		style := a.resolveStyle(tr.Style, run, pos)
		src := ContentIndex{RunIndex: run, ItemIndex: pos}

		switch text[pos] {
		case '\t':
			items = append(items, LogicalTab{Style: style, source: src})
			pos++
			continue
		case '\n':
			items = append(items, LogicalBreak{Kind: BreakLine, source: src})
			pos++
			continue
		}

		// Digit combining for vertical lines consumes a bounded digit
		// run as one block.
		if style.TextCombine.Mode == TextCombineDigits {
			n := combinedDigitRun(text[pos:], style.TextCombine.Count)
			if n > 0 {
				items = append(items, LogicalCombined{
					Text:   text[pos : pos+uint32(n)],
					Style:  style,
					source: src,
				})
				pos += uint32(n)
				continue
			}
		}

		// Plain text extends to the next tab, newline, override
		// boundary or the run end.
		chunkEnd := a.nextBoundary(run, pos, end)
		for i := pos; i < chunkEnd; i++ {
			if text[i] == '\t' || text[i] == '\n' {
				chunkEnd = i
				break
			}
			if style.TextCombine.Mode == TextCombineDigits && isASCIIDigit(text[i]) && i > pos {
				chunkEnd = i
				break
			}
		}
		if chunkEnd == pos {
			// First byte is a digit under combining but the run length
			// was zero; emit it as plain text to guarantee progress.
			chunkEnd = pos + 1
		}
		items = append(items, LogicalText{
			Text:   text[pos:chunkEnd],
			Style:  style,
			source: src,
		})
		pos = chunkEnd
	}
	return items
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// combinedDigitRun returns how many leading ASCII digits to combine,
// capped at max (a non-positive max means no combining).
func combinedDigitRun(s string, max int) int {
	if max <= 0 {
		return 0
	}
	n := 0
	for n < len(s) && n < max && isASCIIDigit(s[n]) {
		n++
	}
	return n
}
