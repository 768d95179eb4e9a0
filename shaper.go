package textflow

// languageForScript picks a shaper locale from the detected script. The
// choice only steers language-specific OpenType features; it is not a
// content language guess.
func languageForScript(script Script) string {
	switch script {
	case ScriptArabic:
		return "ar"
	case ScriptHebrew:
		return "he"
	case ScriptHan:
		return "zh"
	case ScriptHiragana, ScriptKatakana:
		return "ja"
	case ScriptHangul:
		return "ko"
	case ScriptCyrillic:
		return "ru"
	case ScriptGreek:
		return "el"
	case ScriptDevanagari:
		return "hi"
	case ScriptThai:
		return "th"
	default:
		return "en"
	}
}

// spaceAdvanceApprox is the fallback space width as a fraction of the
// font size, used when the font cannot report one.
const spaceAdvanceApprox = 0.33

// ShapeVisualItems runs the external shaper over every visual run and
// groups the output into grapheme-addressable clusters. Fonts resolve
// through the manager; a missing font aborts the whole stage.
func ShapeVisualItems(visual []VisualItem, logical []LogicalItem, fonts *FontManager) ([]ShapedItem, error) {
	shaped := make([]ShapedItem, 0, len(visual))
	for _, vi := range visual {
		item := logical[vi.LogicalIndex]
		switch li := item.(type) {
		case LogicalText:
			clusters, err := shapeTextRun(vi, li, fonts)
			if err != nil {
				return nil, err
			}
			shaped = append(shaped, clusters...)
		case LogicalCombined:
			block, err := shapeCombined(li, fonts)
			if err != nil {
				return nil, err
			}
			shaped = append(shaped, block)
		case LogicalRuby:
			shaped = append(shaped, rubyPlaceholder(li))
		case LogicalObject:
			shaped = append(shaped, &ShapedObject{
				Size:           li.Size,
				BaselineOffset: li.BaselineOffset,
				source:         li.Source(),
			})
		case LogicalTab:
			tab, err := shapeTab(li, fonts)
			if err != nil {
				return nil, err
			}
			shaped = append(shaped, tab)
		case LogicalBreak:
			shaped = append(shaped, &ShapedBreak{Kind: li.Kind, source: li.Source()})
		}
	}
	return shaped, nil
}

// shapeTextRun shapes one uniform visual run and splits the glyph
// stream into clusters by the shaper's cluster ids.
func shapeTextRun(vi VisualItem, li LogicalText, fonts *FontManager) ([]ShapedItem, error) {
	if vi.Text == "" {
		return nil, nil
	}
	style := li.Style
	font, err := fonts.Load(style.FontRef)
	if err != nil {
		return nil, err
	}

	dir := vi.Direction()
	lang := languageForScript(vi.Script)
	glyphs, err := font.ShapeText(vi.Text, vi.Script, lang, dir, style.FontSize)
	if err != nil {
		return nil, &ShapingError{Script: vi.Script, Text: vi.Text, Err: err}
	}
	if len(glyphs) == 0 {
		return nil, nil
	}

	runBase := li.Source().ItemIndex + vi.ByteOffset

	// Glyphs arrive in visual order; consecutive glyphs sharing a
	// cluster id form one cluster. Cluster text extends to the next
	// distinct cluster offset in logical order.
	ends := clusterEnds(glyphs, len(vi.Text))

	var out []ShapedItem
	for i := 0; i < len(glyphs); {
		j := i
		for j < len(glyphs) && glyphs[j].Cluster == glyphs[i].Cluster {
			j++
		}
		c0 := glyphs[i].Cluster
		c1 := ends[c0]

		cluster := &ShapedCluster{
			Text:      vi.Text[c0:c1],
			Direction: dir,
			Script:    vi.Script,
			Style:     style,
			Font:      font,
			ID: GraphemeClusterID{
				SourceRun: li.Source().RunIndex,
				StartByte: runBase + c0,
			},
			source: ContentIndex{
				RunIndex:  li.Source().RunIndex,
				ItemIndex: runBase + c0,
			},
		}
		for _, g := range glyphs[i:j] {
			kind := GlyphCharacter
			if g.GlyphID == 0 {
				kind = GlyphNotDef
			}
			cluster.Glyphs = append(cluster.Glyphs, ShapedGlyph{
				Kind:          kind,
				GlyphID:       g.GlyphID,
				Advance:       g.Advance,
				Offset:        g.Offset,
				ClusterOffset: g.Cluster - c0,
			})
			cluster.Advance += g.Advance
		}
		out = append(out, cluster)
		i = j
	}
	return out, nil
}

// clusterEnds maps each cluster start offset to the byte offset where
// the cluster's text ends.
func clusterEnds(glyphs []Glyph, textLen int) map[uint32]uint32 {
	starts := make([]uint32, 0, len(glyphs))
	seen := make(map[uint32]bool, len(glyphs))
	for _, g := range glyphs {
		if !seen[g.Cluster] {
			seen[g.Cluster] = true
			starts = append(starts, g.Cluster)
		}
	}
	// Cluster ids ascend for LTR output and descend for RTL; sort into
	// logical order either way.
	for a := 1; a < len(starts); a++ {
		for b := a; b > 0 && starts[b-1] > starts[b]; b-- {
			starts[b-1], starts[b] = starts[b], starts[b-1]
		}
	}
	ends := make(map[uint32]uint32, len(starts))
	for i, s := range starts {
		if i+1 < len(starts) {
			ends[s] = starts[i+1]
		} else {
			ends[s] = uint32(textLen)
		}
	}
	return ends
}

// shapeCombined shapes a tate-chu-yoko run horizontally LTR regardless
// of the surrounding writing mode.
func shapeCombined(li LogicalCombined, fonts *FontManager) (*CombinedBlock, error) {
	style := li.Style
	font, err := fonts.Load(style.FontRef)
	if err != nil {
		return nil, err
	}
	glyphs, err := font.ShapeText(li.Text, ScriptLatin, "en", DirectionLTR, style.FontSize)
	if err != nil {
		return nil, &ShapingError{Script: ScriptLatin, Text: li.Text, Err: err}
	}

	block := &CombinedBlock{
		Text:   li.Text,
		Style:  style,
		Font:   font,
		source: li.Source(),
	}
	for _, g := range glyphs {
		kind := GlyphCharacter
		if g.GlyphID == 0 {
			kind = GlyphNotDef
		}
		block.Glyphs = append(block.Glyphs, ShapedGlyph{
			Kind:          kind,
			GlyphID:       g.GlyphID,
			Advance:       g.Advance,
			Offset:        g.Offset,
			ClusterOffset: g.Cluster,
		})
		block.Width += g.Advance
	}
	m := font.Metrics()
	block.Height = m.ScaledAscent(style.FontSize) + m.ScaledDescent(style.FontSize)
	return block, nil
}

// Ruby placeholder sizing until the annotation sub-pass lands. The box
// reserves room for the base run plus a half line of annotation.
const (
	rubyCharWidthFactor  = 0.6
	rubyLineHeightFactor = 1.5
)

func rubyPlaceholder(li LogicalRuby) *ShapedObject {
	chars := 0
	for _, run := range li.Base {
		for range run.Text {
			chars++
		}
	}
	fontSize := 16.0
	if li.Style != nil {
		fontSize = li.Style.FontSize
	}
	lineHeight := fontSize * 1.2
	if li.Style != nil && li.Style.LineHeight != nil {
		lineHeight = *li.Style.LineHeight
	}
	return &ShapedObject{
		Size: Size{
			Width:  float64(chars) * fontSize * rubyCharWidthFactor,
			Height: lineHeight * rubyLineHeightFactor,
		},
		source: li.Source(),
	}
}

func shapeTab(li LogicalTab, fonts *FontManager) (*ShapedTab, error) {
	style := li.Style
	font, err := fonts.Load(style.FontRef)
	if err != nil {
		return nil, err
	}
	space, ok := font.SpaceAdvance(style.FontSize)
	if !ok || space <= 0 {
		space = spaceAdvanceApprox * style.FontSize
	}
	return &ShapedTab{
		Width:  style.tabSize() * space,
		Style:  style,
		source: li.Source(),
	}, nil
}
