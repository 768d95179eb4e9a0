package textflow

// Hyphenator yields legal hyphenation points for a single word.
// Implementations come from the hyphenate subpackage or from tests.
type Hyphenator interface {
	// Hyphenate returns ascending byte offsets inside word at which a
	// hyphen may be inserted. Offsets at the word edges are never
	// returned.
	Hyphenate(word string) []int
}

// hyphenCandidate is one feasible split of an unbreakable run.
type hyphenCandidate struct {
	// clusterIndex is the index of the cluster containing the split.
	clusterIndex int
	// clusterOffset is the byte offset of the split inside that
	// cluster; zero means the split falls on the cluster boundary.
	clusterOffset uint32
	// prefixWidth is the advance of everything before the split.
	prefixWidth float64
}

// hyphenationCandidates maps word-level hyphenation offsets onto the
// cluster sequence of the run. Offsets that fall where no glyph starts
// are dropped.
func hyphenationCandidates(clusters []*ShapedCluster, hyph Hyphenator) []hyphenCandidate {
	word := ""
	for _, c := range clusters {
		word += c.Text
	}
	if word == "" {
		return nil
	}
	offsets := hyph.Hyphenate(word)
	if len(offsets) == 0 {
		return nil
	}

	var out []hyphenCandidate
	for _, off := range offsets {
		if off <= 0 || off >= len(word) {
			continue
		}
		pos := 0
		prefix := 0.0
		for ci, c := range clusters {
			clusterEnd := pos + len(c.Text)
			if off == pos {
				out = append(out, hyphenCandidate{clusterIndex: ci, prefixWidth: prefix})
				break
			}
			if off < clusterEnd {
				co := uint32(off - pos)
				if w, ok := clusterPrefixWidth(c, co); ok {
					out = append(out, hyphenCandidate{
						clusterIndex:  ci,
						clusterOffset: co,
						prefixWidth:   prefix + w,
					})
				}
				break
			}
			prefix += c.Advance
			pos = clusterEnd
		}
	}
	return out
}

// clusterPrefixWidth returns the advance of the cluster's glyphs before
// byte offset co, or false when no glyph starts exactly there.
func clusterPrefixWidth(c *ShapedCluster, co uint32) (float64, bool) {
	found := false
	w := 0.0
	for _, g := range c.Glyphs {
		if g.ClusterOffset == co {
			found = true
		}
		if g.ClusterOffset < co {
			w += g.Advance
		}
	}
	return w, found
}

// splitCluster divides a cluster at byte offset co into prefix and
// suffix clusters, partitioning glyphs by their cluster offsets.
func splitCluster(c *ShapedCluster, co uint32) (*ShapedCluster, *ShapedCluster, bool) {
	if co == 0 || co >= uint32(len(c.Text)) {
		return nil, nil, false
	}
	if _, ok := clusterPrefixWidth(c, co); !ok {
		return nil, nil, false
	}

	prefix := *c
	suffix := *c
	prefix.Text = c.Text[:co]
	prefix.Glyphs = nil
	prefix.Advance = 0
	suffix.Text = c.Text[co:]
	suffix.Glyphs = nil
	suffix.Advance = 0
	suffix.ID = GraphemeClusterID{
		SourceRun: c.ID.SourceRun,
		StartByte: c.ID.StartByte + co,
	}
	suffix.source = ContentIndex{
		RunIndex:  c.source.RunIndex,
		ItemIndex: c.source.ItemIndex + co,
	}

	for _, g := range c.Glyphs {
		if g.ClusterOffset < co {
			prefix.Glyphs = append(prefix.Glyphs, g)
			prefix.Advance += g.Advance
		} else {
			sg := g
			sg.ClusterOffset -= co
			suffix.Glyphs = append(suffix.Glyphs, sg)
			suffix.Advance += g.Advance
		}
	}
	if len(prefix.Glyphs) == 0 || len(suffix.Glyphs) == 0 {
		return nil, nil, false
	}
	return &prefix, &suffix, true
}

// synthesizeHyphen builds the trailing hyphen cluster for a hyphenated
// line, borrowing style and font from the cluster it follows.
func synthesizeHyphen(after *ShapedCluster) (*ShapedCluster, bool) {
	gid, advance, ok := after.Font.HyphenGlyph(after.Style.FontSize)
	if !ok {
		return nil, false
	}
	return &ShapedCluster{
		Text:      "-",
		Direction: after.Direction,
		Script:    after.Script,
		Style:     after.Style,
		Font:      after.Font,
		Advance:   advance,
		ID:        after.ID,
		source:    syntheticIndex(after.source.RunIndex),
		Vertical:  after.Vertical,
		Glyphs: []ShapedGlyph{{
			Kind:    GlyphHyphen,
			GlyphID: gid,
			Advance: advance,
		}},
	}, true
}
