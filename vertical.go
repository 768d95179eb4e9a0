package textflow

// uprightInVertical reports whether a script keeps its glyphs upright
// under TextOrientationMixed.
func uprightInVertical(script Script) bool {
	switch script {
	case ScriptHan, ScriptHiragana, ScriptKatakana, ScriptHangul:
		return true
	default:
		return false
	}
}

// ApplyTextOrientation rewrites the shaped stream for the writing mode.
// Horizontal modes return the input untouched; vertical modes produce a
// copy whose cluster advances run along the vertical axis. Inputs stay
// valid for reuse under other writing modes.
func ApplyTextOrientation(items []ShapedItem, mode WritingMode, orientation TextOrientation) []ShapedItem {
	if !mode.IsVertical() {
		return items
	}

	sideways := mode == WritingModeSidewaysRL || mode == WritingModeSidewaysLR

	out := make([]ShapedItem, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case *ShapedCluster:
			out[i] = verticalCluster(v, orientation, sideways)
		case *ShapedObject:
			// Replaced elements rotate with the line.
			o := *v
			o.Size = Size{Width: v.Size.Height, Height: v.Size.Width}
			out[i] = &o
		default:
			out[i] = item
		}
	}
	return out
}

// verticalCluster returns a copy of the cluster using vertical metrics.
// Glyphs without vertical tables fall back to the line height for
// advance, centered horizontally.
func verticalCluster(c *ShapedCluster, orientation TextOrientation, sideways bool) *ShapedCluster {
	vc := *c
	vc.Glyphs = make([]ShapedGlyph, len(c.Glyphs))
	vc.Advance = 0
	vc.Vertical = true

	rotateAll := sideways || orientation == TextOrientationSideways
	for i, g := range c.Glyphs {
		vg := g
		rotated := rotateAll ||
			(orientation == TextOrientationMixed && !uprightInVertical(c.Script))
		if rotated {
			// A rotated glyph advances by its horizontal advance.
			vg.VerticalAdvance = g.Advance
			vg.VerticalBearing = Point{}
			vg.Rotated = true
		} else if vm, ok := c.Font.VerticalMetrics(g.GlyphID, c.Style.FontSize); ok {
			vg.VerticalAdvance = vm.Advance
			vg.VerticalBearing = Point{X: vm.BearingX, Y: vm.BearingY}
		} else {
			vg.VerticalAdvance = fallbackLineHeight(c.Style)
			vg.VerticalBearing = Point{X: -g.Advance / 2}
		}
		vc.Advance += vg.VerticalAdvance
		vc.Glyphs[i] = vg
	}
	return &vc
}

// fallbackLineHeight is the vertical advance used when a font has no
// vertical tables: the style's line height, else 1.2 times the size.
func fallbackLineHeight(style *StyleProperties) float64 {
	if style.LineHeight != nil {
		return *style.LineHeight
	}
	return style.FontSize * 1.2
}
