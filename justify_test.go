package textflow

import "testing"

func TestLineContentEnd(t *testing.T) {
	fonts, _ := testFonts()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"no trailing space", "abc", 3},
		{"trailing space", "ab ", 2},
		{"trailing run of spaces", "ab   ", 2},
		{"trailing break", "ab\n", 2},
		{"all spaces", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := mustShape(tt.text, fonts)
			if got := lineContentEnd(items); got != tt.want {
				t.Errorf("lineContentEnd(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestJustifyInterWord(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("ab cd ef", fonts)
	j := computeJustification(items, 20, JustifyInterWord)

	for i, extra := range j.gapExtra {
		want := 0.0
		if i == 2 || i == 5 {
			want = 10
		}
		if !closeTo(extra, want) {
			t.Errorf("gapExtra[%d] = %v, want %v", i, extra, want)
		}
	}
	if j.leadingShift != 0 {
		t.Errorf("leadingShift = %v, want 0", j.leadingShift)
	}
}

func TestJustifyInterWordSkipsTrailingSpace(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("ab cd ", fonts)
	j := computeJustification(items, 12, JustifyInterWord)

	if !closeTo(j.gapExtra[2], 12) {
		t.Errorf("gapExtra[2] = %v, want 12", j.gapExtra[2])
	}
	if j.gapExtra[5] != 0 {
		t.Errorf("trailing space absorbed %v of the slack", j.gapExtra[5])
	}
}

func TestJustifyInterWordNoGaps(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("abc", fonts)
	j := computeJustification(items, 20, JustifyInterWord)

	for i, extra := range j.gapExtra {
		if extra != 0 {
			t.Errorf("gapExtra[%d] = %v, want 0", i, extra)
		}
	}
}

func TestJustifyInterCharacter(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("abcd", fonts)
	j := computeJustification(items, 30, JustifyInterCharacter)

	// Three gaps between four clusters, none after the last.
	for i := 0; i < 3; i++ {
		if !closeTo(j.gapExtra[i], 10) {
			t.Errorf("gapExtra[%d] = %v, want 10", i, j.gapExtra[i])
		}
	}
	if j.gapExtra[3] != 0 {
		t.Errorf("gapExtra[3] = %v, want 0", j.gapExtra[3])
	}
	if j.leadingShift != 0 {
		t.Errorf("leadingShift = %v, want 0", j.leadingShift)
	}
}

func TestJustifyDistribute(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("abcd", fonts)
	j := computeJustification(items, 30, JustifyDistribute)

	// Three inner gaps plus both line edges share the slack.
	if !closeTo(j.leadingShift, 6) {
		t.Errorf("leadingShift = %v, want 6", j.leadingShift)
	}
	for i := 0; i < 3; i++ {
		if !closeTo(j.gapExtra[i], 6) {
			t.Errorf("gapExtra[%d] = %v, want 6", i, j.gapExtra[i])
		}
	}
}

func TestJustifiableGapAfter(t *testing.T) {
	base := &ShapedCluster{Text: "a"}
	combining := &ShapedCluster{Text: "́"}
	hyphen := &ShapedCluster{
		Text:   "-",
		Glyphs: []ShapedGlyph{{Kind: GlyphHyphen}},
	}

	if !justifiableGapAfter(base) {
		t.Error("plain cluster should accept a gap")
	}
	if justifiableGapAfter(combining) {
		t.Error("combining mark must stay attached to its base")
	}
	if justifiableGapAfter(hyphen) {
		t.Error("synthetic clusters never absorb justification")
	}
	if !justifiableGapAfter(&ShapedTab{}) {
		t.Error("non-cluster items accept gaps")
	}
}

func TestJustifyKashida(t *testing.T) {
	fonts, _ := testFonts()

	// Three Arabic clusters give two insertion points.
	items := mustShape("ابج", fonts)
	j := computeJustification(items, 23, JustifyKashida)

	// Tatweel advance is 5, so 23px fits four insertions, two per point.
	total := 0
	for i, ins := range j.inserted {
		if i > 1 && len(ins) > 0 {
			t.Errorf("inserted[%d] has %d clusters, want 0", i, len(ins))
		}
		total += len(ins)
	}
	if total != 4 {
		t.Fatalf("inserted %d kashidas, want 4", total)
	}
	if len(j.inserted[0]) != 2 || len(j.inserted[1]) != 2 {
		t.Errorf("distribution = [%d %d], want [2 2]",
			len(j.inserted[0]), len(j.inserted[1]))
	}

	k := j.inserted[0][0]
	if k.Text != "ـ" || k.Script != ScriptArabic {
		t.Errorf("kashida cluster = %q %v", k.Text, k.Script)
	}
	if !closeTo(k.Advance, 5) {
		t.Errorf("kashida advance = %v, want 5", k.Advance)
	}
	if len(k.Glyphs) != 1 || k.Glyphs[0].Kind != GlyphKashida {
		t.Errorf("kashida glyphs = %+v", k.Glyphs)
	}
	if !k.source.IsSynthetic() {
		t.Error("kashida must carry a synthetic source index")
	}
}

func TestJustifyKashidaRemainder(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("ابج", fonts)
	j := computeJustification(items, 27, JustifyKashida)

	// Five insertions over two points: the leading point takes the odd one.
	if len(j.inserted[0]) != 3 || len(j.inserted[1]) != 2 {
		t.Errorf("distribution = [%d %d], want [3 2]",
			len(j.inserted[0]), len(j.inserted[1]))
	}
}

func TestJustifyKashidaTooLittleSlack(t *testing.T) {
	fonts, _ := testFonts()

	// Slack below one tatweel advance inserts nothing but does not
	// degrade to inter-word either.
	items := mustShape("اب جد", fonts)
	j := computeJustification(items, 3, JustifyKashida)

	for i, ins := range j.inserted {
		if len(ins) > 0 {
			t.Errorf("inserted[%d] has %d clusters, want 0", i, len(ins))
		}
	}
	for i, extra := range j.gapExtra {
		if extra != 0 {
			t.Errorf("gapExtra[%d] = %v, want 0", i, extra)
		}
	}
}

func TestJustifyKashidaFallsBackWithoutPoints(t *testing.T) {
	fonts, _ := testFonts()

	// Latin text has no kashida points; slack goes to the word gap.
	items := mustShape("ab cd", fonts)
	j := computeJustification(items, 14, JustifyKashida)

	if !closeTo(j.gapExtra[2], 14) {
		t.Errorf("gapExtra[2] = %v, want 14", j.gapExtra[2])
	}
}

func TestJustifyKashidaFallsBackWithoutGlyph(t *testing.T) {
	fonts, f := testFonts()
	f.noKashida = true

	// The base direction is RTL, so the space sits at visual index 2
	// with two clusters on either side.
	items := mustShape("اب جد", fonts)
	j := computeJustification(items, 14, JustifyKashida)

	total := 0
	for _, ins := range j.inserted {
		total += len(ins)
	}
	if total != 0 {
		t.Fatalf("inserted %d kashidas without a tatweel glyph", total)
	}
	if !closeTo(j.gapExtra[2], 14) {
		t.Errorf("gapExtra[2] = %v, want 14", j.gapExtra[2])
	}
}

func TestJustifyNoSlack(t *testing.T) {
	fonts, _ := testFonts()

	items := mustShape("ab cd", fonts)
	for _, extra := range []float64{0, -5} {
		j := computeJustification(items, extra, JustifyInterWord)
		for i, e := range j.gapExtra {
			if e != 0 {
				t.Errorf("extra %v: gapExtra[%d] = %v, want 0", extra, i, e)
			}
		}
	}
}
