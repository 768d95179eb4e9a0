package textflow

import "testing"

func singleSegment(width float64) LineConstraints {
	return LineConstraints{
		Segments:   []LineSegment{{StartX: 0, Width: width}},
		TotalWidth: width,
	}
}

// lineText flattens a line's cluster texts for assertions.
func lineText(items []ShapedItem) string {
	s := ""
	for _, item := range items {
		if c, ok := item.(*ShapedCluster); ok {
			s += c.Text
		}
	}
	return s
}

func TestBreakOneLineGreedy(t *testing.T) {
	fonts, _ := testFonts()
	// 15 clusters at 10px each; 80px fits "hello wo" but the last safe
	// break is after the space.
	cursor := NewBreakCursor(mustShape("hello world foo", fonts))

	line, hyphenated := BreakOneLine(cursor, singleSegment(80), false, nil)
	if hyphenated {
		t.Error("no hyphenation expected")
	}
	if got := lineText(line); got != "hello " {
		t.Errorf("first line = %q, want %q", got, "hello ")
	}

	line, _ = BreakOneLine(cursor, singleSegment(80), false, nil)
	if got := lineText(line); got != "world " {
		t.Errorf("second line = %q, want %q", got, "world ")
	}

	line, _ = BreakOneLine(cursor, singleSegment(80), false, nil)
	if got := lineText(line); got != "foo" {
		t.Errorf("third line = %q, want %q", got, "foo")
	}
	if !cursor.Exhausted() {
		t.Error("cursor should be exhausted")
	}
}

func TestBreakOneLineEverythingFits(t *testing.T) {
	fonts, _ := testFonts()
	cursor := NewBreakCursor(mustShape("hi", fonts))
	line, _ := BreakOneLine(cursor, singleSegment(500), false, nil)
	if got := lineText(line); got != "hi" {
		t.Errorf("line = %q, want hi", got)
	}
	if !cursor.Exhausted() {
		t.Error("cursor should be exhausted")
	}
}

func TestBreakOneLineHardBreak(t *testing.T) {
	fonts, _ := testFonts()
	cursor := NewBreakCursor(mustShape("ab\ncd", fonts))

	line, _ := BreakOneLine(cursor, singleSegment(500), false, nil)
	if got := lineText(line); got != "ab" {
		t.Errorf("first line = %q, want ab", got)
	}
	if _, ok := line[len(line)-1].(*ShapedBreak); !ok {
		t.Error("first line should end with the break item")
	}

	line, _ = BreakOneLine(cursor, singleSegment(500), false, nil)
	if got := lineText(line); got != "cd" {
		t.Errorf("second line = %q, want cd", got)
	}
}

func TestBreakOneLineWhitespaceHangs(t *testing.T) {
	fonts, _ := testFonts()
	// "abcd " at width 40: the four letters fill the segment and the
	// trailing space hangs instead of wrapping.
	cursor := NewBreakCursor(mustShape("abcd efgh", fonts))
	line, _ := BreakOneLine(cursor, singleSegment(40), false, nil)
	if got := lineText(line); got != "abcd " {
		t.Errorf("line = %q, want %q", got, "abcd ")
	}
}

func TestBreakOneLineForcedOverflow(t *testing.T) {
	fonts, _ := testFonts()
	// Nothing fits in 5px, but the breaker must make progress.
	cursor := NewBreakCursor(mustShape("xy", fonts))
	line, _ := BreakOneLine(cursor, singleSegment(5), false, nil)
	if len(line) != 1 {
		t.Fatalf("got %d items, want 1 forced item", len(line))
	}
	if cursor.Exhausted() {
		t.Error("second cluster should remain")
	}
	line, _ = BreakOneLine(cursor, singleSegment(5), false, nil)
	if len(line) != 1 || !cursor.Exhausted() {
		t.Error("forced progress must consume one item per line")
	}
}

func TestBreakOneLineSoftHyphen(t *testing.T) {
	fonts, _ := testFonts()
	// A soft hyphen is a break opportunity.
	cursor := NewBreakCursor(mustShape("ab­cdef", fonts))
	line, _ := BreakOneLine(cursor, singleSegment(45), false, nil)
	if got := lineText(line); got != "ab­" {
		t.Errorf("line = %q, want break after soft hyphen", got)
	}
}

func TestBreakOneLineMultiSegment(t *testing.T) {
	fonts, _ := testFonts()
	// Two 30px segments hold three clusters each.
	lc := LineConstraints{
		Segments:   []LineSegment{{StartX: 0, Width: 30}, {StartX: 100, Width: 30}},
		TotalWidth: 60,
	}
	cursor := NewBreakCursor(mustShape("abcdef gh", fonts))
	line, _ := BreakOneLine(cursor, lc, false, nil)
	if got := lineText(line); got != "abcdef " {
		t.Errorf("line = %q, want %q", got, "abcdef ")
	}
}

func TestBreakOneLineHyphenation(t *testing.T) {
	fonts, _ := testFonts()
	hyph := &wordHyphenator{word: "hyphenation", offsets: []int{2, 6}}

	// 11 letters at 10px; 70px fits "hyphen" (60) plus a 5px hyphen.
	cursor := NewBreakCursor(mustShape("hyphenation", fonts))
	line, hyphenated := BreakOneLine(cursor, singleSegment(70), false, hyph)
	if !hyphenated {
		t.Fatal("expected a hyphenated break")
	}
	if got := lineText(line); got != "hyphen-" {
		t.Errorf("line = %q, want %q", got, "hyphen-")
	}
	last := line[len(line)-1].(*ShapedCluster)
	if !last.isSynthetic() {
		t.Error("inserted hyphen should be synthetic")
	}
	if last.Glyphs[0].Kind != GlyphHyphen {
		t.Errorf("glyph kind = %v, want Hyphen", last.Glyphs[0].Kind)
	}
	if !last.source.IsSynthetic() {
		t.Error("hyphen source should be synthetic")
	}

	line, _ = BreakOneLine(cursor, singleSegment(500), false, hyph)
	if got := lineText(line); got != "ation" {
		t.Errorf("remainder = %q, want %q", got, "ation")
	}
}

func TestBreakOneLineHyphenationPicksRightmost(t *testing.T) {
	fonts, _ := testFonts()
	hyph := &wordHyphenator{word: "hyphenation", offsets: []int{2, 6}}

	// 30px only fits the first candidate ("hy" = 20 plus 5 hyphen).
	cursor := NewBreakCursor(mustShape("hyphenation", fonts))
	line, hyphenated := BreakOneLine(cursor, singleSegment(30), false, hyph)
	if !hyphenated {
		t.Fatal("expected a hyphenated break")
	}
	if got := lineText(line); got != "hy-" {
		t.Errorf("line = %q, want %q", got, "hy-")
	}
}

func TestBreakOneLineNoHyphenGlyph(t *testing.T) {
	fonts, font := testFonts()
	font.noHyphen = true
	hyph := &wordHyphenator{word: "hyphenation", offsets: []int{2, 6}}

	cursor := NewBreakCursor(mustShape("hyphenation", fonts))
	line, hyphenated := BreakOneLine(cursor, singleSegment(70), false, hyph)
	if hyphenated {
		t.Error("hyphenation impossible without a hyphen glyph")
	}
	// Forced overflow keeps progress.
	if len(line) == 0 {
		t.Error("line must not be empty")
	}
}

func TestBreakCursorPartial(t *testing.T) {
	fonts, _ := testFonts()
	items := mustShape("ab", fonts)
	cursor := NewBreakCursor(items[1:])
	cursor.setPartial(items[0])

	if cursor.IsAtStart() {
		t.Error("cursor with a partial is not at start")
	}
	rem := cursor.Remaining()
	if len(rem) != 2 {
		t.Fatalf("remaining = %d items, want 2", len(rem))
	}
	if rem[0].(*ShapedCluster).Text != "a" {
		t.Error("partial must come first")
	}
	cursor.consume(1)
	if got := cursor.Remaining(); len(got) != 1 || got[0].(*ShapedCluster).Text != "b" {
		t.Errorf("after consuming the partial: %d items", len(got))
	}
}

func TestBreakOneLineEmptySegments(t *testing.T) {
	fonts, _ := testFonts()
	cursor := NewBreakCursor(mustShape("ab", fonts))
	line, _ := BreakOneLine(cursor, LineConstraints{}, false, nil)
	if line != nil {
		t.Errorf("got %d items, want none for empty segments", len(line))
	}
	if !cursor.IsAtStart() {
		t.Error("cursor must not advance")
	}
}
