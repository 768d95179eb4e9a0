package textflow

import "testing"

func TestDetectBaseDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"latin", "hello", DirectionLTR},
		{"hebrew", "שלום", DirectionRTL},
		{"arabic", "مرحبا", DirectionRTL},
		{"neutral then rtl", "123 שלום", DirectionRTL},
		{"neutral only", "123 !?", DirectionLTR},
		{"empty", "", DirectionLTR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := AnalyzeContent([]InlineContent{TextRun{Text: tt.text, Style: testStyle()}}, nil)
			if got := DetectBaseDirection(items); got != tt.want {
				t.Errorf("DetectBaseDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestReorderPureLTR(t *testing.T) {
	items := AnalyzeContent([]InlineContent{TextRun{Text: "hello world", Style: testStyle()}}, nil)
	visual := ReorderLogicalItems(items, DirectionLTR)

	if len(visual) != 1 {
		t.Fatalf("got %d visual items, want 1", len(visual))
	}
	v := visual[0]
	if v.Text != "hello world" {
		t.Errorf("Text = %q, want full run", v.Text)
	}
	if v.BidiLevel%2 != 0 {
		t.Errorf("BidiLevel = %d, want even", v.BidiLevel)
	}
	if v.Direction() != DirectionLTR {
		t.Errorf("Direction = %v, want LTR", v.Direction())
	}
	if v.Script != ScriptLatin {
		t.Errorf("Script = %v, want Latin", v.Script)
	}
}

func TestReorderMixedDirection(t *testing.T) {
	// An RTL word embedded in LTR text must come back as three runs in
	// visual order with the middle one at an odd level.
	text := "abc שלום xyz"
	items := AnalyzeContent([]InlineContent{TextRun{Text: text, Style: testStyle()}}, nil)
	visual := ReorderLogicalItems(items, DirectionLTR)

	if len(visual) != 3 {
		t.Fatalf("got %d visual items, want 3", len(visual))
	}
	if visual[0].Direction() != DirectionLTR || visual[2].Direction() != DirectionLTR {
		t.Error("outer runs should stay LTR")
	}
	if visual[1].Direction() != DirectionRTL {
		t.Errorf("middle run direction = %v, want RTL", visual[1].Direction())
	}
	if visual[1].Script != ScriptHebrew {
		t.Errorf("middle run script = %v, want Hebrew", visual[1].Script)
	}
	if visual[1].Text != "שלום" {
		t.Errorf("middle run text = %q", visual[1].Text)
	}
	if visual[0].ByteOffset != 0 {
		t.Errorf("first run ByteOffset = %d, want 0", visual[0].ByteOffset)
	}
	if visual[1].ByteOffset != 4 {
		t.Errorf("middle run ByteOffset = %d, want 4", visual[1].ByteOffset)
	}
}

func TestReorderRTLParagraphVisualOrder(t *testing.T) {
	// In an RTL paragraph, two logical items of RTL text come back in
	// reverse logical order.
	style := testStyle()
	items := AnalyzeContent([]InlineContent{
		TextRun{Text: "שלום", Style: style},
		TextRun{Text: " עולם", Style: style},
	}, nil)
	visual := ReorderLogicalItems(items, DirectionRTL)

	if len(visual) < 2 {
		t.Fatalf("got %d visual items, want at least 2", len(visual))
	}
	first := visual[0]
	if first.LogicalIndex != 1 {
		t.Errorf("first visual item LogicalIndex = %d, want 1 (reversed)", first.LogicalIndex)
	}
	for i, v := range visual {
		if v.Direction() != DirectionRTL {
			t.Errorf("run %d direction = %v, want RTL", i, v.Direction())
		}
	}
}

func TestReorderObjectPlaceholder(t *testing.T) {
	style := testStyle()
	items := AnalyzeContent([]InlineContent{
		TextRun{Text: "ab ", Style: style},
		InlineImage{IntrinsicSize: Size{Width: 10, Height: 10}},
		TextRun{Text: " cd", Style: style},
	}, nil)
	visual := ReorderLogicalItems(items, DirectionLTR)

	if len(visual) != 3 {
		t.Fatalf("got %d visual items, want 3", len(visual))
	}
	obj := visual[1]
	if obj.LogicalIndex != 1 {
		t.Errorf("object LogicalIndex = %d, want 1", obj.LogicalIndex)
	}
	if obj.Text != "" {
		t.Errorf("object Text = %q, want empty", obj.Text)
	}
}

func TestReorderEmpty(t *testing.T) {
	if got := ReorderLogicalItems(nil, DirectionLTR); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
