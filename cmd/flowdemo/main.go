// Command flowdemo lays out text from the command line and prints the
// resulting line geometry.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textflow"
	"github.com/gogpu/textflow/gotext"
)

func main() {
	var (
		width    = flag.Float64("width", 300, "fragment width in pixels")
		size     = flag.Float64("size", 16, "font size in pixels")
		lineGap  = flag.Float64("line-height", 0, "line height in pixels (0 = 1.2em)")
		align    = flag.String("align", "start", "start, end, left, right, center")
		justify  = flag.Bool("justify", false, "justify lines with inter-word spacing")
		columns  = flag.Int("columns", 1, "column count")
		indent   = flag.Float64("indent", 0, "first-line indent in pixels")
		vertical = flag.Bool("vertical", false, "vertical-rl writing mode")
	)
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: flowdemo [flags] text...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	loader := gotext.NewLoader()
	if err := loader.Register("Go", 400, false, goregular.TTF); err != nil {
		log.Fatalf("register font: %v", err)
	}
	fonts := textflow.NewFontManager(loader)

	constraints := textflow.UnifiedConstraints{
		AvailableWidth: *width,
		LineHeight:     *lineGap,
		TextAlign:      parseAlign(*align),
		Columns:        *columns,
		ColumnGap:      16,
		TextIndent:     *indent,
	}
	if *justify {
		constraints.TextAlign = textflow.AlignJustify
		constraints.JustifyContent = textflow.JustifyInterWord
	}
	if *vertical {
		constraints.WritingMode = textflow.WritingModeVerticalRL
	}

	content := []textflow.InlineContent{textflow.TextRun{
		Text: text,
		Style: &textflow.StyleProperties{
			FontRef:  textflow.FontRef{Family: "Go", Weight: 400},
			FontSize: *size,
		},
	}}
	fragments := []textflow.LayoutFragment{{ID: "main", Constraints: constraints}}

	flow, err := textflow.LayoutFlow(content, nil, fragments, fonts)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	layout := flow.FragmentLayouts["main"]
	fmt.Printf("bounds %.1fx%.1f\n", layout.Bounds.Width, layout.Bounds.Height)
	printLines(layout.Items)
}

func parseAlign(s string) textflow.TextAlign {
	switch s {
	case "start":
		return textflow.AlignStart
	case "end":
		return textflow.AlignEnd
	case "left":
		return textflow.AlignLeft
	case "right":
		return textflow.AlignRight
	case "center":
		return textflow.AlignCenter
	default:
		log.Fatalf("unknown alignment %q", s)
		return textflow.AlignStart
	}
}

// printLines reconstructs each line's text and extent from the
// positioned items.
func printLines(items []textflow.PositionedItem) {
	type lineAcc struct {
		text  strings.Builder
		start float64
		end   float64
		seen  bool
	}
	var lines []*lineAcc
	for _, item := range items {
		for item.LineIndex >= len(lines) {
			lines = append(lines, &lineAcc{})
		}
		acc := lines[item.LineIndex]
		c, ok := item.Item.(*textflow.ShapedCluster)
		if !ok {
			continue
		}
		acc.text.WriteString(c.Text)
		if !acc.seen || item.Position.X < acc.start {
			acc.start = item.Position.X
		}
		if end := item.Position.X + c.Advance; end > acc.end {
			acc.end = end
		}
		acc.seen = true
	}
	for i, acc := range lines {
		fmt.Printf("line %2d [%6.1f .. %6.1f] %q\n",
			i, acc.start, acc.end, strings.TrimRight(acc.text.String(), " "))
	}
}
