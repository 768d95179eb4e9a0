// Package textflow is a staged text layout engine.
//
// It transforms rich inline content (styled text runs, images, shapes,
// spaces, ruby annotations, hard breaks) into positioned glyphs ready for
// rasterization. The work is organized as a four-stage pipeline, each stage
// a pure function of its inputs and memoized by a content-derived key:
//
//	InlineContent ──► LogicalItems ──► VisualItems ──► ShapedItems ──► FlowLayout
//	                  (stage 1:        (stage 2:       (stage 3:       (stages 4-5:
//	                   analysis)        bidi order)     shaping)        break + place)
//
// Stage 1 splits content into atomic logical items, applying per-character
// style overrides, tab extraction and tate-chu-yoko digit combination.
// Stage 2 runs the Unicode Bidirectional Algorithm and segments visual runs
// by script and style. Stage 3 invokes a font shaper per visual run and
// groups the output into grapheme-addressable clusters. Stages 4 and 5
// break the shaped stream into lines that fit shape-aware region geometry,
// justify them (inter-word, inter-character, or Kashida), and flow the
// result through an ordered chain of layout fragments (columns, pages).
//
// Font parsing and shaping live behind the ParsedFont and FontLoader
// interfaces; the gotext subpackage provides the default implementation
// backed by go-text/typesetting. Hyphenation dictionaries live behind the
// Hyphenator interface; the hyphenate subpackage loads Liang pattern files.
//
// The pipeline is single-threaded: a LayoutCache is owned by its caller and
// must not be shared between goroutines without external synchronization.
// Fonts and styles are immutable after construction and may be shared.
package textflow
