package textflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for the layout failure taxonomy. Typed errors below
// wrap these, so callers can match with errors.Is.
var (
	// ErrFontMissing indicates a style referenced a font the loader
	// could not resolve. Layout stops; nothing is partially committed.
	ErrFontMissing = errors.New("textflow: font missing")

	// ErrHyphenation indicates the hyphenation dictionary for a
	// requested language could not be loaded. The pipeline recovers by
	// disabling hyphenation for the call; this error only surfaces from
	// dictionary loading APIs.
	ErrHyphenation = errors.New("textflow: hyphenation dictionary unavailable")

	// ErrInvalidText indicates a structural precondition was violated,
	// such as measuring an item variant that has no measure.
	ErrInvalidText = errors.New("textflow: invalid text structure")

	// ErrShaping indicates the font shaper rejected its input.
	ErrShaping = errors.New("textflow: shaping failed")
)

// FontMissingError reports which font reference failed to resolve.
type FontMissingError struct {
	Ref FontRef
	Err error
}

func (e *FontMissingError) Error() string {
	return fmt.Sprintf("textflow: font %q (weight %d, italic %t) missing: %v",
		e.Ref.Family, e.Ref.Weight, e.Ref.Italic, e.Err)
}

func (e *FontMissingError) Unwrap() error { return e.Err }

// Is reports a match against ErrFontMissing.
func (e *FontMissingError) Is(target error) bool { return target == ErrFontMissing }

// ShapingError reports a shaper failure for one visual run.
type ShapingError struct {
	Script Script
	Text   string
	Err    error
}

func (e *ShapingError) Error() string {
	return fmt.Sprintf("textflow: shaping %d bytes of %s text: %v",
		len(e.Text), e.Script, e.Err)
}

func (e *ShapingError) Unwrap() error { return e.Err }

// Is reports a match against ErrShaping.
func (e *ShapingError) Is(target error) bool { return target == ErrShaping }

// HyphenationError reports a dictionary load failure for a language tag.
type HyphenationError struct {
	Language string
	Err      error
}

func (e *HyphenationError) Error() string {
	return fmt.Sprintf("textflow: hyphenation dictionary for %q: %v", e.Language, e.Err)
}

func (e *HyphenationError) Unwrap() error { return e.Err }

// Is reports a match against ErrHyphenation.
func (e *HyphenationError) Is(target error) bool { return target == ErrHyphenation }
