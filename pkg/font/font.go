// Package font defines the font model consumed by the text layout engine:
// decoding of show-text strings into character codes and per-code advance
// widths. Font program extraction and CMap parsing are upstream concerns;
// this package only interprets what a decoder hands it.
package font

import "errors"

// ErrGlyphNotFound is returned by AdvanceWidth when a font has no metric for
// a code. The text engine recovers with DefaultWidth and skips the glyph.
var ErrGlyphNotFound = errors.New("font: glyph not found")

// DefaultWidth is the fallback advance, in 1000-per-em text space units,
// used when a glyph's width is unknown.
const DefaultWidth = 500.0

// Code is one decoded character code from a show-text string.
type Code struct {
	Value uint32 // character code
	Rune  rune   // text content, 0 if unmapped
	Bytes int    // number of bytes consumed from the string
	Space bool   // single-byte code 32; triggers word spacing
}

// Font maps show-text strings to character codes and advance widths.
// Widths are in 1000-per-em text space units.
type Font interface {
	Name() string
	Decode(b []byte) []Code
	AdvanceWidth(c Code) (float64, error)
}
