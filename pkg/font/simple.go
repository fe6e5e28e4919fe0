package font

import "golang.org/x/text/encoding/charmap"

// Encoding selects the byte-to-rune mapping of a simple (single-byte) font.
type Encoding int

const (
	StandardEncoding Encoding = iota
	WinAnsiEncoding
	MacRomanEncoding
)

// decodeByte maps a single byte to a rune under the encoding. Standard
// encoding is approximated by Latin-1, which agrees on the printable ASCII
// range PDF producers use it for.
func (e Encoding) decodeByte(b byte) rune {
	switch e {
	case WinAnsiEncoding:
		return charmap.Windows1252.DecodeByte(b)
	case MacRomanEncoding:
		return charmap.Macintosh.DecodeByte(b)
	default:
		return charmap.ISO8859_1.DecodeByte(b)
	}
}

// SimpleFont is a single-byte font with a first-char/widths table, the shape
// PDF font dictionaries describe for Type1 and TrueType fonts when the
// program itself is unavailable.
type SimpleFont struct {
	FontName     string
	FirstChar    int
	Widths       []float64 // indexed by code - FirstChar
	MissingWidth float64   // 0 means unknown
	Encoding     Encoding
}

// Name returns the font's resource name.
func (f *SimpleFont) Name() string { return f.FontName }

// Decode splits a show-text string into single-byte character codes.
func (f *SimpleFont) Decode(b []byte) []Code {
	codes := make([]Code, len(b))
	for i, c := range b {
		codes[i] = Code{
			Value: uint32(c),
			Rune:  f.Encoding.decodeByte(c),
			Bytes: 1,
			Space: c == 32,
		}
	}
	return codes
}

// AdvanceWidth returns the advance for a code from the widths table.
func (f *SimpleFont) AdvanceWidth(c Code) (float64, error) {
	idx := int(c.Value) - f.FirstChar
	if idx >= 0 && idx < len(f.Widths) && f.Widths[idx] > 0 {
		return f.Widths[idx], nil
	}
	if f.MissingWidth > 0 {
		return f.MissingWidth, nil
	}
	return 0, ErrGlyphNotFound
}
