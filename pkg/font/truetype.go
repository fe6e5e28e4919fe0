package font

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TrueTypeFont derives advance widths from an embedded TrueType program.
// The face is opened at 1000 units per em so GlyphAdvance yields text space
// units directly.
type TrueTypeFont struct {
	FontName string
	Encoding Encoding

	ttf  *truetype.Font
	face xfont.Face
}

// ParseTrueType parses a TrueType font program.
func ParseTrueType(name string, program []byte, enc Encoding) (*TrueTypeFont, error) {
	ttf, err := truetype.Parse(program)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", name, err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    1000,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	return &TrueTypeFont{FontName: name, Encoding: enc, ttf: ttf, face: face}, nil
}

// Name returns the font's resource name.
func (f *TrueTypeFont) Name() string { return f.FontName }

// Decode splits a show-text string into single-byte character codes using
// the font's simple encoding.
func (f *TrueTypeFont) Decode(b []byte) []Code {
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

// AdvanceWidth returns the glyph advance from the font's metrics.
func (f *TrueTypeFont) AdvanceWidth(c Code) (float64, error) {
	if c.Rune == 0 || f.ttf.Index(c.Rune) == 0 {
		return 0, ErrGlyphNotFound
	}
	adv, ok := f.face.GlyphAdvance(c.Rune)
	if !ok {
		return 0, ErrGlyphNotFound
	}
	return float64(adv) / float64(fixed.I(1)), nil
}

// Close releases the underlying font face.
func (f *TrueTypeFont) Close() error {
	return f.face.Close()
}
