package font

// TwoByteFont is a fixed two-byte font, the common case for CID-keyed fonts
// under an Identity-H encoding. Widths are keyed by CID; codes never trigger
// word spacing (word spacing applies only to single-byte code 32).
type TwoByteFont struct {
	FontName string
	Widths   map[uint32]float64
	Default  float64 // CIDFont /DW, 0 means unknown
	ToUni    map[uint32]rune
}

// Name returns the font's resource name.
func (f *TwoByteFont) Name() string { return f.FontName }

// Decode splits a show-text string into big-endian two-byte codes. A
// trailing odd byte is consumed as a one-byte code, matching viewer behavior
// for truncated strings.
func (f *TwoByteFont) Decode(b []byte) []Code {
	var codes []Code
	for i := 0; i < len(b); {
		var v uint32
		n := 2
		if i+1 < len(b) {
			v = uint32(b[i])<<8 | uint32(b[i+1])
		} else {
			v = uint32(b[i])
			n = 1
		}
		codes = append(codes, Code{Value: v, Rune: f.ToUni[v], Bytes: n})
		i += n
	}
	return codes
}

// AdvanceWidth returns the advance for a CID.
func (f *TwoByteFont) AdvanceWidth(c Code) (float64, error) {
	if w, ok := f.Widths[c.Value]; ok {
		return w, nil
	}
	if f.Default > 0 {
		return f.Default, nil
	}
	return 0, ErrGlyphNotFound
}
