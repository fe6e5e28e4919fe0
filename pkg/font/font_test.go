package font

import "testing"

func TestSimpleFontWidths(t *testing.T) {
	f := &SimpleFont{
		FontName:  "Test",
		FirstChar: 65,
		Widths:    []float64{722, 667, 0, 611},
	}

	w, err := f.AdvanceWidth(Code{Value: 65})
	if err != nil || w != 722 {
		t.Errorf("width of A = (%v, %v), want (722, nil)", w, err)
	}
	w, err = f.AdvanceWidth(Code{Value: 68})
	if err != nil || w != 611 {
		t.Errorf("width of D = (%v, %v), want (611, nil)", w, err)
	}

	// Zero-width table entry and out-of-range code both miss
	if _, err := f.AdvanceWidth(Code{Value: 67}); err != ErrGlyphNotFound {
		t.Errorf("zero-width entry: err = %v, want ErrGlyphNotFound", err)
	}
	if _, err := f.AdvanceWidth(Code{Value: 200}); err != ErrGlyphNotFound {
		t.Errorf("out-of-range code: err = %v, want ErrGlyphNotFound", err)
	}
}

func TestSimpleFontMissingWidthFallback(t *testing.T) {
	f := &SimpleFont{FontName: "Test", FirstChar: 65, MissingWidth: 300}
	w, err := f.AdvanceWidth(Code{Value: 200})
	if err != nil || w != 300 {
		t.Errorf("got (%v, %v), want (300, nil)", w, err)
	}
}

func TestSimpleFontDecode(t *testing.T) {
	f := &SimpleFont{FontName: "Test", Encoding: WinAnsiEncoding}
	codes := f.Decode([]byte("a b"))
	if len(codes) != 3 {
		t.Fatalf("got %d codes, want 3", len(codes))
	}
	if codes[0].Rune != 'a' || codes[0].Bytes != 1 || codes[0].Space {
		t.Errorf("code 0 = %+v", codes[0])
	}
	if !codes[1].Space {
		t.Errorf("byte 32 must set Space")
	}
}

func TestWinAnsiBeyondASCII(t *testing.T) {
	f := &SimpleFont{FontName: "Test", Encoding: WinAnsiEncoding}
	// 0x93 is a left curly quote in Windows-1252
	if r := f.Decode([]byte{0x93})[0].Rune; r != '“' {
		t.Errorf("WinAnsi 0x93 = %q, want left double quote", r)
	}

	f.Encoding = MacRomanEncoding
	// 0xA5 is a bullet in MacRoman
	if r := f.Decode([]byte{0xA5})[0].Rune; r != '•' {
		t.Errorf("MacRoman 0xA5 = %q, want bullet", r)
	}
}

func TestTwoByteFontDecode(t *testing.T) {
	f := &TwoByteFont{
		FontName: "CID",
		Widths:   map[uint32]float64{0x0102: 650},
		ToUni:    map[uint32]rune{0x0102: '中'},
	}

	codes := f.Decode([]byte{0x01, 0x02, 0x00, 0x20})
	if len(codes) != 2 {
		t.Fatalf("got %d codes, want 2", len(codes))
	}
	if codes[0].Value != 0x0102 || codes[0].Rune != '中' || codes[0].Bytes != 2 {
		t.Errorf("code 0 = %+v", codes[0])
	}
	// Two-byte code 32 is not a word-spacing trigger
	if codes[1].Space {
		t.Errorf("two-byte code 0x0020 must not set Space")
	}

	w, err := f.AdvanceWidth(codes[0])
	if err != nil || w != 650 {
		t.Errorf("width = (%v, %v), want (650, nil)", w, err)
	}
}

func TestTwoByteFontTrailingOddByte(t *testing.T) {
	f := &TwoByteFont{FontName: "CID", Default: 1000}
	codes := f.Decode([]byte{0x01, 0x02, 0x03})
	if len(codes) != 2 {
		t.Fatalf("got %d codes, want 2", len(codes))
	}
	if codes[1].Value != 0x03 || codes[1].Bytes != 1 {
		t.Errorf("trailing code = %+v, want one-byte 0x03", codes[1])
	}
}

func TestTwoByteFontDefaultWidth(t *testing.T) {
	f := &TwoByteFont{FontName: "CID", Default: 1000}
	w, err := f.AdvanceWidth(Code{Value: 7})
	if err != nil || w != 1000 {
		t.Errorf("got (%v, %v), want (1000, nil)", w, err)
	}

	f.Default = 0
	if _, err := f.AdvanceWidth(Code{Value: 7}); err != ErrGlyphNotFound {
		t.Errorf("err = %v, want ErrGlyphNotFound", err)
	}
}
