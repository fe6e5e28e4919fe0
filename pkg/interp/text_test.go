package interp

import (
	"math"
	"testing"

	"github.com/novvoo/go-pdfscene/pkg/font"
	"github.com/novvoo/go-pdfscene/pkg/scene"
)

func textResources(width float64) *Resources {
	return &Resources{Fonts: map[string]font.Font{
		"F1": fixedFont{name: "TestFont", width: width},
	}}
}

func glyphXs(sc *scene.Scene) []float64 {
	var xs []float64
	for _, cmd := range sc.Commands {
		if cmd.Kind == scene.CmdPaintGlyph {
			xs = append(xs, cmd.Glyph.Transform.E)
		}
	}
	return xs
}

func approxEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestUniformAdvance(t *testing.T) {
	// Three glyphs of width 500 at size 12: advance 500/1000*12 = 6 each
	sc, diags := run(t, "BT /F1 12 Tf (abc) Tj ET", textResources(500))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got, want := glyphXs(sc), []float64{0, 6, 12}; !approxEqual(got, want) {
		t.Errorf("glyph x positions = %v, want %v", got, want)
	}
}

func TestCharAndWordSpacing(t *testing.T) {
	// Width 500 at size 10 gives advance 5; Tc adds 2 per glyph and Tw adds
	// 3 after the space (code 32).
	sc, _ := run(t, "BT /F1 10 Tf 2 Tc 3 Tw (a b) Tj ET", textResources(500))
	// a: 0; space: 5+2 = 7; b: 7+5+2+3 = 17
	if got, want := glyphXs(sc), []float64{0, 7, 17}; !approxEqual(got, want) {
		t.Errorf("glyph x positions = %v, want %v", got, want)
	}
}

func TestHorizontalScaling(t *testing.T) {
	sc, _ := run(t, "BT /F1 10 Tf 50 Tz (aa) Tj ET", textResources(500))
	// Advance 5 scaled by 50% = 2.5
	if got, want := glyphXs(sc), []float64{0, 2.5}; !approxEqual(got, want) {
		t.Errorf("glyph x positions = %v, want %v", got, want)
	}
	g := sc.Commands[0].Glyph
	if g.Transform.A != 5 { // size 10 * 0.5
		t.Errorf("glyph x scale = %v, want 5", g.Transform.A)
	}
}

func TestAdjustedShowText(t *testing.T) {
	// TJ adjustment of -1000 at size 10 shifts by 10 to the right
	sc, _ := run(t, "BT /F1 10 Tf [(a) -1000 (b)] TJ ET", textResources(500))
	if got, want := glyphXs(sc), []float64{0, 15}; !approxEqual(got, want) {
		t.Errorf("glyph x positions = %v, want %v", got, want)
	}
}

func TestLeadingAndNextLine(t *testing.T) {
	sc, _ := run(t, "BT /F1 10 Tf 14 TL 0 100 Td (a) Tj T* (b) Tj ET", textResources(500))
	var ys []float64
	for _, cmd := range sc.Commands {
		ys = append(ys, cmd.Glyph.Transform.F)
	}
	if !approxEqual(ys, []float64{100, 86}) {
		t.Errorf("glyph y positions = %v, want [100 86]", ys)
	}
}

func TestTDSetsLeading(t *testing.T) {
	in := New(scene.NewScene(612, 792), textResources(500), Options{})
	ops, _ := ParseOperations([]byte("BT /F1 10 Tf 5 -18 TD ET"))
	in.Run(ops)
	if got := in.State().Text.Leading; got != 18 {
		t.Errorf("leading after TD = %v, want 18", got)
	}
}

func TestQuoteOperators(t *testing.T) {
	sc, _ := run(t, "BT /F1 10 Tf 12 TL 0 100 Td (x) Tj (y) ' ET", textResources(500))
	last := sc.Commands[len(sc.Commands)-1].Glyph
	if last.Transform.F != 88 {
		t.Errorf("' glyph y = %v, want 88", last.Transform.F)
	}
	if last.Transform.E != 0 {
		t.Errorf("' glyph x = %v, want 0 (line start)", last.Transform.E)
	}
}

func TestDoubleQuoteSetsSpacing(t *testing.T) {
	in := New(scene.NewScene(612, 792), textResources(500), Options{})
	ops, _ := ParseOperations([]byte("BT /F1 10 Tf 3 2 (z) \" ET"))
	in.Run(ops)
	ts := in.State().Text
	if ts.WordSpacing != 3 || ts.CharSpacing != 2 {
		t.Errorf("spacing after \" = (%v, %v), want (3, 2)", ts.WordSpacing, ts.CharSpacing)
	}
}

func TestRiseInGlyphTransform(t *testing.T) {
	sc, _ := run(t, "BT /F1 10 Tf 4 Ts (a) Tj ET", textResources(500))
	if got := sc.Commands[0].Glyph.Transform.F; got != 4 {
		t.Errorf("risen glyph y = %v, want 4", got)
	}
}

func TestInvisibleRenderModeAdvancesOnly(t *testing.T) {
	sc, diags := run(t, "BT /F1 10 Tf 3 Tr (hidden) Tj 0 Tr (v) Tj ET", textResources(500))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(sc.Commands) != 1 {
		t.Fatalf("got %d commands, want 1 (invisible glyphs suppressed)", len(sc.Commands))
	}
	// Six hidden glyphs of advance 5 still moved the pen
	if got := sc.Commands[0].Glyph.Transform.E; got != 30 {
		t.Errorf("visible glyph x = %v, want 30", got)
	}
}

func TestTextMatrixResetByTd(t *testing.T) {
	// Td is relative to the line matrix, not the text matrix: after showing
	// text, a Td moves from the line start.
	sc, _ := run(t, "BT /F1 10 Tf 10 50 Td (aaa) Tj 0 -20 Td (b) Tj ET", textResources(500))
	last := sc.Commands[len(sc.Commands)-1].Glyph
	if last.Transform.E != 10 || last.Transform.F != 30 {
		t.Errorf("glyph after second Td at (%v, %v), want (10, 30)", last.Transform.E, last.Transform.F)
	}
}

func TestGlyphNotFoundRecovers(t *testing.T) {
	res := &Resources{Fonts: map[string]font.Font{
		"F1": &font.SimpleFont{FontName: "Narrow", FirstChar: 97, Widths: []float64{600}},
	}}
	// 'a' has a width; 'z' does not and has no MissingWidth fallback
	sc, diags := run(t, "BT /F1 10 Tf (za) Tj ET", res)

	if len(sc.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(sc.Commands))
	}
	// The missing glyph still advanced the pen by the default width
	if got := sc.Commands[0].Glyph.Transform.E; got != font.DefaultWidth/1000*10 {
		t.Errorf("glyph after missing code at x=%v, want %v", got, font.DefaultWidth/1000*10)
	}
	if len(diags) != 1 || diags[0].Kind != GlyphNotFound {
		t.Errorf("diagnostics = %v, want one GlyphNotFound", diags)
	}
}

func TestGlyphTransformComposition(t *testing.T) {
	sc, _ := run(t, "q 2 0 0 2 0 0 cm BT /F1 10 Tf 5 5 Td (a) Tj ET Q", textResources(500))
	g := sc.Commands[0].Glyph
	// glyphScale(10) x Tm(translate 5,5) x CTM(scale 2)
	if g.Transform.A != 20 || g.Transform.D != 20 {
		t.Errorf("glyph scale = (%v, %v), want (20, 20)", g.Transform.A, g.Transform.D)
	}
	if g.Transform.E != 10 || g.Transform.F != 10 {
		t.Errorf("glyph origin = (%v, %v), want (10, 10)", g.Transform.E, g.Transform.F)
	}
}
