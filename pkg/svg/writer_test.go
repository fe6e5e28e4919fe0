package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/novvoo/go-pdfscene/pkg/scene"
)

func rect(x, y, w, h float64) scene.Path {
	return scene.Path{Subpaths: []scene.Subpath{{
		Start: scene.Point{X: x, Y: y},
		Segments: []scene.Segment{
			scene.Line(scene.Point{X: x + w, Y: y}),
			scene.Line(scene.Point{X: x + w, Y: y + h}),
			scene.Line(scene.Point{X: x, Y: y + h}),
		},
		Closed: true,
	}}}
}

func render(t *testing.T, sc *scene.Scene) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, sc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestWriteFill(t *testing.T) {
	sc := scene.NewScene(200, 100)
	sc.Draw(scene.Command{
		Kind: scene.CmdFillPath,
		Path: rect(10, 20, 30, 40),
		Fill: scene.Paint{R: 1, G: 0, B: 0, Alpha: 1},
	})
	out := render(t, sc)

	for _, want := range []string{
		`viewBox="0 0 200 100"`,
		`matrix(1 0 0 -1 0 100)`, // y-flip
		`d="M10 20L40 20L40 60L10 60Z"`,
		`fill="rgb(255,0,0)"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "fill-opacity") {
		t.Errorf("opaque fill must not emit fill-opacity:\n%s", out)
	}
}

func TestWriteStrokeAttributes(t *testing.T) {
	sc := scene.NewScene(100, 100)
	sc.Draw(scene.Command{
		Kind:   scene.CmdStrokePath,
		Path:   rect(0, 0, 10, 10),
		Stroke: scene.Paint{R: 0, G: 0, B: 1, Alpha: 0.5},
		Style: scene.StrokeStyle{
			LineWidth:   2,
			Cap:         scene.RoundCap,
			Join:        scene.BevelJoin,
			DashPattern: []float64{3, 1},
			DashPhase:   0.5,
		},
	})
	out := render(t, sc)

	for _, want := range []string{
		`fill="none"`,
		`stroke="rgb(0,0,255)"`,
		`stroke-width="2"`,
		`stroke-opacity="0.5"`,
		`stroke-linecap="round"`,
		`stroke-linejoin="bevel"`,
		`stroke-dasharray="3 1"`,
		`stroke-dashoffset="0.5"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCurve(t *testing.T) {
	sc := scene.NewScene(100, 100)
	sc.Draw(scene.Command{
		Kind: scene.CmdFillPath,
		Path: scene.Path{Subpaths: []scene.Subpath{{
			Start: scene.Point{X: 0, Y: 0},
			Segments: []scene.Segment{scene.Cubic(
				scene.Point{X: 10, Y: 0},
				scene.Point{X: 10, Y: 10},
				scene.Point{X: 0, Y: 10},
			)},
		}}},
		Fill: scene.Black(),
	})
	out := render(t, sc)
	if !strings.Contains(out, "C10 0 10 10 0 10") {
		t.Errorf("cubic segment not serialized:\n%s", out)
	}
}

func TestWriteClipChain(t *testing.T) {
	var base *scene.ClipRegion
	clip := base.Intersect(rect(0, 0, 50, 50), scene.NonZero).
		Intersect(rect(10, 10, 20, 20), scene.EvenOdd)

	sc := scene.NewScene(100, 100)
	sc.Draw(scene.Command{Kind: scene.CmdClipIntersect, Path: rect(0, 0, 50, 50), Clip: clip})
	sc.Draw(scene.Command{
		Kind: scene.CmdFillPath,
		Path: rect(0, 0, 100, 100),
		Fill: scene.Black(),
		Clip: clip,
	})
	sc.Draw(scene.Command{
		Kind: scene.CmdFillPath,
		Path: rect(0, 0, 100, 100),
		Fill: scene.Black(),
		Clip: clip,
	})
	out := render(t, sc)

	if !strings.Contains(out, `<clipPath id="clip2" clip-path="url(#clip1)">`) {
		t.Errorf("chained clipPath missing:\n%s", out)
	}
	if !strings.Contains(out, `clip-rule="evenodd"`) {
		t.Errorf("even-odd clip rule missing:\n%s", out)
	}
	// The same region referenced twice gets one definition
	if strings.Count(out, `<clipPath id="clip1"`) != 1 {
		t.Errorf("clip definitions duplicated:\n%s", out)
	}
	if strings.Count(out, `clip-path="url(#clip2)"`) != 2 {
		t.Errorf("both fills must reference the chain tail:\n%s", out)
	}
}

func TestWriteGlyph(t *testing.T) {
	sc := scene.NewScene(100, 100)
	sc.Draw(scene.Command{
		Kind: scene.CmdPaintGlyph,
		Fill: scene.Black(),
		Glyph: &scene.GlyphPlacement{
			Rune:      '<',
			FontName:  "Helvetica",
			FontSize:  12,
			Transform: scene.Matrix{A: 12, D: 12, E: 30, F: 40},
		},
	})
	out := render(t, sc)

	if !strings.Contains(out, `font-size="1"`) {
		t.Errorf("glyph must render at unit size under its transform:\n%s", out)
	}
	// Scaling(1,-1) folded in: D flips sign
	if !strings.Contains(out, `matrix(12 0 0 -12 30 40)`) {
		t.Errorf("glyph transform missing y-unflip:\n%s", out)
	}
	if !strings.Contains(out, ">&lt;</text>") {
		t.Errorf("glyph text not XML-escaped:\n%s", out)
	}
}

func TestWriteSkipsInvisibleGlyphs(t *testing.T) {
	sc := scene.NewScene(100, 100)
	sc.Draw(scene.Command{
		Kind:  scene.CmdPaintGlyph,
		Fill:  scene.Black(),
		Glyph: &scene.GlyphPlacement{Rune: 0, Transform: scene.Identity()},
	})
	out := render(t, sc)
	if strings.Contains(out, "<text") {
		t.Errorf("unmapped glyph must not produce a text element:\n%s", out)
	}
}
