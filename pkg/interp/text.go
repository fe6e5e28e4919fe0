package interp

import (
	"fmt"

	"github.com/novvoo/go-pdfscene/pkg/font"
	"github.com/novvoo/go-pdfscene/pkg/scene"
)

// beginText resets the text and line matrices to identity.
func (in *Interpreter) beginText() {
	in.gs.Text.Tm = scene.Identity()
	in.gs.Text.Tlm = scene.Identity()
}

// setTextMatrix replaces the line matrix and copies it into the text matrix.
func (in *Interpreter) setTextMatrix(m scene.Matrix) {
	in.gs.Text.Tm = m
	in.gs.Text.Tlm = m
}

// translateText moves the line matrix by (tx, ty) in unscaled text space and
// resets the text matrix to it, discarding horizontal accumulation.
func (in *Interpreter) translateText(tx, ty float64) {
	ts := &in.gs.Text
	ts.Tlm = scene.Translation(tx, ty).Multiply(ts.Tlm)
	ts.Tm = ts.Tlm
}

// nextLine moves to the start of the next line using the current leading.
func (in *Interpreter) nextLine() {
	in.translateText(0, -in.gs.Text.Leading)
}

// showText decodes a show-text string with the active font and emits one
// PaintGlyph command per character, advancing the text matrix after each.
func (in *Interpreter) showText(op string, data []byte) {
	ts := &in.gs.Text
	if ts.Font == nil {
		in.diag(Diagnostic{Kind: ResourceMissing, Op: op, Detail: "no font selected"})
		return
	}
	for _, code := range ts.Font.Decode(data) {
		in.showGlyph(op, code)
	}
}

// showGlyph places a single glyph at CTM × Tm (with font size, horizontal
// scaling and rise folded into the glyph transform), then advances Tm along
// the writing direction.
func (in *Interpreter) showGlyph(op string, code font.Code) {
	ts := &in.gs.Text

	w, err := ts.Font.AdvanceWidth(code)
	emit := ts.RenderMode != 3 // mode 3 is invisible text: advance only
	if err != nil {
		in.diag(Diagnostic{
			Kind:   GlyphNotFound,
			Op:     op,
			Detail: fmt.Sprintf("font %s code %d", ts.Font.Name(), code.Value),
		})
		w = font.DefaultWidth
		emit = false
	}

	if emit {
		glyphScale := scene.Matrix{
			A: ts.FontSize * ts.HorizScale,
			D: ts.FontSize,
			F: ts.Rise,
		}
		paint := in.gs.FillPaint
		paint.Alpha *= in.gs.FillAlpha
		in.sink.Draw(scene.Command{
			Kind: scene.CmdPaintGlyph,
			Fill: paint,
			Clip: in.gs.Clip,
			Glyph: &scene.GlyphPlacement{
				Code:      code.Value,
				Rune:      code.Rune,
				FontName:  ts.Font.Name(),
				FontSize:  ts.FontSize,
				Transform: glyphScale.Multiply(ts.Tm).Multiply(in.gs.CTM),
				Mode:      ts.RenderMode,
			},
		})
	}

	adv := w/1000*ts.FontSize + ts.CharSpacing
	if code.Space {
		adv += ts.WordSpacing
	}
	ts.Tm = scene.Translation(adv*ts.HorizScale, 0).Multiply(ts.Tm)
}

// showTextAdjusted handles the TJ operator: text runs interleaved with
// positional adjustments in thousandths of unscaled text space, subtracted
// from the advance before the next glyph (PDF's kerning mechanism).
func (in *Interpreter) showTextAdjusted(op string, arr Array) {
	ts := &in.gs.Text
	for _, item := range arr {
		switch v := item.(type) {
		case String:
			in.showText(op, v.Value)
		case Integer, Real:
			adj, _ := numberValue(v)
			tx := -adj / 1000 * ts.FontSize * ts.HorizScale
			ts.Tm = scene.Translation(tx, 0).Multiply(ts.Tm)
		default:
			in.diag(Diagnostic{
				Kind:   FormatViolation,
				Op:     op,
				Detail: fmt.Sprintf("unexpected %T in adjustment array", item),
			})
		}
	}
}

// setFont selects the active font and size from the resource dictionary.
func (in *Interpreter) setFont(name string, size float64) {
	ts := &in.gs.Text
	f := in.res.Font(name)
	if f == nil {
		in.diag(Diagnostic{Kind: ResourceMissing, Op: "Tf", Detail: "font " + name})
	}
	ts.Font = f
	ts.FontName = name
	ts.FontSize = size
}
