package interp

import (
	"github.com/novvoo/go-pdfscene/pkg/font"
	"github.com/novvoo/go-pdfscene/pkg/scene"
)

// TextState is the text-specific slice of the graphics state. The text
// matrix (Tm) accumulates glyph placement inside a text object; the line
// matrix (Tlm) is the reset point for line breaks. Both are meaningful only
// between BT and ET.
type TextState struct {
	Tm  scene.Matrix
	Tlm scene.Matrix

	Font     font.Font
	FontName string
	FontSize float64

	CharSpacing float64
	WordSpacing float64
	HorizScale  float64 // ratio; Tz operand is a percentage
	Leading     float64
	Rise        float64
	RenderMode  int
}

// GraphicsState is one full snapshot of the PDF graphics model. It is a
// value type: save copies the struct, restore assigns it back. The clip
// region and dash pattern are shared by reference; both are immutable, so
// sharing across snapshots is safe (copy-on-write).
type GraphicsState struct {
	CTM scene.Matrix

	FillPaint   scene.Paint
	StrokePaint scene.Paint
	FillSpace   *ColorSpace
	StrokeSpace *ColorSpace
	FillAlpha   float64
	StrokeAlpha float64

	Stroke scene.StrokeStyle
	Clip   *scene.ClipRegion

	Text TextState
}

// newGraphicsState returns the page-entry default state under the given
// base transform.
func newGraphicsState(base scene.Matrix) GraphicsState {
	return GraphicsState{
		CTM:         base,
		FillPaint:   scene.Black(),
		StrokePaint: scene.Black(),
		FillSpace:   deviceGraySpace,
		StrokeSpace: deviceGraySpace,
		FillAlpha:   1,
		StrokeAlpha: 1,
		Stroke: scene.StrokeStyle{
			LineWidth:  1,
			Cap:        scene.ButtCap,
			Join:       scene.MiterJoin,
			MiterLimit: 10,
		},
		Clip: nil, // unbounded
		Text: TextState{
			Tm:         scene.Identity(),
			Tlm:        scene.Identity(),
			HorizScale: 1,
		},
	}
}

// save pushes a snapshot of the current state.
func (in *Interpreter) save() {
	in.stack = append(in.stack, in.gs)
}

// restore pops the stack into the current state. A restore with an empty
// stack is recorded and ignored; PDF producers commonly emit extra Q
// operators and the page must not abort.
func (in *Interpreter) restore() {
	if len(in.stack) == 0 {
		in.diag(Diagnostic{Kind: StateUnderflow, Op: "Q", Detail: "restore with empty state stack"})
		return
	}
	in.gs = in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
}

// applyMatrix concatenates m onto the CTM: the new transform applies before
// the existing ones (CTM' = m × CTM).
func (in *Interpreter) applyMatrix(m scene.Matrix) {
	in.gs.CTM = m.Multiply(in.gs.CTM)
}
