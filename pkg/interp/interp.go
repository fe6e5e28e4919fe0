package interp

import (
	"fmt"
	"math"

	"github.com/novvoo/go-pdfscene/pkg/scene"
)

// DefaultMaxNestingDepth bounds form XObject recursion, guarding against
// circular resource graphs.
const DefaultMaxNestingDepth = 32

// Options configures a page interpretation.
type Options struct {
	// PageWidth and PageHeight are the page dimensions in device units.
	PageWidth  float64
	PageHeight float64

	// BaseMatrix is prepended to every transform; zero means identity.
	// Callers map user space to a different device space with it.
	BaseMatrix scene.Matrix

	// MaxNestingDepth caps form XObject recursion; 0 means the default.
	MaxNestingDepth int
}

// Interpreter replays one page's content stream against a graphics-state
// machine, emitting finalized draw commands to a Sink. It is single-use and
// single-threaded: interpret independent pages with independent Interpreters.
type Interpreter struct {
	sink scene.Sink
	res  *Resources
	opts Options

	gs    GraphicsState
	stack []GraphicsState
	pb    pathBuilder

	inText          bool
	pendingClip     bool
	pendingClipRule scene.FillRule

	depth       int
	diagnostics []Diagnostic
	unknownOps  map[string]bool
}

// New creates an interpreter drawing to sink with the given resources.
func New(sink scene.Sink, res *Resources, opts Options) *Interpreter {
	if opts.MaxNestingDepth == 0 {
		opts.MaxNestingDepth = DefaultMaxNestingDepth
	}
	base := opts.BaseMatrix
	if (base == scene.Matrix{}) {
		base = scene.Identity()
	}
	return &Interpreter{
		sink:       sink,
		res:        res,
		opts:       opts,
		gs:         newGraphicsState(base),
		unknownOps: make(map[string]bool),
	}
}

// Interpret parses and replays a decoded content stream, returning the
// recorded scene and the diagnostics collected along the way. A nil content
// stream is the one fatal condition: the decoder failed to supply anything
// to interpret.
func Interpret(content []byte, res *Resources, opts Options) (*scene.Scene, []Diagnostic, error) {
	if content == nil {
		return nil, nil, fmt.Errorf("interp: no content stream")
	}
	sc := scene.NewScene(opts.PageWidth, opts.PageHeight)
	in := New(sc, res, opts)
	ops, err := ParseOperations(content)
	if err != nil {
		// Truncated or corrupt tail: interpret what parsed, note the rest.
		in.diag(Diagnostic{Kind: FormatViolation, Detail: err.Error()})
	}
	in.Run(ops)
	return sc, in.Diagnostics(), nil
}

// Diagnostics returns the recovered conditions recorded so far.
func (in *Interpreter) Diagnostics() []Diagnostic {
	return in.diagnostics
}

// State returns the current graphics state. Useful to inspect the outcome
// of a replay; mutating it mid-run is not supported.
func (in *Interpreter) State() GraphicsState {
	return in.gs
}

func (in *Interpreter) diag(d Diagnostic) {
	in.diagnostics = append(in.diagnostics, d)
}

// operatorArity gives the minimum operand count per known operator.
// Operators missing from the table are unknown and skipped with a
// diagnostic. sc/scn/SC/SCN are variable-arity and validated at dispatch.
var operatorArity = map[string]int{
	// State stack and device state
	"q": 0, "Q": 0, "cm": 6, "w": 1, "J": 1, "j": 1, "M": 1, "d": 2,
	"ri": 1, "i": 1, "gs": 1,
	// Path construction
	"m": 2, "l": 2, "c": 6, "v": 4, "y": 4, "h": 0, "re": 4,
	// Path painting
	"S": 0, "s": 0, "f": 0, "F": 0, "f*": 0, "B": 0, "B*": 0, "b": 0,
	"b*": 0, "n": 0,
	// Clipping
	"W": 0, "W*": 0,
	// Color
	"g": 1, "G": 1, "rg": 3, "RG": 3, "k": 4, "K": 4, "cs": 1, "CS": 1,
	"sc": 0, "scn": 0, "SC": 0, "SCN": 0,
	// Text objects and state
	"BT": 0, "ET": 0, "Tc": 1, "Tw": 1, "Tz": 1, "TL": 1, "Tf": 2,
	"Tr": 1, "Ts": 1,
	// Text positioning and showing
	"Td": 2, "TD": 2, "Tm": 6, "T*": 0, "Tj": 1, "TJ": 1, "'": 1, "\"": 3,
	// XObjects and shading
	"Do": 1, "sh": 1, "BI": 0,
	// Marked content and compatibility
	"BMC": 1, "BDC": 2, "EMC": 0, "MP": 1, "DP": 2, "BX": 0, "EX": 0,
	// Type 3 glyph metrics; harmless outside Type 3 streams
	"d0": 2, "d1": 6,
}

// textObjectOps are valid only between BT and ET.
var textObjectOps = map[string]bool{
	"Td": true, "TD": true, "Tm": true, "T*": true,
	"Tj": true, "TJ": true, "'": true, "\"": true,
}

// pageBodyOps are valid only outside a text object.
var pageBodyOps = map[string]bool{
	"m": true, "l": true, "c": true, "v": true, "y": true, "h": true,
	"re": true, "S": true, "s": true, "f": true, "F": true, "f*": true,
	"B": true, "B*": true, "b": true, "b*": true, "n": true,
	"W": true, "W*": true, "Do": true, "sh": true, "BI": true,
}

// Run replays a parsed operator sequence. Recovered conditions are recorded
// as diagnostics, never returned: the interpreter always produces a
// best-effort scene. Unmatched saves at end of stream are discarded.
func (in *Interpreter) Run(ops []Operation) {
	for _, op := range ops {
		in.dispatch(op)
	}
}

// dispatch validates an operation against the arity table and dispatch
// state, then executes it.
func (in *Interpreter) dispatch(op Operation) {
	arity, known := operatorArity[op.Operator]
	if !known {
		if !in.unknownOps[op.Operator] {
			in.unknownOps[op.Operator] = true
			in.diag(Diagnostic{Kind: UnsupportedOperator, Op: op.Operator, Detail: "unknown operator"})
		}
		return
	}
	if len(op.Operands) < arity {
		in.diag(Diagnostic{
			Kind:   FormatViolation,
			Op:     op.Operator,
			Detail: fmt.Sprintf("want %d operands, got %d", arity, len(op.Operands)),
		})
		return
	}
	if in.inText && pageBodyOps[op.Operator] {
		in.diag(Diagnostic{Kind: FormatViolation, Op: op.Operator, Detail: "not allowed inside text object"})
		return
	}
	if !in.inText && textObjectOps[op.Operator] {
		in.diag(Diagnostic{Kind: FormatViolation, Op: op.Operator, Detail: "only allowed inside text object"})
		return
	}

	in.execute(op)
}

func (in *Interpreter) execute(op Operation) {
	args := op.Operands
	num := func(i int) float64 { return numberOr(args[i], 0) }

	switch op.Operator {
	case "q":
		in.save()
	case "Q":
		in.restore()
	case "cm":
		in.applyMatrix(scene.Matrix{
			A: num(0), B: num(1), C: num(2), D: num(3), E: num(4), F: num(5),
		})

	case "w":
		in.gs.Stroke.LineWidth = num(0)
	case "J":
		in.gs.Stroke.Cap = scene.LineCap(int(num(0)))
	case "j":
		in.gs.Stroke.Join = scene.LineJoin(int(num(0)))
	case "M":
		in.gs.Stroke.MiterLimit = num(0)
	case "d":
		in.setDash(op)
	case "ri", "i":
		// Rendering intent and flatness do not affect scene geometry
	case "gs":
		in.applyExtGState(op)

	case "m":
		in.pb.MoveTo(num(0), num(1))
	case "l":
		in.pb.LineTo(num(0), num(1))
	case "c":
		in.pb.CurveTo(num(0), num(1), num(2), num(3), num(4), num(5))
	case "v":
		in.pb.CurveToV(num(0), num(1), num(2), num(3))
	case "y":
		in.pb.CurveToY(num(0), num(1), num(2), num(3))
	case "h":
		in.pb.ClosePath()
	case "re":
		in.pb.Rect(num(0), num(1), num(2), num(3))

	case "S":
		in.paint(false, true, scene.NonZero)
	case "s":
		in.pb.ClosePath()
		in.paint(false, true, scene.NonZero)
	case "f", "F":
		in.paint(true, false, scene.NonZero)
	case "f*":
		in.paint(true, false, scene.EvenOdd)
	case "B":
		in.paint(true, true, scene.NonZero)
	case "B*":
		in.paint(true, true, scene.EvenOdd)
	case "b":
		in.pb.ClosePath()
		in.paint(true, true, scene.NonZero)
	case "b*":
		in.pb.ClosePath()
		in.paint(true, true, scene.EvenOdd)
	case "n":
		in.paint(false, false, scene.NonZero)

	case "W":
		in.pendingClip = true
		in.pendingClipRule = scene.NonZero
	case "W*":
		in.pendingClip = true
		in.pendingClipRule = scene.EvenOdd

	case "g":
		in.setColor(false, deviceGraySpace, args)
	case "G":
		in.setColor(true, deviceGraySpace, args)
	case "rg":
		in.setColor(false, deviceRGBSpace, args)
	case "RG":
		in.setColor(true, deviceRGBSpace, args)
	case "k":
		in.setColor(false, deviceCMYKSpace, args)
	case "K":
		in.setColor(true, deviceCMYKSpace, args)
	case "cs":
		in.setColorSpace(false, op)
	case "CS":
		in.setColorSpace(true, op)
	case "sc", "scn":
		in.setColor(false, in.gs.FillSpace, args)
	case "SC", "SCN":
		in.setColor(true, in.gs.StrokeSpace, args)

	case "BT":
		if in.inText {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "BT", Detail: "nested text object"})
			return
		}
		in.inText = true
		in.beginText()
	case "ET":
		if !in.inText {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "ET", Detail: "no open text object"})
			return
		}
		in.inText = false

	case "Tc":
		in.gs.Text.CharSpacing = num(0)
	case "Tw":
		in.gs.Text.WordSpacing = num(0)
	case "Tz":
		in.gs.Text.HorizScale = num(0) / 100
	case "TL":
		in.gs.Text.Leading = num(0)
	case "Tf":
		if name, ok := args[0].(Name); ok {
			in.setFont(string(name), num(1))
		} else {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "Tf", Detail: "font operand is not a name"})
		}
	case "Tr":
		in.gs.Text.RenderMode = int(num(0))
	case "Ts":
		in.gs.Text.Rise = num(0)

	case "Td":
		in.translateText(num(0), num(1))
	case "TD":
		in.gs.Text.Leading = -num(1)
		in.translateText(num(0), num(1))
	case "Tm":
		in.setTextMatrix(scene.Matrix{
			A: num(0), B: num(1), C: num(2), D: num(3), E: num(4), F: num(5),
		})
	case "T*":
		in.nextLine()
	case "Tj":
		if s, ok := args[0].(String); ok {
			in.showText("Tj", s.Value)
		} else {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "Tj", Detail: "operand is not a string"})
		}
	case "TJ":
		if arr, ok := args[0].(Array); ok {
			in.showTextAdjusted("TJ", arr)
		} else {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "TJ", Detail: "operand is not an array"})
		}
	case "'":
		in.nextLine()
		if s, ok := args[0].(String); ok {
			in.showText("'", s.Value)
		} else {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "'", Detail: "operand is not a string"})
		}
	case "\"":
		in.gs.Text.WordSpacing = num(0)
		in.gs.Text.CharSpacing = num(1)
		in.nextLine()
		if s, ok := args[2].(String); ok {
			in.showText("\"", s.Value)
		} else {
			in.diag(Diagnostic{Kind: FormatViolation, Op: "\"", Detail: "operand is not a string"})
		}

	case "Do":
		in.invokeXObject(op)
	case "sh":
		in.diag(Diagnostic{Kind: UnsupportedOperator, Op: "sh", Detail: "shading fill skipped"})
	case "BI":
		in.diag(Diagnostic{Kind: UnsupportedOperator, Op: "BI", Detail: "inline image skipped"})

	case "BMC", "BDC", "EMC", "MP", "DP", "BX", "EX", "d0", "d1":
		// Marked content, compatibility sections and Type 3 metrics carry
		// no drawing semantics here
	}
}

// paint finalizes the current path: it emits the requested paint command
// under the clip in effect *before* any pending clip update, then installs
// the narrowed clip for subsequent drawing.
func (in *Interpreter) paint(fill, stroke bool, rule scene.FillRule) {
	device := in.pb.Finalize(in.gs.CTM)

	if !device.IsEmpty() && (fill || stroke) {
		cmd := scene.Command{
			Path: device,
			Rule: rule,
			Clip: in.gs.Clip,
		}
		switch {
		case fill && stroke:
			cmd.Kind = scene.CmdFillAndStrokePath
		case fill:
			cmd.Kind = scene.CmdFillPath
		default:
			cmd.Kind = scene.CmdStrokePath
		}
		if fill {
			cmd.Fill = in.gs.FillPaint
			cmd.Fill.Alpha *= in.gs.FillAlpha
		}
		if stroke {
			cmd.Stroke = in.gs.StrokePaint
			cmd.Stroke.Alpha *= in.gs.StrokeAlpha
			cmd.Style = in.deviceStrokeStyle()
		}
		in.sink.Draw(cmd)
	}

	if in.pendingClip {
		in.pendingClip = false
		if !device.IsEmpty() {
			in.gs.Clip = in.gs.Clip.Intersect(device, in.pendingClipRule)
			in.sink.Draw(scene.Command{
				Kind: scene.CmdClipIntersect,
				Path: device,
				Rule: in.pendingClipRule,
				Clip: in.gs.Clip,
			})
		}
	}
}

// deviceStrokeStyle scales the stroke parameters from user space into
// device space using the CTM's average axis scale.
func (in *Interpreter) deviceStrokeStyle() scene.StrokeStyle {
	style := in.gs.Stroke
	sx, sy := in.gs.CTM.TransformDelta(1, 0)
	tx, ty := in.gs.CTM.TransformDelta(0, 1)
	scale := (math.Hypot(sx, sy) + math.Hypot(tx, ty)) / 2
	style.LineWidth *= scale
	if len(style.DashPattern) > 0 && scale != 1 {
		dash := make([]float64, len(style.DashPattern))
		for i, d := range style.DashPattern {
			dash[i] = d * scale
		}
		style.DashPattern = dash
		style.DashPhase *= scale
	}
	return style
}

// setDash installs a dash pattern from a d operator.
func (in *Interpreter) setDash(op Operation) {
	arr, ok := op.Operands[0].(Array)
	if !ok {
		in.diag(Diagnostic{Kind: FormatViolation, Op: "d", Detail: "dash array operand is not an array"})
		return
	}
	var pattern []float64
	for _, obj := range arr {
		if v, ok := numberValue(obj); ok {
			pattern = append(pattern, v)
		}
	}
	in.gs.Stroke.DashPattern = pattern
	in.gs.Stroke.DashPhase = numberOr(op.Operands[1], 0)
}

// setColor resolves component operands in the given space and installs the
// resulting paint. Alpha stays orthogonal; it is multiplied in at emission.
func (in *Interpreter) setColor(stroking bool, cs *ColorSpace, args []Object) {
	comps := make([]float64, 0, len(args))
	for _, a := range args {
		if v, ok := numberValue(a); ok {
			comps = append(comps, v)
		}
	}
	paint, d := ResolveColor(cs, comps)
	if d != nil {
		in.diag(*d)
	}
	if stroking {
		in.gs.StrokeSpace = cs
		in.gs.StrokePaint = paint
	} else {
		in.gs.FillSpace = cs
		in.gs.FillPaint = paint
	}
}

// setColorSpace selects a color space by name and resets the corresponding
// paint to that space's black.
func (in *Interpreter) setColorSpace(stroking bool, op Operation) {
	name, ok := op.Operands[0].(Name)
	if !ok {
		in.diag(Diagnostic{Kind: FormatViolation, Op: op.Operator, Detail: "color space operand is not a name"})
		return
	}
	cs := deviceColorSpace(string(name))
	if cs == nil {
		cs = in.res.ColorSpace(string(name))
	}
	if cs == nil {
		in.diag(Diagnostic{Kind: ResourceMissing, Op: op.Operator, Detail: "color space " + string(name)})
		return
	}
	// Selecting a space resets the paint to that space's initial color
	paint, _ := ResolveColor(cs, cs.defaultComponents())
	if stroking {
		in.gs.StrokeSpace = cs
		in.gs.StrokePaint = paint
	} else {
		in.gs.FillSpace = cs
		in.gs.FillPaint = paint
	}
}

// invokeXObject interprets a form XObject's content stream recursively.
// Save/restore semantics around the invocation are mandatory: the nested
// stream runs with its own stack, so its unbalanced saves or restores can
// never corrupt the invoking state.
func (in *Interpreter) invokeXObject(op Operation) {
	name, ok := op.Operands[0].(Name)
	if !ok {
		in.diag(Diagnostic{Kind: FormatViolation, Op: "Do", Detail: "XObject operand is not a name"})
		return
	}
	x := in.res.XObject(string(name))
	if x == nil {
		in.diag(Diagnostic{Kind: ResourceMissing, Op: "Do", Detail: "XObject " + string(name)})
		return
	}
	if x.Image {
		in.diag(Diagnostic{Kind: UnsupportedOperator, Op: "Do", Detail: "image XObject " + string(name) + " skipped"})
		return
	}
	if in.depth >= in.opts.MaxNestingDepth {
		in.diag(Diagnostic{
			Kind:   RecursionLimitExceeded,
			Op:     "Do",
			Detail: fmt.Sprintf("XObject %s beyond depth %d", name, in.opts.MaxNestingDepth),
		})
		return
	}

	res := x.Resources
	if res == nil {
		res = in.res
	}

	in.save()
	if (x.Matrix != scene.Matrix{}) {
		in.applyMatrix(x.Matrix)
	}

	sub := &Interpreter{
		sink:       in.sink,
		res:        res,
		opts:       in.opts,
		gs:         in.gs,
		depth:      in.depth + 1,
		unknownOps: in.unknownOps,
	}
	ops, err := ParseOperations(x.Content)
	if err != nil {
		sub.diag(Diagnostic{Kind: FormatViolation, Op: "Do", Detail: err.Error()})
	}
	sub.Run(ops)
	in.diagnostics = append(in.diagnostics, sub.diagnostics...)

	in.restore()
}

// applyExtGState merges a named ExtGState dictionary into the current state.
// Only the parameters the scene model carries are applied; everything else
// in the dictionary is ignored.
func (in *Interpreter) applyExtGState(op Operation) {
	name, ok := op.Operands[0].(Name)
	if !ok {
		in.diag(Diagnostic{Kind: FormatViolation, Op: "gs", Detail: "ExtGState operand is not a name"})
		return
	}
	eg := in.res.ExtGState(string(name))
	if eg == nil {
		in.diag(Diagnostic{Kind: ResourceMissing, Op: "gs", Detail: "ExtGState " + string(name)})
		return
	}
	if eg.FillAlpha != nil {
		in.gs.FillAlpha = clamp01(*eg.FillAlpha)
	}
	if eg.StrokeAlpha != nil {
		in.gs.StrokeAlpha = clamp01(*eg.StrokeAlpha)
	}
	if eg.LineWidth != nil {
		in.gs.Stroke.LineWidth = *eg.LineWidth
	}
}
