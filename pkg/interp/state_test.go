package interp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/novvoo/go-pdfscene/pkg/scene"
)

var stateCmpOpts = cmp.AllowUnexported(scene.ClipRegion{})

func TestDefaultGraphicsState(t *testing.T) {
	gs := newGraphicsState(scene.Identity())

	if !gs.CTM.IsIdentity() {
		t.Errorf("initial CTM = %+v, want identity", gs.CTM)
	}
	if gs.FillPaint != scene.Black() || gs.StrokePaint != scene.Black() {
		t.Errorf("initial paints not black: %+v / %+v", gs.FillPaint, gs.StrokePaint)
	}
	if gs.FillAlpha != 1 || gs.StrokeAlpha != 1 {
		t.Errorf("initial alphas = (%v, %v), want (1, 1)", gs.FillAlpha, gs.StrokeAlpha)
	}
	if gs.Stroke.LineWidth != 1 || gs.Stroke.MiterLimit != 10 {
		t.Errorf("initial stroke = %+v", gs.Stroke)
	}
	if gs.Stroke.Cap != scene.ButtCap || gs.Stroke.Join != scene.MiterJoin {
		t.Errorf("initial cap/join = (%v, %v)", gs.Stroke.Cap, gs.Stroke.Join)
	}
	if !gs.Clip.Unbounded() {
		t.Errorf("initial clip must be unbounded")
	}
	if gs.Text.HorizScale != 1 {
		t.Errorf("initial horizontal scaling = %v, want 1", gs.Text.HorizScale)
	}
}

func TestSaveRestoreSnapshotsEverything(t *testing.T) {
	in := New(scene.NewScene(100, 100), textResources(500), Options{})
	saved := in.State()

	ops, _ := ParseOperations([]byte(
		"q 2 0 0 2 0 0 cm 0.5 g 1 0 0 RG 3 w 1 J 2 j 5 M [1 2] 0 d " +
			"BT /F1 9 Tf 1 Tc 2 Tw 80 Tz 11 TL 3 Ts 1 Tr ET Q"))
	in.Run(ops)

	if diff := cmp.Diff(saved, in.State(), stateCmpOpts); diff != "" {
		t.Errorf("restore did not recover the saved state (-want +got):\n%s", diff)
	}
}

func TestSaveRestoreNesting(t *testing.T) {
	in := New(scene.NewScene(100, 100), nil, Options{})
	ops, _ := ParseOperations([]byte("q 2 0 0 2 0 0 cm q 3 0 0 3 0 0 cm Q"))
	in.Run(ops)

	// Inner restore recovers the once-scaled CTM
	if got := in.State().CTM.A; got != 2 {
		t.Errorf("CTM scale after inner Q = %v, want 2", got)
	}
	if n := len(in.stack); n != 1 {
		t.Errorf("stack depth = %d, want 1", n)
	}
}

func TestClipSharedAcrossSnapshotsImmutably(t *testing.T) {
	in := New(scene.NewScene(100, 100), nil, Options{})
	ops, _ := ParseOperations([]byte("0 0 50 50 re W n q 0 0 20 20 re W n Q"))
	in.Run(ops)

	// The outer clip (one element) survives; the inner narrowing (two
	// elements) must not have mutated it.
	if n := len(in.State().Clip.Elements()); n != 1 {
		t.Errorf("restored clip has %d elements, want 1", n)
	}
}

func TestApplyMatrixPrepends(t *testing.T) {
	in := New(scene.NewScene(100, 100), nil, Options{})
	ops, _ := ParseOperations([]byte("1 0 0 1 10 0 cm 2 0 0 2 0 0 cm"))
	in.Run(ops)

	// The later scale applies before the earlier translation:
	// (0,0) -> scale -> (0,0) -> translate -> (10,0)
	x, y := in.State().CTM.Transform(0, 0)
	if x != 10 || y != 0 {
		t.Errorf("origin maps to (%v, %v), want (10, 0)", x, y)
	}
	x, y = in.State().CTM.Transform(1, 0)
	if x != 12 || y != 0 {
		t.Errorf("(1,0) maps to (%v, %v), want (12, 0)", x, y)
	}
}

func TestBaseMatrixApplied(t *testing.T) {
	sc := scene.NewScene(100, 100)
	in := New(sc, nil, Options{BaseMatrix: scene.Scaling(2, 2)})
	ops, _ := ParseOperations([]byte("0 0 10 10 re f"))
	in.Run(ops)

	if got, want := sc.Commands[0].Path.Subpaths[0].Segments[1].P3, (scene.Point{X: 20, Y: 20}); got != want {
		t.Errorf("rect corner under base matrix = %v, want %v", got, want)
	}
}
