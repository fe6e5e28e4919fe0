package scene

import "image/color"

// Paint is a resolved flat color. Components are in [0, 1]; Alpha carries
// the combined constant alpha in effect when the paint was emitted.
type Paint struct {
	R, G, B float64
	Alpha   float64
}

// Black returns an opaque black paint.
func Black() Paint {
	return Paint{0, 0, 0, 1}
}

// RGBA converts the paint to 8-bit non-premultiplied RGBA.
func (p Paint) RGBA() color.RGBA {
	return color.RGBA{
		R: to8(p.R),
		G: to8(p.G),
		B: to8(p.B),
		A: to8(p.Alpha),
	}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// FillRule determines path interior for fills and clips.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// LineCap styles for stroke endpoints.
type LineCap int

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

// LineJoin styles for stroke corners.
type LineJoin int

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

// StrokeStyle carries stroke parameters. LineWidth is in device space units
// once a command has been emitted.
type StrokeStyle struct {
	LineWidth   float64
	Cap         LineCap
	Join        LineJoin
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64
}
