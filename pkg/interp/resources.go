package interp

import (
	"github.com/novvoo/go-pdfscene/pkg/font"
	"github.com/novvoo/go-pdfscene/pkg/scene"
)

// Resources holds the page resource dictionaries, already resolved and
// decoded by the upstream object decoder. The interpreter only reads them;
// they may be shared across concurrently interpreted pages.
type Resources struct {
	Fonts       map[string]font.Font
	ColorSpaces map[string]*ColorSpace
	XObjects    map[string]*FormXObject
	ExtGStates  map[string]*ExtGState
}

// Font looks up a font by resource name.
func (r *Resources) Font(name string) font.Font {
	if r == nil {
		return nil
	}
	return r.Fonts[name]
}

// ColorSpace looks up a color space by resource name.
func (r *Resources) ColorSpace(name string) *ColorSpace {
	if r == nil {
		return nil
	}
	return r.ColorSpaces[name]
}

// XObject looks up a form XObject by resource name.
func (r *Resources) XObject(name string) *FormXObject {
	if r == nil {
		return nil
	}
	return r.XObjects[name]
}

// ExtGState looks up a graphics state parameter dictionary by resource name.
func (r *Resources) ExtGState(name string) *ExtGState {
	if r == nil {
		return nil
	}
	return r.ExtGStates[name]
}

// FormXObject is a reusable content stream invoked by the Do operator. A
// zero Matrix means identity. Resources, when nil, fall back to the
// invoking page's resources. Image XObjects are registered with Image set
// so Do can report them as unsupported instead of missing.
type FormXObject struct {
	Content   []byte
	Matrix    scene.Matrix
	Resources *Resources
	Image     bool
}

// ExtGState carries the subset of graphics state parameter entries the
// interpreter honors. Nil fields are absent from the dictionary.
type ExtGState struct {
	FillAlpha   *float64 // /ca
	StrokeAlpha *float64 // /CA
	LineWidth   *float64 // /LW
}
