package interp

import (
	"fmt"

	"github.com/novvoo/go-pdfscene/pkg/scene"
)

// ColorSpaceKind identifies a color space family.
type ColorSpaceKind int

const (
	DeviceGray ColorSpaceKind = iota
	DeviceRGB
	DeviceCMYK
	Indexed
	ICCBased
	Separation
	PatternSpace
)

var colorSpaceKindNames = [...]string{
	DeviceGray:   "DeviceGray",
	DeviceRGB:    "DeviceRGB",
	DeviceCMYK:   "DeviceCMYK",
	Indexed:      "Indexed",
	ICCBased:     "ICCBased",
	Separation:   "Separation",
	PatternSpace: "Pattern",
}

func (k ColorSpaceKind) String() string {
	if k >= 0 && int(k) < len(colorSpaceKindNames) {
		return colorSpaceKindNames[k]
	}
	return "Unknown"
}

// ColorSpace describes a resolved color space definition.
type ColorSpace struct {
	Kind ColorSpaceKind

	// ICCBased: number of components and optional alternate space.
	Components int
	Alternate  *ColorSpace

	// Indexed: base space, highest valid index and the palette lookup
	// table (Components-of-base bytes per entry).
	Base    *ColorSpace
	HiVal   int
	Palette []byte
}

// Device color space singletons. Content streams reference these by the
// standard names without a resource dictionary entry.
var (
	deviceGraySpace = &ColorSpace{Kind: DeviceGray, Components: 1}
	deviceRGBSpace  = &ColorSpace{Kind: DeviceRGB, Components: 3}
	deviceCMYKSpace = &ColorSpace{Kind: DeviceCMYK, Components: 4}
	patternSpace    = &ColorSpace{Kind: PatternSpace}
)

// deviceColorSpace maps the standard color space names.
func deviceColorSpace(name string) *ColorSpace {
	switch name {
	case "DeviceGray", "CalGray", "G":
		return deviceGraySpace
	case "DeviceRGB", "CalRGB", "RGB":
		return deviceRGBSpace
	case "DeviceCMYK", "CMYK":
		return deviceCMYKSpace
	case "Pattern":
		return patternSpace
	}
	return nil
}

// defaultComponents returns the black paint component values for a space.
func (cs *ColorSpace) defaultComponents() []float64 {
	switch cs.Kind {
	case DeviceRGB:
		return []float64{0, 0, 0}
	case DeviceCMYK:
		return []float64{0, 0, 0, 1}
	default:
		return []float64{0}
	}
}

// ResolveColor maps component values in a color space to an RGBA paint.
// The returned paint always has Alpha 1; constant alpha is multiplied in at
// emission time. The second return value is a non-nil diagnostic when the
// resolution had to clamp or approximate.
func ResolveColor(cs *ColorSpace, comps []float64) (scene.Paint, *Diagnostic) {
	if cs == nil {
		cs = deviceGraySpace
	}
	switch cs.Kind {
	case DeviceGray:
		g := clamp01(at(comps, 0))
		return scene.Paint{R: g, G: g, B: g, Alpha: 1}, nil

	case DeviceRGB:
		return scene.Paint{
			R:     clamp01(at(comps, 0)),
			G:     clamp01(at(comps, 1)),
			B:     clamp01(at(comps, 2)),
			Alpha: 1,
		}, nil

	case DeviceCMYK:
		return cmykToRGB(at(comps, 0), at(comps, 1), at(comps, 2), at(comps, 3)), nil

	case Indexed:
		return resolveIndexed(cs, comps)

	case ICCBased:
		// ICC profiles are treated as their alternate space; without one,
		// the component count decides the device space.
		alt := cs.Alternate
		if alt == nil {
			switch cs.Components {
			case 4:
				alt = deviceCMYKSpace
			case 3:
				alt = deviceRGBSpace
			default:
				alt = deviceGraySpace
			}
		}
		return ResolveColor(alt, comps)

	case Separation:
		// Without the tint transform function, the tint value is treated
		// as ink coverage on a gray ramp.
		t := clamp01(at(comps, 0))
		g := 1 - t
		return scene.Paint{R: g, G: g, B: g, Alpha: 1}, &Diagnostic{
			Kind:   UnsupportedOperator,
			Detail: "separation tint transform approximated as gray ramp",
		}

	case PatternSpace:
		// Patterns and shadings are out of scope; a flat black paint keeps
		// later drawing geometry intact.
		return scene.Black(), &Diagnostic{
			Kind:   UnsupportedOperator,
			Detail: "pattern paint approximated as flat color",
		}
	}
	return scene.Black(), &Diagnostic{
		Kind:   UnsupportedOperator,
		Detail: fmt.Sprintf("color space %s", cs.Kind),
	}
}

// resolveIndexed looks up a palette entry by integer index. Out-of-range
// indices clamp to the palette bounds rather than aborting the page.
func resolveIndexed(cs *ColorSpace, comps []float64) (scene.Paint, *Diagnostic) {
	base := cs.Base
	if base == nil {
		base = deviceRGBSpace
	}
	n := base.Components
	if n == 0 {
		n = 3
	}

	idx := int(at(comps, 0))
	var diag *Diagnostic
	hi := cs.HiVal
	if max := len(cs.Palette)/n - 1; hi == 0 || hi > max {
		hi = max
	}
	if idx < 0 || idx > hi {
		diag = &Diagnostic{
			Kind:   InvalidColorIndex,
			Detail: fmt.Sprintf("index %d outside palette [0, %d]", idx, hi),
		}
		if idx < 0 {
			idx = 0
		} else {
			idx = hi
		}
	}
	if idx < 0 || (idx+1)*n > len(cs.Palette) {
		// Palette too small for any entry; opaque black
		return scene.Black(), &Diagnostic{
			Kind:   InvalidColorIndex,
			Detail: fmt.Sprintf("palette of %d bytes too small for %d-component base", len(cs.Palette), n),
		}
	}

	entry := make([]float64, n)
	for i := 0; i < n; i++ {
		entry[i] = float64(cs.Palette[idx*n+i]) / 255
	}
	paint, baseDiag := ResolveColor(base, entry)
	if diag == nil {
		diag = baseDiag
	}
	return paint, diag
}

// cmykToRGB performs the standard subtractive conversion.
func cmykToRGB(c, m, y, k float64) scene.Paint {
	return scene.Paint{
		R:     1 - clamp01(c+k),
		G:     1 - clamp01(m+k),
		B:     1 - clamp01(y+k),
		Alpha: 1,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func at(comps []float64, i int) float64 {
	if i < len(comps) {
		return comps[i]
	}
	return 0
}
