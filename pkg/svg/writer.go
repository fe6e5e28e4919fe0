// Package svg serializes a recorded scene to Scalable Vector Graphics. The
// output preserves exact curve geometry and clip structure; rasterization
// decisions are left to the SVG consumer.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/novvoo/go-pdfscene/pkg/scene"
)

// Write serializes a scene as a standalone SVG document. Page space is
// y-up with the origin at the bottom-left; the document root flips it into
// SVG's y-down coordinate system so path data passes through unchanged.
func Write(dst io.Writer, sc *scene.Scene) error {
	w := &writer{
		bw:      bufio.NewWriter(dst),
		clipIDs: make(map[*scene.ClipRegion]string),
	}

	fmt.Fprintf(w.bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(w.bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		num(sc.Width), num(sc.Height), num(sc.Width), num(sc.Height))
	fmt.Fprintf(w.bw, "<g transform=\"matrix(1 0 0 -1 0 %s)\">\n", num(sc.Height))

	for _, cmd := range sc.Commands {
		w.command(cmd)
	}

	fmt.Fprintf(w.bw, "</g>\n</svg>\n")
	return w.bw.Flush()
}

type writer struct {
	bw      *bufio.Writer
	clipIDs map[*scene.ClipRegion]string
	nextID  int
}

func (w *writer) command(cmd scene.Command) {
	switch cmd.Kind {
	case scene.CmdFillPath:
		w.path(cmd, true, false)
	case scene.CmdStrokePath:
		w.path(cmd, false, true)
	case scene.CmdFillAndStrokePath:
		w.path(cmd, true, true)
	case scene.CmdPaintGlyph:
		w.glyph(cmd)
	case scene.CmdClipIntersect:
		// Clip state travels on each command's Clip field; the intersect
		// marker itself draws nothing
	}
}

func (w *writer) path(cmd scene.Command, fill, stroke bool) {
	var attrs []string
	attrs = append(attrs, fmt.Sprintf("d=%q", pathData(cmd.Path)))

	if fill {
		attrs = append(attrs, fmt.Sprintf("fill=%q", rgb(cmd.Fill)))
		if cmd.Fill.Alpha < 1 {
			attrs = append(attrs, fmt.Sprintf("fill-opacity=%q", num(cmd.Fill.Alpha)))
		}
		if cmd.Rule == scene.EvenOdd {
			attrs = append(attrs, `fill-rule="evenodd"`)
		}
	} else {
		attrs = append(attrs, `fill="none"`)
	}

	if stroke {
		attrs = append(attrs, strokeAttrs(cmd)...)
	}

	if id := w.clipID(cmd.Clip); id != "" {
		attrs = append(attrs, fmt.Sprintf("clip-path=\"url(#%s)\"", id))
	}

	fmt.Fprintf(w.bw, "<path %s/>\n", strings.Join(attrs, " "))
}

func strokeAttrs(cmd scene.Command) []string {
	st := cmd.Style
	attrs := []string{
		fmt.Sprintf("stroke=%q", rgb(cmd.Stroke)),
		fmt.Sprintf("stroke-width=%q", num(st.LineWidth)),
	}
	if cmd.Stroke.Alpha < 1 {
		attrs = append(attrs, fmt.Sprintf("stroke-opacity=%q", num(cmd.Stroke.Alpha)))
	}
	switch st.Cap {
	case scene.RoundCap:
		attrs = append(attrs, `stroke-linecap="round"`)
	case scene.SquareCap:
		attrs = append(attrs, `stroke-linecap="square"`)
	}
	switch st.Join {
	case scene.RoundJoin:
		attrs = append(attrs, `stroke-linejoin="round"`)
	case scene.BevelJoin:
		attrs = append(attrs, `stroke-linejoin="bevel"`)
	}
	if st.MiterLimit != 0 && st.MiterLimit != 4 {
		attrs = append(attrs, fmt.Sprintf("stroke-miterlimit=%q", num(st.MiterLimit)))
	}
	if len(st.DashPattern) > 0 {
		parts := make([]string, len(st.DashPattern))
		for i, d := range st.DashPattern {
			parts[i] = num(d)
		}
		attrs = append(attrs, fmt.Sprintf("stroke-dasharray=%q", strings.Join(parts, " ")))
		if st.DashPhase != 0 {
			attrs = append(attrs, fmt.Sprintf("stroke-dashoffset=%q", num(st.DashPhase)))
		}
	}
	return attrs
}

// glyph emits a <text> element placed by the glyph transform. The transform
// maps a y-up unit em square; scaling y by -1 inside it restores SVG's
// y-down text metrics, so the glyph renders upright at font-size 1.
func (w *writer) glyph(cmd scene.Command) {
	g := cmd.Glyph
	if g == nil || g.Rune == 0 {
		return
	}
	m := scene.Scaling(1, -1).Multiply(g.Transform)
	var attrs []string
	attrs = append(attrs, fmt.Sprintf("transform=\"matrix(%s %s %s %s %s %s)\"",
		num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F)))
	attrs = append(attrs, `font-size="1"`)
	if g.FontName != "" {
		attrs = append(attrs, fmt.Sprintf("font-family=%q", escapeXML(g.FontName)))
	}
	switch g.Mode {
	case 1, 5:
		attrs = append(attrs, `fill="none"`, fmt.Sprintf("stroke=%q", rgb(cmd.Fill)), `stroke-width="0.03"`)
	default:
		attrs = append(attrs, fmt.Sprintf("fill=%q", rgb(cmd.Fill)))
	}
	if cmd.Fill.Alpha < 1 {
		attrs = append(attrs, fmt.Sprintf("fill-opacity=%q", num(cmd.Fill.Alpha)))
	}
	if id := w.clipID(cmd.Clip); id != "" {
		attrs = append(attrs, fmt.Sprintf("clip-path=\"url(#%s)\"", id))
	}
	fmt.Fprintf(w.bw, "<text %s>%s</text>\n", strings.Join(attrs, " "), escapeXML(string(g.Rune)))
}

// clipID returns the SVG id for a clip region, emitting its definition on
// first use. Regions with more than one element become a chain of clipPath
// definitions, each clipped by the previous, which SVG composes as an
// intersection.
func (w *writer) clipID(c *scene.ClipRegion) string {
	if c.Unbounded() {
		return ""
	}
	if id, ok := w.clipIDs[c]; ok {
		return id
	}
	var prev string
	var id string
	for _, elem := range c.Elements() {
		w.nextID++
		id = "clip" + strconv.Itoa(w.nextID)
		ref := ""
		if prev != "" {
			ref = fmt.Sprintf(" clip-path=\"url(#%s)\"", prev)
		}
		rule := ""
		if elem.Rule == scene.EvenOdd {
			rule = ` clip-rule="evenodd"`
		}
		fmt.Fprintf(w.bw, "<clipPath id=%q%s><path d=%q%s/></clipPath>\n",
			id, ref, pathData(elem.Path), rule)
		prev = id
	}
	w.clipIDs[c] = id
	return id
}

// pathData renders a path as SVG path data.
func pathData(p scene.Path) string {
	var b strings.Builder
	for _, sp := range p.Subpaths {
		if len(sp.Segments) == 0 && !sp.Closed {
			continue
		}
		fmt.Fprintf(&b, "M%s %s", num(sp.Start.X), num(sp.Start.Y))
		for _, seg := range sp.Segments {
			switch seg.Kind {
			case scene.SegLine:
				fmt.Fprintf(&b, "L%s %s", num(seg.P3.X), num(seg.P3.Y))
			case scene.SegCubic:
				fmt.Fprintf(&b, "C%s %s %s %s %s %s",
					num(seg.P1.X), num(seg.P1.Y),
					num(seg.P2.X), num(seg.P2.Y),
					num(seg.P3.X), num(seg.P3.Y))
			}
		}
		if sp.Closed {
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func rgb(p scene.Paint) string {
	c := p.RGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
