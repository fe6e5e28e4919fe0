package interp

import "github.com/novvoo/go-pdfscene/pkg/scene"

// pathBuilder accumulates the path under construction in user space.
// Finalization transforms every point through the CTM into an immutable
// device-space path and clears the accumulator: path state never persists
// across a paint operator.
type pathBuilder struct {
	done []scene.Subpath

	cur        scene.Subpath
	hasCurrent bool
	closedAt   int // len(cur.Segments) when the subpath was last closed, -1 otherwise

	current scene.Point // current point, user space
}

// MoveTo begins a new subpath at (x, y).
func (b *pathBuilder) MoveTo(x, y float64) {
	b.flush()
	b.cur = scene.Subpath{Start: scene.Point{X: x, Y: y}}
	b.hasCurrent = true
	b.closedAt = -1
	b.current = b.cur.Start
}

// LineTo appends a line segment. Segments before the first move are
// ignored, not an error.
func (b *pathBuilder) LineTo(x, y float64) {
	if !b.reopen() {
		return
	}
	p := scene.Point{X: x, Y: y}
	b.cur.Segments = append(b.cur.Segments, scene.Line(p))
	b.current = p
}

// CurveTo appends a cubic segment with two explicit control points.
func (b *pathBuilder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !b.reopen() {
		return
	}
	p := scene.Point{X: x3, Y: y3}
	b.cur.Segments = append(b.cur.Segments, scene.Cubic(
		scene.Point{X: x1, Y: y1},
		scene.Point{X: x2, Y: y2},
		p,
	))
	b.current = p
}

// CurveToV appends a cubic segment using the current point as the first
// control point (the v operator).
func (b *pathBuilder) CurveToV(x2, y2, x3, y3 float64) {
	if !b.reopen() {
		return
	}
	b.CurveTo(b.current.X, b.current.Y, x2, y2, x3, y3)
}

// CurveToY appends a cubic segment using the end point as the second
// control point (the y operator).
func (b *pathBuilder) CurveToY(x1, y1, x3, y3 float64) {
	if !b.reopen() {
		return
	}
	b.CurveTo(x1, y1, x3, y3, x3, y3)
}

// ClosePath closes the current subpath and moves the current point to its
// start. Closing an already-closed subpath is idempotent.
func (b *pathBuilder) ClosePath() {
	if !b.hasCurrent {
		return
	}
	if b.cur.Closed && b.closedAt == len(b.cur.Segments) {
		return
	}
	b.cur.Closed = true
	b.closedAt = len(b.cur.Segments)
	b.current = b.cur.Start
}

// Rect appends a complete rectangle subpath; the current point becomes the
// rectangle origin.
func (b *pathBuilder) Rect(x, y, w, h float64) {
	b.flush()
	b.cur = scene.Subpath{
		Start: scene.Point{X: x, Y: y},
		Segments: []scene.Segment{
			scene.Line(scene.Point{X: x + w, Y: y}),
			scene.Line(scene.Point{X: x + w, Y: y + h}),
			scene.Line(scene.Point{X: x, Y: y + h}),
		},
		Closed: true,
	}
	b.hasCurrent = true
	b.closedAt = len(b.cur.Segments)
	b.current = scene.Point{X: x, Y: y}
}

// reopen reports whether a segment may be appended. After a close, a new
// segment starts a fresh subpath at the closed subpath's start point.
func (b *pathBuilder) reopen() bool {
	if !b.hasCurrent {
		return false
	}
	if b.cur.Closed && b.closedAt == len(b.cur.Segments) {
		start := b.cur.Start
		b.flush()
		b.cur = scene.Subpath{Start: start}
		b.hasCurrent = true
		b.closedAt = -1
		b.current = start
	}
	return true
}

// flush moves the current subpath into the finished list.
func (b *pathBuilder) flush() {
	if b.hasCurrent && (len(b.cur.Segments) > 0 || b.cur.Closed) {
		b.done = append(b.done, b.cur)
	}
	b.cur = scene.Subpath{}
	b.hasCurrent = false
	b.closedAt = -1
}

// IsEmpty reports whether nothing drawable has been accumulated.
func (b *pathBuilder) IsEmpty() bool {
	return len(b.done) == 0 && (!b.hasCurrent || (len(b.cur.Segments) == 0 && !b.cur.Closed))
}

// Finalize transforms the accumulated path into device space and clears the
// accumulator.
func (b *pathBuilder) Finalize(ctm scene.Matrix) scene.Path {
	b.flush()
	p := scene.Path{Subpaths: b.done}.Transform(ctm)
	b.Clear()
	return p
}

// Clear resets the accumulator.
func (b *pathBuilder) Clear() {
	b.done = nil
	b.cur = scene.Subpath{}
	b.hasCurrent = false
	b.closedAt = -1
}
