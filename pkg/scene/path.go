package scene

// SegmentKind distinguishes path segment types.
type SegmentKind int

const (
	SegLine SegmentKind = iota
	SegCubic
)

// Segment is a single path segment. A line segment uses only P3 as its end
// point; a cubic segment uses P1 and P2 as control points and P3 as the end
// point. Control points are exact — curve flattening is the consumer's job.
type Segment struct {
	Kind   SegmentKind
	P1, P2 Point
	P3     Point
}

// Line returns a line segment ending at p.
func Line(p Point) Segment {
	return Segment{Kind: SegLine, P3: p}
}

// Cubic returns a cubic curve segment with control points c1, c2 ending at p.
func Cubic(c1, c2, p Point) Segment {
	return Segment{Kind: SegCubic, P1: c1, P2: c2, P3: p}
}

// Subpath is a contiguous run of segments starting at Start.
type Subpath struct {
	Start    Point
	Segments []Segment
	Closed   bool
}

// Path is an ordered sequence of subpaths.
type Path struct {
	Subpaths []Subpath
}

// IsEmpty reports whether the path contains no drawable subpaths.
func (p Path) IsEmpty() bool {
	for _, sp := range p.Subpaths {
		if len(sp.Segments) > 0 || sp.Closed {
			return false
		}
	}
	return true
}

// Transform returns a copy of the path with every point mapped through m.
func (p Path) Transform(m Matrix) Path {
	out := Path{Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		segs := make([]Segment, len(sp.Segments))
		for j, seg := range sp.Segments {
			segs[j] = Segment{
				Kind: seg.Kind,
				P1:   m.TransformPoint(seg.P1),
				P2:   m.TransformPoint(seg.P2),
				P3:   m.TransformPoint(seg.P3),
			}
		}
		out.Subpaths[i] = Subpath{
			Start:    m.TransformPoint(sp.Start),
			Segments: segs,
			Closed:   sp.Closed,
		}
	}
	return out
}
