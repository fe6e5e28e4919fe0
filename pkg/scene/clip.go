package scene

// ClipElement is one device-space path contributing to a clip region.
type ClipElement struct {
	Path Path
	Rule FillRule
}

// ClipRegion is the lazily evaluated intersection of a sequence of clip
// paths. A nil *ClipRegion is the unbounded region matching everything.
//
// Regions are immutable and shared by reference across graphics states;
// Intersect materializes a new region rather than mutating the receiver, so
// a save/restore round trip never observes a narrowed clip. Actual geometric
// intersection is deferred to the scene consumer.
type ClipRegion struct {
	elems []ClipElement
}

// Intersect returns the region narrowed by path under the given fill rule.
// Intersecting with an empty path returns the receiver unchanged.
func (c *ClipRegion) Intersect(path Path, rule FillRule) *ClipRegion {
	if path.IsEmpty() {
		return c
	}
	var elems []ClipElement
	if c != nil {
		elems = make([]ClipElement, len(c.elems), len(c.elems)+1)
		copy(elems, c.elems)
	}
	return &ClipRegion{elems: append(elems, ClipElement{Path: path, Rule: rule})}
}

// Unbounded reports whether the region matches everything.
func (c *ClipRegion) Unbounded() bool {
	return c == nil || len(c.elems) == 0
}

// Elements returns the clip paths whose intersection defines the region, in
// encounter order. Callers must not modify the returned slice.
func (c *ClipRegion) Elements() []ClipElement {
	if c == nil {
		return nil
	}
	return c.elems
}

// EqualRegion reports whether two clip regions describe the same geometric
// region. Intersection is commutative, so element order is ignored.
func EqualRegion(a, b *ClipRegion) bool {
	ae, be := a.Elements(), b.Elements()
	if len(ae) != len(be) {
		return false
	}
	used := make([]bool, len(be))
outer:
	for _, e := range ae {
		for i, o := range be {
			if !used[i] && clipElementEqual(e, o) {
				used[i] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func clipElementEqual(a, b ClipElement) bool {
	if a.Rule != b.Rule || len(a.Path.Subpaths) != len(b.Path.Subpaths) {
		return false
	}
	for i, sp := range a.Path.Subpaths {
		op := b.Path.Subpaths[i]
		if sp.Start != op.Start || sp.Closed != op.Closed || len(sp.Segments) != len(op.Segments) {
			return false
		}
		for j, seg := range sp.Segments {
			if seg != op.Segments[j] {
				return false
			}
		}
	}
	return true
}
