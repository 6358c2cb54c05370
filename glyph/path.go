package glyph

import (
	"iter"
	"math"
	"slices"

	"honnef.co/go/glyphedit/geom"
)

// Path is an outline contour described by a list of nodes. Off-curve
// nodes between two on-curve nodes form the control points of the
// connecting segment: none for a line, one for a quadratic, two for a
// cubic. Longer runs are split at implied on-curve midpoints.
type Path struct {
	Nodes  []Node `json:"nodes"`
	Closed bool   `json:"closed,omitempty"`
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	return &Path{Nodes: slices.Clone(p.Nodes), Closed: p.Closed}
}

// Normalize rotates a closed path's node list so that it starts on an
// on-curve node. Open paths and paths with no on-curve nodes are left
// unchanged.
func (p *Path) Normalize() {
	if !p.Closed || len(p.Nodes) == 0 || p.Nodes[0].Type.OnCurve() {
		return
	}
	for i, n := range p.Nodes {
		if n.Type.OnCurve() {
			p.Nodes = append(slices.Clone(p.Nodes[i:]), p.Nodes[:i]...)
			return
		}
	}
}

// Prev returns the index of the node before i, wrapping around on
// closed paths. ok is false at the start of an open path.
func (p *Path) Prev(i int) (int, bool) {
	if len(p.Nodes) == 0 {
		return 0, false
	}
	if i > 0 {
		return i - 1, true
	}
	if p.Closed {
		return len(p.Nodes) - 1, true
	}
	return 0, false
}

// Next returns the index of the node after i, wrapping around on
// closed paths. ok is false at the end of an open path.
func (p *Path) Next(i int) (int, bool) {
	if len(p.Nodes) == 0 {
		return 0, false
	}
	if i < len(p.Nodes)-1 {
		return i + 1, true
	}
	if p.Closed {
		return 0, true
	}
	return 0, false
}

// Elements converts the node list to a Bézier path. The walk starts at
// the first on-curve node; a path with no on-curve nodes produces
// nothing. Trailing off-curve nodes of an open path are dropped.
func (p *Path) Elements() geom.BezPath {
	start := -1
	for i, n := range p.Nodes {
		if n.Type.OnCurve() {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	var out geom.BezPath
	out.MoveTo(p.Nodes[start].Pos())

	var run []geom.Point
	emit := func(end geom.Point) {
		switch len(run) {
		case 0:
			out.LineTo(end)
		case 1:
			out.QuadTo(run[0], end)
		case 2:
			out.CubicTo(run[0], run[1], end)
		default:
			for i := 0; i+1 < len(run); i++ {
				out.QuadTo(run[i], run[i].Midpoint(run[i+1]))
			}
			out.QuadTo(run[len(run)-1], end)
		}
		run = run[:0]
	}

	n := len(p.Nodes)
	steps := n - 1 - start
	if p.Closed {
		// Wrap all the way around, ending back at the start node.
		steps = n
	}
	for k := 1; k <= steps; k++ {
		node := p.Nodes[(start+k)%n]
		if node.Type.OnCurve() {
			emit(node.Pos())
		} else {
			run = append(run, node.Pos())
		}
	}
	if p.Closed {
		out.ClosePath()
	}
	return out
}

// Segments returns the path's outline as curve segments.
func (p *Path) Segments() iter.Seq[geom.Segment] {
	return p.Elements().Segments()
}

// Bounds returns the bounding box of the path's outline. It is the
// exact curve bound, not the control box.
func (p *Path) Bounds() geom.Rect {
	return p.Elements().BoundingBox()
}

// Winding returns the winding number of the path's outline around pt.
func (p *Path) Winding(pt geom.Point) int {
	return p.Elements().Winding(pt)
}

// Contains reports whether pt lies inside the path under the nonzero
// winding rule. Open paths contain nothing.
func (p *Path) Contains(pt geom.Point) bool {
	return p.Closed && p.Winding(pt) != 0
}

// Nearest returns the squared distance from pt to the closest point on
// the path's outline. ok is false if the path has no segments.
func (p *Path) Nearest(pt geom.Point) (distSq float64, ok bool) {
	best := math.Inf(1)
	for seg := range p.Segments() {
		d, _ := seg.Nearest(pt, geom.DefaultAccuracy)
		if d < best {
			best = d
		}
		ok = true
	}
	if !ok {
		return 0, false
	}
	return best, true
}

// Transform returns a copy of the path with aff applied to every node.
func (p *Path) Transform(aff geom.Affine) *Path {
	if p == nil {
		return nil
	}
	out := &Path{Nodes: make([]Node, len(p.Nodes)), Closed: p.Closed}
	for i, n := range p.Nodes {
		out.Nodes[i] = n.Transform(aff)
	}
	return out
}
