package glyphedit

import (
	"fmt"

	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// HitKind identifies what a hit-test found.
type HitKind int

const (
	HitNode HitKind = iota + 1
	HitAnchor
	HitComponent
	HitComponentOrigin
)

func (k HitKind) String() string {
	switch k {
	case HitNode:
		return "node"
	case HitAnchor:
		return "anchor"
	case HitComponent:
		return "component"
	case HitComponentOrigin:
		return "origin"
	default:
		return fmt.Sprintf("HitKind(%d)", int(k))
	}
}

// Hit names one item in a layer: a node in a path shape, an anchor, a
// component body, or a component's origin marker. Unused indices are
// -1.
type Hit struct {
	Kind   HitKind
	Shape  int
	Node   int
	Anchor int
}

func (h Hit) String() string {
	switch h.Kind {
	case HitNode:
		return fmt.Sprintf("node %d/%d", h.Shape, h.Node)
	case HitAnchor:
		return fmt.Sprintf("anchor %d", h.Anchor)
	case HitComponent:
		return fmt.Sprintf("component %d", h.Shape)
	case HitComponentOrigin:
		return fmt.Sprintf("origin %d", h.Shape)
	default:
		return h.Kind.String()
	}
}

// HitOptions carries the pick radii in screen pixels. HitTest divides
// them by the view scale so targets keep a constant clickable size on
// screen regardless of zoom.
type HitOptions struct {
	NodeRadius   float64
	OriginRadius float64
	StrokeRadius float64
}

// DefaultHitOptions returns the package default radii.
func DefaultHitOptions() HitOptions {
	return HitOptions{
		NodeRadius:   DefaultHitRadius,
		OriginRadius: DefaultOriginRadius,
		StrokeRadius: DefaultStrokeRadius,
	}
}

// HitTest finds the topmost item of layer under cursor, which is given
// in the layer's local coordinates. scale is the number of screen
// pixels covered by one local unit.
//
// Priority runs component origin markers, then component bodies, then
// anchors, then nodes. Within each class candidates are scanned
// back-to-front so the visually topmost wins. Component bodies use a
// single nonzero-winding containment test over the component's
// flattened outline, so counters inside nested components stay
// excluded; open contours fall back to a stroke-proximity test.
func HitTest(layer *glyph.Layer, cursor geom.Point, scale float64, opt HitOptions) (Hit, bool) {
	if layer == nil || scale <= 0 {
		return Hit{}, false
	}

	originSq := sq(opt.OriginRadius / scale)
	for i := len(layer.Shapes) - 1; i >= 0; i-- {
		sh := layer.Shapes[i]
		if sh.Kind != glyph.ComponentKind {
			continue
		}
		origin := geom.Pt(0, 0).Transform(sh.Component.Transform)
		if cursor.DistanceSquared(origin) <= originSq {
			return Hit{Kind: HitComponentOrigin, Shape: i, Node: -1, Anchor: -1}, true
		}
	}

	strokeSq := sq(opt.StrokeRadius / scale)
	for i := len(layer.Shapes) - 1; i >= 0; i-- {
		sh := layer.Shapes[i]
		if sh.Kind != glyph.ComponentKind {
			continue
		}
		if componentContains(sh.Component, cursor, strokeSq) {
			return Hit{Kind: HitComponent, Shape: i, Node: -1, Anchor: -1}, true
		}
	}

	nodeSq := sq(opt.NodeRadius / scale)
	for i := len(layer.Anchors) - 1; i >= 0; i-- {
		if cursor.DistanceSquared(layer.Anchors[i].Pos()) <= nodeSq {
			return Hit{Kind: HitAnchor, Shape: -1, Node: -1, Anchor: i}, true
		}
	}

	for i := len(layer.Shapes) - 1; i >= 0; i-- {
		sh := layer.Shapes[i]
		if sh.Kind != glyph.PathKind {
			continue
		}
		for j := len(sh.Path.Nodes) - 1; j >= 0; j-- {
			if cursor.DistanceSquared(sh.Path.Nodes[j].Pos()) <= nodeSq {
				return Hit{Kind: HitNode, Shape: i, Node: j, Anchor: -1}, true
			}
		}
	}

	return Hit{}, false
}

// componentContains reports whether pt lies inside the component's
// flattened outline. Closed contours contribute to one summed winding
// number; open contours hit when pt is within strokeSq of the stroke.
func componentContains(c *glyph.Component, pt geom.Point, strokeSq float64) bool {
	winding := 0
	for _, p := range c.Flatten() {
		if p.Closed {
			winding += p.Winding(pt)
		} else if d, ok := p.Nearest(pt); ok && d <= strokeSq {
			return true
		}
	}
	return winding != 0
}

// NodeRef names one node by shape and node index.
type NodeRef struct {
	Shape int
	Node  int
}

// NodesInRect collects every path node of layer inside r, in shape
// then node order.
func NodesInRect(layer *glyph.Layer, r geom.Rect) []NodeRef {
	var refs []NodeRef
	if layer == nil {
		return refs
	}
	r = r.Abs()
	for i, sh := range layer.Shapes {
		if sh.Kind != glyph.PathKind {
			continue
		}
		for j, n := range sh.Path.Nodes {
			if r.Contains(n.Pos()) {
				refs = append(refs, NodeRef{Shape: i, Node: j})
			}
		}
	}
	return refs
}

// AnchorsInRect collects the indices of layer's anchors inside r.
func AnchorsInRect(layer *glyph.Layer, r geom.Rect) []int {
	var idx []int
	if layer == nil {
		return idx
	}
	r = r.Abs()
	for i, a := range layer.Anchors {
		if r.Contains(a.Pos()) {
			idx = append(idx, i)
		}
	}
	return idx
}

func sq(v float64) float64 { return v * v }
