package glyphedit

import (
	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// ApplyDelta moves the selected items of layer by delta, in the
// layer's local units.
//
// Anchors translate directly. Components translate the translation
// part of their transform, leaving scale and rotation alone. For
// nodes, a selected on-curve node carries its adjacent off-curve
// handles along with it, and a selected off-curve handle next to a
// smooth on-curve node mirrors the opposite handle through that node
// so the two stay collinear at equal distance. Mirroring is skipped
// when the opposite handle moved itself, so dragging both handles of a
// smooth node translates them rigidly.
//
// Selection entries that no longer name a valid item are skipped.
func ApplyDelta(layer *glyph.Layer, sel Selection, delta geom.Vec2) {
	if layer == nil {
		return
	}

	for _, i := range sel.anchors {
		if i < 0 || i >= len(layer.Anchors) {
			continue
		}
		layer.Anchors[i] = layer.Anchors[i].Translate(delta)
	}

	for _, i := range sel.components {
		if i < 0 || i >= len(layer.Shapes) {
			continue
		}
		sh := layer.Shapes[i]
		if sh.Kind != glyph.ComponentKind {
			continue
		}
		c := sh.Component
		c.Transform = c.Transform.WithTranslation(c.Transform.Translation().Add(delta))
	}

	perShape := make(map[int][]int)
	for _, ref := range sel.nodes {
		if ref.Shape < 0 || ref.Shape >= len(layer.Shapes) {
			continue
		}
		sh := layer.Shapes[ref.Shape]
		if sh.Kind != glyph.PathKind || ref.Node < 0 || ref.Node >= len(sh.Path.Nodes) {
			continue
		}
		perShape[ref.Shape] = append(perShape[ref.Shape], ref.Node)
	}
	for shape, nodes := range perShape {
		applyNodeDelta(layer.Shapes[shape].Path, nodes, delta)
	}
}

// applyNodeDelta translates the given nodes of p by delta, carrying
// handles and enforcing the smooth-node mirror rule.
func applyNodeDelta(p *glyph.Path, selected []int, delta geom.Vec2) {
	moved := make(map[int]bool, len(selected))
	for _, i := range selected {
		moved[i] = true
	}

	// On-curve nodes drag their attached handles; the handles are not
	// independently movable once their curve point moves.
	for _, i := range selected {
		if !p.Nodes[i].Type.OnCurve() {
			continue
		}
		if j, ok := p.Prev(i); ok && p.Nodes[j].Type == glyph.OffCurve {
			moved[j] = true
		}
		if j, ok := p.Next(i); ok && p.Nodes[j].Type == glyph.OffCurve {
			moved[j] = true
		}
	}

	for i := range moved {
		p.Nodes[i] = p.Nodes[i].Translate(delta)
	}

	for _, i := range selected {
		if p.Nodes[i].Type != glyph.OffCurve {
			continue
		}
		if j, ok := p.Prev(i); ok {
			mirrorOpposite(p, i, j, moved)
		}
		if j, ok := p.Next(i); ok {
			mirrorOpposite(p, i, j, moved)
		}
	}
}

// mirrorOpposite repositions the handle on the far side of the smooth
// on-curve node at pivot so it is the point reflection of the moved
// handle at idx. No-op unless pivot is a smooth on-curve node that did
// not move itself and the far node is an unmoved off-curve handle.
func mirrorOpposite(p *glyph.Path, idx, pivot int, moved map[int]bool) {
	pv := p.Nodes[pivot]
	if !pv.Type.OnCurve() || !pv.Type.Smooth() || moved[pivot] {
		return
	}
	var opp int
	var ok bool
	if prev, pok := p.Prev(pivot); pok && prev == idx {
		opp, ok = p.Next(pivot)
	} else {
		opp, ok = p.Prev(pivot)
	}
	if !ok || opp == idx || moved[opp] || p.Nodes[opp].Type != glyph.OffCurve {
		return
	}
	h := p.Nodes[idx].Pos()
	c := pv.Pos()
	p.Nodes[opp] = p.Nodes[opp].WithPos(geom.Pt(2*c.X-h.X, 2*c.Y-h.Y))
}

// SetNodeType retypes node i of p. Making a node smooth immediately
// restores the tangency it promises: with handles on both sides the
// outgoing handle is rotated opposite the incoming one at its own
// distance, and with a handle on only one side the handle is aligned
// with the straight segment on the other. Reports false when i is out
// of range.
func SetNodeType(p *glyph.Path, i int, t glyph.NodeType) bool {
	if p == nil || i < 0 || i >= len(p.Nodes) {
		return false
	}
	p.Nodes[i].Type = t
	if !t.Smooth() {
		return true
	}

	node := p.Nodes[i].Pos()
	prev, pok := p.Prev(i)
	next, nok := p.Next(i)
	prevOff := pok && p.Nodes[prev].Type == glyph.OffCurve
	nextOff := nok && p.Nodes[next].Type == glyph.OffCurve

	switch {
	case prevOff && nextOff:
		alignHandle(p, next, node, node.Sub(p.Nodes[prev].Pos()))
	case prevOff && nok:
		alignHandle(p, prev, node, node.Sub(p.Nodes[next].Pos()))
	case nextOff && pok:
		alignHandle(p, next, node, node.Sub(p.Nodes[prev].Pos()))
	}
	return true
}

// alignHandle moves the handle at idx onto the ray from pivot along
// dir, keeping the handle's distance from pivot.
func alignHandle(p *glyph.Path, idx int, pivot geom.Point, dir geom.Vec2) {
	if dir.Hypot2() == 0 {
		return
	}
	dist := p.Nodes[idx].Pos().Distance(pivot)
	pos := pivot.Translate(dir.Normalize().Mul(dist))
	p.Nodes[idx] = p.Nodes[idx].WithPos(pos)
}
