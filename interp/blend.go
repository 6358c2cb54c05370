package interp

import "honnef.co/go/glyphedit/glyph"

// Blend pairwise-lerps two resolved layers. It backs layer-switch
// animation frames, where a and b are the same glyph at two masters
// and therefore share structure; structurally mismatched pieces snap
// to b. Component caches blend recursively and must form an acyclic
// graph, which resolved layers do.
func Blend(a, b *glyph.Layer, t float64) *glyph.Layer {
	if a == nil || b == nil {
		return b
	}
	out := &glyph.Layer{
		ID:    a.ID,
		Width: lerp(a.Width, b.Width, t),
	}
	if a.Location != nil && b.Location != nil {
		out.Location = a.Location.Lerp(b.Location, t)
	}

	out.Shapes = make([]glyph.Shape, 0, len(b.Shapes))
	for i, sb := range b.Shapes {
		if i >= len(a.Shapes) || a.Shapes[i].Kind != sb.Kind {
			out.Shapes = append(out.Shapes, sb.Clone())
			continue
		}
		sa := a.Shapes[i]
		switch sb.Kind {
		case glyph.PathKind:
			pa, pb := sa.Path, sb.Path
			if len(pa.Nodes) != len(pb.Nodes) {
				out.Shapes = append(out.Shapes, sb.Clone())
				continue
			}
			p := &glyph.Path{Nodes: make([]glyph.Node, len(pb.Nodes)), Closed: pb.Closed}
			for j := range pb.Nodes {
				p.Nodes[j] = glyph.Node{
					X:    lerp(pa.Nodes[j].X, pb.Nodes[j].X, t),
					Y:    lerp(pa.Nodes[j].Y, pb.Nodes[j].Y, t),
					Type: pb.Nodes[j].Type,
				}
			}
			out.Shapes = append(out.Shapes, glyph.PathShape(p))
		case glyph.ComponentKind:
			ca, cb := sa.Component, sb.Component
			out.Shapes = append(out.Shapes, glyph.ComponentShape(&glyph.Component{
				Ref:       cb.Ref,
				Transform: lerpAffine(ca.Transform, cb.Transform, t),
				Layer:     Blend(ca.Layer, cb.Layer, t),
			}))
		}
	}

	out.Anchors = make([]glyph.Anchor, 0, len(b.Anchors))
	for i, ab := range b.Anchors {
		if i >= len(a.Anchors) {
			out.Anchors = append(out.Anchors, ab)
			continue
		}
		aa := a.Anchors[i]
		out.Anchors = append(out.Anchors, glyph.Anchor{
			Name: ab.Name,
			X:    lerp(aa.X, ab.X, t),
			Y:    lerp(aa.Y, ab.Y, t),
		})
	}
	return out
}
