package glyph

import "honnef.co/go/glyphedit/geom"

// Anchor is a named attachment point on a layer, used for mark
// positioning and component alignment.
type Anchor struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Pos returns the anchor's position.
func (a Anchor) Pos() geom.Point { return geom.Pt(a.X, a.Y) }

// Translate returns a copy of the anchor moved by v.
func (a Anchor) Translate(v geom.Vec2) Anchor {
	a.X += v.X
	a.Y += v.Y
	return a
}
