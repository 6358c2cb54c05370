package main

import (
	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// demoFont is a tiny two-master design used when no font file is
// given: a ring, a dot, and an "i" built from a stem plus the dot as a
// component.
func demoFont() *glyph.Font {
	rect := func(w, h float64) *glyph.Path {
		return &glyph.Path{Closed: true, Nodes: []glyph.Node{
			{0, 0, glyph.Line}, {w, 0, glyph.Line}, {w, h, glyph.Line}, {0, h, glyph.Line},
		}}
	}
	// a four-point ring with smooth on-curve nodes, rx wide and 500
	// tall, handles at the usual circle constant
	ring := func(rx, kx float64) *glyph.Path {
		cx, cy, ry, ky := rx/2, 250.0, 250.0, 138.0
		return &glyph.Path{Closed: true, Nodes: []glyph.Node{
			{cx, 0, glyph.CurveSmooth}, {cx + kx, 0, glyph.OffCurve}, {rx, cy - ky, glyph.OffCurve},
			{rx, cy, glyph.CurveSmooth}, {rx, cy + ky, glyph.OffCurve}, {cx + kx, 2 * ry, glyph.OffCurve},
			{cx, 2 * ry, glyph.CurveSmooth}, {cx - kx, 2 * ry, glyph.OffCurve}, {0, cy + ky, glyph.OffCurve},
			{0, cy, glyph.CurveSmooth}, {0, cy - ky, glyph.OffCurve}, {cx - kx, 0, glyph.OffCurve},
		}}
	}
	dot := func(id string, s float64) *glyph.Layer {
		return &glyph.Layer{ID: id, Width: s, Shapes: []glyph.Shape{glyph.PathShape(rect(s, s))}}
	}
	i := func(id string, stemW, dotX float64) *glyph.Layer {
		return &glyph.Layer{
			ID:    id,
			Width: stemW + 60,
			Shapes: []glyph.Shape{
				glyph.PathShape(rect(stemW, 500)),
				glyph.ComponentShape(&glyph.Component{Ref: "dot", Transform: geom.Translate(geom.Vec(dotX, 560))}),
			},
			Anchors: []glyph.Anchor{{Name: "top", X: stemW / 2, Y: 660}},
		}
	}
	return &glyph.Font{
		Name:       "Demo",
		UnitsPerEm: 1000,
		Axes:       []glyph.Axis{{Tag: "wght", Name: "Weight", Min: 100, Default: 400, Max: 900}},
		Masters: []*glyph.Master{
			{ID: "thin", Name: "Thin", Location: glyph.Location{"wght": 100}},
			{ID: "black", Name: "Black", Location: glyph.Location{"wght": 900}},
		},
		Glyphs: []*glyph.Glyph{
			{Name: "dot", Layers: []*glyph.Layer{dot("thin", 40), dot("black", 80)}},
			{Name: "i", Layers: []*glyph.Layer{i("thin", 40, 0), i("black", 120, 20)}},
			{Name: "o", Layers: []*glyph.Layer{
				{ID: "thin", Width: 560, Shapes: []glyph.Shape{glyph.PathShape(ring(500, 138))}},
				{ID: "black", Width: 660, Shapes: []glyph.Shape{glyph.PathShape(ring(600, 166))}},
			}},
		},
	}
}
