package glyphedit

import (
	"testing"

	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

func square(x0, y0, x1, y1 float64) *glyph.Path {
	return &glyph.Path{Closed: true, Nodes: []glyph.Node{
		{x0, y0, glyph.Line}, {x1, y0, glyph.Line}, {x1, y1, glyph.Line}, {x0, y1, glyph.Line},
	}}
}

// squareCW winds the opposite way, cutting a counter out of whatever
// contour surrounds it.
func squareCW(x0, y0, x1, y1 float64) *glyph.Path {
	return &glyph.Path{Closed: true, Nodes: []glyph.Node{
		{x0, y0, glyph.Line}, {x0, y1, glyph.Line}, {x1, y1, glyph.Line}, {x1, y0, glyph.Line},
	}}
}

// hitFixture has a plain path at shape 0, a component with a counter
// at shape 1 (origin at x=200), an open-stroke component at shape 2
// (origin at x=400), and one anchor.
func hitFixture() *glyph.Layer {
	donut := &glyph.Layer{ID: "m", Shapes: []glyph.Shape{
		glyph.PathShape(square(0, 0, 100, 100)),
		glyph.PathShape(squareCW(25, 25, 75, 75)),
	}}
	strokes := &glyph.Layer{ID: "m", Shapes: []glyph.Shape{
		glyph.PathShape(&glyph.Path{Nodes: []glyph.Node{
			{0, 0, glyph.Line}, {0, 100, glyph.Line},
		}}),
	}}
	return &glyph.Layer{
		ID: "m",
		Shapes: []glyph.Shape{
			glyph.PathShape(square(0, 0, 100, 100)),
			glyph.ComponentShape(&glyph.Component{
				Ref:       "donut",
				Transform: geom.Translate(geom.Vec(200, 0)),
				Layer:     donut,
			}),
			glyph.ComponentShape(&glyph.Component{
				Ref:       "strokes",
				Transform: geom.Translate(geom.Vec(400, 0)),
				Layer:     strokes,
			}),
		},
		Anchors: []glyph.Anchor{{Name: "top", X: 50, Y: 150}},
	}
}

func TestHitTestPriorityAndKinds(t *testing.T) {
	layer := hitFixture()
	opt := DefaultHitOptions()

	tests := []struct {
		name   string
		cursor geom.Point
		want   Hit
		ok     bool
	}{
		// near the component origin and inside its body at once: the
		// origin marker wins
		{"origin beats body", geom.Pt(201, 1), Hit{Kind: HitComponentOrigin, Shape: 1, Node: -1, Anchor: -1}, true},
		{"component body", geom.Pt(250, 10), Hit{Kind: HitComponent, Shape: 1, Node: -1, Anchor: -1}, true},
		{"counter is excluded", geom.Pt(250, 50), Hit{}, false},
		{"anchor", geom.Pt(50, 150), Hit{Kind: HitAnchor, Shape: -1, Node: -1, Anchor: 0}, true},
		{"node", geom.Pt(100, 100), Hit{Kind: HitNode, Shape: 0, Node: 2, Anchor: -1}, true},
		{"open stroke proximity", geom.Pt(402, 50), Hit{Kind: HitComponent, Shape: 2, Node: -1, Anchor: -1}, true},
		{"open stroke miss", geom.Pt(410, 50), Hit{}, false},
		{"empty space", geom.Pt(-400, -400), Hit{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitTest(layer, tt.cursor, 1, opt)
			if ok != tt.ok || got != tt.want {
				t.Errorf("HitTest(%v) = %v, %v; want %v, %v", tt.cursor, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	layer := &glyph.Layer{Shapes: []glyph.Shape{
		glyph.PathShape(square(0, 0, 10, 10)),
		glyph.PathShape(square(0, 0, 10, 10)),
	}}
	got, ok := HitTest(layer, geom.Pt(0, 0), 1, DefaultHitOptions())
	if !ok {
		t.Fatal("no hit")
	}
	diff(t, Hit{Kind: HitNode, Shape: 1, Node: 0, Anchor: -1}, got)
}

func TestHitTestZoomInvariantRadius(t *testing.T) {
	layer := &glyph.Layer{Shapes: []glyph.Shape{glyph.PathShape(square(0, 0, 100, 100))}}
	opt := DefaultHitOptions() // node radius 6 screen px

	// 5 local units is 5 screen px at scale 1: inside the radius
	if _, ok := HitTest(layer, geom.Pt(5, 0), 1, opt); !ok {
		t.Error("5 px offset at scale 1 must hit")
	}
	// the same local offset at scale 10 is 50 screen px: outside
	if _, ok := HitTest(layer, geom.Pt(5, 0), 10, opt); ok {
		t.Error("50 px offset at scale 10 must miss")
	}
	// 0.5 local units at scale 10 is 5 screen px again
	if _, ok := HitTest(layer, geom.Pt(0.5, 0), 10, opt); !ok {
		t.Error("5 px offset at scale 10 must hit")
	}
	// dead on the node hits at any zoom
	for _, scale := range []float64{0.01, 1, 100} {
		got, ok := HitTest(layer, geom.Pt(0, 0), scale, opt)
		if !ok || got.Kind != HitNode {
			t.Errorf("exact cursor at scale %g = %v, %v", scale, got, ok)
		}
	}
}

func TestHitTestDegenerateInputs(t *testing.T) {
	if _, ok := HitTest(hitFixture(), geom.Pt(0, 0), 0, DefaultHitOptions()); ok {
		t.Error("zero scale must not hit")
	}
	if _, ok := HitTest(nil, geom.Pt(0, 0), 1, DefaultHitOptions()); ok {
		t.Error("nil layer must not hit")
	}
}

func TestNodesInRect(t *testing.T) {
	layer := hitFixture()

	refs := NodesInRect(layer, geom.NewRect(-1, -1, 101, 1))
	diff(t, []NodeRef{{Shape: 0, Node: 0}, {Shape: 0, Node: 1}}, refs)

	// component geometry contributes no free nodes
	if refs := NodesInRect(layer, geom.NewRect(190, -10, 310, 110)); refs != nil {
		t.Errorf("nodes inside component reported: %v", refs)
	}

	diff(t, []int{0}, AnchorsInRect(layer, geom.NewRect(0, 140, 100, 160)))
}
