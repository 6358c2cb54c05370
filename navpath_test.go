package glyphedit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// nestedLayer builds a resolved layer tree: a path at shape 0 and a
// component at shape 1 whose layer contains another component.
func nestedLayer() *glyph.Layer {
	deep := &glyph.Layer{ID: "m", Shapes: []glyph.Shape{glyph.PathShape(box(10))}}
	mid := &glyph.Layer{ID: "m", Shapes: []glyph.Shape{
		glyph.ComponentShape(&glyph.Component{
			Ref:       "deep",
			Transform: geom.Translate(geom.Vec(10, 20)),
			Layer:     deep,
		}),
	}}
	return &glyph.Layer{ID: "m", Shapes: []glyph.Shape{
		glyph.PathShape(box(100)),
		glyph.ComponentShape(&glyph.Component{
			Ref:       "mid",
			Transform: geom.Translate(geom.Vec(100, 50)).Mul(geom.Scale(2)),
			Layer:     mid,
		}),
	}}
}

func TestNavPathTokenRoundTrip(t *testing.T) {
	p := NavPath{Glyph: "A", LayerID: "m-light", Steps: []NavStep{
		{Shape: 2, LayerID: "m-light"},
		{Shape: 0, LayerID: "m-light"},
	}}
	got, err := ParseToken(p.Token())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, p, got)
}

func TestNavPathTokenEscaping(t *testing.T) {
	p := NavPath{Glyph: "a/b@c", LayerID: "layer id", Steps: []NavStep{
		{Shape: 1, LayerID: "other/master"},
	}}
	got, err := ParseToken(p.Token())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, p, got)
}

func TestParseTokenInheritsRootLayer(t *testing.T) {
	got, err := ParseToken("A@m-light/2/0")
	if err != nil {
		t.Fatal(err)
	}
	want := NavPath{Glyph: "A", LayerID: "m-light", Steps: []NavStep{
		{Shape: 2, LayerID: "m-light"},
		{Shape: 0, LayerID: "m-light"},
	}}
	diff(t, want, got)
}

func TestParseTokenErrors(t *testing.T) {
	for _, tok := range []string{
		"A",        // no layer ID
		"A@m/x@m",  // non-numeric component index
		"%zz@m",    // broken escape in the glyph name
		"A@%zz/1",  // broken escape in the root layer ID
		"A@m/1@%zz", // broken escape in a step layer ID
	} {
		if _, err := ParseToken(tok); err == nil {
			t.Errorf("ParseToken(%q) did not fail", tok)
		}
	}
}

func TestNavPathRewriteLayerID(t *testing.T) {
	p := NavPath{Glyph: "A", LayerID: "m-light", Steps: []NavStep{
		{Shape: 2, LayerID: "m-light"},
		{Shape: 0, LayerID: "m-pinned"},
	}}
	q := p.RewriteLayerID("m-bold")

	want := NavPath{Glyph: "A", LayerID: "m-bold", Steps: []NavStep{
		{Shape: 2, LayerID: "m-bold"},
		{Shape: 0, LayerID: "m-bold"},
	}}
	diff(t, want, q)
	if q.Depth() != p.Depth() {
		t.Errorf("depth changed from %d to %d", p.Depth(), q.Depth())
	}
	// the original is untouched
	if p.LayerID != "m-light" || p.Steps[1].LayerID != "m-pinned" {
		t.Error("rewrite mutated its receiver")
	}
}

func TestNavPathExtendRetract(t *testing.T) {
	root := NavPath{Glyph: "A", LayerID: "m"}
	p := root.Extend(2, "m").Extend(0, "m")
	if p.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", p.Depth())
	}

	q := p.Retract()
	diff(t, NavPath{Glyph: "A", LayerID: "m", Steps: []NavStep{{Shape: 2, LayerID: "m"}}}, q)
	diff(t, root, q.Retract())
	diff(t, root, root.Retract())

	// extending the same base twice must not alias step storage
	a := q.Extend(1, "m")
	b := q.Extend(5, "m")
	if a.Steps[1].Shape != 1 || b.Steps[1].Shape != 5 {
		t.Errorf("sibling extends alias: %v, %v", a.Steps, b.Steps)
	}
}

func TestNavPathString(t *testing.T) {
	p := NavPath{Glyph: "A", LayerID: "m-light", Steps: []NavStep{
		{Shape: 2, LayerID: "m-light"},
		{Shape: 0, LayerID: "m-pinned"},
	}}
	if got, want := p.String(), "A@m-light/2/0@m-pinned"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNavPathResolve(t *testing.T) {
	root := nestedLayer()
	p := NavPath{Glyph: "A", LayerID: "m"}

	got, err := p.Resolve(root)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Error("root path must resolve to the root layer itself")
	}

	deep, err := p.Extend(1, "m").Extend(0, "m").Resolve(root)
	if err != nil {
		t.Fatal(err)
	}
	if deep != root.Shapes[1].Component.Layer.Shapes[0].Component.Layer {
		t.Error("deep resolve did not return the cached sub-layer")
	}
}

func TestNavPathResolveErrors(t *testing.T) {
	root := nestedLayer()
	base := NavPath{Glyph: "A", LayerID: "m"}

	tests := []struct {
		name string
		path NavPath
		want error
		step int
	}{
		{"shape out of range", base.Extend(7, "m"), ErrShapeRange, 0},
		{"negative index", base.Extend(-1, "m"), ErrShapeRange, 0},
		{"not a component", base.Extend(0, "m"), ErrNotComponent, 0},
		{"deep mismatch", base.Extend(1, "m").Extend(3, "m"), ErrShapeRange, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.path.Resolve(root)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var nav *NavError
			if !errors.As(err, &nav) {
				t.Fatalf("error %v is not a *NavError", err)
			}
			if nav.Step != tt.step {
				t.Errorf("step = %d, want %d", nav.Step, tt.step)
			}
		})
	}
}

func TestNavPathResolveUnresolvedComponent(t *testing.T) {
	root := &glyph.Layer{ID: "m", Shapes: []glyph.Shape{
		glyph.ComponentShape(&glyph.Component{Ref: "missing", Transform: geom.Identity}),
	}}
	p := NavPath{Glyph: "A", LayerID: "m"}.Extend(0, "m")

	if _, err := p.Resolve(root); !errors.Is(err, ErrNoResolvedLayer) {
		t.Errorf("error = %v, want ErrNoResolvedLayer", err)
	}
	// the transform is still known, so accumulation succeeds
	if _, err := p.Accumulate(root); err != nil {
		t.Errorf("Accumulate failed: %v", err)
	}
}

func TestNavPathAccumulate(t *testing.T) {
	root := nestedLayer()
	p := NavPath{Glyph: "A", LayerID: "m"}.Extend(1, "m").Extend(0, "m")

	got, err := p.Accumulate(root)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Translate(geom.Vec(100, 50)).Mul(geom.Scale(2)).Mul(geom.Translate(geom.Vec(10, 20)))
	diff(t, want, got)

	// child coordinates land in the parent frame: deep-local origin
	// sits at the mid component's offset, doubled by its scale.
	diff(t, geom.Pt(120, 90), got.Transform(geom.Pt(0, 0)))
}

func TestAccumulateInvertRoundTrip(t *testing.T) {
	root := nestedLayer()
	p := NavPath{Glyph: "A", LayerID: "m"}.Extend(1, "m").Extend(0, "m")

	aff, err := p.Accumulate(root)
	if err != nil {
		t.Fatal(err)
	}
	inv, ok := aff.Invert()
	if !ok {
		t.Fatal("accumulated transform is not invertible")
	}
	diff(t, geom.Identity, inv.Mul(aff), cmpopts.EquateApprox(0, 1e-9))

	pt := geom.Pt(37, -11)
	diff(t, pt, inv.Transform(aff.Transform(pt)), cmpopts.EquateApprox(0, 1e-9))
}
