package glyph

import (
	"slices"

	"honnef.co/go/glyphedit/geom"
)

// Layer is one master's drawing of a glyph: its shapes, anchors and
// advance width. A layer belongs to the master whose ID it shares.
//
// A layer produced by interpolation carries the location it was
// interpolated at; such layers are transient render material and are
// never edited or saved.
type Layer struct {
	ID      string   `json:"id,omitempty"`
	Width   float64  `json:"width"`
	Shapes  []Shape  `json:"shapes"`
	Anchors []Anchor `json:"anchors,omitempty"`

	// Location is non-nil on interpolated layers.
	Location Location `json:"_interpolationLocation,omitempty"`
}

// Interpolated reports whether the layer is interpolation output
// rather than a master's source geometry.
func (l *Layer) Interpolated() bool { return l != nil && l.Location != nil }

// Clone returns a deep copy of the layer. Cached component sub-layers
// are shared between the copies; they are derived data that both sides
// only read.
func (l *Layer) Clone() *Layer {
	if l == nil {
		return nil
	}
	out := &Layer{
		ID:       l.ID,
		Width:    l.Width,
		Shapes:   make([]Shape, len(l.Shapes)),
		Anchors:  slices.Clone(l.Anchors),
		Location: l.Location.Clone(),
	}
	for i, s := range l.Shapes {
		out.Shapes[i] = s.Clone()
	}
	return out
}

// Flatten resolves the layer's components into plain paths, applying
// each component's transform to the referenced geometry, recursively.
// Components without a cached layer contribute nothing. A layer
// reached again while it is still being expanded (a cycle) is skipped;
// reaching the same layer along two separate branches (a diamond) is
// expanded both times.
func (l *Layer) Flatten() []*Path {
	if l == nil {
		return nil
	}
	var out []*Path
	l.flattenInto(&out, geom.Identity, make(map[*Layer]bool))
	return out
}

func (l *Layer) flattenInto(out *[]*Path, aff geom.Affine, expanding map[*Layer]bool) {
	if expanding[l] {
		return
	}
	expanding[l] = true
	defer delete(expanding, l)
	for _, s := range l.Shapes {
		switch s.Kind {
		case PathKind:
			*out = append(*out, s.Path.Transform(aff))
		case ComponentKind:
			sub := s.Component.Layer
			if sub == nil {
				continue
			}
			sub.flattenInto(out, aff.Mul(s.Component.Transform), expanding)
		}
	}
}

// Bounds returns the bounding box of the layer's own paths, ignoring
// components. The rect is empty if the layer has no path outline.
func (l *Layer) Bounds() geom.Rect {
	var paths []*Path
	for _, s := range l.Shapes {
		if s.Kind == PathKind {
			paths = append(paths, s.Path)
		}
	}
	return boundsOf(paths)
}

// FlattenedBounds returns the bounding box of the layer's outline with
// components resolved. The rect is empty if nothing has an outline.
func (l *Layer) FlattenedBounds() geom.Rect {
	return boundsOf(l.Flatten())
}

func boundsOf(paths []*Path) geom.Rect {
	var (
		bbox geom.Rect
		set  bool
	)
	for _, p := range paths {
		els := p.Elements()
		if !els.HasSegments() {
			continue
		}
		b := els.BoundingBox()
		if !set {
			bbox, set = b, true
		} else {
			bbox = bbox.Union(b)
		}
	}
	return bbox
}
