package glyph

import (
	"encoding/json"
	"fmt"
)

// ShapeKind distinguishes the two kinds of shape a layer can hold.
type ShapeKind int

const (
	// PathKind is an outline contour owned by the layer.
	PathKind ShapeKind = iota + 1
	// ComponentKind is a placed reference to another glyph.
	ComponentKind
)

// Shape is either a path or a component. Exactly one of Path and
// Component is set, according to Kind.
type Shape struct {
	Kind      ShapeKind
	Path      *Path
	Component *Component
}

// PathShape wraps a path in a shape.
func PathShape(p *Path) Shape {
	return Shape{Kind: PathKind, Path: p}
}

// ComponentShape wraps a component in a shape.
func ComponentShape(c *Component) Shape {
	return Shape{Kind: ComponentKind, Component: c}
}

// Clone returns a copy of the shape. Path nodes are copied; a
// component's cached layer is shared, not copied.
func (s Shape) Clone() Shape {
	switch s.Kind {
	case PathKind:
		return Shape{Kind: PathKind, Path: s.Path.Clone()}
	case ComponentKind:
		c := *s.Component
		return Shape{Kind: ComponentKind, Component: &c}
	default:
		panic("unreachable")
	}
}

// MarshalJSON encodes the path or component directly; the two are told
// apart on decode by the presence of a "ref" field.
func (s Shape) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case PathKind:
		return json.Marshal(s.Path)
	case ComponentKind:
		return json.Marshal(s.Component)
	default:
		return nil, fmt.Errorf("glyph: cannot marshal shape of kind %d", int(s.Kind))
	}
}

func (s *Shape) UnmarshalJSON(data []byte) error {
	var probe struct {
		Ref *string `json:"ref"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("glyph: shape must be an object: %w", err)
	}
	if probe.Ref != nil {
		var c Component
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*s = ComponentShape(&c)
		return nil
	}
	var p Path
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = PathShape(&p)
	return nil
}
