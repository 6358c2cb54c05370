package glyph

import (
	"encoding/json"

	"honnef.co/go/glyphedit/geom"
)

// Component places another glyph inside a layer. Ref names the
// referenced glyph; Transform positions its outline in the parent's
// coordinate space.
//
// Layer optionally caches the referenced glyph's resolved layer at the
// location this component was fetched or interpolated for. Consumers
// treat the cache as read-only derived data; editing a component's
// geometry means entering the referenced glyph, not mutating the
// cache.
type Component struct {
	Ref       string
	Transform geom.Affine
	Layer     *Layer
}

// Flatten resolves the component's cached layer into plain paths with
// the component's transform applied, recursively. A component without
// a cached layer contributes nothing.
func (c *Component) Flatten() []*Path {
	if c == nil || c.Layer == nil {
		return nil
	}
	var out []*Path
	c.Layer.flattenInto(&out, c.Transform, make(map[*Layer]bool))
	return out
}

type componentJSON struct {
	Ref       string     `json:"ref"`
	Transform [6]float64 `json:"transform"`
	Layer     *Layer     `json:"layer,omitempty"`
}

func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentJSON{
		Ref:       c.Ref,
		Transform: c.Transform.Coefficients(),
		Layer:     c.Layer,
	})
}

func (c *Component) UnmarshalJSON(data []byte) error {
	raw := componentJSON{Transform: geom.Identity.Coefficients()}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Ref = raw.Ref
	c.Transform = geom.NewAffine(raw.Transform)
	c.Layer = raw.Layer
	return nil
}
