package glyphedit

import (
	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// Renderer is the surface the editor notifies when its visible state
// changes. Requests are idempotent; the renderer queries RenderState
// at its own pace.
type Renderer interface {
	RequestRender()
}

// RenderState is a point-in-time snapshot of everything a renderer
// needs to draw the editor. The layer is the geometry to display: the
// resolved edit layer, or the current blend frame while an animation
// runs. Transform maps that layer's local coordinates into root glyph
// space; compose it with the viewport to reach the screen.
type RenderState struct {
	Glyph     string
	Path      NavPath
	Layer     *glyph.Layer
	Transform geom.Affine
	Viewport  Viewport
	Outlines  []geom.BezPath
	Selection Selection
	Hover     Hit
	HasHover  bool
	State     OrchestratorState
	Progress  float64
	Width     float64
}

// outlines builds one drawable path per top-level shape of layer.
// Component shapes are flattened, their nested geometry merged into a
// single path carrying the accumulated transforms, so the renderer can
// fill them with nonzero winding in one pass.
func outlines(layer *glyph.Layer) []geom.BezPath {
	if layer == nil {
		return nil
	}
	out := make([]geom.BezPath, 0, len(layer.Shapes))
	for _, sh := range layer.Shapes {
		switch sh.Kind {
		case glyph.PathKind:
			out = append(out, sh.Path.Elements())
		case glyph.ComponentKind:
			var merged geom.BezPath
			for _, fp := range sh.Component.Flatten() {
				merged = append(merged, fp.Elements()...)
			}
			out = append(out, merged)
		}
	}
	return out
}
