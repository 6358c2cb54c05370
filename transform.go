package glyphedit

import "honnef.co/go/glyphedit/geom"

// Viewport maps glyph design space onto the screen. Glyph coordinates
// are y-up design units; screen coordinates are y-down pixels with the
// origin at the top left. Pan is the screen position of the glyph
// origin.
type Viewport struct {
	Zoom float64
	Pan  geom.Vec2
}

// GlyphToScreen returns the matrix taking glyph coordinates to screen
// pixels: flip y, scale by the zoom, then translate by the pan.
func (v Viewport) GlyphToScreen() geom.Affine {
	return geom.Translate(v.Pan).Mul(geom.Scale(v.Zoom)).Mul(geom.FlipY)
}

// ScreenToGlyph returns the inverse mapping. It reports false when the
// viewport is degenerate (zoom at or below zero), in which case the
// caller skips whatever it was about to do.
func (v Viewport) ScreenToGlyph() (geom.Affine, bool) {
	if v.Zoom <= 0 {
		return geom.Identity, false
	}
	return v.GlyphToScreen().Invert()
}

// LocalToScreen composes the viewport with the transform of a nesting
// level, mapping that level's local coordinates to screen pixels.
func (v Viewport) LocalToScreen(edit geom.Affine) geom.Affine {
	return v.GlyphToScreen().Mul(edit)
}

// ScreenToLocal inverts LocalToScreen. It reports false when either
// the viewport or the accumulated component transform is degenerate.
func (v Viewport) ScreenToLocal(edit geom.Affine) (geom.Affine, bool) {
	if v.Zoom <= 0 {
		return geom.Identity, false
	}
	return v.LocalToScreen(edit).Invert()
}
