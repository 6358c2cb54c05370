package glyphedit

import "honnef.co/go/glyphedit/geom"

// The view anchor keeps a focal point visually stable while geometry
// changes underneath it. Before an interpolation or layer switch the
// screen projection of the displayed outline's bounding-box center is
// captured; after each geometry change the new projection is computed
// and the pan nudged by the difference, so the glyph appears to morph
// in place instead of drifting.

// focalPoint projects the displayed geometry's bounding-box center to
// screen coordinates.
func (e *Editor) focalPoint() (geom.Point, bool) {
	root := e.displayRoot()
	if root == nil {
		return geom.Point{}, false
	}
	layer, err := e.session.path.Resolve(root)
	if err != nil {
		return geom.Point{}, false
	}
	edit, err := e.session.path.Accumulate(root)
	if err != nil {
		return geom.Point{}, false
	}
	bounds := layer.FlattenedBounds()
	if bounds.IsEmpty() {
		return geom.Point{}, false
	}
	return bounds.Center().Transform(e.viewport.LocalToScreen(edit)), true
}

// captureViewAnchor records the current focal point. No-op when
// auto-pan is off or nothing is displayed.
func (e *Editor) captureViewAnchor() {
	e.hasViewAnchor = false
	if !e.autoPan || e.session == nil {
		return
	}
	if pt, ok := e.focalPoint(); ok {
		e.viewAnchor = pt
		e.hasViewAnchor = true
	}
}

// adjustViewAnchor pans the viewport so the focal point returns to
// where it was captured. The anchor stays armed, so every frame of an
// animation can re-adjust against the same baseline.
func (e *Editor) adjustViewAnchor() {
	if !e.hasViewAnchor {
		return
	}
	now, ok := e.focalPoint()
	if !ok {
		return
	}
	e.viewport.Pan = e.viewport.Pan.Add(e.viewAnchor.Sub(now))
}
