package glyphedit

import (
	"context"
	"fmt"
	"time"

	"honnef.co/go/glyphedit/glyph"
	"honnef.co/go/glyphedit/interp"
)

// OrchestratorState is the interpolation pipeline's state.
type OrchestratorState int

const (
	// StateIdle shows the last installed geometry with nothing in
	// flight.
	StateIdle OrchestratorState = iota
	// StateInterpolating has a request for an arbitrary axis location
	// in flight.
	StateInterpolating
	// StateAnimating runs an eased transition between two exact
	// layers.
	StateAnimating
	// StateExactLayer shows a master's real geometry.
	StateExactLayer
)

func (s OrchestratorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInterpolating:
		return "interpolating"
	case StateAnimating:
		return "animating"
	case StateExactLayer:
		return "exact"
	default:
		return fmt.Sprintf("OrchestratorState(%d)", int(s))
	}
}

// frameInterval is the animation step cadence.
const frameInterval = 16 * time.Millisecond

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// nextToken issues a new request token, invalidating every request
// still in flight. A result is applied only while its token is the
// latest one issued.
func (e *Editor) nextToken() uint64 {
	e.token++
	return e.token
}

// masterAt finds the master whose location equals loc exactly, every
// axis tag equal with zero tolerance.
func (e *Editor) masterAt(loc glyph.Location) *glyph.Master {
	for _, m := range e.store.Masters() {
		if m.Location.Equal(loc) {
			return m
		}
	}
	return nil
}

// currentLocation is the axis location of the session's geometry: the
// interpolation target if the layer is interpolated, the owning
// master's location otherwise. Nil when the master directory does not
// know the session's layer.
func (e *Editor) currentLocation() glyph.Location {
	if e.session == nil {
		return nil
	}
	if e.session.layer.Interpolated() {
		return e.session.layer.Location.Clone()
	}
	for _, m := range e.store.Masters() {
		if m.ID == e.session.masterID {
			return m.Location.Clone()
		}
	}
	return nil
}

// RequestInterpolation shows the glyph at an arbitrary axis location.
// A location exactly matching a master installs that master's real
// geometry instead. Otherwise the interpolation runs asynchronously;
// a newer request issued before it completes supersedes it and its
// result is dropped silently. A failed interpolation is logged and the
// previous geometry stays.
func (e *Editor) RequestInterpolation(loc glyph.Location) error {
	if e.session == nil {
		return ErrNoSession
	}
	tok := e.nextToken()
	e.captureViewAnchor()

	if m := e.masterAt(loc); m != nil {
		layer, err := e.store.Fetch(context.Background(), e.session.glyphName, m.ID)
		if err != nil {
			e.log.Error("fetching master layer failed", "glyph", e.session.glyphName, "master", m.ID, "err", err)
			e.hasViewAnchor = false
			return nil
		}
		e.installExact(tok, m.ID, layer)
		return nil
	}

	if e.interp == nil {
		e.log.Error("interpolation requested without an interpolator", "glyph", e.session.glyphName, "location", loc.String())
		e.hasViewAnchor = false
		return nil
	}

	e.state = StateInterpolating
	e.requestRender()
	glyphName := e.session.glyphName
	target := loc.Clone()
	e.post(func() {
		layer, err := e.interp.Interpolate(context.Background(), glyphName, target)
		e.finishInterpolation(tok, layer, err)
	})
	return nil
}

func (e *Editor) finishInterpolation(tok uint64, layer *glyph.Layer, err error) {
	if tok != e.token {
		e.log.Debug("dropping superseded interpolation result", "token", tok, "current", e.token)
		return
	}
	if e.session == nil {
		return
	}
	if err != nil {
		e.log.Error("interpolation failed, keeping previous geometry", "glyph", e.session.glyphName, "err", err)
		e.state = StateIdle
		e.requestRender()
		return
	}
	e.installInterpolated(layer)
}

// installInterpolated swaps the interpolated layer in as the session
// root. The navigation path is rewritten to the result's layer ID and
// the selection survives, since interpolation preserves the shape and
// node structure.
func (e *Editor) installInterpolated(layer *glyph.Layer) {
	e.SuppressRender(func() {
		e.session.layer = layer
		e.session.masterID = layer.ID
		e.session.path = e.session.path.RewriteLayerID(layer.ID)
		if _, err := e.session.path.Resolve(layer); err != nil {
			e.log.Warn("nesting level lost after interpolation, returning to root", "glyph", e.session.glyphName, "err", err)
			e.session.path = NavPath{Glyph: e.session.glyphName, LayerID: layer.ID}
			e.selection.Clear()
			e.hasHover = false
		}
		e.animFrame = nil
		e.state = StateIdle
		e.progress = 0
		e.adjustViewAnchor()
		e.hasViewAnchor = false
		e.requestRender()
	})
}

// installExact swaps a master's real geometry in as the session root,
// discarding any interpolated or animating state. Switching to a
// different master clears the selection; reinstalling the same master
// keeps it.
func (e *Editor) installExact(tok uint64, masterID string, layer *glyph.Layer) {
	if tok != e.token {
		e.log.Debug("dropping superseded layer install", "token", tok, "current", e.token)
		return
	}
	if e.session == nil {
		return
	}
	changed := e.session.masterID != masterID
	e.SuppressRender(func() {
		e.session.layer = layer
		e.session.masterID = masterID
		e.session.path = e.session.path.RewriteLayerID(masterID)
		if _, err := e.session.path.Resolve(layer); err != nil {
			e.log.Warn("nesting level lost after layer switch, returning to root", "glyph", e.session.glyphName, "err", err)
			e.session.path = NavPath{Glyph: e.session.glyphName, LayerID: masterID}
			e.selection.Clear()
			e.hasHover = false
		} else if changed {
			e.selection.Clear()
			e.hasHover = false
		}
		e.animFrame = nil
		e.state = StateExactLayer
		e.progress = 1
		e.adjustViewAnchor()
		e.hasViewAnchor = false
		e.requestRender()
	})
}

// AnimateToLayer switches to another master's layer with an eased
// transition. The target geometry is fetched up front and held next to
// the current geometry; a self-rescheduling step then blends the axis
// locations with a cubic ease-out and shows an in-between frame each
// tick until the target fully replaces the session root. Without a
// scheduler, or when no start location is known, the switch snaps.
func (e *Editor) AnimateToLayer(masterID string) error {
	if e.session == nil {
		return ErrNoSession
	}
	var target *glyph.Master
	for _, m := range e.store.Masters() {
		if m.ID == masterID {
			target = m
			break
		}
	}
	if target == nil {
		return fmt.Errorf("glyphedit: unknown master %q", masterID)
	}
	tok := e.nextToken()
	layer, err := e.store.Fetch(context.Background(), e.session.glyphName, masterID)
	if err != nil {
		e.log.Error("fetching animation target failed", "glyph", e.session.glyphName, "master", masterID, "err", err)
		return err
	}
	e.captureViewAnchor()

	startLoc := e.currentLocation()
	if e.sched == nil || startLoc == nil || startLoc.Equal(target.Location) {
		e.installExact(tok, masterID, layer)
		return nil
	}

	start := e.session.layer
	glyphName := e.session.glyphName
	startTime := e.clock()
	e.state = StateAnimating
	e.progress = 0
	e.requestRender()

	var step func()
	step = func() {
		if tok != e.token {
			e.log.Debug("dropping superseded animation step", "token", tok, "current", e.token)
			return
		}
		t := float64(e.clock().Sub(startTime)) / float64(e.animDuration)
		if t >= 1 {
			e.installExact(tok, masterID, layer)
			return
		}
		e.progress = t
		e.animFrame = e.animationFrame(glyphName, start, layer, startLoc, target.Location, easeOutCubic(t))
		e.adjustViewAnchor()
		e.requestRender()
		e.sched.After(frameInterval, step)
	}
	e.sched.After(frameInterval, step)
	return nil
}

// animationFrame computes the geometry shown partway through a layer
// switch. The frame is interpolated at the eased blend of the axis
// locations, so intermediate masters still shape the in-between forms.
// Without an interpolator, or when the call fails, the held start and
// target geometry blend directly.
func (e *Editor) animationFrame(glyphName string, start, target *glyph.Layer, from, to glyph.Location, eased float64) *glyph.Layer {
	if e.interp != nil {
		layer, err := e.interp.Interpolate(context.Background(), glyphName, from.Lerp(to, eased))
		if err == nil {
			return layer
		}
		e.log.Warn("animation frame interpolation failed, blending held geometry", "glyph", glyphName, "err", err)
	}
	return interp.Blend(start, target, eased)
}
