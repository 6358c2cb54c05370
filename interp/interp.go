// Package interp computes in-between glyph layers for arbitrary
// designspace locations.
//
// Interpolation is bracketing and linear: masters are ordered along a
// controlling axis, the pair enclosing the target location is picked,
// and scalars, node positions, anchors and component transforms are
// lerped between them. Outside the masters' span the extreme pair
// keeps bracketing, so values extrapolate.
package interp

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"

	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// Engine interpolates glyph layers between the masters of a font.
type Engine struct {
	font *glyph.Font
	log  *slog.Logger
}

// New returns an engine reading masters from font. A nil logger
// discards all output.
func New(font *glyph.Font, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(nopHandler{})
	}
	return &Engine{font: font, log: log}
}

// Interpolate computes the named glyph's layer at loc. The result is
// transient render material: it carries loc, keeps the reference
// master's layer ID, and attaches resolved sub-layers to its
// components. Components that cannot be resolved are kept with an
// empty cache and logged; structural mismatches between masters are
// errors.
func (e *Engine) Interpolate(ctx context.Context, glyphName string, loc glyph.Location) (*glyph.Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := &resolveState{
		expanding: make(map[string]bool),
		cache:     make(map[string]*glyph.Layer),
	}
	return e.interpolate(glyphName, loc, st)
}

// resolveState carries the bookkeeping of one Interpolate call.
// expanding holds the glyphs currently being expanded on the stack, so
// component cycles are cut; cache memoizes finished sub-layers, so a
// glyph referenced along several branches is interpolated once and
// shared.
type resolveState struct {
	expanding map[string]bool
	cache     map[string]*glyph.Layer
}

func (e *Engine) interpolate(glyphName string, loc glyph.Location, st *resolveState) (*glyph.Layer, error) {
	g := e.font.Glyph(glyphName)
	if g == nil {
		return nil, fmt.Errorf("interp: unknown glyph %q", glyphName)
	}

	var (
		layers  []*glyph.Layer
		sources []*glyph.Master
	)
	for _, l := range g.Layers {
		if m := e.font.Master(l.ID); m != nil {
			layers = append(layers, l)
			sources = append(sources, m)
		}
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("interp: glyph %q has no master layers", glyphName)
	}

	axis, err := e.controllingAxis(sources, loc)
	if err != nil {
		return nil, err
	}
	target := loc[axis]
	coords := make([]float64, len(sources))
	for i, m := range sources {
		coords[i] = m.Location[axis]
	}
	ref := layers[0]

	shapes := make([]glyph.Shape, 0, len(ref.Shapes))
	for idx, refShape := range ref.Shapes {
		switch refShape.Kind {
		case glyph.ComponentKind:
			var samples []keyed[geom.Affine]
			for i, l := range layers {
				if idx < len(l.Shapes) && l.Shapes[idx].Kind == glyph.ComponentKind {
					samples = append(samples, keyed[geom.Affine]{l.Shapes[idx].Component.Transform, coords[i]})
				}
			}
			tr := refShape.Component.Transform
			if len(samples) > 0 {
				lo, hi, t := bracket(samples, target)
				tr = lerpAffine(lo.value, hi.value, t)
			}
			shapes = append(shapes, glyph.ComponentShape(&glyph.Component{Ref: refShape.Component.Ref, Transform: tr}))
		case glyph.PathKind:
			present := 0
			var samples []keyed[*glyph.Path]
			for i, l := range layers {
				if idx >= len(l.Shapes) {
					continue
				}
				present++
				if s := l.Shapes[idx]; s.Kind == glyph.PathKind {
					samples = append(samples, keyed[*glyph.Path]{s.Path, coords[i]})
				}
			}
			if present < 2 {
				shapes = append(shapes, refShape.Clone())
				break
			}
			if len(samples) < 2 {
				return nil, fmt.Errorf("interp: glyph %q shape %d is not a path in every master", glyphName, idx)
			}
			p, err := lerpPath(samples, target)
			if err != nil {
				return nil, fmt.Errorf("interp: glyph %q shape %d: %w", glyphName, idx, err)
			}
			shapes = append(shapes, glyph.PathShape(p))
		}
	}

	widths := make([]keyed[float64], len(layers))
	for i, l := range layers {
		widths[i] = keyed[float64]{l.Width, coords[i]}
	}
	wlo, whi, wt := bracket(widths, target)

	anchors := make([]glyph.Anchor, 0, len(ref.Anchors))
	for ai, refA := range ref.Anchors {
		var samples []keyed[glyph.Anchor]
		for i, l := range layers {
			if ai < len(l.Anchors) {
				samples = append(samples, keyed[glyph.Anchor]{l.Anchors[ai], coords[i]})
			}
		}
		if len(samples) != len(layers) {
			// An anchor missing from some master falls back to the
			// reference as-is.
			anchors = append(anchors, refA)
			continue
		}
		lo, hi, t := bracket(samples, target)
		anchors = append(anchors, glyph.Anchor{
			Name: refA.Name,
			X:    lerp(lo.value.X, hi.value.X, t),
			Y:    lerp(lo.value.Y, hi.value.Y, t),
		})
	}

	out := &glyph.Layer{
		ID:       ref.ID,
		Width:    lerp(wlo.value, whi.value, wt),
		Shapes:   shapes,
		Anchors:  anchors,
		Location: loc.Clone(),
	}

	st.expanding[glyphName] = true
	defer delete(st.expanding, glyphName)
	for _, s := range out.Shapes {
		if s.Kind != glyph.ComponentKind {
			continue
		}
		c := s.Component
		if st.expanding[c.Ref] {
			e.log.Warn("circular component reference", "glyph", glyphName, "ref", c.Ref)
			continue
		}
		if cached, ok := st.cache[c.Ref]; ok {
			c.Layer = cached
			continue
		}
		sub, err := e.interpolate(c.Ref, loc, st)
		if err != nil {
			e.log.Warn("skipping unresolvable component", "glyph", glyphName, "ref", c.Ref, "err", err)
			continue
		}
		st.cache[c.Ref] = sub
		c.Layer = sub
	}
	return out, nil
}

// controllingAxis picks the axis whose coordinate orders the masters:
// the first axis, in font axis order, that the target location names
// and the masters disagree on. When every named axis is flat the first
// named one wins.
func (e *Engine) controllingAxis(masters []*glyph.Master, loc glyph.Location) (string, error) {
	if len(loc) == 0 {
		return "", errors.New("interp: no axis in target location")
	}
	var tags []string
	for _, ax := range e.font.Axes {
		if _, ok := loc[ax.Tag]; ok {
			tags = append(tags, ax.Tag)
		}
	}
	for _, tag := range slices.Sorted(maps.Keys(loc)) {
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	for _, tag := range tags {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, m := range masters {
			v := m.Location[tag]
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if hi > lo {
			return tag, nil
		}
	}
	return tags[0], nil
}

// keyed is a value paired with its coordinate on the controlling axis.
type keyed[T any] struct {
	value T
	coord float64
}

// Masters closer than coordEps on the controlling axis count as
// coincident; the lower one wins outright.
const coordEps = 1e-10

// bracket sorts samples by coordinate and picks the adjacent pair
// enclosing target. Outside the span the extreme samples bracket, so t
// leaves [0, 1]. samples must be non-empty; a single sample brackets
// itself at t = 0.
func bracket[T any](samples []keyed[T], target float64) (lo, hi keyed[T], t float64) {
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b keyed[T]) int {
		return cmp.Compare(a.coord, b.coord)
	})
	lo, hi = sorted[0], sorted[len(sorted)-1]
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].coord <= target && target <= sorted[i+1].coord {
			lo, hi = sorted[i], sorted[i+1]
			break
		}
	}
	if math.Abs(hi.coord-lo.coord) < coordEps {
		return lo, hi, 0
	}
	return lo, hi, (target - lo.coord) / (hi.coord - lo.coord)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func lerpAffine(a, b geom.Affine, t float64) geom.Affine {
	ca, cb := a.Coefficients(), b.Coefficients()
	var out [6]float64
	for i := range out {
		out[i] = lerp(ca[i], cb[i], t)
	}
	return geom.NewAffine(out)
}

func lerpPath(samples []keyed[*glyph.Path], target float64) (*glyph.Path, error) {
	ref := samples[0].value
	for _, s := range samples[1:] {
		if len(s.value.Nodes) != len(ref.Nodes) {
			return nil, fmt.Errorf("node count mismatch: %d != %d", len(s.value.Nodes), len(ref.Nodes))
		}
	}
	lo, hi, t := bracket(samples, target)
	out := &glyph.Path{Nodes: make([]glyph.Node, len(ref.Nodes)), Closed: ref.Closed}
	for i := range ref.Nodes {
		out.Nodes[i] = glyph.Node{
			X:    lerp(lo.value.Nodes[i].X, hi.value.Nodes[i].X, t),
			Y:    lerp(lo.value.Nodes[i].Y, hi.value.Nodes[i].Y, t),
			Type: ref.Nodes[i].Type,
		}
	}
	return out, nil
}

// nopHandler discards all log records. Without an injected logger the
// engine stays silent.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
