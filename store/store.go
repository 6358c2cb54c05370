// Package store holds font data and hands out editable layers.
//
// The Memory store wraps a glyph.Font. Fetched layers are deep copies
// with their component caches resolved, so callers can edit and
// flatten them without touching the font; saving replaces the font's
// layer with a snapshot of the edited copy.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"honnef.co/go/glyphedit/glyph"
)

// Memory is an in-memory layer store backed by a glyph.Font.
//
// FailFetches and FailSaves, when non-nil, make the corresponding
// operation return that error. They exist for exercising failure
// handling in tests.
type Memory struct {
	mu       sync.Mutex
	font     *glyph.Font
	revision uint64

	FailFetches error
	FailSaves   error
}

// NewMemory returns a store backed by font. The store assumes
// ownership: callers must not mutate font while the store is in use.
func NewMemory(font *glyph.Font) *Memory {
	return &Memory{font: font}
}

// Fetch returns a deep copy of the named glyph's layer for masterID.
// Component caches are resolved recursively against the same master,
// so the copy flattens and hit-tests without further store access.
// Components whose target is missing keep an empty cache; cyclic
// references are cut.
func (s *Memory) Fetch(ctx context.Context, glyphName, masterID string) (*glyph.Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailFetches != nil {
		return nil, s.FailFetches
	}

	g := s.font.Glyph(glyphName)
	if g == nil {
		return nil, fmt.Errorf("store: unknown glyph %q", glyphName)
	}
	src := g.Layer(masterID)
	if src == nil {
		return nil, fmt.Errorf("store: glyph %q has no layer %q", glyphName, masterID)
	}

	out := src.Clone()
	st := &resolveState{
		expanding: map[string]bool{glyphName: true},
		cache:     make(map[string]*glyph.Layer),
	}
	s.resolve(out, masterID, st)
	return out, nil
}

type resolveState struct {
	expanding map[string]bool
	cache     map[string]*glyph.Layer
}

func (s *Memory) resolve(l *glyph.Layer, masterID string, st *resolveState) {
	for _, sh := range l.Shapes {
		if sh.Kind != glyph.ComponentKind {
			continue
		}
		c := sh.Component
		if st.expanding[c.Ref] {
			continue
		}
		if cached, ok := st.cache[c.Ref]; ok {
			c.Layer = cached
			continue
		}
		src := s.font.Layer(c.Ref, masterID)
		if src == nil {
			continue
		}
		sub := src.Clone()
		st.expanding[c.Ref] = true
		s.resolve(sub, masterID, st)
		delete(st.expanding, c.Ref)
		st.cache[c.Ref] = sub
		c.Layer = sub
	}
}

// Save replaces the named glyph's layer whose ID matches layer.ID with
// a snapshot of layer. Component caches are not persisted; they are
// derived data. Interpolated layers are rejected.
func (s *Memory) Save(ctx context.Context, glyphName string, layer *glyph.Layer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	if layer.Interpolated() {
		return fmt.Errorf("store: refusing to save interpolated layer of %q", glyphName)
	}

	g := s.font.Glyph(glyphName)
	if g == nil {
		return fmt.Errorf("store: unknown glyph %q", glyphName)
	}
	for i, existing := range g.Layers {
		if existing.ID == layer.ID {
			snap := layer.Clone()
			for _, sh := range snap.Shapes {
				if sh.Kind == glyph.ComponentKind {
					sh.Component.Layer = nil
				}
			}
			g.Layers[i] = snap
			s.revision++
			return nil
		}
	}
	return fmt.Errorf("store: glyph %q has no layer %q", glyphName, layer.ID)
}

// Revision counts successful saves. It lets callers observe whether a
// fire-and-forget save has landed.
func (s *Memory) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Axes lists the font's axes.
func (s *Memory) Axes() []glyph.Axis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.font.Axes
}

// Masters lists the font's masters.
func (s *Memory) Masters() []*glyph.Master {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.font.Masters
}

// GlyphNames lists the font's glyph names, sorted.
func (s *Memory) GlyphNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.font.Glyphs))
	for i, g := range s.font.Glyphs {
		names[i] = g.Name
	}
	sort.Strings(names)
	return names
}
