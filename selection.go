package glyphedit

import (
	"fmt"
	"slices"
	"strings"
)

// Selection is the set of items picked at the current nesting level:
// path nodes, anchors, and components. Insertion order is kept.
// Component origin hits select the component itself.
type Selection struct {
	nodes      []NodeRef
	anchors    []int
	components []int
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.nodes = nil
	s.anchors = nil
	s.components = nil
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.nodes) == 0 && len(s.anchors) == 0 && len(s.components) == 0
}

// Nodes returns the selected node references.
func (s Selection) Nodes() []NodeRef {
	return slices.Clone(s.nodes)
}

// Anchors returns the selected anchor indices.
func (s Selection) Anchors() []int {
	return slices.Clone(s.anchors)
}

// Components returns the selected component shape indices.
func (s Selection) Components() []int {
	return slices.Clone(s.components)
}

func (s Selection) ContainsNode(ref NodeRef) bool {
	return slices.Contains(s.nodes, ref)
}

func (s Selection) ContainsAnchor(i int) bool {
	return slices.Contains(s.anchors, i)
}

func (s Selection) ContainsComponent(i int) bool {
	return slices.Contains(s.components, i)
}

// Contains reports whether the item named by h is selected.
func (s Selection) Contains(h Hit) bool {
	switch h.Kind {
	case HitNode:
		return s.ContainsNode(NodeRef{Shape: h.Shape, Node: h.Node})
	case HitAnchor:
		return s.ContainsAnchor(h.Anchor)
	case HitComponent, HitComponentOrigin:
		return s.ContainsComponent(h.Shape)
	default:
		return false
	}
}

// Set replaces the selection with the single item named by h.
func (s *Selection) Set(h Hit) {
	s.Clear()
	s.Add(h)
}

// Add inserts the item named by h if it is not already selected.
func (s *Selection) Add(h Hit) {
	if s.Contains(h) {
		return
	}
	switch h.Kind {
	case HitNode:
		s.nodes = append(s.nodes, NodeRef{Shape: h.Shape, Node: h.Node})
	case HitAnchor:
		s.anchors = append(s.anchors, h.Anchor)
	case HitComponent, HitComponentOrigin:
		s.components = append(s.components, h.Shape)
	}
}

// Toggle adds the item named by h, or removes it if already selected.
func (s *Selection) Toggle(h Hit) {
	switch h.Kind {
	case HitNode:
		ref := NodeRef{Shape: h.Shape, Node: h.Node}
		if i := slices.Index(s.nodes, ref); i >= 0 {
			s.nodes = slices.Delete(s.nodes, i, i+1)
			return
		}
	case HitAnchor:
		if i := slices.Index(s.anchors, h.Anchor); i >= 0 {
			s.anchors = slices.Delete(s.anchors, i, i+1)
			return
		}
	case HitComponent, HitComponentOrigin:
		if i := slices.Index(s.components, h.Shape); i >= 0 {
			s.components = slices.Delete(s.components, i, i+1)
			return
		}
	}
	s.Add(h)
}

// AddNodes inserts refs, skipping ones already selected.
func (s *Selection) AddNodes(refs []NodeRef) {
	for _, ref := range refs {
		if !s.ContainsNode(ref) {
			s.nodes = append(s.nodes, ref)
		}
	}
}

// AddAnchors inserts anchor indices, skipping ones already selected.
func (s *Selection) AddAnchors(idx []int) {
	for _, i := range idx {
		if !s.ContainsAnchor(i) {
			s.anchors = append(s.anchors, i)
		}
	}
}

// Clone returns a copy that shares no state with s.
func (s Selection) Clone() Selection {
	return Selection{
		nodes:      slices.Clone(s.nodes),
		anchors:    slices.Clone(s.anchors),
		components: slices.Clone(s.components),
	}
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	var parts []string
	if n := len(s.nodes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d node(s)", n))
	}
	if n := len(s.anchors); n > 0 {
		parts = append(parts, fmt.Sprintf("%d anchor(s)", n))
	}
	if n := len(s.components); n > 0 {
		parts = append(parts, fmt.Sprintf("%d component(s)", n))
	}
	return strings.Join(parts, ", ")
}
