package glyphedit

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// NavStep is one level of descent into a component: the index of the
// component shape that was entered, and the ID of the layer being
// edited at that depth.
type NavStep struct {
	Shape   int
	LayerID string
}

// NavPath addresses a position inside the nested-component tree: the
// root glyph and layer, then zero or more steps down through component
// shapes. The root layer is the only live geometry; each step is a view
// into a resolved component sub-layer, computed on demand.
//
// A NavPath is reconstructible from its token alone and carries no
// resolved layer data.
type NavPath struct {
	Glyph   string
	LayerID string
	Steps   []NavStep
}

// Depth reports how many components deep the path is. The root is
// depth 0.
func (p NavPath) Depth() int {
	return len(p.Steps)
}

// Clone returns a copy that shares no state with p.
func (p NavPath) Clone() NavPath {
	p.Steps = slices.Clone(p.Steps)
	return p
}

// Equal reports whether p and q address the same position.
func (p NavPath) Equal(q NavPath) bool {
	return p.Glyph == q.Glyph && p.LayerID == q.LayerID && slices.Equal(p.Steps, q.Steps)
}

// Extend returns p with one more level of descent appended.
func (p NavPath) Extend(shape int, layerID string) NavPath {
	steps := make([]NavStep, len(p.Steps)+1)
	copy(steps, p.Steps)
	steps[len(p.Steps)] = NavStep{Shape: shape, LayerID: layerID}
	p.Steps = steps
	return p
}

// Retract returns p with the deepest level removed. Retracting the
// root returns the root unchanged.
func (p NavPath) Retract() NavPath {
	if len(p.Steps) == 0 {
		return p
	}
	p.Steps = slices.Clone(p.Steps[:len(p.Steps)-1])
	return p
}

// RewriteLayerID returns p with the layer ID of every segment replaced
// by id. Component indices are untouched. This operates purely on the
// path structure and needs no resolved layer data.
func (p NavPath) RewriteLayerID(id string) NavPath {
	p.LayerID = id
	steps := slices.Clone(p.Steps)
	for i := range steps {
		steps[i].LayerID = id
	}
	p.Steps = steps
	return p
}

// String renders a breadcrumb like "A@m-regular/2/0". Steps whose
// layer matches the root's show only their component index.
func (p NavPath) String() string {
	var sb strings.Builder
	sb.WriteString(p.Glyph)
	sb.WriteByte('@')
	sb.WriteString(p.LayerID)
	for _, st := range p.Steps {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(st.Shape))
		if st.LayerID != p.LayerID {
			sb.WriteByte('@')
			sb.WriteString(st.LayerID)
		}
	}
	return sb.String()
}

// Token serializes p into a single addressable string. Glyph names and
// layer IDs are query-escaped, so the segment separators "/" and "@"
// never collide with their content. ParseToken inverts it.
func (p NavPath) Token() string {
	var sb strings.Builder
	sb.WriteString(url.QueryEscape(p.Glyph))
	sb.WriteByte('@')
	sb.WriteString(url.QueryEscape(p.LayerID))
	for _, st := range p.Steps {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(st.Shape))
		sb.WriteByte('@')
		sb.WriteString(url.QueryEscape(st.LayerID))
	}
	return sb.String()
}

// ParseToken reconstructs a NavPath from its token. Steps missing an
// explicit layer ID inherit the root's.
func ParseToken(tok string) (NavPath, error) {
	segs := strings.Split(tok, "/")
	glyphPart, layerPart, ok := strings.Cut(segs[0], "@")
	if !ok {
		return NavPath{}, fmt.Errorf("glyphedit: path token %q: root segment missing layer ID", tok)
	}
	name, err := url.QueryUnescape(glyphPart)
	if err != nil {
		return NavPath{}, fmt.Errorf("glyphedit: path token %q: %w", tok, err)
	}
	layerID, err := url.QueryUnescape(layerPart)
	if err != nil {
		return NavPath{}, fmt.Errorf("glyphedit: path token %q: %w", tok, err)
	}
	p := NavPath{Glyph: name, LayerID: layerID}
	for _, seg := range segs[1:] {
		idxPart, stepLayer, hasLayer := strings.Cut(seg, "@")
		idx, err := strconv.Atoi(idxPart)
		if err != nil {
			return NavPath{}, fmt.Errorf("glyphedit: path token %q: bad component index %q", tok, idxPart)
		}
		st := NavStep{Shape: idx, LayerID: layerID}
		if hasLayer {
			id, err := url.QueryUnescape(stepLayer)
			if err != nil {
				return NavPath{}, fmt.Errorf("glyphedit: path token %q: %w", tok, err)
			}
			st.LayerID = id
		}
		p.Steps = append(p.Steps, st)
	}
	return p, nil
}

// walk descends from root one step at a time, calling fn with the step
// index and the component entered there. Any structural mismatch stops
// the walk with a *NavError.
func (p NavPath) walk(root *glyph.Layer, fn func(step int, c *glyph.Component)) error {
	cur := root
	for i, st := range p.Steps {
		if cur == nil {
			// The level we were meant to look in was never resolved:
			// the previous step's component, or the root itself.
			return &NavError{Path: p.String(), Step: i - 1, Err: ErrNoResolvedLayer}
		}
		if st.Shape < 0 || st.Shape >= len(cur.Shapes) {
			return &NavError{Path: p.String(), Step: i, Err: ErrShapeRange}
		}
		sh := cur.Shapes[st.Shape]
		if sh.Kind != glyph.ComponentKind {
			return &NavError{Path: p.String(), Step: i, Err: ErrNotComponent}
		}
		fn(i, sh.Component)
		cur = sh.Component.Layer
	}
	return nil
}

// Resolve walks the path from root and returns the sub-layer it
// addresses. The root resolves to itself. A step that points outside
// the shape list, at a non-component shape, or into a component whose
// layer has not been resolved yields a *NavError.
func (p NavPath) Resolve(root *glyph.Layer) (*glyph.Layer, error) {
	cur := root
	err := p.walk(root, func(_ int, c *glyph.Component) {
		cur = c.Layer
	})
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, &NavError{Path: p.String(), Step: len(p.Steps) - 1, Err: ErrNoResolvedLayer}
	}
	return cur, nil
}

// Accumulate composes the component transforms along the path, child
// applied in the parent's frame, and returns the matrix mapping the
// addressed level's local coordinates to root glyph coordinates.
func (p NavPath) Accumulate(root *glyph.Layer) (geom.Affine, error) {
	aff := geom.Identity
	err := p.walk(root, func(_ int, c *glyph.Component) {
		aff = aff.Mul(c.Transform)
	})
	if err != nil {
		return geom.Identity, err
	}
	return aff, nil
}
