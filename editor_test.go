package glyphedit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

func TestEditorNestedScenario(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	require.NoError(t, env.ed.EnterComponent(2))
	require.NoError(t, env.ed.EnterComponent(0))
	assert.Equal(t, 2, env.ed.Path().Depth())
	assert.Equal(t, "A@m-light/2/0", env.ed.Path().String())

	// the deep box's corner node, two transforms in
	hit, ok := env.ed.Click(geom.Pt(110, -70), false)
	require.True(t, ok)
	assert.Equal(t, Hit{Kind: HitNode, Shape: 0, Node: 0, Anchor: -1}, hit)
	assert.True(t, env.ed.Selection().ContainsNode(NodeRef{Shape: 0, Node: 0}))

	require.True(t, env.ed.ExitComponent())
	assert.Equal(t, 1, env.ed.Path().Depth())
	assert.True(t, env.ed.Selection().IsEmpty(), "selection must clear on a level transition")

	aff, err := env.ed.EditTransform()
	require.NoError(t, err)
	assert.Equal(t, geom.Translate(geom.Vec(100, 50)), aff)

	require.True(t, env.ed.ExitComponent())
	assert.Equal(t, 0, env.ed.Path().Depth())
	assert.False(t, env.ed.ExitComponent(), "exiting at the root must report false")
}

func TestEditorEnterComponentErrors(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	var nav *NavError

	err := env.ed.EnterComponent(7)
	require.ErrorAs(t, err, &nav)
	assert.ErrorIs(t, err, ErrShapeRange)
	assert.Equal(t, 0, nav.Step)

	err = env.ed.EnterComponent(0)
	require.ErrorAs(t, err, &nav)
	assert.ErrorIs(t, err, ErrNotComponent)

	assert.Equal(t, 0, env.ed.Path().Depth(), "failed descent must not move the path")
}

func TestEditorDragPersists(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	_, ok := env.ed.Click(geom.Pt(0, 0), false)
	require.True(t, ok)
	require.NoError(t, env.ed.Drag(geom.Vec(10, -20)))

	layer, err := env.ed.EditLayer()
	require.NoError(t, err)
	moved := layer.Shapes[0].Path.Nodes[0]
	assert.Equal(t, 10.0, moved.X)
	assert.Equal(t, 20.0, moved.Y, "screen up must move the node up in y-up glyph space")

	// the save is queued, not synchronous
	assert.EqualValues(t, 0, env.store.Revision())
	env.sched.drain(t)
	assert.EqualValues(t, 1, env.store.Revision())

	fresh, err := env.store.Fetch(context.Background(), "A", "m-light")
	require.NoError(t, err)
	assert.Equal(t, 10.0, fresh.Shapes[0].Path.Nodes[0].X)
	assert.Equal(t, 20.0, fresh.Shapes[0].Path.Nodes[0].Y)
}

func TestEditorDragComponentTranslates(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	// grab the component by its origin marker at glyph (100, 50)
	hit, ok := env.ed.Click(geom.Pt(100, -50), false)
	require.True(t, ok)
	require.Equal(t, HitComponentOrigin, hit.Kind)
	require.NoError(t, env.ed.Drag(geom.Vec(5, 10)))

	layer, err := env.ed.EditLayer()
	require.NoError(t, err)
	got := layer.Shapes[2].Component.Transform
	assert.Equal(t, geom.Translate(geom.Vec(105, 40)), got)
}

func TestEditorDragInterpolatedRefused(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))
	require.NoError(t, env.ed.RequestInterpolation(glyph.Location{"wght": 300}))
	env.sched.drain(t)

	env.ed.Click(geom.Pt(0, 0), false)
	err := env.ed.Drag(geom.Vec(10, 0))
	assert.ErrorIs(t, err, ErrNotEditable)
	assert.EqualValues(t, 0, env.store.Revision(), "refused drag must not persist")
}

func TestEditorHover(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	before := env.render.requests
	hit, ok := env.ed.Hover(geom.Pt(0, 0))
	require.True(t, ok)
	assert.Equal(t, HitNode, hit.Kind)
	assert.Equal(t, before+1, env.render.requests)

	env.ed.Hover(geom.Pt(0, 0))
	assert.Equal(t, before+1, env.render.requests, "unchanged hover must not rerender")

	_, ok = env.ed.Hover(geom.Pt(500, 500))
	assert.False(t, ok)
	assert.Equal(t, before+2, env.render.requests)
}

func TestEditorClickAdditive(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	env.ed.Click(geom.Pt(0, 0), false)
	env.ed.Click(geom.Pt(100, 0), true)
	sel := env.ed.Selection()
	assert.True(t, sel.ContainsNode(NodeRef{Shape: 0, Node: 0}))
	assert.True(t, sel.ContainsNode(NodeRef{Shape: 0, Node: 1}))

	// an additive click on a selected item deselects it
	env.ed.Click(geom.Pt(0, 0), true)
	sel = env.ed.Selection()
	assert.False(t, sel.ContainsNode(NodeRef{Shape: 0, Node: 0}))
	assert.True(t, sel.ContainsNode(NodeRef{Shape: 0, Node: 1}))

	// an additive miss keeps the selection, a plain miss clears it
	env.ed.Click(geom.Pt(500, 500), true)
	assert.False(t, env.ed.Selection().IsEmpty())
	env.ed.Click(geom.Pt(500, 500), false)
	assert.True(t, env.ed.Selection().IsEmpty())
}

func TestEditorSelectRect(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	// a screen band around the box's bottom edge, y-flipped to glyph
	// y in [-10, 10]; the stroke at x = -50 stays outside
	require.NoError(t, env.ed.SelectRect(geom.NewRect(-10, 10, 110, -10)))
	sel := env.ed.Selection()
	assert.ElementsMatch(t, []NodeRef{{Shape: 0, Node: 0}, {Shape: 0, Node: 1}}, sel.Nodes())
	assert.Empty(t, sel.Anchors())
}

func TestEditorSuppressRender(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	before := env.render.requests
	env.ed.SuppressRender(func() {
		env.ed.SetZoom(2)
		env.ed.SetPan(geom.Vec(40, 40))
		env.ed.Click(geom.Pt(40, 40), false)
	})
	assert.Equal(t, before+1, env.render.requests, "batched edits must collapse to one render request")
}

func TestEditorNavigateTo(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	p, err := ParseToken("A@m-light/2/0")
	require.NoError(t, err)
	require.NoError(t, env.ed.NavigateTo(p))
	assert.Equal(t, 2, env.ed.Path().Depth())

	// the same position on the bold layer reopens the session there
	require.NoError(t, env.ed.NavigateTo(p.RewriteLayerID("m-bold")))
	assert.Equal(t, 2, env.ed.Path().Depth())
	layer, err := env.ed.EditLayer()
	require.NoError(t, err)
	assert.Equal(t, 160.0, layer.Shapes[0].Path.Nodes[1].X)

	bad := NavPath{Glyph: "A", LayerID: "m-bold", Steps: []NavStep{{Shape: 0, LayerID: "m-bold"}}}
	err = env.ed.NavigateTo(bad)
	var nav *NavError
	require.ErrorAs(t, err, &nav)
	assert.ErrorIs(t, err, ErrNotComponent)
	assert.Equal(t, 0, nav.Step)
	assert.Equal(t, 2, env.ed.Path().Depth(), "failed navigation must keep the position")
}

func TestEditorSetNodeType(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))

	require.NoError(t, env.ed.SetNodeType(NodeRef{Shape: 0, Node: 1}, glyph.CurveSmooth))
	layer, err := env.ed.EditLayer()
	require.NoError(t, err)
	assert.Equal(t, glyph.CurveSmooth, layer.Shapes[0].Path.Nodes[1].Type)

	env.sched.drain(t)
	assert.EqualValues(t, 1, env.store.Revision())

	assert.ErrorIs(t, env.ed.SetNodeType(NodeRef{Shape: 0, Node: 99}, glyph.Curve), ErrShapeRange)
	assert.ErrorIs(t, env.ed.SetNodeType(NodeRef{Shape: 9, Node: 0}, glyph.Curve), ErrShapeRange)
	assert.ErrorIs(t, env.ed.SetNodeType(NodeRef{Shape: 2, Node: 0}, glyph.Curve), ErrShapeRange,
		"components have no nodes to retype")
}

func TestEditorSaveFailureKeepsEdit(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))
	env.store.FailSaves = errors.New("disk full")

	env.ed.Click(geom.Pt(0, 0), false)
	require.NoError(t, env.ed.Drag(geom.Vec(10, 0)))
	env.sched.drain(t)

	layer, err := env.ed.EditLayer()
	require.NoError(t, err)
	assert.Equal(t, 10.0, layer.Shapes[0].Path.Nodes[0].X, "the in-memory edit stands when the save fails")
	assert.EqualValues(t, 0, env.store.Revision())
}

func TestEditorCloseDropsInFlightResults(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))
	require.NoError(t, env.ed.RequestInterpolation(glyph.Location{"wght": 300}))

	env.ed.Close()
	env.sched.drain(t) // the stale result must be dropped, not applied

	assert.Equal(t, StateIdle, env.ed.State())
	_, err := env.ed.EditLayer()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEditorOpenErrors(t *testing.T) {
	env := newTestEnv(t)
	assert.Error(t, env.ed.Open("missing", "m-light"))
	assert.Error(t, env.ed.Open("A", "m-thin"))
	_, err := env.ed.EditLayer()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestEditorZoomGuard(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ed.Open("A", "m-light"))
	env.ed.SetZoom(0)
	env.ed.SetZoom(-3)
	assert.Equal(t, 1.0, env.ed.Viewport().Zoom)
	env.ed.SetZoom(2.5)
	assert.Equal(t, 2.5, env.ed.Viewport().Zoom)
}
