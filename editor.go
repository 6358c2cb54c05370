package glyphedit

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
)

// Store provides exact layer geometry and the master directory, and
// persists edits. Saves are best-effort; the editor never waits on
// them or rolls back when they fail.
type Store interface {
	Fetch(ctx context.Context, glyphName, masterID string) (*glyph.Layer, error)
	Save(ctx context.Context, glyphName string, layer *glyph.Layer) error
	Axes() []glyph.Axis
	Masters() []*glyph.Master
}

// Interpolator computes a layer at an arbitrary axis location.
type Interpolator interface {
	Interpolate(ctx context.Context, glyphName string, loc glyph.Location) (*glyph.Layer, error)
}

// Editor is the nested-component outline editing core. It owns one
// live root layer per session; every nesting level is a view resolved
// on demand from the navigation path, never a copy.
//
// The editor is single-threaded and cooperative. All methods must be
// called from the same goroutine that runs the Scheduler's callbacks;
// asynchronous work is sequenced through the scheduler and reconciled
// with a monotonic request token, so a newer request always wins over
// an older one still in flight.
type Editor struct {
	store  Store
	interp Interpolator
	render Renderer
	sched  Scheduler
	clock  func() time.Time
	log    *slog.Logger

	hitRadius    float64
	originRadius float64
	strokeRadius float64
	animDuration time.Duration
	autoPan      bool

	viewport  Viewport
	selection Selection
	hover     Hit
	hasHover  bool

	session *session

	state     OrchestratorState
	token     uint64
	progress  float64
	animFrame *glyph.Layer

	viewAnchor    geom.Point
	hasViewAnchor bool

	suppressing     bool
	renderRequested bool
}

// session is the state tied to one open (glyph, master) pair. layer is
// the single live root layer of the editing session.
type session struct {
	glyphName string
	masterID  string
	layer     *glyph.Layer
	path      NavPath
}

// New creates an editor over store. The zero configuration has no
// renderer, scheduler, or interpolator: renders go nowhere, posted
// work runs inline, and only exact master locations can be shown.
func New(store Store, opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Editor{
		store:        store,
		interp:       o.interp,
		render:       o.renderer,
		sched:        o.scheduler,
		clock:        o.clock,
		log:          o.logger,
		hitRadius:    o.hitRadius,
		originRadius: o.originRadius,
		strokeRadius: o.strokeRadius,
		animDuration: o.animDuration,
		autoPan:      o.autoPan,
		viewport:     Viewport{Zoom: 1},
	}
}

// Open fetches the exact layer of masterID for glyphName and starts a
// fresh editing session on it, replacing any previous session. The
// navigation path resets to the root and the selection clears. The
// viewport is kept.
func (e *Editor) Open(glyphName, masterID string) error {
	layer, err := e.store.Fetch(context.Background(), glyphName, masterID)
	if err != nil {
		return err
	}
	e.token++
	e.session = &session{
		glyphName: glyphName,
		masterID:  masterID,
		layer:     layer,
		path:      NavPath{Glyph: glyphName, LayerID: masterID},
	}
	e.selection.Clear()
	e.hasHover = false
	e.animFrame = nil
	e.state = StateExactLayer
	e.progress = 1
	e.requestRender()
	return nil
}

// Close ends the session. In-flight asynchronous results are
// invalidated and dropped when they arrive.
func (e *Editor) Close() {
	e.token++
	e.session = nil
	e.selection.Clear()
	e.hasHover = false
	e.animFrame = nil
	e.state = StateIdle
	e.progress = 0
	e.requestRender()
}

// Path returns a copy of the current navigation path.
func (e *Editor) Path() NavPath {
	if e.session == nil {
		return NavPath{}
	}
	return e.session.path.Clone()
}

// Selection returns a copy of the current selection.
func (e *Editor) Selection() Selection {
	return e.selection.Clone()
}

// State returns the orchestrator state.
func (e *Editor) State() OrchestratorState {
	return e.state
}

// Viewport returns the current view mapping.
func (e *Editor) Viewport() Viewport {
	return e.viewport
}

// EditLayer resolves the navigation path against the live root layer
// and returns the sub-layer currently being edited.
func (e *Editor) EditLayer() (*glyph.Layer, error) {
	if e.session == nil {
		return nil, ErrNoSession
	}
	return e.session.path.Resolve(e.session.layer)
}

// EditTransform returns the composed transform mapping the current
// nesting level's local coordinates to root glyph coordinates.
func (e *Editor) EditTransform() (geom.Affine, error) {
	if e.session == nil {
		return geom.Identity, ErrNoSession
	}
	return e.session.path.Accumulate(e.session.layer)
}

// EnterComponent descends into the component shape at index i of the
// current nesting level. The selection and hover clear on the level
// transition.
func (e *Editor) EnterComponent(i int) error {
	if e.session == nil {
		return ErrNoSession
	}
	cur, err := e.session.path.Resolve(e.session.layer)
	if err != nil {
		return err
	}
	next := e.session.path.Extend(i, e.session.path.LayerID)
	step := len(next.Steps) - 1
	if i < 0 || i >= len(cur.Shapes) {
		return &NavError{Path: next.String(), Step: step, Err: ErrShapeRange}
	}
	sh := cur.Shapes[i]
	if sh.Kind != glyph.ComponentKind {
		return &NavError{Path: next.String(), Step: step, Err: ErrNotComponent}
	}
	if sh.Component.Layer == nil {
		return &NavError{Path: next.String(), Step: step, Err: ErrNoResolvedLayer}
	}
	if id := sh.Component.Layer.ID; id != "" {
		next.Steps[step].LayerID = id
	}
	e.session.path = next
	e.selection.Clear()
	e.hasHover = false
	e.requestRender()
	return nil
}

// ExitComponent ascends one nesting level. It reports false at the
// root. The selection and hover clear on the level transition.
func (e *Editor) ExitComponent() bool {
	if e.session == nil || e.session.path.Depth() == 0 {
		return false
	}
	e.session.path = e.session.path.Retract()
	e.selection.Clear()
	e.hasHover = false
	e.requestRender()
	return true
}

// NavigateTo jumps to the position addressed by p, reopening the
// session if p names a different glyph or layer. The path must resolve
// against the root layer.
func (e *Editor) NavigateTo(p NavPath) error {
	if e.session == nil || e.session.glyphName != p.Glyph || e.session.masterID != p.LayerID {
		if err := e.Open(p.Glyph, p.LayerID); err != nil {
			return err
		}
	}
	next := p.Clone()
	if _, err := next.Resolve(e.session.layer); err != nil {
		var nav *NavError
		if errors.As(err, &nav) {
			e.log.Warn("navigation target not resolvable", "path", nav.Path, "step", nav.Step, "err", nav.Err)
		}
		return err
	}
	e.session.path = next
	e.selection.Clear()
	e.hasHover = false
	e.requestRender()
	return nil
}

// hitOptions bundles the configured radii.
func (e *Editor) hitOptions() HitOptions {
	return HitOptions{
		NodeRadius:   e.hitRadius,
		OriginRadius: e.originRadius,
		StrokeRadius: e.strokeRadius,
	}
}

// hitAt converts a screen position into the current nesting level's
// local frame and hit-tests there. The scale handed to HitTest is the
// screen size of one local unit, so pick radii stay constant on screen
// through both zoom and component scaling.
func (e *Editor) hitAt(screen geom.Point) (Hit, bool) {
	layer, err := e.EditLayer()
	if err != nil {
		return Hit{}, false
	}
	edit, err := e.EditTransform()
	if err != nil {
		return Hit{}, false
	}
	inv, ok := e.viewport.ScreenToLocal(edit)
	if !ok {
		e.log.Debug("skipping hit test under degenerate transform", "path", e.session.path.String())
		return Hit{}, false
	}
	local := screen.Transform(inv)
	scale := math.Sqrt(math.Abs(e.viewport.LocalToScreen(edit).Determinant()))
	return HitTest(layer, local, scale, e.hitOptions())
}

// Hover hit-tests the screen position and records the result as the
// hover target.
func (e *Editor) Hover(screen geom.Point) (Hit, bool) {
	hit, ok := e.hitAt(screen)
	if ok != e.hasHover || hit != e.hover {
		e.hover = hit
		e.hasHover = ok
		e.requestRender()
	}
	return hit, ok
}

// Click hit-tests the screen position and updates the selection: a
// plain click selects the hit item alone, an additive click toggles
// it. Clicking empty space clears a non-additive selection.
func (e *Editor) Click(screen geom.Point, additive bool) (Hit, bool) {
	hit, ok := e.hitAt(screen)
	if ok {
		if additive {
			e.selection.Toggle(hit)
		} else {
			e.selection.Set(hit)
		}
	} else if !additive {
		e.selection.Clear()
	}
	e.requestRender()
	return hit, ok
}

// SelectRect adds every node and anchor of the current nesting level
// inside the screen-space rectangle to the selection.
func (e *Editor) SelectRect(r geom.Rect) error {
	layer, err := e.EditLayer()
	if err != nil {
		return err
	}
	edit, err := e.EditTransform()
	if err != nil {
		return err
	}
	inv, ok := e.viewport.ScreenToLocal(edit)
	if !ok {
		e.log.Debug("skipping rect select under degenerate transform")
		return nil
	}
	local := inv.TransformRect(r)
	e.selection.AddNodes(NodesInRect(layer, local))
	e.selection.AddAnchors(AnchorsInRect(layer, local))
	e.requestRender()
	return nil
}

// Drag moves the selected items by a screen-space delta. The delta is
// carried through the inverse viewport and component transforms into
// the edited layer's local units before the mutation applies. The edit
// is persisted fire-and-forget and a render is requested; dragging is
// refused while the displayed geometry is interpolated.
func (e *Editor) Drag(screenDelta geom.Vec2) error {
	if e.session == nil {
		return ErrNoSession
	}
	layer, err := e.session.path.Resolve(e.session.layer)
	if err != nil {
		return err
	}
	if layer.Interpolated() {
		e.log.Warn("ignoring drag on interpolated geometry", "glyph", e.session.glyphName)
		return ErrNotEditable
	}
	edit, err := e.session.path.Accumulate(e.session.layer)
	if err != nil {
		return err
	}
	inv, ok := e.viewport.ScreenToLocal(edit)
	if !ok {
		e.log.Debug("skipping drag under degenerate transform", "path", e.session.path.String())
		return nil
	}
	localDelta := inv.TransformVec(screenDelta)
	ApplyDelta(layer, e.selection, localDelta)
	e.persist(layer)
	e.requestRender()
	return nil
}

// SetNodeType retypes a node of the current nesting level, enforcing
// tangency when the new type is smooth. The edit persists like a drag.
func (e *Editor) SetNodeType(ref NodeRef, t glyph.NodeType) error {
	if e.session == nil {
		return ErrNoSession
	}
	layer, err := e.session.path.Resolve(e.session.layer)
	if err != nil {
		return err
	}
	if layer.Interpolated() {
		return ErrNotEditable
	}
	if ref.Shape < 0 || ref.Shape >= len(layer.Shapes) {
		return ErrShapeRange
	}
	sh := layer.Shapes[ref.Shape]
	if sh.Kind != glyph.PathKind || !SetNodeType(sh.Path, ref.Node, t) {
		return ErrShapeRange
	}
	e.persist(layer)
	e.requestRender()
	return nil
}

// persist queues a fire-and-forget save of the edited layer. Failures
// are logged; the in-memory edit stands either way.
func (e *Editor) persist(layer *glyph.Layer) {
	name := e.currentGlyphName()
	e.post(func() {
		if err := e.store.Save(context.Background(), name, layer); err != nil {
			e.log.Error("saving layer failed", "glyph", name, "err", err)
		}
	})
}

// currentGlyphName returns the name of the glyph whose layer is being
// edited at the current nesting level: the session glyph at the root,
// or the referenced glyph of the deepest entered component.
func (e *Editor) currentGlyphName() string {
	name := e.session.glyphName
	e.session.path.walk(e.session.layer, func(_ int, c *glyph.Component) {
		name = c.Ref
	})
	return name
}

// SetZoom sets the viewport zoom. Non-positive values are skipped.
func (e *Editor) SetZoom(z float64) {
	if z <= 0 {
		e.log.Warn("ignoring non-positive zoom", "zoom", z)
		return
	}
	e.viewport.Zoom = z
	e.requestRender()
}

// SetPan sets the screen position of the glyph origin.
func (e *Editor) SetPan(p geom.Vec2) {
	e.viewport.Pan = p
	e.requestRender()
}

// displayRoot returns the root layer to draw: the current animation
// frame during a layer switch, the live session layer otherwise.
func (e *Editor) displayRoot() *glyph.Layer {
	if e.state == StateAnimating && e.animFrame != nil {
		return e.animFrame
	}
	if e.session == nil {
		return nil
	}
	return e.session.layer
}

// RenderState snapshots the state a renderer needs for one frame.
func (e *Editor) RenderState() RenderState {
	rs := RenderState{
		Viewport:  e.viewport,
		Selection: e.selection.Clone(),
		Hover:     e.hover,
		HasHover:  e.hasHover,
		State:     e.state,
		Progress:  e.progress,
		Transform: geom.Identity,
	}
	root := e.displayRoot()
	if root == nil {
		return rs
	}
	rs.Glyph = e.session.glyphName
	rs.Path = e.session.path.Clone()
	rs.Width = root.Width

	layer, err := e.session.path.Resolve(root)
	if err != nil {
		e.log.Debug("render falling back to root level", "err", err)
		layer = root
	} else if aff, err := e.session.path.Accumulate(root); err == nil {
		rs.Transform = aff
	}
	rs.Layer = layer
	rs.Outlines = outlines(layer)
	return rs
}

// SuppressRender batches the render requests issued inside fn into at
// most one request after fn returns. Nested calls batch into the
// outermost.
func (e *Editor) SuppressRender(fn func()) {
	if e.suppressing {
		fn()
		return
	}
	e.suppressing = true
	fn()
	e.suppressing = false
	if e.renderRequested {
		e.renderRequested = false
		if e.render != nil {
			e.render.RequestRender()
		}
	}
}

// requestRender notifies the renderer, or records the request while
// renders are suppressed. Redundant requests are harmless.
func (e *Editor) requestRender() {
	if e.suppressing {
		e.renderRequested = true
		return
	}
	if e.render != nil {
		e.render.RequestRender()
	}
}
