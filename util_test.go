package glyphedit

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/glyphedit/geom"
	"honnef.co/go/glyphedit/glyph"
	"honnef.co/go/glyphedit/interp"
	"honnef.co/go/glyphedit/store"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

// box is a counterclockwise closed square of width w and height 100.
func box(w float64) *glyph.Path {
	return &glyph.Path{Closed: true, Nodes: []glyph.Node{
		{0, 0, glyph.Line}, {w, 0, glyph.Line}, {w, 100, glyph.Line}, {0, 100, glyph.Line},
	}}
}

// testFont has two weight masters and a glyph "A" whose shape 2 is a
// component chain two references deep: A -> mid -> box.
func testFont() *glyph.Font {
	stroke := func() *glyph.Path {
		return &glyph.Path{Nodes: []glyph.Node{{-50, 0, glyph.Line}, {-50, 100, glyph.Line}}}
	}
	mid := func() []glyph.Shape {
		return []glyph.Shape{
			glyph.ComponentShape(&glyph.Component{Ref: "box", Transform: geom.Translate(geom.Vec(10, 20))}),
		}
	}
	a := func(w float64) []glyph.Shape {
		return []glyph.Shape{
			glyph.PathShape(box(w)),
			glyph.PathShape(stroke()),
			glyph.ComponentShape(&glyph.Component{Ref: "mid", Transform: geom.Translate(geom.Vec(100, 50))}),
		}
	}
	return &glyph.Font{
		Name: "Demo",
		Axes: []glyph.Axis{{Tag: "wght", Min: 100, Default: 400, Max: 700}},
		Masters: []*glyph.Master{
			{ID: "m-light", Name: "Light", Location: glyph.Location{"wght": 100}},
			{ID: "m-bold", Name: "Bold", Location: glyph.Location{"wght": 700}},
		},
		Glyphs: []*glyph.Glyph{
			{Name: "box", Layers: []*glyph.Layer{
				{ID: "m-light", Width: 120, Shapes: []glyph.Shape{glyph.PathShape(box(100))}},
				{ID: "m-bold", Width: 180, Shapes: []glyph.Shape{glyph.PathShape(box(160))}},
			}},
			{Name: "mid", Layers: []*glyph.Layer{
				{ID: "m-light", Width: 120, Shapes: mid()},
				{ID: "m-bold", Width: 180, Shapes: mid()},
			}},
			{Name: "A", Layers: []*glyph.Layer{
				{ID: "m-light", Width: 200, Shapes: a(100),
					Anchors: []glyph.Anchor{{Name: "top", X: 50, Y: 120}}},
				{ID: "m-bold", Width: 260, Shapes: a(160),
					Anchors: []glyph.Anchor{{Name: "top", X: 80, Y: 120}}},
			}},
		},
	}
}

// fakeScheduler queues callbacks and runs them when the test says so,
// standing in for a host frame loop.
type fakeScheduler struct {
	queue []func()
}

func (s *fakeScheduler) Post(fn func())                   { s.queue = append(s.queue, fn) }
func (s *fakeScheduler) After(_ time.Duration, fn func()) { s.queue = append(s.queue, fn) }

// run executes the i-th queued callback.
func (s *fakeScheduler) run(i int) {
	fn := s.queue[i]
	s.queue = append(s.queue[:i], s.queue[i+1:]...)
	fn()
}

// drain runs queued callbacks in order until none remain.
func (s *fakeScheduler) drain(t *testing.T) {
	t.Helper()
	for steps := 0; len(s.queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("scheduler queue does not drain")
		}
		s.run(0)
	}
}

type recordingRenderer struct {
	requests int
}

func (r *recordingRenderer) RequestRender() { r.requests++ }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// countingInterp counts calls through to a real engine and can be made
// to fail.
type countingInterp struct {
	inner *interp.Engine
	calls int
	fail  error
}

func (c *countingInterp) Interpolate(ctx context.Context, glyphName string, loc glyph.Location) (*glyph.Layer, error) {
	c.calls++
	if c.fail != nil {
		return nil, c.fail
	}
	return c.inner.Interpolate(ctx, glyphName, loc)
}

type testEnv struct {
	ed     *Editor
	store  *store.Memory
	sched  *fakeScheduler
	render *recordingRenderer
	interp *countingInterp
	clock  *fakeClock
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		store:  store.NewMemory(testFont()),
		sched:  &fakeScheduler{},
		render: &recordingRenderer{},
		interp: &countingInterp{inner: interp.New(testFont(), nil)},
		clock:  &fakeClock{now: time.Unix(1000, 0)},
	}
	base := []Option{
		WithScheduler(env.sched),
		WithRenderer(env.render),
		WithInterpolator(env.interp),
		WithClock(env.clock.Now),
	}
	env.ed = New(env.store, append(base, opts...)...)
	return env
}
