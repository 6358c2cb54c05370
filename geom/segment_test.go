package geom

import (
	"math"
	"sort"
	"testing"
)

func TestLineNearest(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}

	distSq, tt := l.Nearest(Pt(5, 3), DefaultAccuracy)
	if tt != 0.5 {
		t.Errorf("got t = %v, want 0.5", tt)
	}
	if distSq != 9 {
		t.Errorf("got distSq = %v, want 9", distSq)
	}

	// beyond the endpoints the parameter clamps
	_, tt = l.Nearest(Pt(-5, 0), DefaultAccuracy)
	if tt != 0 {
		t.Errorf("got t = %v, want 0", tt)
	}
	_, tt = l.Nearest(Pt(15, 0), DefaultAccuracy)
	if tt != 1 {
		t.Errorf("got t = %v, want 1", tt)
	}
}

func TestQuadNearest(t *testing.T) {
	verify := func(q QuadBez, pt Point, want float64) {
		t.Helper()
		_, got := q.Nearest(pt, DefaultAccuracy)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("got t = %v, want %v", got, want)
		}
	}

	q := QuadBez{Pt(-1, 1), Pt(0, -1), Pt(1, 1)}
	verify(q, Pt(0, 0), 0.5)
	verify(q, Pt(0, 0.1), 0.5)
	verify(q, Pt(-1, 1.1), 0)
	verify(q, Pt(1.1, 1.1), 1)
}

func TestCubicNearest(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0)}
	for _, want := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
		pt := c.Eval(want)
		_, got := c.Nearest(pt, DefaultAccuracy)
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("got t = %v, want %v", got, want)
		}
	}
}

func TestCubicExtrema(t *testing.T) {
	q := CubicBez{Pt(0, 0), Pt(0.5, 1), Pt(1.5, -1), Pt(2, 0)}
	ex, n := q.Extrema()
	if n != 3 {
		t.Fatalf("got %d extrema, want 3", n)
	}
	for i := 1; i < n; i++ {
		if ex[i-1] > ex[i] {
			t.Errorf("extrema not sorted: %v", ex[:n])
		}
	}
}

func TestSegmentWindingClosedTriangle(t *testing.T) {
	segs := []Segment{
		Line{Pt(0, 0), Pt(1, 1)}.Seg(),
		Line{Pt(1, 1), Pt(2, 0)}.Seg(),
		Line{Pt(2, 0), Pt(0, 0)}.Seg(),
	}
	winding := func(pt Point) int {
		var w int
		for _, seg := range segs {
			w += seg.Winding(pt)
		}
		return w
	}

	if w := winding(Pt(1, 0.5)); w != -1 {
		t.Errorf("inside: got winding %v, want -1", w)
	}
	if w := winding(Pt(3, 0.5)); w != 0 {
		t.Errorf("outside: got winding %v, want 0", w)
	}
	if w := winding(Pt(1, 2)); w != 0 {
		t.Errorf("above: got winding %v, want 0", w)
	}
}

func TestSegmentWindingCurved(t *testing.T) {
	// a lens shape built from two mirrored cubics
	up := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0)}.Seg()
	down := CubicBez{Pt(4, 0), Pt(3, -2), Pt(1, -2), Pt(0, 0)}.Seg()
	winding := func(pt Point) int {
		return up.Winding(pt) + down.Winding(pt)
	}

	if w := winding(Pt(2, 0)); w == 0 {
		t.Errorf("center: got winding 0, want nonzero")
	}
	if w := winding(Pt(2, 1.6)); w != 0 {
		t.Errorf("outside top: got winding %v, want 0", w)
	}
	if w := winding(Pt(-1, 0.1)); w != 0 {
		t.Errorf("left of shape: got winding %v, want 0", w)
	}
}

func TestSegmentBoundingBox(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 2), Pt(4, 2), Pt(4, 0)}.Seg()
	bbox := c.BoundingBox()
	if bbox.X0 != 0 || bbox.X1 != 4 {
		t.Errorf("x extent: got [%v, %v], want [0, 4]", bbox.X0, bbox.X1)
	}
	if bbox.Y0 != 0 {
		t.Errorf("y0: got %v, want 0", bbox.Y0)
	}
	// the curve's apex is at y = 1.5, well below the control points
	if math.Abs(bbox.Y1-1.5) > 1e-9 {
		t.Errorf("y1: got %v, want 1.5", bbox.Y1)
	}
}

func TestSegmentTransform(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}.Seg()
	got := c.Transform(Translate(Vec(0, 5)))
	want := CubicBez{Pt(0, 5), Pt(1, 5), Pt(2, 5), Pt(3, 5)}.Seg()
	diff(t, want, got)
}

func TestSolveCubicBasics(t *testing.T) {
	verify := func(roots [3]float64, n int, want ...float64) {
		t.Helper()
		if n != len(want) {
			t.Fatalf("got %d roots (%v), want %d", n, roots[:n], len(want))
		}
		got := append([]float64(nil), roots[:n]...)
		sort.Float64s(got)
		sort.Float64s(want)
		for i, w := range want {
			if math.Abs(got[i]-w) > 1e-6 {
				t.Errorf("root %d: got %v, want %v", i, got[i], w)
			}
		}
	}

	// (x-1)(x-2)(x-3) = x³ - 6x² + 11x - 6
	roots, n := SolveCubic(-6, 11, -6, 1)
	verify(roots, n, 1, 2, 3)

	// degenerate cubic falls back to the quadratic solver: (x-1)(x+1)
	roots, n = SolveCubic(-1, 0, 1, 0)
	verify(roots, n, -1, 1)
}
