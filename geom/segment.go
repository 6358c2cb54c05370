package geom

// MaxExtrema is the maximum number of extrema that can be reported by
// [Extremer].
//
// This is 4 to support cubic Béziers.
const MaxExtrema = 4

// DefaultAccuracy is a default value for methods that take an accuracy
// argument. It is suitable for hit-testing and general editor use.
const DefaultAccuracy = 1e-6

// Extremer describes parametrized curves that report their extrema.
type Extremer interface {
	// Extrema computes the extrema of the curve.
	//
	// Only extrema within the interior of the curve count.
	// At most four extrema can be reported, which is sufficient for
	// cubic Béziers.
	//
	// The extrema should be reported in increasing parameter order.
	Extrema() ([MaxExtrema]float64, int)
}

// ExtremaRanges returns parameter ranges, each of which is monotonic
// within the range.
func ExtremaRanges(e Extremer) ([MaxExtrema + 1][2]float64, int) {
	var ret [MaxExtrema + 1][2]float64
	var retN int
	var t0 float64

	ex, n := e.Extrema()
	for _, t := range ex[:n] {
		ret[retN] = [2]float64{t0, t}
		retN++
		t0 = t
	}
	ret[retN] = [2]float64{t0, 1}
	retN++
	return ret, retN
}

// boundingBox returns the smallest axis-aligned rectangle enclosing the
// curve in the range [0, 1].
func boundingBox(c interface {
	Extremer
	Eval(t float64) Point
}) Rect {
	bbox := NewRectFromPoints(c.Eval(0), c.Eval(1))
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// SegmentKind discriminates the curve type held in a [Segment].
type SegmentKind int

const (
	// A line segment.
	LineKind SegmentKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
)

// Segment is one segment of an outline. It acts as a tagged union over
// [Line], [QuadBez], and [CubicBez].
//
// A struct with a Kind is used rather than an interface so that
// segments never allocate and the concrete accessors stay cheap.
type Segment struct {
	Kind SegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

// Line returns the line represented by this segment. This is only valid
// when Kind == LineKind.
func (seg Segment) Line() Line { return Line{seg.P0, seg.P1} }

// Quad returns the quadratic Bézier represented by this segment. This
// is only valid when Kind == QuadKind.
func (seg Segment) Quad() QuadBez { return QuadBez{seg.P0, seg.P1, seg.P2} }

// Cubic converts seg to a cubic Bézier. This is valid for any Kind.
func (seg Segment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		p0 := seg.P0
		p1 := seg.P1
		return CubicBez{p0, p0, p1, p1}
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		return CubicBez{}
	}
}

func (seg Segment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case QuadKind:
		return seg.Quad().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	default:
		return Point{}
	}
}

func (seg Segment) Start() Point {
	return seg.Eval(0)
}

func (seg Segment) End() Point {
	return seg.Eval(1)
}

func (seg Segment) Subsegment(start, end float64) Segment {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Subsegment(start, end).Seg()
	case QuadKind:
		return seg.Quad().Subsegment(start, end).Seg()
	case CubicKind:
		return seg.Cubic().Subsegment(start, end).Seg()
	default:
		return Segment{}
	}
}

func (seg Segment) Extrema() ([MaxExtrema]float64, int) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Extrema()
	case QuadKind:
		return seg.Quad().Extrema()
	case CubicKind:
		return seg.Cubic().Extrema()
	default:
		return [MaxExtrema]float64{}, 0
	}
}

func (seg Segment) BoundingBox() Rect {
	return boundingBox(seg)
}

// Nearest returns the squared distance to the nearest point on the
// segment and the parameter of that point.
func (seg Segment) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Nearest(pt, accuracy)
	case QuadKind:
		return seg.Quad().Nearest(pt, accuracy)
	case CubicKind:
		return seg.Cubic().Nearest(pt, accuracy)
	default:
		return 0, 0
	}
}

// SignedArea returns the signed area under the segment. For a closed
// contour, the sum of segment signed areas is the contour's area; its
// sign is the contour's direction.
func (seg Segment) SignedArea() float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().SignedArea()
	case QuadKind:
		return seg.Quad().SignedArea()
	case CubicKind:
		return seg.Cubic().SignedArea()
	default:
		return 0
	}
}

func (seg Segment) Transform(aff Affine) Segment {
	return Segment{
		Kind: seg.Kind,
		P0:   seg.P0.Transform(aff),
		P1:   seg.P1.Transform(aff),
		P2:   seg.P2.Transform(aff),
		P3:   seg.P3.Transform(aff),
	}
}

// PathElement returns the element corresponding to the segment,
// discarding the segment's starting point.
func (seg Segment) PathElement() PathElement {
	switch seg.Kind {
	case LineKind:
		return LineTo(seg.P1)
	case QuadKind:
		return QuadTo(seg.P1, seg.P2)
	case CubicKind:
		return CubicTo(seg.P1, seg.P2, seg.P3)
	default:
		return PathElement{}
	}
}

// windingInner assumes the segment has been split at its extrema, so
// that it is monotonic in y.
func (seg Segment) windingInner(pt Point) int {
	start := seg.Eval(0)
	end := seg.Eval(1)
	var sign int
	if end.Y > start.Y {
		if pt.Y < start.Y || pt.Y >= end.Y {
			return 0
		}
		sign = -1
	} else if end.Y < start.Y {
		if pt.Y < end.Y || pt.Y >= start.Y {
			return 0
		}
		sign = 1
	} else {
		return 0
	}
	switch seg.Kind {
	case LineKind:
		if pt.X < min(start.X, end.X) {
			return 0
		}
		if pt.X >= max(start.X, end.X) {
			return sign
		}
		// line equation ax + by = c
		a := end.Y - start.Y
		b := start.X - end.X
		c := a*start.X + b*start.Y
		if (a*pt.X+b*pt.Y-c)*float64(sign) <= 0.0 {
			return sign
		} else {
			return 0
		}
	case QuadKind:
		quad := seg.Quad()
		p1 := quad.P1
		if pt.X < min(start.X, end.X, p1.X) {
			return 0
		}
		if pt.X >= max(start.X, end.X, p1.X) {
			return sign
		}
		a := end.Y - 2.0*p1.Y + start.Y
		b := 2.0 * (p1.Y - start.Y)
		c := start.Y - pt.Y
		solution, n := SolveQuadratic(c, b, a)
		for _, t := range solution[:n] {
			if t >= 0.0 && t <= 1.0 {
				x := quad.Eval(t).X
				if pt.X >= x {
					return sign
				} else {
					return 0
				}
			}
		}
		return 0
	case CubicKind:
		cubic := seg.Cubic()
		p1 := cubic.P1
		p2 := cubic.P2
		if pt.X < min(start.X, end.X, p1.X, p2.X) {
			return 0
		}
		if pt.X >= max(start.X, end.X, p1.X, p2.X) {
			return sign
		}
		a := end.Y - 3.0*p2.Y + 3.0*p1.Y - start.Y
		b := 3.0 * (p2.Y - 2.0*p1.Y + start.Y)
		c := 3.0 * (p1.Y - start.Y)
		d := start.Y - pt.Y
		solution, n := SolveCubic(d, c, b, a)
		for _, t := range solution[:n] {
			if t >= 0.0 && t <= 1.0 {
				x := cubic.Eval(t).X
				if pt.X >= x {
					return sign
				} else {
					return 0
				}
			}
		}
		return 0
	default:
		return 0
	}
}

// Winding computes the winding number contribution of a single segment.
//
// Casts a ray to the left of the point and counts signed crossings.
// Summed over the segments of a closed contour this yields the nonzero
// winding number used for containment.
func (seg Segment) Winding(pt Point) int {
	exs, n := ExtremaRanges(seg)
	var w int
	for _, ex := range exs[:n] {
		w += seg.Subsegment(ex[0], ex[1]).windingInner(pt)
	}
	return w
}
