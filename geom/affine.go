package geom

import "math"

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * v == A * (B * v). Component transforms in
// glyph documents store exactly these six coefficients.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY is a transform that is flipped on the y-axis. Useful for converting
// between y-up glyph space and y-down screen space.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// DegenerateDet is the determinant magnitude at or below which a
// transform is considered non-invertible. Components scaled to
// (near-)zero area fall below it.
const DegenerateDet = 1e-4

// Scale creates an affine transform representing uniform scaling.
func Scale(s float64) Affine {
	return Affine{s, 0, 0, s, 0, 0}
}

// ScaleNonUniform creates an affine transform representing non-uniform
// scaling with different scale values for x and y.
func ScaleNonUniform(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation.
//
// The convention for rotation is that a positive angle rotates a
// positive X direction into positive Y. The angle th is expressed in
// radians.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates an affine transform representing a rotation of th
// radians about center.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c).Mul(Rotate(th)).Mul(Translate(c.Negate()))
}

// Skew creates an affine transformation representing a skew.
//
// The x and y parameters represent skew factors for the horizontal and
// vertical directions, respectively. Slanted component placements in
// oblique designs use this.
func Skew(x, y float64) Affine {
	return Affine{1, y, x, 1, 0, 0}
}

// NewAffine creates a new affine transformation from an array of
// coefficients, as stored in glyph documents.
func NewAffine(n [6]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// Coefficients returns the coefficients of the transform.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5}
}

// Mul composes two transforms. The result applies o first, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// Transform applies the transform to a point.
func (aff Affine) Transform(pt Point) Point {
	return pt.Transform(aff)
}

// TransformVec applies the linear part of the transform to a vector,
// ignoring translation.
func (aff Affine) TransformVec(v Vec2) Vec2 {
	return Vec2{
		X: aff.N0*v.X + aff.N2*v.Y,
		Y: aff.N1*v.X + aff.N3*v.Y,
	}
}

// Determinant computes the determinant.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// Degenerate reports whether the transform collapses area to the point
// where it cannot be inverted, per [DegenerateDet].
func (aff Affine) Degenerate() bool {
	return math.Abs(aff.Determinant()) <= DegenerateDet
}

// Invert computes the inverse transform.
//
// The second return value is false when the transform is degenerate; in
// that case the returned transform is meaningless and callers must skip
// whatever computation needed the inverse.
func (aff Affine) Invert() (Affine, bool) {
	det := aff.Determinant()
	if math.Abs(det) <= DegenerateDet {
		return Affine{}, false
	}
	invDet := 1 / det
	return Affine{
		+invDet * aff.N3,
		-invDet * aff.N1,
		-invDet * aff.N2,
		+invDet * aff.N0,
		+invDet * (aff.N2*aff.N5 - aff.N3*aff.N4),
		+invDet * (aff.N1*aff.N4 - aff.N0*aff.N5),
	}, true
}

// Translation returns the translation component of this affine
// transformation.
func (aff Affine) Translation() Vec2 {
	return Vec2{
		X: aff.N4,
		Y: aff.N5,
	}
}

// WithTranslation replaces the translation portion of this affine
// transformation, leaving scale, rotation and skew untouched. Dragging
// a component moves it with exactly this.
func (aff Affine) WithTranslation(v Vec2) Affine {
	aff.N4 = v.X
	aff.N5 = v.Y
	return aff
}

// TransformRect computes the bounding box of a transformed rectangle.
//
// Returns the minimal [Rect] that encloses the given rectangle after
// affine transformation. If the transform is axis-aligned the bounding
// box is tight. The returned rectangle always has non-negative width
// and height.
func (aff Affine) TransformRect(rect Rect) Rect {
	p00 := Pt(rect.X0, rect.Y0).Transform(aff)
	p01 := Pt(rect.X0, rect.Y1).Transform(aff)
	p10 := Pt(rect.X1, rect.Y0).Transform(aff)
	p11 := Pt(rect.X1, rect.Y1).Transform(aff)
	return NewRectFromPoints(p00, p01).Union(NewRectFromPoints(p10, p11))
}

func (aff Affine) IsInf() bool {
	return math.IsInf(aff.N0, 0) ||
		math.IsInf(aff.N1, 0) ||
		math.IsInf(aff.N2, 0) ||
		math.IsInf(aff.N3, 0) ||
		math.IsInf(aff.N4, 0) ||
		math.IsInf(aff.N5, 0)
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) ||
		math.IsNaN(aff.N1) ||
		math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) ||
		math.IsNaN(aff.N4) ||
		math.IsNaN(aff.N5)
}
