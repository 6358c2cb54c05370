// Package geom provides the two-dimensional geometry the editor core is
// built on: points, vectors, rectangles, affine transforms, and Bézier
// segments and paths.
//
// All coordinates are float64 values in glyph design units unless a
// function documents otherwise. Types are plain values; operations
// return new values and never mutate their receivers, with the
// exception of the BezPath builder methods.
//
// The affine convention follows the augmented-matrix formulation: for
// coefficients (a, b, c, d, e, f) the transform is
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// so that composition satisfies (A.Mul(B)).Transform(p) ==
// A.Transform(B.Transform(p)).
package geom
