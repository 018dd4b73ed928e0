// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 4x4 affine-or-perspective transformation.
//
// The matrix is stored row-major in an f64.Mat4 and maps column vectors:
//
//	| x' |   | m00 m01 m02 m03 | | x |
//	| y' | = | m10 m11 m12 m13 | | y |
//	| z' |   | m20 m21 m22 m23 | | z |
//	| w' |   | m30 m31 m32 m33 | | w |
//
// The mutating helpers (Translate, Scale, Rotate*, ApplyPerspectiveDepth)
// post-multiply, so the most recently applied operation acts on points
// first.
//
// The zero value is not a valid transform; use Identity.
type Transform struct {
	m f64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// TransformFromMatrix wraps a row-major matrix.
func TransformFromMatrix(m f64.Mat4) Transform {
	return Transform{m: m}
}

// TranslateTransform returns a 2D translation.
func TranslateTransform(dx, dy float64) Transform {
	t := Identity()
	t.m[3] = dx
	t.m[7] = dy
	return t
}

// Matrix returns the underlying row-major matrix.
func (t Transform) Matrix() f64.Mat4 {
	return t.m
}

// At returns the element at (row, col).
func (t Transform) At(row, col int) float64 {
	return t.m[row*4+col]
}

// Set stores v at (row, col).
func (t *Transform) Set(row, col int, v float64) {
	t.m[row*4+col] = v
}

// Translate post-multiplies by a 2D translation.
func (t *Transform) Translate(dx, dy float64) {
	t.Translate3d(dx, dy, 0)
}

// Translate3d post-multiplies by a 3D translation.
func (t *Transform) Translate3d(dx, dy, dz float64) {
	o := Identity()
	o.m[3], o.m[7], o.m[11] = dx, dy, dz
	t.PreconcatTransform(o)
}

// Scale post-multiplies by a 2D scale.
func (t *Transform) Scale(sx, sy float64) {
	t.Scale3d(sx, sy, 1)
}

// Scale3d post-multiplies by a 3D scale.
func (t *Transform) Scale3d(sx, sy, sz float64) {
	o := Identity()
	o.m[0], o.m[5], o.m[10] = sx, sy, sz
	t.PreconcatTransform(o)
}

// RotateAboutZAxis post-multiplies by a rotation in the xy plane.
// Positive degrees rotate +x towards +y.
func (t *Transform) RotateAboutZAxis(degrees float64) {
	s, c := sinCosDegrees(degrees)
	o := Identity()
	o.m[0], o.m[1] = c, -s
	o.m[4], o.m[5] = s, c
	t.PreconcatTransform(o)
}

// RotateAboutXAxis post-multiplies by a rotation about the x axis.
func (t *Transform) RotateAboutXAxis(degrees float64) {
	s, c := sinCosDegrees(degrees)
	o := Identity()
	o.m[5], o.m[6] = c, -s
	o.m[9], o.m[10] = s, c
	t.PreconcatTransform(o)
}

// RotateAboutYAxis post-multiplies by a rotation about the y axis.
func (t *Transform) RotateAboutYAxis(degrees float64) {
	s, c := sinCosDegrees(degrees)
	o := Identity()
	o.m[0], o.m[2] = c, s
	o.m[8], o.m[10] = -s, c
	t.PreconcatTransform(o)
}

// ApplyPerspectiveDepth post-multiplies by a perspective projection with
// the eye at distance depth on the +z axis. A zero depth is ignored.
func (t *Transform) ApplyPerspectiveDepth(depth float64) {
	if depth == 0 {
		return
	}
	o := Identity()
	o.m[14] = -1 / depth
	t.PreconcatTransform(o)
}

// PreconcatTransform sets t = t * o, so o is applied to points first.
func (t *Transform) PreconcatTransform(o Transform) {
	t.m = mul(t.m, o.m)
}

// ConcatTransform sets t = o * t, so o is applied to points last.
func (t *Transform) ConcatTransform(o Transform) {
	t.m = mul(o.m, t.m)
}

// Multiply returns t * o.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{m: mul(t.m, o.m)}
}

func mul(a, b f64.Mat4) f64.Mat4 {
	var r f64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row*4+col] = a[row*4]*b[col] +
				a[row*4+1]*b[4+col] +
				a[row*4+2]*b[8+col] +
				a[row*4+3]*b[12+col]
		}
	}
	return r
}

// IsIdentity reports whether t is the identity.
func (t Transform) IsIdentity() bool {
	return t.m == Identity().m
}

// IsIdentityOrTranslation reports whether t only translates.
func (t Transform) IsIdentityOrTranslation() bool {
	m := t.m
	return m[0] == 1 && m[1] == 0 && m[2] == 0 &&
		m[4] == 0 && m[5] == 1 && m[6] == 0 &&
		m[8] == 0 && m[9] == 0 && m[10] == 1 &&
		!t.HasPerspective()
}

// IsIdentityOrIntegerTranslation reports whether t only translates by
// whole numbers in x and y.
func (t Transform) IsIdentityOrIntegerTranslation() bool {
	if !t.IsIdentityOrTranslation() {
		return false
	}
	return t.m[3] == math.Trunc(t.m[3]) && t.m[7] == math.Trunc(t.m[7])
}

// HasPerspective reports whether the bottom row differs from (0, 0, 0, 1).
func (t Transform) HasPerspective() bool {
	return t.m[12] != 0 || t.m[13] != 0 || t.m[14] != 0 || t.m[15] != 1
}

// To2dTranslation returns the x and y translation components.
func (t Transform) To2dTranslation() Vector2dF {
	return Vector2dF{X: t.m[3], Y: t.m[7]}
}

// Affine2D flattens t to the 2D affine transform acting on the z=0 plane,
// dropping z and perspective terms.
func (t Transform) Affine2D() f64.Aff3 {
	m := t.m
	return f64.Aff3{m[0], m[1], m[3], m[4], m[5], m[7]}
}

// MapVec4 returns t · v.
func (t Transform) MapVec4(v f64.Vec4) f64.Vec4 {
	m := &t.m
	return f64.Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// MapVec4s maps every vector of vs in place.
func (t Transform) MapVec4s(vs []f64.Vec4) {
	for i := range vs {
		vs[i] = t.MapVec4(vs[i])
	}
}

// TransformPoint maps p as a 2D point, dividing by w when needed.
// Callers that may see w <= 0 should use the mathutil clipping helpers.
func (t Transform) TransformPoint(p PointF) PointF {
	v := t.MapVec4(f64.Vec4{p.X, p.Y, 0, 1})
	if v[3] == 1 || v[3] == 0 {
		return PointF{X: v[0], Y: v[1]}
	}
	return PointF{X: v[0] / v[3], Y: v[1] / v[3]}
}

// Equal reports whether t and o have identical elements.
func (t Transform) Equal(o Transform) bool {
	return t.m == o.m
}

// IsInvertible reports whether t has a non-zero determinant.
func (t Transform) IsInvertible() bool {
	return math.Abs(determinant(&t.m)) > 1e-12
}

// Inverse returns the inverse of t. ok is false when t is singular, in
// which case the identity is returned.
func (t Transform) Inverse() (inv Transform, ok bool) {
	m := &t.m
	det := determinant(m)
	if math.Abs(det) <= 1e-12 {
		return Identity(), false
	}
	var r f64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			// Adjugate: transpose of the cofactor matrix.
			r[col*4+row] = cofactor(m, row, col) / det
		}
	}
	return Transform{m: r}, true
}

func determinant(m *f64.Mat4) float64 {
	var det float64
	for col := 0; col < 4; col++ {
		det += m[col] * cofactor(m, 0, col)
	}
	return det
}

func cofactor(m *f64.Mat4, row, col int) float64 {
	var sub [9]float64
	i := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			sub[i] = m[r*4+c]
			i++
		}
	}
	minor := sub[0]*(sub[4]*sub[8]-sub[5]*sub[7]) -
		sub[1]*(sub[3]*sub[8]-sub[5]*sub[6]) +
		sub[2]*(sub[3]*sub[7]-sub[4]*sub[6])
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

func sinCosDegrees(degrees float64) (sin, cos float64) {
	// Exact values for quarter turns keep axis-aligned rotations free of
	// rounding noise.
	switch math.Mod(degrees, 360) {
	case 0:
		return 0, 1
	case 90, -270:
		return 1, 0
	case 180, -180:
		return 0, -1
	case 270, -90:
		return -1, 0
	}
	return math.Sincos(degrees * math.Pi / 180)
}
