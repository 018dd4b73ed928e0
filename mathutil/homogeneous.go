// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mathutil

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/compositor/geom"
)

// ClipEpsilon is the w value assigned to points interpolated onto the
// w = 0 clipping plane.
//
// A larger value keeps clipped coordinates further from overflow, a smaller
// one keeps the interpolated edge closer to the true plane. No single value
// is exact; 1e-5 keeps coordinates of typical layers well inside float
// range while remaining visually indistinguishable from infinity.
const ClipEpsilon = 1e-5

// HomogeneousCoordinate is a 4D point produced by mapping through a
// Transform, before the perspective divide.
type HomogeneousCoordinate struct {
	X, Y, Z, W float64
}

// FromVec4 converts a mapped f64.Vec4.
func FromVec4(v f64.Vec4) HomogeneousCoordinate {
	return HomogeneousCoordinate{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Vec4 returns h as an f64.Vec4.
func (h HomogeneousCoordinate) Vec4() f64.Vec4 {
	return f64.Vec4{h.X, h.Y, h.Z, h.W}
}

// ShouldBeClipped reports whether h lies on or behind the w = 0 plane.
func (h HomogeneousCoordinate) ShouldBeClipped() bool {
	return h.W <= 0
}

// CartesianPoint2d divides x and y by w.
//
// It must not be called with w == 0; in that case the zero point is
// returned instead of infinities.
func (h HomogeneousCoordinate) CartesianPoint2d() geom.PointF {
	if h.W == 1 {
		return geom.PointF{X: h.X, Y: h.Y}
	}
	if h.W == 0 {
		return geom.PointF{}
	}
	invW := 1 / h.W
	return geom.PointF{X: h.X * invW, Y: h.Y * invW}
}

// CartesianPoint3d divides x, y and z by w. A zero w yields the zero point.
func (h HomogeneousCoordinate) CartesianPoint3d() geom.Point3F {
	if h.W == 1 {
		return geom.Point3F{X: h.X, Y: h.Y, Z: h.Z}
	}
	if h.W == 0 {
		return geom.Point3F{}
	}
	invW := 1 / h.W
	return geom.Point3F{X: h.X * invW, Y: h.Y * invW, Z: h.Z * invW}
}
