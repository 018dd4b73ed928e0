// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "math"

// Point is an integer 2D point.
type Point struct {
	X, Y int
}

// PointF is a floating point 2D point.
type PointF struct {
	X, Y float64
}

// Pt is a convenience function to create a PointF.
func Pt(x, y float64) PointF {
	return PointF{X: x, Y: y}
}

// Add returns p offset by v.
func (p PointF) Add(v Vector2dF) PointF {
	return PointF{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p PointF) Sub(q PointF) Vector2dF {
	return Vector2dF{X: p.X - q.X, Y: p.Y - q.Y}
}

// Point3F is a floating point 3D point.
type Point3F struct {
	X, Y, Z float64
}

// Point3FromPointF lifts p onto the z=0 plane.
func Point3FromPointF(p PointF) Point3F {
	return Point3F{X: p.X, Y: p.Y}
}

// Vector2dF is a floating point 2D vector.
type Vector2dF struct {
	X, Y float64
}

// Length returns the Euclidean length of v.
func (v Vector2dF) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared length of v.
func (v Vector2dF) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of v and o.
func (v Vector2dF) Dot(o Vector2dF) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Scale returns v multiplied by s.
func (v Vector2dF) Scale(s float64) Vector2dF {
	return Vector2dF{X: v.X * s, Y: v.Y * s}
}
