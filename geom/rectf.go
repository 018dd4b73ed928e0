// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"math"
)

// RectF is a floating point axis-aligned rectangle.
//
// The empty rect is the identity element of Union and the absorbing
// element of Intersect.
type RectF struct {
	X, Y          float64
	Width, Height float64
}

// RF is a convenience constructor for RectF.
func RF(x, y, width, height float64) RectF {
	return RectF{X: x, Y: y, Width: width, Height: height}
}

// RectFromSize returns a rect at the origin with the given size.
func RectFromSize(width, height float64) RectF {
	return RectF{Width: width, Height: height}
}

// BoundingRectF returns the smallest rect containing all points.
// It returns the zero RectF when no points are given.
func BoundingRectF(points ...PointF) RectF {
	if len(points) == 0 {
		return RectF{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return RectF{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsEmpty reports whether the rect has no area.
func (r RectF) IsEmpty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// Right returns the x coordinate of the right edge.
func (r RectF) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r RectF) Origin() PointF { return PointF{X: r.X, Y: r.Y} }

// TopRight returns the top-right corner.
func (r RectF) TopRight() PointF { return PointF{X: r.Right(), Y: r.Y} }

// BottomLeft returns the bottom-left corner.
func (r RectF) BottomLeft() PointF { return PointF{X: r.X, Y: r.Bottom()} }

// BottomRight returns the bottom-right corner.
func (r RectF) BottomRight() PointF { return PointF{X: r.Right(), Y: r.Bottom()} }

// CenterPoint returns the center of the rect.
func (r RectF) CenterPoint() PointF {
	return PointF{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Union returns the smallest rect containing both r and o.
func (r RectF) Union(o RectF) RectF {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return RectF{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersect returns the overlap of r and o, or the zero RectF.
func (r RectF) Intersect(o RectF) RectF {
	x0, y0 := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	x1, y1 := math.Min(r.Right(), o.Right()), math.Min(r.Bottom(), o.Bottom())
	if x0 >= x1 || y0 >= y1 {
		return RectF{}
	}
	return RectF{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersects reports whether r and o overlap with positive area.
func (r RectF) Intersects(o RectF) bool {
	return !r.Intersect(o).IsEmpty()
}

// Contains reports whether o lies entirely inside r.
// An empty o is contained by any rect.
func (r RectF) Contains(o RectF) bool {
	if o.IsEmpty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies inside r. The right and bottom
// edges are inclusive so that mapped corners of r are contained.
func (r RectF) ContainsPoint(p PointF) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Offset returns r translated by (dx, dy).
func (r RectF) Offset(dx, dy float64) RectF {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks the rect by the given amounts on each side.
// Negative values grow it. The size never goes below zero.
func (r RectF) Inset(left, top, right, bottom float64) RectF {
	r.X += left
	r.Y += top
	r.Width = math.Max(r.Width-left-right, 0)
	r.Height = math.Max(r.Height-top-bottom, 0)
	return r
}

// Outset grows the rect by the given amounts on each side.
func (r RectF) Outset(left, top, right, bottom float64) RectF {
	return r.Inset(-left, -top, -right, -bottom)
}

// Scale returns r with origin and size multiplied by (sx, sy).
func (r RectF) Scale(sx, sy float64) RectF {
	return RectF{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

// ToEnclosingRect returns the smallest integer rect containing r.
func (r RectF) ToEnclosingRect() Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	x0 := clampInt(math.Floor(r.X))
	y0 := clampInt(math.Floor(r.Y))
	x1 := clampInt(math.Ceil(r.Right()))
	y1 := clampInt(math.Ceil(r.Bottom()))
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ApproxEqual reports whether every field of r and o differs by at most eps.
func (r RectF) ApproxEqual(o RectF, eps float64) bool {
	return math.Abs(r.X-o.X) <= eps && math.Abs(r.Y-o.Y) <= eps &&
		math.Abs(r.Width-o.Width) <= eps && math.Abs(r.Height-o.Height) <= eps
}

// String implements fmt.Stringer.
func (r RectF) String() string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}

// Enclosing integer rects of clipped geometry can reach far past the
// int32 range; keep them representable.
const maxCoord = 1 << 30

func clampInt(v float64) int {
	if v > maxCoord {
		return maxCoord
	}
	if v < -maxCoord {
		return -maxCoord
	}
	return int(v)
}
