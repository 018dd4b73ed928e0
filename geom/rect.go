// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned rectangle with integer origin and size.
// A rect with non-positive width or height is empty.
type Rect struct {
	X, Y          int
	Width, Height int
}

// R is a convenience constructor for Rect.
func R(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromImage converts an image.Rectangle to a Rect.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// IsEmpty reports whether the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Union returns the smallest rect containing both r and o.
// Empty rects do not contribute.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersect returns the overlap of r and o, or the zero Rect if they
// do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x0 >= x1 || y0 >= y1 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains reports whether o lies entirely inside r.
// An empty o is contained by any rect.
func (r Rect) Contains(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks the rect by the given amounts on each side.
// Negative values grow it.
func (r Rect) Inset(left, top, right, bottom int) Rect {
	r.X += left
	r.Y += top
	r.Width = max(r.Width-left-right, 0)
	r.Height = max(r.Height-top-bottom, 0)
	return r
}

// ToRectF converts r to floating point.
func (r Rect) ToRectF() RectF {
	return RectF{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// ImageRect converts r to an image.Rectangle.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}
