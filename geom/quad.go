// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// QuadF is a quadrilateral given by four points in winding order
// p1 → p2 → p3 → p4.
type QuadF struct {
	P1, P2, P3, P4 PointF
}

// QuadFromRect returns the quad of r's corners, clockwise from the origin.
func QuadFromRect(r RectF) QuadF {
	return QuadF{
		P1: r.Origin(),
		P2: r.TopRight(),
		P3: r.BottomRight(),
		P4: r.BottomLeft(),
	}
}

// Points returns the four corners in winding order.
func (q QuadF) Points() [4]PointF {
	return [4]PointF{q.P1, q.P2, q.P3, q.P4}
}

// BoundingBox returns the axis-aligned bounds of the quad.
func (q QuadF) BoundingBox() RectF {
	return BoundingRectF(q.P1, q.P2, q.P3, q.P4)
}

// Offset returns q translated by v.
func (q QuadF) Offset(v Vector2dF) QuadF {
	return QuadF{P1: q.P1.Add(v), P2: q.P2.Add(v), P3: q.P3.Add(v), P4: q.P4.Add(v)}
}

// IsRectilinear reports whether every edge is axis-aligned.
func (q QuadF) IsRectilinear() bool {
	return (q.P1.X == q.P2.X && q.P2.Y == q.P3.Y && q.P3.X == q.P4.X && q.P4.Y == q.P1.Y) ||
		(q.P1.Y == q.P2.Y && q.P2.X == q.P3.X && q.P3.Y == q.P4.Y && q.P4.X == q.P1.X)
}
