// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mathutil

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
)

// MaxClippedVertices is the largest polygon MapClippedQuad can emit:
// clipping a quad against one plane adds at most one vertex per edge.
const MaxClippedVertices = 8

// MappedPoint is the result of mapping or projecting a 2D point.
//
// When Clipped is true the point landed on or behind the w = 0 plane and
// Point is not meaningful. It is still filled with a best-effort value for
// callers that historically ignored the flag; new callers should discard
// it.
type MappedPoint struct {
	Point   geom.PointF
	Clipped bool
}

// MappedPoint3 is the 3D counterpart of MappedPoint.
type MappedPoint3 struct {
	Point   geom.Point3F
	Clipped bool
}

// MappedQuad is the result of mapping or projecting a quad vertex by
// vertex. Clipped is true if any vertex clipped; no geometric clipping is
// performed.
type MappedQuad struct {
	Quad    geom.QuadF
	Clipped bool
}

// MapHomogeneousPoint maps p through t without the perspective divide.
func MapHomogeneousPoint(t geom.Transform, p geom.Point3F) HomogeneousCoordinate {
	return FromVec4(t.MapVec4(f64.Vec4{p.X, p.Y, p.Z, 1}))
}

// ProjectHomogeneousPoint projects p along the z axis onto the plane
// described by t and returns the mapped point before the divide.
//
// If the plane is parallel to the projection ray (t's m22 is zero) the
// layer is edge-on and invisible; a point at the origin with w = 1 is
// returned.
func ProjectHomogeneousPoint(t geom.Transform, p geom.PointF) HomogeneousCoordinate {
	m22 := t.At(2, 2)
	if m22 == 0 {
		return HomogeneousCoordinate{W: 1}
	}
	z := -(t.At(2, 0)*p.X + t.At(2, 1)*p.Y + t.At(2, 3)) / m22
	return FromVec4(t.MapVec4(f64.Vec4{p.X, p.Y, z, 1}))
}

// ComputeClippedPointForEdge returns the point on the segment h1-h2 whose
// w equals ClipEpsilon.
//
// Exactly one of h1 and h2 must be clipped. Other inputs are a caller bug;
// the interpolation is still attempted, and the zero coordinate is
// returned when it is undefined.
func ComputeClippedPointForEdge(h1, h2 HomogeneousCoordinate) HomogeneousCoordinate {
	if h1.ShouldBeClipped() == h2.ShouldBeClipped() {
		logging.Logger().Warn("mathutil: clipped edge interpolation on non-crossing edge",
			"w1", h1.W, "w2", h2.W)
		if h1.W == h2.W {
			return HomogeneousCoordinate{}
		}
	}

	// Solve (1-t)*w1 + t*w2 = ClipEpsilon for t. Dividing by exactly w = 0
	// later would be undefined, so the plane is approached instead.
	w := ClipEpsilon
	t := (w - h1.W) / (h2.W - h1.W)

	return HomogeneousCoordinate{
		X: (1-t)*h1.X + t*h2.X,
		Y: (1-t)*h1.Y + t*h2.Y,
		Z: (1-t)*h1.Z + t*h2.Z,
		W: w,
	}
}

// bounds accumulates an axis-aligned box point by point.
type bounds struct {
	xmin, ymin, xmax, ymax float64
}

func newBounds() bounds {
	return bounds{
		xmin: math.MaxFloat64, ymin: math.MaxFloat64,
		xmax: -math.MaxFloat64, ymax: -math.MaxFloat64,
	}
}

func (b *bounds) add(p geom.PointF) {
	b.xmin = math.Min(b.xmin, p.X)
	b.ymin = math.Min(b.ymin, p.Y)
	b.xmax = math.Max(b.xmax, p.X)
	b.ymax = math.Max(b.ymax, p.Y)
}

func (b *bounds) rect() geom.RectF {
	if b.xmin > b.xmax || b.ymin > b.ymax {
		return geom.RectF{}
	}
	return geom.RectF{X: b.xmin, Y: b.ymin, Width: b.xmax - b.xmin, Height: b.ymax - b.ymin}
}

// ComputeEnclosingClippedRect returns the bounds of the quad h1..h4 after
// clipping it against the w = 0 plane.
//
// Edges that cross the plane contribute the point where they reach
// w = ClipEpsilon, which pushes the bounds towards infinity in that
// direction. A fully clipped quad yields the empty rect.
func ComputeEnclosingClippedRect(h1, h2, h3, h4 HomogeneousCoordinate) geom.RectF {
	c1, c2, c3, c4 := h1.ShouldBeClipped(), h2.ShouldBeClipped(), h3.ShouldBeClipped(), h4.ShouldBeClipped()

	if c1 && c2 && c3 && c4 {
		return geom.RectF{}
	}

	if !c1 && !c2 && !c3 && !c4 {
		return geom.BoundingRectF(
			h1.CartesianPoint2d(), h2.CartesianPoint2d(),
			h3.CartesianPoint2d(), h4.CartesianPoint2d())
	}

	b := newBounds()
	hs := [4]HomogeneousCoordinate{h1, h2, h3, h4}
	for i := range hs {
		start, end := hs[i], hs[(i+1)%4]
		if !start.ShouldBeClipped() {
			b.add(start.CartesianPoint2d())
		}
		if start.ShouldBeClipped() != end.ShouldBeClipped() {
			b.add(ComputeClippedPointForEdge(start, end).CartesianPoint2d())
		}
	}
	return b.rect()
}

// ComputeEnclosingRectOfVertices returns the bounds of vertices.
func ComputeEnclosingRectOfVertices(vertices []geom.PointF) geom.RectF {
	if len(vertices) < 2 {
		return geom.RectF{}
	}
	b := newBounds()
	for _, v := range vertices {
		b.add(v)
	}
	return b.rect()
}

// MapClippedRect maps r through t and returns the bounds of the visible
// part of the result.
func MapClippedRect(t geom.Transform, r geom.RectF) geom.RectF {
	if t.IsIdentityOrTranslation() {
		d := t.To2dTranslation()
		return r.Offset(d.X, d.Y)
	}

	// Map the corners in one batch, keeping homogeneous coordinates so the
	// clip test happens before any divide.
	corners := [4]f64.Vec4{
		{r.X, r.Y, 0, 1},
		{r.Right(), r.Y, 0, 1},
		{r.Right(), r.Bottom(), 0, 1},
		{r.X, r.Bottom(), 0, 1},
	}
	t.MapVec4s(corners[:])

	return ComputeEnclosingClippedRect(
		FromVec4(corners[0]), FromVec4(corners[1]),
		FromVec4(corners[2]), FromVec4(corners[3]))
}

// MapEnclosingClippedRect is MapClippedRect for integer rects. The result
// encloses the mapped floating point bounds.
func MapEnclosingClippedRect(t geom.Transform, r geom.Rect) geom.Rect {
	if t.IsIdentityOrIntegerTranslation() {
		d := t.To2dTranslation()
		return r.Offset(int(d.X), int(d.Y))
	}
	return MapClippedRect(t, r.ToRectF()).ToEnclosingRect()
}

// ProjectClippedRect projects r onto the plane described by t and returns
// the bounds of the visible part of the result.
func ProjectClippedRect(t geom.Transform, r geom.RectF) geom.RectF {
	if t.IsIdentityOrTranslation() {
		d := t.To2dTranslation()
		return r.Offset(d.X, d.Y)
	}

	q := geom.QuadFromRect(r)
	return ComputeEnclosingClippedRect(
		ProjectHomogeneousPoint(t, q.P1),
		ProjectHomogeneousPoint(t, q.P2),
		ProjectHomogeneousPoint(t, q.P3),
		ProjectHomogeneousPoint(t, q.P4))
}

// MapClippedQuad maps q through t and clips the result against the w = 0
// plane. The visible polygon is written to the returned array in winding
// order; n is the number of valid vertices, from 0 to MaxClippedVertices.
func MapClippedQuad(t geom.Transform, q geom.QuadF) (vertices [MaxClippedVertices]geom.PointF, n int) {
	hs := [4]HomogeneousCoordinate{
		MapHomogeneousPoint(t, geom.Point3FromPointF(q.P1)),
		MapHomogeneousPoint(t, geom.Point3FromPointF(q.P2)),
		MapHomogeneousPoint(t, geom.Point3FromPointF(q.P3)),
		MapHomogeneousPoint(t, geom.Point3FromPointF(q.P4)),
	}

	for i := range hs {
		start, end := hs[i], hs[(i+1)%4]
		if !start.ShouldBeClipped() {
			vertices[n] = start.CartesianPoint2d()
			n++
		}
		if start.ShouldBeClipped() != end.ShouldBeClipped() {
			vertices[n] = ComputeClippedPointForEdge(start, end).CartesianPoint2d()
			n++
		}
	}
	return vertices, n
}

// MapPoint maps p through t.
func MapPoint(t geom.Transform, p geom.PointF) MappedPoint {
	h := MapHomogeneousPoint(t, geom.Point3FromPointF(p))
	return MappedPoint{Point: h.CartesianPoint2d(), Clipped: h.ShouldBeClipped()}
}

// MapPoint3 maps the 3D point p through t.
func MapPoint3(t geom.Transform, p geom.Point3F) MappedPoint3 {
	h := MapHomogeneousPoint(t, p)
	return MappedPoint3{Point: h.CartesianPoint3d(), Clipped: h.ShouldBeClipped()}
}

// ProjectPoint projects p onto the plane described by t.
func ProjectPoint(t geom.Transform, p geom.PointF) MappedPoint {
	h := ProjectHomogeneousPoint(t, p)
	return MappedPoint{Point: h.CartesianPoint2d(), Clipped: h.ShouldBeClipped()}
}

// ProjectPoint3 projects p onto the plane described by t, keeping the
// projected depth.
func ProjectPoint3(t geom.Transform, p geom.PointF) MappedPoint3 {
	h := ProjectHomogeneousPoint(t, p)
	return MappedPoint3{Point: h.CartesianPoint3d(), Clipped: h.ShouldBeClipped()}
}

// MapQuad maps each vertex of q through t.
func MapQuad(t geom.Transform, q geom.QuadF) MappedQuad {
	if t.IsIdentityOrTranslation() {
		return MappedQuad{Quad: q.Offset(t.To2dTranslation())}
	}
	p1 := MapPoint(t, q.P1)
	p2 := MapPoint(t, q.P2)
	p3 := MapPoint(t, q.P3)
	p4 := MapPoint(t, q.P4)
	return MappedQuad{
		Quad:    geom.QuadF{P1: p1.Point, P2: p2.Point, P3: p3.Point, P4: p4.Point},
		Clipped: p1.Clipped || p2.Clipped || p3.Clipped || p4.Clipped,
	}
}

// ProjectQuad projects each vertex of q onto the plane described by t.
func ProjectQuad(t geom.Transform, q geom.QuadF) MappedQuad {
	p1 := ProjectPoint(t, q.P1)
	p2 := ProjectPoint(t, q.P2)
	p3 := ProjectPoint(t, q.P3)
	p4 := ProjectPoint(t, q.P4)
	return MappedQuad{
		Quad:    geom.QuadF{P1: p1.Point, P2: p2.Point, P3: p3.Point, P4: p4.Point},
		Clipped: p1.Clipped || p2.Clipped || p3.Clipped || p4.Clipped,
	}
}

// ComputeTransform2dScaleComponents returns the scale t applies along its
// x and y axes. Perspective transforms have no single scale; fallback is
// returned for both axes.
func ComputeTransform2dScaleComponents(t geom.Transform, fallback float64) geom.Vector2dF {
	if t.HasPerspective() {
		return geom.Vector2dF{X: fallback, Y: fallback}
	}
	return geom.Vector2dF{
		X: scaleOnAxis(t.At(0, 0), t.At(1, 0), t.At(2, 0)),
		Y: scaleOnAxis(t.At(0, 1), t.At(1, 1), t.At(2, 1)),
	}
}

func scaleOnAxis(a, b, c float64) float64 {
	return math.Sqrt(a*a + b*b + c*c)
}

// SmallestAngleBetweenVectors returns the angle between v1 and v2 in
// degrees, in [0, 180]. Zero-length inputs produce NaN.
func SmallestAngleBetweenVectors(v1, v2 geom.Vector2dF) float64 {
	dot := v1.Dot(v2) / v1.Length() / v2.Length()
	// Rounding can push the cosine just outside [-1, 1].
	dot = math.Max(-1, math.Min(1, dot))
	return Rad2Deg(math.Acos(dot))
}

// ProjectVector returns the projection of source onto destination.
// A zero-length destination produces NaN components.
func ProjectVector(source, destination geom.Vector2dF) geom.Vector2dF {
	projected := source.Dot(destination) / destination.LengthSquared()
	return destination.Scale(projected)
}

// ScaleRectProportional maps the inset of scaleInner within scaleOuter onto
// inputOuter, scaled by the ratio of the two outer rects.
func ScaleRectProportional(inputOuter, scaleOuter, scaleInner geom.RectF) geom.RectF {
	sx := scaleOuter.Width / inputOuter.Width
	sy := scaleOuter.Height / inputOuter.Height

	topLeft := scaleInner.Origin().Sub(scaleOuter.Origin())
	bottomRight := scaleInner.BottomRight().Sub(scaleOuter.BottomRight())

	return inputOuter.Inset(
		topLeft.X/sx,
		topLeft.Y/sy,
		-bottomRight.X/sx,
		-bottomRight.Y/sy)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }
