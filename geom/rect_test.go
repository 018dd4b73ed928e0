// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"
	"testing"
)

func TestRectFUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b RectF
		want RectF
	}{
		{"disjoint", RF(0, 0, 10, 10), RF(20, 20, 5, 5), RF(0, 0, 25, 25)},
		{"contained", RF(0, 0, 10, 10), RF(2, 2, 3, 3), RF(0, 0, 10, 10)},
		{"empty left", RectF{}, RF(5, 6, 7, 8), RF(5, 6, 7, 8)},
		{"empty right", RF(5, 6, 7, 8), RF(100, 100, 0, 4), RF(5, 6, 7, 8)},
		{"both empty", RectF{}, RectF{}, RectF{}},
		{"negative origin", RF(-10, -5, 5, 5), RF(0, 0, 1, 1), RF(-10, -5, 11, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("%v.Union(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectFIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b RectF
		want RectF
	}{
		{"overlap", RF(0, 0, 10, 10), RF(5, 5, 10, 10), RF(5, 5, 5, 5)},
		{"disjoint", RF(0, 0, 10, 10), RF(20, 20, 5, 5), RectF{}},
		{"touching", RF(0, 0, 10, 10), RF(10, 0, 5, 5), RectF{}},
		{"empty absorbs", RF(0, 0, 10, 10), RectF{}, RectF{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectFIsEmptyNaN(t *testing.T) {
	r := RF(0, 0, math.NaN(), 10)
	if !r.IsEmpty() {
		t.Error("rect with NaN width should be empty")
	}
}

func TestRectFInsetOutset(t *testing.T) {
	r := RF(10, 10, 20, 20)
	if got, want := r.Outset(1, 2, 3, 4), RF(9, 8, 24, 26); got != want {
		t.Errorf("Outset = %v, want %v", got, want)
	}
	if got, want := r.Inset(15, 0, 15, 0), RF(25, 10, 0, 20); got != want {
		t.Errorf("Inset past zero = %v, want %v", got, want)
	}
}

func TestRectFToEnclosingRect(t *testing.T) {
	tests := []struct {
		in   RectF
		want Rect
	}{
		{RF(0, 0, 10, 10), R(0, 0, 10, 10)},
		{RF(0.5, 0.5, 1, 1), R(0, 0, 2, 2)},
		{RF(-0.5, -1.25, 1, 1), R(-1, -2, 2, 2)},
		{RectF{}, Rect{}},
		{RF(-1e20, 0, 2e20, 5), R(-maxCoord, 0, 2*maxCoord, 5)},
	}
	for _, tt := range tests {
		if got := tt.in.ToEnclosingRect(); got != tt.want {
			t.Errorf("%v.ToEnclosingRect() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectFContains(t *testing.T) {
	outer := RF(0, 0, 500, 500)
	if !outer.Contains(RF(0, 0, 500, 500)) {
		t.Error("rect should contain itself")
	}
	if outer.Contains(RF(-1, 0, 10, 10)) {
		t.Error("rect should not contain a rect crossing its left edge")
	}
	if !outer.Contains(RectF{X: 1000, Y: 1000}) {
		t.Error("any rect contains the empty rect")
	}
}

func TestRectUnionIntersect(t *testing.T) {
	a, b := R(0, 0, 10, 10), R(5, 5, 10, 10)
	if got, want := a.Union(b), R(0, 0, 15, 15); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got, want := a.Intersect(b), R(5, 5, 5, 5); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if got := a.Intersect(R(20, 20, 1, 1)); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
	if got, want := a.ImageRect().Dx(), 10; got != want {
		t.Errorf("ImageRect().Dx() = %d, want %d", got, want)
	}
}

func TestBoundingRectF(t *testing.T) {
	got := BoundingRectF(Pt(3, 4), Pt(-1, 10), Pt(7, -2))
	if want := RF(-1, -2, 8, 12); got != want {
		t.Errorf("BoundingRectF = %v, want %v", got, want)
	}
	if got := BoundingRectF(); got != (RectF{}) {
		t.Errorf("BoundingRectF() = %v, want zero", got)
	}
}

func TestQuadFromRect(t *testing.T) {
	q := QuadFromRect(RF(1, 2, 3, 4))
	if q.P1 != Pt(1, 2) || q.P2 != Pt(4, 2) || q.P3 != Pt(4, 6) || q.P4 != Pt(1, 6) {
		t.Errorf("QuadFromRect = %+v", q)
	}
	if !q.IsRectilinear() {
		t.Error("quad of a rect should be rectilinear")
	}
	if got := q.BoundingBox(); got != RF(1, 2, 3, 4) {
		t.Errorf("BoundingBox = %v", got)
	}
}
