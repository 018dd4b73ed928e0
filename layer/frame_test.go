// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"math"
	"testing"

	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/geom"
)

// updateDamage computes one frame's damage without drawing it.
func updateDamage(t *testing.T, tree *Tree) *Frame {
	t.Helper()
	f := calc(t, tree)
	f.UpdateDamage()
	return f
}

// drawFrame runs a full frame and returns the root damage it drew.
func drawFrame(t *testing.T, tree *Tree) geom.RectF {
	t.Helper()
	f := updateDamage(t, tree)
	d := f.RootDamageRect()
	f.DidDrawDamagedArea()
	tree.ResetChangeTracking()
	return d
}

// simpleTree is a 500x500 root with a 30x30 child at (100, 100), settled.
func simpleTree(t *testing.T) (*Tree, *Layer, *Layer) {
	t.Helper()
	tree, root := newRootTree()
	child := newDrawingLayer(tree, 100, 100, 30, 30)
	_ = root.AddChild(child)
	if got := drawFrame(t, tree); got != viewport {
		t.Fatalf("first frame damage = %v, want %v", got, viewport)
	}
	return tree, root, child
}

func TestFrameNoChange(t *testing.T) {
	tree, _, _ := simpleTree(t)
	if got := drawFrame(t, tree); !got.IsEmpty() {
		t.Errorf("damage = %v, want empty", got)
	}
}

func TestFrameUpdateRect(t *testing.T) {
	tree, _, child := simpleTree(t)
	child.SetUpdateRect(geom.RF(10, 11, 12, 13))
	if got, want := drawFrame(t, tree), geom.RF(110, 111, 12, 13); got != want {
		t.Errorf("damage = %v, want %v", got, want)
	}
}

func TestFrameMovedLayer(t *testing.T) {
	tree, _, child := simpleTree(t)
	child.SetPosition(geom.Pt(200, 230))
	if got, want := drawFrame(t, tree), geom.RF(100, 100, 130, 160); got != want {
		t.Errorf("damage = %v, want %v", got, want)
	}
}

func TestFrameRotatedLayer(t *testing.T) {
	tree, _, child := simpleTree(t)
	child.SetPosition(geom.Pt(85, 85))
	if got, want := drawFrame(t, tree), geom.RF(85, 85, 45, 45); got != want {
		t.Fatalf("move damage = %v, want %v", got, want)
	}

	rot := geom.Identity()
	rot.RotateAboutZAxis(45)
	child.SetTransform(rot)
	got := drawFrame(t, tree)

	side := 30 * math.Sqrt2
	want := geom.RF(100-side/2, 100-side/2, side, side)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("damage = %v, want %v", got, want)
	}
	if !got.Contains(geom.RF(85, 85, 30, 30)) {
		t.Errorf("damage %v does not contain the old rect", got)
	}
}

func TestFramePerspectiveClippedLayer(t *testing.T) {
	tree, root := newRootTree()
	child := newDrawingLayer(tree, 0, 0, 100, 100)
	child.SetAnchorPoint(geom.Pt(0, 0))
	_ = root.AddChild(child)
	drawFrame(t, tree)

	persp := geom.Identity()
	persp.Translate3d(500, 500, 0)
	persp.ApplyPerspectiveDepth(1)
	persp.RotateAboutYAxis(45)
	persp.Translate3d(-50, -50, 0)
	child.SetTransform(persp)

	if got := drawFrame(t, tree); !got.Contains(viewport) {
		t.Errorf("damage = %v, want it to contain %v", got, viewport)
	}
}

func TestFrameAddedAndRemovedLayers(t *testing.T) {
	tree, root, child := simpleTree(t)

	added := newDrawingLayer(tree, 300, 300, 20, 20)
	_ = root.AddChild(added)
	if got, want := drawFrame(t, tree), geom.RF(300, 300, 20, 20); got != want {
		t.Errorf("added damage = %v, want %v", got, want)
	}

	if err := tree.Remove(child); err != nil {
		t.Fatal(err)
	}
	if got, want := drawFrame(t, tree), geom.RF(100, 100, 30, 30); got != want {
		t.Errorf("removed damage = %v, want %v", got, want)
	}
}

func TestFrameAddRootDamage(t *testing.T) {
	tree, _, _ := simpleTree(t)
	f := calc(t, tree)
	f.AddRootDamage(geom.RF(1, 2, 3, 4))
	f.UpdateDamage()
	if got, want := f.RootDamageRect(), geom.RF(1, 2, 3, 4); got != want {
		t.Errorf("damage = %v, want %v", got, want)
	}
}

// surfaceTree is a 500x500 root with a 50x50 surface at (200, 200) holding
// a 10x10 child at (5, 5), settled.
func surfaceTree(t *testing.T, configure func(a *Layer)) (tree *Tree, root, a, b *Layer) {
	t.Helper()
	tree, root = newRootTree()
	a = newDrawingLayer(tree, 200, 200, 50, 50)
	a.SetForceRenderSurface(true)
	b = newDrawingLayer(tree, 5, 5, 10, 10)
	_ = root.AddChild(a)
	_ = a.AddChild(b)
	if configure != nil {
		configure(a)
	}
	drawFrame(t, tree)
	return tree, root, a, b
}

func TestFrameSurfaceDamagePropagates(t *testing.T) {
	tree, _, a, b := surfaceTree(t, nil)
	b.SetUpdateRect(geom.RF(0, 0, 2, 2))

	f := updateDamage(t, tree)
	if got, want := a.RenderSurface().DamageRect(), geom.RF(5, 5, 2, 2); got != want {
		t.Errorf("surface damage = %v, want %v", got, want)
	}
	if got, want := f.RootDamageRect(), geom.RF(205, 205, 2, 2); got != want {
		t.Errorf("root damage = %v, want %v", got, want)
	}
	if got, want := a.RenderSurface().ScreenSpaceDamageRect(), geom.RF(205, 205, 2, 2); got != want {
		t.Errorf("screen space surface damage = %v, want %v", got, want)
	}
}

func TestFrameSurfaceOpacityChange(t *testing.T) {
	tree, _, a, _ := surfaceTree(t, nil)
	a.SetOpacity(0.5)

	f := updateDamage(t, tree)
	if got := a.RenderSurface().DamageRect(); !got.IsEmpty() {
		t.Errorf("surface damage = %v, want empty", got)
	}
	if got, want := f.RootDamageRect(), geom.RF(200, 200, 50, 50); got != want {
		t.Errorf("root damage = %v, want %v", got, want)
	}
}

func TestFrameDescendantGrowsSurface(t *testing.T) {
	tree, _, a, b := surfaceTree(t, nil)
	b.SetPosition(geom.Pt(60, 60))

	f := updateDamage(t, tree)
	s := a.RenderSurface()
	if !s.SurfacePropertyChangedOnlyFromDescendant() {
		t.Error("content rect change should be attributed to descendants")
	}
	if got, want := s.DamageRect(), geom.RF(0, 0, 70, 70); got != want {
		t.Errorf("surface damage = %v, want %v", got, want)
	}
	if got, want := f.RootDamageRect(), geom.RF(200, 200, 70, 70); got != want {
		t.Errorf("root damage = %v, want %v", got, want)
	}
}

func TestFrameSurfaceMask(t *testing.T) {
	var mask *Layer
	tree, _, a, _ := surfaceTree(t, func(a *Layer) {
		mask = a.Tree().NewLayer()
		mask.SetBounds(50, 50)
		_ = a.SetMaskLayer(mask)
	})

	mask.SetUpdateRect(geom.RF(0, 0, 1, 1))
	f := updateDamage(t, tree)
	if got, want := a.RenderSurface().DamageRect(), geom.RF(0, 0, 50, 50); got != want {
		t.Errorf("surface damage = %v, want %v", got, want)
	}
	if got, want := f.RootDamageRect(), geom.RF(200, 200, 50, 50); got != want {
		t.Errorf("root damage = %v, want %v", got, want)
	}
}

func TestFrameForegroundBlur(t *testing.T) {
	tree, _, _, b := surfaceTree(t, func(a *Layer) {
		a.SetFilters(filter.Operations{filter.NewBlur(1)})
	})
	b.SetUpdateRect(geom.RF(0, 0, 2, 2))
	if got, want := drawFrame(t, tree), geom.RF(202, 202, 8, 8); got != want {
		t.Errorf("damage = %v, want %v", got, want)
	}
}

func TestFrameBackgroundBlur(t *testing.T) {
	tree, root, _, _ := surfaceTree(t, func(a *Layer) {
		a.SetBackgroundFilters(filter.Operations{filter.NewBlur(2)})
	})
	root.SetUpdateRect(geom.RF(190, 190, 2, 2))
	if got, want := drawFrame(t, tree), geom.RF(190, 190, 8, 8); got != want {
		t.Errorf("damage = %v, want %v", got, want)
	}

	root.SetUpdateRect(geom.RF(10, 10, 2, 2))
	if got, want := drawFrame(t, tree), geom.RF(10, 10, 2, 2); got != want {
		t.Errorf("far damage = %v, want %v", got, want)
	}
}

func TestFrameReplica(t *testing.T) {
	var replica *Layer
	tree, _, _, b := surfaceTree(t, func(a *Layer) {
		replica = a.Tree().NewLayer()
		replica.SetPosition(geom.Pt(0, 60))
		_ = a.SetReplicaLayer(replica)
	})

	b.SetUpdateRect(geom.RF(0, 0, 2, 2))
	if got, want := drawFrame(t, tree), geom.RF(205, 205, 2, 62); got != want {
		t.Errorf("damage = %v, want %v", got, want)
	}

	replicaMask := tree.NewLayer()
	replicaMask.SetBounds(50, 50)
	_ = replica.SetMaskLayer(replicaMask)
	drawFrame(t, tree)

	replicaMask.SetUpdateRect(geom.RF(0, 0, 1, 1))
	if got, want := drawFrame(t, tree), geom.RF(200, 260, 50, 50); got != want {
		t.Errorf("replica mask damage = %v, want %v", got, want)
	}
}

func TestFrameSurfaceAppearsOrDisappears(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(tree *Tree, root *Layer) *Layer
		change func(l *Layer)
		want   geom.RectF
	}{
		{
			name: "filter removed",
			setup: func(tree *Tree, root *Layer) *Layer {
				l := newDrawingLayer(tree, 100, 100, 30, 30)
				l.SetFilters(filter.Operations{filter.NewGrayscale(1)})
				_ = root.AddChild(l)
				return l
			},
			change: func(l *Layer) { l.SetFilters(nil) },
			want:   geom.RF(100, 100, 30, 30),
		},
		{
			name: "filter added",
			setup: func(tree *Tree, root *Layer) *Layer {
				l := newDrawingLayer(tree, 100, 100, 30, 30)
				_ = root.AddChild(l)
				return l
			},
			change: func(l *Layer) { l.SetFilters(filter.Operations{filter.NewGrayscale(1)}) },
			want:   geom.RF(100, 100, 30, 30),
		},
		{
			name: "group opacity back to 1",
			setup: func(tree *Tree, root *Layer) *Layer {
				l := newDrawingLayer(tree, 100, 100, 50, 50)
				_ = l.AddChild(newDrawingLayer(tree, 10, 10, 10, 10))
				l.SetOpacity(0.5)
				_ = root.AddChild(l)
				return l
			},
			change: func(l *Layer) { l.SetOpacity(1) },
			want:   geom.RF(100, 100, 50, 50),
		},
		{
			name: "group opacity below 1",
			setup: func(tree *Tree, root *Layer) *Layer {
				l := newDrawingLayer(tree, 100, 100, 50, 50)
				_ = l.AddChild(newDrawingLayer(tree, 10, 10, 10, 10))
				_ = root.AddChild(l)
				return l
			},
			change: func(l *Layer) { l.SetOpacity(0.5) },
			want:   geom.RF(100, 100, 50, 50),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, root := newRootTree()
			l := tt.setup(tree, root)
			drawFrame(t, tree)
			hadSurface := l.RenderSurface() != nil

			tt.change(l)
			if got := drawFrame(t, tree); got != tt.want {
				t.Errorf("damage = %v, want %v", got, tt.want)
			}
			if hasSurface := l.RenderSurface() != nil; hasSurface == hadSurface {
				t.Fatalf("RenderSurface() != nil = %v both frames, want a change", hasSurface)
			}
			if got := drawFrame(t, tree); !got.IsEmpty() {
				t.Errorf("settled damage = %v, want empty", got)
			}
		})
	}
}

func TestFrameRootSurfaceChange(t *testing.T) {
	tests := []struct {
		name   string
		change func(root *Layer)
		want   geom.RectF
	}{
		{"opacity", func(root *Layer) { root.SetOpacity(0.5) }, viewport},
		{"filters", func(root *Layer) { root.SetFilters(filter.Operations{filter.NewInvert(1)}) }, viewport},
		// The shifted content reaches past the viewport; the host clips it.
		{"transform", func(root *Layer) { root.SetTransform(geom.TranslateTransform(5, 0)) }, geom.RF(0, 0, 505, 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, root, _ := simpleTree(t)
			tt.change(root)
			if got := drawFrame(t, tree); got != tt.want {
				t.Errorf("damage = %v, want %v", got, tt.want)
			}
			if got := drawFrame(t, tree); !got.IsEmpty() {
				t.Errorf("settled damage = %v, want empty", got)
			}
		})
	}
}
