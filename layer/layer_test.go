// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"image/color"
	"testing"

	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/geom"
)

// settledTree returns root -> parent -> child with one frame drawn and
// change tracking reset.
func settledTree(t *testing.T) (tree *Tree, root, parent, child *Layer) {
	t.Helper()
	tree = NewTree()
	root, parent, child = tree.NewLayer(), tree.NewLayer(), tree.NewLayer()
	if err := tree.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	_ = root.AddChild(parent)
	_ = parent.AddChild(child)
	root.SetBounds(100, 100)
	parent.SetBounds(50, 50)
	child.SetBounds(10, 10)
	child.SetDrawsContent(true)
	if _, err := CalculateDrawProperties(tree, geom.RF(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}
	tree.ResetChangeTracking()
	return tree, root, parent, child
}

func TestSettersMarkSubtree(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layer)
	}{
		{"position", func(l *Layer) { l.SetPosition(geom.Pt(5, 5)) }},
		{"anchor", func(l *Layer) { l.SetAnchorPoint(geom.Pt(0, 0)) }},
		{"bounds", func(l *Layer) { l.SetBounds(60, 60) }},
		{"force surface", func(l *Layer) { l.SetForceRenderSurface(true) }},
		{"transform without surface", func(l *Layer) { l.SetTransform(geom.TranslateTransform(1, 0)) }},
		{"opacity without surface", func(l *Layer) { l.SetOpacity(0.5) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, parent, child := settledTree(t)
			tt.mutate(parent)
			if !parent.LayerPropertyChanged() {
				t.Error("parent should be changed")
			}
			if !child.LayerPropertyChanged() {
				t.Error("child should be changed")
			}
		})
	}
}

func TestSettersIgnoreSameValue(t *testing.T) {
	_, _, parent, child := settledTree(t)
	parent.SetPosition(geom.Pt(0, 0))
	parent.SetBounds(50, 50)
	parent.SetTransform(geom.Identity())
	parent.SetOpacity(1)
	parent.SetFilters(nil)
	parent.SetFilter(nil)
	if parent.LayerPropertyChanged() || child.LayerPropertyChanged() {
		t.Error("setting the current value should not mark a change")
	}
}

func TestSurfaceOwnerChangesOnlySurface(t *testing.T) {
	tree, _, parent, child := settledTree(t)
	parent.SetForceRenderSurface(true)
	if _, err := CalculateDrawProperties(tree, geom.RF(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}
	tree.ResetChangeTracking()
	if parent.RenderSurface() == nil {
		t.Fatal("parent should own a surface")
	}

	parent.SetTransform(geom.TranslateTransform(3, 4))
	parent.SetOpacity(0.5)
	parent.SetFilters(filter.Operations{filter.NewGrayscale(1)})
	if !parent.LayerSurfacePropertyChanged() {
		t.Error("surface property should be changed")
	}
	if parent.LayerPropertyChanged() || child.LayerPropertyChanged() {
		t.Error("layers inside the surface should be unchanged")
	}
}

func TestLayerPropertyChangedInheritsThroughNonSurfaceAncestors(t *testing.T) {
	tree, _, parent, child := settledTree(t)
	parent.SetForceRenderSurface(true)
	_, _ = CalculateDrawProperties(tree, geom.RF(0, 0, 100, 100))
	tree.ResetChangeTracking()

	// parent had a surface when the transform changed, then lost it.
	parent.SetTransform(geom.TranslateTransform(3, 4))
	parent.forceRenderSurface = false
	_, _ = CalculateDrawProperties(tree, geom.RF(0, 0, 100, 100))
	if parent.RenderSurface() != nil {
		t.Fatal("parent should no longer own a surface")
	}
	if !child.LayerPropertyChanged() {
		t.Error("child should see the ancestor's surface property change")
	}
	if !parent.LayerPropertyChanged() {
		t.Error("parent should be changed once its surface is gone")
	}
}

func TestUpdateRect(t *testing.T) {
	_, _, _, child := settledTree(t)
	child.SetUpdateRect(geom.RF(1, 1, 2, 2))
	child.SetUpdateRect(geom.RF(5, 5, 1, 1))
	if got, want := child.UpdateRect(), geom.RF(1, 1, 5, 5); got != want {
		t.Errorf("UpdateRect() = %v, want %v", got, want)
	}

	child.SetColor(color.RGBA{R: 255, A: 255})
	if got, want := child.UpdateRect(), geom.RF(0, 0, 10, 10); got != want {
		t.Errorf("UpdateRect() after SetColor = %v, want %v", got, want)
	}
	if child.LayerPropertyChanged() {
		t.Error("SetColor should not mark a property change")
	}
}

func TestSetOpacityClamps(t *testing.T) {
	l := NewTree().NewLayer()
	l.SetOpacity(2)
	if l.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want 1", l.Opacity())
	}
	l.SetOpacity(-1)
	if l.Opacity() != 0 {
		t.Errorf("Opacity() = %v, want 0", l.Opacity())
	}
}
