// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"errors"
	"slices"
	"testing"
)

func TestTreeNewLayer(t *testing.T) {
	tree := NewTree()
	a, b := tree.NewLayer(), tree.NewLayer()
	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a.ID(), b.ID())
	}
	got, err := tree.Layer(2)
	if err != nil || got != b {
		t.Errorf("Layer(2) = %v, %v, want %v", got, err, b)
	}
	if _, err := tree.Layer(42); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Layer(42) error = %v, want ErrLayerNotFound", err)
	}
	if got := tree.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestAddChildErrors(t *testing.T) {
	tree := NewTree()
	root, a, b := tree.NewLayer(), tree.NewLayer(), tree.NewLayer()
	if err := tree.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	if err := root.AddChild(a); err != nil {
		t.Fatal(err)
	}
	if err := a.AddChild(b); err != nil {
		t.Fatal(err)
	}
	other := NewTree().NewLayer()

	tests := []struct {
		name          string
		parent, child *Layer
		want          error
	}{
		{"self", a, a, ErrInvalidParent},
		{"ancestor", b, root, ErrInvalidParent},
		{"already attached", root, b, ErrLayerExists},
		{"other tree", root, other, ErrLayerNotFound},
		{"nil", root, nil, ErrLayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.parent.AddChild(tt.child); !errors.Is(err, tt.want) {
				t.Errorf("AddChild() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRemoveFromParentAndReattach(t *testing.T) {
	tree := NewTree()
	root, a, b := tree.NewLayer(), tree.NewLayer(), tree.NewLayer()
	_ = tree.SetRoot(root)
	_ = root.AddChild(a)
	_ = root.AddChild(b)

	a.RemoveFromParent()
	if a.Parent() != nil {
		t.Error("Parent() should be nil after RemoveFromParent")
	}
	if got := root.Children(); len(got) != 1 || got[0] != b {
		t.Errorf("Children() = %v, want [%v]", got, b)
	}
	if err := b.AddChild(a); err != nil {
		t.Errorf("reattaching: %v", err)
	}
	if a.Parent() != b {
		t.Errorf("Parent() = %v, want %v", a.Parent(), b)
	}
}

func TestTreeRemove(t *testing.T) {
	tree := NewTree()
	root, a, b, mask := tree.NewLayer(), tree.NewLayer(), tree.NewLayer(), tree.NewLayer()
	_ = tree.SetRoot(root)
	_ = root.AddChild(a)
	_ = a.AddChild(b)
	_ = a.SetMaskLayer(mask)

	if err := tree.Remove(a); err != nil {
		t.Fatal(err)
	}
	if got, want := tree.IDs(), []int{root.ID()}; !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if len(root.Children()) != 0 {
		t.Error("root should have no children")
	}
	if err := tree.Remove(a); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("second Remove() error = %v, want ErrLayerNotFound", err)
	}

	if err := tree.Remove(root); err != nil {
		t.Fatal(err)
	}
	if tree.Root() != nil {
		t.Error("removing the root should clear it")
	}
}

func TestSetRoot(t *testing.T) {
	tree := NewTree()
	a, b := tree.NewLayer(), tree.NewLayer()
	_ = a.AddChild(b)
	if err := tree.SetRoot(b); !errors.Is(err, ErrLayerExists) {
		t.Errorf("SetRoot(child) error = %v, want ErrLayerExists", err)
	}
	if err := tree.SetRoot(a); err != nil {
		t.Fatal(err)
	}
	if tree.Root() != a {
		t.Errorf("Root() = %v, want %v", tree.Root(), a)
	}
	if err := tree.SetRoot(NewTree().NewLayer()); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("SetRoot(foreign) error = %v, want ErrLayerNotFound", err)
	}
}

func TestMaskAndReplica(t *testing.T) {
	tree := NewTree()
	root, a, m1, m2, r := tree.NewLayer(), tree.NewLayer(), tree.NewLayer(), tree.NewLayer(), tree.NewLayer()
	_ = tree.SetRoot(root)
	_ = root.AddChild(a)

	if err := a.SetMaskLayer(m1); err != nil {
		t.Fatal(err)
	}
	if err := root.SetMaskLayer(m1); !errors.Is(err, ErrLayerExists) {
		t.Errorf("reusing a mask: error = %v, want ErrLayerExists", err)
	}
	if err := a.SetMaskLayer(m2); err != nil {
		t.Fatal(err)
	}
	if a.MaskLayer() != m2 {
		t.Errorf("MaskLayer() = %v, want %v", a.MaskLayer(), m2)
	}
	// The replaced mask is free again.
	if err := root.SetMaskLayer(m1); err != nil {
		t.Errorf("attaching the replaced mask: %v", err)
	}

	if err := a.SetReplicaLayer(r); err != nil {
		t.Fatal(err)
	}
	r.RemoveFromParent()
	if a.ReplicaLayer() != nil {
		t.Error("RemoveFromParent on a replica should detach it")
	}
	if err := a.SetMaskLayer(nil); err != nil || a.MaskLayer() != nil {
		t.Errorf("SetMaskLayer(nil) = %v, mask %v", err, a.MaskLayer())
	}
}

func TestWalk(t *testing.T) {
	tree := NewTree()
	root, a, b, c := tree.NewLayer(), tree.NewLayer(), tree.NewLayer(), tree.NewLayer()
	_ = tree.SetRoot(root)
	_ = root.AddChild(a)
	_ = a.AddChild(b)
	_ = root.AddChild(c)

	var got []int
	tree.Walk(func(l *Layer) { got = append(got, l.ID()) })
	if want := []int{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Walk order = %v, want %v", got, want)
	}
}

func TestResetChangeTracking(t *testing.T) {
	tree := NewTree()
	root := tree.NewLayer()
	_ = tree.SetRoot(root)
	root.SetBounds(10, 10)
	root.SetNeedsDisplay()

	tree.ResetChangeTracking()
	if root.LayerPropertyChanged() || !root.UpdateRect().IsEmpty() {
		t.Errorf("after reset: changed=%v update=%v", root.LayerPropertyChanged(), root.UpdateRect())
	}
}
