// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"fmt"
	"slices"

	"github.com/gogpu/compositor/geom"
)

// Tree is an arena of layers keyed by id. Ids start at 1 and are never
// reused; 0 means "no layer".
//
// A Tree is not safe for concurrent use.
type Tree struct {
	layers map[int]*Layer
	nextID int
	rootID int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{layers: make(map[int]*Layer), nextID: 1}
}

// NewLayer creates an unattached layer in the tree.
func (t *Tree) NewLayer() *Layer {
	l := newLayer(t, t.nextID)
	t.layers[l.id] = l
	t.nextID++
	return l
}

// Layer returns the layer with the given id.
func (t *Tree) Layer(id int) (*Layer, error) {
	l, ok := t.layers[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrLayerNotFound)
	}
	return l, nil
}

func (t *Tree) lookup(id int) *Layer {
	if id == 0 {
		return nil
	}
	return t.layers[id]
}

// Len returns the number of layers in the arena, attached or not.
func (t *Tree) Len() int { return len(t.layers) }

// Root returns the root layer, or nil.
func (t *Tree) Root() *Layer { return t.lookup(t.rootID) }

// SetRoot makes l the root. l must be unattached. Passing nil clears the
// root.
func (t *Tree) SetRoot(l *Layer) error {
	if l == nil {
		t.rootID = 0
		return nil
	}
	if err := t.checkOwned(l); err != nil {
		return fmt.Errorf("set root: %w", err)
	}
	if l.id == t.rootID {
		return nil
	}
	if l.attached() {
		return fmt.Errorf("set root %d: %w", l.id, ErrLayerExists)
	}
	t.rootID = l.id
	l.noteLayerPropertyChangedForSubtree()
	return nil
}

// Remove detaches l and deletes it, its descendants, masks and replicas
// from the arena.
func (t *Tree) Remove(l *Layer) error {
	if err := t.checkOwned(l); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	l.RemoveFromParent()
	if l.id == t.rootID {
		t.rootID = 0
	}
	t.forget(l)
	return nil
}

func (t *Tree) forget(l *Layer) {
	for _, c := range l.Children() {
		t.forget(c)
	}
	if m := l.MaskLayer(); m != nil {
		t.forget(m)
	}
	if r := l.ReplicaLayer(); r != nil {
		t.forget(r)
	}
	delete(t.layers, l.id)
	l.tree = nil
}

func (t *Tree) checkOwned(l *Layer) error {
	if l == nil || l.tree != t {
		return ErrLayerNotFound
	}
	return nil
}

// ResetChangeTracking clears every layer's change flags and update rect.
// Call it after a frame has been drawn.
func (t *Tree) ResetChangeTracking() {
	for _, l := range t.layers {
		l.layerPropertyChanged = false
		l.layerSurfacePropertyChanged = false
		l.updateRect = geom.RectF{}
	}
}

// Walk calls fn for the root and its descendants in paint order, parents
// before children. Masks and replicas are not visited.
func (t *Tree) Walk(fn func(*Layer)) {
	var walk func(*Layer)
	walk = func(l *Layer) {
		fn(l)
		for _, c := range l.Children() {
			walk(c)
		}
	}
	if root := t.Root(); root != nil {
		walk(root)
	}
}

// IDs returns the ids of every layer in the arena, sorted.
func (t *Tree) IDs() []int {
	ids := make([]int, 0, len(t.layers))
	for id := range t.layers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
