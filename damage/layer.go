// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package damage

import (
	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/geom"
)

// Layer is one entry of a target's layer list: either a layer drawing
// directly into the target, or a child render surface (Surface != nil)
// whose pixels are composited into it.
type Layer struct {
	ID int

	// DrawTransform maps layer space into target space.
	DrawTransform geom.Transform

	// ContentBounds is the layer's rect in layer space.
	ContentBounds geom.RectF

	DrawsContent bool

	// PropertyChanged is set when anything other than content changed
	// this frame: position, bounds, transform, or tree structure.
	PropertyChanged bool

	// UpdateRect is the repainted part of the layer, in layer space.
	UpdateRect geom.RectF

	Surface *Surface
}

// Surface describes a child render surface as seen from its parent
// target.
type Surface struct {
	// ContentRect is the surface's own extent in surface space.
	ContentRect geom.RectF

	// DrawTransform maps surface space into the parent target.
	DrawTransform geom.Transform

	// DrawableContentRect is the surface's footprint in the parent
	// target, replica included.
	DrawableContentRect geom.RectF

	ReplicaDrawTransform geom.Transform
	HasReplica           bool

	// PropertyChanged is set when the surface itself moved, changed
	// opacity, or changed mask or filters.
	PropertyChanged bool

	// DamageRect is the surface's current damage, in surface space. The
	// surface's own tracker must have been updated already this frame.
	DamageRect geom.RectF

	ReplicaMask       *Mask
	BackgroundFilters filter.Operations
}

// Mask describes a mask layer.
type Mask struct {
	ID              int
	Bounds          geom.RectF
	PropertyChanged bool
	UpdateRect      geom.RectF
}

func (m *Mask) changed() bool {
	return m.PropertyChanged || !m.UpdateRect.IsEmpty()
}

// Target describes the render target being updated.
type Target struct {
	// ContentRect is the target's extent in its own space.
	ContentRect geom.RectF

	// PropertyChangedOnlyFromDescendant is set when the target's content
	// rect changed because a descendant moved or resized.
	PropertyChangedOnlyFromDescendant bool

	Mask    *Mask
	Filters filter.Operations
	Filter  filter.ImageFilter
}
