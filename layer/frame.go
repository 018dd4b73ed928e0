// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"github.com/gogpu/compositor/damage"
	"github.com/gogpu/compositor/geom"
)

// Frame is the result of CalculateDrawProperties: the render surfaces of
// one frame and the layers drawing into each.
type Frame struct {
	tree       *Tree
	viewport   geom.RectF
	surfaces   []*RenderSurface
	layerCount int
}

// Viewport returns the root surface's content rect.
func (f *Frame) Viewport() geom.RectF { return f.viewport }

// RenderSurfaces returns the surfaces bottom-up: every surface comes after
// all surfaces nested inside it, and the root surface is last.
func (f *Frame) RenderSurfaces() []*RenderSurface { return f.surfaces }

// RootSurface returns the root layer's surface.
func (f *Frame) RootSurface() *RenderSurface { return f.surfaces[len(f.surfaces)-1] }

// LayerCount returns the number of layers drawing content this frame.
func (f *Frame) LayerCount() int { return f.layerCount }

// UpdateDamage updates every surface's tracker, children before parents.
func (f *Frame) UpdateDamage() {
	var layers []damage.Layer
	root := f.RootSurface()
	for _, s := range f.surfaces {
		// No parent target diffs the root surface, so a change to it
		// damages it whole here.
		if s == root && s.propertyChanged {
			s.tracker.AddDamageNextUpdate(s.contentRect)
		}
		layers = layers[:0]
		for _, l := range s.layerList {
			layers = append(layers, damageLayer(s, l))
		}
		owner := s.owner
		s.tracker.UpdateDamageTrackingState(layers, owner.id, damage.Target{
			ContentRect:                       s.contentRect,
			PropertyChangedOnlyFromDescendant: s.changedOnlyFromDescendant,
			Mask:                              damageMask(owner.MaskLayer()),
			Filters:                           owner.filters,
			Filter:                            owner.imageFilter,
		})
	}
}

func damageLayer(target *RenderSurface, l *Layer) damage.Layer {
	dl := damage.Layer{
		ID:              l.id,
		DrawTransform:   l.drawTransform,
		ContentBounds:   l.Bounds(),
		DrawsContent:    l.drawsContent,
		PropertyChanged: l.LayerPropertyChanged(),
		UpdateRect:      l.updateRect,
	}
	s := l.renderSurface
	if s == nil || s == target {
		return dl
	}
	dl.Surface = &damage.Surface{
		ContentRect:          s.contentRect,
		DrawTransform:        s.drawTransform,
		DrawableContentRect:  s.drawableContentRect,
		ReplicaDrawTransform: s.replicaDrawTransform,
		PropertyChanged:      s.propertyChanged,
		DamageRect:           s.tracker.CurrentDamageRect(),
		BackgroundFilters:    l.backgroundFilters,
	}
	if r := l.ReplicaLayer(); r != nil {
		dl.Surface.HasReplica = true
		dl.Surface.ReplicaMask = damageMask(r.MaskLayer())
	}
	return dl
}

func damageMask(m *Layer) *damage.Mask {
	if m == nil {
		return nil
	}
	return &damage.Mask{
		ID:              m.id,
		Bounds:          m.Bounds(),
		PropertyChanged: m.LayerPropertyChanged(),
		UpdateRect:      m.updateRect,
	}
}

// RootDamageRect returns the root surface's accumulated damage.
func (f *Frame) RootDamageRect() geom.RectF {
	return f.RootSurface().DamageRect()
}

// AddRootDamage forces r (root surface space) into the next UpdateDamage.
func (f *Frame) AddRootDamage(r geom.RectF) {
	f.RootSurface().tracker.AddDamageNextUpdate(r)
}

// DidDrawDamagedArea drains every surface's damage. Call it once the
// frame was drawn.
func (f *Frame) DidDrawDamagedArea() {
	for _, s := range f.surfaces {
		s.tracker.DidDrawDamagedArea()
	}
}
