// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"github.com/gogpu/compositor/damage"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/mathutil"
)

// RenderSurface is an offscreen target owned by a layer. Its space is the
// owning layer's space; the root surface's space is the viewport.
//
// A surface lives as long as its owner needs one, so its damage tracker
// keeps history across frames.
type RenderSurface struct {
	owner   *Layer
	tracker *damage.Tracker

	contentRect    geom.RectF
	hasContentRect bool

	drawTransform               geom.Transform
	screenSpaceTransform        geom.Transform
	replicaDrawTransform        geom.Transform
	replicaScreenSpaceTransform geom.Transform
	drawOpacity                 float64
	drawableContentRect         geom.RectF

	layerList []*Layer

	propertyChanged           bool
	changedOnlyFromDescendant bool
}

func newRenderSurface(owner *Layer) *RenderSurface {
	return &RenderSurface{
		owner:                       owner,
		tracker:                     damage.New(),
		drawTransform:               geom.Identity(),
		screenSpaceTransform:        geom.Identity(),
		replicaDrawTransform:        geom.Identity(),
		replicaScreenSpaceTransform: geom.Identity(),
		drawOpacity:                 1,
	}
}

// Owner returns the layer owning the surface.
func (s *RenderSurface) Owner() *Layer { return s.owner }

// ID returns the owning layer's id.
func (s *RenderSurface) ID() int { return s.owner.id }

// DamageTracker returns the surface's tracker.
func (s *RenderSurface) DamageTracker() *damage.Tracker { return s.tracker }

// ContentRect returns the surface's extent in its own space.
func (s *RenderSurface) ContentRect() geom.RectF { return s.contentRect }

// DrawTransform maps surface space into the parent target.
func (s *RenderSurface) DrawTransform() geom.Transform { return s.drawTransform }

// ScreenSpaceTransform maps surface space into root surface space.
func (s *RenderSurface) ScreenSpaceTransform() geom.Transform { return s.screenSpaceTransform }

// HasReplica reports whether the surface is also drawn reflected.
func (s *RenderSurface) HasReplica() bool { return s.owner.ReplicaLayer() != nil }

// ReplicaDrawTransform maps surface space to the reflection in the parent
// target.
func (s *RenderSurface) ReplicaDrawTransform() geom.Transform { return s.replicaDrawTransform }

// ReplicaScreenSpaceTransform maps surface space to the reflection in root
// surface space.
func (s *RenderSurface) ReplicaScreenSpaceTransform() geom.Transform {
	return s.replicaScreenSpaceTransform
}

// DrawOpacity is the opacity the surface is composited with.
func (s *RenderSurface) DrawOpacity() float64 { return s.drawOpacity }

// DrawableContentRect is the surface's footprint in the parent target,
// reflection included.
func (s *RenderSurface) DrawableContentRect() geom.RectF { return s.drawableContentRect }

// LayerList returns, back to front, the layers drawing into the surface.
// An entry that owns a different surface stands for that whole surface.
func (s *RenderSurface) LayerList() []*Layer { return s.layerList }

// SurfacePropertyChanged reports whether the surface moved, changed
// composite properties, or changed its content rect this frame.
func (s *RenderSurface) SurfacePropertyChanged() bool { return s.propertyChanged }

// SurfacePropertyChangedOnlyFromDescendant reports whether the only change
// was to the content rect, caused by descendants.
func (s *RenderSurface) SurfacePropertyChangedOnlyFromDescendant() bool {
	return s.changedOnlyFromDescendant
}

// DamageRect returns the surface's accumulated damage in surface space.
func (s *RenderSurface) DamageRect() geom.RectF { return s.tracker.CurrentDamageRect() }

// ScreenSpaceDamageRect returns the damage mapped into root surface space.
func (s *RenderSurface) ScreenSpaceDamageRect() geom.RectF {
	return mathutil.MapClippedRect(s.screenSpaceTransform, s.DamageRect())
}

func (s *RenderSurface) setContentRect(r geom.RectF) (changed bool) {
	changed = s.hasContentRect && r != s.contentRect
	s.contentRect, s.hasContentRect = r, true
	return changed
}
