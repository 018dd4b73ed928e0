// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package damage

import (
	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"github.com/gogpu/compositor/mathutil"
)

// Tracker accumulates damage for one render target across frames.
//
// A Tracker is not safe for concurrent use; it is owned by its target.
type Tracker struct {
	currentDamage geom.RectF
	pending       geom.RectF

	// Target-space rects keyed by layer id. current holds last frame's
	// rects; entries are removed as layers are seen, so what remains after
	// a pass belongs to removed layers. next collects this frame's rects.
	current map[int]geom.RectF
	next    map[int]geom.RectF

	maskID      int
	hasMask     bool
	filters     filter.Operations
	imageFilter filter.ImageFilter
}

// New returns a Tracker with no history; every layer of the first update
// is new.
func New() *Tracker {
	return &Tracker{
		current: make(map[int]geom.RectF),
		next:    make(map[int]geom.RectF),
	}
}

// CurrentDamageRect returns the damage accumulated since the last
// DidDrawDamagedArea, in target space.
func (t *Tracker) CurrentDamageRect() geom.RectF {
	return t.currentDamage
}

// DidDrawDamagedArea empties the accumulated damage. Call it once per
// drawn frame.
func (t *Tracker) DidDrawDamagedArea() {
	t.currentDamage = geom.RectF{}
}

// AddDamageNextUpdate forces r (target space) into the damage computed by
// the next UpdateDamageTrackingState.
func (t *Tracker) AddDamageNextUpdate(r geom.RectF) {
	t.pending = t.pending.Union(r)
}

// UpdateDamageTrackingState diffs layers against the previous update and
// unions the result into the current damage. layers must list every layer
// and child surface drawing into the target with id targetID; child
// surfaces must already have been updated this frame.
func (t *Tracker) UpdateDamageTrackingState(layers []Layer, targetID int, target Target) {
	var damage geom.RectF
	for i := range layers {
		l := &layers[i]
		if l.Surface != nil && l.ID != targetID {
			damage = t.extendDamageForRenderSurface(l, damage)
		} else {
			damage = t.extendDamageForLayer(l, damage)
		}
	}

	damage = damage.Union(t.damageFromSurfaceMask(target.Mask, target.ContentRect))
	damage = damage.Union(t.damageFromLeftoverRects())

	switch {
	case damage.IsEmpty():
	case target.Filters.HasFilterThatMovesPixels():
		damage = target.Filters.ExpandRect(damage)
	case target.Filter != nil:
		// The filter's reach is opaque; redraw the whole surface.
		damage = damage.Union(target.ContentRect)
	}

	if !target.Filters.Equal(t.filters) || !filter.SameImageFilter(target.Filter, t.imageFilter) {
		damage = damage.Union(target.ContentRect)
	}
	t.filters = append(t.filters[:0], target.Filters...)
	t.imageFilter = target.Filter

	if target.PropertyChangedOnlyFromDescendant {
		damage = damage.Union(target.ContentRect)
	}

	damage = damage.Union(t.pending)
	t.pending = geom.RectF{}

	t.currentDamage = t.currentDamage.Union(damage)

	t.current, t.next = t.next, t.current
	clear(t.next)

	if !damage.IsEmpty() {
		logging.Logger().Debug("damage: target updated",
			"target", targetID, "layers", len(layers), "damage", damage.String(),
			"accumulated", t.currentDamage.String())
	}
}

// removeRectFromCurrentFrame returns the rect saved for id last frame and
// forgets it. isNew is set when there was none.
func (t *Tracker) removeRectFromCurrentFrame(id int) (r geom.RectF, isNew bool) {
	r, ok := t.current[id]
	if !ok {
		return geom.RectF{}, true
	}
	delete(t.current, id)
	return r, false
}

func (t *Tracker) saveRectForNextFrame(id int, r geom.RectF) {
	t.next[id] = r
}

func (t *Tracker) extendDamageForLayer(l *Layer, damage geom.RectF) geom.RectF {
	oldRect, isNew := t.removeRectFromCurrentFrame(l.ID)

	var rect geom.RectF
	if l.DrawsContent {
		rect = mathutil.MapClippedRect(l.DrawTransform, l.ContentBounds)
	}
	t.saveRectForNextFrame(l.ID, rect)

	switch {
	case isNew || l.PropertyChanged || rect != oldRect:
		damage = damage.Union(rect)
		damage = damage.Union(oldRect)
	case l.DrawsContent && !l.UpdateRect.IsEmpty():
		damage = damage.Union(mathutil.MapClippedRect(l.DrawTransform, l.UpdateRect))
	}
	return damage
}

func (t *Tracker) extendDamageForRenderSurface(l *Layer, damage geom.RectF) geom.RectF {
	s := l.Surface

	oldRect, isNew := t.removeRectFromCurrentFrame(l.ID)
	rect := s.DrawableContentRect
	t.saveRectForNextFrame(l.ID, rect)

	var local geom.RectF
	if isNew || s.PropertyChanged || rect != oldRect {
		// Redraw the whole surface, and expose where it used to be.
		local = s.ContentRect
		damage = damage.Union(oldRect)
	} else {
		local = s.DamageRect
	}

	if !local.IsEmpty() {
		damage = damage.Union(mathutil.MapClippedRect(s.DrawTransform, local))
		if s.HasReplica {
			damage = damage.Union(mathutil.MapClippedRect(s.ReplicaDrawTransform, local))
		}
	}

	// A replica mask change damages the whole reflection, and only it.
	if s.HasReplica && s.ReplicaMask != nil {
		m := s.ReplicaMask
		_, maskIsNew := t.removeRectFromCurrentFrame(m.ID)
		maskRect := mathutil.MapClippedRect(s.ReplicaDrawTransform, m.Bounds)
		t.saveRectForNextFrame(m.ID, maskRect)
		if maskIsNew || m.changed() {
			damage = damage.Union(maskRect)
		}
	}

	// Background filters read the pixels under the surface, so damage
	// drawn so far spreads by the filter's reach, within the area the
	// filtered surface can affect.
	if s.BackgroundFilters.HasFilterThatMovesPixels() {
		damage = expandDamageInsideRectWithFilters(damage, rect, s.BackgroundFilters)
	}
	return damage
}

func expandDamageInsideRectWithFilters(damage, preFilter geom.RectF, ops filter.Operations) geom.RectF {
	if damage.IsEmpty() {
		return damage
	}
	expanded := ops.ExpandRect(damage)
	filterRect := ops.ExpandRect(preFilter)
	return damage.Union(expanded.Intersect(filterRect))
}

// damageFromSurfaceMask damages the whole target when its mask was added,
// removed, replaced, or changed. A mask multiplies the whole surface.
func (t *Tracker) damageFromSurfaceMask(m *Mask, contentRect geom.RectF) geom.RectF {
	var changed bool
	if m == nil {
		changed = t.hasMask
		t.hasMask, t.maskID = false, 0
	} else {
		changed = !t.hasMask || t.maskID != m.ID || m.changed()
		t.hasMask, t.maskID = true, m.ID
	}
	if !changed {
		return geom.RectF{}
	}
	if m != nil {
		return contentRect.Union(m.Bounds)
	}
	return contentRect
}

// damageFromLeftoverRects returns the old rects of layers that were not
// in this frame's list.
func (t *Tracker) damageFromLeftoverRects() geom.RectF {
	var damage geom.RectF
	for _, r := range t.current {
		damage = damage.Union(r)
	}
	return damage
}
