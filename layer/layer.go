// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"fmt"
	"image/color"

	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/geom"
)

// Layer is a node of a Tree. Create layers with Tree.NewLayer.
//
// Geometry: a layer covers (0, 0, width, height) in its own space. It is
// placed in its parent by
//
//	T(position + anchor*size) * transform * T(-anchor*size)
//
// so the transform acts about the anchor point, given as a fraction of the
// size. The default anchor is the center.
type Layer struct {
	tree *Tree
	id   int

	parentID  int
	childIDs  []int
	maskID    int
	replicaID int
	ownerID   int // set on masks and replicas

	position    geom.PointF
	anchorPoint geom.PointF
	width       float64
	height      float64
	transform   geom.Transform
	opacity     float64

	drawsContent       bool
	forceRenderSurface bool

	filters           filter.Operations
	backgroundFilters filter.Operations
	imageFilter       filter.ImageFilter
	color             color.RGBA

	// Change tracking, cleared by Tree.ResetChangeTracking.
	layerPropertyChanged        bool
	layerSurfacePropertyChanged bool
	updateRect                  geom.RectF

	// Draw properties, computed by CalculateDrawProperties.
	drawTransform                 geom.Transform
	screenSpaceTransform          geom.Transform
	drawOpacity                   float64
	renderTargetID                int
	renderSurface                 *RenderSurface
	numDescendantsThatDrawContent int
}

func newLayer(t *Tree, id int) *Layer {
	return &Layer{
		tree:                 t,
		id:                   id,
		anchorPoint:          geom.Pt(0.5, 0.5),
		transform:            geom.Identity(),
		opacity:              1,
		drawTransform:        geom.Identity(),
		screenSpaceTransform: geom.Identity(),
		drawOpacity:          1,
	}
}

// ID returns the layer's id in its tree.
func (l *Layer) ID() int { return l.id }

// Tree returns the owning tree, or nil once the layer was removed.
func (l *Layer) Tree() *Tree { return l.tree }

func (l *Layer) lookup(id int) *Layer {
	if l.tree == nil {
		return nil
	}
	return l.tree.lookup(id)
}

// Parent returns the parent layer, or nil.
func (l *Layer) Parent() *Layer { return l.lookup(l.parentID) }

// Children returns the children in paint order, back to front.
func (l *Layer) Children() []*Layer {
	out := make([]*Layer, 0, len(l.childIDs))
	for _, id := range l.childIDs {
		if c := l.lookup(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// MaskLayer returns the layer whose alpha masks this layer's surface.
func (l *Layer) MaskLayer() *Layer { return l.lookup(l.maskID) }

// ReplicaLayer returns the layer positioning this layer's reflection.
func (l *Layer) ReplicaLayer() *Layer { return l.lookup(l.replicaID) }

func (l *Layer) attached() bool {
	return l.parentID != 0 || l.ownerID != 0 || (l.tree != nil && l.tree.rootID == l.id)
}

func (l *Layer) isAncestorOf(o *Layer) bool {
	for p := o; p != nil; p = p.Parent() {
		if p == l {
			return true
		}
	}
	return false
}

func (l *Layer) checkAttachable(c *Layer) error {
	if l.tree == nil || c == nil || c.tree != l.tree {
		return ErrLayerNotFound
	}
	if c.isAncestorOf(l) {
		return ErrInvalidParent
	}
	if c.attached() {
		return ErrLayerExists
	}
	return nil
}

// AddChild appends c as the front-most child of l.
func (l *Layer) AddChild(c *Layer) error {
	if err := l.checkAttachable(c); err != nil {
		return fmt.Errorf("add child to %d: %w", l.id, err)
	}
	l.childIDs = append(l.childIDs, c.id)
	c.parentID = l.id
	c.noteLayerPropertyChangedForSubtree()
	return nil
}

// RemoveFromParent detaches l from its parent, or from the layer it masks
// or replicates. l stays in the arena and can be attached again.
func (l *Layer) RemoveFromParent() {
	if p := l.Parent(); p != nil {
		for i, id := range p.childIDs {
			if id == l.id {
				p.childIDs = append(p.childIDs[:i], p.childIDs[i+1:]...)
				break
			}
		}
	}
	if o := l.lookup(l.ownerID); o != nil {
		switch l.id {
		case o.maskID:
			o.maskID = 0
		case o.replicaID:
			o.replicaID = 0
		}
		o.noteLayerPropertyChangedForSubtree()
	}
	l.parentID, l.ownerID = 0, 0
}

// SetMaskLayer sets the layer whose alpha masks l's render surface. Pass
// nil to remove the mask; a replaced mask is detached but stays in the
// arena.
func (l *Layer) SetMaskLayer(m *Layer) error {
	return l.setAttachment(&l.maskID, m)
}

// SetReplicaLayer sets the layer positioning l's reflection. Its own mask
// masks the reflection only.
func (l *Layer) SetReplicaLayer(r *Layer) error {
	return l.setAttachment(&l.replicaID, r)
}

func (l *Layer) setAttachment(slot *int, a *Layer) error {
	if a != nil && a.id == *slot {
		return nil
	}
	if a != nil {
		if err := l.checkAttachable(a); err != nil {
			return fmt.Errorf("attach %d to %d: %w", a.id, l.id, err)
		}
	}
	if old := l.lookup(*slot); old != nil {
		old.ownerID = 0
	}
	*slot = 0
	if a != nil {
		*slot = a.id
		a.ownerID = l.id
		a.noteLayerPropertyChangedForSubtree()
	}
	l.noteLayerPropertyChangedForSubtree()
	return nil
}

// Position returns the layer's offset in its parent.
func (l *Layer) Position() geom.PointF { return l.position }

// SetPosition moves the layer within its parent.
func (l *Layer) SetPosition(p geom.PointF) {
	if p == l.position {
		return
	}
	l.position = p
	l.noteLayerPropertyChangedForSubtree()
}

// AnchorPoint returns the transform origin as a fraction of the size.
func (l *Layer) AnchorPoint() geom.PointF { return l.anchorPoint }

// SetAnchorPoint sets the transform origin as a fraction of the size.
func (l *Layer) SetAnchorPoint(p geom.PointF) {
	if p == l.anchorPoint {
		return
	}
	l.anchorPoint = p
	l.noteLayerPropertyChangedForSubtree()
}

// Bounds returns (0, 0, width, height).
func (l *Layer) Bounds() geom.RectF { return geom.RectFromSize(l.width, l.height) }

// SetBounds resizes the layer.
func (l *Layer) SetBounds(width, height float64) {
	if width == l.width && height == l.height {
		return
	}
	l.width, l.height = width, height
	l.noteLayerPropertyChangedForSubtree()
}

// Transform returns the layer's transform about its anchor point.
func (l *Layer) Transform() geom.Transform { return l.transform }

// SetTransform sets the transform about the anchor point.
func (l *Layer) SetTransform(t geom.Transform) {
	if t.Equal(l.transform) {
		return
	}
	l.transform = t
	l.noteSurfaceOrSubtreeChanged()
}

// Opacity returns the layer's own opacity.
func (l *Layer) Opacity() float64 { return l.opacity }

// SetOpacity sets the opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(o float64) {
	o = min(max(o, 0), 1)
	if o == l.opacity {
		return
	}
	l.opacity = o
	l.noteSurfaceOrSubtreeChanged()
}

// DrawsContent reports whether the layer paints its own pixels.
func (l *Layer) DrawsContent() bool { return l.drawsContent }

// SetDrawsContent sets whether the layer paints its own pixels.
func (l *Layer) SetDrawsContent(draws bool) {
	if draws == l.drawsContent {
		return
	}
	l.drawsContent = draws
	l.noteLayerPropertyChanged()
}

// ForceRenderSurface reports whether the layer always owns a surface.
func (l *Layer) ForceRenderSurface() bool { return l.forceRenderSurface }

// SetForceRenderSurface makes the layer own a render surface even when
// nothing else requires one.
func (l *Layer) SetForceRenderSurface(force bool) {
	if force == l.forceRenderSurface {
		return
	}
	l.forceRenderSurface = force
	l.noteLayerPropertyChangedForSubtree()
}

// Filters returns the filters applied to the layer's surface.
func (l *Layer) Filters() filter.Operations { return l.filters }

// SetFilters sets the filters applied to the layer's surface.
func (l *Layer) SetFilters(ops filter.Operations) {
	if ops.Equal(l.filters) {
		return
	}
	l.filters = append(filter.Operations(nil), ops...)
	l.noteSurfaceOrSubtreeChanged()
}

// BackgroundFilters returns the filters applied to what is behind the
// layer.
func (l *Layer) BackgroundFilters() filter.Operations { return l.backgroundFilters }

// SetBackgroundFilters sets the filters applied to what is behind the
// layer.
func (l *Layer) SetBackgroundFilters(ops filter.Operations) {
	if ops.Equal(l.backgroundFilters) {
		return
	}
	l.backgroundFilters = append(filter.Operations(nil), ops...)
	l.noteSurfaceOrSubtreeChanged()
}

// Filter returns the opaque image filter applied to the layer's surface.
func (l *Layer) Filter() filter.ImageFilter { return l.imageFilter }

// SetFilter sets an opaque image filter on the layer's surface.
func (l *Layer) SetFilter(f filter.ImageFilter) {
	if filter.SameImageFilter(f, l.imageFilter) {
		return
	}
	l.imageFilter = f
	l.noteSurfaceOrSubtreeChanged()
}

// Color returns the color the layer paints when it draws content.
func (l *Layer) Color() color.RGBA { return l.color }

// SetColor sets the content color and repaints the layer.
func (l *Layer) SetColor(c color.RGBA) {
	if c == l.color {
		return
	}
	l.color = c
	l.SetNeedsDisplay()
}

// UpdateRect returns the part of the layer repainted this frame, in layer
// space.
func (l *Layer) UpdateRect() geom.RectF { return l.updateRect }

// SetUpdateRect marks r (layer space) as repainted. Calls within a frame
// accumulate.
func (l *Layer) SetUpdateRect(r geom.RectF) {
	l.updateRect = l.updateRect.Union(r)
}

// SetNeedsDisplay marks the whole layer as repainted.
func (l *Layer) SetNeedsDisplay() {
	l.SetUpdateRect(l.Bounds())
}

// LayerPropertyChanged reports whether the layer must be redrawn whole in
// its target: it or its subtree moved, or it or an ancestor drawing into
// the same target changed a surface property and no longer has a surface
// to absorb it.
func (l *Layer) LayerPropertyChanged() bool {
	if l.layerPropertyChanged {
		return true
	}
	if l.renderSurface == nil && l.layerSurfacePropertyChanged {
		return true
	}
	for p := l.Parent(); p != nil && p.renderSurface == nil; p = p.Parent() {
		if p.layerSurfacePropertyChanged {
			return true
		}
	}
	return false
}

// LayerSurfacePropertyChanged reports whether a property of the layer's
// own render surface changed: transform, opacity, or filters.
func (l *Layer) LayerSurfacePropertyChanged() bool {
	return l.layerSurfacePropertyChanged
}

func (l *Layer) noteLayerPropertyChanged() {
	l.layerPropertyChanged = true
}

func (l *Layer) noteLayerPropertyChangedForSubtree() {
	l.layerPropertyChanged = true
	for _, c := range l.Children() {
		c.noteLayerPropertyChangedForSubtree()
	}
}

// noteSurfaceOrSubtreeChanged records a change that a surface can absorb:
// with a surface only the composite of it changes, without one every
// descendant moves.
func (l *Layer) noteSurfaceOrSubtreeChanged() {
	if l.renderSurface != nil {
		l.layerSurfacePropertyChanged = true
		return
	}
	l.noteLayerPropertyChangedForSubtree()
}

// DrawTransform maps layer space into the render target's space.
func (l *Layer) DrawTransform() geom.Transform { return l.drawTransform }

// ScreenSpaceTransform maps layer space into root surface space.
func (l *Layer) ScreenSpaceTransform() geom.Transform { return l.screenSpaceTransform }

// DrawOpacity is the opacity the layer is drawn with into its target.
func (l *Layer) DrawOpacity() float64 { return l.drawOpacity }

// RenderSurface returns the surface the layer owns, or nil.
func (l *Layer) RenderSurface() *RenderSurface { return l.renderSurface }

// RenderTarget returns the layer owning the surface l draws into.
func (l *Layer) RenderTarget() *Layer { return l.lookup(l.renderTargetID) }

// String implements fmt.Stringer.
func (l *Layer) String() string {
	return fmt.Sprintf("layer %d", l.id)
}
