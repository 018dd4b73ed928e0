// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"github.com/gogpu/compositor/mathutil"
)

// CalculateDrawProperties computes draw transforms and opacities, decides
// which layers own render surfaces, and builds each surface's layer list.
// viewport is the root surface's content rect.
func CalculateDrawProperties(t *Tree, viewport geom.RectF) (*Frame, error) {
	root := t.Root()
	if root == nil {
		return nil, ErrNotAttached
	}
	countDrawingDescendants(root)

	c := calculator{root: root, frame: &Frame{tree: t, viewport: viewport}}
	c.calc(root, geom.Identity(), geom.Identity(), nil, 1)

	logging.Logger().Debug("layer: draw properties calculated",
		"surfaces", len(c.frame.surfaces), "layers", c.frame.layerCount)
	return c.frame, nil
}

func countDrawingDescendants(l *Layer) int {
	n := 0
	for _, c := range l.Children() {
		n += countDrawingDescendants(c)
		if c.drawsContent {
			n++
		}
	}
	l.numDescendantsThatDrawContent = n
	return n
}

func (l *Layer) needsRenderSurface() bool {
	switch {
	case l.forceRenderSurface,
		l.MaskLayer() != nil,
		l.ReplicaLayer() != nil,
		len(l.filters) > 0,
		len(l.backgroundFilters) > 0,
		l.imageFilter != nil:
		return true
	}
	// Group opacity only differs from per-layer opacity when layers
	// overlap each other.
	n := l.numDescendantsThatDrawContent
	return l.opacity < 1 && n > 0 && (l.drawsContent || n > 1)
}

// localTransform places l in its parent's space.
func (l *Layer) localTransform() geom.Transform {
	ax, ay := l.anchorPoint.X*l.width, l.anchorPoint.Y*l.height
	m := geom.TranslateTransform(l.position.X+ax, l.position.Y+ay)
	m.PreconcatTransform(l.transform)
	m.Translate(-ax, -ay)
	return m
}

type calculator struct {
	root  *Layer
	frame *Frame
}

// calc visits l. parentDraw maps the parent's space into target's space;
// parentScreen maps it into root surface space.
func (c *calculator) calc(l *Layer, parentDraw, parentScreen geom.Transform, target *RenderSurface, parentOpacity float64) {
	local := l.localTransform()
	draw := parentDraw.Multiply(local)
	screen := parentScreen.Multiply(local)
	l.screenSpaceTransform = screen

	if l != c.root && !l.needsRenderSurface() {
		l.renderSurface = nil
		l.drawTransform = draw
		l.drawOpacity = parentOpacity * l.opacity
		l.renderTargetID = target.owner.id
		if l.drawsContent {
			target.layerList = append(target.layerList, l)
			c.frame.layerCount++
		}
		for _, child := range l.Children() {
			c.calc(child, draw, screen, target, l.drawOpacity)
		}
		return
	}

	s := l.renderSurface
	if s == nil {
		s = newRenderSurface(l)
		l.renderSurface = s
	}
	s.layerList = s.layerList[:0]
	l.renderTargetID = l.id

	childDraw := geom.Identity()
	childOpacity := 1.0
	if l == c.root {
		// The root surface is the viewport itself.
		s.drawTransform = geom.Identity()
		s.screenSpaceTransform = geom.Identity()
		s.drawOpacity = 1
		l.drawTransform = draw
		l.drawOpacity = l.opacity
		childDraw = draw
		childOpacity = l.opacity
	} else {
		s.drawTransform = draw
		s.screenSpaceTransform = screen
		s.drawOpacity = parentOpacity * l.opacity
		l.drawTransform = geom.Identity()
		l.drawOpacity = 1
		target.layerList = append(target.layerList, l)
	}

	if l.drawsContent {
		s.layerList = append(s.layerList, l)
		c.frame.layerCount++
	}
	for _, child := range l.Children() {
		c.calc(child, childDraw, screen, s, childOpacity)
	}

	content := c.frame.viewport
	if l != c.root {
		content = c.surfaceContentRect(s)
	}
	contentChanged := s.setContentRect(content)

	if r := l.ReplicaLayer(); r != nil {
		rl := r.localTransform()
		s.replicaDrawTransform = s.drawTransform.Multiply(rl)
		s.replicaScreenSpaceTransform = s.screenSpaceTransform.Multiply(rl)
		r.drawTransform = s.replicaDrawTransform
		r.screenSpaceTransform = s.replicaScreenSpaceTransform
	}
	s.drawableContentRect = mathutil.MapClippedRect(s.drawTransform, content)
	if l.ReplicaLayer() != nil {
		s.drawableContentRect = s.drawableContentRect.Union(
			mathutil.MapClippedRect(s.replicaDrawTransform, content))
	}

	ownerChanged := l.LayerPropertyChanged() || l.layerSurfacePropertyChanged
	s.propertyChanged = ownerChanged || contentChanged
	s.changedOnlyFromDescendant = contentChanged && !ownerChanged

	c.frame.surfaces = append(c.frame.surfaces, s)
}

// surfaceContentRect bounds everything drawn into s, grown by the reach
// of the surface's own filters.
func (c *calculator) surfaceContentRect(s *RenderSurface) geom.RectF {
	var r geom.RectF
	for _, l := range s.layerList {
		if l != s.owner && l.renderSurface != nil {
			r = r.Union(l.renderSurface.drawableContentRect)
			continue
		}
		r = r.Union(mathutil.MapClippedRect(l.drawTransform, l.Bounds()))
	}
	if ops := s.owner.filters; ops.HasFilterThatMovesPixels() && !r.IsEmpty() {
		r = ops.ExpandRect(r)
	}
	if f := s.owner.imageFilter; f != nil && !r.IsEmpty() {
		r = f.ExpandBounds(r)
	}
	return r
}
