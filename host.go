// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"github.com/gogpu/compositor/layer"
	"github.com/gogpu/compositor/render"
)

// FrameStats describes one drawn frame.
type FrameStats struct {
	// Frame is the 1-based frame number.
	Frame int

	// RootDamage is the root surface's damage, clipped to the viewport.
	RootDamage geom.RectF

	// Scissor is the part of the target that was redrawn. It is empty
	// when nothing had to be drawn.
	Scissor geom.Rect

	// FullRedraw reports that the scissor covers the whole target.
	FullRedraw bool

	SurfaceCount int
	LayerCount   int
}

// Host draws a layer tree into a render target, one frame per DrawFrame.
//
// A Host is not safe for concurrent use. Mutate the tree and call
// DrawFrame from the same goroutine.
type Host struct {
	tree     *layer.Tree
	target   render.RenderTarget
	renderer render.Renderer
	caps     render.RendererCapabilities
	history  *render.DamageHistory
	settings Settings

	viewport geom.RectF
	pending  geom.RectF
	frame    int

	// overlay covers the damage outlines drawn by the previous frame.
	overlay geom.Rect
}

// NewHost creates a Host drawing tree into target.
//
// Without WithRenderer the Host uses a render.SoftwareRenderer configured
// from its settings.
func NewHost(tree *layer.Tree, target render.RenderTarget, opts ...Option) (*Host, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if target == nil {
		return nil, ErrNilTarget
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.settings.Validate(); err != nil {
		return nil, err
	}
	if o.renderer == nil {
		o.renderer = render.NewSoftwareRenderer(
			render.WithBackground(o.settings.BackgroundColor),
			render.WithDamageOverlay(o.settings.ShowSurfaceDamageRects))
	}

	h := &Host{
		tree:     tree,
		target:   target,
		renderer: o.renderer,
		history:  render.NewDamageHistory(o.settings.MaxDamageRects),
		settings: o.settings,
		viewport: targetViewport(target),
	}
	if cr, ok := o.renderer.(render.CapableRenderer); ok {
		h.caps = cr.Capabilities()
	}
	if err := h.checkTargetSize(); err != nil {
		return nil, err
	}
	logging.Logger().Info("compositor: host created",
		"width", target.Width(),
		"height", target.Height(),
		"partialSwap", o.settings.PartialSwapEnabled,
		"gpu", h.caps.IsGPU,
		"perspective", h.caps.SupportsPerspective,
		"maxTextureSize", h.caps.MaxTextureSize)
	return h, nil
}

// checkTargetSize rejects targets the renderer cannot allocate textures
// for. A MaxTextureSize of 0 means no limit.
func (h *Host) checkTargetSize() error {
	limit := h.caps.MaxTextureSize
	w, ht := h.target.Width(), h.target.Height()
	if limit > 0 && (w > limit || ht > limit) {
		return fmt.Errorf("%w: %dx%d, limit %d", ErrTargetTooLarge, w, ht, limit)
	}
	return nil
}

func targetViewport(t render.RenderTarget) geom.RectF {
	return geom.RectFromSize(float64(t.Width()), float64(t.Height()))
}

// Tree returns the layer tree being drawn.
func (h *Host) Tree() *layer.Tree { return h.tree }

// Settings returns the host's settings.
func (h *Host) Settings() Settings { return h.settings }

// Viewport returns the root surface rect, the size of the target.
func (h *Host) Viewport() geom.RectF { return h.viewport }

// SetNeedsRedraw damages the whole viewport on the next frame.
func (h *Host) SetNeedsRedraw() {
	h.pending = h.viewport
}

// AddDamage damages r, in root surface space, on the next frame.
func (h *Host) AddDamage(r geom.RectF) {
	h.pending = h.pending.Union(r)
}

// DrawFrame computes and draws the next frame.
//
// Draw properties are recomputed, every surface's damage is updated
// bottom-up, the root damage is widened by the target's buffer age and
// the renderer redraws inside the resulting scissor. Damage is then
// drained and the tree's per-frame change flags are cleared.
func (h *Host) DrawFrame() (FrameStats, error) {
	if vp := targetViewport(h.target); vp != h.viewport {
		if err := h.checkTargetSize(); err != nil {
			return FrameStats{}, err
		}
		logging.Logger().Info("compositor: target resized",
			"from", h.viewport.String(), "to", vp.String())
		h.viewport = vp
		h.history.Reset()
		h.pending = vp
	}

	frame, err := layer.CalculateDrawProperties(h.tree, h.viewport)
	if err != nil {
		return FrameStats{}, fmt.Errorf("compositor: draw properties: %w", err)
	}
	if !h.pending.IsEmpty() {
		frame.AddRootDamage(h.pending)
		h.pending = geom.RectF{}
	}
	frame.UpdateDamage()

	h.frame++
	damage := frame.RootDamageRect().Intersect(h.viewport)
	stats := FrameStats{
		Frame:        h.frame,
		RootDamage:   damage,
		SurfaceCount: len(frame.RenderSurfaces()),
		LayerCount:   frame.LayerCount(),
	}
	drawn := damage.ToEnclosingRect().Union(h.overlay)
	stats.Scissor, stats.FullRedraw = h.scissor(drawn)

	if !stats.Scissor.IsEmpty() {
		if err := h.renderer.Render(h.target, frame, stats.Scissor); err != nil {
			return stats, fmt.Errorf("compositor: frame %d: %w", h.frame, err)
		}
		if err := h.renderer.Flush(); err != nil {
			return stats, fmt.Errorf("compositor: frame %d: %w", h.frame, err)
		}
		if p, ok := h.target.(render.Presenter); ok {
			p.Present()
		}
		h.history.Push(drawn)
	}

	// Outlines are erased by the next frame's scissor without counting
	// as damage, or they would outline themselves forever.
	h.overlay = geom.Rect{}
	if h.settings.ShowSurfaceDamageRects && !stats.Scissor.IsEmpty() {
		for _, s := range frame.RenderSurfaces() {
			h.overlay = h.overlay.Union(s.ScreenSpaceDamageRect().ToEnclosingRect())
		}
	}
	frame.DidDrawDamagedArea()
	h.tree.ResetChangeTracking()

	logging.Logger().Debug("compositor: frame drawn",
		"frame", stats.Frame,
		"damage", stats.RootDamage.String(),
		"scissor", stats.Scissor.String(),
		"full", stats.FullRedraw,
		"surfaces", stats.SurfaceCount,
		"layers", stats.LayerCount)
	return stats, nil
}

// scissor picks the part of the target to redraw for a frame whose root
// damage is damage.
func (h *Host) scissor(damage geom.Rect) (r geom.Rect, full bool) {
	all := h.viewport.ToEnclosingRect()
	if !h.settings.PartialSwapEnabled {
		return all, true
	}
	age := 0
	if a, ok := h.target.(render.BufferAger); ok {
		age = a.BufferAge()
	}
	r, full = h.history.DamageForBufferAge(age, damage)
	if full {
		return all, true
	}
	r = r.Intersect(all)
	return r, r == all
}
