// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/logging"
	"github.com/gogpu/compositor/layer"
)

// overlayColor outlines surface damage when the overlay is enabled.
var overlayColor = color.RGBA{G: 192, A: 192}

// surfaceTexture is the persistent backing store of one render surface.
type surfaceTexture struct {
	// content holds the surface's layers, in surface space.
	content *image.RGBA

	// output is content after filters and mask. nil when the surface has
	// neither, in which case content is composited directly.
	output  *image.RGBA
	scratch *image.RGBA

	// replica is the image composited for the replica when the replica
	// has its own mask.
	replica *image.RGBA
}

func (t *surfaceTexture) image() *image.RGBA {
	if t.output != nil {
		return t.output
	}
	return t.content
}

func (t *surfaceTexture) replicaImage() *image.RGBA {
	if t.replica != nil {
		return t.replica
	}
	return t.image()
}

// SoftwareOption configures a SoftwareRenderer.
type SoftwareOption func(*SoftwareRenderer)

// WithBackground sets the color the root surface is cleared to.
// The color is alpha-premultiplied.
func WithBackground(c color.RGBA) SoftwareOption {
	return func(r *SoftwareRenderer) { r.background = c }
}

// WithDamageOverlay outlines every surface's damage rect on top of the
// frame.
func WithDamageOverlay(on bool) SoftwareOption {
	return func(r *SoftwareRenderer) { r.overlay = on }
}

// SoftwareRenderer composites a layer tree on the CPU.
//
// Every non-root render surface owns a persistent texture covering its
// content rect. Each frame only the surface's damage rect is cleared and
// redrawn; filters and masks are then reapplied to the whole texture.
// Layers draw as solid quads of their color. Perspective transforms are
// flattened to their 2D affine part.
type SoftwareRenderer struct {
	background color.RGBA
	overlay    bool

	textures map[int]*surfaceTexture

	warnedPerspective bool
}

// NewSoftwareRenderer creates a new CPU compositor.
func NewSoftwareRenderer(opts ...SoftwareOption) *SoftwareRenderer {
	r := &SoftwareRenderer{
		background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		textures:   make(map[int]*surfaceTexture),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws frame into target, writing only pixels inside scissor.
//
// Surfaces are drawn in the frame's bottom-up order, so every child
// texture is current before its parent composites it.
func (r *SoftwareRenderer) Render(target RenderTarget, frame *layer.Frame, scissor geom.Rect) error {
	if target == nil {
		return ErrNilTarget
	}
	if f := target.Format(); f != gputypes.TextureFormatRGBA8Unorm {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if target.Pixels() == nil {
		return ErrNoCPUAccess
	}
	if frame == nil {
		return nil
	}

	surfaces := frame.RenderSurfaces()
	live := make(map[int]bool, len(surfaces))
	for _, s := range surfaces[:len(surfaces)-1] {
		live[s.ID()] = true
		r.drawSurface(s)
	}
	for id := range r.textures {
		if !live[id] {
			delete(r.textures, id)
		}
	}

	dst := imageOf(target)
	clip := scissor.ImageRect().Intersect(dst.Bounds())
	if clip.Empty() {
		return nil
	}
	sub := dst.SubImage(clip).(*image.RGBA)
	xdraw.Draw(sub, clip, image.NewUniform(r.background), image.Point{}, xdraw.Src)
	r.drawLayerList(sub, dst, frame.RootSurface())
	if r.overlay {
		for _, s := range surfaces {
			strokeRect(sub, s.ScreenSpaceDamageRect().ToEnclosingRect().ImageRect(), overlayColor)
		}
	}

	logging.Logger().Debug("render: frame drawn",
		"scissor", scissor.String(),
		"surfaces", len(surfaces),
		"textures", len(r.textures))
	return nil
}

// Flush is a no-op; the software renderer draws synchronously.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Capabilities returns the renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{}
}

// TextureCount returns the number of surface textures currently kept.
func (r *SoftwareRenderer) TextureCount() int { return len(r.textures) }

// drawSurface brings the texture of a non-root surface up to date.
func (r *SoftwareRenderer) drawSurface(s *layer.RenderSurface) {
	bounds := s.ContentRect().ToEnclosingRect().ImageRect()
	if bounds.Empty() {
		delete(r.textures, s.ID())
		return
	}

	clip := s.DamageRect().ToEnclosingRect().ImageRect().Intersect(bounds)
	tex := r.textures[s.ID()]
	if tex == nil || tex.content.Rect != bounds {
		tex = &surfaceTexture{content: image.NewRGBA(bounds)}
		r.textures[s.ID()] = tex
		clip = bounds
	}
	if clip.Empty() {
		return
	}

	sub := tex.content.SubImage(clip).(*image.RGBA)
	xdraw.Draw(sub, clip, image.Transparent, image.Point{}, xdraw.Src)
	r.drawLayerList(sub, tex.content, s)
	finishSurface(s.Owner(), tex)
}

// finishSurface runs the owner's filters and mask over the whole texture.
func finishSurface(owner *layer.Layer, tex *surfaceTexture) {
	ops := owner.Filters()
	f := owner.Filter()
	mask := owner.MaskLayer()

	if ops.IsEmpty() && f == nil && mask == nil {
		tex.output = nil
		tex.scratch = nil
	} else {
		rect := tex.content.Rect
		if tex.output == nil || tex.output.Rect != rect {
			tex.output = image.NewRGBA(rect)
		}
		src := tex.content
		if !ops.IsEmpty() {
			ops.Apply(src, tex.output)
			src = tex.output
		}
		if f != nil {
			if tex.scratch == nil || tex.scratch.Rect != rect {
				tex.scratch = image.NewRGBA(rect)
			}
			f.Apply(src, tex.scratch)
			tex.output, tex.scratch = tex.scratch, tex.output
			src = tex.output
		}
		if src != tex.output {
			copy(tex.output.Pix, src.Pix)
		}
		if mask != nil {
			applyMask(tex.output, mask)
		}
	}

	tex.replica = nil
	if rl := owner.ReplicaLayer(); rl != nil {
		if m := rl.MaskLayer(); m != nil {
			src := tex.image()
			tex.replica = image.NewRGBA(src.Rect)
			copy(tex.replica.Pix, src.Pix)
			applyMask(tex.replica, m)
		}
	}
}

// drawLayerList draws s's layers into dst, which is canvas clipped to the
// area being redrawn.
func (r *SoftwareRenderer) drawLayerList(dst, canvas *image.RGBA, s *layer.RenderSurface) {
	for _, l := range s.LayerList() {
		if cs := l.RenderSurface(); cs != nil && l != s.Owner() {
			r.compositeSurface(dst, canvas, cs)
			continue
		}
		c := l.Color()
		sr := l.Bounds().ToEnclosingRect().ImageRect()
		if c.A == 0 || sr.Empty() {
			continue
		}
		r.transform(dst, l.DrawTransform(), image.NewUniform(c), sr, l.DrawOpacity())
	}
}

// compositeSurface draws the texture of cs, and its replica, into dst.
//
// Background filters read the backdrop from the whole canvas: pixels
// outside dst still hold the previous frame, which is what a full redraw
// would have there. Only the part inside dst is written back.
func (r *SoftwareRenderer) compositeSurface(dst, canvas *image.RGBA, cs *layer.RenderSurface) {
	tex := r.textures[cs.ID()]
	if tex == nil {
		return
	}
	if bg := cs.Owner().BackgroundFilters(); !bg.IsEmpty() {
		region := cs.DrawableContentRect().ToEnclosingRect().ImageRect().Intersect(canvas.Rect)
		if write := region.Intersect(dst.Rect); !write.Empty() {
			backdrop := image.NewRGBA(region)
			xdraw.Draw(backdrop, region, canvas, region.Min, xdraw.Src)
			out := image.NewRGBA(region)
			bg.Apply(backdrop, out)
			xdraw.Draw(dst, write, out, write.Min, xdraw.Src)
		}
	}
	if cs.HasReplica() {
		img := tex.replicaImage()
		r.transform(dst, cs.ReplicaDrawTransform(), img, img.Rect, cs.DrawOpacity())
	}
	img := tex.image()
	r.transform(dst, cs.DrawTransform(), img, img.Rect, cs.DrawOpacity())
}

// transform draws sr of src through t over dst.
func (r *SoftwareRenderer) transform(dst *image.RGBA, t geom.Transform, src image.Image, sr image.Rectangle, opacity float64) {
	if opacity <= 0 {
		return
	}
	if t.HasPerspective() && !r.warnedPerspective {
		r.warnedPerspective = true
		logging.Logger().Warn("render: perspective transform flattened to 2D")
	}
	var opts *xdraw.Options
	if opacity < 1 {
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha16{A: uint16(opacity*0xffff + 0.5)}),
		}
	}
	interp := xdraw.ApproxBiLinear
	if t.IsIdentityOrIntegerTranslation() {
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(dst, t.Affine2D(), src, sr, xdraw.Over, opts)
}

// applyMask keeps img only inside m's bounds, scaled by m's alpha.
func applyMask(img *image.RGBA, m *layer.Layer) {
	inside := m.Bounds().ToEnclosingRect().ImageRect()
	a := uint32(m.Color().A)
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			switch {
			case !image.Pt(x, y).In(inside):
				p[0], p[1], p[2], p[3] = 0, 0, 0, 0
			case a != 255:
				for c := range p {
					p[c] = uint8((uint32(p[c])*a + 127) / 255)
				}
			}
		}
	}
}

// strokeRect draws a one pixel outline of r over dst.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	edges := [4]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	}
	for _, e := range edges {
		e = e.Intersect(dst.Rect)
		if !e.Empty() {
			xdraw.Draw(dst, e, src, image.Point{}, xdraw.Over)
		}
	}
}

var _ CapableRenderer = (*SoftwareRenderer)(nil)
