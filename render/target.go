// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// RenderTarget is where a composited frame goes.
//
// CPU targets expose their pixels through Pixels and Stride. The software
// renderer only accepts RGBA8 targets.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data, or nil for targets
	// without CPU access. For RGBA8 each pixel is 4 bytes: R, G, B, A,
	// alpha-premultiplied.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// BufferAger is implemented by targets that know how old the contents of
// the buffer being drawn are, in frames. 0 means unknown; 1 means the
// buffer holds the previous frame.
type BufferAger interface {
	BufferAge() int
}

// PixmapTarget is a single persistent CPU buffer. After its first frame it
// always holds the previous frame.
type PixmapTarget struct {
	img   *image.RGBA
	drawn bool
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render
// target. The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Bounds().Dy() }

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte { return t.img.Pix }

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int { return t.img.Stride }

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// BufferAge reports 1 once a frame has been presented, 0 before.
func (t *PixmapTarget) BufferAge() int {
	if t.drawn {
		return 1
	}
	return 0
}

// Present marks the current contents as a complete frame.
func (t *PixmapTarget) Present() { t.drawn = true }

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	xdraw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Resize replaces the buffer. The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	t.drawn = false
}

// SwapchainTarget rotates through a fixed number of CPU buffers, the way a
// window surface does, so a frame is drawn over contents that are several
// frames old.
type SwapchainTarget struct {
	buffers []*image.RGBA
	ages    []int
	current int
}

// NewSwapchainTarget creates count buffers of the given size. count is at
// least 1.
func NewSwapchainTarget(width, height, count int) *SwapchainTarget {
	count = max(count, 1)
	t := &SwapchainTarget{
		buffers: make([]*image.RGBA, count),
		ages:    make([]int, count),
	}
	for i := range t.buffers {
		t.buffers[i] = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	return t
}

// Width returns the buffer width in pixels.
func (t *SwapchainTarget) Width() int { return t.buffers[0].Bounds().Dx() }

// Height returns the buffer height in pixels.
func (t *SwapchainTarget) Height() int { return t.buffers[0].Bounds().Dy() }

// Format returns the pixel format (RGBA8).
func (t *SwapchainTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns the back buffer's pixel data.
func (t *SwapchainTarget) Pixels() []byte { return t.buffers[t.current].Pix }

// Stride returns the number of bytes per row.
func (t *SwapchainTarget) Stride() int { return t.buffers[t.current].Stride }

// Image returns the back buffer.
func (t *SwapchainTarget) Image() *image.RGBA { return t.buffers[t.current] }

// PresentedImage returns the buffer presented last, or the back buffer
// before the first Present.
func (t *SwapchainTarget) PresentedImage() *image.RGBA {
	for i, a := range t.ages {
		if a == 1 {
			return t.buffers[i]
		}
	}
	return t.buffers[t.current]
}

// BufferAge returns how many frames ago the back buffer was presented, or
// 0 if it never was.
func (t *SwapchainTarget) BufferAge() int { return t.ages[t.current] }

// Present shows the back buffer and moves on to the next one.
func (t *SwapchainTarget) Present() {
	for i, a := range t.ages {
		if a > 0 {
			t.ages[i] = a + 1
		}
	}
	t.ages[t.current] = 1
	t.current = (t.current + 1) % len(t.buffers)
}

// Presenter is implemented by targets whose frames must be presented
// after drawing.
type Presenter interface {
	Present()
}

var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ BufferAger   = (*PixmapTarget)(nil)
	_ RenderTarget = (*SwapchainTarget)(nil)
	_ BufferAger   = (*SwapchainTarget)(nil)
	_ Presenter    = (*SwapchainTarget)(nil)
)

// imageOf returns an *image.RGBA sharing t's pixels.
func imageOf(t RenderTarget) *image.RGBA {
	return &image.RGBA{
		Pix:    t.Pixels(),
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}
}
