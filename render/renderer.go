// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/layer"
)

var (
	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNoCPUAccess is returned for targets whose pixels cannot be read.
	ErrNoCPUAccess = errors.New("render: target does not support CPU rendering")

	// ErrUnsupportedFormat is returned for targets that are not RGBA8.
	ErrUnsupportedFormat = errors.New("render: unsupported target format")
)

// Renderer draws a frame's render surfaces into a target.
//
// Renderers keep per-surface textures between calls, so one Renderer
// should be used with one layer tree. Renderers are not safe for
// concurrent use.
type Renderer interface {
	// Render draws frame into target. Only pixels inside scissor, in
	// target coordinates, are written to the target; child surfaces are
	// redrawn inside their own damage rects.
	Render(target RenderTarget, frame *layer.Frame, scissor geom.Rect) error

	// Flush ensures all pending rendering operations are complete.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsPerspective reports whether perspective transforms are
	// drawn exactly rather than flattened.
	SupportsPerspective bool

	// MaxTextureSize is the maximum surface texture dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}
