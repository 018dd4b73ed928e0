// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"
	"image/color"

	"github.com/gogpu/compositor/render"
)

// Settings controls how a Host turns damage into redraws.
type Settings struct {
	// PartialSwapEnabled restricts each frame's root redraw to its
	// damage. When false every frame redraws the whole target.
	PartialSwapEnabled bool

	// BufferCount is the number of buffers a window target rotates
	// through.
	BufferCount int

	// MaxDamageRects is how many past frames of root damage are kept.
	// Buffers older than that are redrawn in full.
	MaxDamageRects int

	// ShowSurfaceDamageRects outlines every surface's damage on top of
	// the frame.
	ShowSurfaceDamageRects bool

	// BackgroundColor is the color the root is cleared to,
	// alpha-premultiplied.
	BackgroundColor color.RGBA
}

// DefaultSettings returns the settings used when no option overrides them.
func DefaultSettings() Settings {
	return Settings{
		PartialSwapEnabled: true,
		BufferCount:        2,
		MaxDamageRects:     render.DefaultMaxDamageRects,
		BackgroundColor:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate reports settings a Host cannot run with.
func (s Settings) Validate() error {
	if s.BufferCount < 1 {
		return fmt.Errorf("%w: buffer count %d", ErrInvalidSettings, s.BufferCount)
	}
	if s.MaxDamageRects < 1 {
		return fmt.Errorf("%w: max damage rects %d", ErrInvalidSettings, s.MaxDamageRects)
	}
	return nil
}

// Option configures a Host during creation.
//
// Example:
//
//	host, err := compositor.NewHost(tree, target,
//	    compositor.WithPartialSwap(false),
//	    compositor.WithBackgroundColor(color.RGBA{A: 255}))
type Option func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	settings Settings
	renderer render.Renderer
}

// defaultOptions returns the default host options.
func defaultOptions() hostOptions {
	return hostOptions{
		settings: DefaultSettings(),
		renderer: nil, // Will be set to SoftwareRenderer if nil
	}
}

// WithSettings replaces all settings at once.
func WithSettings(s Settings) Option {
	return func(o *hostOptions) {
		o.settings = s
	}
}

// WithPartialSwap enables or disables damage-restricted redraws.
func WithPartialSwap(enabled bool) Option {
	return func(o *hostOptions) {
		o.settings.PartialSwapEnabled = enabled
	}
}

// WithBufferCount sets the number of buffers a window target rotates
// through.
func WithBufferCount(n int) Option {
	return func(o *hostOptions) {
		o.settings.BufferCount = n
	}
}

// WithMaxDamageRects sets how many past frames of damage are kept.
func WithMaxDamageRects(n int) Option {
	return func(o *hostOptions) {
		o.settings.MaxDamageRects = n
	}
}

// WithDamageOverlay outlines surface damage on every frame.
func WithDamageOverlay(on bool) Option {
	return func(o *hostOptions) {
		o.settings.ShowSurfaceDamageRects = on
	}
}

// WithBackgroundColor sets the root clear color.
func WithBackgroundColor(c color.RGBA) Option {
	return func(o *hostOptions) {
		o.settings.BackgroundColor = c
	}
}

// WithRenderer sets a custom renderer for the Host. Background color and
// damage overlay settings only configure the default SoftwareRenderer.
func WithRenderer(r render.Renderer) Option {
	return func(o *hostOptions) {
		o.renderer = r
	}
}
