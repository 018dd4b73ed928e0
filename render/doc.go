// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render draws the render surfaces of a layer.Frame into a target.
//
// # Core Interfaces
//
//   - RenderTarget: where a frame goes (PixmapTarget, SwapchainTarget)
//   - Renderer: composites a frame, restricted to a scissor rect
//   - DamageHistory: root damage of recent frames, for buffer-age redraws
//
// # Partial redraw
//
// A frame is only as current as the buffer it is drawn into. A
// PixmapTarget keeps its pixels between frames, so the root damage rect of
// the new frame is enough. A SwapchainTarget hands out buffers that are
// several frames old; DamageHistory.DamageForBufferAge widens the scissor
// by the damage of the frames the buffer missed.
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	history := render.NewDamageHistory(render.DefaultMaxDamageRects)
//
//	frame, _ := layer.CalculateDrawProperties(tree, viewport)
//	frame.UpdateDamage()
//	damage := frame.RootDamageRect().ToEnclosingRect()
//	scissor, full := history.DamageForBufferAge(target.BufferAge(), damage)
//	if full {
//	    scissor = geom.R(0, 0, 800, 600)
//	}
//	renderer.Render(target, frame, scissor)
//	history.Push(damage)
//	frame.DidDrawDamagedArea()
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
package render
