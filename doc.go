// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compositor draws a layer tree frame by frame, redrawing only what
// changed.
//
// A Host owns the per-frame loop: it computes draw properties for the
// tree, lets every render surface's damage tracker diff the frame against
// the previous one, picks a scissor rect for the root from the damage and
// the target's buffer age, and composites the frame inside that scissor.
//
// # Quick Start
//
//	tree := layer.NewTree()
//	root := tree.NewLayer()
//	root.SetBounds(500, 500)
//	tree.SetRoot(root)
//
//	box := tree.NewLayer()
//	box.SetPosition(geom.Pt(100, 100))
//	box.SetBounds(30, 30)
//	box.SetDrawsContent(true)
//	box.SetColor(color.RGBA{R: 255, A: 255})
//	root.AddChild(box)
//
//	host, _ := compositor.NewHost(tree, render.NewPixmapTarget(500, 500))
//	host.DrawFrame() // first frame redraws everything
//
//	box.SetPosition(geom.Pt(200, 230))
//	stats, _ := host.DrawFrame()
//	// stats.RootDamage is (100,100 30x30) ∪ (200,230 30x30)
//
// # Packages
//
//   - geom: rects, points, quads and 4x4 transforms
//   - mathutil: mapping and projection with homogeneous clipping
//   - filter: filter operations and their pixel outsets
//   - damage: the per-surface damage tracker
//   - layer: the layer tree, render surfaces and draw properties
//   - render: render targets and the software compositor
//
// # Logging
//
// Nothing is logged by default. Call SetLogger to see per-frame damage and
// scissor decisions at Debug level.
package compositor
