// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layer holds the compositor's layer tree.
//
// Layers live in a Tree arena and refer to their parent, children, mask
// and replica by id. Property setters record what changed since the last
// frame; CalculateDrawProperties turns the tree into a Frame: draw
// transforms, the set of render surfaces, and per-surface layer lists.
// Frame.UpdateDamage then feeds each surface's damage.Tracker in
// bottom-up order.
//
// A typical frame:
//
//	frame, err := layer.CalculateDrawProperties(tree, viewport)
//	if err != nil {
//		return err
//	}
//	frame.UpdateDamage()
//	draw(frame, frame.RootDamageRect())
//	frame.DidDrawDamagedArea()
//	tree.ResetChangeTracking()
package layer
