// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package damage computes, per render target, the rect that must be
// redrawn for a frame.
//
// A Tracker belongs to one render target and lives as long as that
// target. Each frame the owner describes the layers that draw into the
// target with plain Layer values and calls UpdateDamageTrackingState.
// The tracker diffs them against what it saw last frame and unions the
// result into CurrentDamageRect, which keeps growing until the owner calls
// DidDrawDamagedArea.
//
// Targets must be updated bottom-up: a child surface's damage rect is an
// input to its parent's update.
//
//	for _, s := range surfacesBottomUp {
//		s.Tracker.UpdateDamageTrackingState(s.Layers, s.ID, s.Target)
//	}
package damage
