// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "github.com/gogpu/compositor/geom"

// DefaultMaxDamageRects is the number of past frames a DamageHistory
// remembers. Buffers older than that are redrawn in full.
const DefaultMaxDamageRects = 16

// DamageHistory remembers the root damage of recent frames so a frame can
// be drawn into a buffer holding older contents.
//
// A buffer of age N was last presented N frames ago. Bringing it up to
// date takes the damage of the N-1 frames presented since, plus the
// damage of the frame being drawn.
type DamageHistory struct {
	rects []geom.Rect // ring, oldest first once full
	next  int
	count int
}

// NewDamageHistory returns a history remembering up to capacity frames.
// A capacity below 1 uses DefaultMaxDamageRects.
func NewDamageHistory(capacity int) *DamageHistory {
	if capacity < 1 {
		capacity = DefaultMaxDamageRects
	}
	return &DamageHistory{rects: make([]geom.Rect, capacity)}
}

// Len returns the number of frames remembered.
func (h *DamageHistory) Len() int { return h.count }

// Push records the damage drawn by a presented frame.
func (h *DamageHistory) Push(r geom.Rect) {
	h.rects[h.next] = r
	h.next = (h.next + 1) % len(h.rects)
	h.count = min(h.count+1, len(h.rects))
}

// Reset forgets every frame. Use it when the buffers are recreated.
func (h *DamageHistory) Reset() {
	clear(h.rects)
	h.next = 0
	h.count = 0
}

// DamageForBufferAge returns what must be redrawn in a buffer of the given
// age for it to show the current frame, whose own damage is current.
// full reports that the history cannot tell, in which case the whole
// buffer has to be redrawn.
func (h *DamageHistory) DamageForBufferAge(age int, current geom.Rect) (r geom.Rect, full bool) {
	if age < 1 || age-1 > h.count {
		return geom.Rect{}, true
	}
	r = current
	for i := 1; i < age; i++ {
		idx := (h.next - i + len(h.rects)) % len(h.rects)
		r = r.Union(h.rects[idx])
	}
	return r, false
}
