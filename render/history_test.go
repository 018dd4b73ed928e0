// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/gogpu/compositor/geom"
)

func TestDamageHistoryForBufferAge(t *testing.T) {
	h := NewDamageHistory(4)
	h.Push(geom.R(0, 0, 10, 10))
	h.Push(geom.R(100, 100, 10, 10))
	h.Push(geom.R(50, 50, 5, 5))
	current := geom.R(60, 60, 5, 5)

	tests := []struct {
		name     string
		age      int
		want     geom.Rect
		wantFull bool
	}{
		{"unknown age", 0, geom.Rect{}, true},
		{"previous frame", 1, geom.R(60, 60, 5, 5), false},
		{"two frames old", 2, geom.R(50, 50, 15, 15), false},
		{"three frames old", 3, geom.R(50, 50, 60, 60), false},
		{"four frames old", 4, geom.R(0, 0, 110, 110), false},
		{"older than history", 5, geom.Rect{}, true},
		{"negative age", -1, geom.Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, full := h.DamageForBufferAge(tt.age, current)
			if full != tt.wantFull {
				t.Fatalf("DamageForBufferAge(%d) full = %v, want %v", tt.age, full, tt.wantFull)
			}
			if !full && got != tt.want {
				t.Errorf("DamageForBufferAge(%d) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

func TestDamageHistoryWraps(t *testing.T) {
	h := NewDamageHistory(2)
	h.Push(geom.R(0, 0, 1, 1))
	h.Push(geom.R(10, 10, 1, 1))
	h.Push(geom.R(20, 20, 1, 1))

	if got := h.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	got, full := h.DamageForBufferAge(3, geom.Rect{})
	if full {
		t.Fatal("DamageForBufferAge(3) should not need a full redraw")
	}
	if want := geom.R(10, 10, 11, 11); got != want {
		t.Errorf("DamageForBufferAge(3) = %v, want %v", got, want)
	}
	if _, full := h.DamageForBufferAge(4, geom.Rect{}); !full {
		t.Error("DamageForBufferAge(4) should need a full redraw after the oldest frame was dropped")
	}
}

func TestDamageHistoryReset(t *testing.T) {
	h := NewDamageHistory(0)
	h.Push(geom.R(0, 0, 1, 1))
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", h.Len())
	}
	if _, full := h.DamageForBufferAge(2, geom.Rect{}); !full {
		t.Error("DamageForBufferAge(2) after Reset should need a full redraw")
	}
	if len(h.rects) != DefaultMaxDamageRects {
		t.Errorf("capacity = %d, want %d", len(h.rects), DefaultMaxDamageRects)
	}
}
