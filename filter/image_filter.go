// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"image"
	"reflect"

	"github.com/gogpu/compositor/geom"
)

// ImageFilter is an opaque surface filter. A render surface with an image
// filter is drawn through Apply, and ExpandBounds reports how far the
// result can reach outside the input rect.
type ImageFilter interface {
	Apply(src, dst *image.RGBA)
	ExpandBounds(r geom.RectF) geom.RectF
}

// SameImageFilter reports whether a and b are the same filter. Filters of
// incomparable dynamic type are only the same when both are nil.
func SameImageFilter(a, b ImageFilter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// OperationsFilter adapts an Operations list to ImageFilter. Use the same
// *OperationsFilter across frames; a new one is seen as a filter change.
type OperationsFilter struct {
	ops Operations
}

// NewImageFilter wraps ops. The list is copied.
func NewImageFilter(ops Operations) *OperationsFilter {
	return &OperationsFilter{ops: append(Operations(nil), ops...)}
}

// Operations returns the wrapped list.
func (f *OperationsFilter) Operations() Operations { return f.ops }

// Apply runs the wrapped list.
func (f *OperationsFilter) Apply(src, dst *image.RGBA) { f.ops.Apply(src, dst) }

// ExpandBounds grows r by the wrapped list's outsets.
func (f *OperationsFilter) ExpandBounds(r geom.RectF) geom.RectF { return f.ops.ExpandRect(r) }
