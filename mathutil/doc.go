// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mathutil maps and projects rects, quads and points through
// perspective transforms.
//
// Points that land on or behind the eye (w <= 0 after mapping) are clipped
// in homogeneous space before the perspective divide. Dividing by a zero or
// negative w directly produces tiny or mirrored results, which is how
// naive implementations under-report the area a layer covers.
//
// All arithmetic runs in float64. Nothing here allocates, logs on the
// common path, or returns errors: clipping is reported through the
// Clipped flag of the result types and through empty rects.
package mathutil
