// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the value types shared by the compositor:
// integer and floating point rects, points, vectors, quads, and a 4x4
// Transform built on golang.org/x/image/math/f64.
//
// Coordinates follow the usual screen convention: origin at the top-left,
// x to the right, y down.
package geom
