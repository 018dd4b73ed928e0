// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package filter describes the pixel filters a compositor layer can carry
// and how far each one reaches beyond the pixels it reads.
//
// An Operations list is a declarative, comparable description: damage
// tracking only needs to know whether a list moves pixels and by how much
// (Outsets). The software renderer runs the same list over *image.RGBA
// buffers with Apply.
//
// ImageFilter is the opaque alternative: a caller-supplied filter whose
// reach is reported through ExpandBounds.
package filter
