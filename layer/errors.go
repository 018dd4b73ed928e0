// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import "errors"

var (
	// ErrLayerExists is returned when attaching a layer that already has a
	// parent, owner, or is the root.
	ErrLayerExists = errors.New("layer: layer is already attached")

	// ErrLayerNotFound is returned for nil layers, layers of another tree,
	// and layers removed from their tree.
	ErrLayerNotFound = errors.New("layer: layer not found")

	// ErrInvalidParent is returned when an operation would create a cycle.
	ErrInvalidParent = errors.New("layer: invalid parent")

	// ErrNotAttached is returned when drawing a tree that has no root.
	ErrNotAttached = errors.New("layer: tree has no root")
)
