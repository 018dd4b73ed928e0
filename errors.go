// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import "errors"

var (
	// ErrNilTree is returned by NewHost without a layer tree.
	ErrNilTree = errors.New("compositor: nil layer tree")

	// ErrNilTarget is returned by NewHost without a render target.
	ErrNilTarget = errors.New("compositor: nil render target")

	// ErrInvalidSettings is returned for settings that fail Validate.
	ErrInvalidSettings = errors.New("compositor: invalid settings")

	// ErrTargetTooLarge is returned when the target exceeds the
	// renderer's maximum texture size.
	ErrTargetTooLarge = errors.New("compositor: target larger than renderer texture limit")
)
