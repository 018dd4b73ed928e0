// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"log/slog"

	"github.com/gogpu/compositor/internal/logging"
)

// SetLogger configures the logger for the compositor and all its
// sub-packages. By default nothing is logged. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by the compositor:
//   - [slog.LevelDebug]: per-frame diagnostics (damage, scissor, surface counts)
//   - [slog.LevelInfo]: lifecycle events (host created, target resized)
//   - [slog.LevelWarn]: degraded paths (perspective content flattened)
//
// Example:
//
//	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger {
	return logging.Logger()
}
