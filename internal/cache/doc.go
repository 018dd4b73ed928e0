// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a small thread-safe cache with least recently used
// eviction, used for values that are expensive to derive and requested
// again every frame, such as blur kernels.
//
//	kernels := cache.New[int, []float64](64)
//	k := kernels.GetOrCreate(key, func() []float64 { return build(key) })
package cache
