// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"math"

	"github.com/gogpu/compositor/internal/cache"
)

// GaussianKernel returns a normalized 1D Gaussian kernel for the standard
// deviation. Its length is 2*ceil(3σ)+1, the same reach Outsets reports.
// A non-positive σ yields the identity kernel [1].
func GaussianKernel(stdDeviation float64) []float64 {
	half := spreadForStdDeviation(stdDeviation)
	if half == 0 {
		return []float64{1}
	}
	kernel := make([]float64, 2*half+1)
	twoSigmaSq := 2 * stdDeviation * stdDeviation
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// kernels caches kernels keyed by σ quantized to 0.01.
var kernels = cache.New[int, []float64](64)

// cachedGaussianKernel returns a shared kernel; callers must not modify it.
func cachedGaussianKernel(stdDeviation float64) []float64 {
	key := int(math.Round(stdDeviation * 100))
	return kernels.GetOrCreate(key, func() []float64 {
		return GaussianKernel(float64(key) / 100)
	})
}
