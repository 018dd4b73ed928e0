// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

import "image"

// blurRGBA writes a separable Gaussian blur of src into dst. Pixels
// outside src are transparent, so content bleeds outward into the area
// Outsets reserves for it.
func blurRGBA(src, dst *image.RGBA, stdDeviation float64) {
	kernel := cachedGaussianKernel(stdDeviation)
	b := src.Rect
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	half := len(kernel) / 2

	// Horizontal pass into a float buffer, vertical pass into dst.
	tmp := make([]float64, w*h*4)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			var acc [4]float64
			for k, kv := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= w {
					continue
				}
				p := row[sx*4 : sx*4+4]
				acc[0] += float64(p[0]) * kv
				acc[1] += float64(p[1]) * kv
				acc[2] += float64(p[2]) * kv
				acc[3] += float64(p[3]) * kv
			}
			copy(tmp[(y*w+x)*4:], acc[:])
		}
	}
	for y := 0; y < h; y++ {
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			var acc [4]float64
			for k, kv := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= h {
					continue
				}
				i := (sy*w + x) * 4
				acc[0] += tmp[i] * kv
				acc[1] += tmp[i+1] * kv
				acc[2] += tmp[i+2] * kv
				acc[3] += tmp[i+3] * kv
			}
			d := drow[x*4 : x*4+4]
			d[0] = toByte(acc[0])
			d[1] = toByte(acc[1])
			d[2] = toByte(acc[2])
			d[3] = toByte(acc[3])
		}
	}
}
