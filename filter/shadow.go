// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

import "image"

// dropShadow writes src composited over a blurred, offset and colorized
// copy of its alpha into dst. dst must not alias src.
func dropShadow(src, dst *image.RGBA, op Operation) {
	b := src.Rect
	w, h := b.Dx(), b.Dy()
	off := op.DropShadowOffset

	shadow := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		sy := y - off.Y
		if sy < 0 || sy >= h {
			continue
		}
		for x := 0; x < w; x++ {
			sx := x - off.X
			if sx < 0 || sx >= w {
				continue
			}
			shadow.Pix[y*shadow.Stride+x*4+3] = src.Pix[sy*src.Stride+sx*4+3]
		}
	}
	if op.Amount > 0 {
		blurred := image.NewRGBA(b)
		blurRGBA(shadow, blurred, op.Amount)
		shadow = blurred
	}

	c := op.DropShadowColor
	ca := float64(c.A) / 255
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*src.Stride + x*4
			sa := float64(shadow.Pix[y*shadow.Stride+x*4+3]) / 255 * ca
			inv := 1 - float64(src.Pix[i+3])/255
			// c is straight alpha; the shadow layer is c*sa premultiplied.
			d := dst.Pix[y*dst.Stride+x*4 : y*dst.Stride+x*4+4]
			d[0] = toByte(float64(src.Pix[i+0]) + float64(c.R)*sa*inv)
			d[1] = toByte(float64(src.Pix[i+1]) + float64(c.G)*sa*inv)
			d[2] = toByte(float64(src.Pix[i+2]) + float64(c.B)*sa*inv)
			d[3] = toByte(float64(src.Pix[i+3]) + 255*sa*inv)
		}
	}
}
