// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"image"
	"math"
)

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

var identityMatrix = [20]float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// colorMatrix returns the 4x5 matrix equivalent of a non pixel-moving
// operation. Pixel-moving operations return the identity.
func (op Operation) colorMatrix() [20]float64 {
	a := op.Amount
	switch op.Type {
	case Grayscale:
		return saturationMatrix(1 - clamp01(a))
	case Sepia:
		return lerpMatrix(identityMatrix, [20]float64{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		}, clamp01(a))
	case Saturate:
		return saturationMatrix(a)
	case HueRotate:
		return hueRotateMatrix(a)
	case Invert:
		a = clamp01(a)
		s := 1 - 2*a
		return [20]float64{
			s, 0, 0, 0, 255 * a,
			0, s, 0, 0, 255 * a,
			0, 0, s, 0, 255 * a,
			0, 0, 0, 1, 0,
		}
	case Brightness:
		return [20]float64{
			a, 0, 0, 0, 0,
			0, a, 0, 0, 0,
			0, 0, a, 0, 0,
			0, 0, 0, 1, 0,
		}
	case Contrast:
		// (c - 128) * a + 128
		off := 128 * (1 - a)
		return [20]float64{
			a, 0, 0, 0, off,
			0, a, 0, 0, off,
			0, 0, a, 0, off,
			0, 0, 0, 1, 0,
		}
	case Opacity:
		m := identityMatrix
		m[18] = clamp01(a)
		return m
	case ColorMatrix:
		return op.Matrix
	}
	return identityMatrix
}

// saturationMatrix blends between luminance (0) and identity (1).
func saturationMatrix(s float64) [20]float64 {
	inv := 1 - s
	return [20]float64{
		lumR*inv + s, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + s, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func hueRotateMatrix(degrees float64) [20]float64 {
	const (
		hr = 0.213
		hg = 0.715
		hb = 0.072
	)
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return [20]float64{
		hr + cos*(1-hr) - sin*hr, hg - cos*hg - sin*hg, hb - cos*hb + sin*(1-hb), 0, 0,
		hr - cos*hr + sin*0.143, hg + cos*(1-hg) + sin*0.140, hb - cos*hb - sin*0.283, 0, 0,
		hr - cos*hr - sin*(1-hr), hg - cos*hg + sin*hg, hb + cos*(1-hb) + sin*hb, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func lerpMatrix(a, b [20]float64, t float64) [20]float64 {
	var m [20]float64
	for i := range m {
		m[i] = a[i] + (b[i]-a[i])*t
	}
	return m
}

// applyColorMatrix transforms every pixel of src into dst. Pixels are
// stored premultiplied; the matrix works on straight alpha in 0..255.
func applyColorMatrix(src, dst *image.RGBA, m *[20]float64) {
	b := src.Rect.Intersect(dst.Rect)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, si, di = x+1, si+4, di+4 {
			pr := float64(src.Pix[si+0])
			pg := float64(src.Pix[si+1])
			pb := float64(src.Pix[si+2])
			a := float64(src.Pix[si+3])

			var r, g, bl float64
			if a > 0 {
				r = pr * 255 / a
				g = pg * 255 / a
				bl = pb * 255 / a
			}

			nr := m[0]*r + m[1]*g + m[2]*bl + m[3]*a + m[4]
			ng := m[5]*r + m[6]*g + m[7]*bl + m[8]*a + m[9]
			nb := m[10]*r + m[11]*g + m[12]*bl + m[13]*a + m[14]
			na := clamp255(m[15]*r + m[16]*g + m[17]*bl + m[18]*a + m[19])

			f := na / 255
			dst.Pix[di+0] = toByte(clamp255(nr) * f)
			dst.Pix[di+1] = toByte(clamp255(ng) * f)
			dst.Pix[di+2] = toByte(clamp255(nb) * f)
			dst.Pix[di+3] = toByte(na)
		}
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func clamp255(v float64) float64 {
	return min(max(v, 0), 255)
}

func toByte(v float64) uint8 {
	return uint8(clamp255(v) + 0.5)
}
