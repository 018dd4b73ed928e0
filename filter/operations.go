// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/gogpu/compositor/geom"
)

// Type identifies a filter operation.
type Type uint8

// Filter operation types.
const (
	Grayscale Type = iota
	Sepia
	Saturate
	HueRotate
	Invert
	Brightness
	Contrast
	Opacity
	Blur
	DropShadow
	ColorMatrix
)

var typeNames = [...]string{
	Grayscale:   "grayscale",
	Sepia:       "sepia",
	Saturate:    "saturate",
	HueRotate:   "hue-rotate",
	Invert:      "invert",
	Brightness:  "brightness",
	Contrast:    "contrast",
	Opacity:     "opacity",
	Blur:        "blur",
	DropShadow:  "drop-shadow",
	ColorMatrix: "color-matrix",
}

// String returns the CSS-style name of the type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// ParseType returns the Type named s.
func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), true
		}
	}
	return 0, false
}

// Operation is a single filter step. Amount is the blur standard deviation
// for Blur and DropShadow, degrees for HueRotate, and a factor for the
// color operations. Operation values are comparable with ==.
type Operation struct {
	Type             Type
	Amount           float64
	DropShadowOffset geom.Point
	DropShadowColor  color.RGBA
	Matrix           [20]float64
}

// NewBlur returns a Gaussian blur with the given standard deviation.
func NewBlur(stdDeviation float64) Operation {
	return Operation{Type: Blur, Amount: stdDeviation}
}

// NewDropShadow returns a drop shadow drawn under the content.
func NewDropShadow(offset geom.Point, stdDeviation float64, c color.RGBA) Operation {
	return Operation{Type: DropShadow, Amount: stdDeviation, DropShadowOffset: offset, DropShadowColor: c}
}

// NewGrayscale returns a grayscale operation; amount 1 is fully gray.
func NewGrayscale(amount float64) Operation { return Operation{Type: Grayscale, Amount: amount} }

// NewSepia returns a sepia operation; amount 1 is full sepia.
func NewSepia(amount float64) Operation { return Operation{Type: Sepia, Amount: amount} }

// NewSaturate returns a saturation operation; amount 1 is unchanged.
func NewSaturate(amount float64) Operation { return Operation{Type: Saturate, Amount: amount} }

// NewHueRotate returns a hue rotation by degrees.
func NewHueRotate(degrees float64) Operation { return Operation{Type: HueRotate, Amount: degrees} }

// NewInvert returns an invert operation; amount 1 is fully inverted.
func NewInvert(amount float64) Operation { return Operation{Type: Invert, Amount: amount} }

// NewBrightness returns a brightness operation; amount 1 is unchanged.
func NewBrightness(amount float64) Operation { return Operation{Type: Brightness, Amount: amount} }

// NewContrast returns a contrast operation; amount 1 is unchanged.
func NewContrast(amount float64) Operation { return Operation{Type: Contrast, Amount: amount} }

// NewOpacity returns an alpha multiplier.
func NewOpacity(amount float64) Operation { return Operation{Type: Opacity, Amount: amount} }

// NewColorMatrix returns a 4x5 row-major color matrix operation. The fifth
// column is a bias in 0..255 units.
func NewColorMatrix(m [20]float64) Operation { return Operation{Type: ColorMatrix, Matrix: m} }

// MovesPixels reports whether the output at a pixel depends on other
// pixels of the input.
func (op Operation) MovesPixels() bool {
	return op.Type == Blur || op.Type == DropShadow
}

// AffectsOpacity reports whether the operation can change alpha.
func (op Operation) AffectsOpacity() bool {
	switch op.Type {
	case Opacity, Blur, DropShadow:
		return true
	case ColorMatrix:
		m := &op.Matrix
		return m[15] != 0 || m[16] != 0 || m[17] != 0 || m[18] != 1 || m[19] != 0
	}
	return false
}

// Outsets is how far a filter's output reaches beyond its input, per side.
type Outsets struct {
	Top, Right, Bottom, Left int
}

// IsZero reports whether all sides are zero.
func (o Outsets) IsZero() bool { return o == Outsets{} }

// ExpandRect grows r by the outsets.
func (o Outsets) ExpandRect(r geom.RectF) geom.RectF {
	return r.Outset(float64(o.Left), float64(o.Top), float64(o.Right), float64(o.Bottom))
}

// spreadForStdDeviation matches the half-width of GaussianKernel.
func spreadForStdDeviation(stdDeviation float64) int {
	if stdDeviation <= 0 {
		return 0
	}
	return int(math.Ceil(stdDeviation * 3))
}

// Operations is an ordered filter list applied first to last.
type Operations []Operation

// IsEmpty reports whether the list has no operations.
func (ops Operations) IsEmpty() bool { return len(ops) == 0 }

// HasFilterThatMovesPixels reports whether any operation reads
// neighboring pixels.
func (ops Operations) HasFilterThatMovesPixels() bool {
	return slices.ContainsFunc(ops, Operation.MovesPixels)
}

// HasFilterThatAffectsOpacity reports whether any operation can change
// alpha.
func (ops Operations) HasFilterThatAffectsOpacity() bool {
	return slices.ContainsFunc(ops, Operation.AffectsOpacity)
}

// Outsets sums the reach of every pixel-moving operation. A drop shadow
// reaches further on the side it is offset toward and less on the other.
func (ops Operations) Outsets() Outsets {
	var o Outsets
	for _, op := range ops {
		spread := spreadForStdDeviation(op.Amount)
		switch op.Type {
		case Blur:
			o.Top += spread
			o.Right += spread
			o.Bottom += spread
			o.Left += spread
		case DropShadow:
			off := op.DropShadowOffset
			o.Top += max(0, spread-off.Y)
			o.Right += max(0, spread+off.X)
			o.Bottom += max(0, spread+off.Y)
			o.Left += max(0, spread-off.X)
		}
	}
	return o
}

// ExpandRect grows r by the list's outsets.
func (ops Operations) ExpandRect(r geom.RectF) geom.RectF {
	return ops.Outsets().ExpandRect(r)
}

// Equal reports whether both lists hold the same operations in order.
func (ops Operations) Equal(o Operations) bool {
	return slices.Equal(ops, o)
}

// Apply runs the list over src and writes the result to dst. src and dst
// must have the same bounds; they may be the same image.
func (ops Operations) Apply(src, dst *image.RGBA) {
	if src == nil || dst == nil {
		return
	}
	if src != dst {
		copy(dst.Pix, src.Pix)
	}
	if len(ops) == 0 {
		return
	}
	cur, tmp := dst, (*image.RGBA)(nil)
	for _, op := range ops {
		switch op.Type {
		case Blur, DropShadow:
			if tmp == nil {
				tmp = image.NewRGBA(dst.Rect)
			}
			if op.Type == Blur {
				blurRGBA(cur, tmp, op.Amount)
			} else {
				dropShadow(cur, tmp, op)
			}
			cur, tmp = tmp, cur
		default:
			m := op.colorMatrix()
			applyColorMatrix(cur, cur, &m)
		}
	}
	if cur != dst {
		copy(dst.Pix, cur.Pix)
	}
}
