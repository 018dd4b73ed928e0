// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/layer"
	"github.com/gogpu/compositor/render"
)

// ExampleNewSoftwareRenderer composites a single red layer.
func ExampleNewSoftwareRenderer() {
	tree := layer.NewTree()
	root := tree.NewLayer()
	root.SetBounds(200, 200)
	_ = tree.SetRoot(root)

	box := tree.NewLayer()
	box.SetPosition(geom.Pt(50, 50))
	box.SetBounds(100, 100)
	box.SetDrawsContent(true)
	box.SetColor(color.RGBA{R: 255, A: 255})
	_ = root.AddChild(box)

	frame, err := layer.CalculateDrawProperties(tree, geom.RF(0, 0, 200, 200))
	if err != nil {
		fmt.Println("calculate failed:", err)
		return
	}
	frame.UpdateDamage()

	target := render.NewPixmapTarget(200, 200)
	renderer := render.NewSoftwareRenderer()
	if err := renderer.Render(target, frame, frame.RootDamageRect().ToEnclosingRect()); err != nil {
		fmt.Println("render failed:", err)
		return
	}
	fmt.Println("pixel at (100,100):", target.Image().RGBAAt(100, 100))
	// Output: pixel at (100,100): {255 0 0 255}
}

// ExampleDamageHistory shows how a buffer that missed a frame is brought
// up to date.
func ExampleDamageHistory() {
	history := render.NewDamageHistory(4)
	history.Push(geom.R(0, 0, 10, 10))
	history.Push(geom.R(50, 50, 10, 10))

	r, full := history.DamageForBufferAge(2, geom.R(20, 20, 5, 5))
	fmt.Println(r, full)

	_, full = history.DamageForBufferAge(0, geom.R(20, 20, 5, 5))
	fmt.Println(full)
	// Output:
	// 20,20 40x40 false
	// true
}

// ExampleNewPixmapTarget demonstrates creating and using a CPU render target.
func ExampleNewPixmapTarget() {
	target := render.NewPixmapTarget(400, 300)

	fmt.Printf("target size: %dx%d\n", target.Width(), target.Height())
	fmt.Printf("stride: %d bytes per row\n", target.Stride())
	fmt.Printf("pixels: %d bytes total\n", len(target.Pixels()))
	// Output:
	// target size: 400x300
	// stride: 1600 bytes per row
	// pixels: 480000 bytes total
}
