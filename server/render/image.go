// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render contains debug renderers for tree.Renderer.
package render

import (
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/chewxy/math32"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

var background = color.RGBA{R: 20, G: 20, B: 28, A: 255}

// Image rasterizes outlines into an RGBA image. World coordinates are mapped so that
// bounds fills the image, with y growing downward.
type Image struct {
	Canvas *image.RGBA
	bounds world.AABB
	scale  float32
	color  color.Color
}

// NewImage creates an image of bounds at scale pixels per world unit.
func NewImage(bounds world.AABB, scale float32) *Image {
	width := int(math32.Ceil(bounds.Width * scale))
	height := int(math32.Ceil(bounds.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	return &Image{
		Canvas: img,
		bounds: bounds,
		scale:  scale,
		color:  color.White,
	}
}

// SetColor implements tree.Renderer.SetColor.
func (img *Image) SetColor(c color.Color) {
	img.color = c
}

// Rect implements tree.Renderer.Rect by drawing a 1 pixel outline.
func (img *Image) Rect(x, y, width, height float32) {
	r := img.pixels(world.AABBFrom(x, y, width, height))
	c := &image.Uniform{C: img.color}

	// Max edges inclusive so neighbors share a line
	edges := [...]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y, r.Max.X+1, r.Max.Y+1),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y+1),
		image.Rect(r.Max.X, r.Min.Y, r.Max.X+1, r.Max.Y+1),
	}
	for _, edge := range edges {
		draw.Draw(img.Canvas, edge.Intersect(img.Canvas.Bounds()), c, image.Point{}, draw.Src)
	}
}

// Fill draws a solid rectangle, such as an entity.
func (img *Image) Fill(aabb world.AABB, c color.Color) {
	r := img.pixels(aabb)
	r.Max = r.Max.Add(image.Pt(1, 1))
	draw.Draw(img.Canvas, r.Intersect(img.Canvas.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// Encode writes the image as PNG.
func (img *Image) Encode(w io.Writer) error {
	return png.Encode(w, img.Canvas)
}

// pixels maps a world rectangle to pixel space, with Max clamped to the last pixel.
func (img *Image) pixels(aabb world.AABB) image.Rectangle {
	lo := aabb.Vec2f.Sub(img.bounds.Vec2f).Mul(img.scale)
	hi := aabb.Max().Sub(img.bounds.Vec2f).Mul(img.scale)

	r := image.Rect(int(math32.Floor(lo.X)), int(math32.Floor(lo.Y)), int(math32.Floor(hi.X)), int(math32.Floor(hi.Y)))
	size := img.Canvas.Bounds().Size()
	if r.Max.X >= size.X {
		r.Max.X = size.X - 1
	}
	if r.Max.Y >= size.Y {
		r.Max.Y = size.Y - 1
	}
	return r
}
