// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tree

import (
	"image/color"
)

// Renderer draws debug outlines of nodes. Rect is called once per node, after SetColor.
type Renderer interface {
	SetColor(c color.Color)
	Rect(x, y, width, height float32)
}

var (
	orange  = color.RGBA{R: 255, G: 200, A: 255}
	red     = color.RGBA{R: 255, A: 255}
	green   = color.RGBA{G: 255, A: 255}
	blue    = color.RGBA{B: 255, A: 255}
	magenta = color.RGBA{R: 255, B: 255, A: 255}
)

// DepthColor is the outline color of nodes at depth.
func DepthColor(depth int) color.RGBA {
	switch depth {
	case 0, 1:
		return orange
	case 2:
		return red
	case 3:
		return green
	case 4:
		return blue
	default:
		return magenta
	}
}
