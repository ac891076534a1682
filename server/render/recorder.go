// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"image/color"
)

// Command is one recorded outline.
type Command struct {
	Color  string  `json:"color"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Recorder records outlines in call order so they can be replayed elsewhere.
// The zero value is ready to use.
type Recorder struct {
	Commands []Command
	color    string
}

// Reset forgets previous commands but keeps their storage.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// SetColor implements tree.Renderer.SetColor.
func (r *Recorder) SetColor(c color.Color) {
	r.color = Hex(c)
}

// Rect implements tree.Renderer.Rect.
func (r *Recorder) Rect(x, y, width, height float32) {
	r.Commands = append(r.Commands, Command{Color: r.color, X: x, Y: y, Width: width, Height: height})
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.Color) string {
	if c == nil {
		return "#ffffff"
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
