// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"bytes"
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/SoftbearStudios/quadtree/server/world/tree"
	"image/color"
	"image/png"
	"testing"
)

func testTree() *tree.Tree[*world.Box] {
	t := tree.New[*world.Box](tree.DefaultMaxLevels, world.AABBFrom(0, 0, 100, 100))
	t.Insert(world.BoxFrom(1, 10, 10, 5, 5))
	t.Insert(world.BoxFrom(2, 60, 10, 5, 5))
	t.Insert(world.BoxFrom(3, 10, 60, 5, 5))
	t.Insert(world.BoxFrom(4, 60, 60, 5, 5))
	t.Insert(world.BoxFrom(5, 48, 48, 4, 4))
	return t
}

func TestRecorder(t *testing.T) {
	var recorder Recorder
	testTree().Render(&recorder)

	if len(recorder.Commands) != 5 {
		t.Fatalf("expected 5 commands, got %d", len(recorder.Commands))
	}

	root := recorder.Commands[4]
	if root.Width != 100 || root.Height != 100 || root.X != 0 || root.Y != 0 {
		t.Errorf("expected root last, got %#v", root)
	}
	if root.Color != Hex(tree.DepthColor(0)) {
		t.Errorf("expected root color %s, got %s", Hex(tree.DepthColor(0)), root.Color)
	}

	recorder.Reset()
	if len(recorder.Commands) != 0 {
		t.Errorf("expected reset to drop commands")
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c   color.Color
		hex string
	}{
		{color.RGBA{R: 255, A: 255}, "#ff0000"},
		{color.RGBA{R: 255, G: 200, A: 255}, "#ffc800"},
		{color.Black, "#000000"},
		{nil, "#ffffff"},
	}

	for _, test := range tests {
		if hex := Hex(test.c); hex != test.hex {
			t.Errorf("expected Hex(%v): %s, got %s", test.c, test.hex, hex)
		}
	}
}

func TestImage(t *testing.T) {
	img := NewImage(world.AABBFrom(0, 0, 100, 100), 2)
	testTree().Render(img)
	img.Fill(world.AABBFrom(10, 10, 5, 5), color.White)

	if size := img.Canvas.Bounds().Size(); size.X != 200 || size.Y != 200 {
		t.Fatalf("expected 200x200, got %v", size)
	}

	if c := img.Canvas.RGBAAt(0, 0); c != tree.DepthColor(0) {
		t.Errorf("expected root outline at corner, got %v", c)
	}
	if c := img.Canvas.RGBAAt(199, 199); c != tree.DepthColor(0) {
		t.Errorf("expected root outline at far corner, got %v", c)
	}
	if c := img.Canvas.RGBAAt(100, 40); c != tree.DepthColor(1) {
		t.Errorf("expected child outline on center line, got %v", c)
	}
	if c := img.Canvas.RGBAAt(70, 70); c != background {
		t.Errorf("expected background inside a leaf, got %v", c)
	}
	if c := img.Canvas.RGBAAt(25, 25); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("expected filled entity, got %v", c)
	}

	var buf bytes.Buffer
	if err := img.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Canvas.Bounds() {
		t.Errorf("expected decoded bounds %v, got %v", img.Canvas.Bounds(), decoded.Bounds())
	}
}
