// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/quadtree/server/world"
	"testing"
)

// inside reports whether box lies in bounds, allowing for float32 rounding error
func inside(bounds, box world.AABB) bool {
	const e = 0.01
	end := box.Max()
	return box.X >= bounds.X-e && box.Y >= bounds.Y-e &&
		end.X <= bounds.X+bounds.Width+e && end.Y <= bounds.Y+bounds.Height+e
}

func TestGenerator_Boxes(t *testing.T) {
	bounds := world.AABBFrom(-500, -250, 1000, 500)
	boxes := New(42).Boxes(1000, bounds, 2, 20)

	if len(boxes) != 1000 {
		t.Fatalf("expected 1000 boxes, got %d", len(boxes))
	}

	for i, box := range boxes {
		if !inside(bounds, box.AABB) {
			t.Errorf("expected %v inside %v", box.AABB, bounds)
		}
		if box.Width < 2 || box.Width > 20 || box.Height < 2 || box.Height > 20 {
			t.Errorf("expected size in [2, 20], got %v", box.Size())
		}
		if box.ID != uint32(i+1) {
			t.Errorf("expected id %d, got %d", i+1, box.ID)
		}
	}

	again := New(42).Boxes(1000, bounds, 2, 20)
	for i := range boxes {
		if boxes[i] != again[i] {
			t.Fatalf("expected same seed to produce same boxes at %d", i)
		}
	}
}

func TestGenerator_BoxesClampSize(t *testing.T) {
	bounds := world.AABBFrom(0, 0, 10, 10)
	for _, box := range New(1).Boxes(50, bounds, 5, 50) {
		if !inside(bounds, box.AABB) {
			t.Errorf("expected %v inside %v", box.AABB, bounds)
		}
	}
}

func TestGenerator_Density(t *testing.T) {
	g := New(7)
	for u := float32(0); u <= 1; u += 0.05 {
		for v := float32(0); v <= 1; v += 0.05 {
			if d := g.Density(u, v); d < 0 || d > 1 {
				t.Errorf("expected density in [0, 1], got %f", d)
			}
		}
	}
}
