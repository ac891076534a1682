// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is an axis aligned bounding box in corner form. Vec2f is the corner with the smallest
// coordinates. Y grows downward, so the top edge is at Y and the bottom edge at Y+Height.
//
// Width and Height are expected to be positive and finite. Degenerate boxes are not
// rejected, they just classify unpredictably.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// Position implements Entity.Position so an AABB can be indexed directly.
func (a AABB) Position() Vec2f {
	return a.Vec2f
}

// Size implements Entity.Size.
func (a AABB) Size() Vec2f {
	return Vec2f{X: a.Width, Y: a.Height}
}

// Center of a
func (a AABB) Center() Vec2f {
	return Vec2f{X: a.X + a.Width*0.5, Y: a.Y + a.Height*0.5}
}

// Max corner of a
func (a AABB) Max() Vec2f {
	return Vec2f{X: a.X + a.Width, Y: a.Y + a.Height}
}

// Overlaps a and b share area, touching edges excluded
func (a AABB) Overlaps(b AABB) bool {
	return a.X < b.X+b.Width && a.X+a.Width > b.X && a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
}

// Quadrants All quadrants of a
func (a AABB) Quadrants() [4]AABB {
	var quadrants [4]AABB
	for i := range quadrants {
		quadrants[i] = a.Quadrant(i)
	}
	return quadrants
}

// Quadrant of a by index: 0 top left, 1 top right, 2 bottom right, 3 bottom left
func (a AABB) Quadrant(quadrant int) AABB {
	pos := a.Vec2f
	width := a.Width * 0.5
	height := a.Height * 0.5
	switch quadrant {
	case 1:
		pos.X += width
	case 2:
		pos.X += width
		pos.Y += height
	case 3:
		pos.Y += height
	}
	return AABB{Vec2f: pos, Width: width, Height: height}
}
