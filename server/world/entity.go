// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Entity is anything with a rectangular extent that can be indexed spatially.
// Implementations are only read, never modified, by the index.
type Entity interface {
	// Position of the corner with the smallest coordinates
	Position() Vec2f
	// Size as width and height
	Size() Vec2f
}

// EntityAABB is the bounding box derived from an entity's position and size.
func EntityAABB(entity Entity) AABB {
	pos := entity.Position()
	size := entity.Size()
	return AABB{Vec2f: pos, Width: size.X, Height: size.Y}
}

// Box is a plain identified rectangle.
type Box struct {
	AABB
	ID uint32 `json:"id"`
}

func BoxFrom(id uint32, x, y, width, height float32) *Box {
	return &Box{AABB: AABBFrom(x, y, width, height), ID: id}
}
