// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tree implements a region quad tree of rectangular entities for narrowing
// collision and visibility candidates.
//
// Entities are placed in the deepest node whose quadrant fully contains them, so an entity
// that crosses a center line stays in the parent. A leaf subdivides once it holds more than
// MaxEntities, unless it is already at the tree's max depth.
//
// The tree is meant to be cleared and rebuilt every frame; there is no removal of single
// entities. A Tree is not safe for concurrent use, but independent Trees are.
package tree

import (
	"fmt"
	"github.com/SoftbearStudios/quadtree/server/world"
)

const (
	// DefaultMaxLevels is the max depth used when New is given a negative max depth.
	DefaultMaxLevels = 5
	// MaxLevelsLimit bounds the max depth a Tree accepts.
	MaxLevelsLimit = 16
)

// Tree owns the root node and the scratch stack used by the broad retrieves.
type Tree[E world.Entity] struct {
	root     node[E]
	maxDepth int
	stack    []*node[E]
}

// New creates an empty tree covering boundary. A negative maxDepth selects
// DefaultMaxLevels; a maxDepth of 0 never subdivides.
func New[E world.Entity](maxDepth int, boundary world.AABB) *Tree[E] {
	if maxDepth < 0 {
		maxDepth = DefaultMaxLevels
	}
	if maxDepth > MaxLevelsLimit {
		panic(fmt.Sprintf("max depth %d out of range", maxDepth))
	}
	return &Tree[E]{
		root:     newNode[E](0, boundary),
		maxDepth: maxDepth,
		stack:    make([]*node[E], 0, 4*maxDepth+1),
	}
}

// Boundary is the region covered by the root.
func (t *Tree[E]) Boundary() world.AABB {
	return t.root.boundary
}

// MaxDepth is the depth below which nodes may still subdivide.
func (t *Tree[E]) MaxDepth() int {
	return t.maxDepth
}

// Clear removes all entities and children, leaving an empty root.
func (t *Tree[E]) Clear() {
	t.root.clear()
}

// Insert adds an entity, which must lie inside the boundary. Quadrants are chosen by
// comparing against node centers only, so an entity outside the boundary can sink into a
// leaf whose region it does not touch, and retrieves may never find it.
// Cannot modify the entity's position or size while it is in the tree.
func (t *Tree[E]) Insert(entity E) {
	t.root.insert(entity, t.maxDepth)
}

// Retrieve appends every entity that may overlap query to dst and returns the result.
// Every node whose region overlaps query is visited, so nothing overlapping query is missed.
func (t *Tree[E]) Retrieve(dst []E, query E) []E {
	return t.RetrieveAABB(dst, world.EntityAABB(query))
}

// RetrieveAABB is Retrieve for an arbitrary rectangle, such as a camera view.
func (t *Tree[E]) RetrieveAABB(dst []E, query world.AABB) []E {
	return t.descend(dst, query, (*node[E]).retrieveBroad)
}

// RetrieveOverlapping is RetrieveAABB limited to entities whose own bounds overlap query.
func (t *Tree[E]) RetrieveOverlapping(dst []E, query world.AABB) []E {
	return t.descend(dst, query, (*node[E]).retrieveOverlapping)
}

// descend visits every node reachable from the root by visit, which appends a node's
// entities and pushes the children to continue with.
func (t *Tree[E]) descend(dst []E, query world.AABB, visit func(*node[E], []*node[E], []E, world.AABB) ([]*node[E], []E)) []E {
	t.stack = append(t.stack, &t.root)

	for len(t.stack) > 0 {
		end := len(t.stack) - 1
		n := t.stack[end]
		t.stack[end] = nil
		t.stack = t.stack[:end]

		t.stack, dst = visit(n, t.stack, dst, query)
	}

	return dst
}

// RetrievePrecise appends the entities found by descending only into the quadrant that
// fully contains query. It visits at most one node per level, but can miss entities of a
// sibling quadrant that overlap query near a center line. The result is always a subset
// of Retrieve's.
func (t *Tree[E]) RetrievePrecise(dst []E, query E) []E {
	return t.RetrievePreciseAABB(dst, world.EntityAABB(query))
}

// RetrievePreciseAABB is RetrievePrecise for an arbitrary rectangle.
func (t *Tree[E]) RetrievePreciseAABB(dst []E, query world.AABB) []E {
	return t.root.retrievePrecise(dst, query)
}

// Render draws the boundary of every node, children before parents.
func (t *Tree[E]) Render(renderer Renderer) {
	t.root.render(renderer)
}

// Count returns the number of entities in the tree.
func (t *Tree[E]) Count() int {
	return t.root.count()
}

// NodeCount returns the number of nodes including the root.
func (t *Tree[E]) NodeCount() int {
	return t.root.nodeCount()
}

// Depth returns the depth of the deepest node.
func (t *Tree[E]) Depth() int {
	return t.root.deepest()
}
