// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tree

import (
	"github.com/SoftbearStudios/quadtree/server/world"
)

// MaxEntities is how many entities a leaf holds before it tries to subdivide.
const MaxEntities = 4

// Quadrant indexes the children of a node.
type Quadrant int8

const (
	QuadrantNone Quadrant = iota - 1
	NorthWest
	NorthEast
	SouthEast
	SouthWest
)

func (q Quadrant) String() string {
	switch q {
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case SouthEast:
		return "SE"
	case SouthWest:
		return "SW"
	default:
		return "none"
	}
}

type node[E world.Entity] struct {
	boundary world.AABB
	depth    int
	entities []E
	children *[4]node[E] // nil for leaves
}

func newNode[E world.Entity](depth int, boundary world.AABB) node[E] {
	return node[E]{
		boundary: boundary,
		depth:    depth,
	}
}

func (n *node[E]) leaf() bool {
	return n.children == nil
}

// index returns the quadrant that fully contains aabb, or QuadrantNone if it touches or
// crosses either center line.
func (n *node[E]) index(aabb world.AABB) Quadrant {
	center := n.boundary.Center()

	top := aabb.Y+aabb.Height < center.Y
	bottom := aabb.Y > center.Y

	if aabb.X < center.X && aabb.X+aabb.Width < center.X {
		if top {
			return NorthWest
		} else if bottom {
			return SouthWest
		}
	} else if aabb.X > center.X {
		if top {
			return NorthEast
		} else if bottom {
			return SouthEast
		}
	}

	return QuadrantNone
}

// subdivide splits the node into 4 children of equal size in NW, NE, SE, SW order.
// Does nothing if already subdivided.
func (n *node[E]) subdivide() {
	if n.children != nil {
		return
	}

	var children [4]node[E]
	for i, quad := range n.boundary.Quadrants() {
		children[i] = newNode[E](n.depth+1, quad)
	}
	n.children = &children
}

func (n *node[E]) insert(entity E, maxDepth int) {
	if n.children != nil {
		if q := n.index(world.EntityAABB(entity)); q != QuadrantNone {
			n.children[q].insert(entity, maxDepth)
			return
		}
	}

	n.entities = append(n.entities, entity)

	if len(n.entities) <= MaxEntities || n.depth >= maxDepth {
		return
	}

	n.subdivide()

	// Push down everything that fits in a child, keeping order of what remains
	entities := n.entities
	kept := entities[:0]
	for _, e := range entities {
		if q := n.index(world.EntityAABB(e)); q != QuadrantNone {
			n.children[q].insert(e, maxDepth)
		} else {
			kept = append(kept, e)
		}
	}

	// Clear references
	var zero E
	for i := len(kept); i < len(entities); i++ {
		entities[i] = zero
	}
	n.entities = kept
}

// retrievePrecise appends the entities on the single path of nodes that could fully
// contain query. Entities in sibling quadrants that overlap query near a center line are
// not found.
func (n *node[E]) retrievePrecise(dst []E, query world.AABB) []E {
	if n.children != nil {
		if q := n.index(query); q != QuadrantNone {
			dst = n.children[q].retrievePrecise(dst, query)
		}
	}
	return append(dst, n.entities...)
}

// retrieveBroad appends all of the node's entities to dst and pushes every child that
// overlaps query to stack.
func (n *node[E]) retrieveBroad(stack []*node[E], dst []E, query world.AABB) ([]*node[E], []E) {
	dst = append(dst, n.entities...)
	return n.pushChildren(stack, query), dst
}

// retrieveOverlapping is retrieveBroad with the node's entities filtered by overlap.
func (n *node[E]) retrieveOverlapping(stack []*node[E], dst []E, query world.AABB) ([]*node[E], []E) {
	for _, e := range n.entities {
		if query.Overlaps(world.EntityAABB(e)) {
			dst = append(dst, e)
		}
	}
	return n.pushChildren(stack, query), dst
}

func (n *node[E]) pushChildren(stack []*node[E], query world.AABB) []*node[E] {
	if n.children == nil {
		return stack
	}
	for i := range n.children {
		child := &n.children[i]
		if child.boundary.Overlaps(query) {
			stack = append(stack, child)
		}
	}
	return stack
}

// render visits children first, then the node itself.
func (n *node[E]) render(renderer Renderer) {
	if n.children != nil {
		for i := range n.children {
			n.children[i].render(renderer)
		}
	}

	renderer.SetColor(DepthColor(n.depth))
	b := n.boundary
	renderer.Rect(b.X, b.Y, b.Width, b.Height)
}

func (n *node[E]) clear() {
	var zero E
	for i := range n.entities {
		n.entities[i] = zero
	}
	n.entities = n.entities[:0]

	if n.children != nil {
		for i := range n.children {
			n.children[i].clear()
		}
		n.children = nil
	}
}

func (n *node[E]) count() (count int) {
	count = len(n.entities)
	if n.children != nil {
		for i := range n.children {
			count += n.children[i].count()
		}
	}
	return
}

func (n *node[E]) nodeCount() (count int) {
	count = 1
	if n.children != nil {
		for i := range n.children {
			count += n.children[i].nodeCount()
		}
	}
	return
}

// deepest returns the largest depth of any node in the subtree.
func (n *node[E]) deepest() int {
	depth := n.depth
	if n.children != nil {
		for i := range n.children {
			if d := n.children[i].deepest(); d > depth {
				depth = d
			}
		}
	}
	return depth
}
