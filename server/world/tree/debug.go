// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tree

import (
	"fmt"
	"github.com/SoftbearStudios/quadtree/server/world"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{
	MarshalFloatWith6Digits: true,
	EscapeHTML:              false,
	SortMapKeys:             true,
	TagKey:                  "json",
	CaseSensitive:           true,
}.Froze()

// NodeSnapshot is a serializable copy of a node's shape.
type NodeSnapshot struct {
	Boundary world.AABB     `json:"boundary"`
	Depth    int            `json:"depth"`
	Entities int            `json:"entities"`
	Children []NodeSnapshot `json:"children,omitempty"`
}

// Snapshot copies the shape of the tree, with entity counts instead of entities.
func (t *Tree[E]) Snapshot() NodeSnapshot {
	return t.root.snapshot()
}

func (n *node[E]) snapshot() NodeSnapshot {
	s := NodeSnapshot{
		Boundary: n.boundary,
		Depth:    n.depth,
		Entities: len(n.entities),
	}
	if n.children != nil {
		s.Children = make([]NodeSnapshot, len(n.children))
		for i := range n.children {
			s.Children[i] = n.children[i].snapshot()
		}
	}
	return s
}

func (t *Tree[E]) String() string {
	buf, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		panic(err.Error())
	}
	return string(buf)
}

// Debug prints a summary to os.Stdout.
func (t *Tree[E]) Debug() {
	fmt.Printf("quad tree: nodes: %d, entities: %d, depth: %d/%d\n", t.NodeCount(), t.Count(), t.Depth(), t.maxDepth)
}
