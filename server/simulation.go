// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/quadtree/server/noise"
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/SoftbearStudios/quadtree/server/world/tree"
	"github.com/chewxy/math32"
	"math/rand"
)

const (
	minBodySize  = 4
	maxBodySize  = 24
	minBodySpeed = 10 // units per second
	maxBodySpeed = 80
)

type (
	// Body is a box that moves in a straight line and bounces off the bounds.
	Body struct {
		world.Box
		Velocity  world.Vec2f `json:"velocity"`
		Colliding bool        `json:"colliding,omitempty"`
	}

	// Simulation moves bodies and rebuilds a tree of them every tick.
	Simulation struct {
		Bounds     world.AABB
		Bodies     []Body
		Tree       *tree.Tree[*Body]
		Stats      Stats
		candidates []*Body
	}

	// Stats of the last tick.
	Stats struct {
		Nodes      int `json:"nodes"`
		Depth      int `json:"depth"`
		Candidates int `json:"candidates"` // sum of candidates over all bodies, excluding self
		Overlaps   int `json:"overlaps"`   // overlapping pairs
	}
)

// NewSimulation scatters count bodies inside bounds.
func NewSimulation(bounds world.AABB, count int, maxDepth int, seed int64) *Simulation {
	boxes := noise.New(seed).Boxes(count, bounds, minBodySize, maxBodySize)
	r := rand.New(rand.NewSource(seed))

	bodies := make([]Body, len(boxes))
	for i, box := range boxes {
		speed := world.Lerp(minBodySpeed, maxBodySpeed, r.Float32())
		direction := r.Float32() * math32.Pi * 2
		bodies[i] = Body{
			Box:      box,
			Velocity: world.Vec2f{X: math32.Cos(direction), Y: math32.Sin(direction)}.Mul(speed),
		}
	}

	s := &Simulation{
		Bounds: bounds,
		Bodies: bodies,
		Tree:   tree.New[*Body](maxDepth, bounds),
	}
	s.rebuild()
	return s
}

// Tick advances bodies by seconds, then rebuilds the tree and collision stats.
func (s *Simulation) Tick(seconds float32) {
	for i := range s.Bodies {
		s.Bodies[i].move(seconds, s.Bounds)
	}
	s.rebuild()
}

// Query runs a client query against the current tree and returns the ids found.
func (s *Simulation) Query(query Query, dst []uint32) []uint32 {
	switch query.Mode {
	case QueryModeBroad:
		s.candidates = s.Tree.RetrieveAABB(s.candidates[:0], query.AABB)
	case QueryModePrecise:
		s.candidates = s.Tree.RetrievePreciseAABB(s.candidates[:0], query.AABB)
	case QueryModeOverlapping:
		s.candidates = s.Tree.RetrieveOverlapping(s.candidates[:0], query.AABB)
	default:
		return dst
	}

	for _, body := range s.candidates {
		dst = append(dst, body.ID)
	}
	return dst
}

func (s *Simulation) rebuild() {
	s.Tree.Clear()
	for i := range s.Bodies {
		body := &s.Bodies[i]
		body.Colliding = false
		s.Tree.Insert(body)
	}

	stats := Stats{
		Nodes: s.Tree.NodeCount(),
		Depth: s.Tree.Depth(),
	}

	for i := range s.Bodies {
		body := &s.Bodies[i]
		s.candidates = s.Tree.Retrieve(s.candidates[:0], body)

		for _, other := range s.candidates {
			if other == body {
				continue
			}
			stats.Candidates++

			if body.AABB.Overlaps(other.AABB) {
				body.Colliding = true
				// Each pair is found from both sides
				if body.ID < other.ID {
					stats.Overlaps++
				}
			}
		}
	}

	s.Stats = stats
}

func (body *Body) move(seconds float32, bounds world.AABB) {
	body.Vec2f = body.Vec2f.AddScaled(body.Velocity, seconds)

	maxX := bounds.X + bounds.Width - body.Width
	maxY := bounds.Y + bounds.Height - body.Height

	if body.X < bounds.X {
		body.X = bounds.X
		body.Velocity.X = math32.Abs(body.Velocity.X)
	} else if body.X > maxX {
		body.X = maxX
		body.Velocity.X = -math32.Abs(body.Velocity.X)
	}

	if body.Y < bounds.Y {
		body.Y = bounds.Y
		body.Velocity.Y = math32.Abs(body.Velocity.Y)
	} else if body.Y > maxY {
		body.Y = maxY
		body.Velocity.Y = -math32.Abs(body.Velocity.Y)
	}
}
