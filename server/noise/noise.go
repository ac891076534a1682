// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise scatters boxes with perlin noise so that they cluster like real scenes do,
// which exercises uneven subdivision far better than uniform random placement.
package noise

import (
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"math/rand"
)

const (
	// zones is roughly how many clusters span the bounds on each axis
	zones = 4
	// attempts per box before density is ignored
	maxAttempts = 16
)

// Generator scatters boxes. The same seed always produces the same boxes.
type Generator struct {
	density *perlin.Perlin
	rand    *rand.Rand
}

// New creates a new Generator with a seed.
func New(seed int64) *Generator {
	return &Generator{
		density: perlin.NewPerlin(2, 2, 3, seed),
		rand:    rand.New(rand.NewSource(seed)),
	}
}

// Density is the probability in [0, 1] of keeping a box at normalized coordinates.
func (g *Generator) Density(u, v float32) float32 {
	n := g.density.Noise2D(float64(u*zones), float64(v*zones))
	return clamp(float32(n)*2+0.5, 0, 1)
}

// Boxes scatters count boxes with sides between minSize and maxSize. Every box lies fully
// inside bounds. IDs count up from 1.
func (g *Generator) Boxes(count int, bounds world.AABB, minSize, maxSize float32) []world.Box {
	boxes := make([]world.Box, count)
	for i := range boxes {
		boxes[i] = g.box(uint32(i+1), bounds, minSize, maxSize)
	}
	return boxes
}

func (g *Generator) box(id uint32, bounds world.AABB, minSize, maxSize float32) world.Box {
	width := math32.Min(world.Lerp(minSize, maxSize, g.rand.Float32()), bounds.Width)
	height := math32.Min(world.Lerp(minSize, maxSize, g.rand.Float32()), bounds.Height)

	var u, v float32
	for attempt := 0; attempt < maxAttempts; attempt++ {
		u = g.rand.Float32()
		v = g.rand.Float32()
		if g.rand.Float32() < g.Density(u, v) {
			break
		}
	}

	x := bounds.X + u*(bounds.Width-width)
	y := bounds.Y + v*(bounds.Height-height)
	return world.Box{AABB: world.AABBFrom(x, y, width, height), ID: id}
}
