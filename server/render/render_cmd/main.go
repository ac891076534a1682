// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"github.com/SoftbearStudios/quadtree/server/noise"
	"github.com/SoftbearStudios/quadtree/server/render"
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/SoftbearStudios/quadtree/server/world/tree"
	"image/color"
	"log"
	"os"
	"runtime/pprof"
)

func main() {
	var (
		cpuProfile string
		output     string
		count      int
		maxDepth   int
		seed       int64
		size       float64
		scale      float64
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&output, "out", "out.png", "output `file`")
	flag.IntVar(&count, "count", 1000, "number of boxes")
	flag.IntVar(&maxDepth, "max-depth", -1, "maximum depth of the quad tree (negative for default)")
	flag.Int64Var(&seed, "seed", 1, "seed of box placement")
	flag.Float64Var(&size, "size", 1024, "width and height of the world")
	flag.Float64Var(&scale, "scale", 1, "pixels per world unit")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	run(output, count, maxDepth, seed, float32(size), float32(scale))
}

func run(output string, count, maxDepth int, seed int64, size, scale float32) {
	bounds := world.AABBFrom(0, 0, size, size)
	boxes := noise.New(seed).Boxes(count, bounds, 2, 16)

	t := tree.New[*world.Box](maxDepth, bounds)
	for i := range boxes {
		t.Insert(&boxes[i])
	}
	t.Debug()

	img := render.NewImage(bounds, scale)
	for i := range boxes {
		img.Fill(boxes[i].AABB, color.RGBA{R: 120, G: 120, B: 140, A: 160})
	}
	t.Render(img)

	file, err := os.Create(output)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if err = img.Encode(file); err != nil {
		log.Fatal(err)
	}
}
