// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"fmt"
	"github.com/SoftbearStudios/quadtree/server/render"
	"image/color"
	"runtime"
	"time"
)

var (
	bodyColor      = color.RGBA{R: 120, G: 120, B: 140, A: 160}
	collidingColor = color.RGBA{R: 255, G: 60, B: 60, A: 200}
)

// Debug prints debugging info to console.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v]\n", time.Now().Format(time.UnixDate))
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf(" - memstats: %dM/%dM\n", stats.HeapInuse/1e6, stats.NextGC/1e6)

	s := h.simulation.Stats
	fmt.Printf(" - clients: %d, bodies: %d, tick: %d\n", h.clients.Len, len(h.simulation.Bodies), h.tick)
	fmt.Printf(" - candidates: %d, overlaps: %d\n", s.Candidates, s.Overlaps)

	fmt.Print(" - ")
	h.simulation.Tree.Debug()

	// Function benchmarks
	var totalDuration time.Duration

	fmt.Print(" - ")
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		fmt.Print(bench.name, ": ", duration, ", ")
	}
	fmt.Println("total:", totalDuration)
}

// Snapshot renders the tree and bodies to PNG and uploads it. Does nothing when offline.
func (h *Hub) Snapshot() error {
	if h.filesystem == nil {
		return nil
	}
	defer h.timeFunction("snapshot", time.Now())

	img := render.NewImage(h.simulation.Bounds, h.snapshotScale)
	for i := range h.simulation.Bodies {
		body := &h.simulation.Bodies[i]
		c := bodyColor
		if body.Colliding {
			c = collidingColor
		}
		img.Fill(body.AABB, c)
	}
	h.simulation.Tree.Render(img)

	var buf bytes.Buffer
	if err := img.Encode(&buf); err != nil {
		return err
	}

	return h.filesystem.UploadStaticFile(fmt.Sprintf("snapshots/%d.png", unixMillis()), snapshotCache, buf.Bytes())
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
