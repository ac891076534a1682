// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/quadtree/server/cloud/fs"
	"github.com/SoftbearStudios/quadtree/server/render"
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/SoftbearStudios/quadtree/server/world/tree"
	"log"
	"os"
	"sync/atomic"
	"time"
)

const (
	updatePeriod = time.Second / 30
	statusPeriod = time.Second
	debugPeriod  = time.Second * 5

	defaultSnapshotPeriod = time.Minute
	defaultSnapshotScale  = 1
	snapshotCache         = 60 // seconds
)

// HubOptions configures a Hub. Zero values select defaults.
type HubOptions struct {
	Bodies   int
	MaxDepth int // negative selects tree.DefaultMaxLevels
	Seed     int64
	Bounds   world.AABB

	// Filesystem receives periodic PNG snapshots of the tree. nil disables snapshots.
	Filesystem     fs.Filesystem
	SnapshotPeriod time.Duration
	SnapshotScale  float32 // pixels per world unit
}

// Hub owns the simulation and broadcasts its frames to clients.
// All simulation and tree access happens on the hub goroutine.
type Hub struct {
	simulation *Simulation
	tick       int
	clients    ClientList

	filesystem    fs.Filesystem
	snapshotScale float32

	statusJSON atomic.Value
	recorder   render.Recorder
	results    []uint32

	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	updateTicker   *time.Ticker
	updateTime     time.Time
	statusTicker   *time.Ticker
	debugTicker    *time.Ticker
	snapshotTicker *time.Ticker
}

func NewHub(options HubOptions) *Hub {
	if options.Bodies <= 0 {
		options.Bodies = 500
	}
	if options.Bounds.Width <= 0 || options.Bounds.Height <= 0 {
		options.Bounds = world.AABBFrom(0, 0, 1024, 1024)
	}
	if options.SnapshotPeriod <= 0 {
		options.SnapshotPeriod = defaultSnapshotPeriod
	}
	if options.SnapshotScale <= 0 {
		options.SnapshotScale = defaultSnapshotScale
	}
	if options.MaxDepth > tree.MaxLevelsLimit {
		log.Fatalf("max depth %d exceeds %d", options.MaxDepth, tree.MaxLevelsLimit)
	}

	h := &Hub{
		simulation:     NewSimulation(options.Bounds, options.Bodies, options.MaxDepth, options.Seed),
		filesystem:     options.Filesystem,
		snapshotScale:  options.SnapshotScale,
		inbound:        make(chan SignedInbound, 16),
		register:       make(chan Client, 8),
		unregister:     make(chan Client, 16),
		updateTicker:   time.NewTicker(updatePeriod),
		updateTime:     time.Now(),
		statusTicker:   time.NewTicker(statusPeriod),
		debugTicker:    time.NewTicker(debugPeriod),
		snapshotTicker: time.NewTicker(options.SnapshotPeriod),
	}
	h.Status()
	return h
}

func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		}
		println("That's it, I'm out -hub")
		os.Exit(1)
	}()

	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
			clientCount.Set(float64(h.clients.Len))
		case client := <-h.unregister:
			client.Close()
			client.Data().Hub = nil
			h.clients.Remove(client)
			clientCount.Set(float64(h.clients.Len))
		case in := <-h.inbound:
			// If not same hub the message is old
			if in.Client.Data().Hub == h {
				h.Inbound(in.Client, in.Query)
			}
		case <-h.updateTicker.C:
			now := time.Now()
			seconds := float32(now.Sub(h.updateTime).Seconds())
			h.updateTime = now

			// Falling far behind, don't teleport bodies
			if limit := float32(updatePeriod.Seconds()) * 4; seconds > limit {
				seconds = limit
			}

			h.Update(seconds)
		case <-h.statusTicker.C:
			h.Status()
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.snapshotTicker.C:
			if err := h.Snapshot(); err != nil {
				fmt.Println("snapshot error:", err)
			}
		}
	}
}

// Inbound applies a client's query. Invalid modes are ignored.
func (h *Hub) Inbound(client Client, query Query) {
	if !query.Mode.Valid() {
		log.Println("invalid query mode received:", query.Mode)
		return
	}

	data := client.Data()
	if query.Mode == QueryModeNone {
		data.Query = nil
	} else {
		data.Query = &query
	}
}

// Update advances the simulation and sends a frame to every client.
func (h *Hub) Update(seconds float32) {
	defer h.timeFunction("update", time.Now())

	start := time.Now()
	h.simulation.Tick(seconds)
	h.tick++
	instrumentTick(h.simulation.Stats, start)

	if h.clients.Len == 0 {
		return
	}

	h.recorder.Reset()
	h.simulation.Tree.Render(&h.recorder)

	frame := Frame{
		Tick:   h.tick,
		Bounds: h.simulation.Bounds,
		Nodes:  h.recorder.Commands,
		Bodies: h.simulation.Bodies,
		Stats:  h.simulation.Stats,
	}

	// Marshal on the hub goroutine since bodies change next tick
	buf, err := json.Marshal(frame.message())
	if err != nil {
		panic(err)
	}

	for client := h.clients.First; client != nil; client = client.Data().Next {
		client.Send(buf)

		query := client.Data().Query
		if query == nil {
			continue
		}

		h.results = h.simulation.Query(*query, h.results[:0])
		result := QueryResult{Query: *query, Tick: h.tick, Results: h.results}

		resultBuf, err := json.Marshal(result.message())
		if err != nil {
			panic(err)
		}
		client.Send(resultBuf)
	}
}

// Status updates the JSON served by ServeIndex.
func (h *Hub) Status() {
	status := Status{
		Bodies:   len(h.simulation.Bodies),
		Clients:  h.clients.Len,
		Tick:     h.tick,
		MaxDepth: h.simulation.Tree.MaxDepth(),
		Stats:    h.simulation.Stats,
	}

	buf, err := json.Marshal(status)
	if err != nil {
		panic(err)
	}
	h.statusJSON.Store(buf)
}
