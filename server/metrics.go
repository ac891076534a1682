// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

var (
	tickLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quadtree_tick_seconds",
		Help:    "The time to move bodies, rebuild the tree and query every body.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	treeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_nodes",
		Help: "The number of nodes in the tree after the last rebuild.",
	})

	treeDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_depth",
		Help: "The depth of the deepest node after the last rebuild.",
	})

	treeCandidates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_candidates",
		Help: "The number of broad phase candidates over all bodies in the last tick.",
	})

	treeOverlaps = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_overlaps",
		Help: "The number of overlapping body pairs in the last tick.",
	})

	clientCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quadtree_clients",
		Help: "The number of connected visualizer clients.",
	})

	droppedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadtree_dropped_messages",
		Help: "The messages dropped because a socket was congested.",
	})
)

func instrumentTick(stats Stats, start time.Time) {
	tickLatency.Observe(time.Since(start).Seconds())
	treeNodes.Set(float64(stats.Nodes))
	treeDepth.Set(float64(stats.Depth))
	treeCandidates.Set(float64(stats.Candidates))
	treeOverlaps.Set(float64(stats.Overlaps))
}
