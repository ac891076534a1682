// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/quadtree/server/render"
	"github.com/SoftbearStudios/quadtree/server/world"
)

type (
	// QueryMode selects a tree retrieve.
	QueryMode string

	// Query is sent by a client to see what a rectangle retrieves. An empty mode stops querying.
	Query struct {
		world.AABB
		Mode QueryMode `json:"mode"`
	}

	// SignedInbound is a Query with the client that sent it.
	SignedInbound struct {
		Client Client
		Query  Query
	}

	// Message wraps outbound data with its type.
	Message struct {
		Data interface{} `json:"data"`
		Type string      `json:"type"`
	}

	// Frame is the state of the simulation after one tick.
	Frame struct {
		Tick   int              `json:"tick"`
		Bounds world.AABB       `json:"bounds"`
		Nodes  []render.Command `json:"nodes"`
		Bodies []Body           `json:"bodies"`
		Stats  Stats            `json:"stats"`
	}

	// QueryResult is the answer to a client's Query for one tick.
	QueryResult struct {
		Query
		Tick    int      `json:"tick"`
		Results []uint32 `json:"results"`
	}

	// Status is served over HTTP.
	Status struct {
		Bodies   int   `json:"bodies"`
		Clients  int   `json:"clients"`
		Tick     int   `json:"tick"`
		MaxDepth int   `json:"maxDepth"`
		Stats    Stats `json:"stats"`
	}
)

const (
	QueryModeNone        QueryMode = ""
	QueryModeBroad       QueryMode = "broad"
	QueryModePrecise     QueryMode = "precise"
	QueryModeOverlapping QueryMode = "overlapping"
)

func (mode QueryMode) Valid() bool {
	switch mode {
	case QueryModeNone, QueryModeBroad, QueryModePrecise, QueryModeOverlapping:
		return true
	default:
		return false
	}
}

func (frame *Frame) message() Message {
	return Message{Data: frame, Type: "frame"}
}

func (result *QueryResult) message() Message {
	return Message{Data: result, Type: "query"}
}
