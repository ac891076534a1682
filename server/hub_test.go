// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/quadtree/server/cloud/fs"
	"github.com/SoftbearStudios/quadtree/server/world"
	"os"
	"path/filepath"
	"testing"
)

type testClient struct {
	ClientData
	messages [][]byte
}

func (client *testClient) Init() {}
func (client *testClient) Close() {}
func (client *testClient) Destroy() {}
func (client *testClient) Data() *ClientData { return &client.ClientData }
func (client *testClient) Send(buf []byte) { client.messages = append(client.messages, buf) }

type testMessage struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

func decodeMessages(t *testing.T, client *testClient) []testMessage {
	messages := make([]testMessage, len(client.messages))
	for i, buf := range client.messages {
		if err := json.Unmarshal(buf, &messages[i]); err != nil {
			t.Fatalf("unmarshal error: %s", err)
		}
	}
	return messages
}

func testHub(options HubOptions) *Hub {
	if options.Bodies == 0 {
		options.Bodies = 100
	}
	options.Bounds = world.AABBFrom(0, 0, 256, 256)
	options.MaxDepth = -1
	h := NewHub(options)
	h.updateTicker.Stop()
	h.statusTicker.Stop()
	h.debugTicker.Stop()
	h.snapshotTicker.Stop()
	return h
}

func TestHub_Update(t *testing.T) {
	h := testHub(HubOptions{})

	viewer := &testClient{}
	querier := &testClient{}
	for _, client := range []*testClient{viewer, querier} {
		h.clients.Add(client)
		client.Hub = h
	}

	h.Inbound(querier, Query{AABB: world.AABBFrom(0, 0, 128, 128), Mode: QueryModeBroad})
	h.Update(1.0 / 30)

	viewed := decodeMessages(t, viewer)
	if len(viewed) != 1 || viewed[0].Type != "frame" {
		t.Fatalf("expected one frame, got %v", viewed)
	}
	if bodies := viewed[0].Data["bodies"].([]interface{}); len(bodies) != 100 {
		t.Errorf("expected 100 bodies, got %d", len(bodies))
	}
	if nodes := viewed[0].Data["nodes"].([]interface{}); len(nodes) != h.simulation.Stats.Nodes {
		t.Errorf("expected %d nodes, got %d", h.simulation.Stats.Nodes, len(nodes))
	}

	queried := decodeMessages(t, querier)
	if len(queried) != 2 || queried[1].Type != "query" {
		t.Fatalf("expected frame and query, got %v", queried)
	}
	if mode := queried[1].Data["mode"]; mode != string(QueryModeBroad) {
		t.Errorf("expected broad mode, got %v", mode)
	}
	if _, ok := queried[1].Data["results"].([]interface{}); !ok {
		t.Errorf("expected results array, got %v", queried[1].Data["results"])
	}

	// Stop querying
	h.Inbound(querier, Query{})
	if querier.Query != nil {
		t.Errorf("expected query to be cleared")
	}

	// Invalid modes are ignored
	h.Inbound(viewer, Query{Mode: "nearest"})
	if viewer.Query != nil {
		t.Errorf("expected invalid query to be ignored")
	}
}

func TestHub_Status(t *testing.T) {
	h := testHub(HubOptions{Bodies: 50})
	h.Update(1.0 / 30)
	h.Status()

	var status Status
	if err := json.Unmarshal(h.statusJSON.Load().([]byte), &status); err != nil {
		t.Fatal(err)
	}
	if status.Bodies != 50 || status.Tick != 1 || status.MaxDepth != 5 {
		t.Errorf("unexpected status %#v", status)
	}
	if status.Stats.Nodes < 1 {
		t.Errorf("expected at least one node, got %d", status.Stats.Nodes)
	}
}

func TestHub_Snapshot(t *testing.T) {
	// Offline is a no-op
	if err := testHub(HubOptions{}).Snapshot(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	h := testHub(HubOptions{Filesystem: fs.Directory(dir), SnapshotScale: 0.5})
	if err := h.Snapshot(); err != nil {
		t.Fatal(err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "snapshots", "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(matches))
	}
	if info, err := os.Stat(matches[0]); err != nil || info.Size() == 0 {
		t.Errorf("expected non empty snapshot")
	}
}

func TestClientList(t *testing.T) {
	var list ClientList
	a, b, c := &testClient{}, &testClient{}, &testClient{}
	list.Add(a)
	list.Add(b)
	list.Add(c)

	list.Remove(b)
	if list.Len != 2 || list.First != a || list.Last != c || a.Next != c || c.Previous != a {
		t.Errorf("expected a <-> c after removing b")
	}

	for client := list.First; client != nil; client = list.Remove(client) {
	}
	if list.Len != 0 || list.First != nil || list.Last != nil {
		t.Errorf("expected empty list")
	}
}
