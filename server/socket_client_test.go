// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/gorilla/websocket"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSocketClient_UnregisteredRead(t *testing.T) {
	h := testHub(HubOptions{})

	clients := make(chan *SocketClient, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		client := NewSocketClient(conn)
		client.Hub = h
		client.Init()
		clients <- client
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	client := <-clients

	// As the hub does on unregister, while the read pump is still running
	client.Data().Hub = nil

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"x":1,"y":2,"width":3,"height":4,"mode":"broad"}`)); err != nil {
		t.Fatal(err)
	}

	select {
	case in := <-h.inbound:
		if in.Client != Client(client) || in.Query.Mode != QueryModeBroad || in.Query.Width != 3 {
			t.Errorf("unexpected inbound %#v", in)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected query to reach hub")
	}

	// Closing the peer destroys the client, which unregisters from its hub
	_ = conn.Close()
	select {
	case unregistered := <-h.unregister:
		if unregistered != Client(client) {
			t.Errorf("expected client to unregister")
		}
		unregistered.Close()
	case <-time.After(5 * time.Second):
		t.Fatal("expected client to unregister")
	}
}
