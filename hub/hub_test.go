// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := websocket.JSON.Receive(conn, &msg); err != nil {
		t.Fatalf("receive message: %v", err)
	}
	return msg
}

// waitForConns polls until the hub has registered the expected number
// of connections; the handshake completes before the server goroutine
// registers, so a brief wait is needed.
func waitForConns(t *testing.T, h *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Len() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d connections, have %d", want, h.Len())
}

func TestBroadcastReachesAllClientsIncludingSender(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	const numClients = 5
	clients := make([]*websocket.Conn, numClients)
	for i := range clients {
		clients[i] = dialWS(t, srv)
	}
	waitForConns(t, h, numClients)

	// Client 0 sends; everyone receives, client 0 included
	if err := websocket.Message.Send(clients[0], "hello room"); err != nil {
		t.Fatalf("send: %v", err)
	}

	for i, conn := range clients {
		msg := readMessage(t, conn)
		if msg.Message != "hello room" {
			t.Errorf("client %d got %q, want %q", i, msg.Message, "hello room")
		}
	}
}

func TestBroadcastPreservesSenderOrder(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	sender := dialWS(t, srv)
	receiver := dialWS(t, srv)
	waitForConns(t, h, 2)

	const numMessages = 10
	for i := 0; i < numMessages; i++ {
		if err := websocket.Message.Send(sender, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	for i := 0; i < numMessages; i++ {
		want := fmt.Sprintf("msg-%d", i)
		if msg := readMessage(t, receiver); msg.Message != want {
			t.Fatalf("out of order: got %q, want %q", msg.Message, want)
		}
	}
}

func TestDisconnectRemovesConnection(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	keep := dialWS(t, srv)
	gone := dialWS(t, srv)
	waitForConns(t, h, 2)

	if err := gone.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	waitForConns(t, h, 1)

	// Remaining client still receives broadcasts
	if err := websocket.Message.Send(keep, "still here"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg := readMessage(t, keep); msg.Message != "still here" {
		t.Errorf("got %q, want %q", msg.Message, "still here")
	}
}

func TestDeregisterIsIdempotent(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	dialWS(t, srv)
	dialWS(t, srv)
	waitForConns(t, h, 2)

	var grabbed *Conn
	h.mu.Lock()
	for conn := range h.conns {
		grabbed = conn
		break
	}
	h.mu.Unlock()

	h.Deregister(grabbed)
	h.Deregister(grabbed) // second call must be a no-op

	if got := h.Len(); got != 1 {
		t.Errorf("expected 1 connection after double deregister, got %d", got)
	}
}

func TestConcurrentSendersAllDelivered(t *testing.T) {
	h := New()
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	const numSenders = 4
	senders := make([]*websocket.Conn, numSenders)
	for i := range senders {
		senders[i] = dialWS(t, srv)
	}
	observer := dialWS(t, srv)
	waitForConns(t, h, numSenders+1)

	for i, conn := range senders {
		go func(i int, conn *websocket.Conn) {
			_ = websocket.Message.Send(conn, fmt.Sprintf("from-%d", i))
		}(i, conn)
	}

	// Observer sees one message per sender, in some interleaving
	seen := make(map[string]bool)
	for i := 0; i < numSenders; i++ {
		msg := readMessage(t, observer)
		if seen[msg.Message] {
			t.Errorf("duplicate delivery of %q", msg.Message)
		}
		seen[msg.Message] = true
	}

	for i := 0; i < numSenders; i++ {
		if !seen[fmt.Sprintf("from-%d", i)] {
			t.Errorf("missing message from sender %d", i)
		}
	}
}
