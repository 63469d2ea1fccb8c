// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub implements the broadcast fan-out for live clients.

# Connection Lifecycle

Each websocket session registers on accept and deregisters exactly once
when the transport closes or errors, even if Deregister races a
concurrent broadcast iterating the set.

	broadcastHub := hub.New()
	mux.Handle("GET /ws", broadcastHub.Handler())

# Fan-Out Contract

Every inbound text frame from any connection is relayed to every
currently open connection, including the sender, wrapped as:

	{"message": "<text>"}

Messages from a single sender arrive in submission order because each
connection's receive loop broadcasts synchronously; cross-sender order
is unspecified.

The hub is independent of poll state - it is a generic pub/sub
primitive over ephemeral connections.
*/
package hub
