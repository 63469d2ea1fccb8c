// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollroom API server.

Pollroom is a polling service: registered users create polls with a fixed
option set, cast at most one vote per poll, toggle likes, leave comments,
and watch live updates over a websocket broadcast channel.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -token-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - TOKEN_SECRET (-token-secret): Secret for signing access tokens

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)
  - TOKEN_TTL (-token-ttl): Access token lifetime (default: 30m)
  - FREEFORM_VOTES (-freeform-votes): Accept votes outside the declared option set

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, polls, voting, results, likes, comments)
  - engine: Poll state transitions and aggregation against the database
  - hub: Websocket broadcast hub
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer-token auth, JSON helpers
  - models: Request/response types
  - auth: User accounts and access tokens
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
