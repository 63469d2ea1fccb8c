// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollroom API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /register - Create account
	POST /login    - Exchange credentials for a bearer token

Polls (mutations require Authorization: Bearer):

	POST /polls       - Create poll
	GET  /polls       - List polls
	GET  /polls/{id}  - Poll details

Voting, results, likes, comments:

	POST /polls/{id}/vote         - Cast vote (auth)
	GET  /polls/{id}/vote-status  - Caller's vote (auth)
	GET  /polls/{id}/results      - Aggregated results
	POST /polls/{id}/like         - Toggle like (auth)
	GET  /polls/{id}/like-status  - Caller's like state (auth)
	GET  /polls/{id}/likes        - Liker display names
	POST /polls/{id}/comments     - Add comment (auth)
	GET  /polls/{id}/comments     - List comments, newest first

Live channel:

	GET /ws - WebSocket; text frames fan out to all connected clients

# Handler Initialization

The router wires the identity provider, poll engine and broadcast hub,
then injects them into the handlers:

	authSvc := auth.NewService(db, cfg)
	eng := engine.New(db, cfg)
	broadcastHub := hub.New()
*/
package router
