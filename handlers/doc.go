// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollroom API.

# Handler Types

Each handler is a struct with its service dependency:

  - AuthHandler: Registration and login
  - PollHandler: Poll creation and retrieval
  - VotingHandler: Vote casting and vote status
  - ResultsHandler: Vote aggregation
  - LikesHandler: Like toggling, like status, liker listing
  - CommentsHandler: Comment posting and listing

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(eng)
	authHandler := handlers.NewAuthHandler(authSvc)

# Account Flow

	POST /register → Register (username must be unique)
	POST /login    → Login (returns bearer access token)

# Poll Flow

Mutating operations require the Authorization Bearer header
(enforced by middleware.WithAuth):

	POST /polls                   → CreatePoll
	GET  /polls                   → ListPolls
	GET  /polls/{id}              → GetPoll
	POST /polls/{id}/vote         → CastVote (once per user)
	GET  /polls/{id}/results      → GetResults (zero-filled map)
	POST /polls/{id}/like         → ToggleLike
	GET  /polls/{id}/likes        → GetLikers
	GET  /polls/{id}/vote-status  → VoteStatus
	GET  /polls/{id}/like-status  → LikeStatus
	POST /polls/{id}/comments     → AddComment
	GET  /polls/{id}/comments     → ListComments

# Error Contract

Errors always surface as HTTP faults with a JSON error body, mapped
from engine sentinels in errors.go: 404 for missing polls, 409 for
duplicate votes, 400 for out-of-domain options, 500 for store failures.
*/
package handlers
