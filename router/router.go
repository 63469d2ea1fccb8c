// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pollroom/auth"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/engine"
	"github.com/danielhkuo/pollroom/handlers"
	"github.com/danielhkuo/pollroom/hub"
	"github.com/danielhkuo/pollroom/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize services and handlers
	authSvc := auth.NewService(db, cfg)
	eng := engine.New(db, cfg)
	broadcastHub := hub.New()

	authHandler := handlers.NewAuthHandler(authSvc)
	pollHandler := handlers.NewPollHandler(eng)
	votingHandler := handlers.NewVotingHandler(eng)
	resultsHandler := handlers.NewResultsHandler(eng)
	likesHandler := handlers.NewLikesHandler(eng)
	commentsHandler := handlers.NewCommentsHandler(eng)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))

	// Polls
	mux.HandleFunc("POST /polls", middleware.WithLogging(middleware.WithAuth(authSvc, pollHandler.CreatePoll)))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting and results
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(middleware.WithAuth(authSvc, votingHandler.CastVote)))
	mux.HandleFunc("GET /polls/{id}/vote-status", middleware.WithLogging(middleware.WithAuth(authSvc, votingHandler.VoteStatus)))
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Likes
	mux.HandleFunc("POST /polls/{id}/like", middleware.WithLogging(middleware.WithAuth(authSvc, likesHandler.ToggleLike)))
	mux.HandleFunc("GET /polls/{id}/like-status", middleware.WithLogging(middleware.WithAuth(authSvc, likesHandler.LikeStatus)))
	mux.HandleFunc("GET /polls/{id}/likes", middleware.WithLogging(likesHandler.GetLikers))

	// Comments
	mux.HandleFunc("POST /polls/{id}/comments", middleware.WithLogging(middleware.WithAuth(authSvc, commentsHandler.AddComment)))
	mux.HandleFunc("GET /polls/{id}/comments", middleware.WithLogging(commentsHandler.ListComments))

	// Live broadcast channel
	mux.Handle("GET /ws", broadcastHub.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollroom API v1"))
	})

	return mux
}
