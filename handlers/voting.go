// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollroom/engine"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
)

type VotingHandler struct {
	engine *engine.Engine
}

func NewVotingHandler(eng *engine.Engine) *VotingHandler {
	return &VotingHandler{engine: eng}
}

// CastVote handles POST /polls/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Option == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option is required")
		return
	}

	receipt, err := h.engine.CastVote(pollID, req.Option, user.ID)
	if err != nil {
		writeEngineError(w, err, "cast vote")
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "user_id", user.ID, "option", req.Option)

	middleware.JSONResponse(w, http.StatusCreated, receipt)
}

// VoteStatus handles GET /polls/{id}/vote-status
func (h *VotingHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	status, err := h.engine.VoteStatus(pollID, user.ID)
	if err != nil {
		writeEngineError(w, err, "vote status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}
