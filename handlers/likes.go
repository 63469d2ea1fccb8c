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

type LikesHandler struct {
	engine *engine.Engine
}

func NewLikesHandler(eng *engine.Engine) *LikesHandler {
	return &LikesHandler{engine: eng}
}

// ToggleLike handles POST /polls/{id}/like
func (h *LikesHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
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

	liked, err := h.engine.ToggleLike(pollID, user.ID)
	if err != nil {
		writeEngineError(w, err, "toggle like")
		return
	}

	slog.Info("like toggled", "poll_id", pollID, "user_id", user.ID, "liked", liked)

	message := "Poll unliked"
	if liked {
		message = "Poll liked"
	}

	middleware.JSONResponse(w, http.StatusOK, models.LikeReceipt{
		Message: message,
		Liked:   liked,
	})
}

// LikeStatus handles GET /polls/{id}/like-status
func (h *LikesHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
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

	status, err := h.engine.LikeStatus(pollID, user.ID)
	if err != nil {
		writeEngineError(w, err, "like status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// GetLikers handles GET /polls/{id}/likes
func (h *LikesHandler) GetLikers(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	likers, err := h.engine.Likers(pollID)
	if err != nil {
		writeEngineError(w, err, "get likers")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, likers)
}
