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

type CommentsHandler struct {
	engine *engine.Engine
}

func NewCommentsHandler(eng *engine.Engine) *CommentsHandler {
	return &CommentsHandler{engine: eng}
}

// AddComment handles POST /polls/{id}/comments
func (h *CommentsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
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

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.engine.AddComment(pollID, user.ID, req.Content)
	if err != nil {
		writeEngineError(w, err, "add comment")
		return
	}

	slog.Info("comment added", "poll_id", pollID, "comment_id", comment.ID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, comment)
}

// ListComments handles GET /polls/{id}/comments
func (h *CommentsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	comments, err := h.engine.ListComments(pollID)
	if err != nil {
		writeEngineError(w, err, "list comments")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}
