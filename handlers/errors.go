// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollroom/engine"
	"github.com/danielhkuo/pollroom/middleware"
)

// writeEngineError maps engine sentinels to transport status codes.
// Expected outcomes stay distinguishable from store failures so clients
// can decide whether a retry makes sense.
func writeEngineError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, engine.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, engine.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "User already voted on this poll")
	case errors.Is(err, engine.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Option is not one of the poll's choices")
	default:
		slog.Error("engine operation failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
