// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollroom/engine"
	"github.com/danielhkuo/pollroom/middleware"
)

type ResultsHandler struct {
	engine *engine.Engine
}

func NewResultsHandler(eng *engine.Engine) *ResultsHandler {
	return &ResultsHandler{engine: eng}
}

// GetResults handles GET /polls/{id}/results
// Every declared option appears in the results map, zero votes included.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	results, err := h.engine.Results(pollID)
	if err != nil {
		writeEngineError(w, err, "get results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
