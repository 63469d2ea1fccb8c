// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/pollroom/models"
	"github.com/danielhkuo/pollroom/testutil"
)

func TestCreatePollEndpoint(t *testing.T) {
	_, svc, eng := setupTest(t)
	handler := NewPollHandler(eng)
	_, token := registerUser(t, svc, "alice")

	req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Question: "Best color?",
		Options:  []string{"Red", "Blue", "Green"},
	}, bearer(token))
	w := serveAuthed(svc, handler.CreatePoll, req, "")

	testutil.AssertStatus(t, w, http.StatusCreated)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if poll.Question != "Best color?" || len(poll.Options) != 3 {
		t.Errorf("Unexpected poll: %+v", poll)
	}
	if poll.Username != "alice" {
		t.Errorf("Expected creator 'alice', got %q", poll.Username)
	}
}

func TestCreatePollRequiresAuth(t *testing.T) {
	_, svc, eng := setupTest(t)
	handler := NewPollHandler(eng)

	body := models.CreatePollRequest{Question: "Best color?", Options: []string{"Red"}}

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no token", nil},
		{"garbage token", bearer("not-a-token")},
		{"wrong scheme", map[string]string{"Authorization": "Basic abc123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls", body, tt.headers)
			w := serveAuthed(svc, handler.CreatePoll, req, "")
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestCreatePollValidation(t *testing.T) {
	_, svc, eng := setupTest(t)
	handler := NewPollHandler(eng)
	_, token := registerUser(t, svc, "alice")

	tests := []struct {
		name string
		body models.CreatePollRequest
	}{
		{"missing question", models.CreatePollRequest{Options: []string{"Red"}}},
		{"no options", models.CreatePollRequest{Question: "Best color?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls", tt.body, bearer(token))
			w := serveAuthed(svc, handler.CreatePoll, req, "")
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestListPollsEndpoint(t *testing.T) {
	conn, _, eng := setupTest(t)
	handler := NewPollHandler(eng)

	creatorID := testutil.CreateTestUser(t, conn, "alice")
	testutil.CreateTestPoll(t, conn, creatorID, "First?", []string{"A", "B"})
	testutil.CreateTestPoll(t, conn, creatorID, "Second?", []string{"C", "D"})

	req := testutil.MakeRequest("GET", "/polls", nil, nil)
	w := serve(handler.ListPolls, req, "")

	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.Poll
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 2 {
		t.Errorf("Expected 2 polls, got %d", len(polls))
	}
}

func TestGetPollEndpoint(t *testing.T) {
	conn, _, eng := setupTest(t)
	handler := NewPollHandler(eng)

	creatorID := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	req := testutil.MakeRequest("GET", "/polls/"+pollID, nil, nil)
	w := serve(handler.GetPoll, req, pollID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if poll.ID != pollID {
		t.Errorf("Expected poll %q, got %q", pollID, poll.ID)
	}
}

func TestGetPollNotFoundEndpoint(t *testing.T) {
	_, _, eng := setupTest(t)
	handler := NewPollHandler(eng)

	req := testutil.MakeRequest("GET", "/polls/nonexistent", nil, nil)
	w := serve(handler.GetPoll, req, "nonexistent")

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Poll not found" {
		t.Errorf("Unexpected error message: %q", resp.Message)
	}
}
