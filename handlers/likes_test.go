// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/pollroom/models"
	"github.com/danielhkuo/pollroom/testutil"
)

func TestToggleLikeEndpoint(t *testing.T) {
	conn, svc, eng := setupTest(t)
	handler := NewLikesHandler(eng)
	_, token := registerUser(t, svc, "bob")

	creatorID := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/like", nil, bearer(token))
	w := serveAuthed(svc, handler.ToggleLike, req, pollID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var receipt models.LikeReceipt
	testutil.AssertJSON(t, w, &receipt)
	if !receipt.Liked || receipt.Message != "Poll liked" {
		t.Errorf("Unexpected first toggle: %+v", receipt)
	}

	req = testutil.MakeRequest("POST", "/polls/"+pollID+"/like", nil, bearer(token))
	w = serveAuthed(svc, handler.ToggleLike, req, pollID)
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &receipt)
	if receipt.Liked || receipt.Message != "Poll unliked" {
		t.Errorf("Unexpected second toggle: %+v", receipt)
	}
}

func TestToggleLikeNotFoundEndpoint(t *testing.T) {
	_, svc, eng := setupTest(t)
	handler := NewLikesHandler(eng)
	_, token := registerUser(t, svc, "bob")

	req := testutil.MakeRequest("POST", "/polls/nonexistent/like", nil, bearer(token))
	w := serveAuthed(svc, handler.ToggleLike, req, "nonexistent")

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestLikeStatusEndpoint(t *testing.T) {
	conn, svc, eng := setupTest(t)
	handler := NewLikesHandler(eng)
	user, token := registerUser(t, svc, "bob")

	creatorID := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/like-status", nil, bearer(token))
	w := serveAuthed(svc, handler.LikeStatus, req, pollID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var status models.LikeStatus
	testutil.AssertJSON(t, w, &status)
	if status.HasLiked {
		t.Error("Expected not liked")
	}

	testutil.AddTestLike(t, conn, pollID, user.ID)

	req = testutil.MakeRequest("GET", "/polls/"+pollID+"/like-status", nil, bearer(token))
	w = serveAuthed(svc, handler.LikeStatus, req, pollID)
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &status)
	if !status.HasLiked {
		t.Error("Expected liked after insert")
	}
}

func TestGetLikersEndpoint(t *testing.T) {
	conn, _, eng := setupTest(t)
	handler := NewLikesHandler(eng)

	creatorID := testutil.CreateTestUser(t, conn, "alice")
	bobID := testutil.CreateTestUser(t, conn, "bob")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	testutil.AddTestLike(t, conn, pollID, bobID)

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/likes", nil, nil)
	w := serve(handler.GetLikers, req, pollID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var likers []models.Liker
	testutil.AssertJSON(t, w, &likers)
	if len(likers) != 1 || likers[0].Username != "bob" {
		t.Errorf("Unexpected likers: %+v", likers)
	}
}
