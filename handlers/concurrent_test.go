// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/pollroom/models"
	"github.com/danielhkuo/pollroom/testutil"
)

// TestConcurrentVoting simulates multiple users voting at the same time
// and verifies every vote lands exactly once.
func TestConcurrentVoting(t *testing.T) {
	conn, svc, eng := setupTest(t)
	handler := NewVotingHandler(eng)
	resultsHandler := NewResultsHandler(eng)

	creatorID := testutil.CreateTestUser(t, conn, "creator")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	const numVoters = 10
	tokens := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		_, tokens[i] = registerUser(t, svc, fmt.Sprintf("voter%d", i))
	}

	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(token, option string) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{Option: option}, bearer(token))
			w := serveAuthed(svc, handler.CastVote, req, pollID)
			if w.Code == http.StatusCreated {
				successes.Add(1)
			} else {
				t.Errorf("Vote got status %d: %s", w.Code, w.Body.String())
			}
		}(tokens[i], []string{"Red", "Blue"}[i%2])
	}
	wg.Wait()

	if successes.Load() != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successes.Load())
	}

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/results", nil, nil)
	w := serve(resultsHandler.GetResults, req, pollID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.PollResults
	testutil.AssertJSON(t, w, &results)
	if results.TotalVotes != numVoters {
		t.Errorf("Expected total %d, got %d", numVoters, results.TotalVotes)
	}
}

// TestConcurrentDoubleVote fires simultaneous votes from one user at
// one poll; exactly one must be accepted and the rest must come back
// as conflicts, never as server errors.
func TestConcurrentDoubleVote(t *testing.T) {
	conn, svc, eng := setupTest(t)
	handler := NewVotingHandler(eng)

	creatorID := testutil.CreateTestUser(t, conn, "creator")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	_, token := registerUser(t, svc, "racer")

	const attempts = 10

	var wg sync.WaitGroup
	var created, conflicts atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{Option: "Red"}, bearer(token))
			w := serveAuthed(svc, handler.CastVote, req, pollID)
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", created.Load())
	}
	if conflicts.Load() != attempts-1 {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflicts.Load())
	}
	if n := testutil.CountRows(t, conn, "vote", pollID); n != 1 {
		t.Errorf("Expected 1 vote row, got %d", n)
	}
}

// TestConcurrentLikeToggles checks that the denormalized counter stays
// equal to the like row count under concurrent toggles.
func TestConcurrentLikeToggles(t *testing.T) {
	conn, svc, eng := setupTest(t)
	handler := NewLikesHandler(eng)

	creatorID := testutil.CreateTestUser(t, conn, "creator")
	pollID := testutil.CreateTestPoll(t, conn, creatorID, "Best color?", []string{"Red", "Blue"})

	const numUsers = 8
	tokens := make([]string, numUsers)
	for i := 0; i < numUsers; i++ {
		_, tokens[i] = registerUser(t, svc, fmt.Sprintf("liker%d", i))
	}

	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/polls/"+pollID+"/like", nil, bearer(token))
			w := serveAuthed(svc, handler.ToggleLike, req, pollID)
			if w.Code != http.StatusOK {
				t.Errorf("Toggle got status %d: %s", w.Code, w.Body.String())
			}
		}(token)
	}
	wg.Wait()

	rows := testutil.CountRows(t, conn, "poll_like", pollID)
	counter := testutil.LikeCounter(t, conn, pollID)
	if rows != numUsers || counter != numUsers {
		t.Errorf("After toggles: %d rows, counter %d, want %d", rows, counter, numUsers)
	}
}
