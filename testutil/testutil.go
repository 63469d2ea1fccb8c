// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollroom/auth"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. The pool is capped at one connection: a second connection
// would see its own empty :memory: database, and the cap also
// serializes concurrent test transactions the way a single SQLite
// writer would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
		TokenTTL:     30 * time.Minute,
	}
}

// CreateTestUser inserts a user directly and returns its ID.
// The password hash is a throwaway since engine tests never log in.
func CreateTestUser(t *testing.T, conn *sql.DB, username string) string {
	t.Helper()

	userID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, 'x', $3)
	`, userID, username, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestPoll inserts a poll with the given options and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, creatorID, question string, options []string) string {
	t.Helper()

	pollID, _ := auth.GenerateID(16)
	optionsJSON, _ := json.Marshal(options)
	_, err := conn.Exec(`
		INSERT INTO poll (id, question, options, creator_id, likes, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`, pollID, question, string(optionsJSON), creatorID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// CastTestVote inserts a vote row directly
func CastTestVote(t *testing.T, conn *sql.DB, pollID, userID, option string) {
	t.Helper()

	voteID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, user_id, option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, pollID, userID, option, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// AddTestLike inserts a like row and bumps the poll counter
func AddTestLike(t *testing.T, conn *sql.DB, pollID, userID string) {
	t.Helper()

	likeID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO poll_like (id, poll_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, likeID, pollID, userID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test like: %v", err)
	}

	if _, err := conn.Exec(`UPDATE poll SET likes = likes + 1 WHERE id = $1`, pollID); err != nil {
		t.Fatalf("Failed to bump like counter: %v", err)
	}
}

// CountRows returns the number of rows in table matching the poll ID
func CountRows(t *testing.T, conn *sql.DB, table, pollID string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE poll_id = $1`, pollID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return count
}

// LikeCounter reads the denormalized likes counter for a poll
func LikeCounter(t *testing.T, conn *sql.DB, pollID string) int {
	t.Helper()

	var likes int
	err := conn.QueryRow(`SELECT likes FROM poll WHERE id = $1`, pollID).Scan(&likes)
	if err != nil {
		t.Fatalf("Failed to read like counter: %v", err)
	}
	return likes
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
