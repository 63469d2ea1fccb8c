// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollroom/auth"
	"github.com/danielhkuo/pollroom/engine"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
	"github.com/danielhkuo/pollroom/testutil"
)

func setupTest(t *testing.T) (*sql.DB, *auth.Service, *engine.Engine) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return conn, auth.NewService(conn, cfg), engine.New(conn, cfg)
}

// registerUser creates an account through the auth service and returns
// the user along with a bearer token for it.
func registerUser(t *testing.T, svc *auth.Service, username string) (models.User, string) {
	t.Helper()

	user, err := svc.Register(username, "password123")
	if err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("Failed to issue token for %s: %v", username, err)
	}
	return user, token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// serveAuthed runs a handler behind WithAuth the way the router wires it,
// with {id} resolved to pollID when non-empty.
func serveAuthed(svc *auth.Service, handler http.HandlerFunc, req *http.Request, pollID string) *httptest.ResponseRecorder {
	if pollID != "" {
		req.SetPathValue("id", pollID)
	}
	w := httptest.NewRecorder()
	middleware.WithAuth(svc, handler)(w, req)
	return w
}

func serve(handler http.HandlerFunc, req *http.Request, pollID string) *httptest.ResponseRecorder {
	if pollID != "" {
		req.SetPathValue("id", pollID)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}
