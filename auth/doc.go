// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth is the identity provider: user registration, credential
verification, and access token issuance.

# Service

Service wraps the user table and token secret:

	svc := auth.NewService(db, cfg)

	user, err := svc.Register("alice", "hunter2")
	user, err = svc.Authenticate("alice", "hunter2")
	token, err := svc.IssueToken(user)
	user, err = svc.VerifyToken(token)

Passwords are stored as bcrypt hashes. Duplicate usernames surface as
ErrUsernameTaken, backed by the users.username UNIQUE constraint.

# Tokens

Access tokens are HS256 JWTs (golang-jwt/v5) with the username as
subject and a configurable TTL. VerifyToken resolves the subject back
to a live user row, so deleted users fail verification even with a
valid signature.

# Error Taxonomy

  - ErrUsernameTaken: registration conflict
  - ErrInvalidCredentials: unknown user or wrong password (indistinguishable)
  - ErrInvalidToken: malformed, expired, bad signature, or orphaned subject

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
