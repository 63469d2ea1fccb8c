// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/db"
	"github.com/danielhkuo/pollroom/models"
)

// Service is the identity provider: it owns user records, credential
// verification and access token issuance. Everything else in the
// application only ever sees a verified models.User.
type Service struct {
	db     *sql.DB
	secret []byte
	ttl    time.Duration
}

func NewService(conn *sql.DB, cfg cliparse.Config) *Service {
	return &Service{
		db:     conn,
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Register creates a new user with a bcrypt-hashed credential.
// The users.username UNIQUE constraint is the authoritative duplicate
// guard; a violation surfaces as ErrUsernameTaken.
func (s *Service) Register(username, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := GenerateID(16)
	if err != nil {
		return models.User{}, err
	}

	_, err = s.db.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, username, string(hash), time.Now())

	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return models.User{ID: id, Username: username}, nil
}

// Authenticate verifies a username/password pair and returns the user.
// Lookup misses and hash mismatches both report ErrInvalidCredentials
// so callers cannot distinguish which half failed.
func (s *Service) Authenticate(username, password string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT id, username, password_hash FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash)

	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// IssueToken signs a short-lived HS256 access token for the user.
func (s *Service) IssueToken(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and resolves it to a live user record.
// Any parse, signature, expiry or lookup failure reports ErrInvalidToken.
func (s *Service) VerifyToken(tokenString string) (models.User, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return models.User{}, ErrInvalidToken
	}

	var user models.User
	err = s.db.QueryRow(`
		SELECT id, username FROM users WHERE username = $1
	`, claims.Subject).Scan(&user.ID, &user.Username)

	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}
