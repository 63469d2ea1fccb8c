// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/pollroom/auth"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/db"
	"github.com/danielhkuo/pollroom/models"
)

// Tagged errors returned by Engine operations. Expected outcomes
// (lookup misses, duplicate votes, out-of-domain options) are sentinels
// the caller can branch on; anything else is a store failure for that
// single request.
var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrAlreadyVoted  = errors.New("user already voted on this poll")
	ErrInvalidOption = errors.New("option is not one of the poll's choices")
)

// unknownUser is the display name substituted when a creator or author
// reference cannot be resolved.
const unknownUser = "Unknown"

// Engine implements the poll operations against the store. Every
// mutating operation runs in a transaction scoped to that single
// operation; per-(poll,user) uniqueness is enforced by the store's
// UNIQUE constraints, with existence checks only as an optimization.
type Engine struct {
	db            *sql.DB
	freeformVotes bool
}

func New(conn *sql.DB, cfg cliparse.Config) *Engine {
	return &Engine{db: conn, freeformVotes: cfg.FreeformVotes}
}

// CreatePoll persists a new poll with a zero like counter and the given
// option labels in their original order.
func (e *Engine) CreatePoll(question string, options []string, creatorID string) (models.Poll, error) {
	pollID, err := auth.GenerateID(16)
	if err != nil {
		return models.Poll{}, err
	}

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to serialize options: %w", err)
	}

	_, err = e.db.Exec(`
		INSERT INTO poll (id, question, options, creator_id, likes, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`, pollID, question, string(optionsJSON), creatorID, time.Now())

	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	return e.GetPoll(pollID)
}

// ListPolls returns all polls in creation order with resolved creator names.
func (e *Engine) ListPolls() ([]models.Poll, error) {
	rows, err := e.db.Query(`
		SELECT p.id, p.question, p.options, p.likes, p.created_at,
		       COALESCE(u.username, '` + unknownUser + `')
		FROM poll p
		LEFT JOIN users u ON p.creator_id = u.id
		ORDER BY p.created_at, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}

	return polls, rows.Err()
}

// GetPoll returns a single poll or ErrPollNotFound.
func (e *Engine) GetPoll(pollID string) (models.Poll, error) {
	row := e.db.QueryRow(`
		SELECT p.id, p.question, p.options, p.likes, p.created_at,
		       COALESCE(u.username, '`+unknownUser+`')
		FROM poll p
		LEFT JOIN users u ON p.creator_id = u.id
		WHERE p.id = $1
	`, pollID)

	poll, err := scanPoll(row)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// CastVote records the voter's one-time choice on a poll.
// Returns ErrPollNotFound, ErrInvalidOption (unless freeform votes are
// enabled), or ErrAlreadyVoted; the vote.(poll_id, user_id) UNIQUE
// constraint rejects concurrent duplicates the pre-check misses.
func (e *Engine) CastVote(pollID, option, userID string) (models.VoteReceipt, error) {
	tx, err := e.db.Begin()
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var optionsJSON string
	err = tx.QueryRow(`SELECT options FROM poll WHERE id = $1`, pollID).Scan(&optionsJSON)
	if err == sql.ErrNoRows {
		return models.VoteReceipt{}, ErrPollNotFound
	}
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to query poll: %w", err)
	}

	if !e.freeformVotes {
		var declared []string
		if err := json.Unmarshal([]byte(optionsJSON), &declared); err != nil {
			return models.VoteReceipt{}, fmt.Errorf("failed to parse poll options: %w", err)
		}
		if !contains(declared, option) {
			return models.VoteReceipt{}, ErrInvalidOption
		}
	}

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE poll_id = $1 AND user_id = $2)
	`, pollID, userID).Scan(&exists)
	if err != nil {
		return models.VoteReceipt{}, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if exists {
		return models.VoteReceipt{}, ErrAlreadyVoted
	}

	voteID, err := auth.GenerateID(16)
	if err != nil {
		return models.VoteReceipt{}, err
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, poll_id, user_id, option, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, pollID, userID, option, time.Now())

	if err != nil {
		// Two requests for the same (poll, user) can both pass the
		// existence check; the constraint is the real arbiter.
		if db.IsUniqueViolation(err) {
			return models.VoteReceipt{}, ErrAlreadyVoted
		}
		return models.VoteReceipt{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return models.VoteReceipt{}, ErrAlreadyVoted
		}
		return models.VoteReceipt{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return models.VoteReceipt{
		Message: "Vote recorded successfully",
		PollID:  pollID,
		Option:  option,
	}, nil
}

// Results aggregates votes per declared option. Options nobody chose
// appear with count 0; the key set always equals the declared set.
// TotalVotes counts every vote row, so freeform votes inflate the total
// without appearing in the map.
func (e *Engine) Results(pollID string) (models.PollResults, error) {
	var question, optionsJSON string
	var likes int
	err := e.db.QueryRow(`
		SELECT question, options, likes FROM poll WHERE id = $1
	`, pollID).Scan(&question, &optionsJSON, &likes)

	if err == sql.ErrNoRows {
		return models.PollResults{}, ErrPollNotFound
	}
	if err != nil {
		return models.PollResults{}, fmt.Errorf("failed to query poll: %w", err)
	}

	var declared []string
	if err := json.Unmarshal([]byte(optionsJSON), &declared); err != nil {
		return models.PollResults{}, fmt.Errorf("failed to parse poll options: %w", err)
	}

	results := make(map[string]int, len(declared))
	for _, opt := range declared {
		results[opt] = 0
	}

	rows, err := e.db.Query(`
		SELECT option, COUNT(*) FROM vote WHERE poll_id = $1 GROUP BY option
	`, pollID)
	if err != nil {
		return models.PollResults{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var option string
		var count int
		if err := rows.Scan(&option, &count); err != nil {
			return models.PollResults{}, fmt.Errorf("failed to scan vote count: %w", err)
		}
		if _, declared := results[option]; declared {
			results[option] = count
		}
		total += count
	}
	if err := rows.Err(); err != nil {
		return models.PollResults{}, fmt.Errorf("failed to iterate vote counts: %w", err)
	}

	return models.PollResults{
		PollID:     pollID,
		Question:   question,
		Results:    results,
		TotalVotes: total,
		Likes:      likes,
	}, nil
}

// ToggleLike flips the user's like on a poll and returns the new state.
// Row mutation and counter update commit as one transaction, so the
// poll.likes counter always equals the number of poll_like rows. A
// concurrent toggle that wins the race resolves idempotently to the
// state that toggle produced.
func (e *Engine) ToggleLike(pollID, userID string) (bool, error) {
	tx, err := e.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pollFound bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&pollFound)
	if err != nil {
		return false, fmt.Errorf("failed to query poll: %w", err)
	}
	if !pollFound {
		return false, ErrPollNotFound
	}

	var likeID string
	err = tx.QueryRow(`
		SELECT id FROM poll_like WHERE poll_id = $1 AND user_id = $2
	`, pollID, userID).Scan(&likeID)

	switch {
	case err == sql.ErrNoRows:
		return e.insertLike(tx, pollID, userID)
	case err != nil:
		return false, fmt.Errorf("failed to check existing like: %w", err)
	default:
		return e.removeLike(tx, pollID, likeID)
	}
}

func (e *Engine) insertLike(tx *sql.Tx, pollID, userID string) (bool, error) {
	likeID, err := auth.GenerateID(16)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(`
		INSERT INTO poll_like (id, poll_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, likeID, pollID, userID, time.Now())

	if err != nil {
		// A concurrent toggle by the same user already inserted the
		// row (and bumped the counter); the poll is liked either way.
		if db.IsUniqueViolation(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to insert like: %w", err)
	}

	if _, err := tx.Exec(`UPDATE poll SET likes = likes + 1 WHERE id = $1`, pollID); err != nil {
		return false, fmt.Errorf("failed to increment like counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to commit like: %w", err)
	}

	return true, nil
}

func (e *Engine) removeLike(tx *sql.Tx, pollID, likeID string) (bool, error) {
	res, err := tx.Exec(`DELETE FROM poll_like WHERE id = $1`, likeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	if deleted == 0 {
		// A concurrent toggle removed it first; the counter was
		// already decremented by that transaction.
		return false, nil
	}

	// The likes > 0 guard keeps the counter non-negative even if it
	// ever drifts; a skipped decrement here is a bug signal, not a
	// reason to fail the request.
	res, err = tx.Exec(`UPDATE poll SET likes = likes - 1 WHERE id = $1 AND likes > 0`, pollID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement like counter: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.Error("like counter already zero while removing like row", "poll_id", pollID)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit unlike: %w", err)
	}

	return false, nil
}

// VoteStatus reports whether the user has voted and which option they chose.
func (e *Engine) VoteStatus(pollID, userID string) (models.VoteStatus, error) {
	if err := e.requirePoll(pollID); err != nil {
		return models.VoteStatus{}, err
	}

	var option string
	err := e.db.QueryRow(`
		SELECT option FROM vote WHERE poll_id = $1 AND user_id = $2
	`, pollID, userID).Scan(&option)

	if err == sql.ErrNoRows {
		return models.VoteStatus{HasVoted: false, SelectedOption: nil}, nil
	}
	if err != nil {
		return models.VoteStatus{}, fmt.Errorf("failed to query vote: %w", err)
	}

	return models.VoteStatus{HasVoted: true, SelectedOption: &option}, nil
}

// LikeStatus reports whether the user currently likes the poll.
// Row presence is the liked state.
func (e *Engine) LikeStatus(pollID, userID string) (models.LikeStatus, error) {
	if err := e.requirePoll(pollID); err != nil {
		return models.LikeStatus{}, err
	}

	var liked bool
	err := e.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll_like WHERE poll_id = $1 AND user_id = $2)
	`, pollID, userID).Scan(&liked)
	if err != nil {
		return models.LikeStatus{}, fmt.Errorf("failed to query like: %w", err)
	}

	return models.LikeStatus{HasLiked: liked}, nil
}

// Likers returns the display names of users who like the poll, in like order.
func (e *Engine) Likers(pollID string) ([]models.Liker, error) {
	if err := e.requirePoll(pollID); err != nil {
		return nil, err
	}

	rows, err := e.db.Query(`
		SELECT COALESCE(u.username, '`+unknownUser+`')
		FROM poll_like l
		LEFT JOIN users u ON l.user_id = u.id
		WHERE l.poll_id = $1
		ORDER BY l.created_at, l.id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query likers: %w", err)
	}
	defer rows.Close()

	likers := []models.Liker{}
	for rows.Next() {
		var liker models.Liker
		if err := rows.Scan(&liker.Username); err != nil {
			return nil, fmt.Errorf("failed to scan liker: %w", err)
		}
		likers = append(likers, liker)
	}

	return likers, rows.Err()
}

// AddComment appends a comment to a poll and returns it with the
// author's resolved display name.
func (e *Engine) AddComment(pollID, userID, content string) (models.Comment, error) {
	if err := e.requirePoll(pollID); err != nil {
		return models.Comment{}, err
	}

	commentID, err := auth.GenerateID(16)
	if err != nil {
		return models.Comment{}, err
	}

	createdAt := time.Now()
	_, err = e.db.Exec(`
		INSERT INTO comment (id, poll_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, commentID, pollID, userID, content, createdAt)

	if err != nil {
		return models.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}

	username := unknownUser
	err = e.db.QueryRow(`SELECT username FROM users WHERE id = $1`, userID).Scan(&username)
	if err != nil && err != sql.ErrNoRows {
		return models.Comment{}, fmt.Errorf("failed to resolve author: %w", err)
	}

	return models.Comment{
		ID:        commentID,
		PollID:    pollID,
		UserID:    userID,
		Username:  username,
		Content:   content,
		CreatedAt: createdAt,
	}, nil
}

// ListComments returns a poll's comments, most recent first.
func (e *Engine) ListComments(pollID string) ([]models.Comment, error) {
	if err := e.requirePoll(pollID); err != nil {
		return nil, err
	}

	rows, err := e.db.Query(`
		SELECT c.id, c.poll_id, c.user_id, c.content, c.created_at,
		       COALESCE(u.username, '`+unknownUser+`')
		FROM comment c
		LEFT JOIN users u ON c.user_id = u.id
		WHERE c.poll_id = $1
		ORDER BY c.created_at DESC
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PollID, &c.UserID, &c.Content, &c.CreatedAt, &c.Username); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (e *Engine) requirePoll(pollID string) error {
	var found bool
	err := e.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&found)
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if !found {
		return ErrPollNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPoll(row rowScanner) (models.Poll, error) {
	var poll models.Poll
	var optionsJSON string
	if err := row.Scan(&poll.ID, &poll.Question, &optionsJSON, &poll.Likes, &poll.CreatedAt, &poll.Username); err != nil {
		if err == sql.ErrNoRows {
			return models.Poll{}, err
		}
		return models.Poll{}, fmt.Errorf("failed to scan poll: %w", err)
	}
	if err := json.Unmarshal([]byte(optionsJSON), &poll.Options); err != nil {
		return models.Poll{}, fmt.Errorf("failed to parse poll options: %w", err)
	}
	return poll, nil
}

func contains(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}
