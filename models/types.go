package models

import "time"

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type VoteRequest struct {
	Option string `json:"option"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// Response types

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type VoteReceipt struct {
	Message string `json:"message"`
	PollID  string `json:"poll_id"`
	Option  string `json:"option"`
}

type LikeReceipt struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

type VoteStatus struct {
	HasVoted       bool    `json:"has_voted"`
	SelectedOption *string `json:"selected_option"`
}

type LikeStatus struct {
	HasLiked bool `json:"has_liked"`
}

type Liker struct {
	Username string `json:"username"`
}

// Domain types

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose in JSON
}

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	Likes     int       `json:"likes"`
	Username  string    `json:"username"` // creator display name, "Unknown" if unresolved
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PollResults aggregates votes per declared option. The Results key set
// always equals the poll's declared option set; TotalVotes counts every
// vote row, so it can exceed the sum of the map when freeform votes are
// enabled.
type PollResults struct {
	PollID     string         `json:"poll_id"`
	Question   string         `json:"question"`
	Results    map[string]int `json:"results"`
	TotalVotes int            `json:"total_votes"`
	Likes      int            `json:"likes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
