// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest / LoginRequest: username, password
  - CreatePollRequest: question, options
  - VoteRequest: option
  - CommentRequest: content

# Response Types

Types for JSON responses:

  - LoginResponse: user, access_token, token_type
  - VoteReceipt: message, poll_id, option
  - LikeReceipt: message, liked
  - VoteStatus: has_voted, selected_option
  - LikeStatus: has_liked
  - Liker: username
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account identity (password hash never serialized)
  - Poll: question, ordered option labels, like counter, creator name
  - Comment: poll comment with resolved author name
  - PollResults: zero-filled per-option counts plus totals
*/
package models
