// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the poll state-consistency engine.

# Operations

Engine exposes the poll operations the routing layer serves:

	eng := engine.New(db, cfg)

	poll, err := eng.CreatePoll(question, options, creatorID)
	polls, err := eng.ListPolls()
	poll, err = eng.GetPoll(pollID)
	receipt, err := eng.CastVote(pollID, option, userID)
	results, err := eng.Results(pollID)
	liked, err := eng.ToggleLike(pollID, userID)
	status, err := eng.VoteStatus(pollID, userID)
	status, err := eng.LikeStatus(pollID, userID)
	likers, err := eng.Likers(pollID)
	comment, err := eng.AddComment(pollID, userID, content)
	comments, err := eng.ListComments(pollID)

# Error Contract

Expected outcomes are tagged sentinel errors, never panics:

  - ErrPollNotFound: any operation addressing a nonexistent poll
  - ErrAlreadyVoted: second vote by the same user on the same poll
  - ErrInvalidOption: vote option outside the declared set
    (disabled by the FreeformVotes config toggle)

Anything else is a store failure for that single request.

# Consistency Rules

  - One vote per (poll, user): the store UNIQUE constraint is the
    authoritative guard; the in-transaction existence check is only an
    optimization against the check-then-act race.
  - Like toggling: the poll_like row and the poll.likes counter mutate
    in one transaction, so counter == row count after every operation.
    Concurrent toggles by the same user resolve deterministically via
    the UNIQUE constraint (insert side) and RowsAffected (delete side).
  - Results zero-fill from the poll's declared options, deserialized
    from the stored JSON list in original order.
  - Creator and author display names resolve through a LEFT JOIN with
    an "Unknown" fallback for dangling references.
*/
package engine
