// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and constraint signaling.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - users: Registered accounts (unique username)
  - poll: Question, serialized option list, denormalized like counter
  - vote: One vote per (poll, user), UNIQUE enforced
  - poll_like: One like row per (poll, user), UNIQUE enforced
  - comment: Append-only poll comments

# Relationships

	users 1──* poll (creator_id)
	poll  1──* vote
	poll  1──* poll_like
	poll  1──* comment

Poll-scoped foreign keys use ON DELETE CASCADE.

# Constraint Violations

IsUniqueViolation distinguishes unique-key failures from other database
errors, across both supported drivers:

	if db.IsUniqueViolation(err) {
		// duplicate vote / like / username
	}

# Dialect

The same SQL runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):
placeholders are $N in strictly increasing order, and all timestamps are
bound from Go rather than defaulted in DDL.
*/
package db
