// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: Database connection string or file path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - TokenSecret: Secret for signing access tokens (required)
  - TokenTTL: Access token lifetime (default: 30m)
  - FreeformVotes: Accept vote options outside a poll's declared set

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	--token-secret   Token signing secret
	--token-ttl      Token lifetime
	--freeform-votes Accept out-of-domain vote options

# Environment Variables

Flags fall back to environment variables, parsed with caarlos0/env:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	TOKEN_SECRET   → --token-secret
	TOKEN_TTL      → --token-ttl
	FREEFORM_VOTES → --freeform-votes

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres when set
  - TOKEN_SECRET must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
