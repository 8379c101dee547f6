// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres, or bolt
  - DatabaseURL: postgres URL, sqlite file, or bolt data directory
  - VoteLimit: house (default) or candidate
  - AdminKey: Secret for admin endpoints (required)
  - IPHashSalt: Secret for hashing voter IPs in the ledger (required)

# CLI Flags

	-p            Server port
	-t            Database type
	-d            Database URL
	--vote-limit  Vote limiting policy
	--admin-key   Admin key
	--ip-salt     IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	VOTE_LIMIT    → --vote-limit
	ADMIN_KEY     → --admin-key
	IP_HASH_SALT  → --ip-salt

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing, when one exists.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for postgres (sqlite and bolt have defaults)
  - DATABASE_TYPE or VOTE_LIMIT has an unknown value
  - ADMIN_KEY or IP_HASH_SALT is missing
*/
package cliparse
