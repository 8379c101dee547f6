// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour of the connected database.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Open connects to the database and verifies the connection.
func Open(dialect Dialect, url string) (*sql.DB, error) {
	var driver string
	switch dialect {
	case SQLite:
		driver = "sqlite"
	case Postgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// One connection serializes writers (no SQLITE_BUSY) and keeps
		// :memory: databases alive for the life of the pool.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	seq := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == Postgres {
		seq = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(fmt.Sprintf(schema, seq))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    standard TEXT NOT NULL DEFAULT '',
    house TEXT NOT NULL CHECK (house IN ('red', 'blue', 'green', 'yellow')),
    photo TEXT NOT NULL DEFAULT '',
    emoji TEXT NOT NULL DEFAULT '',
    votes BIGINT NOT NULL DEFAULT 0 CHECK (votes >= 0),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_house ON candidate(house, name);

-- Voter Sessions
CREATE TABLE IF NOT EXISTS voter_session (
    session_id TEXT PRIMARY KEY,
    voter_type TEXT NOT NULL CHECK (voter_type IN ('student', 'teacher')),
    voted_candidates TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL,
    last_vote_at TIMESTAMP
);

-- Vote Ledger (append-only)
CREATE TABLE IF NOT EXISTS vote (
    seq %s,
    id TEXT NOT NULL UNIQUE,
    candidate_id TEXT NOT NULL,
    candidate_name TEXT NOT NULL,
    house TEXT NOT NULL,
    standard TEXT NOT NULL,
    voter_type TEXT NOT NULL,
    points INTEGER NOT NULL CHECK (points > 0),
    session_id TEXT NOT NULL,
    voter_origin TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);
CREATE INDEX IF NOT EXISTS idx_vote_session_id ON vote(session_id);

-- Vote Claims (one row per session and house, or session and candidate)
CREATE TABLE IF NOT EXISTS vote_claim (
    session_id TEXT NOT NULL,
    claim_key TEXT NOT NULL,
    claimed_at TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, claim_key)
);
`
