// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the SQL storage backend for the election.

# Connecting

Open picks the driver for the dialect (modernc.org/sqlite or lib/pq) and
pings the database. CreateSchema then initializes all required tables:

	conn, err := db.Open(db.SQLite, "house-vote.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn, db.SQLite)

Safe to call CreateSchema multiple times - uses IF NOT EXISTS for all
tables and indexes.

SQLite pools are capped at one connection. Writers are serialized by the
pool, and an in-memory database survives for as long as the pool does.

# Tables

  - candidate: candidates and their running tallies
  - voter_session: self-declared sessions and the candidates they voted for
  - vote: append-only ledger, ordered by seq
  - vote_claim: one row per (session_id, claim_key)

# Double votes

A vote transaction first inserts its vote_claim row with ON CONFLICT DO
NOTHING. If no row was inserted the session already voted and the whole
transaction rolls back. Both dialects serialize conflicting inserts on the
primary key, so two concurrent votes from one session cannot both commit.

# Indexes

  - candidate.(house, name)
  - vote.candidate_id
  - vote.session_id
*/
package db
