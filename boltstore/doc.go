// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package boltstore is an embedded election.Store backed by bbolt.

It needs no database server: everything lives in DataDir/house-vote.db.

	store, err := boltstore.Open(boltstore.Options{DataDir: "data"})

# Buckets

  - candidates: candidate ID to JSON candidate
  - sessions: session ID to JSON voter session
  - votes: big endian sequence to JSON vote, so cursor order is ledger order
  - claims: session ID and claim key joined by a NUL byte

bbolt runs one write transaction at a time. Claiming a vote and
incrementing a tally are therefore plain read-then-write inside the
transaction.
*/
package boltstore
