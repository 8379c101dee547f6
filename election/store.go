// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"

	"github.com/danielhkuo/house-vote/models"
)

// SessionStore persists voter sessions keyed by session ID.
type SessionStore interface {
	// GetSession returns ErrSessionNotFound for unknown IDs.
	GetSession(ctx context.Context, sessionID string) (models.VoterSession, error)

	// UpsertSession creates the session if absent, otherwise merges the
	// supplied fields. VotedCandidates is merged as an ordered set union.
	// LastVoteAt is always set to upd.At.
	UpsertSession(ctx context.Context, upd models.SessionUpdate) error
}

// CandidateStore persists candidates and their running tallies.
type CandidateStore interface {
	// ListCandidatesByHouse is sorted by name. Unknown houses yield an empty slice.
	ListCandidatesByHouse(ctx context.Context, house string) ([]models.Candidate, error)

	// ListCandidates is sorted by house, then name.
	ListCandidates(ctx context.Context) ([]models.Candidate, error)

	// IncrementVotes atomically adds points to the tally.
	IncrementVotes(ctx context.Context, candidateID string, points int) error
}

// Ledger is the append-only vote record, read side.
type Ledger interface {
	// ListVotes returns every vote in insertion order.
	ListVotes(ctx context.Context) ([]models.Vote, error)
}

// VoteTx is the write set of a single vote transaction. Nothing written
// through it is visible until the surrounding InTx returns nil.
type VoteTx interface {
	// ClaimVote inserts the (sessionID, claimKey) uniqueness record.
	// It returns ErrAlreadyVoted when the pair already exists.
	ClaimVote(ctx context.Context, sessionID, claimKey string) error

	// Candidate looks up a candidate inside the transaction.
	Candidate(ctx context.Context, candidateID string) (models.Candidate, error)

	AppendVote(ctx context.Context, vote models.Vote) error

	IncrementVotes(ctx context.Context, candidateID string, points int) error
}

// Store is everything the coordinator and service need from a backend.
type Store interface {
	SessionStore
	CandidateStore
	Ledger

	// HasClaim reports whether the (sessionID, claimKey) pair was claimed.
	HasClaim(ctx context.Context, sessionID, claimKey string) (bool, error)

	// InTx runs fn in one all-or-nothing transaction.
	InTx(ctx context.Context, fn func(tx VoteTx) error) error

	// Reseed wipes and reloads candidates. Votes, claims and sessions are
	// cleared in the same transaction so tallies keep matching the ledger.
	Reseed(ctx context.Context, candidates []models.Candidate) error

	Close() error
}
