// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/models"
)

// Store implements election.Store on database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect, now: time.Now}
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const candidateColumns = `id, name, standard, house, photo, emoji, votes, created_at, updated_at`

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var c models.Candidate
	var house string
	err := row.Scan(&c.ID, &c.Name, &c.Standard, &house, &c.Photo, &c.Emoji, &c.Votes, &c.CreatedAt, &c.UpdatedAt)
	c.House = models.House(house)
	return c, err
}

// GetSession returns election.ErrSessionNotFound for unknown IDs
func (s *Store) GetSession(ctx context.Context, sessionID string) (models.VoterSession, error) {
	var session models.VoterSession
	var voterType, voted string
	var lastVoteAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT session_id, voter_type, voted_candidates, created_at, last_vote_at
		FROM voter_session
		WHERE session_id = $1
	`, sessionID).Scan(&session.SessionID, &voterType, &voted, &session.CreatedAt, &lastVoteAt)

	if err == sql.ErrNoRows {
		return models.VoterSession{}, election.ErrSessionNotFound
	}
	if err != nil {
		return models.VoterSession{}, fmt.Errorf("failed to query session: %w", err)
	}

	session.VoterType = models.VoterType(voterType)
	if err := json.Unmarshal([]byte(voted), &session.VotedCandidates); err != nil {
		return models.VoterSession{}, fmt.Errorf("failed to decode voted candidates: %w", err)
	}
	if lastVoteAt.Valid {
		t := lastVoteAt.Time
		session.LastVoteAt = &t
	}
	return session, nil
}

// UpsertSession creates the session if needed, then merges the update
// under a row lock (postgres) or the single sqlite connection.
func (s *Store) UpsertSession(ctx context.Context, upd models.SessionUpdate) error {
	voterType := upd.VoterType
	if voterType == "" {
		voterType = models.VoterStudent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voter_session (session_id, voter_type, voted_candidates, created_at)
		VALUES ($1, $2, '[]', $3)
		ON CONFLICT (session_id) DO NOTHING
	`, upd.SessionID, string(voterType), upd.At)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	lock := ""
	if s.dialect == Postgres {
		lock = " FOR UPDATE"
	}
	var stored string
	err = tx.QueryRowContext(ctx, `
		SELECT voted_candidates FROM voter_session WHERE session_id = $1`+lock,
		upd.SessionID).Scan(&stored)
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}

	var voted []string
	if err := json.Unmarshal([]byte(stored), &voted); err != nil {
		return fmt.Errorf("failed to decode voted candidates: %w", err)
	}
	merged, err := json.Marshal(mergeVoted(voted, upd.VotedCandidates))
	if err != nil {
		return fmt.Errorf("failed to encode voted candidates: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE voter_session
		SET voter_type = $1, voted_candidates = $2, last_vote_at = $3
		WHERE session_id = $4
	`, string(voterType), string(merged), upd.At, upd.SessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return tx.Commit()
}

// mergeVoted appends the new IDs not already present, keeping order
func mergeVoted(existing, add []string) []string {
	out := make([]string, 0, len(existing)+len(add))
	seen := make(map[string]bool, len(existing)+len(add))
	for _, list := range [][]string{existing, add} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

func (s *Store) ListCandidatesByHouse(ctx context.Context, house string) ([]models.Candidate, error) {
	return s.listCandidates(ctx, `
		SELECT `+candidateColumns+`
		FROM candidate
		WHERE house = $1
		ORDER BY name
	`, house)
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return s.listCandidates(ctx, `
		SELECT `+candidateColumns+`
		FROM candidate
		ORDER BY house, name
	`)
}

func (s *Store) listCandidates(ctx context.Context, query string, args ...any) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

func (s *Store) IncrementVotes(ctx context.Context, candidateID string, points int) error {
	return incrementVotes(ctx, s.db, candidateID, points, s.now())
}

// incrementVotes adds points in the database, never read-modify-write
func incrementVotes(ctx context.Context, q querier, candidateID string, points int, now time.Time) error {
	if points <= 0 {
		return election.ErrInvalidPoints
	}

	res, err := q.ExecContext(ctx, `
		UPDATE candidate
		SET votes = votes + $1, updated_at = $2
		WHERE id = $3
	`, points, now, candidateID)
	if err != nil {
		return fmt.Errorf("failed to increment votes: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to increment votes: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", election.ErrCandidateNotFound, candidateID)
	}
	return nil
}

func (s *Store) ListVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_id, candidate_name, house, standard, voter_type,
		       points, session_id, voter_origin, created_at
		FROM vote
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var house, voterType string
		var origin sql.NullString
		if err := rows.Scan(
			&v.ID, &v.CandidateID, &v.CandidateName, &house, &v.Standard, &voterType,
			&v.Points, &v.SessionID, &origin, &v.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.House = models.House(house)
		v.VoterType = models.VoterType(voterType)
		v.VoterOrigin = origin.String
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}

func (s *Store) HasClaim(ctx context.Context, sessionID, claimKey string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote_claim
			WHERE session_id = $1 AND claim_key = $2
		)
	`, sessionID, claimKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote claim: %w", err)
	}
	return exists, nil
}

// InTx runs fn inside one database transaction. Any error from fn, or a
// cancelled ctx, rolls everything back.
func (s *Store) InTx(ctx context.Context, fn func(tx election.VoteTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&voteTx{tx: tx, now: s.now}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Reseed(ctx context.Context, candidates []models.Candidate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"vote_claim", "vote", "voter_session", "candidate"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, c := range candidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidate (`+candidateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, c.ID, c.Name, c.Standard, string(c.House), c.Photo, c.Emoji, c.Votes, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert candidate %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}

type voteTx struct {
	tx  *sql.Tx
	now func() time.Time
}

// ClaimVote relies on the (session_id, claim_key) primary key: a second
// claim inserts nothing, even when both transactions raced past HasClaim.
func (t *voteTx) ClaimVote(ctx context.Context, sessionID, claimKey string) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO vote_claim (session_id, claim_key, claimed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, claim_key) DO NOTHING
	`, sessionID, claimKey, t.now())
	if err != nil {
		return fmt.Errorf("failed to claim vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to claim vote: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", election.ErrAlreadyVoted, claimKey)
	}
	return nil
}

func (t *voteTx) Candidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	c, err := scanCandidate(t.tx.QueryRowContext(ctx, `
		SELECT `+candidateColumns+` FROM candidate WHERE id = $1
	`, candidateID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, fmt.Errorf("%w: %s", election.ErrCandidateNotFound, candidateID)
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

func (t *voteTx) AppendVote(ctx context.Context, v models.Vote) error {
	var origin sql.NullString
	if v.VoterOrigin != "" {
		origin = sql.NullString{String: v.VoterOrigin, Valid: true}
	}

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO vote (id, candidate_id, candidate_name, house, standard, voter_type,
		                  points, session_id, voter_origin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, v.ID, v.CandidateID, v.CandidateName, string(v.House), v.Standard, string(v.VoterType),
		v.Points, v.SessionID, origin, v.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append vote: %w", err)
	}
	return nil
}

func (t *voteTx) IncrementVotes(ctx context.Context, candidateID string, points int) error {
	return incrementVotes(ctx, t.tx, candidateID, points, t.now())
}

var _ election.Store = (*Store)(nil)
