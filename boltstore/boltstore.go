// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/models"
)

const (
	// dbFileName is the name of the database file inside the data dir
	dbFileName string = "house-vote.db"

	bucketCandidates string = "candidates"
	bucketSessions   string = "sessions"
	// bucketVotes is keyed by the bucket sequence, big endian, so cursor
	// order is insertion order
	bucketVotes  string = "votes"
	bucketClaims string = "claims"
)

var allBuckets = []string{bucketCandidates, bucketSessions, bucketVotes, bucketClaims}

var ErrDataDirRequired = errors.New("data dir required")

type Options struct {
	// DataDir is the directory holding the database file. It's required
	DataDir string

	// Options hold all bolt options
	Options *bolt.Options
}

// Store implements election.Store on a single bbolt file. bbolt allows one
// writer at a time, so every write transaction is serialized.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// storedVote keeps the fields models.Vote hides from JSON
type storedVote struct {
	Vote        models.Vote `json:"vote"`
	SessionID   string      `json:"session_id"`
	VoterOrigin string      `json:"voter_origin,omitempty"`
}

func Open(options Options) (*Store, error) {
	if options.DataDir == "" {
		return nil, ErrDataDirRequired
	}
	if err := os.MkdirAll(options.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", options.DataDir, err)
	}

	opts := options.Options
	if opts == nil {
		opts = &bolt.Options{Timeout: time.Second}
	}
	db, err := bolt.Open(filepath.Join(options.DataDir, dbFileName), 0600, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if !opts.ReadOnly {
		if err := store.initializeBuckets(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return store, nil
}

func (s *Store) initializeBuckets() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func claimID(sessionID, claimKey string) []byte {
	return []byte(sessionID + "\x00" + claimKey)
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (models.VoterSession, error) {
	if err := ctx.Err(); err != nil {
		return models.VoterSession{}, err
	}

	var session models.VoterSession
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(bucketSessions)).Get([]byte(sessionID))
		if value == nil {
			return election.ErrSessionNotFound
		}
		return json.Unmarshal(value, &session)
	})
	return session, err
}

func (s *Store) UpsertSession(ctx context.Context, upd models.SessionUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	voterType := upd.VoterType
	if voterType == "" {
		voterType = models.VoterStudent
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSessions))
		key := []byte(upd.SessionID)

		session := models.VoterSession{SessionID: upd.SessionID, CreatedAt: upd.At}
		if value := bucket.Get(key); value != nil {
			if err := json.Unmarshal(value, &session); err != nil {
				return fmt.Errorf("failed to decode session: %w", err)
			}
		}

		session.VoterType = voterType
		for _, id := range upd.VotedCandidates {
			if !session.HasVotedFor(id) {
				session.VotedCandidates = append(session.VotedCandidates, id)
			}
		}
		if session.VotedCandidates == nil {
			session.VotedCandidates = []string{}
		}
		at := upd.At
		session.LastVoteAt = &at

		value, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		return bucket.Put(key, value)
	})
}

func (s *Store) ListCandidatesByHouse(ctx context.Context, house string) ([]models.Candidate, error) {
	cands, err := s.listCandidates(ctx, func(c models.Candidate) bool { return string(c.House) == house })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Name < cands[j].Name })
	return cands, nil
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	cands, err := s.listCandidates(ctx, func(models.Candidate) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].House != cands[j].House {
			return cands[i].House < cands[j].House
		}
		return cands[i].Name < cands[j].Name
	})
	return cands, nil
}

func (s *Store) listCandidates(ctx context.Context, keep func(models.Candidate) bool) ([]models.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cands := []models.Candidate{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCandidates)).ForEach(func(_, v []byte) error {
			var c models.Candidate
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("failed to decode candidate: %w", err)
			}
			if keep(c) {
				cands = append(cands, c)
			}
			return nil
		})
	})
	return cands, err
}

func (s *Store) IncrementVotes(ctx context.Context, candidateID string, points int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return incrementVotes(tx, candidateID, points, s.now())
	})
}

// incrementVotes is only called inside a write transaction, which bbolt
// holds exclusively, so the read-modify-write cannot lose updates.
func incrementVotes(tx *bolt.Tx, candidateID string, points int, now time.Time) error {
	if points <= 0 {
		return election.ErrInvalidPoints
	}

	bucket := tx.Bucket([]byte(bucketCandidates))
	value := bucket.Get([]byte(candidateID))
	if value == nil {
		return fmt.Errorf("%w: %s", election.ErrCandidateNotFound, candidateID)
	}

	var c models.Candidate
	if err := json.Unmarshal(value, &c); err != nil {
		return fmt.Errorf("failed to decode candidate: %w", err)
	}
	c.Votes += int64(points)
	c.UpdatedAt = now

	value, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode candidate: %w", err)
	}
	return bucket.Put([]byte(candidateID), value)
}

func (s *Store) ListVotes(ctx context.Context) ([]models.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	votes := []models.Vote{}
	err := s.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketVotes)).Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var sv storedVote
			if err := json.Unmarshal(v, &sv); err != nil {
				return fmt.Errorf("failed to decode vote: %w", err)
			}
			vote := sv.Vote
			vote.SessionID = sv.SessionID
			vote.VoterOrigin = sv.VoterOrigin
			votes = append(votes, vote)
		}
		return nil
	})
	return votes, err
}

func (s *Store) HasClaim(ctx context.Context, sessionID, claimKey string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket([]byte(bucketClaims)).Get(claimID(sessionID, claimKey)) != nil
		return nil
	})
	return exists, err
}

// InTx runs fn in a bbolt write transaction. Returning an error rolls back.
func (s *Store) InTx(ctx context.Context, fn func(tx election.VoteTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := fn(&voteTx{tx: tx, now: s.now}); err != nil {
			return err
		}
		// a cancelled request must not commit
		return ctx.Err()
	})
}

func (s *Store) Reseed(ctx context.Context, candidates []models.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("failed to clear bucket %s: %w", name, err)
			}
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}

		bucket := tx.Bucket([]byte(bucketCandidates))
		for _, c := range candidates {
			value, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("failed to encode candidate %s: %w", c.ID, err)
			}
			if err := bucket.Put([]byte(c.ID), value); err != nil {
				return err
			}
		}
		return nil
	})
}

type voteTx struct {
	tx  *bolt.Tx
	now func() time.Time
}

func (t *voteTx) ClaimVote(ctx context.Context, sessionID, claimKey string) error {
	bucket := t.tx.Bucket([]byte(bucketClaims))
	key := claimID(sessionID, claimKey)
	if bucket.Get(key) != nil {
		return fmt.Errorf("%w: %s", election.ErrAlreadyVoted, claimKey)
	}
	return bucket.Put(key, []byte(t.now().UTC().Format(time.RFC3339Nano)))
}

func (t *voteTx) Candidate(ctx context.Context, candidateID string) (models.Candidate, error) {
	value := t.tx.Bucket([]byte(bucketCandidates)).Get([]byte(candidateID))
	if value == nil {
		return models.Candidate{}, fmt.Errorf("%w: %s", election.ErrCandidateNotFound, candidateID)
	}

	var c models.Candidate
	if err := json.Unmarshal(value, &c); err != nil {
		return models.Candidate{}, fmt.Errorf("failed to decode candidate: %w", err)
	}
	return c, nil
}

func (t *voteTx) AppendVote(ctx context.Context, v models.Vote) error {
	bucket := t.tx.Bucket([]byte(bucketVotes))
	seq, err := bucket.NextSequence()
	if err != nil {
		return fmt.Errorf("failed to allocate vote sequence: %w", err)
	}

	value, err := json.Marshal(storedVote{Vote: v, SessionID: v.SessionID, VoterOrigin: v.VoterOrigin})
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}
	return bucket.Put(encodeUint64(seq), value)
}

func (t *voteTx) IncrementVotes(ctx context.Context, candidateID string, points int) error {
	return incrementVotes(t.tx, candidateID, points, t.now())
}

var _ election.Store = (*Store)(nil)
