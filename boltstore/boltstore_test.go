// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boltstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Options{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Reseed(context.Background(), []models.Candidate{
		{ID: "1", Name: "Zara", House: models.HouseRed, CreatedAt: now, UpdatedAt: now},
		{ID: "2", Name: "Amit", House: models.HouseRed, CreatedAt: now, UpdatedAt: now},
		{ID: "3", Name: "Bela", House: models.HouseBlue, CreatedAt: now, UpdatedAt: now},
	}))
}

func TestOpenRequiresDataDir(t *testing.T) {
	_, err := Open(Options{})
	assert.ErrorIs(t, err, ErrDataDirRequired)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(Options{DataDir: dir})
	require.NoError(t, err)
	seed(t, store)
	require.NoError(t, store.Close())

	store, err = Open(Options{DataDir: dir})
	require.NoError(t, err)
	defer store.Close()

	cands, err := store.ListCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, cands, 3)
}

func TestCandidateOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seed(t, store)

	red, err := store.ListCandidatesByHouse(ctx, "red")
	require.NoError(t, err)
	require.Len(t, red, 2)
	assert.Equal(t, "Amit", red[0].Name)

	none, err := store.ListCandidatesByHouse(ctx, "purple")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := store.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", all[0].ID)
	assert.Equal(t, "2", all[1].ID)
	assert.Equal(t, "1", all[2].ID)
}

func TestSessionUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := store.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, election.ErrSessionNotFound)

	require.NoError(t, store.UpsertSession(ctx, models.SessionUpdate{SessionID: "s1", At: t0}))
	require.NoError(t, store.UpsertSession(ctx, models.SessionUpdate{
		SessionID: "s1", VoterType: models.VoterTeacher, VotedCandidates: []string{"2", "1"}, At: t0.Add(time.Minute),
	}))
	require.NoError(t, store.UpsertSession(ctx, models.SessionUpdate{
		SessionID: "s1", VoterType: models.VoterTeacher, VotedCandidates: []string{"1", "3"}, At: t0.Add(2 * time.Minute),
	}))

	s, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.VoterTeacher, s.VoterType)
	assert.Equal(t, []string{"2", "1", "3"}, s.VotedCandidates)
	assert.True(t, s.CreatedAt.Equal(t0))
	require.NotNil(t, s.LastVoteAt)
	assert.True(t, s.LastVoteAt.Equal(t0.Add(2*time.Minute)))
}

func TestInTxCommitAndRollback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seed(t, store)

	vote := models.Vote{ID: "v1", CandidateID: "2", House: models.HouseRed, Points: 50, SessionID: "s1", VoterOrigin: "abc"}

	boom := errors.New("boom")
	err := store.InTx(ctx, func(tx election.VoteTx) error {
		require.NoError(t, tx.ClaimVote(ctx, "s1", "house:red"))
		require.NoError(t, tx.AppendVote(ctx, vote))
		require.NoError(t, tx.IncrementVotes(ctx, "2", 50))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	votes, err := store.ListVotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, votes)
	claimed, err := store.HasClaim(ctx, "s1", "house:red")
	require.NoError(t, err)
	assert.False(t, claimed)

	err = store.InTx(ctx, func(tx election.VoteTx) error {
		if err := tx.ClaimVote(ctx, "s1", "house:red"); err != nil {
			return err
		}
		c, err := tx.Candidate(ctx, "2")
		if err != nil {
			return err
		}
		assert.Equal(t, "Amit", c.Name)
		if err := tx.AppendVote(ctx, vote); err != nil {
			return err
		}
		return tx.IncrementVotes(ctx, "2", 50)
	})
	require.NoError(t, err)

	votes, err = store.ListVotes(ctx)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "s1", votes[0].SessionID)
	assert.Equal(t, "abc", votes[0].VoterOrigin)

	red, err := store.ListCandidatesByHouse(ctx, "red")
	require.NoError(t, err)
	assert.EqualValues(t, 50, red[0].Votes)

	err = store.InTx(ctx, func(tx election.VoteTx) error {
		return tx.ClaimVote(ctx, "s1", "house:red")
	})
	assert.ErrorIs(t, err, election.ErrAlreadyVoted)
}

func TestInTxCancelledContextDoesNotCommit(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	err := store.InTx(ctx, func(tx election.VoteTx) error {
		cancel()
		return tx.IncrementVotes(ctx, "1", 1)
	})
	assert.ErrorIs(t, err, context.Canceled)

	cands, err := store.ListCandidatesByHouse(context.Background(), "red")
	require.NoError(t, err)
	for _, c := range cands {
		assert.Zero(t, c.Votes)
	}
}

func TestIncrementVotesErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seed(t, store)

	assert.ErrorIs(t, store.IncrementVotes(ctx, "404", 1), election.ErrCandidateNotFound)
	assert.ErrorIs(t, store.IncrementVotes(ctx, "1", -1), election.ErrInvalidPoints)
}

func TestCoordinatorOnBolt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seed(t, store)
	coord := election.NewCoordinator(store, election.WithSessionRetry(1, 0))

	const n = 10
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := coord.Cast(ctx, election.VoteRequest{
				Session:     election.NewSessionContext("s1", "student"),
				CandidateID: fmt.Sprint(i%2 + 1),
				House:       "red",
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, election.ErrAlreadyVoted)
		}
	}
	assert.Equal(t, 1, ok)

	cands, err := store.ListCandidates(ctx)
	require.NoError(t, err)
	votes, err := store.ListVotes(ctx)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
	assert.Empty(t, election.AuditTallies(cands, votes))
}

func TestReseedClears(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seed(t, store)

	require.NoError(t, store.UpsertSession(ctx, models.SessionUpdate{SessionID: "s1", At: time.Now()}))
	require.NoError(t, store.InTx(ctx, func(tx election.VoteTx) error {
		return tx.ClaimVote(ctx, "s1", "house:red")
	}))

	require.NoError(t, store.Reseed(ctx, nil))

	cands, err := store.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, cands)
	_, err = store.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, election.ErrSessionNotFound)
	claimed, err := store.HasClaim(ctx, "s1", "house:red")
	require.NoError(t, err)
	assert.False(t, claimed)
}
