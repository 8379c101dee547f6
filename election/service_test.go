// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/models"
	"github.com/danielhkuo/house-vote/testutil"
)

func TestSubmitVoteResults(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, store,
		testutil.Candidate("1", "Amit", models.HouseRed),
		testutil.Candidate("2", "Bela", models.HouseRed),
	)
	svc, _ := testutil.NewTestService(store)

	res := svc.SubmitVote(ctx, voteReq("s1", "teacher", "1", "red"))
	assert.True(t, res.Success)
	assert.Equal(t, models.VoteCast, res.Status)
	assert.Equal(t, 50, res.Points)
	assert.Equal(t, "Vote cast successfully for Amit! (50 points)", res.Message)

	res = svc.SubmitVote(ctx, voteReq("s1", "teacher", "2", "red"))
	assert.False(t, res.Success)
	assert.Equal(t, models.VoteAlreadyVoted, res.Status)
	assert.Equal(t, "You have already voted in the red house", res.Message)

	res = svc.SubmitVote(ctx, voteReq("s2", "student", "404", "red"))
	assert.Equal(t, models.VoteInvalid, res.Status)
	assert.Equal(t, "Candidate not found", res.Message)

	res = svc.SubmitVote(ctx, voteReq("s2", "student", "1", "blue"))
	assert.Equal(t, models.VoteInvalid, res.Status)
	assert.Equal(t, "Candidate does not belong to this house", res.Message)

	res = svc.SubmitVote(ctx, voteReq("s2", "student", "1", "purple"))
	assert.Equal(t, models.VoteInvalid, res.Status)
	assert.Contains(t, res.Message, "Invalid vote")
}

func TestSubmitVoteCandidatePolicyMessage(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, store, testutil.Candidate("1", "Amit", models.HouseRed))
	svc, _ := testutil.NewTestService(store, election.WithPolicy(election.LimitPerCandidate))

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "student", "1", "red")).Success)

	res := svc.SubmitVote(ctx, voteReq("s1", "student", "1", "red"))
	assert.Equal(t, models.VoteAlreadyVoted, res.Status)
	assert.Equal(t, "You have already voted for this candidate", res.Message)
}

func TestSubmitVoteStorageFailure(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, store, testutil.Candidate("1", "Amit", models.HouseRed))
	svc, _ := testutil.NewTestService(store)

	require.NoError(t, store.Close())

	res := svc.SubmitVote(ctx, voteReq("s1", "student", "1", "red"))
	assert.False(t, res.Success)
	assert.Equal(t, models.VoteError, res.Status)
	assert.Equal(t, "Failed to cast vote", res.Message)

	check := svc.CheckVoterSession(ctx, "s1")
	assert.False(t, check.Success)

	assert.Empty(t, svc.GetElectionResults(ctx))
	assert.Empty(t, svc.GetHouseCandidates(ctx, "red"))
}

func TestCheckVoterSession(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, store, testutil.Candidate("1", "Amit", models.HouseRed))
	svc, _ := testutil.NewTestService(store)

	res := svc.CheckVoterSession(ctx, "unknown")
	assert.True(t, res.Success)
	assert.Nil(t, res.Session)

	res = svc.CheckVoterSession(ctx, "")
	assert.True(t, res.Success)
	assert.Nil(t, res.Session)

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "teacher", "1", "red")).Success)

	first := svc.CheckVoterSession(ctx, "s1")
	second := svc.CheckVoterSession(ctx, "s1")
	assert.Equal(t, first, second)
	require.NotNil(t, first.Session)
	assert.Equal(t, models.VoterTeacher, first.Session.VoterType)
	assert.Equal(t, []string{"1"}, first.Session.VotedCandidates)
}

func TestCreateVoterSession(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, store, testutil.Candidate("1", "Amit", models.HouseRed))
	svc, _ := testutil.NewTestService(store)

	res := svc.CreateVoterSession(ctx, election.NewSessionContext("s1", "student"))
	assert.True(t, res.Success)
	assert.Equal(t, "s1", res.SessionID)

	check := svc.CheckVoterSession(ctx, "s1")
	require.NotNil(t, check.Session)
	assert.Empty(t, check.Session.VotedCandidates)

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "student", "1", "red")).Success)

	// re-registering keeps the voted set
	res = svc.CreateVoterSession(ctx, election.NewSessionContext("s1", "teacher"))
	require.True(t, res.Success)
	check = svc.CheckVoterSession(ctx, "s1")
	require.NotNil(t, check.Session)
	assert.Equal(t, models.VoterTeacher, check.Session.VoterType)
	assert.Equal(t, []string{"1"}, check.Session.VotedCandidates)

	res = svc.CreateVoterSession(ctx, election.NewSessionContext("", "student"))
	assert.False(t, res.Success)
}

func TestGetHouseCandidates(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedDefault(t, store)
	svc, _ := testutil.NewTestService(store)

	for _, house := range models.Houses {
		cands := svc.GetHouseCandidates(ctx, string(house))
		require.NotEmpty(t, cands, house)
		for i, c := range cands {
			assert.Equal(t, house, c.House)
			if i > 0 {
				assert.LessOrEqual(t, cands[i-1].Name, c.Name)
			}
		}
	}

	assert.Empty(t, svc.GetHouseCandidates(ctx, "purple"))
	assert.Empty(t, svc.GetHouseCandidates(ctx, ""))
	assert.NotNil(t, svc.GetHouseCandidates(ctx, "purple"))
}

func TestElectionResultsMatchLedger(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedDefault(t, store)
	svc, _ := testutil.NewTestService(store)

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "student", "1", "red")).Success)
	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "student", "10", "yellow")).Success)
	require.True(t, svc.SubmitVote(ctx, voteReq("s2", "teacher", "1", "red")).Success)

	results := svc.GetElectionResults(ctx)
	assert.Len(t, results, 36)
	assert.EqualValues(t, 52, election.TotalVotes(results))
	assert.EqualValues(t, ledgerSum(t, store), election.TotalVotes(results))

	mismatches, err := svc.Audit(ctx)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	summary := svc.Summary(ctx)
	assert.EqualValues(t, 52, summary.TotalVotes)
	require.NotNil(t, summary.Leader)
	assert.Equal(t, "1", summary.Leader.ID)

	export := svc.Export(ctx)
	assert.Equal(t, 36, export.TotalCandidates)
	assert.EqualValues(t, 52, export.TotalVotes)

	red := svc.FilteredResults(ctx, election.Filter{House: "red", SortBy: election.SortVotes, Desc: true})
	require.NotEmpty(t, red)
	assert.Equal(t, "1", red[0].ID)
}

func TestAuditDetectsDrift(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, store, testutil.Candidate("1", "Amit", models.HouseRed))
	svc, _ := testutil.NewTestService(store)

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "student", "1", "red")).Success)
	require.NoError(t, store.IncrementVotes(ctx, "1", 5))

	mismatches, err := svc.Audit(ctx)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, election.TallyMismatch{CandidateID: "1", Tally: 6, LedgerSum: 1}, mismatches[0])
}

func TestInitializeElectionData(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	svc, _ := testutil.NewTestService(store)

	res := svc.InitializeElectionData(ctx)
	assert.True(t, res.Success)
	assert.Equal(t, "Election data initialized successfully", res.Message)

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "teacher", "1", "red")).Success)

	res = svc.InitializeElectionData(ctx)
	require.True(t, res.Success)

	results := svc.GetElectionResults(ctx)
	assert.Len(t, results, 36)
	assert.EqualValues(t, 0, election.TotalVotes(results))
	assert.EqualValues(t, 0, ledgerSum(t, store))
	assert.Nil(t, svc.CheckVoterSession(ctx, "s1").Session)

	// the session may vote again after a reset
	assert.True(t, svc.SubmitVote(ctx, voteReq("s1", "teacher", "1", "red")).Success)
}

// unreadableCandidates fails every candidate listing and counts reseeds.
type unreadableCandidates struct {
	election.Store
	reseeds int
}

func (u *unreadableCandidates) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return nil, errors.New("failed to decode candidate")
}

func (u *unreadableCandidates) Reseed(ctx context.Context, cands []models.Candidate) error {
	u.reseeds++
	return u.Store.Reseed(ctx, cands)
}

func TestEnsureSeeded(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	svc, _ := testutil.NewTestService(store)

	seeded, err := svc.EnsureSeeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Len(t, svc.GetElectionResults(ctx), 36)

	require.True(t, svc.SubmitVote(ctx, voteReq("s1", "teacher", "1", "red")).Success)

	seeded, err = svc.EnsureSeeded(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.EqualValues(t, 50, ledgerSum(t, store))
}

func TestEnsureSeededKeepsDataOnReadError(t *testing.T) {
	base := testutil.SetupTestStore(t)
	ctx := context.Background()
	testutil.SeedCandidates(t, base, testutil.Candidate("1", "Amit", models.HouseRed))
	baseSvc, _ := testutil.NewTestService(base)
	require.True(t, baseSvc.SubmitVote(ctx, voteReq("s1", "teacher", "1", "red")).Success)

	store := &unreadableCandidates{Store: base}
	svc, _ := testutil.NewTestService(store)

	seeded, err := svc.EnsureSeeded(ctx)
	assert.Error(t, err)
	assert.False(t, seeded)
	assert.Zero(t, store.reseeds)

	assert.EqualValues(t, 50, ledgerSum(t, base))
	assert.NotNil(t, baseSvc.CheckVoterSession(ctx, "s1").Session)
}

func TestDefaultCandidates(t *testing.T) {
	cands := election.DefaultCandidates()
	assert.Len(t, cands, 36)

	ids := make(map[string]bool)
	for _, c := range cands {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		_, ok := models.ParseHouse(string(c.House))
		assert.True(t, ok, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.Zero(t, c.Votes)
	}
}
