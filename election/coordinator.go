// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/house-vote/auth"
	"github.com/danielhkuo/house-vote/metrics"
	"github.com/danielhkuo/house-vote/models"
)

// Policy selects what a session may vote for only once.
type Policy string

const (
	// LimitPerHouse allows one vote per house per session.
	LimitPerHouse Policy = "house"
	// LimitPerCandidate allows one vote per candidate per session.
	LimitPerCandidate Policy = "candidate"
)

// ClaimKey is the uniqueness key recorded for a vote under the policy.
func ClaimKey(policy Policy, house models.House, candidateID string) string {
	if policy == LimitPerCandidate {
		return "candidate:" + candidateID
	}
	return "house:" + string(house)
}

// VoteRequest is one vote as received from a presentation surface.
type VoteRequest struct {
	Session       SessionContext
	CandidateID   string
	CandidateName string
	House         string
	Standard      string
	VoterOrigin   string
}

// Coordinator casts votes: validation, the already-voted check, the
// ledger/tally transaction, and the session update.
type Coordinator struct {
	store   Store
	policy  Policy
	metrics *metrics.Metrics
	logger  *slog.Logger

	now   func() time.Time
	newID func() string

	sessionAttempts int
	retryDelay      time.Duration
	sessionTimeout  time.Duration
}

type Option func(*Coordinator)

func WithPolicy(p Policy) Option {
	return func(c *Coordinator) { c.policy = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock overrides time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithSessionRetry sets how often the post-commit session update is attempted.
func WithSessionRetry(attempts int, delay time.Duration) Option {
	return func(c *Coordinator) {
		c.sessionAttempts = attempts
		c.retryDelay = delay
	}
}

// WithSessionTimeout bounds the whole post-commit session update, retries
// included.
func WithSessionTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.sessionTimeout = d }
}

func NewCoordinator(store Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:           store,
		policy:          LimitPerHouse,
		logger:          slog.Default(),
		now:             time.Now,
		newID:           uuid.NewString,
		sessionAttempts: 3,
		retryDelay:      50 * time.Millisecond,
		sessionTimeout:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionAttempts < 1 {
		c.sessionAttempts = 1
	}
	if c.sessionTimeout <= 0 {
		c.sessionTimeout = 2 * time.Second
	}
	return c
}

func (c *Coordinator) Policy() Policy {
	return c.policy
}

// Cast records a single vote. On success the returned Vote is the ledger
// entry that was committed. Errors wrap ErrInvalidVote, ErrAlreadyVoted,
// ErrCandidateNotFound or ErrHouseMismatch; anything else is a storage
// failure and the vote must be assumed not recorded.
func (c *Coordinator) Cast(ctx context.Context, req VoteRequest) (models.Vote, error) {
	start := time.Now()

	house, err := validateVote(req)
	if err != nil {
		c.metrics.VoteRejected("invalid")
		return models.Vote{}, err
	}

	voterType := req.Session.VoterType
	points := voterType.Points()
	sessionID := req.Session.ID
	claimKey := ClaimKey(c.policy, house, req.CandidateID)

	// Fast path only. The claim inside the transaction is what actually
	// prevents a double vote.
	session, err := c.store.GetSession(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
	case err != nil:
		return models.Vote{}, fmt.Errorf("failed to load session: %w", err)
	case session.HasVotedFor(req.CandidateID):
		c.metrics.VoteRejected("already_voted")
		return models.Vote{}, fmt.Errorf("%w: candidate %s", ErrAlreadyVoted, req.CandidateID)
	}

	claimed, err := c.store.HasClaim(ctx, sessionID, claimKey)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to check vote claim: %w", err)
	}
	if claimed {
		c.metrics.VoteRejected("already_voted")
		return models.Vote{}, fmt.Errorf("%w: %s", ErrAlreadyVoted, claimKey)
	}

	vote := models.Vote{
		ID:            c.newID(),
		CandidateID:   req.CandidateID,
		CandidateName: req.CandidateName,
		House:         house,
		Standard:      req.Standard,
		VoterType:     voterType,
		Points:        points,
		SessionID:     sessionID,
		VoterOrigin:   req.VoterOrigin,
		Timestamp:     c.now(),
	}

	err = c.store.InTx(ctx, func(tx VoteTx) error {
		if err := tx.ClaimVote(ctx, sessionID, claimKey); err != nil {
			return err
		}

		cand, err := tx.Candidate(ctx, req.CandidateID)
		if err != nil {
			return err
		}
		if cand.House != house {
			return fmt.Errorf("%w: %s is in %s", ErrHouseMismatch, cand.ID, cand.House)
		}
		if vote.CandidateName == "" {
			vote.CandidateName = cand.Name
		}
		if vote.Standard == "" {
			vote.Standard = cand.Standard
		}

		if err := tx.AppendVote(ctx, vote); err != nil {
			return err
		}
		return tx.IncrementVotes(ctx, req.CandidateID, points)
	})
	if err != nil {
		c.metrics.VoteRejected(rejectReason(err))
		return models.Vote{}, err
	}

	c.metrics.VoteCast(string(house), string(voterType), points)
	c.metrics.TimeSince(start)

	// The vote is committed; a cancelled request must not skip the session
	// update, but it must not outlive sessionTimeout either.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sessionTimeout)
	c.recordSession(sctx, sessionID, voterType, req.CandidateID)
	cancel()

	c.logger.Info("vote cast",
		"vote_id", vote.ID,
		"candidate_id", vote.CandidateID,
		"house", vote.House,
		"voter_type", vote.VoterType,
		"points", vote.Points,
	)
	return vote, nil
}

// recordSession adds the candidate to the session's voted set. Failure does
// not undo the vote; the claim table still blocks a second one.
func (c *Coordinator) recordSession(ctx context.Context, sessionID string, voterType models.VoterType, candidateID string) {
	upd := models.SessionUpdate{
		SessionID:       sessionID,
		VoterType:       voterType,
		VotedCandidates: []string{candidateID},
	}

	var err error
retry:
	for attempt := 1; attempt <= c.sessionAttempts; attempt++ {
		upd.At = c.now()
		if err = c.store.UpsertSession(ctx, upd); err == nil {
			return
		}
		c.logger.Warn("session update failed",
			"session_id", sessionID,
			"attempt", attempt,
			"error", err,
		)
		if attempt < c.sessionAttempts {
			select {
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			case <-ctx.Done():
				err = fmt.Errorf("%w after attempt %d: %v", ctx.Err(), attempt, err)
				break retry
			}
		}
	}

	c.metrics.SessionUpdateFailed()
	c.logger.Error("vote recorded but session update gave up",
		"session_id", sessionID,
		"candidate_id", candidateID,
		"error", err,
	)
}

func validateVote(req VoteRequest) (models.House, error) {
	if req.CandidateID == "" {
		return "", fmt.Errorf("%w: candidate_id is required", ErrInvalidVote)
	}
	if err := auth.ValidSessionID(req.Session.ID); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidVote, err)
	}
	house, ok := models.ParseHouse(req.House)
	if !ok {
		return "", fmt.Errorf("%w: unknown house %q", ErrInvalidVote, req.House)
	}
	return house, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, ErrCandidateNotFound), errors.Is(err, ErrHouseMismatch):
		return "invalid"
	}
	return "storage"
}
