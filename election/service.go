// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/house-vote/auth"
	"github.com/danielhkuo/house-vote/models"
)

// Service is the surface presentation layers call. Every method returns a
// structured result or a forgiving empty value; none of them return raw
// storage errors for the caller to interpret.
type Service struct {
	store  Store
	coord  *Coordinator
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, coord *Coordinator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, coord: coord, logger: logger, now: time.Now}
}

// SubmitVote casts a vote and describes the outcome.
func (s *Service) SubmitVote(ctx context.Context, req VoteRequest) models.VoteResult {
	vote, err := s.coord.Cast(ctx, req)
	if err == nil {
		return models.VoteResult{
			Success: true,
			Status:  models.VoteCast,
			Message: fmt.Sprintf("Vote cast successfully for %s! (%d points)", vote.CandidateName, vote.Points),
			Points:  vote.Points,
		}
	}

	switch {
	case errors.Is(err, ErrAlreadyVoted):
		msg := "You have already voted for this candidate"
		if s.coord.Policy() == LimitPerHouse {
			msg = fmt.Sprintf("You have already voted in the %s house", req.House)
		}
		return models.VoteResult{Status: models.VoteAlreadyVoted, Message: msg}
	case errors.Is(err, ErrInvalidVote), errors.Is(err, ErrCandidateNotFound), errors.Is(err, ErrHouseMismatch):
		return models.VoteResult{Status: models.VoteInvalid, Message: invalidMessage(err)}
	}

	s.logger.Error("failed to submit vote",
		"candidate_id", req.CandidateID,
		"house", req.House,
		"error", err,
	)
	return models.VoteResult{Status: models.VoteError, Message: "Failed to cast vote"}
}

func invalidMessage(err error) string {
	switch {
	case errors.Is(err, ErrCandidateNotFound):
		return "Candidate not found"
	case errors.Is(err, ErrHouseMismatch):
		return "Candidate does not belong to this house"
	}
	return "Invalid vote: " + err.Error()
}

// CheckVoterSession looks up a session. Unknown IDs succeed with a nil session.
func (s *Service) CheckVoterSession(ctx context.Context, sessionID string) models.SessionCheckResult {
	if auth.ValidSessionID(sessionID) != nil {
		return models.SessionCheckResult{Success: true}
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return models.SessionCheckResult{Success: true}
	}
	if err != nil {
		s.logger.Error("failed to check voter session", "error", err)
		return models.SessionCheckResult{}
	}

	voted := session.VotedCandidates
	if voted == nil {
		voted = []string{}
	}
	return models.SessionCheckResult{
		Success: true,
		Session: &models.SessionView{
			VoterType:       session.VoterType,
			VotedCandidates: voted,
		},
	}
}

// CreateVoterSession registers the session, or refreshes an existing one
// without touching its voted set.
func (s *Service) CreateVoterSession(ctx context.Context, sc SessionContext) models.CreateSessionResult {
	if err := auth.ValidSessionID(sc.ID); err != nil {
		return models.CreateSessionResult{}
	}

	err := s.store.UpsertSession(ctx, models.SessionUpdate{
		SessionID: sc.ID,
		VoterType: sc.VoterType,
		At:        s.now(),
	})
	if err != nil {
		s.logger.Error("failed to create voter session", "error", err)
		return models.CreateSessionResult{}
	}
	return models.CreateSessionResult{Success: true, SessionID: sc.ID}
}

// GetHouseCandidates returns the house roster sorted by name, or an empty
// slice for unknown houses and storage failures.
func (s *Service) GetHouseCandidates(ctx context.Context, house string) []models.Candidate {
	if _, ok := models.ParseHouse(house); !ok {
		return []models.Candidate{}
	}
	cands, err := s.store.ListCandidatesByHouse(ctx, house)
	if err != nil {
		s.logger.Error("failed to fetch house candidates", "house", house, "error", err)
		return []models.Candidate{}
	}
	return cands
}

// GetElectionResults returns every candidate sorted by house, then name.
func (s *Service) GetElectionResults(ctx context.Context) []models.Candidate {
	cands, err := s.store.ListCandidates(ctx)
	if err != nil {
		s.logger.Error("failed to fetch election results", "error", err)
		return []models.Candidate{}
	}
	return cands
}

// InitializeElectionData wipes the election and reloads the default roster.
func (s *Service) InitializeElectionData(ctx context.Context) models.InitResult {
	now := s.now()
	cands := DefaultCandidates()
	for i := range cands {
		cands[i].CreatedAt = now
		cands[i].UpdatedAt = now
	}

	if err := s.store.Reseed(ctx, cands); err != nil {
		s.logger.Error("failed to initialize election data", "error", err)
		return models.InitResult{Message: "Failed to initialize election data"}
	}

	s.logger.Info("election data initialized", "candidates", len(cands))
	return models.InitResult{Success: true, Message: "Election data initialized successfully"}
}

// EnsureSeeded loads the default roster into an empty election. A failed
// read is returned as is and never leads to a reseed.
func (s *Service) EnsureSeeded(ctx context.Context) (bool, error) {
	cands, err := s.store.ListCandidates(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list candidates: %w", err)
	}
	if len(cands) > 0 {
		return false, nil
	}
	if res := s.InitializeElectionData(ctx); !res.Success {
		return false, errors.New(res.Message)
	}
	return true, nil
}

func (s *Service) Summary(ctx context.Context) Summary {
	return Summarize(s.GetElectionResults(ctx))
}

func (s *Service) FilteredResults(ctx context.Context, f Filter) []models.Candidate {
	return FilterCandidates(s.GetElectionResults(ctx), f)
}

func (s *Service) Export(ctx context.Context) Export {
	return ExportResults(s.GetElectionResults(ctx), s.now())
}

// Audit checks every tally against the ledger.
func (s *Service) Audit(ctx context.Context) ([]TallyMismatch, error) {
	cands, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	votes, err := s.store.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return AuditTallies(cands, votes), nil
}
