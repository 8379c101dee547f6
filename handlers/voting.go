// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/house-vote/auth"
	"github.com/danielhkuo/house-vote/cliparse"
	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/middleware"
	"github.com/danielhkuo/house-vote/models"
)

type VotingHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewVotingHandler(svc *election.Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, cfg: cfg}
}

// resolveSession applies the session precedence: request body, then the
// header or cookie the client persisted, then a new ID.
func (h *VotingHandler) resolveSession(r *http.Request, explicit, voterType string) election.SessionContext {
	id, generated := election.ResolveSessionID(explicit, middleware.SessionIDFromRequest(r), auth.GenerateSessionID)
	if generated {
		slog.Debug("generated voter session", "origin", h.voterOrigin(r))
	}
	return election.NewSessionContext(id, voterType)
}

// voterOrigin is the salted hash of the client IP; the raw address is
// never stored or logged.
func (h *VotingHandler) voterOrigin(r *http.Request) string {
	return auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
}

// CreateSession handles POST /sessions
func (h *VotingHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	// An empty body is allowed; everything is optional
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sc := h.resolveSession(r, req.SessionID, req.VoterType)
	if err := auth.ValidSessionID(sc.ID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.svc.CreateVoterSession(r.Context(), sc)
	if !res.Success {
		middleware.JSONResponse(w, http.StatusInternalServerError, res)
		return
	}

	middleware.SetSessionCookie(w, r, sc.ID)
	middleware.JSONResponse(w, http.StatusCreated, res)
}

// CheckSession handles GET /sessions/{id}
func (h *VotingHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	res := h.svc.CheckVoterSession(r.Context(), r.PathValue("id"))
	if !res.Success {
		middleware.JSONResponse(w, http.StatusInternalServerError, res)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, res)
}

// SubmitVote handles POST /votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sc := h.resolveSession(r, req.SessionID, req.VoterType)

	res := h.svc.SubmitVote(r.Context(), election.VoteRequest{
		Session:       sc,
		CandidateID:   req.CandidateID,
		CandidateName: req.CandidateName,
		House:         req.House,
		Standard:      req.Standard,
		VoterOrigin:   h.voterOrigin(r),
	})

	if auth.ValidSessionID(sc.ID) == nil {
		middleware.SetSessionCookie(w, r, sc.ID)
	}
	middleware.JSONResponse(w, voteStatusCode(res.Status), res)
}

func voteStatusCode(status models.VoteStatus) int {
	switch status {
	case models.VoteCast:
		return http.StatusCreated
	case models.VoteInvalid:
		return http.StatusBadRequest
	case models.VoteAlreadyVoted:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
