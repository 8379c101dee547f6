// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/middleware"
)

type ResultsHandler struct {
	svc *election.Service
}

func NewResultsHandler(svc *election.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// HouseCandidates handles GET /houses/{house}/candidates
// Unknown houses return an empty list, not 404.
func (h *ResultsHandler) HouseCandidates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.svc.GetHouseCandidates(r.Context(), r.PathValue("house")))
}

// Results handles GET /results?house=&q=&sort=&order=
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := election.Filter{
		House:  q.Get("house"),
		Search: q.Get("q"),
		SortBy: q.Get("sort"),
	}

	switch filter.SortBy {
	case "", election.SortVotes, election.SortName, election.SortHouse:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "sort must be votes, name or house")
		return
	}

	switch q.Get("order") {
	case "", "asc":
	case "desc":
		filter.Desc = true
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	// No filter at all keeps the canonical (house, name) order
	if filter == (election.Filter{}) {
		middleware.JSONResponse(w, http.StatusOK, h.svc.GetElectionResults(r.Context()))
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.svc.FilteredResults(r.Context(), filter))
}

// Summary handles GET /results/summary
func (h *ResultsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.svc.Summary(r.Context()))
}
