// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/house-vote/cliparse"
	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/handlers"
	"github.com/danielhkuo/house-vote/middleware"
)

// NewRouter registers every route. A nil gatherer leaves /metrics out.
func NewRouter(svc *election.Service, cfg cliparse.Config, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	votingHandler := handlers.NewVotingHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter sessions and voting (public)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(votingHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(votingHandler.CheckSession))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.SubmitVote))

	// Results (public)
	mux.HandleFunc("GET /houses/{house}/candidates", middleware.WithLogging(resultsHandler.HouseCandidates))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.Results))
	mux.HandleFunc("GET /results/summary", middleware.WithLogging(resultsHandler.Summary))

	// Admin operations
	mux.HandleFunc("POST /admin/initialize", admin(adminHandler.Initialize))
	mux.HandleFunc("GET /admin/export", admin(adminHandler.Export))
	mux.HandleFunc("GET /admin/audit", admin(adminHandler.Audit))

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("house-vote API v1"))
	})

	return mux
}
