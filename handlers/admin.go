// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/middleware"
)

// AdminHandler serves the X-Admin-Key protected routes. The router applies
// middleware.RequireAdmin; the handlers themselves do not check the key.
type AdminHandler struct {
	svc *election.Service
	now func() time.Time
}

func NewAdminHandler(svc *election.Service) *AdminHandler {
	return &AdminHandler{svc: svc, now: time.Now}
}

type auditResponse struct {
	Consistent bool                     `json:"consistent"`
	Mismatches []election.TallyMismatch `json:"mismatches"`
}

// Initialize handles POST /admin/initialize
func (h *AdminHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	res := h.svc.InitializeElectionData(r.Context())
	if !res.Success {
		middleware.JSONResponse(w, http.StatusInternalServerError, res)
		return
	}

	slog.Info("election reset by admin")
	middleware.JSONResponse(w, http.StatusOK, res)
}

// Export handles GET /admin/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("election-results-%s.json", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	middleware.JSONResponse(w, http.StatusOK, h.svc.Export(r.Context()))
}

// Audit handles GET /admin/audit
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	mismatches, err := h.svc.Audit(r.Context())
	if err != nil {
		slog.Error("failed to audit tallies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to audit tallies")
		return
	}

	if len(mismatches) > 0 {
		slog.Warn("tally drift detected", "candidates", len(mismatches))
	}
	if mismatches == nil {
		mismatches = []election.TallyMismatch{}
	}
	middleware.JSONResponse(w, http.StatusOK, auditResponse{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
	})
}
