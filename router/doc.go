// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the house election API.

# Route Registration

	mux := router.NewRouter(svc, cfg, registry)

Passing a nil prometheus.Gatherer leaves out /metrics.

# Endpoints

Health:

	GET /health
	GET /

Voting (public):

	POST /sessions      - Register or refresh a voter session
	GET  /sessions/{id} - Session lookup
	POST /votes         - Cast a vote

Results (public):

	GET /houses/{house}/candidates - House roster by name
	GET /results                   - All candidates, filterable
	GET /results/summary           - Totals, house shares, leader

Admin (requires X-Admin-Key):

	POST /admin/initialize - Reset to the default roster
	GET  /admin/export     - Results download
	GET  /admin/audit      - Tally vs ledger check

Metrics:

	GET /metrics
*/
package router
