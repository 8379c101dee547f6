// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the house election API.

# Handler Types

Each handler is a thin struct over *election.Service:

  - VotingHandler: voter sessions and vote submission
  - ResultsHandler: house rosters, results and the summary
  - AdminHandler: reset, export and audit

	votingHandler := handlers.NewVotingHandler(svc, cfg)

# Voter Sessions

The session ID is picked in this order: session_id in the request body,
the X-Session-ID header, the voter_session cookie, and finally a fresh
UUID. The resolved ID is written back as the voter_session cookie.

	POST /sessions      → CreateSession
	GET  /sessions/{id} → CheckSession (null session when unknown)

# Voting

	POST /votes → SubmitVote

The vote status maps onto the HTTP status:

	cast          201
	invalid       400
	already_voted 409
	error         500

The client IP is stored only as a salted hash (IP_HASH_SALT).

# Results

	GET /houses/{house}/candidates
	GET /results?house=&q=&sort=votes|name|house&order=asc|desc
	GET /results/summary

# Admin

Admin routes require the X-Admin-Key header; see middleware.RequireAdmin.

	POST /admin/initialize
	GET  /admin/export
	GET  /admin/audit
*/
package handlers
