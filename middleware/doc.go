// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, status and duration_ms once the handler returns.

# Admin Routes

	mux.HandleFunc("POST /admin/initialize", middleware.RequireAdmin(cfg.AdminKey, h.Initialize))

Requests without a matching X-Admin-Key get 401.

# Voter Sessions

The browser keeps its session ID in the voter_session cookie; other
clients send X-Session-ID. SessionIDFromRequest reads them in that order
(header first) and SetSessionCookie persists a resolved ID.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with headers Content-Type, X-Session-ID and
X-Admin-Key.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Only ever stored as a salted hash on the vote, for abuse auditing.
*/
package middleware
