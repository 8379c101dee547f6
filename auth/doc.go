// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers, admin key checks, and IP hashing.

# Session IDs

Voter sessions are self-declared and unauthenticated. When a caller has no
session yet, a random UUID v4 is generated:

	id := auth.GenerateSessionID()

Client-supplied IDs are untrusted and checked before they reach a store:

	if err := auth.ValidSessionID(id); err != nil { ... }

Valid IDs are 1-128 characters of [A-Za-z0-9-_.:].

# Admin Keys

Admin endpoints compare the X-Admin-Key header against the configured
ADMIN_KEY in constant time:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

# IP Hashing

The vote ledger keeps a best-effort network origin for abuse auditing only:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
