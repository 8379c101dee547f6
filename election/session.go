// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "github.com/danielhkuo/house-vote/models"

// SessionContext identifies the voter for a core call. Callers resolve it
// themselves; the core never reads cookies, headers or client storage.
type SessionContext struct {
	ID        string
	VoterType models.VoterType
}

// NewSessionContext normalizes the voter type; anything other than
// "teacher" is a student.
func NewSessionContext(id, voterType string) SessionContext {
	return SessionContext{ID: id, VoterType: models.ParseVoterType(voterType)}
}

// ResolveSessionID picks the session ID by precedence: explicit value,
// then a previously persisted one, then a freshly generated one.
func ResolveSessionID(explicit, persisted string, generate func() string) (id string, generated bool) {
	if explicit != "" {
		return explicit, false
	}
	if persisted != "" {
		return persisted, false
	}
	return generate(), true
}
