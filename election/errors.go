// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrInvalidVote       = errors.New("invalid vote")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrHouseMismatch     = errors.New("candidate does not belong to house")
	ErrSessionNotFound   = errors.New("voter session not found")
	ErrInvalidPoints     = errors.New("points must be positive")
)
