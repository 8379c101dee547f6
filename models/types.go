package models

import "time"

// House is one of the four fixed candidate groupings.
type House string

const (
	HouseRed    House = "red"
	HouseBlue   House = "blue"
	HouseGreen  House = "green"
	HouseYellow House = "yellow"
)

// Houses lists every house in display order.
var Houses = []House{HouseRed, HouseBlue, HouseGreen, HouseYellow}

// ParseHouse reports whether s names a known house.
func ParseHouse(s string) (House, bool) {
	switch h := House(s); h {
	case HouseRed, HouseBlue, HouseGreen, HouseYellow:
		return h, true
	}
	return "", false
}

type VoterType string

const (
	VoterStudent VoterType = "student"
	VoterTeacher VoterType = "teacher"
)

// Vote weights per voter role
const (
	StudentPoints = 1
	TeacherPoints = 50
)

// ParseVoterType maps anything that isn't "teacher" to student.
func ParseVoterType(s string) VoterType {
	if VoterType(s) == VoterTeacher {
		return VoterTeacher
	}
	return VoterStudent
}

// Points returns the vote weight for the voter type.
func (v VoterType) Points() int {
	if v == VoterTeacher {
		return TeacherPoints
	}
	return StudentPoints
}

// Vote statuses reported back to callers
type VoteStatus string

const (
	VoteCast         VoteStatus = "cast"
	VoteInvalid      VoteStatus = "invalid"
	VoteAlreadyVoted VoteStatus = "already_voted"
	VoteError        VoteStatus = "error"
)

// Domain types

type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Standard  string    `json:"standard"`
	House     House     `json:"house"`
	Photo     string    `json:"photo"`
	Emoji     string    `json:"emoji"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VoterSession struct {
	SessionID       string     `json:"session_id"`
	VoterType       VoterType  `json:"voter_type"`
	VotedCandidates []string   `json:"voted_candidates"`
	CreatedAt       time.Time  `json:"created_at"`
	LastVoteAt      *time.Time `json:"last_vote_at,omitempty"`
}

// HasVotedFor reports whether candidateID is in the voted set.
func (s VoterSession) HasVotedFor(candidateID string) bool {
	for _, id := range s.VotedCandidates {
		if id == candidateID {
			return true
		}
	}
	return false
}

// SessionUpdate carries the fields merged by a session upsert.
// A nil VotedCandidates leaves the stored set untouched.
type SessionUpdate struct {
	SessionID       string
	VoterType       VoterType
	VotedCandidates []string
	At              time.Time
}

// Vote is an immutable ledger entry
type Vote struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	House         House     `json:"house"`
	Standard      string    `json:"standard"`
	VoterType     VoterType `json:"voter_type"`
	Points        int       `json:"points"`
	SessionID     string    `json:"-"` // Never expose in JSON
	VoterOrigin   string    `json:"-"` // Never expose in JSON
	Timestamp     time.Time `json:"timestamp"`
}

// Request types

type SubmitVoteRequest struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	House         string `json:"house"`
	Standard      string `json:"standard"`
	VoterType     string `json:"voter_type"`
	SessionID     string `json:"session_id"`
}

type CreateSessionRequest struct {
	VoterType string `json:"voter_type"`
	SessionID string `json:"session_id"`
}

// Response types

type VoteResult struct {
	Success bool       `json:"success"`
	Status  VoteStatus `json:"status"`
	Message string     `json:"message"`
	Points  int        `json:"points,omitempty"`
}

type SessionView struct {
	VoterType       VoterType `json:"voter_type"`
	VotedCandidates []string  `json:"voted_candidates"`
}

type SessionCheckResult struct {
	Success bool         `json:"success"`
	Session *SessionView `json:"session"`
}

type CreateSessionResult struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id,omitempty"`
}

type InitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
