// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

  - Candidate: a candidate with its running vote tally
  - VoterSession: a self-declared voter session and the candidates it voted for
  - SessionUpdate: fields merged by a session upsert
  - Vote: an immutable ledger entry

# Request Types

  - SubmitVoteRequest: candidate_id, candidate_name, house, standard, voter_type, session_id
  - CreateSessionRequest: voter_type, session_id

# Response Types

Core operations never fail with a raw error; they return structured results:

  - VoteResult: success, status, message, points
  - SessionCheckResult: success, session (null when unknown)
  - CreateSessionResult: success, session_id
  - InitResult: success, message
  - ErrorResponse: error, message

# Constants

Houses:

	HouseRed    = "red"
	HouseBlue   = "blue"
	HouseGreen  = "green"
	HouseYellow = "yellow"

Voter types and their weights:

	VoterStudent = "student"  // 1 point
	VoterTeacher = "teacher"  // 50 points

Vote statuses:

	VoteCast         = "cast"
	VoteInvalid      = "invalid"
	VoteAlreadyVoted = "already_voted"
	VoteError        = "error"
*/
package models
