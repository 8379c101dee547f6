// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the vote-casting core.

# Components

  - Store: candidates with running tallies, voter sessions, the vote
    ledger and vote claims. Implemented by db.Store and boltstore.Store.
  - Coordinator: validates a vote, rejects repeat votes, and commits the
    ledger entry and tally increment in one transaction.
  - Service: the surface handlers and the CLI call. Returns structured
    results instead of errors.
  - Results: read-only aggregation (summary, filtering, export, audit).

# Casting a vote

	coord := election.NewCoordinator(store, election.WithPolicy(election.LimitPerHouse))
	svc := election.NewService(store, coord, logger)
	res := svc.SubmitVote(ctx, election.VoteRequest{
		Session:     election.NewSessionContext(sessionID, "teacher"),
		CandidateID: "12",
		House:       "yellow",
	})

Inside the transaction the coordinator first inserts a vote claim keyed
on (session, house) or (session, candidate), depending on the Policy. A
second claim fails with ErrAlreadyVoted, which makes the claim the real
double-vote guard. The session's voted set is only a fast path and is
updated after commit, with retries.

# Points

Students add 1 point, teachers add 50. Any voter type other than
"teacher" counts as a student.
*/
package election
