// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the voting core.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// votesCast counts committed votes per house and voter type
	votesCast *prometheus.CounterVec

	// pointsAwarded sums weighted points per house
	pointsAwarded *prometheus.CounterVec

	// rejections counts votes refused before or during the transaction
	rejections *prometheus.CounterVec

	// sessionUpdateFailures counts votes whose session update never succeeded
	sessionUpdateFailures prometheus.Counter

	// voteDuration is an histogram of the full vote transaction time
	voteDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which tests rely on.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		votesCast: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "election",
				Name:      "votes_cast_total",
				Help:      "Number of committed votes",
			},
			[]string{"house", "voter_type"},
		),
		pointsAwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "election",
				Name:      "points_awarded_total",
				Help:      "Weighted points added to candidate tallies",
			},
			[]string{"house"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "election",
				Name:      "vote_rejections_total",
				Help:      "Number of refused votes by reason",
			},
			[]string{"reason"},
		),
		sessionUpdateFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "election",
				Name:      "session_update_failures_total",
				Help:      "Votes whose voter session could not be updated after commit",
			},
		),
		voteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "vote_duration_seconds",
			Help:      "Indicates how much time a vote transaction took",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.votesCast,
			m.pointsAwarded,
			m.rejections,
			m.sessionUpdateFailures,
			m.voteDuration,
		)
	}
	return m
}

// VoteCast records a committed vote
func (m *Metrics) VoteCast(house, voterType string, points int) {
	if m == nil {
		return
	}
	m.votesCast.With(prometheus.Labels{"house": house, "voter_type": voterType}).Inc()
	m.pointsAwarded.With(prometheus.Labels{"house": house}).Add(float64(points))
}

// VoteRejected records a refused vote
func (m *Metrics) VoteRejected(reason string) {
	if m == nil {
		return
	}
	m.rejections.With(prometheus.Labels{"reason": reason}).Inc()
}

func (m *Metrics) SessionUpdateFailed() {
	if m == nil {
		return
	}
	m.sessionUpdateFailures.Inc()
}

// TimeSince observes the elapsed time of a vote transaction
func (m *Metrics) TimeSince(start time.Time) {
	if m == nil {
		return
	}
	m.voteDuration.Observe(time.Since(start).Seconds())
}
