// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/metrics"
	"github.com/danielhkuo/house-vote/middleware"
	"github.com/danielhkuo/house-vote/models"
	"github.com/danielhkuo/house-vote/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *prometheus.Registry) {
	t.Helper()

	store := testutil.SetupTestStore(t)
	reg := prometheus.NewRegistry()
	svc, _ := testutil.NewTestService(store, election.WithMetrics(metrics.New("housevote", reg)))
	return NewRouter(svc, testutil.GetTestConfig(), reg), reg
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := serve(mux, httptest.NewRequest("GET", "/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := serve(mux, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "house-vote API v1" {
		t.Errorf("Unexpected root body '%s'", w.Body.String())
	}

	w = serve(mux, httptest.NewRequest("GET", "/nope", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/votes"},
		{"DELETE", "/sessions/abc"},
		{"GET", "/admin/initialize"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil))
			testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
		})
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	mux, _ := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/admin/initialize"},
		{"GET", "/admin/export"},
		{"GET", "/admin/audit"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(rt.method, rt.path, nil))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			w = serve(mux, testutil.MakeRequest(rt.method, rt.path, nil,
				map[string]string{middleware.AdminKeyHeader: "wrong"}))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			w = serve(mux, testutil.MakeRequest(rt.method, rt.path, nil,
				map[string]string{middleware.AdminKeyHeader: testutil.TestAdminKey}))
			testutil.AssertStatus(t, w, http.StatusOK)
		})
	}
}

// TestElectionWorkflow drives the whole API:
// 1. Admin seeds the election
// 2. A student and a teacher vote
// 3. The student repeats a vote in the same house
// 4. Results, audit and metrics agree
func TestElectionWorkflow(t *testing.T) {
	mux, _ := newTestRouter(t)
	adminHeaders := map[string]string{middleware.AdminKeyHeader: testutil.TestAdminKey}

	// Step 1
	w := serve(mux, testutil.MakeRequest("POST", "/admin/initialize", nil, adminHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(mux, httptest.NewRequest("GET", "/houses/yellow/candidates", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var yellow []models.Candidate
	testutil.AssertJSON(t, w, &yellow)
	if len(yellow) == 0 {
		t.Fatal("Expected yellow candidates after seeding")
	}
	target := yellow[0]

	// Step 2: the student gets a cookie from POST /sessions and votes with it
	w = serve(mux, testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{VoterType: "student"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}
	student := cookies[0]

	req := testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{
		CandidateID: target.ID, House: "yellow", VoterType: "student",
	}, nil)
	req.AddCookie(student)
	w = serve(mux, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(mux, testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{
		CandidateID: target.ID, House: "yellow", VoterType: "teacher", SessionID: "teacher-1",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var teacherResult models.VoteResult
	testutil.AssertJSON(t, w, &teacherResult)
	if teacherResult.Points != models.TeacherPoints {
		t.Errorf("Expected %d points, got %d", models.TeacherPoints, teacherResult.Points)
	}

	// Step 3
	req = testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{
		CandidateID: yellow[1].ID, House: "yellow", VoterType: "student",
	}, nil)
	req.AddCookie(student)
	w = serve(mux, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = serve(mux, httptest.NewRequest("GET", "/sessions/"+student.Value, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var check models.SessionCheckResult
	testutil.AssertJSON(t, w, &check)
	if check.Session == nil || len(check.Session.VotedCandidates) != 1 {
		t.Errorf("Expected one voted candidate, got %+v", check.Session)
	}

	// Step 4
	w = serve(mux, httptest.NewRequest("GET", "/results/summary", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var summary election.Summary
	testutil.AssertJSON(t, w, &summary)
	if summary.TotalVotes != 51 {
		t.Errorf("Expected 51 total votes, got %d", summary.TotalVotes)
	}
	if summary.Leader == nil || summary.Leader.ID != target.ID {
		t.Errorf("Expected %s to lead, got %+v", target.ID, summary.Leader)
	}

	w = serve(mux, testutil.MakeRequest("GET", "/admin/audit", nil, adminHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"consistent":true`) {
		t.Errorf("Expected consistent audit, got %s", w.Body.String())
	}

	w = serve(mux, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, `housevote_election_points_awarded_total{house="yellow"} 51`) {
		t.Errorf("Expected points metric in /metrics output")
	}
	if !strings.Contains(body, `housevote_election_vote_rejections_total{reason="already_voted"} 1`) {
		t.Errorf("Expected rejection metric in /metrics output")
	}
}

func TestNoMetricsWithoutGatherer(t *testing.T) {
	store := testutil.SetupTestStore(t)
	svc, _ := testutil.NewTestService(store)
	mux := NewRouter(svc, testutil.GetTestConfig(), nil)

	w := serve(mux, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
