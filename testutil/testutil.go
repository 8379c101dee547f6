// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/house-vote/cliparse"
	"github.com/danielhkuo/house-vote/db"
	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/models"
)

// TestAdminKey is the admin key used by GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestStore creates a fresh in-memory SQLite store with the full schema
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	conn, err := db.Open(db.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	store := db.NewStore(conn, db.SQLite)
	t.Cleanup(func() { store.Close() })
	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		AdminKey:     TestAdminKey,
		IPHashSalt:   "test-ip-salt",
		VoteLimit:    cliparse.VoteLimitHouse,
	}
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SeedCandidates replaces all candidates in the store
func SeedCandidates(t *testing.T, store election.Store, cands ...models.Candidate) {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	for i := range cands {
		if cands[i].CreatedAt.IsZero() {
			cands[i].CreatedAt = now
		}
		if cands[i].UpdatedAt.IsZero() {
			cands[i].UpdatedAt = now
		}
	}
	if err := store.Reseed(context.Background(), cands); err != nil {
		t.Fatalf("Failed to seed candidates: %v", err)
	}
}

// SeedDefault loads the full default roster
func SeedDefault(t *testing.T, store election.Store) {
	t.Helper()
	SeedCandidates(t, store, election.DefaultCandidates()...)
}

// Candidate builds a candidate with zero votes
func Candidate(id, name string, house models.House) models.Candidate {
	return models.Candidate{ID: id, Name: name, Standard: "10th", House: house}
}

// NewTestService wires a coordinator and service over store with silent logging
// and no retry delay.
func NewTestService(store election.Store, opts ...election.Option) (*election.Service, *election.Coordinator) {
	logger := DiscardLogger()
	opts = append([]election.Option{
		election.WithLogger(logger),
		election.WithSessionRetry(3, 0),
	}, opts...)
	coord := election.NewCoordinator(store, opts...)
	return election.NewService(store, coord, logger), coord
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
