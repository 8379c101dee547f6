// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the house election server.

Students and teachers vote for house candidates (red, blue, green,
yellow). A student vote is worth 1 point and a teacher vote 50. Each
voter session may vote once per house, or once per candidate with
-vote-limit candidate.

# Commands

	house-vote [serve|seed|results|export] [flags]

  - serve (default): run the HTTP API; an empty database is seeded first
  - seed: reset to the default roster, clearing every vote
  - results: print the results table
  - export: write election-results-YYYY-MM-DD.json

# Configuration

Settings come from flags, then environment variables, then a .env file
in the working directory:

	ADMIN_KEY=... IP_HASH_SALT=... go run . -t sqlite -d house-vote.db

Required settings:

  - ADMIN_KEY (--admin-key): Secret for /admin routes
  - IP_HASH_SALT (--ip-salt): Secret for hashing voter IPs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default), postgres or bolt
  - DATABASE_URL (-d): connection string, sqlite file or bolt directory
  - VOTE_LIMIT (--vote-limit): house (default) or candidate

# Architecture

  - election: vote coordinator, service facade, result aggregation
  - db: SQL store (sqlite, postgres)
  - boltstore: embedded bbolt store
  - handlers, router, middleware: JSON HTTP API
  - metrics: Prometheus collectors served on /metrics
  - report: terminal tables for the CLI
  - models: domain, request and response types
  - auth: session IDs, admin key check, IP hashing
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
