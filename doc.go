// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Chit Pick API server.

Chit Pick is a gift-exchange service: each participant draws exactly
one chit naming the person they will gift. No one draws themselves, no
one is drawn twice, and a draw is revealed once and then sticks -
even when the same person races from several browser sessions.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=santa.db ASSIGNMENT_KEY=... go run main.go

Or with flags:

	go run main.go -p 3323 -d santa.db -key "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or postgres connection string
  - ASSIGNMENT_KEY (-key): secret key for the identity codec

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): Server port (default: 3323)

# Architecture

The correctness-critical core is a library; HTTP is a thin skin:

  - codec: keyed lookup tokens + AES-GCM name encryption
  - roster: participant store
  - ledger: append-only assignment store with UNIQUE-constraint
    conditional append
  - engine: the allocation state machine (check → pool → commit)
  - chits: board layout and one-shot reveal sessions
  - handlers/router/middleware: HTTP surface
  - models, cliparse, db, testutil: support packages

See package documentation for each component.
*/
package main
