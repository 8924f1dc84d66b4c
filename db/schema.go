// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- People
-- Names are NOT unique: duplicates are tolerated and removal-by-name
-- may affect zero, one, or many rows.
CREATE TABLE IF NOT EXISTS person (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_person_name ON person(name);

-- Assignments
-- The UNIQUE constraints are the concurrency mechanism: a commit is a
-- single conditional INSERT, and the constraint that rejects it tells
-- the engine whether the giver or the receiver lost the race.
CREATE TABLE IF NOT EXISTS assignment (
    id TEXT PRIMARY KEY,
    giver_lookup TEXT NOT NULL UNIQUE,
    giver_encoded TEXT NOT NULL,
    receiver_lookup TEXT NOT NULL UNIQUE,
    receiver_encoded TEXT NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (giver_lookup <> receiver_lookup)
);

CREATE INDEX IF NOT EXISTS idx_assignment_giver_lookup ON assignment(giver_lookup);
`
