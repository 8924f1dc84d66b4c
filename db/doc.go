// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - person: Roster of participants (duplicate names tolerated)
  - assignment: One committed giver→receiver pair per giver

# Constraints

assignment carries the correctness-critical constraints:

  - UNIQUE (giver_lookup): at most one assignment per giver identity
  - UNIQUE (receiver_lookup): each participant receives at most once
  - CHECK (giver_lookup <> receiver_lookup): no self-assignment

Both lookup columns hold one-way HMAC tokens (see package codec), so
the table is queryable by identity without storing names in the clear.
The encoded columns hold randomized AES-GCM ciphertext and are never
used for equality search.

# Portability

Defaults use CURRENT_TIMESTAMP so the same DDL runs on SQLite and
PostgreSQL.
*/
package db
