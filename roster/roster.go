// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store holds the current set of participant names. Names are not
// unique: duplicates are tolerated and removal-by-name may affect
// zero, one, or many rows.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns all participant names in insertion order. No caching:
// every call reflects current database state.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM person ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read people: %w", err)
	}

	return names, nil
}

// Add inserts a single participant.
func (s *Store) Add(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO person (id, name, created_at)
		VALUES ($1, $2, $3)
	`, uuid.NewString(), name, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// AddBatch inserts several participants in one transaction, so a
// staged list lands entirely or not at all.
func (s *Store) AddBatch(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO person (id, name, created_at)
			VALUES ($1, $2, $3)
		`, uuid.NewString(), name, time.Now())
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit people: %w", err)
	}
	return nil
}

// RemoveByName deletes every participant with the given name and
// reports how many rows matched. Zero matches is not an error.
func (s *Store) RemoveByName(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM person WHERE name = $1
	`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted people: %w", err)
	}
	return n, nil
}

// DeleteAll removes every participant.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM person`)
	if err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	return nil
}
