// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/chit-pick/codec"
	"github.com/google/uuid"
)

var (
	// ErrGiverExists means the conditional append lost a race on the
	// giver: a record with the same giver token already exists.
	ErrGiverExists = errors.New("giver already has an assignment")

	// ErrReceiverTaken means the conditional append lost a race on the
	// receiver: another committed record already names this receiver.
	ErrReceiverTaken = errors.New("receiver already assigned to someone")
)

// Assignment is an immutable committed record. Lookup columns hold
// one-way tokens; encoded columns hold randomized ciphertext.
type Assignment struct {
	ID              string
	GiverLookup     string
	GiverEncoded    string
	ReceiverLookup  string
	ReceiverEncoded string
	IPHash          *string
	UserAgent       *string
	CreatedAt       time.Time
}

// Store is the append-only record store of committed (giver, receiver)
// pairs. All mutation goes through Append; the table's UNIQUE
// constraints are the synchronization point for concurrent commits.
type Store struct {
	db    *sql.DB
	codec *codec.Codec
}

func New(db *sql.DB, c *codec.Codec) *Store {
	return &Store{db: db, codec: c}
}

// FindByGiverToken returns the assignment for a giver token, or nil if
// the giver has no record yet.
func (s *Store) FindByGiverToken(ctx context.Context, token string) (*Assignment, error) {
	var a Assignment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, giver_lookup, giver_encoded, receiver_lookup, receiver_encoded, ip_hash, user_agent, created_at
		FROM assignment WHERE giver_lookup = $1
	`, token).Scan(&a.ID, &a.GiverLookup, &a.GiverEncoded, &a.ReceiverLookup, &a.ReceiverEncoded, &a.IPHash, &a.UserAgent, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}
	return &a, nil
}

// AllReceivers decodes the receiver of every committed record. Linear
// in ledger size, which is bounded by roster size. A decode failure is
// surfaced, never skipped: it means corruption or a key mismatch.
func (s *Store) AllReceivers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT receiver_encoded FROM assignment`)
	if err != nil {
		return nil, fmt.Errorf("failed to query receivers: %w", err)
	}
	defer rows.Close()

	var receivers []string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("failed to scan receiver: %w", err)
		}
		name, err := s.codec.Decode(encoded)
		if err != nil {
			return nil, err
		}
		receivers = append(receivers, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read receivers: %w", err)
	}

	return receivers, nil
}

// Append durably stores a new record. This is the conditional append:
// a single INSERT whose UNIQUE constraints guarantee that concurrent
// commits for the same giver or the same receiver produce exactly one
// success. A rejected append is classified as ErrGiverExists or
// ErrReceiverTaken.
func (s *Store) Append(ctx context.Context, a *Assignment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignment (id, giver_lookup, giver_encoded, receiver_lookup, receiver_encoded, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.GiverLookup, a.GiverEncoded, a.ReceiverLookup, a.ReceiverEncoded, a.IPHash, a.UserAgent, a.CreatedAt)

	if err != nil {
		if conflict := classifyConstraint(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// classifyConstraint maps a driver's uniqueness violation to the
// ledger's conflict errors. Covers both the sqlite and pq message
// formats.
func classifyConstraint(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "assignment.giver_lookup") ||
		strings.Contains(msg, "assignment_giver_lookup_key"):
		return ErrGiverExists
	case strings.Contains(msg, "assignment.receiver_lookup") ||
		strings.Contains(msg, "assignment_receiver_lookup_key"):
		return ErrReceiverTaken
	}
	return nil
}

// RemoveByParticipant deletes every record where the participant
// appears as giver or receiver, identified by their lookup tokens.
// Administrative operation, used when a person leaves the roster.
func (s *Store) RemoveByParticipant(ctx context.Context, giverToken, receiverToken string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM assignment WHERE giver_lookup = $1 OR receiver_lookup = $2
	`, giverToken, receiverToken)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted assignments: %w", err)
	}
	return n, nil
}

// ClearAll is the administrative bulk delete that starts a new
// exchange cycle.
func (s *Store) ClearAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assignment`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear assignments: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared assignments: %w", err)
	}
	return n, nil
}

// Count reports how many assignments are committed.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignment`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}
