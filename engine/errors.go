// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers malformed input: blank names, self-picks,
	// or a chosen receiver that is not on the roster. Rejected before
	// any write.
	ErrValidation = errors.New("validation failed")

	// ErrStorage wraps failures of the underlying store. Never retried
	// by the engine; retry policy belongs to the caller.
	ErrStorage = errors.New("storage unavailable")
)

// ConflictReason says which race a rejected commit lost.
type ConflictReason string

const (
	// AlreadyAssigned: the giver already has a committed assignment.
	// The existing record is authoritative; do not retry.
	AlreadyAssigned ConflictReason = "already_assigned"

	// ReceiverTaken: another giver committed the same receiver first.
	// The caller must recompute the pool and pick again.
	ReceiverTaken ConflictReason = "receiver_taken"
)

// ConflictError is returned by Commit when re-validation or the
// conditional append fails. For AlreadyAssigned, Existing carries the
// winning assignment so callers can show it without another lookup.
type ConflictError struct {
	Reason   ConflictReason
	Existing *Assignment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("commit conflict: %s", e.Reason)
}
