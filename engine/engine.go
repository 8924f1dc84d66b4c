// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/chit-pick/codec"
	"github.com/danielhkuo/chit-pick/ledger"
)

// Roster supplies the current participant names. Only the read
// contract is consumed here.
type Roster interface {
	List(ctx context.Context) ([]string, error)
}

// Ledger is the committed-assignment store. Append must be the
// conditional append: exactly one of any set of racing commits
// succeeds, the rest fail with ledger.ErrGiverExists or
// ledger.ErrReceiverTaken.
type Ledger interface {
	FindByGiverToken(ctx context.Context, token string) (*ledger.Assignment, error)
	AllReceivers(ctx context.Context) ([]string, error)
	Append(ctx context.Context, a *ledger.Assignment) error
}

// Assignment is a committed pair in plain names, as returned to
// callers. Raw ledger records stay inside the engine.
type Assignment struct {
	Giver     string
	Receiver  string
	CreatedAt time.Time
}

// CheckResult is the outcome of CheckExisting: either the stored
// assignment (Assigned true) or the eligible pool for a fresh pick.
type CheckResult struct {
	Assigned bool
	Receiver string
	Pool     []string
}

// Meta carries optional audit fields stored alongside a commit.
type Meta struct {
	IPHash    string
	UserAgent string
}

// Engine coordinates assignment checks and commits. Stateless between
// calls: the ledger's constraints are the only synchronization point,
// so any number of engines across processes stay consistent.
type Engine struct {
	roster Roster
	ledger Ledger
	codec  *codec.Codec
}

func New(r Roster, l Ledger, c *codec.Codec) *Engine {
	return &Engine{roster: r, ledger: l, codec: c}
}

// CheckExisting reports whether the named giver already has a
// committed assignment. If so the stored receiver is decoded and
// returned; otherwise the eligible pool is computed fresh.
func (e *Engine) CheckExisting(ctx context.Context, name string) (*CheckResult, error) {
	giver, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	existing, err := e.findAssignment(ctx, giver)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CheckResult{Assigned: true, Receiver: existing.Receiver}, nil
	}

	pool, err := e.EligiblePool(ctx, giver)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Pool: pool}, nil
}

// EligiblePool returns the names the giver may draw: the roster minus
// the giver themselves minus every already-committed receiver.
// Computed fresh on every call - each commit changes the pool for
// everyone else, so caching would serve stale candidates.
func (e *Engine) EligiblePool(ctx context.Context, giver string) ([]string, error) {
	people, err := e.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	receivers, err := e.ledger.AllReceivers(ctx)
	if err != nil {
		if errors.Is(err, codec.ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	taken := make(map[string]bool, len(receivers))
	for _, r := range receivers {
		taken[r] = true
	}

	// Duplicate roster names stay duplicated in the pool; the first
	// successful commit consumes the name for everyone.
	pool := make([]string, 0, len(people))
	for _, p := range people {
		if p != giver && !taken[p] {
			pool = append(pool, p)
		}
	}
	return pool, nil
}

// Commit assigns chosenReceiver to giver, exactly once. The pool is
// re-derived here rather than trusted from the caller, and the final
// word belongs to the ledger's conditional append: of any concurrent
// commits for the same giver or the same receiver, exactly one lands.
func (e *Engine) Commit(ctx context.Context, giverName, chosenReceiver string, meta Meta) (*Assignment, error) {
	giver, err := cleanName(giverName)
	if err != nil {
		return nil, err
	}
	receiver, err := cleanName(chosenReceiver)
	if err != nil {
		return nil, err
	}
	if receiver == giver {
		return nil, fmt.Errorf("%w: cannot assign yourself", ErrValidation)
	}

	// Re-check the giver before computing the pool. A stale UI may
	// re-submit after someone already picked.
	existing, err := e.findAssignment(ctx, giver)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ConflictError{Reason: AlreadyAssigned, Existing: existing}
	}

	pool, err := e.EligiblePool(ctx, giver)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(pool, receiver) {
		// Distinguish "taken since you looked" from "never on the roster"
		people, err := e.roster.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if slices.Contains(people, receiver) {
			return nil, &ConflictError{Reason: ReceiverTaken}
		}
		return nil, fmt.Errorf("%w: %q is not a participant", ErrValidation, receiver)
	}

	record, err := e.encodeRecord(giver, receiver, meta)
	if err != nil {
		return nil, err
	}

	err = e.ledger.Append(ctx, record)
	switch {
	case err == nil:
		slog.Info("assignment committed", "giver_token", record.GiverLookup)
		return &Assignment{Giver: giver, Receiver: receiver, CreatedAt: record.CreatedAt}, nil

	case errors.Is(err, ledger.ErrGiverExists):
		// Lost a same-giver race: the winner's record is authoritative
		winner, ferr := e.findAssignment(ctx, giver)
		if ferr != nil {
			return nil, ferr
		}
		return nil, &ConflictError{Reason: AlreadyAssigned, Existing: winner}

	case errors.Is(err, ledger.ErrReceiverTaken):
		return nil, &ConflictError{Reason: ReceiverTaken}

	default:
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

// findAssignment looks up and decodes the giver's committed record,
// if any.
func (e *Engine) findAssignment(ctx context.Context, giver string) (*Assignment, error) {
	record, err := e.ledger.FindByGiverToken(ctx, e.codec.LookupToken(giver))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if record == nil {
		return nil, nil
	}

	receiver, err := e.codec.Decode(record.ReceiverEncoded)
	if err != nil {
		// Never mask a decode failure as "no assignment": it means
		// corruption or a key mismatch
		return nil, err
	}

	return &Assignment{Giver: giver, Receiver: receiver, CreatedAt: record.CreatedAt}, nil
}

func (e *Engine) encodeRecord(giver, receiver string, meta Meta) (*ledger.Assignment, error) {
	giverEnc, err := e.codec.Encode(giver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	receiverEnc, err := e.codec.Encode(receiver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	record := &ledger.Assignment{
		GiverLookup:     e.codec.LookupToken(giver),
		GiverEncoded:    giverEnc,
		ReceiverLookup:  e.codec.LookupToken(receiver),
		ReceiverEncoded: receiverEnc,
	}
	if meta.IPHash != "" {
		record.IPHash = &meta.IPHash
	}
	if meta.UserAgent != "" {
		record.UserAgent = &meta.UserAgent
	}
	return record, nil
}

func cleanName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	return trimmed, nil
}
