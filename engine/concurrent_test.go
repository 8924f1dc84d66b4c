// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// TestConcurrentSameGiverCommits verifies that N simultaneous commits
// for the same giver with distinct receivers produce exactly one
// success; the rest resolve to AlreadyAssigned with the winner's
// record attached
func TestConcurrentSameGiverCommits(t *testing.T) {
	eng, cleanup := setupEngine(t)
	defer cleanup()

	receivers := []string{"Bob", "Carol", "Dave", "Erin", "Frank"}
	seedRoster(t, eng, append([]string{"Alice"}, receivers...)...)

	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < len(receivers); i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			_, err := eng.Commit(context.Background(), "Alice", receivers[idx], Meta{})
			if err == nil {
				successCount.Add(1)
				return
			}

			var conflict *ConflictError
			if errors.As(err, &conflict) && conflict.Reason == AlreadyAssigned {
				if conflict.Existing == nil {
					t.Error("AlreadyAssigned conflict missing the winning assignment")
				}
				conflictCount.Add(1)
				return
			}
			t.Errorf("Unexpected error: %v", err)
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful commit, got %d", successCount.Load())
	}
	if int(conflictCount.Load()) != len(receivers)-1 {
		t.Errorf("Expected %d AlreadyAssigned conflicts, got %d", len(receivers)-1, conflictCount.Load())
	}

	// The ledger holds exactly one record for Alice
	res, err := eng.CheckExisting(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("CheckExisting failed: %v", err)
	}
	if !res.Assigned {
		t.Error("Expected Alice to have an assignment")
	}
}

// TestConcurrentSameReceiverCommits verifies that two givers racing
// for the same receiver produce exactly one success and one
// ReceiverTaken
func TestConcurrentSameReceiverCommits(t *testing.T) {
	eng, cleanup := setupEngine(t)
	defer cleanup()

	seedRoster(t, eng, "Alice", "Bob", "Carol")

	givers := []string{"Alice", "Carol"}
	var successCount, takenCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < len(givers); i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			_, err := eng.Commit(context.Background(), givers[idx], "Bob", Meta{})
			if err == nil {
				successCount.Add(1)
				return
			}

			var conflict *ConflictError
			if errors.As(err, &conflict) && conflict.Reason == ReceiverTaken {
				takenCount.Add(1)
				return
			}
			t.Errorf("Unexpected error: %v", err)
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful commit, got %d", successCount.Load())
	}
	if takenCount.Load() != 1 {
		t.Errorf("Expected exactly 1 ReceiverTaken, got %d", takenCount.Load())
	}

	// The loser re-fetches the pool: Bob must be gone from it
	for _, giver := range givers {
		res, err := eng.CheckExisting(context.Background(), giver)
		if err != nil {
			t.Fatalf("CheckExisting failed: %v", err)
		}
		if !res.Assigned {
			for _, p := range res.Pool {
				if p == "Bob" {
					t.Errorf("Bob still in %s's pool after being taken", giver)
				}
			}
		}
	}
}

// TestConcurrentDistinctGivers verifies that a full exchange can run
// with every giver committing at once
func TestConcurrentDistinctGivers(t *testing.T) {
	eng, cleanup := setupEngine(t)
	defer cleanup()

	names := []string{"Alice", "Bob", "Carol", "Dave"}
	seedRoster(t, eng, names...)

	// Ring picks: everyone targets the next name, so no receiver
	// collisions
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := range names {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			receiver := names[(idx+1)%len(names)]
			if _, err := eng.Commit(context.Background(), names[idx], receiver, Meta{}); err != nil {
				t.Errorf("Commit %s→%s failed: %v", names[idx], receiver, err)
				return
			}
			successCount.Add(1)
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != len(names) {
		t.Errorf("Expected %d successful commits, got %d", len(names), successCount.Load())
	}
}
