// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger stores committed giver→receiver assignments.

# Record Shape

Each record holds the giver and receiver twice: as a deterministic
one-way lookup token (searchable) and as randomized ciphertext
(reversible). See package codec for why the two are split.

# Conditional Append

Append is a single INSERT against two UNIQUE columns:

  - giver_lookup: at most one assignment per giver
  - receiver_lookup: each receiver taken at most once

Because the constraints live in the database, the exactly-one-success
guarantee holds across processes, not just goroutines. A rejected
append is classified as ErrGiverExists or ErrReceiverTaken from the
driver's violation message (sqlite and pq formats both handled), and
the caller decides what each means.

# Steady State

Records are never mutated or deleted during an exchange cycle.
RemoveByParticipant and ClearAll are administrative operations for
roster removal and cycle reset.
*/
package ledger
