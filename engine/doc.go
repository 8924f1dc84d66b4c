// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine coordinates gift-exchange assignments.

# Per-Giver Flow

	CheckExisting(name)
	  ├─ record found → decoded receiver, terminal
	  └─ no record   → eligible pool = roster \ {self} \ {taken receivers}

	Commit(giver, receiver)
	  1. validate names, reject self-picks
	  2. re-check the giver has no record
	  3. re-derive the pool; the caller's copy is never trusted
	  4. conditional append (exactly one writer wins)

# Conflicts

A rejected commit returns *ConflictError:

  - AlreadyAssigned: the giver's existing record won; it is attached
    to the error and is authoritative. Not retryable.
  - ReceiverTaken: another giver landed the same receiver first. The
    caller recomputes the pool and the user picks again; the engine
    never substitutes a different receiver silently.

# Guarantees

No self-assignment, at most one assignment per giver, each receiver
taken at most once - all enforced by the ledger's constraints, so they
hold across concurrent sessions and separate processes. Reads may see
a slightly stale pool; Commit's re-validation plus the conditional
append make that harmless.

Storage failures surface as ErrStorage without retry. Decode failures
propagate as codec.ErrDecode and are never treated as "no assignment".
*/
package engine
