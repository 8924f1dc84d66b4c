// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface over the assignment
engine.

# Handlers

  - PeopleHandler: roster management (list, batch add, remove with
    assignment cascade, delete everything)
  - PickHandler: the picker flow - check for an existing assignment or
    serve laid-out chits, then reveal/commit a pick
  - AdminHandler: assignment count and cycle reset

# Error Mapping

Engine errors map onto status codes:

  - ErrValidation → 400
  - ConflictError → 409, with reason already_assigned or
    receiver_taken in the body
  - codec.ErrDecode → 500 (never reported as "no assignment")
  - anything else → 500

Handlers stay thin: all correctness lives in the engine and the
ledger's constraints, so a bypassed or misbehaving client cannot
violate the assignment invariants.
*/
package handlers
