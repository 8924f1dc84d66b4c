// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types.

# Request Types

  - AddPeopleRequest: batch of names to add to the roster
  - CheckRequest: claimed giver name for an assignment lookup
  - RevealRequest: giver plus the chit they picked

# Response Types

  - CheckResponse: either the stored receiver (assigned=true) or the
    eligible pool laid out as chits
  - RevealResponse: the committed receiver and timestamp
  - ErrorResponse: error plus an optional machine-readable reason
    (already_assigned, receiver_taken) for 409 conflicts

Raw ledger records are never serialized; clients only ever see plain
names from decoded fields.
*/
package models
