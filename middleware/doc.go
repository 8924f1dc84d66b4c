// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Helpers

  - WithLogging: request start/completion logging with duration
  - JSONResponse / ErrorResponse / ConflictResponse: JSON writers
  - ParseJSONBody: request body decoding
  - CORS: cross-origin support for the frontend
  - GetClientIP: client IP extraction behind proxies

ConflictResponse carries a reason field (already_assigned,
receiver_taken) so the picker UI can decide between showing the stored
assignment and asking the user to pick a different chit.
*/
package middleware
