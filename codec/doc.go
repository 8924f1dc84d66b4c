// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package codec derives identity tokens and encrypts participant names.

# Two Encodings

Every name gets two representations with opposite properties:

  - LookupToken: deterministic HMAC-SHA256 of the name, keyed by the
    process secret. Searchable (same name, same token) but one-way.
  - Encode: AES-256-GCM ciphertext under a PBKDF2-derived key with a
    fresh random salt and nonce per call. Reversible with the key, but
    never the same twice, so stored values cannot be matched by equality.

Splitting the two lets the assignment ledger answer "does this giver
have a record?" by token while names at rest stay confidential.

# Key Handling

The secret key is supplied once at process start (see cliparse). It is
never logged and never stored alongside ciphertext.

# Failure

Decode returns ErrDecode for corrupted, truncated, or wrong-key input.
Callers must surface it: a decode failure means corruption or key
mismatch, never "no assignment".
*/
package codec
