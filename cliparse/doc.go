// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

# Precedence

CLI flags win over environment variables. Defaults apply last.

# Settings

  - -p / PORT: server port (default 3323)
  - -d / DATABASE_URL: database connection string (required)
  - -t / DATABASE_TYPE: sqlite or postgres (default sqlite)
  - -key / ASSIGNMENT_KEY: secret key for the identity codec (required)

ASSIGNMENT_KEY is the process-wide codec secret. It must never be
logged or written next to ciphertext; cliparse only carries it from the
environment to the codec constructor.
*/
package cliparse
