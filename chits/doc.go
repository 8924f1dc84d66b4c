// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package chits turns an eligible pool into a randomized board layout
and guards the one-shot reveal.

Layout scatters chits across a normalized 0-100 board with a minimum
separation, using bounded rejection sampling: after MaxPlaceAttempts
the last position is kept even if it overlaps, so dense pools degrade
visually instead of looping.

Session is an explicit per-session value held by the caller (never
global state): one reveal per session, enforced with a compare-and-swap
so concurrent taps race safely. The ledger's own per-giver uniqueness
is the real guarantee; the session flag just stops the UI from offering
a second pick.
*/
package chits
