// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chits

import (
	"math/rand/v2"
	"sync/atomic"
)

// Placement constants, in percent of the board
const (
	// FieldMin and FieldSpan bound positions to 5..80 on each axis so
	// chits never clip the board edge
	FieldMin  = 5.0
	FieldSpan = 75.0

	// MinSeparation is the closest two chits may sit
	MinSeparation = 18.0

	// MaxPlaceAttempts caps rejection sampling per chit. Past the cap
	// the last sampled position is accepted; overlap in pathological
	// dense layouts is a tolerated trade-off, not an error.
	MaxPlaceAttempts = 100

	// MaxRotation tilts each chit by up to ±18 degrees
	MaxRotation = 18.0
)

// Chit is one eligible name placed on the board.
type Chit struct {
	Name string
	Left float64
	Top  float64
	Rot  float64
}

// Layout places each pool entry at a random position such that no two
// chits are closer than MinSeparation, using bounded rejection
// sampling. Pass a seeded rng for deterministic output; nil uses the
// shared global source.
func Layout(names []string, rng *rand.Rand) []Chit {
	randFloat := rand.Float64
	if rng != nil {
		randFloat = rng.Float64
	}

	placed := make([]Chit, 0, len(names))
	for _, name := range names {
		var left, top float64
		for attempt := 0; attempt < MaxPlaceAttempts; attempt++ {
			left = FieldMin + randFloat()*FieldSpan
			top = FieldMin + randFloat()*FieldSpan
			if !overlapsAny(placed, left, top) {
				break
			}
		}
		placed = append(placed, Chit{
			Name: name,
			Left: left,
			Top:  top,
			Rot:  -MaxRotation + randFloat()*2*MaxRotation,
		})
	}
	return placed
}

func overlapsAny(placed []Chit, left, top float64) bool {
	for _, c := range placed {
		dx := c.Left - left
		dy := c.Top - top
		if dx*dx+dy*dy < MinSeparation*MinSeparation {
			return true
		}
	}
	return false
}

// Session is the per-session reveal guard: a session may reveal at
// most one chit, no matter which. This is UI-level defense in depth -
// the ledger's per-giver constraint holds even if a caller skips the
// session entirely.
type Session struct {
	revealed atomic.Bool
}

func NewSession() *Session {
	return &Session{}
}

// Reveal claims the session's single reveal. Returns true for exactly
// one caller; every later call is a no-op returning false.
func (s *Session) Reveal() bool {
	return s.revealed.CompareAndSwap(false, true)
}

// Revealed reports whether the session has already used its reveal.
func (s *Session) Revealed() bool {
	return s.revealed.Load()
}
