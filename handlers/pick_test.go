// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/chit-pick/chits"
	"github.com/danielhkuo/chit-pick/models"
	"github.com/danielhkuo/chit-pick/testutil"
)

func TestCheckFreshGiver(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))
	testutil.AddTestPeople(t, db, "Alice", "Bob", "Carol")

	w := httptest.NewRecorder()
	h.Check(w, testutil.MakeRequest("POST", "/pick/check", models.CheckRequest{Name: "Alice"}, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CheckResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Assigned {
		t.Fatal("Expected no assignment for fresh giver")
	}
	if len(resp.Chits) != 2 {
		t.Fatalf("Expected 2 chits, got %d", len(resp.Chits))
	}

	// Chits carry valid placements
	for _, c := range resp.Chits {
		if c.Name == "Alice" {
			t.Error("Giver must not appear in their own pool")
		}
		if c.Left < chits.FieldMin || c.Left > chits.FieldMin+chits.FieldSpan {
			t.Errorf("Chit %q left out of bounds: %f", c.Name, c.Left)
		}
		if math.Abs(c.Rot) > chits.MaxRotation {
			t.Errorf("Chit %q rotation out of bounds: %f", c.Name, c.Rot)
		}
	}
}

func TestCheckValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))

	w := httptest.NewRecorder()
	h.Check(w, testutil.MakeRequest("POST", "/pick/check", models.CheckRequest{Name: "  "}, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRevealThenCheckReturnsStored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))
	testutil.AddTestPeople(t, db, "Alice", "Bob", "Carol")

	// Reveal commits Alice → Bob
	w := httptest.NewRecorder()
	h.Reveal(w, testutil.MakeRequest("POST", "/pick/reveal",
		models.RevealRequest{Name: "Alice", Receiver: "Bob"}, nil))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var reveal models.RevealResponse
	testutil.AssertJSON(t, w, &reveal)
	if reveal.Receiver != "Bob" {
		t.Errorf("Expected receiver Bob, got %q", reveal.Receiver)
	}
	if reveal.RevealedAt.IsZero() {
		t.Error("Expected a reveal timestamp")
	}

	// A later check returns the stored pair, not a fresh pool
	w = httptest.NewRecorder()
	h.Check(w, testutil.MakeRequest("POST", "/pick/check", models.CheckRequest{Name: "Alice"}, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var check models.CheckResponse
	testutil.AssertJSON(t, w, &check)
	if !check.Assigned || check.Receiver != "Bob" {
		t.Errorf("Expected stored assignment to Bob, got %+v", check)
	}
	if len(check.Chits) != 0 {
		t.Errorf("Expected no chits for assigned giver, got %d", len(check.Chits))
	}
}

func TestRevealAlreadyAssigned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))
	testutil.AddTestPeople(t, db, "Alice", "Bob", "Carol")

	w := httptest.NewRecorder()
	h.Reveal(w, testutil.MakeRequest("POST", "/pick/reveal",
		models.RevealRequest{Name: "Alice", Receiver: "Bob"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Second pick by the same giver is rejected
	w = httptest.NewRecorder()
	h.Reveal(w, testutil.MakeRequest("POST", "/pick/reveal",
		models.RevealRequest{Name: "Alice", Receiver: "Carol"}, nil))

	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Reason != models.ReasonAlreadyAssigned {
		t.Errorf("Expected reason %q, got %q", models.ReasonAlreadyAssigned, resp.Reason)
	}

	if n := testutil.CountAssignments(t, db); n != 1 {
		t.Errorf("Expected 1 assignment, got %d", n)
	}
}

func TestRevealReceiverTaken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))
	testutil.AddTestPeople(t, db, "Alice", "Bob", "Carol")

	w := httptest.NewRecorder()
	h.Reveal(w, testutil.MakeRequest("POST", "/pick/reveal",
		models.RevealRequest{Name: "Alice", Receiver: "Bob"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Carol tries to take Bob too
	w = httptest.NewRecorder()
	h.Reveal(w, testutil.MakeRequest("POST", "/pick/reveal",
		models.RevealRequest{Name: "Carol", Receiver: "Bob"}, nil))

	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Reason != models.ReasonReceiverTaken {
		t.Errorf("Expected reason %q, got %q", models.ReasonReceiverTaken, resp.Reason)
	}
}

func TestRevealValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))
	testutil.AddTestPeople(t, db, "Alice", "Bob")

	cases := []struct {
		name string
		req  models.RevealRequest
	}{
		{"blank giver", models.RevealRequest{Name: " ", Receiver: "Bob"}},
		{"blank receiver", models.RevealRequest{Name: "Alice", Receiver: ""}},
		{"self pick", models.RevealRequest{Name: "Alice", Receiver: "Alice"}},
		{"unknown receiver", models.RevealRequest{Name: "Alice", Receiver: "Zed"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Reveal(w, testutil.MakeRequest("POST", "/pick/reveal", tc.req, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	if n := testutil.CountAssignments(t, db); n != 0 {
		t.Errorf("Expected no assignments after rejected reveals, got %d", n)
	}
}

func TestRevealStoresAuditFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewPickHandler(db, testutil.NewTestCodec(t))
	testutil.AddTestPeople(t, db, "Alice", "Bob")

	req := testutil.MakeRequest("POST", "/pick/reveal",
		models.RevealRequest{Name: "Alice", Receiver: "Bob"},
		map[string]string{"X-Forwarded-For": "203.0.113.7", "User-Agent": "picker-test"})
	w := httptest.NewRecorder()
	h.Reveal(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var ipHash, userAgent string
	err := db.QueryRow(`SELECT ip_hash, user_agent FROM assignment`).Scan(&ipHash, &userAgent)
	if err != nil {
		t.Fatalf("Failed to read audit fields: %v", err)
	}
	if len(ipHash) != 16 {
		t.Errorf("Expected 16-char ip hash, got %q", ipHash)
	}
	if userAgent != "picker-test" {
		t.Errorf("Expected user agent picker-test, got %q", userAgent)
	}
}

func TestCheckDecodeFailureIsLoud(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	c := testutil.NewTestCodec(t)
	h := NewPickHandler(db, c)
	testutil.AddTestPeople(t, db, "Alice", "Bob")

	// Corrupt record under Alice's token
	_, err := db.Exec(`
		INSERT INTO assignment (id, giver_lookup, giver_encoded, receiver_lookup, receiver_encoded)
		VALUES ('x', $1, 'junk', 'tok-r', 'junk')
	`, c.LookupToken("Alice"))
	if err != nil {
		t.Fatalf("Failed to insert corrupt record: %v", err)
	}

	w := httptest.NewRecorder()
	h.Check(w, testutil.MakeRequest("POST", "/pick/check", models.CheckRequest{Name: "Alice"}, nil))

	// 500, never "no assignment"
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}
