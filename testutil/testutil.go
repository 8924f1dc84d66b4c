// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/chit-pick/codec"
	"github.com/danielhkuo/chit-pick/db"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// TestAssignmentKey is the codec secret used by all tests
const TestAssignmentKey = "test-assignment-key"

// SetupTestDB creates a fresh sqlite database in a per-test temp dir
// with the full schema. One connection keeps concurrent writers
// queued at the pool instead of failing with SQLITE_BUSY.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// NewTestCodec builds a codec with the shared test key
func NewTestCodec(t *testing.T) *codec.Codec {
	t.Helper()

	c, err := codec.New(TestAssignmentKey)
	if err != nil {
		t.Fatalf("Failed to create test codec: %v", err)
	}
	return c
}

// AddTestPerson inserts a participant and returns their row ID
func AddTestPerson(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO person (id, name, created_at)
		VALUES ($1, $2, $3)
	`, id, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test person: %v", err)
	}

	return id
}

// AddTestPeople inserts several participants in order
func AddTestPeople(t *testing.T, conn *sql.DB, names ...string) {
	t.Helper()

	for _, name := range names {
		AddTestPerson(t, conn, name)
	}
}

// CreateTestAssignment commits a giver→receiver pair directly,
// bypassing the engine, and returns the record ID
func CreateTestAssignment(t *testing.T, conn *sql.DB, c *codec.Codec, giver, receiver string) string {
	t.Helper()

	giverEnc, err := c.Encode(giver)
	if err != nil {
		t.Fatalf("Failed to encode giver: %v", err)
	}
	receiverEnc, err := c.Encode(receiver)
	if err != nil {
		t.Fatalf("Failed to encode receiver: %v", err)
	}

	id := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO assignment (id, giver_lookup, giver_encoded, receiver_lookup, receiver_encoded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, c.LookupToken(giver), giverEnc, c.LookupToken(receiver), receiverEnc, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test assignment: %v", err)
	}

	return id
}

// CountAssignments returns the number of committed assignments
func CountAssignments(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM assignment`).Scan(&n); err != nil {
		t.Fatalf("Failed to count assignments: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
