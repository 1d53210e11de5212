package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tickettango/api/internal/store"
)

// newTestStore opens a throwaway SQLite database and applies the schema.
// The backend tag controls which code path the repositories take: wrapping
// the same SQLite handle with store.MySQL exercises the transactional path
// and the positional parameter rewrite without needing a real MySQL server.
func newTestStore(t *testing.T, backend store.Backend) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	st := store.New(db, backend)
	// The schema DDL must match the engine actually underneath, which is
	// always SQLite in tests.
	if err := store.New(db, store.SQLite).CreateSchema(context.Background()); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// insertEvent inserts an event row directly and returns its id.
func insertEvent(t *testing.T, st *store.Store, title, category string, date time.Time, price float64, available, total int) uint64 {
	t.Helper()
	res, err := st.DB().Exec(
		`INSERT INTO events (title, description, category, venue, event_date, price, available_tickets, total_tickets)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		title, title+" description", category, "Test Venue", formatDBTime(date.UTC()), price, available, total)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("event id: %v", err)
	}
	return uint64(id)
}

// insertUser inserts a user row directly and returns its id.  The hash does
// not need to verify anything in booking tests.
func insertUser(t *testing.T, st *store.Store, username string) uint64 {
	t.Helper()
	res, err := st.DB().Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, "x")
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	return uint64(id)
}

func availableTickets(t *testing.T, st *store.Store, eventID uint64) int {
	t.Helper()
	var n int
	if err := st.DB().QueryRow("SELECT available_tickets FROM events WHERE id = ?", eventID).Scan(&n); err != nil {
		t.Fatalf("read availability: %v", err)
	}
	return n
}

func bookingCount(t *testing.T, st *store.Store, eventID uint64) int {
	t.Helper()
	var n int
	if err := st.DB().QueryRow("SELECT COUNT(*) FROM bookings WHERE event_id = ?", eventID).Scan(&n); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	return n
}

func futureDate() time.Time {
	return time.Now().UTC().Add(48 * time.Hour)
}
