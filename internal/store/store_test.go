package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestSelect(t *testing.T) {
	cases := []struct {
		env, override string
		want          Backend
	}{
		{"prod", "", MySQL},
		{"production", "", MySQL},
		{"dev", "", SQLite},
		{"test", "", SQLite},
		{"dev", "mysql", MySQL},
		{"prod", "mysql", MySQL},
		{"dev", "sqlite", SQLite},
	}
	for _, c := range cases {
		if got := Select(c.env, c.override); got != c.want {
			t.Errorf("Select(%q, %q) = %s, want %s", c.env, c.override, got, c.want)
		}
	}
}

func newFileStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	st := New(db, SQLite)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func countRows(t *testing.T, st *Store, table string) int {
	t.Helper()
	var n int
	if err := st.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSchemaAndSeedIdempotent(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	// Running schema creation and seeding twice must yield exactly the
	// same row counts as running them once.
	for i := 0; i < 2; i++ {
		if err := st.CreateSchema(ctx); err != nil {
			t.Fatalf("create schema (run %d): %v", i+1, err)
		}
		if err := st.SeedIfEmpty(ctx); err != nil {
			t.Fatalf("seed (run %d): %v", i+1, err)
		}
	}

	if got := countRows(t, st, "users"); got != len(seedUsers) {
		t.Errorf("users = %d, want %d", got, len(seedUsers))
	}
	if got := countRows(t, st, "events"); got != len(seedEvents) {
		t.Errorf("events = %d, want %d", got, len(seedEvents))
	}
	if got := countRows(t, st, "bookings"); got != 0 {
		t.Errorf("bookings = %d, want 0", got)
	}

	// Seeded inventory starts full.
	var bad int
	if err := st.DB().QueryRow("SELECT COUNT(*) FROM events WHERE available_tickets <> total_tickets").Scan(&bad); err != nil {
		t.Fatalf("check inventory: %v", err)
	}
	if bad != 0 {
		t.Errorf("%d seed events have partial availability", bad)
	}
}

func TestSupportsTx(t *testing.T) {
	if New(nil, SQLite).SupportsTx() {
		t.Error("embedded backend must not advertise multi-statement transactions")
	}
	if !New(nil, MySQL).SupportsTx() {
		t.Error("networked backend must advertise multi-statement transactions")
	}
}
