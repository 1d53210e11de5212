package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// openSQLite opens (and creates if absent) the embedded database file.  The
// pool is capped at a single connection so every statement goes through one
// writer; SQLite itself queues concurrent access behind the busy timeout.
func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
