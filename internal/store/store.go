// Package store owns the database for the process: it selects one of the two
// supported backends, opens the connection (or pool), creates the schema and
// inserts seed data on first startup.  Everything above this package talks to
// the database through the query package, which translates the canonical
// named-parameter query form into whatever the active backend expects.
package store

import (
	"context"
	"database/sql"

	"github.com/tickettango/api/internal/config"
)

// Backend identifies which database engine is active for the process.
type Backend int

const (
	// SQLite is the embedded single-file backend used in development.
	SQLite Backend = iota
	// MySQL is the networked, connection-pooled backend used in production.
	MySQL
)

// String returns the backend name for logs.
func (b Backend) String() string {
	if b == MySQL {
		return "mysql"
	}
	return "sqlite"
}

// Store wraps an open database handle together with the backend identity
// decided at startup.  The pair is created once in main and injected into
// repositories; no code path may swap the backend afterwards, because the
// booking core picks its concurrency strategy from it.
type Store struct {
	db      *sql.DB
	backend Backend
}

// New wraps an already-open handle.  Open is the normal entry point; New
// exists so tests can compose a Store around their own database.
func New(db *sql.DB, backend Backend) *Store {
	return &Store{db: db, backend: backend}
}

// Open selects the backend for cfg and connects to it.  A connection failure
// here is fatal to the caller: the process must not serve traffic without a
// working store.
func Open(cfg config.Config) (*Store, error) {
	backend := Select(cfg.Env, cfg.DBBackend)
	var (
		db  *sql.DB
		err error
	)
	switch backend {
	case MySQL:
		db, err = openMySQL(cfg)
	default:
		db, err = openSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}
	return New(db, backend), nil
}

// DB exposes the raw handle for transaction begin and for the query runner.
func (s *Store) DB() *sql.DB { return s.db }

// Backend reports which engine this store talks to.
func (s *Store) Backend() Backend { return s.backend }

// SupportsTx reports whether callers may use explicit multi-statement
// transactions.  The embedded backend serializes writers internally but does
// not expose begin/commit/rollback to the booking core in this design; the
// networked backend does.
func (s *Store) SupportsTx() bool { return s.backend == MySQL }

// Ping verifies the connection is still alive.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close releases the connection or pool.  Called once at process shutdown.
func (s *Store) Close() error { return s.db.Close() }
