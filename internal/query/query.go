// Package query normalizes parameter binding and dialect differences between
// the two storage backends.  Callers write every statement once, against the
// canonical named-parameter convention (@name), together with a map of
// parameter values.  The package translates that form into whatever the
// active backend's driver requires: the embedded SQLite driver binds named
// arguments natively, while the MySQL driver only understands positional '?'
// markers, so the statement text is rewritten and the values laid out in
// textual order (duplicated references are expanded into repeated values).
//
// A referenced parameter with no supplied value is an error; the statement
// never executes with a silently substituted NULL.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tickettango/api/internal/store"
)

// Params maps canonical parameter names (without the @ prefix) to values.
type Params map[string]any

// ErrMissingParam is wrapped into the error returned when a statement
// references a parameter that was not supplied.
var ErrMissingParam = errors.New("missing query parameter")

// Rebind translates a canonical @name statement into the form required by
// the given backend and returns the statement together with its argument
// list.  The translation fails, rather than substituting NULL, when a
// referenced parameter has no value.
func Rebind(b store.Backend, q string, p Params) (string, []any, error) {
	if b == store.MySQL {
		return rebindPositional(q, p)
	}
	return rebindNamed(q, p)
}

// rebindNamed keeps the @name markers in place and passes the referenced
// values as native named arguments.  Only parameters actually referenced in
// the statement are bound; extras in the map are ignored.
func rebindNamed(q string, p Params) (string, []any, error) {
	names, err := scanParams(q)
	if err != nil {
		return "", nil, err
	}
	args := make([]any, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		v, ok := p[name]
		if !ok {
			return "", nil, fmt.Errorf("%w: @%s", ErrMissingParam, name)
		}
		args = append(args, sql.Named(name, v))
	}
	return q, args, nil
}

// rebindPositional rewrites every @name reference to '?' and lays the values
// out in textual order, repeating values for duplicated references.
func rebindPositional(q string, p Params) (string, []any, error) {
	names, err := scanParams(q)
	if err != nil {
		return "", nil, err
	}
	var out strings.Builder
	out.Grow(len(q))
	args := make([]any, 0, len(names))
	inString := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		if c == '\'' {
			inString = !inString
			out.WriteByte(c)
			continue
		}
		if !inString && c == '@' && i+1 < len(q) && isIdentStart(q[i+1]) {
			j := i + 1
			for j < len(q) && isIdentByte(q[j]) {
				j++
			}
			name := q[i+1 : j]
			v, ok := p[name]
			if !ok {
				return "", nil, fmt.Errorf("%w: @%s", ErrMissingParam, name)
			}
			out.WriteByte('?')
			args = append(args, v)
			i = j - 1
			continue
		}
		out.WriteByte(c)
	}
	return out.String(), args, nil
}

// scanParams returns every @name reference in textual order, skipping
// single-quoted string literals.  Duplicates are preserved.
func scanParams(q string) ([]string, error) {
	var names []string
	inString := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		if c == '\'' {
			inString = !inString
			continue
		}
		if inString || c != '@' {
			continue
		}
		if i+1 >= len(q) || !isIdentStart(q[i+1]) {
			continue
		}
		j := i + 1
		for j < len(q) && isIdentByte(q[j]) {
			j++
		}
		names = append(names, q[i+1:j])
		i = j - 1
	}
	if inString {
		return nil, fmt.Errorf("unterminated string literal in query: %s", q)
	}
	return names, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// Adapt picks the query fragment for the active backend.  Twin fragments
// express the same semantic operation in each dialect (e.g. datetime('now')
// versus UTC_TIMESTAMP()); resolving them here keeps backend conditionals
// out of the repositories.
func Adapt(b store.Backend, sqliteSQL, mysqlSQL string) string {
	if b == store.MySQL {
		return mysqlSQL
	}
	return sqliteSQL
}

// Execer is the subset of database operations the runner needs.  Both
// *sql.DB and *sql.Tx satisfy it, so the same repository code runs inside
// and outside explicit transactions.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Runner executes canonical-form statements against the active backend.
// Storage errors are propagated unchanged; the runner adds nothing beyond
// the binding translation.
type Runner struct {
	ex      Execer
	backend store.Backend
}

// New returns a Runner bound to the store's database handle.
func New(st *store.Store) *Runner {
	return &Runner{ex: st.DB(), backend: st.Backend()}
}

// WithTx returns a Runner that executes inside the given transaction while
// keeping the same backend translation rules.
func (r *Runner) WithTx(tx *sql.Tx) *Runner {
	return &Runner{ex: tx, backend: r.backend}
}

// Backend reports the backend this runner translates for.
func (r *Runner) Backend() store.Backend { return r.backend }

// Adapt resolves twin dialect fragments through the runner's backend.
func (r *Runner) Adapt(sqliteSQL, mysqlSQL string) string {
	return Adapt(r.backend, sqliteSQL, mysqlSQL)
}

// Exec runs a statement that returns no rows.
func (r *Runner) Exec(ctx context.Context, q string, p Params) (sql.Result, error) {
	bound, args, err := Rebind(r.backend, q, p)
	if err != nil {
		return nil, err
	}
	return r.ex.ExecContext(ctx, bound, args...)
}

// Query runs a statement returning multiple rows.
func (r *Runner) Query(ctx context.Context, q string, p Params) (*sql.Rows, error) {
	bound, args, err := Rebind(r.backend, q, p)
	if err != nil {
		return nil, err
	}
	return r.ex.QueryContext(ctx, bound, args...)
}

// QueryRow runs a statement expected to return at most one row.  Binding
// errors surface here instead of being deferred to Scan.
func (r *Runner) QueryRow(ctx context.Context, q string, p Params) (*sql.Row, error) {
	bound, args, err := Rebind(r.backend, q, p)
	if err != nil {
		return nil, err
	}
	return r.ex.QueryRowContext(ctx, bound, args...), nil
}
