// Package query holds the generic read/write helpers every store function
// goes through. They run against either the process-wide *sql.DB or a
// transaction and always report driver errors to the caller.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Conn is satisfied by *sql.DB and *sql.Tx.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc maps the current row to a value of type T.
type ScanFunc[T any] func(Scanner) (T, error)

// Result describes the outcome of a write.
type Result struct {
	// LastInsertID is the id of the row created by an INSERT, 0 otherwise.
	LastInsertID int64
	// RowsAffected counts rows changed by an UPDATE or DELETE.
	RowsAffected int64
}

// All runs a read statement and maps every row with scan.
func All[T any](ctx context.Context, conn Conn, scan ScanFunc[T], query string, args ...any) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// One runs a read statement expected to return at most one row.
// It returns nil, nil when there is no row.
func One[T any](ctx context.Context, conn Conn, scan ScanFunc[T], query string, args ...any) (*T, error) {
	v, err := scan(conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying row: %w", err)
	}
	return &v, nil
}

// Exec runs a write statement.
func Exec(ctx context.Context, conn Conn, query string, args ...any) (Result, error) {
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("executing: %w", err)
	}

	var r Result
	r.RowsAffected, _ = res.RowsAffected()
	// SQLite reports the connection's last rowid for any statement, so only
	// trust it for inserts.
	if isInsert(query) {
		r.LastInsertID, _ = res.LastInsertId()
	}
	return r, nil
}

func isInsert(query string) bool {
	q := strings.TrimSpace(query)
	return len(q) >= 6 && strings.EqualFold(q[:6], "INSERT")
}
