package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/compracerta/internal/query"
)

// SecureStore is a small key/value store for device-local secrets such as
// the session record. Values are opaque strings.
type SecureStore struct {
	DB *sql.DB
}

// Get returns the value stored under key. ok is false if the key is unset.
func (s *SecureStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	v, err := query.One(ctx, s.DB, scanString,
		`SELECT value FROM secure_store WHERE key = ?`, key,
	)
	if err != nil {
		return "", false, fmt.Errorf("reading secure store: %w", err)
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SecureStore) Set(ctx context.Context, key, value string) error {
	_, err := query.Exec(ctx, s.DB,
		`INSERT INTO secure_store (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing secure store: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SecureStore) Delete(ctx context.Context, key string) error {
	if _, err := query.Exec(ctx, s.DB, `DELETE FROM secure_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting from secure store: %w", err)
	}
	return nil
}

func scanString(s query.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}
