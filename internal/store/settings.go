package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/erazemk/compracerta/internal/query"
)

// GetJWTSecret retrieves the API token signing key from the database.
// If no key exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := query.Exec(ctx, db,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Either our insert or the existing value.
	secret, err := query.One(ctx, db, scanString,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}
	if secret == nil {
		return "", fmt.Errorf("jwt_secret missing after insert")
	}

	return *secret, nil
}
