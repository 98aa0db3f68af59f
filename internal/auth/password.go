package auth

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into stored hashes and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	// Cost is the bcrypt work factor. Zero means bcrypt.DefaultCost.
	Cost int
}

// Hash implements Hasher.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify implements Hasher.
func (h BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LegacyHasher reproduces the demo scheme of the first mobile release:
// the stored value is "hashed_<password>_<unix millis>" and a password
// matches when the stored value contains it. It provides no security and
// exists only to read databases created by that release.
type LegacyHasher struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

// Hash implements Hasher.
func (h LegacyHasher) Hash(password string) (string, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return fmt.Sprintf("hashed_%s_%d", password, now().UnixMilli()), nil
}

// Verify implements Hasher.
func (h LegacyHasher) Verify(hash, password string) bool {
	return strings.Contains(hash, password)
}
