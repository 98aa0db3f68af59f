package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/erazemk/compracerta/internal/auth"
	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// KeyValueStore persists small values on the device. *store.SecureStore
// satisfies it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AuthService registers users and keeps the local session record.
type AuthService struct {
	DB     *sql.DB
	Store  KeyValueStore
	Hasher auth.Hasher
}

// Register creates an account. It returns false on invalid input, a taken
// email or a storage failure.
func (s *AuthService) Register(ctx context.Context, name, email, password string) bool {
	if err := model.ValidateName(name); err != nil {
		slog.Warn("rejected registration", "error", err)
		return false
	}
	email, err := model.NormalizeEmail(email)
	if err != nil {
		slog.Warn("rejected registration", "error", err)
		return false
	}
	if err := model.ValidatePassword(password); err != nil {
		slog.Warn("rejected registration", "email", email, "error", err)
		return false
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return false
	}
	if _, err := store.CreateUser(ctx, s.DB, name, email, hash); err != nil {
		slog.Error("failed to register user", "email", email, "error", err)
		return false
	}
	return true
}

// Login checks the credentials and, on success, saves the session record.
func (s *AuthService) Login(ctx context.Context, email, password string) *model.User {
	if password == "" {
		return nil
	}
	email, err := model.NormalizeEmail(email)
	if err != nil {
		return nil
	}

	user, err := store.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		slog.Error("failed to look up user", "email", email, "error", err)
		return nil
	}
	if user == nil || !s.Hasher.Verify(user.PasswordHash, password) {
		slog.Info("login rejected", "email", email)
		return nil
	}

	raw, err := auth.Session{UserID: user.ID, Email: user.Email}.Encode()
	if err != nil {
		slog.Error("failed to encode session", "error", err)
		return nil
	}
	if err := s.Store.Set(ctx, auth.SessionKey, raw); err != nil {
		slog.Error("failed to save session", "error", err)
		return nil
	}
	return user
}

// GetCurrentUser returns the signed-in user, or nil when there is no valid
// session. A corrupt session record is cleared.
func (s *AuthService) GetCurrentUser(ctx context.Context) *model.User {
	raw, ok, err := s.Store.Get(ctx, auth.SessionKey)
	if err != nil {
		slog.Error("failed to read session", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	sess, err := auth.DecodeSession(raw)
	if err != nil {
		slog.Warn("discarding invalid session", "error", err)
		if err := s.Store.Delete(ctx, auth.SessionKey); err != nil {
			slog.Error("failed to clear session", "error", err)
		}
		return nil
	}

	user, err := store.GetUser(ctx, s.DB, sess.UserID)
	if err != nil {
		slog.Error("failed to load session user", "user_id", sess.UserID, "error", err)
		return nil
	}
	return user
}

// Logout clears the session record.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.Store.Delete(ctx, auth.SessionKey)
}
