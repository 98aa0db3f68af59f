// Package app holds the process-wide application state: the database
// handle, its readiness, and the signed-in user.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/erazemk/compracerta/internal/auth"
	"github.com/erazemk/compracerta/internal/config"
	"github.com/erazemk/compracerta/internal/db"
	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/service"
	"github.com/erazemk/compracerta/internal/store"
)

// ErrNotReady is returned by operations that need an initialized database.
var ErrNotReady = errors.New("database not initialized")

// App is the application context. Create one with New and call Init once
// at startup; it is safe for concurrent use afterwards.
type App struct {
	cfg  config.Config
	once sync.Once

	mu      sync.RWMutex
	db      *sql.DB
	ready   bool
	initErr error
	user    *model.User
	loading bool

	Lists *service.ListService
	Items *service.ItemService
	Auth  *service.AuthService
}

// New returns an uninitialized App for cfg.
func New(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// Hasher returns the password hasher selected by the configuration.
func Hasher(cfg config.Config) auth.Hasher {
	if cfg.LegacyAuth {
		return auth.LegacyHasher{}
	}
	return auth.BcryptHasher{Cost: cfg.BcryptCost}
}

// Init opens the database, applies the schema and restores the saved
// session. Only the first call does any work; later calls return the
// first call's result.
func (a *App) Init(ctx context.Context) error {
	a.once.Do(func() {
		err := a.open()

		a.mu.Lock()
		a.initErr = err
		a.ready = err == nil
		a.mu.Unlock()

		if err != nil {
			slog.Error("failed to initialize database", "path", a.cfg.DBPath, "error", err)
			return
		}
		slog.Info("database ready", "path", a.cfg.DBPath)

		a.setLoading(true)
		user := a.Auth.GetCurrentUser(ctx)
		a.mu.Lock()
		a.user = user
		a.loading = false
		a.mu.Unlock()
	})
	return a.InitErr()
}

func (a *App) open() error {
	database, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return fmt.Errorf("migrating database: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.db = database
	a.Lists = &service.ListService{DB: database}
	a.Items = &service.ItemService{DB: database}
	a.Auth = &service.AuthService{
		DB:     database,
		Store:  &store.SecureStore{DB: database},
		Hasher: Hasher(a.cfg),
	}
	return nil
}

// Ready reports whether Init succeeded.
func (a *App) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ready
}

// InitErr returns the initialization failure, if any.
func (a *App) InitErr() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initErr
}

// InitError returns the initialization failure as a message, or "" if
// there was none.
func (a *App) InitError() string {
	if err := a.InitErr(); err != nil {
		return err.Error()
	}
	return ""
}

// DB returns the database handle, or nil before a successful Init.
func (a *App) DB() *sql.DB {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.db
}

// User returns the signed-in user, or nil.
func (a *App) User() *model.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Loading reports whether an auth operation is in progress.
func (a *App) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

func (a *App) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

// Login signs the user in and remembers them. It reports whether the
// credentials were accepted.
func (a *App) Login(ctx context.Context, email, password string) (bool, error) {
	if !a.Ready() {
		return false, ErrNotReady
	}
	a.setLoading(true)
	defer a.setLoading(false)

	user := a.Auth.Login(ctx, email, password)
	if user == nil {
		return false, nil
	}
	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
	return true, nil
}

// Register creates an account and signs it in.
func (a *App) Register(ctx context.Context, name, email, password string) (bool, error) {
	if !a.Ready() {
		return false, ErrNotReady
	}
	a.setLoading(true)
	ok := a.Auth.Register(ctx, name, email, password)
	a.setLoading(false)
	if !ok {
		return false, nil
	}
	return a.Login(ctx, email, password)
}

// Logout clears the saved session and the signed-in user.
func (a *App) Logout(ctx context.Context) error {
	if !a.Ready() {
		return ErrNotReady
	}
	a.setLoading(true)
	defer a.setLoading(false)

	if err := a.Auth.Logout(ctx); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
	return nil
}

// Close releases the database handle.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ready = false
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
