// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Environment variable names.
const (
	EnvDB         = "COMPRACERTA_DB"
	EnvAddr       = "COMPRACERTA_ADDR"
	EnvLog        = "COMPRACERTA_LOG"
	EnvLegacyAuth = "COMPRACERTA_LEGACY_AUTH"
	EnvBcryptCost = "COMPRACERTA_BCRYPT_COST"
)

// Config holds settings shared by all subcommands. Flags override it.
type Config struct {
	DBPath     string
	Addr       string
	LogPath    string
	LegacyAuth bool
	BcryptCost int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:     "compracerta.sqlite3",
		Addr:       ":8080",
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Load reads envFile into the process environment (without overriding
// variables already set) and returns the resulting Config. A missing
// envFile is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the COMPRACERTA_* variables.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.DBPath = getEnvOrDefault(EnvDB, cfg.DBPath)
	cfg.Addr = getEnvOrDefault(EnvAddr, cfg.Addr)
	cfg.LogPath = os.Getenv(EnvLog)

	if v := os.Getenv(EnvLegacyAuth); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvLegacyAuth, v, err)
		}
		cfg.LegacyAuth = b
	}

	if v := os.Getenv(EnvBcryptCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvBcryptCost, v, err)
		}
		if n < bcrypt.MinCost || n > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("%s must be between %d and %d", EnvBcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		cfg.BcryptCost = n
	}

	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
