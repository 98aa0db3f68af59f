package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/compracerta/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Ana", "ana@example.com", "hash123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Name != "Ana" {
		t.Errorf("expected name 'Ana', got %q", user.Name)
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("expected email 'ana@example.com', got %q", got.Email)
	}
}

func TestGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "Ana", "ana@example.com", "hash")

	user, err := GetUserByEmail(ctx, database, "ana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}

	missing, err := GetUserByEmail(ctx, database, "bia@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "Ana", "ana@example.com", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := CreateUser(ctx, database, "Other Ana", "ana@example.com", "hash")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLegacyMixedCaseEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Rows written by the first release keep the email as typed.
	if _, err := database.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ('Ana', 'Ana@Example.com', 'hash')`,
	); err != nil {
		t.Fatalf("inserting legacy user: %v", err)
	}

	user, err := GetUserByEmail(ctx, database, "ana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil || user.Email != "Ana@Example.com" {
		t.Fatalf("expected legacy user, got %+v", user)
	}

	if _, err := CreateUser(ctx, database, "Other Ana", "ana@example.com", "hash"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken for a case variant, got %v", err)
	}
}
