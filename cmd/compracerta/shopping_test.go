package main

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/compracerta/internal/app"
	"github.com/erazemk/compracerta/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "compracerta.sqlite3")
	cfg.LogPath = ""
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

func run(t *testing.T, cfg config.Config, name string, args ...string) error {
	t.Helper()
	cmd, ok := commands[name]
	if !ok {
		t.Fatalf("unknown command %q", name)
	}
	return cmd(cfg, args)
}

func mustRun(t *testing.T, cfg config.Config, name string, args ...string) {
	t.Helper()
	if err := run(t, cfg, name, args...); err != nil {
		t.Fatalf("%s %v: %v", name, args, err)
	}
}

func openTestApp(t *testing.T, cfg config.Config) *app.App {
	t.Helper()
	a := app.New(cfg)
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestShoppingCommands(t *testing.T) {
	cfg := testConfig(t)

	if err := run(t, cfg, "new-list", "-name", "Weekly"); err == nil {
		t.Fatal("expected new-list to require a signed-in user")
	}

	mustRun(t, cfg, "register", "-name", "Ana", "-email", "ana@example.com", "-password", "secret1")
	mustRun(t, cfg, "new-list", "-name", "Weekly")
	mustRun(t, cfg, "add-item", "-list", "1", "-name", "Rice", "-qty", "2", "-unit", "kg",
		"-price", "5", "-barcode", "7891000100103")
	mustRun(t, cfg, "items", "-list", "1")

	if err := run(t, cfg, "add-item", "-list", "1", "-name", "Beans", "-qty", "0"); err == nil {
		t.Error("expected zero quantity to be rejected")
	}

	mustRun(t, cfg, "price", "-barcode", "7891000100103")
	if err := run(t, cfg, "price", "-barcode", "00000000"); err == nil {
		t.Error("expected no price for an unseen barcode")
	}

	// Price falls back to the last one seen for the barcode.
	mustRun(t, cfg, "add-item", "-list", "1", "-name", "Rice", "-barcode", "7891000100103")

	mustRun(t, cfg, "complete", "-list", "1", "-paid", "18")
	if err := run(t, cfg, "add-item", "-list", "1", "-name", "Beans", "-price", "3"); err == nil {
		t.Error("expected add-item on a completed list to fail")
	}

	mustRun(t, cfg, "copy", "-list", "1")
	mustRun(t, cfg, "reactivate", "-list", "1")
	mustRun(t, cfg, "add-item", "-list", "1", "-name", "Beans", "-price", "3")

	a := openTestApp(t, cfg)
	ctx := context.Background()

	list := a.Lists.GetListByID(ctx, 1)
	if list == nil || list.Completed() || math.Abs(list.TotalAmount-18) > 1e-9 {
		t.Fatalf("unexpected list after reactivate: %+v", list)
	}
	if items := a.Items.GetListItems(ctx, 1); len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}

	copied := a.Lists.GetListByID(ctx, 2)
	if copied == nil || copied.Completed() || copied.UserID != list.UserID {
		t.Fatalf("unexpected copied list: %+v", copied)
	}
	if items := a.Items.GetListItems(ctx, 2); len(items) != 2 {
		t.Errorf("expected copy to carry 2 items, got %d", len(items))
	}
}

func TestShoppingCommandsOwnership(t *testing.T) {
	cfg := testConfig(t)

	mustRun(t, cfg, "register", "-name", "Ana", "-email", "ana@example.com", "-password", "secret1")
	mustRun(t, cfg, "new-list", "-name", "Ana's list")
	mustRun(t, cfg, "register", "-name", "Bia", "-email", "bia@example.com", "-password", "secret2")

	for _, args := range [][]string{
		{"items", "-list", "1"},
		{"add-item", "-list", "1", "-name", "Milk"},
		{"complete", "-list", "1", "-paid", "10"},
		{"copy", "-list", "1"},
		{"reactivate", "-list", "1"},
	} {
		if err := run(t, cfg, args[0], args[1:]...); err == nil {
			t.Errorf("%v: expected another user's list to be refused", args)
		}
	}

	a := openTestApp(t, cfg)
	if list := a.Lists.GetListByID(context.Background(), 1); list == nil || list.Completed() {
		t.Errorf("expected list 1 untouched, got %+v", list)
	}
}
