package store

import (
	"context"
	"testing"

	"github.com/erazemk/compracerta/internal/db"
)

func TestSecureStore(t *testing.T) {
	s := &SecureStore{DB: db.NewTestDB(t)}
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "userSession")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}

	if err := s.Set(ctx, "userSession", `{"userId":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "userSession", `{"userId":2}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, "userSession")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %v", ok, err)
	}
	if v != `{"userId":2}` {
		t.Errorf("expected overwritten value, got %q", v)
	}

	if err := s.Delete(ctx, "userSession"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "userSession"); ok {
		t.Error("expected key to be deleted")
	}
	if err := s.Delete(ctx, "userSession"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}
