package store

import (
	"context"
	"testing"

	"github.com/erazemk/compracerta/internal/db"
)

func TestBarcodePrices(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	none, err := LatestBarcodePrice(ctx, database, "7891000100103")
	if err != nil {
		t.Fatalf("LatestBarcodePrice: %v", err)
	}
	if none != nil {
		t.Error("expected no price for unseen barcode")
	}

	if _, err := RecordBarcodePrice(ctx, database, "7891000100103", 4.99); err != nil {
		t.Fatalf("RecordBarcodePrice: %v", err)
	}
	p, err := RecordBarcodePrice(ctx, database, "7891000100103", 5.49)
	if err != nil {
		t.Fatalf("RecordBarcodePrice: %v", err)
	}
	if p.DateSeen.IsZero() {
		t.Error("expected date_seen to be set")
	}
	RecordBarcodePrice(ctx, database, "12345670", 1)

	latest, _ := LatestBarcodePrice(ctx, database, "7891000100103")
	if latest == nil || latest.UnitPrice != 5.49 {
		t.Errorf("expected latest price 5.49, got %+v", latest)
	}

	history, err := ListBarcodePrices(ctx, database, "7891000100103", 0)
	if err != nil {
		t.Fatalf("ListBarcodePrices: %v", err)
	}
	if len(history) != 2 || history[0].UnitPrice != 5.49 {
		t.Errorf("unexpected history: %+v", history)
	}

	if _, err := RecordBarcodePrice(ctx, database, "12345670", -1); err == nil {
		t.Error("expected error for negative price")
	}
}
