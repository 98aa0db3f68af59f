package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/query"
)

func scanBarcodePrice(s query.Scanner) (model.BarcodePrice, error) {
	var p model.BarcodePrice
	err := s.Scan(&p.ID, &p.Barcode, &p.UnitPrice, &p.DateSeen)
	return p, err
}

// RecordBarcodePrice stores a price observation for a normalized barcode.
func RecordBarcodePrice(ctx context.Context, db *sql.DB, barcode string, unitPrice float64) (*model.BarcodePrice, error) {
	if err := model.ValidateUnitPrice(unitPrice); err != nil {
		return nil, err
	}

	res, err := query.Exec(ctx, db,
		`INSERT INTO barcode_prices (barcode, unit_price) VALUES (?, ?)`,
		barcode, unitPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("recording barcode price: %w", err)
	}

	p, err := query.One(ctx, db, scanBarcodePrice,
		`SELECT id, barcode, unit_price, date_seen FROM barcode_prices WHERE id = ?`,
		res.LastInsertID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting barcode price: %w", err)
	}
	return p, nil
}

// LatestBarcodePrice returns the most recent observation for a barcode, or nil.
func LatestBarcodePrice(ctx context.Context, db *sql.DB, barcode string) (*model.BarcodePrice, error) {
	p, err := query.One(ctx, db, scanBarcodePrice,
		`SELECT id, barcode, unit_price, date_seen FROM barcode_prices
		 WHERE barcode = ? ORDER BY date_seen DESC, id DESC LIMIT 1`, barcode,
	)
	if err != nil {
		return nil, fmt.Errorf("getting latest barcode price: %w", err)
	}
	return p, nil
}

// ListBarcodePrices returns up to limit observations for a barcode, newest first.
func ListBarcodePrices(ctx context.Context, db *sql.DB, barcode string, limit int) ([]model.BarcodePrice, error) {
	if limit <= 0 {
		limit = 50
	}
	prices, err := query.All(ctx, db, scanBarcodePrice,
		`SELECT id, barcode, unit_price, date_seen FROM barcode_prices
		 WHERE barcode = ? ORDER BY date_seen DESC, id DESC LIMIT ?`, barcode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing barcode prices: %w", err)
	}
	return prices, nil
}

// RecordItemBarcodePrice records the item's unit price under its barcode.
// Items without a barcode or price are skipped.
func RecordItemBarcodePrice(ctx context.Context, db *sql.DB, item *model.ListItem) error {
	if item == nil || item.Barcode == "" || item.UnitPrice <= 0 {
		return nil
	}
	_, err := RecordBarcodePrice(ctx, db, item.Barcode, item.UnitPrice)
	return err
}
