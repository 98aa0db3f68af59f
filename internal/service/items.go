package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/erazemk/compracerta/internal/barcode"
	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// ItemService manages the items of a list.
type ItemService struct {
	DB *sql.DB
}

// AddItemToList adds an item and returns its id, or 0 on failure.
// Items scanned with a barcode and priced also feed the price history.
func (s *ItemService) AddItemToList(ctx context.Context, listID int64, n store.NewItem) int64 {
	if n.Barcode != "" {
		code, err := barcode.Normalize(n.Barcode)
		if err != nil {
			slog.Warn("rejected item barcode", "barcode", n.Barcode)
			return 0
		}
		n.Barcode = code
	}

	item, err := store.AddItem(ctx, s.DB, listID, n)
	if err != nil {
		logItemError("failed to add item", err, "list_id", listID)
		return 0
	}
	s.recordPrice(ctx, item)
	return item.ID
}

// GetListItems returns a list's items in the order they were added.
func (s *ItemService) GetListItems(ctx context.Context, listID int64) []model.ListItem {
	items, err := store.ListItems(ctx, s.DB, listID)
	if err != nil {
		slog.Error("failed to list items", "list_id", listID, "error", err)
		return []model.ListItem{}
	}
	if items == nil {
		items = []model.ListItem{}
	}
	return items
}

// UpdateItem applies the supplied fields, keeping item and list totals in step.
func (s *ItemService) UpdateItem(ctx context.Context, id int64, upd store.ItemUpdate) bool {
	if upd.Empty() {
		return false
	}
	if upd.Barcode != nil && *upd.Barcode != "" {
		code, err := barcode.Normalize(*upd.Barcode)
		if err != nil {
			slog.Warn("rejected item barcode", "barcode", *upd.Barcode)
			return false
		}
		upd.Barcode = &code
	}

	ok, err := store.UpdateItem(ctx, s.DB, id, upd)
	if err != nil {
		logItemError("failed to update item", err, "item_id", id)
		return false
	}
	if !ok {
		return false
	}

	if upd.UnitPrice != nil || upd.Barcode != nil {
		item, err := store.GetItem(ctx, s.DB, id)
		if err != nil {
			slog.Error("failed to reload item", "item_id", id, "error", err)
		} else {
			s.recordPrice(ctx, item)
		}
	}
	return true
}

// ToggleItemChecked sets whether the item has been picked up.
func (s *ItemService) ToggleItemChecked(ctx context.Context, id int64, checked bool) bool {
	ok, err := store.SetItemChecked(ctx, s.DB, id, checked)
	if err != nil {
		logItemError("failed to toggle item", err, "item_id", id)
		return false
	}
	return ok
}

// DeleteItem removes an item and recomputes its list total.
func (s *ItemService) DeleteItem(ctx context.Context, id int64) bool {
	ok, err := store.DeleteItem(ctx, s.DB, id)
	if err != nil {
		logItemError("failed to delete item", err, "item_id", id)
		return false
	}
	return ok
}

// SuggestPrice returns the last price seen for a scanned barcode.
func (s *ItemService) SuggestPrice(ctx context.Context, raw string) (float64, bool) {
	code, err := barcode.Normalize(raw)
	if err != nil {
		return 0, false
	}
	p, err := store.LatestBarcodePrice(ctx, s.DB, code)
	if err != nil {
		slog.Error("failed to look up barcode price", "barcode", code, "error", err)
		return 0, false
	}
	if p == nil {
		return 0, false
	}
	return p.UnitPrice, true
}

// logItemError logs a failed item change. Changes refused because the list
// is completed are expected and logged as warnings.
func logItemError(msg string, err error, args ...any) {
	args = append(args, "error", err)
	if errors.Is(err, model.ErrListCompleted) {
		slog.Warn(msg, args...)
		return
	}
	slog.Error(msg, args...)
}

func (s *ItemService) recordPrice(ctx context.Context, item *model.ListItem) {
	if err := store.RecordItemBarcodePrice(ctx, s.DB, item); err != nil {
		slog.Error("failed to record barcode price", "item_id", item.ID, "error", err)
	}
}
