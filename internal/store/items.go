package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/query"
)

const itemColumns = `id, list_id, name, quantity, unit, unit_price, total, is_checked, barcode, created_at`

func scanItem(s query.Scanner) (model.ListItem, error) {
	var item model.ListItem
	var unit, barcode sql.NullString
	err := s.Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &unit,
		&item.UnitPrice, &item.Total, &item.IsChecked, &barcode, &item.CreatedAt)
	item.Unit = unit.String
	item.Barcode = barcode.String
	return item, err
}

// NewItem describes an item to add to a list. A zero Quantity means 1.
type NewItem struct {
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice float64
	Barcode   string
}

// ItemUpdate holds the editable item fields. Nil fields are left unchanged.
type ItemUpdate struct {
	Name      *string
	Quantity  *float64
	Unit      *string
	UnitPrice *float64
	Barcode   *string
	IsChecked *bool
}

// Empty reports whether the update carries no fields.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Quantity == nil && u.Unit == nil &&
		u.UnitPrice == nil && u.Barcode == nil && u.IsChecked == nil
}

// AffectsTotal reports whether the update changes the item's line total.
func (u ItemUpdate) AffectsTotal() bool {
	return u.Quantity != nil || u.UnitPrice != nil
}

func (u ItemUpdate) assignments() ([]assignment, error) {
	var sets []assignment
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if err := model.ValidateName(name); err != nil {
			return nil, err
		}
		sets = append(sets, assignment{"name", name})
	}
	if u.Quantity != nil {
		if err := model.ValidateQuantity(*u.Quantity); err != nil {
			return nil, err
		}
		sets = append(sets, assignment{"quantity", *u.Quantity})
	}
	if u.Unit != nil {
		sets = append(sets, assignment{"unit", nullString(*u.Unit)})
	}
	if u.UnitPrice != nil {
		if err := model.ValidateUnitPrice(*u.UnitPrice); err != nil {
			return nil, err
		}
		sets = append(sets, assignment{"unit_price", *u.UnitPrice})
	}
	if u.Barcode != nil {
		sets = append(sets, assignment{"barcode", nullString(*u.Barcode)})
	}
	if u.IsChecked != nil {
		sets = append(sets, assignment{"is_checked", *u.IsChecked})
	}
	return sets, nil
}

// AddItem adds an item to a list and recomputes the list total.
func AddItem(ctx context.Context, db *sql.DB, listID int64, n NewItem) (*model.ListItem, error) {
	n.Name = strings.TrimSpace(n.Name)
	if n.Quantity == 0 {
		n.Quantity = 1
	}
	if err := model.ValidateName(n.Name); err != nil {
		return nil, err
	}
	if err := model.ValidateQuantity(n.Quantity); err != nil {
		return nil, err
	}
	if err := model.ValidateUnitPrice(n.UnitPrice); err != nil {
		return nil, err
	}
	if err := ensureListEditable(ctx, db, listID); err != nil {
		return nil, err
	}

	res, err := query.Exec(ctx, db,
		`INSERT INTO list_items (list_id, name, quantity, unit, unit_price, total, barcode)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		listID, n.Name, n.Quantity, nullString(n.Unit), n.UnitPrice,
		model.ItemTotal(n.Quantity, n.UnitPrice), nullString(n.Barcode),
	)
	if err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}

	if err := RecomputeListTotal(ctx, db, listID); err != nil {
		return nil, err
	}

	return GetItem(ctx, db, res.LastInsertID)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.ListItem, error) {
	item, err := query.One(ctx, db, scanItem,
		`SELECT `+itemColumns+` FROM list_items WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns a list's items in the order they were added.
func ListItems(ctx context.Context, db *sql.DB, listID int64) ([]model.ListItem, error) {
	items, err := query.All(ctx, db, scanItem,
		`SELECT `+itemColumns+` FROM list_items
		 WHERE list_id = ? ORDER BY created_at ASC, id ASC`, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// UpdateItem applies the supplied fields. When quantity or unit price change,
// the item's total is recomputed from the stored row and then the parent
// list's total is re-derived. The list recompute runs even if fixing the item
// total failed; both errors are returned joined.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, upd ItemUpdate) (bool, error) {
	sets, err := upd.assignments()
	if err != nil {
		return false, err
	}
	if len(sets) == 0 {
		return false, nil
	}

	listID, err := listIDForItem(ctx, db, id)
	if err != nil {
		return false, err
	}
	if listID == 0 {
		return false, nil
	}
	if err := ensureListEditable(ctx, db, listID); err != nil {
		return false, err
	}

	res, err := updateRow(ctx, db, "list_items", id, sets)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	updated := res.RowsAffected > 0

	if !upd.AffectsTotal() {
		return updated, nil
	}

	var errs []error
	item, err := GetItem(ctx, db, id)
	if err != nil {
		errs = append(errs, err)
	} else if item != nil {
		_, err = query.Exec(ctx, db,
			`UPDATE list_items SET total = ? WHERE id = ?`,
			model.ItemTotal(item.Quantity, item.UnitPrice), id,
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("updating item total: %w", err))
		}
	}

	if err := RecomputeListTotal(ctx, db, listID); err != nil {
		errs = append(errs, err)
	}

	return updated, errors.Join(errs...)
}

// SetItemChecked sets the picked-up flag. Totals are not affected.
func SetItemChecked(ctx context.Context, db *sql.DB, id int64, checked bool) (bool, error) {
	listID, err := listIDForItem(ctx, db, id)
	if err != nil {
		return false, err
	}
	if listID == 0 {
		return false, nil
	}
	if err := ensureListEditable(ctx, db, listID); err != nil {
		return false, err
	}

	res, err := query.Exec(ctx, db,
		`UPDATE list_items SET is_checked = ? WHERE id = ?`, checked, id,
	)
	if err != nil {
		return false, fmt.Errorf("setting item checked: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// DeleteItem deletes an item and recomputes its list's total.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	// The list id is gone once the row is deleted.
	listID, err := listIDForItem(ctx, db, id)
	if err != nil {
		return false, err
	}
	if listID == 0 {
		return false, nil
	}
	if err := ensureListEditable(ctx, db, listID); err != nil {
		return false, err
	}

	res, err := query.Exec(ctx, db, `DELETE FROM list_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}

	if err := RecomputeListTotal(ctx, db, listID); err != nil {
		return true, err
	}
	return res.RowsAffected > 0, nil
}

// listIDForItem returns the owning list of an item, or 0 if the item is missing.
func listIDForItem(ctx context.Context, db *sql.DB, itemID int64) (int64, error) {
	id, err := query.One(ctx, db, scanInt,
		`SELECT list_id FROM list_items WHERE id = ?`, itemID,
	)
	if err != nil {
		return 0, fmt.Errorf("getting item list: %w", err)
	}
	if id == nil {
		return 0, nil
	}
	return *id, nil
}

// ensureListEditable rejects item changes on a completed list; it has to be
// reactivated first. A missing list is left to the caller.
func ensureListEditable(ctx context.Context, conn query.Conn, listID int64) error {
	status, err := query.One(ctx, conn, scanString,
		`SELECT status FROM shopping_lists WHERE id = ?`, listID,
	)
	if err != nil {
		return fmt.Errorf("checking list status: %w", err)
	}
	if status != nil && *status == model.ListStatusCompleted {
		return model.ErrListCompleted
	}
	return nil
}

func scanInt(s query.Scanner) (int64, error) {
	var n int64
	err := s.Scan(&n)
	return n, err
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
