package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/query"
)

const listColumns = `id, user_id, name, status, total_amount, final_amount, created_at, completed_at`

func scanList(s query.Scanner) (model.ShoppingList, error) {
	var l model.ShoppingList
	err := s.Scan(&l.ID, &l.UserID, &l.Name, &l.Status, &l.TotalAmount, &l.FinalAmount, &l.CreatedAt, &l.CompletedAt)
	return l, err
}

// ListUpdate holds the user-editable list fields. Nil fields are left unchanged.
type ListUpdate struct {
	Name *string
}

// Empty reports whether the update carries no fields.
func (u ListUpdate) Empty() bool {
	return u.Name == nil
}

// assignment is one "column = ?" pair of an UPDATE. Columns are always
// constants from this package, never caller input.
type assignment struct {
	column string
	value  any
}

// CreateList creates a new active list with a zero total.
func CreateList(ctx context.Context, db *sql.DB, userID int64, name string) (*model.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}

	res, err := query.Exec(ctx, db,
		`INSERT INTO shopping_lists (user_id, name) VALUES (?, ?)`,
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	return GetList(ctx, db, res.LastInsertID)
}

// GetList returns a list by ID.
func GetList(ctx context.Context, db *sql.DB, id int64) (*model.ShoppingList, error) {
	l, err := query.One(ctx, db, scanList,
		`SELECT `+listColumns+` FROM shopping_lists WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting list: %w", err)
	}
	return l, nil
}

// ListUserLists returns all lists owned by a user, newest first.
func ListUserLists(ctx context.Context, db *sql.DB, userID int64) ([]model.ShoppingList, error) {
	lists, err := query.All(ctx, db, scanList,
		`SELECT `+listColumns+` FROM shopping_lists
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	return lists, nil
}

// ListCompletedLists returns a user's finalized lists, most recently completed first.
func ListCompletedLists(ctx context.Context, db *sql.DB, userID int64) ([]model.ShoppingList, error) {
	lists, err := query.All(ctx, db, scanList,
		`SELECT `+listColumns+` FROM shopping_lists
		 WHERE user_id = ? AND status = ?
		 ORDER BY completed_at DESC, id DESC`, userID, model.ListStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("listing completed lists: %w", err)
	}
	return lists, nil
}

// UpdateList applies the supplied fields. It reports false without touching
// the database when the update is empty, and false when no list matched.
func UpdateList(ctx context.Context, db *sql.DB, id int64, upd ListUpdate) (bool, error) {
	var sets []assignment
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := model.ValidateName(name); err != nil {
			return false, err
		}
		sets = append(sets, assignment{"name", name})
	}
	return updateList(ctx, db, id, sets)
}

// CompleteList marks a list as completed with the amount actually paid.
func CompleteList(ctx context.Context, db *sql.DB, id int64, finalAmount float64) (bool, error) {
	if err := model.ValidateFinalAmount(finalAmount); err != nil {
		return false, err
	}
	return updateList(ctx, db, id, []assignment{
		{"status", model.ListStatusCompleted},
		{"final_amount", finalAmount},
		{"completed_at", time.Now().UTC()},
	})
}

// ReactivateList returns a completed list to the active state and clears
// the completion fields.
func ReactivateList(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	return updateList(ctx, db, id, []assignment{
		{"status", model.ListStatusActive},
		{"final_amount", nil},
		{"completed_at", nil},
	})
}

func updateList(ctx context.Context, conn query.Conn, id int64, sets []assignment) (bool, error) {
	if len(sets) == 0 {
		return false, nil
	}
	res, err := updateRow(ctx, conn, "shopping_lists", id, sets)
	if err != nil {
		return false, fmt.Errorf("updating list: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// updateRow builds "UPDATE table SET a = ?, b = ? WHERE id = ?" from sets.
// table and the set columns are package constants.
func updateRow(ctx context.Context, conn query.Conn, table string, id int64, sets []assignment) (query.Result, error) {
	cols := make([]string, len(sets))
	args := make([]any, 0, len(sets)+1)
	for i, s := range sets {
		cols[i] = s.column + " = ?"
		args = append(args, s.value)
	}
	args = append(args, id)

	return query.Exec(ctx, conn,
		`UPDATE `+table+` SET `+strings.Join(cols, ", ")+` WHERE id = ?`,
		args...,
	)
}

// DeleteList deletes a list and all of its items.
func DeleteList(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := query.Exec(ctx, tx, `DELETE FROM list_items WHERE list_id = ?`, id); err != nil {
		return fmt.Errorf("deleting list items: %w", err)
	}
	if _, err := query.Exec(ctx, tx, `DELETE FROM shopping_lists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing list deletion: %w", err)
	}
	return nil
}

// CopyList creates a new active list for the same user with the source
// list's items, all unchecked. It returns nil, nil if the source is missing.
func CopyList(ctx context.Context, db *sql.DB, id int64) (*model.ShoppingList, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	src, err := query.One(ctx, tx, scanList,
		`SELECT `+listColumns+` FROM shopping_lists WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting source list: %w", err)
	}
	if src == nil {
		return nil, nil
	}

	res, err := query.Exec(ctx, tx,
		`INSERT INTO shopping_lists (user_id, name) VALUES (?, ?)`,
		src.UserID, src.Name+model.CopySuffix,
	)
	if err != nil {
		return nil, fmt.Errorf("creating list copy: %w", err)
	}
	newID := res.LastInsertID

	_, err = query.Exec(ctx, tx,
		`INSERT INTO list_items (list_id, name, quantity, unit, unit_price, total, barcode)
		 SELECT ?, name, quantity, unit, unit_price, total, barcode
		 FROM list_items WHERE list_id = ? ORDER BY created_at, id`,
		newID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("copying list items: %w", err)
	}

	if err := RecomputeListTotal(ctx, tx, newID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing list copy: %w", err)
	}
	return GetList(ctx, db, newID)
}

// RecomputeListTotal sets a list's total_amount to the sum of its item
// totals. It always re-aggregates; a list without items totals zero.
func RecomputeListTotal(ctx context.Context, conn query.Conn, listID int64) error {
	total, err := query.One(ctx, conn, scanFloat,
		`SELECT COALESCE(SUM(total), 0.0) FROM list_items WHERE list_id = ?`, listID,
	)
	if err != nil {
		return fmt.Errorf("summing list items: %w", err)
	}

	_, err = query.Exec(ctx, conn,
		`UPDATE shopping_lists SET total_amount = ? WHERE id = ?`,
		*total, listID,
	)
	if err != nil {
		return fmt.Errorf("updating list total: %w", err)
	}
	return nil
}

func scanFloat(s query.Scanner) (float64, error) {
	var f float64
	err := s.Scan(&f)
	return f, err
}
