package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// ListService manages shopping lists.
type ListService struct {
	DB *sql.DB
}

// CreateList creates an active list and returns its id, or 0 on failure.
func (s *ListService) CreateList(ctx context.Context, userID int64, name string) int64 {
	list, err := store.CreateList(ctx, s.DB, userID, name)
	if err != nil {
		slog.Error("failed to create list", "user_id", userID, "error", err)
		return 0
	}
	return list.ID
}

// GetUserLists returns the user's lists, newest first.
func (s *ListService) GetUserLists(ctx context.Context, userID int64) []model.ShoppingList {
	lists, err := store.ListUserLists(ctx, s.DB, userID)
	if err != nil {
		slog.Error("failed to list lists", "user_id", userID, "error", err)
		return []model.ShoppingList{}
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	return lists
}

// GetCompletedLists returns the user's finalized lists.
func (s *ListService) GetCompletedLists(ctx context.Context, userID int64) []model.ShoppingList {
	lists, err := store.ListCompletedLists(ctx, s.DB, userID)
	if err != nil {
		slog.Error("failed to list completed lists", "user_id", userID, "error", err)
		return []model.ShoppingList{}
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	return lists
}

// GetListByID returns a list, or nil if it is missing or cannot be read.
func (s *ListService) GetListByID(ctx context.Context, id int64) *model.ShoppingList {
	list, err := store.GetList(ctx, s.DB, id)
	if err != nil {
		slog.Error("failed to get list", "list_id", id, "error", err)
		return nil
	}
	return list
}

// UpdateList applies the supplied fields. It returns false when no fields
// were given or the update failed.
func (s *ListService) UpdateList(ctx context.Context, id int64, upd store.ListUpdate) bool {
	if upd.Empty() {
		return false
	}
	ok, err := store.UpdateList(ctx, s.DB, id, upd)
	if err != nil {
		slog.Error("failed to update list", "list_id", id, "error", err)
		return false
	}
	return ok
}

// DeleteList deletes a list and its items. It reports success once both
// deletions ran, whether or not the list existed.
func (s *ListService) DeleteList(ctx context.Context, id int64) bool {
	if err := store.DeleteList(ctx, s.DB, id); err != nil {
		slog.Error("failed to delete list", "list_id", id, "error", err)
		return false
	}
	return true
}

// CompleteList finalizes a list with the amount actually paid.
func (s *ListService) CompleteList(ctx context.Context, id int64, finalAmount float64) bool {
	ok, err := store.CompleteList(ctx, s.DB, id, finalAmount)
	if err != nil {
		slog.Error("failed to complete list", "list_id", id, "error", err)
		return false
	}
	return ok
}

// ReactivateList reopens a completed list for editing.
func (s *ListService) ReactivateList(ctx context.Context, id int64) bool {
	ok, err := store.ReactivateList(ctx, s.DB, id)
	if err != nil {
		slog.Error("failed to reactivate list", "list_id", id, "error", err)
		return false
	}
	return ok
}

// CopyList creates a fresh active copy of a list and returns its id, or 0.
func (s *ListService) CopyList(ctx context.Context, id int64) int64 {
	list, err := store.CopyList(ctx, s.DB, id)
	if err != nil {
		slog.Error("failed to copy list", "list_id", id, "error", err)
		return 0
	}
	if list == nil {
		return 0
	}
	return list.ID
}
