package store

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/erazemk/compracerta/internal/model"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func createTestUser(t *testing.T, database *sql.DB, email string) *model.User {
	t.Helper()
	u, err := CreateUser(context.Background(), database, "Test", email, "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func createTestList(t *testing.T, database *sql.DB, userID int64, name string) *model.ShoppingList {
	t.Helper()
	l, err := CreateList(context.Background(), database, userID, name)
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	return l
}

// assertListTotal checks that the stored list total equals the sum of its item totals
// and that every item total equals quantity times unit price.
func assertListTotal(t *testing.T, database *sql.DB, listID int64, want float64) {
	t.Helper()
	ctx := context.Background()

	list, err := GetList(ctx, database, listID)
	if err != nil || list == nil {
		t.Fatalf("GetList: %v, %v", list, err)
	}
	items, err := ListItems(ctx, database, listID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	var sum float64
	for _, it := range items {
		if !approx(it.Total, it.Quantity*it.UnitPrice) {
			t.Errorf("item %d total %v != %v * %v", it.ID, it.Total, it.Quantity, it.UnitPrice)
		}
		sum += it.Total
	}
	if !approx(list.TotalAmount, sum) {
		t.Errorf("list total %v != sum of items %v", list.TotalAmount, sum)
	}
	if !approx(list.TotalAmount, want) {
		t.Errorf("expected list total %v, got %v", want, list.TotalAmount)
	}
}
