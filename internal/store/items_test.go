package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erazemk/compracerta/internal/db"
	"github.com/erazemk/compracerta/internal/model"
)

func TestAddItemDefaultsAndTotals(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	item, err := AddItem(ctx, database, list.ID, NewItem{Name: "Bread"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Quantity != 1 || item.UnitPrice != 0 || item.Total != 0 {
		t.Errorf("unexpected defaults: %+v", item)
	}
	if item.Unit != "" || item.Barcode != "" || item.IsChecked {
		t.Errorf("expected empty optional fields: %+v", item)
	}

	AddItem(ctx, database, list.ID, NewItem{Name: "Cheese", Quantity: 0.35, Unit: "kg", UnitPrice: 42.9})
	assertListTotal(t, database, list.ID, 0.35*42.9)
}

func TestAddItemValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	if _, err := AddItem(ctx, database, list.ID, NewItem{Name: ""}); !errors.Is(err, model.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if _, err := AddItem(ctx, database, list.ID, NewItem{Name: "X", Quantity: -1}); !errors.Is(err, model.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := AddItem(ctx, database, list.ID, NewItem{Name: "X", UnitPrice: -2}); !errors.Is(err, model.ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
	if _, err := AddItem(ctx, database, list.ID+100, NewItem{Name: "X"}); err == nil {
		t.Error("expected error adding an item to a missing list")
	}
	assertListTotal(t, database, list.ID, 0)
}

func TestListItemsInShoppingOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	for _, name := range []string{"Rice", "Beans", "Coffee"} {
		AddItem(ctx, database, list.ID, NewItem{Name: name})
	}

	items, err := ListItems(ctx, database, list.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 || items[0].Name != "Rice" || items[2].Name != "Coffee" {
		t.Errorf("unexpected order: %+v", items)
	}
}

func TestMarketScenario(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	rice, err := AddItem(ctx, database, list.ID, NewItem{Name: "Rice", Quantity: 2, Unit: "kg", UnitPrice: 5})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !approx(rice.Total, 10) {
		t.Errorf("expected item total 10, got %v", rice.Total)
	}
	assertListTotal(t, database, list.ID, 10)

	price := 6.0
	ok, err := UpdateItem(ctx, database, rice.ID, ItemUpdate{UnitPrice: &price})
	if err != nil || !ok {
		t.Fatalf("UpdateItem: %v, %v", ok, err)
	}
	rice, _ = GetItem(ctx, database, rice.ID)
	if !approx(rice.Total, 12) {
		t.Errorf("expected item total 12, got %v", rice.Total)
	}
	assertListTotal(t, database, list.ID, 12)

	if _, err := CompleteList(ctx, database, list.ID, 15); err != nil {
		t.Fatalf("CompleteList: %v", err)
	}
	got, _ := GetList(ctx, database, list.ID)
	if got.Status != model.ListStatusCompleted || got.FinalAmount == nil || *got.FinalAmount != 15 {
		t.Fatalf("unexpected completed list: %+v", got)
	}
	savings, ok := got.Savings()
	if !ok || !savings.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("expected savings -3, got %s (ok=%v)", savings, ok)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	milk, _ := AddItem(ctx, database, list.ID, NewItem{Name: "Milk", Quantity: 2, UnitPrice: 4.5})
	AddItem(ctx, database, list.ID, NewItem{Name: "Eggs", Quantity: 1, UnitPrice: 12})

	qty := 6.0
	if _, err := UpdateItem(ctx, database, milk.ID, ItemUpdate{Quantity: &qty}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	assertListTotal(t, database, list.ID, 6*4.5+12)

	bad := 0.0
	if _, err := UpdateItem(ctx, database, milk.ID, ItemUpdate{Quantity: &bad}); !errors.Is(err, model.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	assertListTotal(t, database, list.ID, 6*4.5+12)
}

func TestUpdateItemOtherFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	item, _ := AddItem(ctx, database, list.ID, NewItem{Name: "Soap", Unit: "un", UnitPrice: 3})

	ok, err := UpdateItem(ctx, database, item.ID, ItemUpdate{})
	if err != nil || ok {
		t.Errorf("expected empty update to be a no-op, got %v, %v", ok, err)
	}

	name, unit := "Bar soap", ""
	if _, err := UpdateItem(ctx, database, item.ID, ItemUpdate{Name: &name, Unit: &unit}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Bar soap" || got.Unit != "" {
		t.Errorf("unexpected item after update: %+v", got)
	}
	assertListTotal(t, database, list.ID, 3)

	price := 1.0
	ok, err = UpdateItem(ctx, database, item.ID+100, ItemUpdate{UnitPrice: &price})
	if err != nil || ok {
		t.Errorf("expected missing item update to report false, got %v, %v", ok, err)
	}
}

func TestSetItemCheckedKeepsTotals(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	item, _ := AddItem(ctx, database, list.ID, NewItem{Name: "Coffee", Quantity: 2, UnitPrice: 18})

	ok, err := SetItemChecked(ctx, database, item.ID, true)
	if err != nil || !ok {
		t.Fatalf("SetItemChecked: %v, %v", ok, err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if !got.IsChecked {
		t.Error("expected item to be checked")
	}
	assertListTotal(t, database, list.ID, 36)

	SetItemChecked(ctx, database, item.ID, false)
	got, _ = GetItem(ctx, database, item.ID)
	if got.IsChecked {
		t.Error("expected item to be unchecked")
	}
}

func TestDeleteItemRecomputesTotal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	a, _ := AddItem(ctx, database, list.ID, NewItem{Name: "A", Quantity: 1, UnitPrice: 7})
	b, _ := AddItem(ctx, database, list.ID, NewItem{Name: "B", Quantity: 2, UnitPrice: 1.5})
	assertListTotal(t, database, list.ID, 10)

	ok, err := DeleteItem(ctx, database, a.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteItem: %v, %v", ok, err)
	}
	assertListTotal(t, database, list.ID, 3)

	DeleteItem(ctx, database, b.ID)
	assertListTotal(t, database, list.ID, 0)

	ok, err = DeleteItem(ctx, database, b.ID)
	if err != nil || ok {
		t.Errorf("expected deleting a missing item to report false, got %v, %v", ok, err)
	}
}

func TestRecomputeListTotalRepairsDrift(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	AddItem(ctx, database, list.ID, NewItem{Name: "A", Quantity: 3, UnitPrice: 2})
	database.ExecContext(ctx, `UPDATE shopping_lists SET total_amount = 999 WHERE id = ?`, list.ID)

	if err := RecomputeListTotal(ctx, database, list.ID); err != nil {
		t.Fatalf("RecomputeListTotal: %v", err)
	}
	assertListTotal(t, database, list.ID, 6)
}

func TestCompletedListRejectsItemChanges(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "ana@example.com")
	list := createTestList(t, database, user.ID, "Market")

	rice, _ := AddItem(ctx, database, list.ID, NewItem{Name: "Rice", Quantity: 2, UnitPrice: 5})
	if _, err := CompleteList(ctx, database, list.ID, 15); err != nil {
		t.Fatalf("CompleteList: %v", err)
	}

	if _, err := AddItem(ctx, database, list.ID, NewItem{Name: "Beans", UnitPrice: 20}); !errors.Is(err, model.ErrListCompleted) {
		t.Errorf("AddItem: expected ErrListCompleted, got %v", err)
	}
	price := 9.0
	if _, err := UpdateItem(ctx, database, rice.ID, ItemUpdate{UnitPrice: &price}); !errors.Is(err, model.ErrListCompleted) {
		t.Errorf("UpdateItem: expected ErrListCompleted, got %v", err)
	}
	if _, err := SetItemChecked(ctx, database, rice.ID, true); !errors.Is(err, model.ErrListCompleted) {
		t.Errorf("SetItemChecked: expected ErrListCompleted, got %v", err)
	}
	if _, err := DeleteItem(ctx, database, rice.ID); !errors.Is(err, model.ErrListCompleted) {
		t.Errorf("DeleteItem: expected ErrListCompleted, got %v", err)
	}

	// The recorded savings are untouched.
	assertListTotal(t, database, list.ID, 10)
	got, _ := GetList(ctx, database, list.ID)
	if savings, ok := got.Savings(); !ok || !savings.Equal(decimal.NewFromInt(-5)) {
		t.Errorf("expected savings -5, got %s", savings)
	}

	if _, err := ReactivateList(ctx, database, list.ID); err != nil {
		t.Fatalf("ReactivateList: %v", err)
	}
	if _, err := AddItem(ctx, database, list.ID, NewItem{Name: "Beans", UnitPrice: 20}); err != nil {
		t.Errorf("AddItem after reactivation: %v", err)
	}
	assertListTotal(t, database, list.ID, 30)
}
