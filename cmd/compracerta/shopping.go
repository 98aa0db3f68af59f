package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/erazemk/compracerta/internal/app"
	"github.com/erazemk/compracerta/internal/config"
	"github.com/erazemk/compracerta/internal/model"
	"github.com/erazemk/compracerta/internal/store"
)

// signedIn opens the app and requires a saved session.
func signedIn(cfg config.Config) (*app.App, *model.User, func(), error) {
	a, done, err := openApp(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	u := a.User()
	if u == nil {
		done()
		return nil, nil, nil, errors.New("not signed in")
	}
	return a, u, done, nil
}

// userList returns list id if it belongs to u.
func userList(ctx context.Context, a *app.App, u *model.User, id int64) (*model.ShoppingList, error) {
	list := a.Lists.GetListByID(ctx, id)
	if list == nil || list.UserID != u.ID {
		return nil, fmt.Errorf("list %d not found", id)
	}
	return list, nil
}

func cmdNewList(cfg config.Config, args []string) error {
	var name string
	fs := newFlagSet("new-list", &cfg)
	fs.StringVar(&name, "name", "", "list name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, u, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	id := a.Lists.CreateList(context.Background(), u.ID, name)
	if id == 0 {
		return errors.New("could not create list")
	}
	fmt.Printf("Created list %d.\n", id)
	return nil
}

func cmdAddItem(cfg config.Config, args []string) error {
	var (
		listID    int64
		item      store.NewItem
		quantity  float64
		priceSeen bool
	)
	fs := newFlagSet("add-item", &cfg)
	fs.Int64Var(&listID, "list", 0, "list id")
	fs.StringVar(&item.Name, "name", "", "item name")
	fs.Float64Var(&quantity, "qty", 1, "quantity")
	fs.StringVar(&item.Unit, "unit", "", "unit (kg, un, ...)")
	fs.Float64Var(&item.UnitPrice, "price", 0, "unit price (default: last price seen for -barcode)")
	fs.StringVar(&item.Barcode, "barcode", "", "scanned barcode")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "price" {
			priceSeen = true
		}
	})
	if err := model.ValidateQuantity(quantity); err != nil {
		return err
	}
	item.Quantity = quantity

	a, u, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	ctx := context.Background()
	if _, err := userList(ctx, a, u, listID); err != nil {
		return err
	}

	if !priceSeen && item.Barcode != "" {
		if p, ok := a.Items.SuggestPrice(ctx, item.Barcode); ok {
			item.UnitPrice = p
			fmt.Printf("Using last seen price %.2f.\n", p)
		}
	}

	id := a.Items.AddItemToList(ctx, listID, item)
	if id == 0 {
		return errors.New("could not add item (is the list completed?)")
	}
	fmt.Printf("Added item %d.\n", id)
	return nil
}

func cmdItems(cfg config.Config, args []string) error {
	var listID int64
	fs := newFlagSet("items", &cfg)
	fs.Int64Var(&listID, "list", 0, "list id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, u, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	ctx := context.Background()
	list, err := userList(ctx, a, u, listID)
	if err != nil {
		return err
	}

	items := a.Items.GetListItems(ctx, list.ID)
	fmt.Printf("%s (%s)\n\n", list.Name, list.Status)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t\tNAME\tQTY\tPRICE\tTOTAL")
	for _, it := range items {
		mark := "[ ]"
		if it.IsChecked {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g %s\t%.2f\t%.2f\n",
			it.ID, mark, it.Name, it.Quantity, it.Unit, it.UnitPrice, it.Total)
	}
	tw.Flush()
	fmt.Printf("\nEstimated total: %.2f\n", list.TotalAmount)
	return nil
}

func cmdComplete(cfg config.Config, args []string) error {
	var (
		listID int64
		paid   float64
	)
	fs := newFlagSet("complete", &cfg)
	fs.Int64Var(&listID, "list", 0, "list id")
	fs.Float64Var(&paid, "paid", 0, "amount actually paid")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := model.ValidateFinalAmount(paid); err != nil {
		return err
	}

	a, u, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	ctx := context.Background()
	if _, err := userList(ctx, a, u, listID); err != nil {
		return err
	}
	if !a.Lists.CompleteList(ctx, listID, paid) {
		return errors.New("could not complete list")
	}

	list := a.Lists.GetListByID(ctx, listID)
	if list == nil {
		return nil
	}
	if saved, ok := list.Savings(); ok {
		fmt.Printf("Completed. Estimated %.2f, paid %.2f, saved %s.\n",
			list.TotalAmount, paid, saved.StringFixed(2))
	}
	return nil
}

func cmdReactivate(cfg config.Config, args []string) error {
	var listID int64
	fs := newFlagSet("reactivate", &cfg)
	fs.Int64Var(&listID, "list", 0, "list id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, u, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	ctx := context.Background()
	if _, err := userList(ctx, a, u, listID); err != nil {
		return err
	}
	if !a.Lists.ReactivateList(ctx, listID) {
		return errors.New("could not reactivate list")
	}
	fmt.Println("List reactivated.")
	return nil
}

func cmdCopy(cfg config.Config, args []string) error {
	var listID int64
	fs := newFlagSet("copy", &cfg)
	fs.Int64Var(&listID, "list", 0, "list id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, u, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	ctx := context.Background()
	if _, err := userList(ctx, a, u, listID); err != nil {
		return err
	}
	id := a.Lists.CopyList(ctx, listID)
	if id == 0 {
		return errors.New("could not copy list")
	}
	fmt.Printf("Created list %d.\n", id)
	return nil
}

func cmdPrice(cfg config.Config, args []string) error {
	var code string
	fs := newFlagSet("price", &cfg)
	fs.StringVar(&code, "barcode", "", "scanned barcode")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, _, done, err := signedIn(cfg)
	if err != nil {
		return err
	}
	defer done()

	p, ok := a.Items.SuggestPrice(context.Background(), code)
	if !ok {
		return fmt.Errorf("no price seen for %q", code)
	}
	fmt.Printf("%.2f\n", p)
	return nil
}
