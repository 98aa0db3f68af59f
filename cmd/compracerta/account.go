package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/erazemk/compracerta/internal/app"
	"github.com/erazemk/compracerta/internal/config"
	"github.com/erazemk/compracerta/internal/model"
)

// openApp sets up quiet logging and initializes the application context.
// The returned cleanup closes both.
func openApp(cfg config.Config) (*app.App, func(), error) {
	closeLog, err := setupLogger(cfg.LogPath, true)
	if err != nil {
		return nil, nil, err
	}

	a := app.New(cfg)
	if err := a.Init(context.Background()); err != nil {
		closeLog()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		closeLog()
	}, nil
}

func cmdRegister(cfg config.Config, args []string) error {
	var name, email, password string
	fs := newFlagSet("register", &cfg)
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&email, "email", "", "email address")
	fs.StringVar(&password, "password", "", "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	ok, err := a.Register(context.Background(), name, email, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("registration failed")
	}
	fmt.Printf("Registered and signed in as %s.\n", a.User().Email)
	return nil
}

func cmdLogin(cfg config.Config, args []string) error {
	var email, password string
	fs := newFlagSet("login", &cfg)
	fs.StringVar(&email, "email", "", "email address")
	fs.StringVar(&password, "password", "", "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	ok, err := a.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid credentials")
	}
	fmt.Printf("Signed in as %s.\n", a.User().Email)
	return nil
}

func cmdLogout(cfg config.Config, args []string) error {
	fs := newFlagSet("logout", &cfg)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := a.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func cmdWhoami(cfg config.Config, args []string) error {
	fs := newFlagSet("whoami", &cfg)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	u := a.User()
	if u == nil {
		return errors.New("not signed in")
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	return nil
}

func cmdLists(cfg config.Config, args []string) error {
	var history bool
	fs := newFlagSet("lists", &cfg)
	fs.BoolVar(&history, "history", false, "show completed lists with savings")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	u := a.User()
	if u == nil {
		return errors.New("not signed in")
	}

	ctx := context.Background()
	if history {
		lists := a.Lists.GetCompletedLists(ctx, u.ID)
		printHistory(lists)
		return nil
	}
	printLists(a.Lists.GetUserLists(ctx, u.ID))
	return nil
}

func printLists(lists []model.ShoppingList) {
	if len(lists) == 0 {
		fmt.Println("No lists.")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tESTIMATED\tCREATED")
	for _, l := range lists {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n",
			l.ID, l.Name, l.Status, l.TotalAmount, l.CreatedAt.Local().Format("2006-01-02"))
	}
	tw.Flush()
}

func printHistory(lists []model.ShoppingList) {
	if len(lists) == 0 {
		fmt.Println("No completed lists.")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tESTIMATED\tPAID\tSAVED\t%")
	for i := range lists {
		l := &lists[i]
		saved, _ := l.Savings()
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%s\t%s\n",
			l.ID, l.Name, l.TotalAmount, *l.FinalAmount, saved.StringFixed(2), l.SavingsPercent().StringFixed(1))
	}
	tw.Flush()

	s := model.Summarize(lists)
	fmt.Printf("\n%d lists, estimated %s, paid %s, saved %s, overspent %s\n",
		s.Completed, s.Estimated.StringFixed(2), s.Paid.StringFixed(2),
		s.Saved.StringFixed(2), s.Overspent.StringFixed(2))
}
