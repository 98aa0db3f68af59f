package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/erazemk/compracerta/internal/config"
)

const usage = `Usage: compracerta <command> [flags]

Commands:
  serve      run the JSON API server
  register   create an account and sign in
  login      sign in on this device
  logout     sign out on this device
  whoami     show the signed-in user
  lists      show the signed-in user's lists
  new-list   create a list
  items      show a list's items
  add-item   add an item to a list
  complete   finalize a list with the amount paid
  reactivate reopen a completed list
  copy       start a new list from an existing one
  price      show the last price seen for a barcode

Common flags:
  -d, -db <path>     SQLite database path (env COMPRACERTA_DB)
  -l, -log <path>    log file path (env COMPRACERTA_LOG)

Settings are also read from a .env file in the working directory.
Run "compracerta <command> -h" for command flags.
`

type command func(cfg config.Config, args []string) error

var commands = map[string]command{
	"serve":      cmdServe,
	"register":   cmdRegister,
	"login":      cmdLogin,
	"logout":     cmdLogout,
	"whoami":     cmdWhoami,
	"lists":      cmdLists,
	"new-list":   cmdNewList,
	"items":      cmdItems,
	"add-item":   cmdAddItem,
	"complete":   cmdComplete,
	"reactivate": cmdReactivate,
	"copy":       cmdCopy,
	"price":      cmdPrice,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "-h" || name == "-help" || name == "help" {
		fmt.Fprint(os.Stdout, usage)
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", name, usage)
		os.Exit(1)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := cmd(cfg, os.Args[2:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet returns a flag set with the flags shared by every command
// bound to cfg.
func newFlagSet(name string, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "log file path")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "log file path")
	return fs
}

// parseFlags parses args and rejects stray positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return nil
}
