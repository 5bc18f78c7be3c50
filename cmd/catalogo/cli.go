package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/catalogo"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Store   catalogo.RecordStore
	States  catalogo.SyncStateService
	Catalog catalogo.CatalogService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Enable debug logging"`

	Status  StatusCmd  `cmd:"" help:"Show the state of the local catalog"`
	Sync    SyncCmd    `cmd:"" help:"Load the catalog CSV into the local store"`
	Search  SearchCmd  `cmd:"" help:"Search the catalog"`
	Options OptionsCmd `cmd:"" help:"List the group, class and family filter values"`
	Show    ShowCmd    `cmd:"" help:"Show a record by SIGA code"`
	Reset   ResetCmd   `cmd:"" help:"Delete every record from the local store"`
	Browse  BrowseCmd  `cmd:"" help:"Browse the catalog interactively"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Feed      string `short:"f" default:"${feed}" help:"Catalog CSV file"`
	Encoding  string `short:"e" default:"${encoding}" enum:"utf-8,latin1" help:"Feed encoding (utf-8 or latin1)"`
	BatchSize int    `short:"b" default:"${batch_size}" help:"Rows committed per batch"`
	Reset     bool   `help:"Empty the local store before syncing"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term   string `arg:"" optional:"" help:"Text matched against item names and SIGA codes"`
	Type   string `short:"t" default:"ALL" help:"Type filter: ALL, B (goods), S (services) or O (works)"`
	Group  string `short:"g" help:"Group name"`
	Class  string `short:"c" help:"Class name (requires --group)"`
	Family string `short:"F" help:"Family name (requires --group and --class)"`
	Page   int    `short:"p" default:"1" help:"Page number"`
}

// OptionsCmd is the "options" subcommand.
type OptionsCmd struct {
	Group string `short:"g" help:"List the classes of this group"`
	Class string `short:"c" help:"List the families of this class (requires --group)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Code string `arg:"" help:"SIGA code"`
}

// ResetCmd is the "reset" subcommand.
type ResetCmd struct {
	Force bool `help:"Confirm deletion"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Debounce time.Duration `default:"${debounce}" help:"Quiet period before a search runs"`
	History  string        `type:"path" help:"Command history file"`
}
