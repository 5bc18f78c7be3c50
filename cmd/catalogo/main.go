package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/catalogo/catalog"
	"github.com/fwojciec/catalogo/fsm"
	catslog "github.com/fwojciec/catalogo/slog"
	"github.com/fwojciec/catalogo/sqlite"
	"github.com/fwojciec/catalogo/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Empty means the default lookup.
	ConfigPath string

	// Database path. Overrides the configured path when set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: os.Getenv("CATALOGO_CONFIG"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := viper.Load(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set CATALOGO_CONFIG to use a different config file")
		return err
	}
	if m.DBPath != "" {
		cfg.DBPath = m.DBPath
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("catalogo"),
		kong.Description("Browse the SIGA goods and services catalog offline."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		Vars(cfg),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'catalogo --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := cfg.Level()
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CATALOGO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()

	store := catslog.NewLoggingRecordStore(sqlite.NewRecordStore(m.DB), logger)
	states := sqlite.NewSyncStateService(m.DB)
	svc := catalog.NewService(store, states, fsm.NewStatusMachine(logger), logger)
	svc.Engine = catslog.NewLoggingQueryEngine(svc.Engine, logger)

	deps.Store = store
	deps.States = states
	deps.Catalog = svc

	return kongCtx.Run(deps)
}

// Vars returns the flag defaults taken from the configuration.
func Vars(cfg *viper.Config) kong.Vars {
	return kong.Vars{
		"feed":       cfg.FeedPath,
		"encoding":   cfg.Encoding,
		"batch_size": strconv.Itoa(cfg.BatchSize),
		"debounce":   cfg.Debounce.String(),
	}
}
