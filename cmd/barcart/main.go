package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/barcart/internal/adapter"
	"github.com/mmcdole/barcart/internal/catalog"
	"github.com/mmcdole/barcart/internal/favorites"
	"github.com/mmcdole/barcart/internal/store"
	"github.com/mmcdole/barcart/internal/tui"
	"github.com/mmcdole/barcart/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		configFile  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configFile, "config", "", "path to config file")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("barcart %s\n", Version)
		return
	}

	if err := run(configFile, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: barcart [flags] [command]

With no command and a terminal on stdout, barcart starts the browser UI.

Commands:
  home [-pages N] [-letter X]  list the home feed
  categories                   list categories
  filter <category>            list cocktails in a category
  show <id>                    print one cocktail
  favorites                    list favorites
  like <id>                    add a favorite
  unlike <id>                  remove a favorite
  open <id>                    open a cocktail's image in the viewer
  init [-favorites]            write a default config file

Flags:
`)
	flag.PrintDefaults()
}

func run(configFile string, args []string) error {
	if len(args) > 0 && args[0] == "init" {
		return runInit(configFile, args[1:])
	}

	// Load configuration
	cfg, err := adapter.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting barcart", "version", Version)

	styles.ApplyTheme(cfg.UI.Theme)

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)

	favDir, err := adapter.ExpandHome(cfg.Favorites.Dir)
	if err != nil {
		return err
	}
	favStore, err := store.NewFavoritesStore(favDir, client.BaseURL())
	if err != nil {
		return fmt.Errorf("failed to open favorites: %w", err)
	}
	defer favStore.Close()
	logger.Info("favorites store opened", "persistent", favStore.Persistent())

	registry := favorites.NewRegistry(favStore, logger)
	if err := registry.Load(); err != nil {
		logger.Warn("failed to load favorites", "error", err)
	}

	opener := adapter.NewOpener(cfg.Viewer.Command, cfg.Viewer.Args, logger)

	if len(args) == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		return runTUI(cfg, client, registry, opener, logger)
	}

	// Piped output without a command prints the home feed
	if len(args) == 0 {
		args = []string{"home"}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		out:       os.Stdout,
		errOut:    os.Stderr,
		catalog:   client,
		favorites: registry,
		saved:     favStore.Persistent(),
		opener:    opener,
		letter:    cfg.Home.Letter,
		logger:    logger,
	}
	return c.run(ctx, args)
}

func runTUI(cfg *adapter.Config, client *catalog.Client, registry *favorites.Registry, opener *adapter.Opener, logger *slog.Logger) error {
	model := tui.NewModel(tui.Options{
		Catalog:    client,
		Favorites:  registry,
		Logger:     logger,
		Letter:     cfg.Home.Letter,
		Prefetch:   cfg.Home.Prefetch,
		Timeout:    cfg.Catalog.Timeout,
		DefaultTab: tui.ParseTab(cfg.UI.DefaultTab),
		Opener:     opener,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runInit writes a default config file
func runInit(configFile string, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	persist := fs.Bool("favorites", false, "keep favorites across sessions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := adapter.DefaultConfig()
	if *persist {
		cfg.Favorites.Dir = adapter.DefaultFavoritesDir()
	}

	if err := adapter.SaveConfig(cfg, configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	return nil
}
