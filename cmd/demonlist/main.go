package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"

	"demonlist/internal/app"
	"demonlist/internal/catalog"
	"demonlist/internal/state"
	"demonlist/internal/telemetry"
	"demonlist/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "demonlist:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := app.DefaultConfig()
	if dirs, err := gap.NewScope(gap.User, "demonlist").DataDirs(); err == nil && len(dirs) > 0 {
		cfg.DataDir = dirs[0]
	}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "demonlist:", err)
	}

	root := &cobra.Command{
		Use:   "demonlist",
		Short: "Browse the Geometry Dash demonlist from your terminal",
		Long: "A terminal browser for community demon lists. Levels come from the\n" +
			"published spreadsheets; favorites, completions, ratings and progress\n" +
			"are stored locally.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cfg)
		},
	}

	fl := root.PersistentFlags()
	fl.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the local state database and logs")
	fl.StringVar(&cfg.List, "list", cfg.List, "list to browse: demonlist, pemonlist or impossiblelist")
	fl.StringVar(&cfg.SourcesPath, "sources", cfg.SourcesPath, "yaml file overriding the CSV source urls")
	fl.StringVar(&cfg.LogPath, "log", cfg.LogPath, "write a jsonl activity log to this path")
	fl.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep all user state in memory only")

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the active list as CSV without opening the UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cfg, out)
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	root.AddCommand(export)

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear all locally stored user data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cfg)
		},
	}
	root.AddCommand(reset)

	return root
}

// buildCore assembles storage, logging and the app core from the resolved
// configuration.
func buildCore(cfg app.Config) (*app.App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var kv state.KV
	if cfg.Ephemeral {
		kv = state.NewMemory()
	} else {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "demonlist.db"))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		kv = store
	}

	logPath := cfg.LogPath
	if logPath == "" && !cfg.Ephemeral {
		logPath = filepath.Join(cfg.DataDir, "demonlist.log")
	}
	logger, err := telemetry.NewLogger(logPath)
	if err != nil {
		return nil, err
	}

	sources, err := catalog.LoadSources(cfg.SourcesPath)
	if err != nil {
		logger.Warn("sources.load_failed", map[string]any{"error": err.Error()})
	}

	return app.New(app.Options{Config: cfg, Logger: logger, KV: kv, Sources: sources}), nil
}

func runUI(cfg app.Config) error {
	core, err := buildCore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	exportDir := cfg.DataDir
	if exportDir == "" {
		exportDir = "."
	}
	program := tea.NewProgram(ui.New(core, exportDir), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// runExport loads the list (network first, cached snapshot as fallback) and
// writes it as CSV.
func runExport(cfg app.Config, out string) error {
	core, err := buildCore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	core.Init()
	deadline := time.After(cfg.FetchTimeout + 5*time.Second)
	for loaded := false; !loaded; {
		select {
		case e := <-core.Events():
			switch e.Kind {
			case app.EventDataLoaded:
				loaded = true
			case app.EventLoadFailed:
				if err := core.LoadCachedData(context.Background()); err != nil {
					return fmt.Errorf("load failed and no cached data: %w", e.Err)
				}
			}
		case <-deadline:
			return fmt.Errorf("timed out loading level data")
		}
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return core.ExportCatalog(w)
}

func runReset(cfg app.Config) error {
	core, err := buildCore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()
	if err := core.ResetUserData(context.Background()); err != nil {
		return err
	}
	fmt.Println("User data cleared.")
	return nil
}
