package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roman-kulish/signal-plots/internal/commands"
	"github.com/roman-kulish/signal-plots/internal/config"
	"github.com/roman-kulish/signal-plots/internal/signal"
	"github.com/roman-kulish/signal-plots/internal/storage"
)

// env carries what every subcommand needs once the root command has loaded
// the configuration.
type env struct {
	configPath string
	logLevel   string

	config   *config.Config
	logger   *slog.Logger
	levelVar *slog.LevelVar
}

// NewRootCommand assembles the sigplot command tree. level is adjusted to the
// configured log level before any subcommand runs.
func NewRootCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	e := &env{logger: logger, levelVar: level}

	root := &cobra.Command{
		Use:   "sigplot",
		Short: "Synthetic signal strength plots",
		Long: `sigplot generates synthetic signal strength surfaces over time and
azimuth and turns them into Plotly chart payloads, ECharts previews and
raster heatmaps.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.load,
	}

	root.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "Path to the YAML configuration file")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level override [debug, info, warn, error]")

	root.AddCommand(
		newServeCommand(e),
		newInvokeCommand(e),
		newRenderCommand(e),
		newChartCommand(e),
		newStatsCommand(e),
		newCapturesCommand(e),
	)
	return root
}

func (e *env) load(cmd *cobra.Command, _ []string) error {
	c := config.Default()
	if e.configPath != "" {
		var err error
		if c, err = config.Load(e.configPath); err != nil {
			return fmt.Errorf("failed to load configuration file '%s': %w", e.configPath, err)
		}
	}

	if e.logLevel != "" {
		c.Settings.LogLevel = e.logLevel
	}
	level, err := c.LogLevel()
	if err != nil {
		return err
	}
	if e.levelVar != nil {
		e.levelVar.Set(level)
	}

	e.config = c
	e.logger.Debug("configuration loaded", slog.String("path", e.configPath), slog.String("logLevel", level.String()))
	return nil
}

func (e *env) generator() (*signal.Generator, error) {
	g, err := signal.NewGenerator(e.config.Generator.Params, signal.WithSource(e.config.Source()))
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return g, nil
}

// plots wires the chart commands, archiving surfaces when storage is enabled.
// The returned store is nil when storage is disabled.
func (e *env) plots() (*commands.Plots, *storage.SqliteStore, error) {
	g, err := e.generator()
	if err != nil {
		return nil, nil, err
	}

	options := []func(*commands.Plots){commands.WithLogger(e.logger)}

	var store *storage.SqliteStore
	if e.config.Storage.Enabled {
		if store, err = e.createStore(); err != nil {
			return nil, nil, err
		}
		options = append(options, commands.WithRecorder(store))
	}

	return commands.NewPlots(g, options...), store, nil
}

func (e *env) createStore() (*storage.SqliteStore, error) {
	dbPath, err := filepath.Abs(e.config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving storage path: %w", err)
	}

	dir := filepath.Dir(dbPath)
	stat, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage directory '%s' does not exist: %w", dir, err)
		}
		return nil, fmt.Errorf("checking storage directory: %w", err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("invalid storage directory '%s'", dir)
	}

	return storage.NewSqliteStore(dbPath, storage.WithMaxBatchSize(e.config.Storage.MaxBatchSize)), nil
}

// openStore opens an existing archive for reading.
func (e *env) openStore() (*storage.SqliteStore, error) {
	path := e.config.Storage.Path
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		return nil, fmt.Errorf("database file '%s' does not exist: %w", path, err)
	}
	return storage.NewSqliteStore(path), nil
}

func closeStore(store *storage.SqliteStore, logger *slog.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("failed to close storage", slog.String("error", err.Error()))
	}
}
