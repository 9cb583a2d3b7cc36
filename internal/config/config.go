package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/signal-plots/internal/chartpage"
	"github.com/roman-kulish/signal-plots/internal/render"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

const (
	DefaultAddress         = "127.0.0.1:1420"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultDatabasePath    = "captures.sqlite"
	DefaultMaxBatchSize    = 500
	DefaultLogLevel        = "info"
)

// Config represents the main application configuration
type Config struct {
	Settings  Settings        `yaml:"settings"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Render    RenderConfig    `yaml:"render"`
	Charts    ChartsConfig    `yaml:"charts"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// GeneratorConfig represents the surface grid and random source settings
type GeneratorConfig struct {
	signal.Params `yaml:",inline"`

	Seed *uint64 `yaml:"seed"` // Reproducible noise when set
}

// ServerConfig represents HTTP transport settings
type ServerConfig struct {
	Address         string   `yaml:"address"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// StorageConfig represents capture archive settings
type StorageConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Path         string `yaml:"path"`
	MaxBatchSize int    `yaml:"maxBatchSize"`
}

// RenderConfig represents raster heatmap settings
type RenderConfig struct {
	Theme         string   `yaml:"theme"`
	Format        string   `yaml:"format"`
	CellWidth     int      `yaml:"cellWidth"`
	CellHeight    int      `yaml:"cellHeight"`
	MinPower      *float64 `yaml:"minPower"`
	MaxPower      *float64 `yaml:"maxPower"`
	NoAnnotations bool     `yaml:"noAnnotations"`
}

// ChartsConfig represents ECharts preview settings
type ChartsConfig struct {
	Theme      string `yaml:"theme"`
	Width      string `yaml:"width"`
	Height     string `yaml:"height"`
	AssetsHost string `yaml:"assetsHost"`
}

// Default returns a configuration that reproduces the fixed behaviour of the
// three chart commands.
func Default() *Config {
	return &Config{
		Settings: Settings{LogLevel: DefaultLogLevel},
		Generator: GeneratorConfig{
			Params: signal.DefaultParams(),
		},
		Server: ServerConfig{
			Address:         DefaultAddress,
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
		},
		Storage: StorageConfig{
			Path:         DefaultDatabasePath,
			MaxBatchSize: DefaultMaxBatchSize,
		},
		Render: RenderConfig{
			Theme:  string(render.DefaultTheme),
			Format: string(render.ImagePNG),
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Generator.Params.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("generator: %w", err))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server: address is required"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("server: shutdown timeout must not be negative: %s", c.Server.ShutdownTimeout))
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		errs = append(errs, errors.New("storage: path is required when enabled"))
	}
	if c.Storage.MaxBatchSize < 0 {
		errs = append(errs, fmt.Errorf("storage: max batch size must not be negative: %d", c.Storage.MaxBatchSize))
	}
	if _, err := render.ParseColorTheme(c.Render.Theme); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if _, err := render.ParseImageFormat(c.Render.Format); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if c.Render.CellWidth < 0 || c.Render.CellHeight < 0 {
		errs = append(errs, fmt.Errorf("render: cell size must not be negative: %dx%d", c.Render.CellWidth, c.Render.CellHeight))
	}
	if c.Render.MinPower != nil && c.Render.MaxPower != nil && *c.Render.MinPower >= *c.Render.MaxPower {
		errs = append(errs, fmt.Errorf("render: min power %.1f must be below max power %.1f", *c.Render.MinPower, *c.Render.MaxPower))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LogLevel parses settings.logLevel. An empty value means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Settings.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Settings.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("settings: invalid log level '%s'", c.Settings.LogLevel)
	}
	return level, nil
}

// Source returns the random source selected by generator.seed.
func (c *Config) Source() signal.Source {
	if c.Generator.Seed != nil {
		return signal.NewSeededSource(*c.Generator.Seed)
	}
	return signal.GlobalSource
}

// RendererConfig converts the render section into renderer options.
func (c *Config) RendererConfig() render.Config {
	theme, _ := render.ParseColorTheme(c.Render.Theme)
	return render.Config{
		ColorTheme:    theme,
		CellWidth:     c.Render.CellWidth,
		CellHeight:    c.Render.CellHeight,
		MinPower:      c.Render.MinPower,
		MaxPower:      c.Render.MaxPower,
		NoAnnotations: c.Render.NoAnnotations,
	}
}

// ImageFormat returns the validated render.format.
func (c *Config) ImageFormat() render.ImageFormat {
	f, err := render.ParseImageFormat(c.Render.Format)
	if err != nil {
		return render.ImagePNG
	}
	return f
}

// ChartOptions converts the charts section into page builder options.
func (c *Config) ChartOptions() []func(*chartpage.Builder) {
	var options []func(*chartpage.Builder)
	if c.Charts.Theme != "" {
		options = append(options, chartpage.WithTheme(c.Charts.Theme))
	}
	if c.Charts.Width != "" && c.Charts.Height != "" {
		options = append(options, chartpage.WithSize(c.Charts.Width, c.Charts.Height))
	}
	if c.Charts.AssetsHost != "" {
		options = append(options, chartpage.WithAssetsHost(c.Charts.AssetsHost))
	}
	return options
}
