package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/signal-plots/internal/render"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, signal.DefaultParams(), c.Generator.Params)
	assert.Nil(t, c.Generator.Seed)
	assert.Equal(t, DefaultAddress, c.Server.Address)
	assert.Equal(t, DefaultShutdownTimeout, c.Server.ShutdownTimeout.Duration())
	assert.False(t, c.Storage.Enabled)
	assert.Equal(t, render.ImagePNG, c.ImageFormat())
}

func TestParse_KeepsDefaultsForMissingKeys(t *testing.T) {
	c, err := Parse([]byte(`
settings:
  logLevel: debug
generator:
  timeSamples: 10
  seed: 42
server:
  shutdownTimeout: 1m30s
storage:
  enabled: true
render:
  theme: thermal
  format: JPG
  minPower: 60
`))
	require.NoError(t, err)

	level, err := c.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	assert.Equal(t, 10, c.Generator.TimeSamples)
	assert.Equal(t, signal.DefaultAngleSamples, c.Generator.AngleSamples)
	assert.Equal(t, signal.DefaultTimeMax, c.Generator.TimeMax)
	require.NotNil(t, c.Generator.Seed)
	assert.Equal(t, uint64(42), *c.Generator.Seed)

	assert.Equal(t, DefaultAddress, c.Server.Address)
	assert.Equal(t, 90*time.Second, c.Server.ShutdownTimeout.Duration())

	assert.True(t, c.Storage.Enabled)
	assert.Equal(t, DefaultDatabasePath, c.Storage.Path)
	assert.Equal(t, DefaultMaxBatchSize, c.Storage.MaxBatchSize)

	assert.Equal(t, render.ImageJPEG, c.ImageFormat())
	rc := c.RendererConfig()
	assert.Equal(t, render.ThermalTheme, rc.ColorTheme)
	require.NotNil(t, rc.MinPower)
	assert.Equal(t, 60.0, *rc.MinPower)
	assert.Nil(t, rc.MaxPower)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"log level":     "settings:\n  logLevel: loud\n",
		"time samples":  "generator:\n  timeSamples: 1\n",
		"angle range":   "generator:\n  angleMin: 10\n  angleMax: 10\n",
		"address":       "server:\n  address: \"\"\n",
		"theme":         "render:\n  theme: sepia\n",
		"format":        "render:\n  format: gif\n",
		"power range":   "render:\n  minPower: 80\n  maxPower: 60\n",
		"storage path":  "storage:\n  enabled: true\n  path: \"\"\n",
		"duration":      "server:\n  shutdownTimeout: soon\n",
		"malformed doc": "settings: [\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":8080\"\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Server.Address)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Source(t *testing.T) {
	c := Default()
	assert.Equal(t, signal.GlobalSource, c.Source())

	seed := uint64(7)
	c.Generator.Seed = &seed
	a, b := c.Source(), c.Source()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestConfig_ChartOptions(t *testing.T) {
	c := Default()
	assert.Empty(t, c.ChartOptions())

	c.Charts = ChartsConfig{Theme: "white", Width: "100%", Height: "600px", AssetsHost: "/assets/"}
	assert.Len(t, c.ChartOptions(), 3)
}
