package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: &level}))

	var out bytes.Buffer
	root := NewRootCommand(logger, &level)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "config.yaml")
	doc := fmt.Sprintf(`
settings:
  logLevel: debug
generator:
  seed: 3
storage:
  enabled: true
  path: %s
  maxBatchSize: 64
`, filepath.Join(dir, "captures.sqlite"))
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestInvoke(t *testing.T) {
	out, err := run(t, "invoke", "generate_plot_json")
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0, 5.0}, v["data"].([]any)[0].(map[string]any)["x"])
}

func TestInvoke_Unknown(t *testing.T) {
	_, err := run(t, "invoke", "generate_pie_json")
	assert.ErrorContains(t, err, "unknown command")
}

func TestInvoke_RequiresName(t *testing.T) {
	_, err := run(t, "invoke")
	assert.Error(t, err)
}

func TestLogLevelOverride(t *testing.T) {
	_, err := run(t, "--log-level", "shout", "stats")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "5,000")
	assert.Contains(t, out, "stddev")
}

func TestChart(t *testing.T) {
	out, err := run(t, "chart", "heatmap")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Heatmap Plot</title>")

	_, err = run(t, "chart", "pie")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "render", "-o", filepath.Join(dir, "surface"), "--theme", "marine")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "surface.png"))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 600)

	_, err = run(t, "render", "-o", filepath.Join(dir, "bad"), "--theme", "sepia")
	assert.Error(t, err)
}

func TestCaptureArchive(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, err := run(t, "-c", cfg, "invoke", "generate_surface_plot_json")
	require.NoError(t, err)
	_, err = run(t, "-c", cfg, "invoke", "generate_heatmap_plot_json")
	require.NoError(t, err)

	out, err := run(t, "-c", cfg, "captures")
	require.NoError(t, err)
	assert.Contains(t, out, "generate_surface_plot_json")
	assert.Contains(t, out, "generate_heatmap_plot_json")
	assert.Contains(t, out, "50x100")

	out, err = run(t, "-c", cfg, "stats", "--capture", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "5,000")

	_, err = run(t, "-c", cfg, "render", "--capture", "2", "-f", "jpeg", "-o", filepath.Join(dir, "capture"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "capture.jpeg"))

	_, err = run(t, "-c", cfg, "stats", "--capture", "99")
	assert.Error(t, err)
}

func TestCaptures_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := fmt.Sprintf("storage:\n  path: %s\n", filepath.Join(t.TempDir(), "none.sqlite"))
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := run(t, "-c", path, "captures")
	assert.ErrorContains(t, err, "does not exist")
}
