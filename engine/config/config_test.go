package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAMLOverridesDefaults(t *testing.T) {
	doc := []byte(`
log:
  level: debug
loader:
  workers: 8
  timeout: 5s
window:
  title: demo
  gl_version: "3.3"
`)
	cfg, err := Parse(doc, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Loader.Workers)
	assert.Equal(t, 5*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, 3, cfg.Loader.RetryMax)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, "3.3", cfg.Window.GLVersion)
}

func TestParseTOML(t *testing.T) {
	doc := []byte(`
[loader]
timeout = "250ms"
retry_max = 0
root = "shaders"

[window]
vsync = false
width = 640
`)
	cfg, err := Parse(doc, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Loader.Timeout)
	assert.Equal(t, 0, cfg.Loader.RetryMax)
	assert.Equal(t, "shaders", cfg.Loader.Root)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, 640, cfg.Window.Width)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("loader:\n  wrokers: 2\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrokers")
}

func TestParseRejectsBadGLVersion(t *testing.T) {
	_, err := Parse([]byte("window:\n  gl_version: three\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gl_version")
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oxy.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = Load(filepath.Join(dir, "oxy.json"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoggerJSON(t *testing.T) {
	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", Format: "json"}

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Str("k", "v").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "time")
}

func TestLoggerRejectsBadSettings(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	_, err := cfg.Logger(&bytes.Buffer{})
	assert.Error(t, err)

	cfg = Default()
	cfg.Log.Format = "xml"
	_, err = cfg.Logger(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.WindowOptions(), 4)

	cfg.Loader.Root = "assets"
	assert.Len(t, cfg.LoaderOptions(zerolog.Nop()), 5)
}
