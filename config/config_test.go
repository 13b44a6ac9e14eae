package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lightlab.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60.0, cfg.Camera.FieldOfView)
	assert.Equal(t, 50, cfg.Surface.NumX)
	assert.Equal(t, 0.1, cfg.Floor.CellSize)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
[surface]
num_x = 20
normalized_uv = true

[materials]
show_axes = true

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Surface.NumX)
	assert.Equal(t, 50, cfg.Surface.NumZ)
	assert.True(t, cfg.Surface.NormalizedUV)
	assert.True(t, cfg.Materials.ShowAxes)
	assert.Equal(t, "Smiley.png", cfg.Materials.Image)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeFile(t, "[floor]\ncell = 0.2\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "floor.cell")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "[surface]\nnum_x = 0\nx_max = -10\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "subdivisions")
	assert.ErrorContains(t, err, "domain is empty")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config:")
}

func TestValidateLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	assert.ErrorContains(t, cfg.Validate(), "verbose")
}
