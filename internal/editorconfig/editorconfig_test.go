package editorconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Defaults
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	dir := t.TempDir()

	// Missing file
	{
		cfg, err := Load(filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	}

	// Partial overlay
	{
		path := filepath.Join(dir, "editor.yaml")
		err := os.WriteFile(path, []byte(`
window:
  refreshHz: 144
game:
  fov: 40
  resetOnEnter: true
`), 0644)
		require.NoError(t, err)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 144, cfg.Window.RefreshHz)
		assert.Equal(t, float32(40), cfg.Game.FOV)
		assert.True(t, cfg.Game.ResetOnEnter)
		assert.Equal(t, 960, cfg.Window.Width)
		assert.Equal(t, float32(0.00004), cfg.Game.Gravity)
	}

	// Out of range values are normalised
	{
		path := filepath.Join(dir, "odd.yaml")
		err := os.WriteFile(path, []byte(`
scene:
  capacity: 1
game:
  fov: 200
  fovMin: 90
  fovMax: 10
`), 0644)
		require.NoError(t, err)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Scene.Capacity)
		assert.Equal(t, float32(10), cfg.Game.FOVMin)
		assert.Equal(t, float32(90), cfg.Game.FOVMax)
		assert.Equal(t, float32(90), cfg.Game.FOV)
	}

	// Invalid yaml
	{
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "mouseTurnScale: 0.2")

	path := filepath.Join(t.TempDir(), "editor.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
