package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "127.0.0.1:7400", config.Listen)
	assert.Equal(t, "length16", config.Codec)
	assert.Equal(t, 1024*1024, config.Framing.MaxFrameSize)
	assert.Equal(t, 4*1024, config.Framing.ReadChunkSize)
	assert.Equal(t, 32*1024, config.Framing.HighWaterMark)
	assert.Equal(t, 8*1024, config.Framing.InitialCapacity)
	assert.False(t, config.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9400", config.Metrics.Listen)
	assert.Equal(t, "./capture", config.Capture.Dir)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framewire.yaml")

	config := DefaultConfig()
	config.Listen = "0.0.0.0:9999"
	config.Codec = "checksum"
	config.Framing.MaxFrameSize = 512
	config.Metrics.Enabled = true

	require.NoError(t, SaveConfig(config, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", loaded.Listen)
	assert.Equal(t, "checksum", loaded.Codec)
	assert.Equal(t, 512, loaded.Framing.MaxFrameSize)
	assert.True(t, loaded.Metrics.Enabled)

	// Saved with owner-only permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framewire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: 10.0.0.1:7000\n"), 0600))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:7000", loaded.Listen)
	// Everything unset falls back to defaults.
	assert.Equal(t, "length16", loaded.Codec)
	assert.Equal(t, 1024*1024, loaded.Framing.MaxFrameSize)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
