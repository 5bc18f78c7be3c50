package viper_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/catalogo"
	catviper "github.com/fwojciec/catalogo/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests use t.Setenv and cannot run in parallel.

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := catviper.Load("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".catalogo", "catalogo.db"), cfg.DBPath)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, "catalogo.yaml", `
db: /tmp/siga.db
feed: /data/CATALOGO_BIENES_SERVICIOS.csv
encoding: LATIN1
batch_size: 500
debounce: 150ms
log_level: debug
`)

	cfg, err := catviper.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/siga.db", cfg.DBPath)
	assert.Equal(t, "/data/CATALOGO_BIENES_SERVICIOS.csv", cfg.FeedPath)
	assert.Equal(t, "latin1", cfg.Encoding)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CATALOGO_BATCH_SIZE", "250")
	t.Setenv("CATALOGO_DB", "/var/lib/catalogo.db")

	path := writeConfig(t, "catalogo.yaml", "batch_size: 500\n")

	cfg, err := catviper.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.Equal(t, "/var/lib/catalogo.db", cfg.DBPath)
}

func TestLoad_FindsFileInWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalogo.toml"), []byte("batch_size = 42\n"), 0o644))
	t.Chdir(dir)

	cfg, err := catviper.Load("")

	require.NoError(t, err)
	assert.Equal(t, 42, cfg.BatchSize)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		_, err := catviper.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
	})

	t.Run("non-positive batch size", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("CATALOGO_BATCH_SIZE", "0")

		_, err := catviper.Load(writeConfig(t, "catalogo.yaml", "{}\n"))

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("CATALOGO_LOG_LEVEL", "loud")

		_, err := catviper.Load(writeConfig(t, "catalogo.yaml", "{}\n"))

		assert.Equal(t, catalogo.EINVALID, catalogo.ErrorCode(err))
	})
}
