package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "nope", "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Bulk, cfg.Bulk)
	require.Equal(t, 100, cfg.Bulk.Cap)
	require.Equal(t, 999, cfg.Bulk.CountCap)
	require.Equal(t, time.Second, cfg.Bulk.SettleDelay())
	require.Equal(t, 500*time.Millisecond, cfg.Bulk.LidCloseDelay())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.DBPath = "/tmp/decks.db"
	cfg.Bulk.Easing = "linear"
	cfg.Data.LatencyMS = 120
	require.NoError(t, svc.Save(cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "version = 1", "Config should be written as TOML")
	require.Contains(t, string(raw), "[bulk]")

	loaded, err := svc.Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bulk]\ncap = 25\n"), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	require.Equal(t, 25, cfg.Bulk.Cap)
	require.Equal(t, 999, cfg.Bulk.CountCap, "Unset keys should keep their defaults")
	require.Equal(t, "ease-out-cubic", cfg.Bulk.Easing)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bulk]\ninterval_ms = 0\n"), 0644))

	_, err := NewConfigService(path).Load()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoadFromPathMissing(t *testing.T) {
	_, err := NewConfigService("").LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
