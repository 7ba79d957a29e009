package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWritesAndPreservesEntries(t *testing.T) {
	home := isolate(t)
	path := SettingsPath()
	assert.Equal(t, filepath.Join(home, ".config", "lpexplorer", "lpexplorer.toml"), path)

	require.NoError(t, Set(path, "sheet_url", "https://example.com/s.csv"))
	require.NoError(t, Set(path, "columns.cvr", "CR"))
	require.NoError(t, Set(path, "FETCH_TIMEOUT", "45s"))
	require.NoError(t, Set(path, "demo", "false"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s.csv", cfg.SheetURL)
	assert.Equal(t, "CR", cfg.ColumnMapping().CVR)
	assert.Equal(t, 45*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.Demo)
}

func TestSetRejectsUnknownKeysAndBadValues(t *testing.T) {
	isolate(t)
	path := SettingsPath()

	assert.ErrorContains(t, Set(path, "colour", "red"), "unknown setting")
	assert.Error(t, Set(path, "sheet_url", "ftp://x"))
	assert.Error(t, Set(path, "port", "99999"))
	assert.Error(t, Set(path, "fetch_timeout", "soon"))
	assert.Error(t, Set(path, "demo", "maybe"))
	assert.Error(t, Set(path, "base_url", " "))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestResetRemovesFile(t *testing.T) {
	isolate(t)
	path := SettingsPath()

	require.NoError(t, Reset(path))
	require.NoError(t, Set(path, "port", "8080"))
	require.NoError(t, Reset(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
}

func TestSettingsMasksPassword(t *testing.T) {
	cfg := &Config{
		SheetURL:       "https://example.com/s.csv",
		AccessPassword: "secret",
		FetchTimeout:   time.Second,
	}

	values := map[string]string{}
	for _, s := range cfg.Settings() {
		values[s.Key] = s.Value
	}

	assert.Equal(t, "********", values["access_password"])
	assert.Equal(t, "1s", values["fetch_timeout"])
	assert.Equal(t, "landing_page_path", values["columns.url"])
	assert.Len(t, values, 16)
}
