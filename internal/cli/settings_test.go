package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/sheet"
)

func stubSettingsPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lpexplorer", "lpexplorer.toml")
	original := settingsPath
	settingsPath = func() string { return path }
	t.Cleanup(func() {
		settingsPath = original
		RootCmd.SetArgs(nil)
	})
	return path
}

func TestSettingsSetAndResetCommands(t *testing.T) {
	path := stubSettingsPath(t)

	output := captureStdout(t, func() {
		RootCmd.SetArgs([]string{"settings", "set", "columns.cvr", "Conversion Rate"})
		require.NoError(t, RootCmd.Execute())
	})
	assert.Contains(t, output, "Saved columns.cvr")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "Conversion Rate", v.GetString("columns.cvr"))

	output = captureStdout(t, func() {
		RootCmd.SetArgs([]string{"settings", "reset"})
		require.NoError(t, RootCmd.Execute())
	})
	assert.Contains(t, output, "Removed")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSettingsSetRejectsUnknownKey(t *testing.T) {
	stubSettingsPath(t)

	RootCmd.SetArgs([]string{"settings", "set", "colour", "blue"})
	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestWriteSettingsTable(t *testing.T) {
	cfg := &config.Config{
		SheetURL:       "",
		BaseURL:        sheet.DefaultBaseURL,
		Port:           "3000",
		FetchTimeout:   30 * time.Second,
		AccessPassword: "fdparty",
		ConfigFile:     "/tmp/lpexplorer.toml",
	}

	output := captureStdout(t, func() {
		require.NoError(t, writeSettings(cfg, formatTable))
	})

	assert.Contains(t, output, "sheet_url")
	assert.Contains(t, output, "(none)")
	assert.Contains(t, output, "********")
	assert.NotContains(t, output, "fdparty")
	assert.Contains(t, output, "columns.cvr")
	assert.Contains(t, output, "conversion_rate")
	assert.Contains(t, output, "/tmp/lpexplorer.toml")
}

func TestWriteSettingsRejectsCSV(t *testing.T) {
	err := writeSettings(&config.Config{}, formatCSV)
	require.Error(t, err)
}
