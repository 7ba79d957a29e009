package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Setting is one displayable configuration entry.
type Setting struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// SettingKeys lists the keys accepted by Set.
func SettingKeys() []string {
	keys := []string{"sheet_url", "base_url", "port", "fetch_timeout", "access_password", "demo"}
	for _, ck := range columnKeys {
		keys = append(keys, ck.key)
	}
	return keys
}

// SettingsPath returns the per-user settings file.
func SettingsPath() string {
	dir := configDir()
	if dir == "" {
		return appName + ".toml"
	}
	return filepath.Join(dir, appName+".toml")
}

// Set validates value for key and writes it to the settings file at path,
// keeping every other entry.
func Set(path, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(SettingKeys(), key) {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(SettingKeys(), ", "))
	}

	typed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read settings: %w", err)
		}
	}

	v.Set(key, typed)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Reset deletes the settings file at path. A missing file is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove settings: %w", err)
	}
	return nil
}

func parseSetting(key, value string) (any, error) {
	switch key {
	case "sheet_url":
		return SanitizeSheetURL(value)
	case "base_url":
		if value == "" {
			return "", errors.New("base URL cannot be empty")
		}
		return NormalizeBaseURL(value), nil
	case "port":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 65535 {
			return nil, errors.New("port must be between 1 and 65535")
		}
		return value, nil
	case "fetch_timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, errors.New("fetch_timeout must be a duration such as 30s")
		}
		return d.String(), nil
	case "demo":
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}

// Settings lists the effective configuration for display. The access
// password is masked.
func (c *Config) Settings() []Setting {
	password := ""
	if c.AccessPassword != "" {
		password = "********"
	}

	settings := []Setting{
		{"sheet_url", c.SheetURL},
		{"base_url", c.BaseURL},
		{"port", c.Port},
		{"fetch_timeout", c.FetchTimeout.String()},
		{"access_password", password},
		{"demo", strconv.FormatBool(c.Demo)},
	}

	effective := c.ColumnMapping()
	for _, f := range effective.Fields() {
		settings = append(settings, Setting{"columns." + f.Field, f.Header})
	}
	return settings
}
