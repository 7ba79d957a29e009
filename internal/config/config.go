package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// DefaultSheetURL is the published demo sheet used when nothing else is
// configured.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRCpN6f4J91aFKu9PFdPyqkWxc_q96mYif3JyCY9zI2C4VmoNHULLTvpa-XDOS_fkV9cIn2_0RfYZ_E/pub?gid=1538474996&single=true&output=csv"

const (
	appName             = "lpexplorer"
	defaultPort         = "3000"
	defaultFetchTimeout = 30 * time.Second
)

// Config holds application configuration
type Config struct {
	SheetURL       string
	BaseURL        string
	Columns        sheet.ColumnMapping // overrides only; blank fields keep defaults
	Port           string
	FetchTimeout   time.Duration
	AccessPassword string
	Demo           bool // force the built-in demo dataset
	ConfigFile     string
}

// ColumnMapping returns the default header names with configured overrides
// applied.
func (c *Config) ColumnMapping() sheet.ColumnMapping {
	return sheet.DefaultColumns().WithOverrides(c.Columns)
}

// UsesDemo reports whether load cycles should skip the fetch.
func (c *Config) UsesDemo() bool {
	return c.Demo || strings.TrimSpace(c.SheetURL) == ""
}

// columnKeys maps config keys to their environment variable fallback.
var columnKeys = []struct {
	key string
	env string
	set func(*sheet.ColumnMapping, string)
}{
	{"columns.day", "COL_DAY", func(m *sheet.ColumnMapping, v string) { m.Day = v }},
	{"columns.url", "COL_URL", func(m *sheet.ColumnMapping, v string) { m.URL = v }},
	{"columns.name", "COL_NAME", func(m *sheet.ColumnMapping, v string) { m.Name = v }},
	{"columns.cvr", "COL_CVR", func(m *sheet.ColumnMapping, v string) { m.CVR = v }},
	{"columns.bounce", "COL_BOUNCE", func(m *sheet.ColumnMapping, v string) { m.Bounce = v }},
	{"columns.sessions", "COL_SESSIONS", func(m *sheet.ColumnMapping, v string) { m.Sessions = v }},
	{"columns.added_to_cart", "COL_ADDED_TO_CART", func(m *sheet.ColumnMapping, v string) { m.AddedToCart = v }},
	{"columns.reached_checkout", "COL_REACHED_CHECKOUT", func(m *sheet.ColumnMapping, v string) { m.ReachedCheckout = v }},
	{"columns.completed_checkout", "COL_COMPLETED_CHECKOUT", func(m *sheet.ColumnMapping, v string) { m.CompletedCheckout = v }},
	{"columns.sessions_completed", "COL_SESSIONS_COMPLETED", func(m *sheet.ColumnMapping, v string) { m.SessionsCompleted = v }},
}

// Load loads configuration from multiple sources with priority:
// 1. Command flags (see LoadWithOverrides)
// 2. Config file (./lpexplorer.toml or $XDG_CONFIG_HOME/lpexplorer/lpexplorer.toml)
// 3. Environment variables
func Load() (*Config, error) {
	v := newBaseViper()
	_ = v.ReadInConfig()
	return buildConfig(v, "", ""), nil
}

// LoadWithOverrides loads config and applies flag overrides
func LoadWithOverrides(sheetURL, port string) (*Config, error) {
	v := newBaseViper()
	_ = v.ReadInConfig()
	return buildConfig(v, sheetURL, port), nil
}

func newBaseViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(appName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	return v
}

// configDir follows the XDG base directory layout. It is resolved on every call
// so tests can point HOME elsewhere.
func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome == "" {
		return ""
	}
	return filepath.Join(configHome, appName)
}

func buildConfig(v *viper.Viper, overrideSheetURL, overridePort string) *Config {
	cfg := &Config{
		SheetURL:     DefaultSheetURL,
		BaseURL:      sheet.DefaultBaseURL,
		Port:         defaultPort,
		FetchTimeout: defaultFetchTimeout,
		ConfigFile:   v.ConfigFileUsed(),
	}

	// Config file values. An explicitly empty sheet_url selects demo data.
	if v.IsSet("sheet_url") {
		cfg.SheetURL = strings.TrimSpace(v.GetString("sheet_url"))
	} else if env, ok := os.LookupEnv("SHEET_URL"); ok {
		cfg.SheetURL = strings.TrimSpace(env)
	}

	cfg.BaseURL = stringSetting(v, "base_url", "BASE_URL", cfg.BaseURL)
	cfg.Port = stringSetting(v, "port", "PORT", cfg.Port)
	cfg.AccessPassword = stringSetting(v, "access_password", "ACCESS_PASSWORD", "")

	if v.IsSet("fetch_timeout") {
		cfg.FetchTimeout = v.GetDuration("fetch_timeout")
	} else if env := os.Getenv("FETCH_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			cfg.FetchTimeout = d
		}
	}

	if v.IsSet("demo") {
		cfg.Demo = v.GetBool("demo")
	} else if env := os.Getenv("DEMO"); env != "" {
		cfg.Demo = env == "true" || env == "1"
	}

	for _, ck := range columnKeys {
		if val := stringSetting(v, ck.key, ck.env, ""); val != "" {
			ck.set(&cfg.Columns, val)
		}
	}

	cfg.BaseURL = NormalizeBaseURL(cfg.BaseURL)

	// Apply overrides (flags) last
	if overrideSheetURL != "" {
		cfg.SheetURL = overrideSheetURL
	}
	if overridePort != "" {
		cfg.Port = overridePort
	}

	return cfg
}

// stringSetting reads key from the config file, then env, then fallback.
func stringSetting(v *viper.Viper, key, env, fallback string) string {
	if v.IsSet(key) {
		if val := strings.TrimSpace(v.GetString(key)); val != "" {
			return val
		}
		return fallback
	}
	if val := strings.TrimSpace(os.Getenv(env)); val != "" {
		return val
	}
	return fallback
}
