package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seuros/lpexplorer/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the local settings file",
	Long: `Manage the local settings file.

Settings are stored as TOML in $XDG_CONFIG_HOME/lpexplorer/lpexplorer.toml.
An lpexplorer.toml in the working directory takes precedence when present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var settingsFormat string

// settingsPath is the file written by set and reset.
var settingsPath = config.SettingsPath

var settingsShowCmd = &cobra.Command{
	Use:   "show [--format table|json|yaml]",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return writeSettings(cfg, resolveFormat(settingsFormat))
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Long: `Store a setting in the local settings file.

Keys:
  sheet_url, base_url, port, fetch_timeout, access_password, demo
  columns.day, columns.url, columns.name, columns.cvr, columns.bounce,
  columns.sessions, columns.added_to_cart, columns.reached_checkout,
  columns.completed_checkout, columns.sessions_completed

An empty sheet_url switches to the demo dataset.

Examples:
  lpexplorer settings set sheet_url "https://docs.google.com/.../pub?output=csv"
  lpexplorer settings set columns.cvr "Conversion Rate"
  lpexplorer settings set sheet_url ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settingsPath()
		if err := config.Set(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Saved %s to %s\n", args[0], path)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settingsPath()
		if err := config.Reset(path); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", path)
		return nil
	},
}

func writeSettings(cfg *config.Config, format string) error {
	settings := cfg.Settings()

	switch format {
	case formatJSON:
		return outputJSON(settings)
	case formatYAML:
		return outputYAML(settings)
	case formatTable:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer func() { _ = w.Flush() }()

		_, _ = fmt.Fprintln(w, "KEY\tVALUE")
		_, _ = fmt.Fprintln(w, "---\t-----")
		for _, s := range settings {
			value := s.Value
			if value == "" {
				value = "(none)"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\n", s.Key, value)
		}
		if cfg.ConfigFile != "" {
			_, _ = fmt.Fprintf(w, "\nLoaded from:\t%s\n", cfg.ConfigFile)
		}
		return nil
	default:
		return invalidFormat(format, formatTable, formatJSON, formatYAML)
	}
}

func init() {
	RootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)

	settingsShowCmd.Flags().StringVarP(&settingsFormat, "format", "f", "", "Output format (table, json, yaml)")
}
