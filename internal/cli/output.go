package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
	formatYAML  = "yaml"
)

// stdoutIsTerminal is swapped in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveFormat picks table for interactive use and JSON for pipes unless a
// format was given explicitly.
func resolveFormat(format string) string {
	if format != "" {
		return format
	}
	if stdoutIsTerminal() {
		return formatTable
	}
	return formatJSON
}

func invalidFormat(format string, valid ...string) error {
	return fmt.Errorf("invalid format: %s (valid: %v)", format, valid)
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func outputYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	fmt.Print(string(data))
	return nil
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
