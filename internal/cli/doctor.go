package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/loader"
	"github.com/seuros/lpexplorer/internal/sheet"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run checks on the sheet configuration",
	Long: `Run checks on the sheet configuration.

Checks performed:
  - Configuration loads
  - Sheet URL is a valid http(s) URL
  - Sheet is reachable
  - Landing page path column is present
  - Every mapped column is present
  - Latest reporting day has rows

Example:
  lpexplorer doctor
  lpexplorer doctor --json`,
	RunE: runDoctor,
}

type CheckResult struct {
	Name       string `json:"name"`
	Pass       bool   `json:"pass"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
}

var errChecksFailed = errors.New("some checks failed")

// fetchSheet returns the raw export for cfg. Swapped in tests.
var fetchSheet = func(ctx context.Context, cfg *config.Config) (string, error) {
	return loader.New(cfg).FetchRaw(ctx)
}

func checkSheetURL(cfg *config.Config) CheckResult {
	if cfg.UsesDemo() {
		return CheckResult{
			Name:       "Sheet URL",
			Pass:       false,
			Error:      "No sheet configured, demo data is served",
			Suggestion: "Run: lpexplorer settings set sheet_url <published CSV URL>",
		}
	}

	if _, err := config.SanitizeSheetURL(cfg.SheetURL); err != nil {
		return CheckResult{
			Name:       "Sheet URL",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Use the File > Share > Publish to web CSV link",
		}
	}
	return CheckResult{Name: "Sheet URL", Pass: true, Details: cfg.SheetURL}
}

func checkSheetReachable(ctx context.Context, cfg *config.Config) (CheckResult, string) {
	text, err := fetchSheet(ctx, cfg)
	if err != nil {
		return CheckResult{
			Name:       "Sheet Reachable",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Make sure the sheet is published to the web as CSV",
		}, ""
	}
	return CheckResult{
		Name:    "Sheet Reachable",
		Pass:    true,
		Details: fmt.Sprintf("%d bytes", len(text)),
	}, text
}

func checkURLColumn(report sheet.HeaderReport, columns sheet.ColumnMapping) CheckResult {
	if !report.HasURL() {
		return CheckResult{
			Name:       "Landing Page Column",
			Pass:       false,
			Error:      fmt.Sprintf("Column %q not found, every row would be skipped", columns.URL),
			Suggestion: "Run: lpexplorer settings set columns.url <header>",
		}
	}
	return CheckResult{
		Name:    "Landing Page Column",
		Pass:    true,
		Details: fmt.Sprintf("%q at position %d", columns.URL, report.Resolved["url"]+1),
	}
}

func checkMappedColumns(report sheet.HeaderReport) CheckResult {
	total := len(report.Mapping)
	if len(report.Missing) > 0 {
		return CheckResult{
			Name:       "Mapped Columns",
			Pass:       false,
			Error:      fmt.Sprintf("Missing %d columns: %s", len(report.Missing), strings.Join(report.Missing, ", ")),
			Suggestion: "Missing metrics read as 0; map them with lpexplorer settings set columns.<field> <header>",
		}
	}
	return CheckResult{
		Name:    "Mapped Columns",
		Pass:    true,
		Details: fmt.Sprintf("%d/%d columns found", total, total),
	}
}

func checkLatestDay(report sheet.HeaderReport, pages int) CheckResult {
	if report.DataRows == 0 {
		return CheckResult{
			Name:       "Latest Day",
			Pass:       false,
			Error:      "Sheet has no data rows",
			Suggestion: "Check that the published range includes data",
		}
	}

	if report.LatestDay == "" {
		return CheckResult{
			Name:    "Latest Day",
			Pass:    true,
			Details: fmt.Sprintf("no day column, %d pages from %d rows", pages, report.DataRows),
		}
	}

	if pages == 0 {
		return CheckResult{
			Name:       "Latest Day",
			Pass:       false,
			Error:      fmt.Sprintf("No pages for %s", report.LatestDay),
			Suggestion: "Rows of the latest day need a landing page path",
		}
	}
	return CheckResult{
		Name:    "Latest Day",
		Pass:    true,
		Details: fmt.Sprintf("%s, %d pages from %d rows", report.LatestDay, pages, report.DataRows),
	}
}

// diagnose runs every check that applies to cfg.
func diagnose(ctx context.Context, cfg *config.Config) []CheckResult {
	results := []CheckResult{
		{Name: "Configuration", Pass: true, Details: configSource(cfg)},
		checkSheetURL(cfg),
	}
	if !results[1].Pass {
		return results
	}

	reach, text := checkSheetReachable(ctx, cfg)
	results = append(results, reach)
	if !reach.Pass {
		return results
	}

	columns := cfg.ColumnMapping()
	report := sheet.Inspect(text, columns)
	pages := sheet.Parse(text, columns, cfg.BaseURL)

	results = append(results, checkURLColumn(report, columns))
	if !report.HasURL() {
		return results
	}
	results = append(results, checkMappedColumns(report))
	results = append(results, checkLatestDay(report, len(pages)))
	return results
}

func configSource(cfg *config.Config) string {
	if cfg.ConfigFile == "" {
		return "defaults and environment"
	}
	return cfg.ConfigFile
}

func runDoctor(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("✗ Configuration Error: %v\n", err)
		return err
	}

	results := diagnose(cmd.Context(), cfg)

	if jsonOutput {
		outputDoctorJSON(results)
	} else {
		outputDoctorHuman(results)
	}

	for _, r := range results {
		if !r.Pass {
			return errChecksFailed
		}
	}
	return nil
}

func outputDoctorHuman(results []CheckResult) {
	fmt.Println("\nLP Explorer Health Check")

	for _, r := range results {
		icon := "✓"
		if !r.Pass {
			icon = "✗"
		}

		fmt.Printf("%s %s", icon, r.Name)
		if r.Details != "" {
			fmt.Printf(" (%s)", r.Details)
		}
		fmt.Println()

		if !r.Pass {
			if r.Error != "" {
				fmt.Printf("  Error: %s\n", r.Error)
			}
			if r.Suggestion != "" {
				fmt.Printf("  Hint: %s\n", r.Suggestion)
			}
		}
	}

	passed := 0
	for _, r := range results {
		if r.Pass {
			passed++
		}
	}

	fmt.Printf("\n%d/%d checks passed\n\n", passed, len(results))
}

func outputDoctorJSON(results []CheckResult) {
	data, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(data))
}

func init() {
	doctorCmd.Flags().Bool("json", false, "Output results as JSON")
	RootCmd.AddCommand(doctorCmd)
}
