package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/handlers"
	"github.com/seuros/lpexplorer/internal/loader"
	"github.com/seuros/lpexplorer/internal/metrics"
	"github.com/seuros/lpexplorer/internal/sheet"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Inspect landing page metrics",
	Long: `Inspect landing page metrics from the configured sheet.

Each command runs one load cycle. When the sheet cannot be fetched the demo
dataset is used and the notice is printed to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Command flags
var (
	pagesQuery  string
	pagesSort   string
	pagesFormat string
)

var pagesListCmd = &cobra.Command{
	Use:   "list [--query <text>] [--sort cvr-desc] [--format table|json|csv|yaml]",
	Short: "List landing pages",
	Long: `List landing pages of the latest reporting day.

Sort keys: cvr, bounce or sessions, suffixed with -asc or -desc.

Supported formats:
  table  - Human-readable table (default on a terminal)
  json   - JSON array (default when piped)
  csv    - Comma-separated values
  yaml   - YAML list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		return writePages(selectPages(snap.Pages, pagesQuery, pagesSort), resolveFormat(pagesFormat))
	},
}

var pagesShowCmd = &cobra.Command{
	Use:   "show <url-or-path>",
	Short: "Show the conversion funnel of one page",
	Long: `Show one page with its funnel stages, compared with the other pages
matching --query (all pages by default).

Examples:
  lpexplorer pages show /pages/sleep
  lpexplorer pages show https://firstday.com/pages/sleep --query sleep --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		detail, err := buildPageDetail(snap.Pages, args[0], pagesQuery)
		if err != nil {
			return err
		}
		return writePageDetail(detail, resolveFormat(pagesFormat))
	},
}

var pagesSummaryCmd = &cobra.Command{
	Use:   "summary [--query <text>]",
	Short: "Summarize the matching pages",
	Long:  "Print session-weighted averages and plain averages for the pages matching --query.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		return writeSummary(summarize(handlers.FilterPages(snap.Pages, pagesQuery)), resolveFormat(pagesFormat))
	},
}

var pagesExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export the matching pages to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		pages := selectPages(snap.Pages, pagesQuery, pagesSort)
		if err := exportXLSX(args[0], pages); err != nil {
			return err
		}
		fmt.Printf("Exported %s to %s\n", metrics.PageLabel(len(pages)), args[0])
		return nil
	},
}

// loadSnapshot runs one load cycle for a CLI command.
var loadSnapshot = func(ctx context.Context) (*loader.Snapshot, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	snap := loader.New(cfg).Load(ctx)
	fmt.Fprintln(os.Stderr, snap.Notice)
	return snap, nil
}

// selectPages applies the search filter and sort key used by the API.
func selectPages(pages []sheet.PageRecord, query, sortKey string) []sheet.PageRecord {
	field, dir := handlers.ParseSortKey(sortKey)
	return handlers.SortPages(handlers.FilterPages(pages, query), field, dir)
}

var pageCSVHeader = []string{
	"name", "url", "cvr", "bounce", "sessions",
	"added_to_cart_rate", "reached_checkout_rate", "completed_checkout_rate", "sessions_completed",
}

func pageRow(p sheet.PageRecord) []string {
	return []string{
		p.Name, p.URL, num(p.CVR), num(p.Bounce), num(p.Sessions),
		num(p.AddedToCartRate), num(p.ReachedCheckoutRate), num(p.CompletedCheckoutRate), num(p.SessionsCompleted),
	}
}

func writePages(pages []sheet.PageRecord, format string) error {
	switch format {
	case formatJSON:
		return outputJSON(pages)
	case formatYAML:
		return outputYAML(pages)
	case formatCSV:
		return outputPagesCSV(pages)
	case formatTable:
		return outputPagesTable(pages)
	default:
		return invalidFormat(format, formatTable, formatJSON, formatCSV, formatYAML)
	}
}

func outputPagesCSV(pages []sheet.PageRecord) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(pageCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range pages {
		if err := w.Write(pageRow(p)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func outputPagesTable(pages []sheet.PageRecord) error {
	if len(pages) == 0 {
		fmt.Println("No pages found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	_, _ = fmt.Fprintln(w, "NAME\tURL\tCVR\tBOUNCE\tSESSIONS")
	_, _ = fmt.Fprintln(w, "----\t---\t---\t------\t--------")

	for _, p := range pages {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s (%s)\t%s (%s)\t%s\n",
			p.Name,
			p.URL,
			pct(p.CVR), metrics.CVRGrade(p.CVR),
			pct(p.Bounce), metrics.BounceGrade(p.Bounce),
			metrics.FormatCount(p.Sessions),
		)
	}

	return nil
}

// pageDetail is the CLI rendition of the page detail view.
type pageDetail struct {
	Page       sheet.PageRecord   `json:"page" yaml:"page"`
	Stages     []metrics.Stage    `json:"stages" yaml:"stages"`
	Comparison metrics.Comparison `json:"comparison" yaml:"comparison"`
	OthersText string             `json:"others_label" yaml:"others_label"`
}

func buildPageDetail(pages []sheet.PageRecord, target, query string) (pageDetail, error) {
	page, ok := handlers.FindPage(pages, strings.TrimSpace(target))
	if !ok {
		return pageDetail{}, fmt.Errorf("page not found: %s", target)
	}

	comparison := metrics.Compare(page, handlers.FilterPages(pages, query))
	return pageDetail{
		Page:       page,
		Stages:     metrics.StagesFor(page),
		Comparison: comparison,
		OthersText: metrics.PageLabel(comparison.Others.Count),
	}, nil
}

func writePageDetail(d pageDetail, format string) error {
	switch format {
	case formatJSON:
		return outputJSON(d)
	case formatYAML:
		return outputYAML(d)
	case formatCSV:
		return outputStagesCSV(d.Stages)
	case formatTable:
		return outputPageDetailTable(d)
	default:
		return invalidFormat(format, formatTable, formatJSON, formatCSV, formatYAML)
	}
}

func outputStagesCSV(stages []metrics.Stage) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"stage", "count", "pct", "drop", "drop_pct"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, s := range stages {
		if err := w.Write([]string{s.Name, num(s.Count), num(s.Pct), num(s.Drop), num(s.DropPct)}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func outputPageDetailTable(d pageDetail) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	p := d.Page
	_, _ = fmt.Fprintf(w, "Page:\t%s\n", p.Name)
	_, _ = fmt.Fprintf(w, "URL:\t%s\n", p.URL)
	_, _ = fmt.Fprintf(w, "CVR:\t%s (%s)\n", pct(p.CVR), metrics.CVRGrade(p.CVR))
	_, _ = fmt.Fprintf(w, "Bounce:\t%s (%s)\n", pct(p.Bounce), metrics.BounceGrade(p.Bounce))
	_, _ = fmt.Fprintf(w, "Sessions:\t%s\n", metrics.FormatCount(p.Sessions))
	_ = w.Flush()

	fmt.Println()
	_, _ = fmt.Fprintln(w, "STAGE\tSESSIONS\tOF TOTAL\tDROP-OFF")
	_, _ = fmt.Fprintln(w, "-----\t--------\t--------\t--------")
	for i, s := range d.Stages {
		drop := "-"
		if i > 0 {
			drop = fmt.Sprintf("%s (%s)", num(s.Drop), pct(s.DropPct))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, num(s.Count), pct(s.Pct), drop)
	}
	_ = w.Flush()

	others := d.Comparison.Others
	fmt.Println()
	if others.Count == 0 {
		fmt.Println("No other pages to compare with")
		return nil
	}
	fmt.Printf("Compared with %s: weighted CVR %s, weighted bounce %s\n",
		d.OthersText, pct(others.WeightedCVR), pct(others.WeightedBounce))
	return nil
}

// pageSummary combines weighted and unweighted statistics.
type pageSummary struct {
	Aggregate metrics.AggregateStats `json:"aggregate" yaml:"aggregate"`
	Summary   metrics.Summary        `json:"summary" yaml:"summary"`
}

func summarize(pages []sheet.PageRecord) pageSummary {
	return pageSummary{
		Aggregate: metrics.Aggregate(pages),
		Summary:   metrics.Summarize(pages),
	}
}

func (s pageSummary) rows() [][2]string {
	a := s.Aggregate
	return [][2]string{
		{"pages", fmt.Sprint(a.Count)},
		{"total_sessions", num(a.TotalSessions)},
		{"weighted_cvr", pct(a.WeightedCVR)},
		{"weighted_bounce", pct(a.WeightedBounce)},
		{"avg_cvr", pct(s.Summary.AvgCVR)},
		{"median_cvr", pct(s.Summary.MedianCVR)},
		{"non_bounce", pct(a.Funnel.NonBouncePct)},
		{"added_to_cart", pct(a.Funnel.AddedPct)},
		{"reached_checkout", pct(a.Funnel.ReachedPct)},
		{"completed_checkout", pct(a.Funnel.CompletedPct)},
	}
}

func writeSummary(s pageSummary, format string) error {
	switch format {
	case formatJSON:
		return outputJSON(s)
	case formatYAML:
		return outputYAML(s)
	case formatCSV:
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		if err := w.Write([]string{"metric", "value"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, r := range s.rows() {
			if err := w.Write(r[:]); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	case formatTable:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer func() { _ = w.Flush() }()
		for _, r := range s.rows() {
			_, _ = fmt.Fprintf(w, "%s:\t%s\n", r[0], r[1])
		}
		return nil
	default:
		return invalidFormat(format, formatTable, formatJSON, formatCSV, formatYAML)
	}
}

// exportXLSX writes pages to a "Pages" sheet and their summary to a
// "Summary" sheet.
func exportXLSX(path string, pages []sheet.PageRecord) error {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("export file must end in .xlsx: %s", path)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const pagesSheet, summarySheet = "Pages", "Summary"
	if err := f.SetSheetName("Sheet1", pagesSheet); err != nil {
		return err
	}

	for i, h := range pageCSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(pagesSheet, cell, h); err != nil {
			return err
		}
	}

	for r, p := range pages {
		values := []any{
			p.Name, p.URL, p.CVR, p.Bounce, p.Sessions,
			p.AddedToCartRate, p.ReachedCheckoutRate, p.CompletedCheckoutRate, p.SessionsCompleted,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(pagesSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	for i, row := range summarize(pages).rows() {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(pagesCmd)
	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesShowCmd)
	pagesCmd.AddCommand(pagesSummaryCmd)
	pagesCmd.AddCommand(pagesExportCmd)

	pagesCmd.PersistentFlags().StringVarP(&pagesQuery, "query", "q", "", "Only pages whose name or URL contains this text")
	pagesCmd.PersistentFlags().StringVarP(&pagesFormat, "format", "f", "", "Output format (table, json, csv, yaml)")

	pagesListCmd.Flags().StringVarP(&pagesSort, "sort", "s", handlers.DefaultSort, "Sort key (cvr|bounce|sessions)-(asc|desc)")
	pagesExportCmd.Flags().StringVarP(&pagesSort, "sort", "s", handlers.DefaultSort, "Sort key (cvr|bounce|sessions)-(asc|desc)")
}
