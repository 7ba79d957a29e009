// Package sheet turns a published spreadsheet CSV export into landing page
// records.
package sheet

import (
	"strings"
)

// DefaultBaseURL is prefixed to every landing page path.
const DefaultBaseURL = "https://firstday.com"

// PageRecord holds the metrics of one landing page for the latest reporting
// day. Rates are percentages on a 0-100 scale.
type PageRecord struct {
	URL                   string  `json:"url" yaml:"url"`
	Name                  string  `json:"name" yaml:"name"`
	CVR                   float64 `json:"cvr" yaml:"cvr"`
	Bounce                float64 `json:"bounce" yaml:"bounce"`
	Sessions              float64 `json:"sessions" yaml:"sessions"`
	AddedToCartRate       float64 `json:"added_to_cart_rate" yaml:"added_to_cart_rate"`
	ReachedCheckoutRate   float64 `json:"reached_checkout_rate" yaml:"reached_checkout_rate"`
	CompletedCheckoutRate float64 `json:"completed_checkout_rate" yaml:"completed_checkout_rate"`
	SessionsCompleted     float64 `json:"sessions_completed" yaml:"sessions_completed"`
}

type row struct {
	day  string
	path string
	page PageRecord
}

// Lines splits text into trimmed, non-empty lines.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = trimField(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Parse converts CSV text into page records using columns to locate fields.
// When a day column is present only the rows of the latest day are kept.
// Parse never fails: malformed input yields fewer records or zero values.
func Parse(text string, columns ColumnMapping, baseURL string) []PageRecord {
	lines := Lines(text)
	if len(lines) < 2 {
		return []PageRecord{}
	}

	idx := columns.Resolve(SplitLine(lines[0]))
	rows := readRows(lines[1:], idx)
	if len(rows) == 0 {
		return []PageRecord{}
	}

	if idx.Day >= 0 {
		days := make([]string, len(rows))
		for i, r := range rows {
			days[i] = r.day
		}
		if latest := LatestDay(days); latest != "" {
			kept := rows[:0:0]
			for _, r := range rows {
				if r.day == latest {
					kept = append(kept, r)
				}
			}
			rows = kept
		}
	}

	base := strings.TrimRight(baseURL, "/")
	pages := make([]PageRecord, 0, len(rows))
	for _, r := range rows {
		p := r.page
		p.URL = base + NormalizePath(r.path)
		pages = append(pages, p)
	}
	return pages
}

func readRows(lines []string, idx ColumnIndex) []row {
	rows := make([]row, 0, len(lines))
	for _, line := range lines {
		fields := SplitLine(line)
		day := cell(fields, idx.Day)
		path := cell(fields, idx.URL)

		if path == "" {
			continue
		}
		// stray header rows show up in multi-day exports
		if strings.EqualFold(day, "day") {
			continue
		}

		name := cell(fields, idx.Name)
		if name == "" {
			name = path
		}

		rows = append(rows, row{
			day:  day,
			path: path,
			page: PageRecord{
				Name:                  name,
				CVR:                   rate(fields, idx.CVR),
				Bounce:                rate(fields, idx.Bounce),
				Sessions:              ParseNumeric(cell(fields, idx.Sessions)),
				AddedToCartRate:       rate(fields, idx.AddedToCart),
				ReachedCheckoutRate:   rate(fields, idx.ReachedCheckout),
				CompletedCheckoutRate: rate(fields, idx.CompletedCheckout),
				SessionsCompleted:     ParseNumeric(cell(fields, idx.SessionsCompleted)),
			},
		})
	}
	return rows
}

func rate(fields []string, idx int) float64 {
	return NormalizeRate(ParseNumeric(cell(fields, idx)))
}

// LatestDay returns the lexically greatest non-empty day. This matches
// chronological order only for sortable formats such as YYYY-MM-DD.
func LatestDay(days []string) string {
	latest := ""
	for _, d := range days {
		if d != "" && d > latest {
			latest = d
		}
	}
	return latest
}
