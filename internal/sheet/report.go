package sheet

import "strings"

// HeaderReport describes how a CSV export lines up with a column mapping.
type HeaderReport struct {
	Headers   []string       `json:"headers"`
	Resolved  map[string]int `json:"resolved"`
	Missing   []string       `json:"missing"`
	DataRows  int            `json:"data_rows"`
	LatestDay string         `json:"latest_day,omitempty"`
	Mapping   []FieldHeader  `json:"mapping"`
}

// HasURL reports whether the path column resolved. Without it every row is
// skipped.
func (r HeaderReport) HasURL() bool {
	idx, ok := r.Resolved["url"]
	return ok && idx >= 0
}

// Inspect resolves columns against the header row of text without building
// records.
func Inspect(text string, columns ColumnMapping) HeaderReport {
	report := HeaderReport{
		Resolved: map[string]int{},
		Missing:  []string{},
		Mapping:  columns.Fields(),
	}

	lines := Lines(text)
	if len(lines) == 0 {
		for _, f := range report.Mapping {
			report.Missing = append(report.Missing, f.Field)
		}
		return report
	}

	report.Headers = SplitLine(lines[0])
	idx := columns.Resolve(report.Headers)
	byField := idx.byField()
	for _, f := range report.Mapping {
		if pos := byField[f.Field]; pos >= 0 {
			report.Resolved[f.Field] = pos
		} else {
			report.Missing = append(report.Missing, f.Field)
		}
	}

	days := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := SplitLine(line)
		day := cell(fields, idx.Day)
		if strings.EqualFold(day, "day") {
			continue
		}
		report.DataRows++
		days = append(days, day)
	}
	if idx.Day >= 0 {
		report.LatestDay = LatestDay(days)
	}

	return report
}
