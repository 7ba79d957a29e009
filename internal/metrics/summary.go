package metrics

import (
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// Summary is the unweighted overview shown above a page list.
type Summary struct {
	Count         int     `json:"count" yaml:"count"`
	TotalSessions float64 `json:"total_sessions" yaml:"total_sessions"`
	AvgCVR        float64 `json:"avg_cvr" yaml:"avg_cvr"`
	MedianCVR     float64 `json:"median_cvr" yaml:"median_cvr"`
}

// Summarize computes plain averages over records. Every page counts the
// same regardless of traffic.
func Summarize(records []sheet.PageRecord) Summary {
	summary := Summary{
		Count:         len(records),
		TotalSessions: TotalSessions(records),
	}
	if len(records) == 0 {
		return summary
	}

	cvr := make(stats.Float64Data, len(records))
	for i, r := range records {
		cvr[i] = r.CVR
	}
	// errors only signal empty input, which is handled above
	summary.AvgCVR, _ = stats.Mean(cvr)
	summary.MedianCVR, _ = stats.Median(cvr)
	return summary
}

// Comparison contrasts one page with the rest of the visible set.
type Comparison struct {
	Selected sheet.PageRecord `json:"selected" yaml:"selected"`
	Others   AggregateStats   `json:"others" yaml:"others"`
}

// Compare aggregates every record whose URL differs from selected.
func Compare(selected sheet.PageRecord, records []sheet.PageRecord) Comparison {
	others := make([]sheet.PageRecord, 0, len(records))
	for _, r := range records {
		if r.URL != selected.URL {
			others = append(others, r)
		}
	}
	return Comparison{
		Selected: selected,
		Others:   Aggregate(others),
	}
}

// Grade labels a metric for display.
type Grade string

const (
	GradeGood Grade = "good"
	GradeOK   Grade = "ok"
	GradeBad  Grade = "bad"
)

// CVRGrade rates a conversion rate percentage.
func CVRGrade(v float64) Grade {
	switch {
	case v >= 5:
		return GradeGood
	case v >= 2:
		return GradeOK
	default:
		return GradeBad
	}
}

// BounceGrade rates a bounce rate percentage. Lower is better.
func BounceGrade(v float64) Grade {
	switch {
	case v <= 30:
		return GradeGood
	case v <= 50:
		return GradeOK
	default:
		return GradeBad
	}
}

// FormatCount abbreviates large session counts, e.g. 12840 -> "12.8K".
func FormatCount(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// PageLabel is the noun for count pages.
func PageLabel(count int) string {
	if count == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", count)
}
