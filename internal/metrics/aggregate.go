// Package metrics computes session-weighted statistics over landing page
// records. Every function is pure and safe for concurrent use.
package metrics

import (
	"math"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// AggregateStats summarizes a set of pages weighted by sessions.
type AggregateStats struct {
	Count          int          `json:"count" yaml:"count"`
	TotalSessions  float64      `json:"total_sessions" yaml:"total_sessions"`
	WeightedCVR    float64      `json:"weighted_cvr" yaml:"weighted_cvr"`
	WeightedBounce float64      `json:"weighted_bounce" yaml:"weighted_bounce"`
	Funnel         FunnelShares `json:"funnel" yaml:"funnel"`
}

// FunnelShares holds the session-weighted share of sessions reaching each
// funnel stage.
type FunnelShares struct {
	NonBouncePct float64 `json:"non_bounce_pct" yaml:"non_bounce_pct"`
	AddedPct     float64 `json:"added_pct" yaml:"added_pct"`
	ReachedPct   float64 `json:"reached_pct" yaml:"reached_pct"`
	CompletedPct float64 `json:"completed_pct" yaml:"completed_pct"`
}

// TotalSessions sums sessions across records.
func TotalSessions(records []sheet.PageRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Sessions
	}
	return total
}

// Weighted averages metric over records weighted by sessions. It returns 0
// when there are no sessions.
func Weighted(records []sheet.PageRecord, metric func(sheet.PageRecord) float64) float64 {
	total := TotalSessions(records)
	if total == 0 {
		return 0
	}

	sum := 0.0
	for _, r := range records {
		sum += metric(r) * r.Sessions
	}
	return sum / total
}

// Aggregate computes the weighted summary of records.
func Aggregate(records []sheet.PageRecord) AggregateStats {
	return AggregateStats{
		Count:          len(records),
		TotalSessions:  TotalSessions(records),
		WeightedCVR:    Weighted(records, func(r sheet.PageRecord) float64 { return r.CVR }),
		WeightedBounce: Weighted(records, func(r sheet.PageRecord) float64 { return r.Bounce }),
		Funnel:         FunnelAverages(records),
	}
}

// FunnelAverages computes weighted funnel stage percentages. Rates are clamped to
// [0, 100] before weighting.
func FunnelAverages(records []sheet.PageRecord) FunnelShares {
	return FunnelShares{
		NonBouncePct: Weighted(records, func(r sheet.PageRecord) float64 { return ClampRate(100 - r.Bounce) }),
		AddedPct:     Weighted(records, func(r sheet.PageRecord) float64 { return ClampRate(r.AddedToCartRate) }),
		ReachedPct:   Weighted(records, func(r sheet.PageRecord) float64 { return ClampRate(r.ReachedCheckoutRate) }),
		CompletedPct: Weighted(records, func(r sheet.PageRecord) float64 { return ClampRate(r.CompletedCheckoutRate) }),
	}
}

// ClampRate bounds v to [0, 100]. NaN becomes 0.
func ClampRate(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
