package metrics

import (
	"math"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// Stage names in funnel order.
const (
	StageSessions          = "sessions"
	StageAddedToCart       = "added_to_cart"
	StageReachedCheckout   = "reached_checkout"
	StageCompletedCheckout = "completed_checkout"
)

// Stage is one step of a page's conversion funnel in absolute sessions.
type Stage struct {
	Name    string  `json:"name" yaml:"name"`
	Count   float64 `json:"count" yaml:"count"`
	Pct     float64 `json:"pct" yaml:"pct"`
	Drop    float64 `json:"drop" yaml:"drop"`
	DropPct float64 `json:"drop_pct" yaml:"drop_pct"`
}

// CompletedSessions prefers the exported absolute count and derives one from
// the completion rate otherwise.
func CompletedSessions(r sheet.PageRecord) float64 {
	if r.SessionsCompleted > 0 {
		return r.SessionsCompleted
	}
	return roundHalfUp(r.Sessions * r.CompletedCheckoutRate / 100)
}

// StagesFor returns the funnel of a single page. Each stage after the first
// reports the drop-off from the stage before it.
func StagesFor(r sheet.PageRecord) []Stage {
	counts := []struct {
		name  string
		count float64
	}{
		{StageSessions, r.Sessions},
		{StageAddedToCart, roundHalfUp(r.Sessions * r.AddedToCartRate / 100)},
		{StageReachedCheckout, roundHalfUp(r.Sessions * r.ReachedCheckoutRate / 100)},
		{StageCompletedCheckout, CompletedSessions(r)},
	}

	stages := make([]Stage, len(counts))
	for i, c := range counts {
		stages[i] = Stage{Name: c.name, Count: c.count}
		if r.Sessions > 0 {
			stages[i].Pct = ClampRate(c.count / r.Sessions * 100)
		}
		if i == 0 {
			continue
		}
		prev := counts[i-1].count
		stages[i].Drop, stages[i].DropPct = DropOff(prev, c.count)
	}
	return stages
}

// DropOff returns how many sessions were lost between two consecutive stages
// and that loss as a percentage of the earlier stage.
func DropOff(prev, count float64) (drop, pct float64) {
	drop = math.Max(0, prev-count)
	if prev > 0 {
		pct = drop / prev * 100
	}
	return drop, pct
}

// roundHalfUp rounds halves toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
