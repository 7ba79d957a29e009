package handlers

import (
	"github.com/seuros/lpexplorer/internal/loader"
	"github.com/seuros/lpexplorer/internal/metrics"
	"github.com/seuros/lpexplorer/internal/sheet"
)

// PageItem is a page in the list view with display grades
type PageItem struct {
	sheet.PageRecord
	CVRGrade      metrics.Grade `json:"cvr_grade"`
	BounceGrade   metrics.Grade `json:"bounce_grade"`
	SessionsLabel string        `json:"sessions_label"`
	SessionsShare float64       `json:"sessions_share"` // relative to the busiest listed page, 0-100
}

// PageListResponse is the payload of the page list endpoint
type PageListResponse struct {
	Data       []PageItem      `json:"data"`
	Pagination PaginationMeta  `json:"pagination"`
	Summary    metrics.Summary `json:"summary"`
	Snapshot   loader.Meta     `json:"snapshot"`
}

// PageDetailResponse holds one page with its funnel and comparison
type PageDetailResponse struct {
	Page       PageItem           `json:"page"`
	Stages     []metrics.Stage    `json:"stages"`
	Comparison metrics.Comparison `json:"comparison"`
	OthersText string             `json:"others_label"`
}

// SummaryResponse holds weighted and unweighted stats for the filtered set
type SummaryResponse struct {
	Aggregate metrics.AggregateStats `json:"aggregate"`
	Summary   metrics.Summary        `json:"summary"`
	Snapshot  loader.Meta            `json:"snapshot"`
}

func newPageItem(p sheet.PageRecord, maxSessions float64) PageItem {
	item := PageItem{
		PageRecord:    p,
		CVRGrade:      metrics.CVRGrade(p.CVR),
		BounceGrade:   metrics.BounceGrade(p.Bounce),
		SessionsLabel: metrics.FormatCount(p.Sessions),
	}
	if maxSessions > 0 {
		item.SessionsShare = p.Sessions / maxSessions * 100
	}
	return item
}
