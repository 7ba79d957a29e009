package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/seuros/lpexplorer/internal/metrics"
	"github.com/seuros/lpexplorer/internal/sheet"
)

// HandleListPages returns the filtered, sorted and paginated page list
func (d *Dashboard) HandleListPages(c fiber.Ctx) error {
	snap, err := d.snapshot(c)
	if snap == nil {
		return err
	}

	params := ParsePaginationParams(c)
	filtered := SortPages(FilterPages(snap.Pages, searchQuery(c)), params.SortBy, params.SortOrder)

	maxSessions := 1.0
	for _, p := range filtered {
		maxSessions = max(maxSessions, p.Sessions)
	}

	window := Paginate(filtered, params)
	items := make([]PageItem, 0, len(window))
	for _, p := range window {
		items = append(items, newPageItem(p, maxSessions))
	}

	return c.JSON(PageListResponse{
		Data:       items,
		Pagination: BuildPaginationMeta(params, int64(len(filtered))),
		Summary:    metrics.Summarize(filtered),
		Snapshot:   snap.Meta(),
	})
}

// HandlePageDetail returns the funnel of one page compared with the other
// pages matching the same search
func (d *Dashboard) HandlePageDetail(c fiber.Ctx) error {
	snap, err := d.snapshot(c)
	if snap == nil {
		return err
	}

	target := strings.TrimSpace(c.Query("url"))
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}

	page, ok := FindPage(snap.Pages, target)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Page not found",
		})
	}

	visible := FilterPages(snap.Pages, searchQuery(c))
	comparison := metrics.Compare(page, visible)

	return c.JSON(PageDetailResponse{
		Page:       newPageItem(page, page.Sessions),
		Stages:     metrics.StagesFor(page),
		Comparison: comparison,
		OthersText: metrics.PageLabel(comparison.Others.Count),
	})
}

// FindPage looks a page up by full URL, or by path when target starts with
// a slash. The last matching record wins, mirroring how duplicate rows
// overwrite each other in the list view.
func FindPage(pages []sheet.PageRecord, target string) (sheet.PageRecord, bool) {
	var (
		found sheet.PageRecord
		ok    bool
	)
	for _, p := range pages {
		if p.URL == target || (strings.HasPrefix(target, "/") && pathOf(p.URL) == target) {
			found, ok = p, true
		}
	}
	return found, ok
}

// pathOf strips scheme and host from an absolute URL.
func pathOf(url string) string {
	rest := url
	if _, after, found := strings.Cut(url, "://"); found {
		rest = after
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[i:]
	}
	return "/"
}
