package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// FilterPages keeps pages whose name or URL contains query, ignoring case.
// An empty query keeps everything. The input slice is not modified.
func FilterPages(pages []sheet.PageRecord, query string) []sheet.PageRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]sheet.PageRecord, 0, len(pages))
	for _, p := range pages {
		if query == "" ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.URL), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// searchQuery reads the search term from the request
func searchQuery(c fiber.Ctx) string {
	return c.Query("q")
}
