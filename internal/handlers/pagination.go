package handlers

import (
	"math"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/seuros/lpexplorer/internal/sheet"
)

// SortDirection represents sort order
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DefaultSort matches the dashboard's initial ordering
const DefaultSort = "cvr-desc"

// PaginationParams holds pagination and sorting query parameters
type PaginationParams struct {
	Page      int           `json:"page"`       // 1-indexed page number (default: 1)
	Per       int           `json:"per"`        // Items per page (default: 50, max: 500)
	Offset    int           `json:"-"`          // Calculated offset (not exposed in JSON)
	SortBy    string        `json:"sort_by"`    // cvr, bounce or sessions
	SortOrder SortDirection `json:"sort_order"` // asc or desc
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	Page       int           `json:"page"`
	Per        int           `json:"per"`
	Total      int64         `json:"total"`       // Total items across all pages
	TotalPages int           `json:"total_pages"` // Calculated total pages
	HasMore    bool          `json:"has_more"`    // Whether more pages exist
	SortBy     string        `json:"sort_by"`
	SortOrder  SortDirection `json:"sort_order"`
}

// ValidSortColumns defines the sortable page metrics
var ValidSortColumns = []string{"cvr", "bounce", "sessions"}

// ParseSortKey splits keys like "cvr-desc". Unknown metrics sort by
// sessions and anything but "desc" sorts ascending.
func ParseSortKey(key string) (string, SortDirection) {
	field, dir, _ := strings.Cut(strings.ToLower(strings.TrimSpace(key)), "-")
	if !slices.Contains(ValidSortColumns, field) {
		field = "sessions"
	}
	if SortDirection(dir) != SortDesc {
		return field, SortAsc
	}
	return field, SortDesc
}

// ParsePaginationParams extracts and validates pagination from request
func ParsePaginationParams(c fiber.Ctx) PaginationParams {
	per := min(max(fiber.Query[int](c, "per", 50), 1), 500)
	// keep (page-1)*per within int
	page := min(max(fiber.Query[int](c, "page", 1), 1), math.MaxInt/per)
	offset := (page - 1) * per

	sortBy, sortOrder := ParseSortKey(c.Query("sort", DefaultSort))

	return PaginationParams{
		Page:      page,
		Per:       per,
		Offset:    offset,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

// SortPages returns a copy of pages ordered by field. Ties keep their input
// order.
func SortPages(pages []sheet.PageRecord, field string, dir SortDirection) []sheet.PageRecord {
	value := func(p sheet.PageRecord) float64 {
		switch field {
		case "cvr":
			return p.CVR
		case "bounce":
			return p.Bounce
		default:
			return p.Sessions
		}
	}

	sorted := slices.Clone(pages)
	slices.SortStableFunc(sorted, func(a, b sheet.PageRecord) int {
		va, vb := value(a), value(b)
		if dir == SortDesc {
			va, vb = vb, va
		}
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Paginate returns the window of items selected by params
func Paginate[T any](items []T, params PaginationParams) []T {
	if params.Offset < 0 || params.Offset >= len(items) {
		return []T{}
	}
	end := min(params.Offset+params.Per, len(items))
	return items[params.Offset:end]
}

// BuildPaginationMeta creates pagination metadata from query results
func BuildPaginationMeta(params PaginationParams, total int64) PaginationMeta {
	var totalPages int
	if total > 0 && params.Per > 0 {
		totalPages = int((total + int64(params.Per) - 1) / int64(params.Per))
	}
	hasMore := params.Page < totalPages

	return PaginationMeta{
		Page:       params.Page,
		Per:        params.Per,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    hasMore,
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
	}
}
