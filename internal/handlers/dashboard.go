package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/seuros/lpexplorer/internal/loader"
)

// SnapshotSource provides the current page snapshot and reloads it on demand
type SnapshotSource interface {
	Current() *loader.Snapshot
	Reload(ctx context.Context) *loader.Snapshot
}

// Dashboard serves the page explorer API from a snapshot source
type Dashboard struct {
	source SnapshotSource
}

// NewDashboard creates dashboard handlers reading from source
func NewDashboard(source SnapshotSource) *Dashboard {
	return &Dashboard{source: source}
}

// Register mounts the dashboard API on r
func (d *Dashboard) Register(r fiber.Router) {
	r.Get("/pages", d.HandleListPages)
	r.Get("/pages/detail", d.HandlePageDetail)
	r.Get("/summary", d.HandleSummary)
	r.Get("/snapshot", d.HandleSnapshot)
	r.Post("/reload", d.HandleReload)
}

// snapshot returns the current snapshot, or writes 503 when nothing has been
// loaded yet.
func (d *Dashboard) snapshot(c fiber.Ctx) (*loader.Snapshot, error) {
	snap := d.source.Current()
	if snap == nil {
		return nil, c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Data not loaded yet",
		})
	}
	c.Set(fiber.HeaderETag, snap.ETag())
	return snap, nil
}
