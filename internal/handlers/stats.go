package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/seuros/lpexplorer/internal/metrics"
)

// HandleSummary returns weighted aggregates for the pages matching the search
func (d *Dashboard) HandleSummary(c fiber.Ctx) error {
	snap, err := d.snapshot(c)
	if snap == nil {
		return err
	}

	filtered := FilterPages(snap.Pages, searchQuery(c))

	return c.JSON(SummaryResponse{
		Aggregate: metrics.Aggregate(filtered),
		Summary:   metrics.Summarize(filtered),
		Snapshot:  snap.Meta(),
	})
}

// HandleSnapshot describes the current snapshot
func (d *Dashboard) HandleSnapshot(c fiber.Ctx) error {
	snap, err := d.snapshot(c)
	if snap == nil {
		return err
	}
	return c.JSON(snap.Meta())
}

// HandleReload runs a load cycle and returns the new snapshot description.
// A failed fetch still answers 200 with demo data and the error notice.
func (d *Dashboard) HandleReload(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snap := d.source.Reload(ctx)
	c.Set(fiber.HeaderETag, snap.ETag())
	return c.JSON(snap.Meta())
}
