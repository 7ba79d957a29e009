package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/seuros/lpexplorer/internal/loader"
	"github.com/seuros/lpexplorer/internal/sheet"
)

type fakeSource struct {
	mu      sync.Mutex
	current *loader.Snapshot
	next    *loader.Snapshot
	reloads int
}

func (f *fakeSource) Current() *loader.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSource) Reload(_ context.Context) *loader.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	if f.next != nil {
		f.current = f.next
	}
	return f.current
}

func testPages() []sheet.PageRecord {
	return []sheet.PageRecord{
		{URL: "https://firstday.com/pages/sleep", Name: "Sleep", CVR: 4.2, Bounce: 35, Sessions: 1000,
			AddedToCartRate: 20, ReachedCheckoutRate: 10, CompletedCheckoutRate: 4.2, SessionsCompleted: 42},
		{URL: "https://firstday.com/pages/energy", Name: "Energy Boost", CVR: 6.1, Bounce: 28, Sessions: 500,
			AddedToCartRate: 25, ReachedCheckoutRate: 12, CompletedCheckoutRate: 6.1},
		{URL: "https://firstday.com/pages/kids", Name: "Kids Daily", CVR: 1.5, Bounce: 55, Sessions: 3000,
			AddedToCartRate: 8, ReachedCheckoutRate: 4, CompletedCheckoutRate: 1.5},
	}
}

func testSnapshot(pages []sheet.PageRecord) *loader.Snapshot {
	return &loader.Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Date(2024, 10, 9, 12, 0, 0, 0, time.UTC),
		Source:   loader.SourceLive,
		Notice:   "Loaded 3 pages from your sheet",
		Pages:    pages,
	}
}

func setupDashboardTest(t *testing.T, source *fakeSource) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewDashboard(source).Register(app.Group("/api"))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

var errSheetDown = errors.New("fetch sheet: connection refused")
