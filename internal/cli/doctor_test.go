package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/sheet"
)

const doctorCSV = `day,landing_page_path,landing_page_name,conversion_rate,bounce_rate,sessions
2024-10-08,/pages/sleep,Sleep,0.031,0.4,900
2024-10-09,/pages/sleep,Sleep,0.042,0.35,1000
2024-10-09,/pages/energy,Energy,6.1,28,500`

func doctorConfig() *config.Config {
	return &config.Config{
		SheetURL:     "https://docs.google.com/spreadsheets/d/e/x/pub?output=csv",
		BaseURL:      sheet.DefaultBaseURL,
		Port:         "3000",
		FetchTimeout: time.Second,
	}
}

func stubFetchSheet(t *testing.T, text string, err error) {
	t.Helper()
	original := fetchSheet
	fetchSheet = func(context.Context, *config.Config) (string, error) { return text, err }
	t.Cleanup(func() { fetchSheet = original })
}

func resultByName(results []CheckResult, name string) (CheckResult, bool) {
	for _, r := range results {
		if r.Name == name {
			return r, true
		}
	}
	return CheckResult{}, false
}

func TestDiagnoseHealthySheet(t *testing.T) {
	stubFetchSheet(t, doctorCSV, nil)

	results := diagnose(context.Background(), doctorConfig())
	require.Len(t, results, 6)

	latest, ok := resultByName(results, "Latest Day")
	require.True(t, ok)
	assert.True(t, latest.Pass)
	assert.Equal(t, "2024-10-09, 2 pages from 3 rows", latest.Details)

	mapped, ok := resultByName(results, "Mapped Columns")
	require.True(t, ok)
	// the funnel columns are not in this export
	assert.False(t, mapped.Pass)
	assert.Contains(t, mapped.Error, "added_to_cart")
}

func TestDiagnoseStopsWithoutSheet(t *testing.T) {
	cfg := doctorConfig()
	cfg.SheetURL = ""

	results := diagnose(context.Background(), cfg)
	require.Len(t, results, 2)
	assert.False(t, results[1].Pass)
	assert.Contains(t, results[1].Error, "demo")
}

func TestDiagnoseRejectsInvalidURL(t *testing.T) {
	cfg := doctorConfig()
	cfg.SheetURL = "ftp://example.com/sheet.csv"

	results := diagnose(context.Background(), cfg)
	require.Len(t, results, 2)
	assert.Equal(t, "Sheet URL", results[1].Name)
	assert.False(t, results[1].Pass)
}

func TestDiagnoseUnreachableSheet(t *testing.T) {
	stubFetchSheet(t, "", errors.New("fetch sheet: HTTP 404"))

	results := diagnose(context.Background(), doctorConfig())
	require.Len(t, results, 3)
	assert.False(t, results[2].Pass)
	assert.Contains(t, results[2].Error, "HTTP 404")
}

func TestDiagnoseMissingURLColumn(t *testing.T) {
	stubFetchSheet(t, "day,page,sessions\n2024-10-09,/a,10\n", nil)

	results := diagnose(context.Background(), doctorConfig())
	require.Len(t, results, 4)

	col := results[3]
	assert.Equal(t, "Landing Page Column", col.Name)
	assert.False(t, col.Pass)
	assert.Contains(t, col.Error, "landing_page_path")
}

func TestCheckLatestDay(t *testing.T) {
	assert.False(t, checkLatestDay(sheet.HeaderReport{}, 0).Pass)

	noDay := checkLatestDay(sheet.HeaderReport{DataRows: 4}, 4)
	assert.True(t, noDay.Pass)
	assert.Contains(t, noDay.Details, "no day column")

	empty := checkLatestDay(sheet.HeaderReport{DataRows: 2, LatestDay: "2024-10-09"}, 0)
	assert.False(t, empty.Pass)
}

func TestOutputDoctorJSON(t *testing.T) {
	results := []CheckResult{
		{Name: "Configuration", Pass: true},
		{Name: "Sheet URL", Pass: false, Error: "boom"},
	}

	output := captureStdout(t, func() {
		outputDoctorJSON(results)
	})

	var decoded []CheckResult
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.Equal(t, results, decoded)
}

func TestOutputDoctorHuman(t *testing.T) {
	output := captureStdout(t, func() {
		outputDoctorHuman([]CheckResult{
			{Name: "Configuration", Pass: true, Details: "defaults and environment"},
			{Name: "Sheet URL", Pass: false, Error: "boom", Suggestion: "fix it"},
		})
	})

	assert.Contains(t, output, "✓ Configuration (defaults and environment)")
	assert.Contains(t, output, "✗ Sheet URL")
	assert.Contains(t, output, "Hint: fix it")
	assert.Contains(t, output, "1/2 checks passed")
}
