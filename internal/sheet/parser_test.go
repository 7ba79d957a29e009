package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiDayCSV = `day,landing_page_path,conversion_rate,bounce_rate,sessions
2024-01-01,/old,0.05,0.4,100
2024-01-02,/pricing,0.042,32%,"1,200"
2024-01-02,features,6.8,24,800
`

func TestParseKeepsOnlyLatestDay(t *testing.T) {
	pages := Parse(multiDayCSV, DefaultColumns(), DefaultBaseURL)
	require.Len(t, pages, 2)

	assert.Equal(t, "https://firstday.com/pricing", pages[0].URL)
	assert.Equal(t, "/pricing", pages[0].Name)
	assert.InDelta(t, 4.2, pages[0].CVR, 1e-9)
	assert.InDelta(t, 32, pages[0].Bounce, 1e-9)
	assert.InDelta(t, 1200, pages[0].Sessions, 1e-9)

	assert.Equal(t, "https://firstday.com/features", pages[1].URL)
	assert.Equal(t, "features", pages[1].Name)
	assert.InDelta(t, 6.8, pages[1].CVR, 1e-9)
}

func TestParseURLsShareBaseAndAbsolutePath(t *testing.T) {
	pages := Parse(multiDayCSV, DefaultColumns(), "https://shop.example")
	require.NotEmpty(t, pages)
	for _, p := range pages {
		assert.True(t, strings.HasPrefix(p.URL, "https://shop.example/"), p.URL)
	}
}

func TestParseTrailingSlashOnBaseURL(t *testing.T) {
	pages := Parse(multiDayCSV, DefaultColumns(), "https://shop.example/")
	require.NotEmpty(t, pages)
	assert.Equal(t, "https://shop.example/pricing", pages[0].URL)
}

func TestParseSkipsRepeatedHeaderRows(t *testing.T) {
	csv := `day,landing_page_path,sessions
DAY,/ghost,999
2024-02-01,/home,10
Day,landing_page_path,sessions
`
	pages := Parse(csv, DefaultColumns(), DefaultBaseURL)
	require.Len(t, pages, 1)
	assert.Equal(t, "https://firstday.com/home", pages[0].URL)
}

func TestParseSkipsRowsWithoutPath(t *testing.T) {
	csv := "landing_page_path,sessions\n,10\n  ,5\n/a,3\n"
	pages := Parse(csv, DefaultColumns(), DefaultBaseURL)
	require.Len(t, pages, 1)
	assert.Equal(t, 3.0, pages[0].Sessions)
}

func TestParseWithoutDayColumnKeepsAllRows(t *testing.T) {
	csv := "landing_page_path,sessions\n/a,1\n/b,2\n/c,3\n"
	pages := Parse(csv, DefaultColumns(), DefaultBaseURL)
	assert.Len(t, pages, 3)
}

func TestParseDayColumnWithBlankDaysKeepsAllRows(t *testing.T) {
	csv := "day,landing_page_path\n,/a\n,/b\n"
	pages := Parse(csv, DefaultColumns(), DefaultBaseURL)
	assert.Len(t, pages, 2)
}

func TestParseEmptyAndHeaderOnly(t *testing.T) {
	assert.Empty(t, Parse("", DefaultColumns(), DefaultBaseURL))
	assert.Empty(t, Parse("\n\n  \n", DefaultColumns(), DefaultBaseURL))
	assert.Empty(t, Parse("day,landing_page_path\n", DefaultColumns(), DefaultBaseURL))
	assert.NotNil(t, Parse("", DefaultColumns(), DefaultBaseURL))
}

func TestParseMissingURLColumnYieldsNothing(t *testing.T) {
	csv := "day,page,sessions\n2024-01-01,/a,1\n"
	assert.Empty(t, Parse(csv, DefaultColumns(), DefaultBaseURL))
}

func TestParseDuplicatePathsKeepEveryRowInOrder(t *testing.T) {
	csv := `day,landing_page_path,sessions
2024-03-01,/dup,10
2024-03-01,/other,5
2024-03-01,/dup,20
`
	pages := Parse(csv, DefaultColumns(), DefaultBaseURL)
	require.Len(t, pages, 3)
	assert.Equal(t, "https://firstday.com/dup", pages[0].URL)
	assert.Equal(t, 10.0, pages[0].Sessions)
	assert.Equal(t, "https://firstday.com/dup", pages[2].URL)
	assert.Equal(t, 20.0, pages[2].Sessions)
}

func TestParseStripsByteOrderMark(t *testing.T) {
	text := "\ufeffday,landing_page_path,sessions\n2024-01-01,/old,1\n2024-01-02,/new,2\n"

	pages := Parse(text, DefaultColumns(), DefaultBaseURL)
	require.Len(t, pages, 1)
	assert.Equal(t, "https://firstday.com/new", pages[0].URL)

	report := Inspect(text, DefaultColumns())
	assert.Equal(t, "day", report.Headers[0])
	assert.Equal(t, "2024-01-02", report.LatestDay)
}

func TestParseHandlesCRLF(t *testing.T) {
	lf := Parse(multiDayCSV, DefaultColumns(), DefaultBaseURL)
	crlf := Parse(strings.ReplaceAll(multiDayCSV, "\n", "\r\n"), DefaultColumns(), DefaultBaseURL)
	assert.Equal(t, lf, crlf)
}

func TestParseIsIdempotent(t *testing.T) {
	first := Parse(multiDayCSV, DefaultColumns(), DefaultBaseURL)
	second := Parse(multiDayCSV, DefaultColumns(), DefaultBaseURL)
	assert.Equal(t, first, second)
}

func TestParseFunnelColumns(t *testing.T) {
	csv := `Day,Landing_Page_Path,Page Title,sessions,added_to_cart_rate,reached_checkout_rate,completed_checkout_rate,sessions_completed_checkout
2024-05-01,/sale,"Big ""Summer"" Sale",1000,0.25,12%,0.05,48
`
	cols := DefaultColumns().WithOverrides(ColumnMapping{Name: "page title"})
	pages := Parse(csv, cols, DefaultBaseURL)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.Equal(t, `Big "Summer" Sale`, p.Name)
	assert.InDelta(t, 25, p.AddedToCartRate, 1e-9)
	assert.InDelta(t, 12, p.ReachedCheckoutRate, 1e-9)
	assert.InDelta(t, 5, p.CompletedCheckoutRate, 1e-9)
	assert.Equal(t, 48.0, p.SessionsCompleted)
	assert.Equal(t, 0.0, p.CVR)
}

func TestParseBlankNameFallsBackToPath(t *testing.T) {
	csv := "landing_page_path,title\n/a,\n/b,Bee\n"
	cols := DefaultColumns().WithOverrides(ColumnMapping{Name: "title"})
	pages := Parse(csv, cols, DefaultBaseURL)
	require.Len(t, pages, 2)
	assert.Equal(t, "/a", pages[0].Name)
	assert.Equal(t, "Bee", pages[1].Name)
}

func TestLatestDay(t *testing.T) {
	assert.Equal(t, "2024-01-02", LatestDay([]string{"2024-01-01", "2024-01-02", "2024-01-02"}))
	assert.Equal(t, "", LatestDay([]string{"", ""}))
	assert.Equal(t, "", LatestDay(nil))
	// lexical, not chronological
	assert.Equal(t, "9/1/2024", LatestDay([]string{"10/1/2024", "9/1/2024"}))
}

func TestInspect(t *testing.T) {
	report := Inspect(multiDayCSV, DefaultColumns())
	assert.True(t, report.HasURL())
	assert.Equal(t, 3, report.DataRows)
	assert.Equal(t, "2024-01-02", report.LatestDay)
	assert.Equal(t, 0, report.Resolved["day"])
	assert.Contains(t, report.Missing, "added_to_cart")
	assert.NotContains(t, report.Missing, "cvr")
}

func TestInspectEmpty(t *testing.T) {
	report := Inspect("", DefaultColumns())
	assert.False(t, report.HasURL())
	assert.Len(t, report.Missing, 10)
	assert.Equal(t, 0, report.DataRows)
}
