package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/velora/bikepulse/internal/domain/dataset"
	"github.com/velora/bikepulse/internal/domain/stats"
)

func testRecord(date string, season dataset.Season, weather dataset.Weather, casual, registered int) dataset.Record {
	d, _ := time.Parse("2006-01-02", date)
	return dataset.Record{
		Date:       d,
		Hour:       dataset.NoHour,
		Season:     season,
		Year:       d.Year(),
		Month:      d.Month(),
		Weekday:    d.Weekday(),
		Weather:    weather,
		Casual:     casual,
		Registered: registered,
		Rides:      casual + registered,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds := dataset.New("day", dataset.Daily, []dataset.Record{
		testRecord("2011-01-01", dataset.Winter, dataset.Clear, 40, 60),
		testRecord("2011-01-02", dataset.Winter, dataset.Misty, 50, 100),
		testRecord("2011-07-01", dataset.Summer, dataset.Clear, 200, 300),
	})
	srv := httptest.NewServer(NewRouter(ds, stats.NewService(nil), nil, nil))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

func TestOverviewEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Records    int     `json:"records"`
		TotalRides int     `json:"total_rides"`
		AvgRides   float64 `json:"avg_rides"`
	}
	status := getJSON(t, srv.URL+"/api/overview", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3, body.Records)
	require.Equal(t, 750, body.TotalRides)
	require.InDelta(t, 250.0, body.AvgRides, 1e-9)
}

func TestAggregateEndpointSumByDate(t *testing.T) {
	srv := newTestServer(t)

	var view stats.View
	status := getJSON(t, srv.URL+"/api/aggregate?metric=rides&stat=sum&group_by=date&to=2011-01-02", &view)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, view.Rows, 2)
	require.Equal(t, []string{"2011-01-01"}, view.Rows[0].Keys)
	require.Equal(t, 100.0, view.Rows[0].Value)
	require.Equal(t, 150.0, view.Rows[1].Value)
}

func TestAggregateEndpointFilters(t *testing.T) {
	srv := newTestServer(t)

	var view stats.View
	status := getJSON(t, srv.URL+"/api/aggregate?metric=rides&stat=sum&group_by=season&seasons=Summer", &view)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, view.Rows, 1)
	require.Equal(t, []string{"Summer"}, view.Rows[0].Keys)
	require.Equal(t, 500.0, view.Rows[0].Value)
}

func TestAggregateEndpointBadDimensionKeepsServerUsable(t *testing.T) {
	srv := newTestServer(t)

	var errBody map[string]string
	status := getJSON(t, srv.URL+"/api/aggregate?metric=rides&stat=sum&group_by=nonexistent_column", &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, errBody["error"], "unknown dimension")

	// The process survives a bad query; the next one succeeds.
	var view stats.View
	status = getJSON(t, srv.URL+"/api/aggregate?metric=rides&stat=sum&group_by=season", &view)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, view.Rows)
}

func TestAggregateEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	for _, url := range []string{
		"/api/aggregate",
		"/api/aggregate?metric=rides",
		"/api/aggregate?metric=rides&stat=sum",
		"/api/aggregate?metric=rides&stat=sum&group_by=date,season,weather",
		"/api/aggregate?metric=rides&stat=sum&group_by=date&years=two-thousand",
		"/api/aggregate?metric=rides&stat=sum&group_by=date&from=01/01/2011",
	} {
		var errBody map[string]string
		status := getJSON(t, srv.URL+url, &errBody)
		require.Equal(t, http.StatusBadRequest, status, "url %s", url)
		require.NotEmpty(t, errBody["error"], "url %s", url)
	}
}

func TestDimensionsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Dataset    string              `json:"dataset"`
		Records    int                 `json:"records"`
		Dimensions []string            `json:"dimensions"`
		Domains    map[string][]string `json:"domains"`
	}
	status := getJSON(t, srv.URL+"/api/dimensions", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "day", body.Dataset)
	require.Equal(t, 3, body.Records)
	require.Contains(t, body.Dimensions, "season")
	require.Equal(t, []string{"Winter", "Summer"}, body.Domains["season"])
	// A daily dataset never advertises hour: every listed dimension is safe
	// to group by.
	require.NotContains(t, body.Dimensions, "hour")
	require.NotContains(t, body.Domains, "hour")
}

func TestDimensionsEndpointHourly(t *testing.T) {
	rec := testRecord("2011-01-03", dataset.Winter, dataset.Clear, 5, 15)
	rec.Hour = 8
	ds := dataset.New("hour", dataset.Hourly, []dataset.Record{rec})
	srv := httptest.NewServer(NewRouter(ds, stats.NewService(nil), nil, nil))
	t.Cleanup(srv.Close)

	var body struct {
		Dimensions []string            `json:"dimensions"`
		Domains    map[string][]string `json:"domains"`
	}
	status := getJSON(t, srv.URL+"/api/dimensions", &body)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body.Dimensions, "hour")
	require.Equal(t, []string{"8"}, body.Domains["hour"])
}

func TestCorrelationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var body stats.Correlation
	status := getJSON(t, srv.URL+"/api/correlation", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3, body.N)
	require.Len(t, body.Matrix, len(body.Fields))
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/export?format=csv&seasons=Summer")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "day.csv")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2) // header + single summer record
	require.Contains(t, lines[1], "2011-07-01")
}

func TestExportEndpointBadFormat(t *testing.T) {
	srv := newTestServer(t)

	var errBody map[string]string
	status := getJSON(t, srv.URL+"/api/export?format=xlsx", &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, errBody["error"], "unsupported format")
}

func TestDashboardPageServed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b := make([]byte, 1024)
	n, _ := resp.Body.Read(b)
	require.Contains(t, string(b[:n]), "bikepulse")
}
