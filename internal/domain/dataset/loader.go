package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Columns every bike-sharing CSV must carry. The hourly schema additionally
// carries "hr".
var requiredColumns = []string{
	"dteday", "season", "yr", "mnth", "holiday", "weekday", "workingday",
	"weathersit", "temp", "atemp", "hum", "windspeed", "casual", "registered", "cnt",
}

// Loader materializes datasets from local CSV files or HTTP(S) sources.
type Loader struct {
	client *resty.Client
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger disables logging.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		client: resty.New().SetTimeout(30 * time.Second),
		logger: logger,
	}
}

// Load reads the source fully and returns a materialized dataset, or a
// *LoadError. There are no partial loads: any malformed row fails the whole
// dataset.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	reader, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	ds, err := parse(source, datasetName(source), reader)
	if err != nil {
		return nil, err
	}
	l.logger.Info("dataset loaded",
		"source", source,
		"name", ds.Name(),
		"granularity", ds.Granularity(),
		"records", ds.Len())
	return ds, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(source)
		if err != nil {
			return nil, &LoadError{Source: source, Reason: "fetch failed", Err: err}
		}
		if resp.IsError() {
			return nil, &LoadError{Source: source, Reason: "fetch failed: " + resp.Status()}
		}
		return io.NopCloser(bytes.NewReader(resp.Body())), nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, &LoadError{Source: source, Reason: "open failed", Err: err}
	}
	return f, nil
}

// parse reads header plus rows from r into a dataset. Granularity is
// header-driven: the presence of an "hr" column selects the hourly schema.
func parse(source, name string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &LoadError{Source: source, Reason: "missing header", Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, &LoadError{Source: source, Reason: "missing column " + strconv.Quote(c)}
		}
	}

	granularity := Daily
	hourCol, hasHour := cols["hr"]
	if hasHour {
		granularity = Hourly
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: source, Reason: "row " + strconv.Itoa(line), Err: err}
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, &LoadError{Source: source, Reason: "row " + strconv.Itoa(line), Err: err}
		}
		if hasHour {
			hr, err := intField(row, hourCol)
			if err != nil {
				return nil, &LoadError{Source: source, Reason: "row " + strconv.Itoa(line), Err: err}
			}
			rec.Hour = hr
		}
		records = append(records, rec)
	}

	return New(name, granularity, records), nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	var rec Record
	rec.Hour = NoHour

	date, err := time.Parse("2006-01-02", row[cols["dteday"]])
	if err != nil {
		return rec, err
	}
	rec.Date = date

	ints := map[string]*int{
		"casual":     &rec.Casual,
		"registered": &rec.Registered,
		"cnt":        &rec.Rides,
	}
	for name, dst := range ints {
		v, err := intField(row, cols[name])
		if err != nil {
			return rec, err
		}
		*dst = v
	}

	floats := map[string]*float64{
		"temp":      &rec.Temp,
		"atemp":     &rec.FeelsLike,
		"hum":       &rec.Humidity,
		"windspeed": &rec.Windspeed,
	}
	for name, dst := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[cols[name]]), 64)
		if err != nil {
			return rec, err
		}
		*dst = v
	}

	season, err := intField(row, cols["season"])
	if err != nil {
		return rec, err
	}
	rec.Season = Season(season)

	weather, err := intField(row, cols["weathersit"])
	if err != nil {
		return rec, err
	}
	rec.Weather = Weather(weather)

	// yr is encoded 0/1 for 2011/2012; the calendar year of dteday is
	// authoritative either way.
	rec.Year = date.Year()
	rec.Month = date.Month()

	weekday, err := intField(row, cols["weekday"])
	if err != nil {
		return rec, err
	}
	rec.Weekday = time.Weekday(weekday)

	holiday, err := intField(row, cols["holiday"])
	if err != nil {
		return rec, err
	}
	rec.Holiday = holiday == 1

	working, err := intField(row, cols["workingday"])
	if err != nil {
		return rec, err
	}
	rec.WorkingDay = working == 1

	return rec, nil
}

func intField(row []string, i int) (int, error) {
	return strconv.Atoi(strings.TrimSpace(row[i]))
}

func datasetName(source string) string {
	base := filepath.Base(source)
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
