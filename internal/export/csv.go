package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// CSVExporter writes records as CSV with labeled categories.
type CSVExporter struct{}

func (CSVExporter) Extension() string   { return "csv" }
func (CSVExporter) ContentType() string { return "text/csv" }

func (CSVExporter) Export(w io.Writer, records []dataset.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date", "hour", "season", "year", "month", "weekday", "holiday",
		"working_day", "weather", "temp", "feels_like", "humidity",
		"windspeed", "casual", "registered", "rides",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Hour),
			r.Season.String(),
			strconv.Itoa(r.Year),
			r.Month.String(),
			r.Weekday.String(),
			boolStr(r.Holiday),
			boolStr(r.WorkingDay),
			r.Weather.String(),
			floatStr(r.Temp),
			floatStr(r.FeelsLike),
			floatStr(r.Humidity),
			floatStr(r.Windspeed),
			strconv.Itoa(r.Casual),
			strconv.Itoa(r.Registered),
			strconv.Itoa(r.Rides),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
