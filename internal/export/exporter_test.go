package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
	"github.com/velora/bikepulse/internal/domain/dataset"
)

func sampleRecords() []dataset.Record {
	return []dataset.Record{
		{
			Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), Hour: dataset.NoHour,
			Season: dataset.Winter, Year: 2011, Month: time.January,
			Weekday: time.Saturday, Weather: dataset.Misty,
			Temp: 0.34, FeelsLike: 0.36, Humidity: 0.81, Windspeed: 0.16,
			Casual: 331, Registered: 654, Rides: 985,
		},
		{
			Date: time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC), Hour: dataset.NoHour,
			Season: dataset.Winter, Year: 2011, Month: time.January,
			Weekday: time.Sunday, Weather: dataset.Clear,
			Temp: 0.36, FeelsLike: 0.35, Humidity: 0.70, Windspeed: 0.25,
			Casual: 131, Registered: 670, Rides: 801,
		},
	}
}

func TestNewFactory(t *testing.T) {
	require.IsType(t, CSVExporter{}, New("csv"))
	require.IsType(t, JSONExporter{}, New(" JSON "))
	require.IsType(t, ParquetExporter{}, New("parquet"))
	require.Nil(t, New("xlsx"))
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVExporter{}.Export(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records
	require.Equal(t, "date", rows[0][0])
	require.Equal(t, "2011-01-01", rows[1][0])
	require.Equal(t, "Winter", rows[1][2])
	require.Equal(t, "Mist/Cloudy", rows[1][8])
	require.Equal(t, "985", rows[1][15])
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONExporter{}.Export(&buf, sampleRecords()))
	require.Contains(t, buf.String(), `"rides": 985`)
}

func TestParquetRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ParquetExporter{}.Export(&buf, sampleRecords()))

	rows, err := parquet.Read[dataset.Record](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 985, rows[0].Rides)
	require.Equal(t, 801, rows[1].Rides)
}
