package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velora/bikepulse/internal/domain/dataset"
)

func TestCorrelationPerfectAndInverse(t *testing.T) {
	recs := []dataset.Record{
		day("2011-01-01", dataset.Winter, dataset.Clear, 10, 0),
		day("2011-01-02", dataset.Winter, dataset.Clear, 20, 0),
		day("2011-01-03", dataset.Winter, dataset.Clear, 30, 0),
	}
	// temp rises with casual, humidity falls.
	for i := range recs {
		recs[i].Temp = float64(i + 1)
		recs[i].Humidity = float64(3 - i)
	}
	svc := NewService(nil)

	c := svc.Correlation(dataset.New("day", dataset.Daily, recs), Filter{})
	require.Equal(t, 3, c.N)

	idx := func(field string) int {
		for i, f := range c.Fields {
			if f == field {
				return i
			}
		}
		t.Fatalf("field %q not in matrix", field)
		return -1
	}

	require.InDelta(t, 1.0, c.Matrix[idx("temp")][idx("temp")], 1e-9)
	require.InDelta(t, 1.0, c.Matrix[idx("temp")][idx("casual")], 1e-9)
	require.InDelta(t, -1.0, c.Matrix[idx("temp")][idx("humidity")], 1e-9)
	require.Equal(t, c.Matrix[idx("casual")][idx("temp")], c.Matrix[idx("temp")][idx("casual")])
}

func TestCorrelationDegenerateIsZero(t *testing.T) {
	svc := NewService(nil)

	// Single observation: undefined, reported as zero.
	c := svc.Correlation(dataset.New("day", dataset.Daily, []dataset.Record{
		day("2011-01-01", dataset.Winter, dataset.Clear, 10, 20),
	}), Filter{})
	require.Equal(t, 1, c.N)
	for _, row := range c.Matrix {
		for _, v := range row {
			require.Zero(t, v)
		}
	}

	// Zero variance column (registered constant).
	c = svc.Correlation(dataset.New("day", dataset.Daily, []dataset.Record{
		day("2011-01-01", dataset.Winter, dataset.Clear, 10, 50),
		day("2011-01-02", dataset.Winter, dataset.Clear, 20, 50),
	}), Filter{})
	i := 5 // registered
	require.Zero(t, c.Matrix[i][i])
}
