package stats

import (
	"math"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// correlationFields are the numeric columns included in the correlation
// matrix, in presentation order.
var correlationFields = []string{
	"temp", "feels_like", "humidity", "windspeed", "casual", "registered", "rides",
}

// Correlation is a Pearson correlation matrix over the numeric columns of a
// filtered dataset subset. Matrix[i][j] correlates Fields[i] with Fields[j].
type Correlation struct {
	Fields []string    `json:"fields"`
	Matrix [][]float64 `json:"matrix"`
	N      int         `json:"n"`
}

// Correlation computes the Pearson correlation matrix over the filtered
// subset. Pairs with undefined correlation (fewer than two observations, or
// zero variance) yield 0.
func (s *Service) Correlation(ds *dataset.Dataset, f Filter) *Correlation {
	series := make([][]float64, len(correlationFields))
	for _, r := range ds.Records() {
		if !f.matches(r) {
			continue
		}
		vals := []float64{
			r.Temp, r.FeelsLike, r.Humidity, r.Windspeed,
			float64(r.Casual), float64(r.Registered), float64(r.Rides),
		}
		for i, v := range vals {
			series[i] = append(series[i], v)
		}
	}

	n := len(series[0])
	matrix := make([][]float64, len(correlationFields))
	for i := range matrix {
		matrix[i] = make([]float64, len(correlationFields))
		for j := range matrix[i] {
			matrix[i][j] = pearson(series[i], series[j])
		}
	}

	return &Correlation{Fields: correlationFields, Matrix: matrix, N: n}
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 0
	}
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
