package stats

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// Service computes derived views over a dataset. All computations are pure:
// identical dataset and request always yield an identical view, and the
// dataset is never mutated.
type Service struct {
	logger *slog.Logger
}

// NewService creates a stats service. A nil logger disables logging.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{logger: logger}
}

// Request describes one aggregation: which metric to summarize, with which
// statistic, grouped along one or two dimensions, over a filtered subset.
type Request struct {
	Metric    Metric      `json:"metric"`
	Statistic Statistic   `json:"statistic"`
	GroupBy   []Dimension `json:"group_by"`
	Filter    Filter      `json:"filter"`
}

// Row is one group of an aggregate view. Keys holds one label per group-by
// dimension, in request order.
type Row struct {
	Keys  []string `json:"keys"`
	Value float64  `json:"value"`
	N     int      `json:"n"`
}

// View is a recomputed-on-demand aggregate over a filtered dataset subset.
type View struct {
	Metric    Metric      `json:"metric"`
	Statistic Statistic   `json:"statistic"`
	GroupBy   []Dimension `json:"group_by"`
	Rows      []Row       `json:"rows"`
	Matched   int         `json:"matched"`
}

type group struct {
	keys []string
	ords []int64
	sum  float64
	min  float64
	max  float64
	n    int
}

// Aggregate computes a grouped summary of the dataset under the request's
// filter. Rows are ordered by the natural order of the group-by dimensions,
// so repeated calls with identical inputs return identical views.
func (s *Service) Aggregate(ds *dataset.Dataset, req Request) (*View, error) {
	if len(req.GroupBy) == 0 {
		return nil, ErrNoGroupBy
	}
	if !containsStatistic(Statistics(), req.Statistic) {
		return nil, ErrUnknownStatistic
	}
	// Validate names up front so an empty filter result still rejects a
	// bad request.
	if _, err := metricValue(dataset.Record{}, req.Metric); err != nil {
		return nil, err
	}
	probe := dataset.Record{}
	for _, d := range req.GroupBy {
		if d == ByHour {
			if ds.Granularity() != dataset.Hourly {
				return nil, fmt.Errorf("%w: %q requires an hourly dataset", ErrUnknownDimension, d)
			}
			continue
		}
		if _, _, err := dimensionKey(probe, d); err != nil {
			return nil, err
		}
	}

	groups := make(map[string]*group)
	matched := 0
	for _, r := range ds.Records() {
		if !req.Filter.matches(r) {
			continue
		}
		matched++

		keys := make([]string, len(req.GroupBy))
		ords := make([]int64, len(req.GroupBy))
		for i, d := range req.GroupBy {
			label, ord, err := dimensionKey(r, d)
			if err != nil {
				return nil, err
			}
			keys[i] = label
			ords[i] = ord
		}

		v, err := metricValue(r, req.Metric)
		if err != nil {
			return nil, err
		}

		id := strings.Join(keys, "\x1f")
		g, ok := groups[id]
		if !ok {
			g = &group{keys: keys, ords: ords, min: v, max: v}
			groups[id] = g
		}
		g.sum += v
		g.n++
		if v < g.min {
			g.min = v
		}
		if v > g.max {
			g.max = v
		}
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		for k := range a.ords {
			if a.ords[k] != b.ords[k] {
				return a.ords[k] < b.ords[k]
			}
		}
		return false
	})

	rows := make([]Row, len(ordered))
	for i, g := range ordered {
		rows[i] = Row{Keys: g.keys, Value: statValue(g, req.Statistic), N: g.n}
	}

	s.logger.Debug("aggregate computed",
		"metric", req.Metric,
		"statistic", req.Statistic,
		"groups", len(rows),
		"matched", matched)

	return &View{
		Metric:    req.Metric,
		Statistic: req.Statistic,
		GroupBy:   req.GroupBy,
		Rows:      rows,
		Matched:   matched,
	}, nil
}

func statValue(g *group, stat Statistic) float64 {
	switch stat {
	case StatSum:
		return g.sum
	case StatMean:
		return g.sum / float64(g.n)
	case StatMin:
		return g.min
	case StatMax:
		return g.max
	case StatCount:
		return float64(g.n)
	}
	return 0
}

func containsStatistic(vs []Statistic, v Statistic) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}
