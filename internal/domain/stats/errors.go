package stats

import "errors"

var (
	// ErrUnknownDimension indicates a group-by dimension absent from the schema.
	ErrUnknownDimension = errors.New("unknown dimension")
	// ErrUnknownMetric indicates a metric absent from the schema.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrUnknownStatistic indicates an unsupported summary statistic.
	ErrUnknownStatistic = errors.New("unknown statistic")
	// ErrNoGroupBy indicates a request without any group-by dimension.
	ErrNoGroupBy = errors.New("at least one group-by dimension required")
)
