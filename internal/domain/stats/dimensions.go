package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// Dimension is a grouping axis over the dataset schema.
type Dimension string

const (
	ByDate       Dimension = "date"
	ByMonth      Dimension = "month"
	ByYear       Dimension = "year"
	BySeason     Dimension = "season"
	ByWeather    Dimension = "weather"
	ByHour       Dimension = "hour"
	ByWeekday    Dimension = "weekday"
	ByDayType    Dimension = "daytype"
	ByWorkingDay Dimension = "workingday"
	ByHoliday    Dimension = "holiday"
)

// Metric is a numeric column an aggregation can summarize.
type Metric string

const (
	MetricRides      Metric = "rides"
	MetricCasual     Metric = "casual"
	MetricRegistered Metric = "registered"
)

// Statistic is a summary function applied per group.
type Statistic string

const (
	StatSum   Statistic = "sum"
	StatMean  Statistic = "mean"
	StatMin   Statistic = "min"
	StatMax   Statistic = "max"
	StatCount Statistic = "count"
)

// Dimensions lists all grouping axes in presentation order.
func Dimensions() []Dimension {
	return []Dimension{
		ByDate, ByMonth, ByYear, BySeason, ByWeather,
		ByHour, ByWeekday, ByDayType, ByWorkingDay, ByHoliday,
	}
}

// DimensionsFor lists the grouping axes applicable to the dataset. Daily
// datasets exclude hour.
func DimensionsFor(ds *dataset.Dataset) []Dimension {
	if ds.Granularity() == dataset.Hourly {
		return Dimensions()
	}
	dims := make([]Dimension, 0, len(Dimensions())-1)
	for _, d := range Dimensions() {
		if d != ByHour {
			dims = append(dims, d)
		}
	}
	return dims
}

// Metrics lists all summarizable columns.
func Metrics() []Metric {
	return []Metric{MetricRides, MetricCasual, MetricRegistered}
}

// Statistics lists all supported summary functions.
func Statistics() []Statistic {
	return []Statistic{StatSum, StatMean, StatMin, StatMax, StatCount}
}

// dimensionKey returns the group label and sort ordinal of a record along
// the given dimension.
func dimensionKey(r dataset.Record, d Dimension) (string, int64, error) {
	switch d {
	case ByDate:
		return r.Date.Format("2006-01-02"), r.Date.Unix(), nil
	case ByMonth:
		return r.Month.String(), int64(r.Month), nil
	case ByYear:
		return strconv.Itoa(r.Year), int64(r.Year), nil
	case BySeason:
		return r.Season.String(), int64(r.Season), nil
	case ByWeather:
		return r.Weather.String(), int64(r.Weather), nil
	case ByHour:
		if r.Hour == dataset.NoHour {
			return "", 0, fmt.Errorf("%w: %q requires an hourly dataset", ErrUnknownDimension, d)
		}
		return strconv.Itoa(r.Hour), int64(r.Hour), nil
	case ByWeekday:
		return r.Weekday.String(), int64(r.Weekday), nil
	case ByDayType:
		if r.IsWeekend() {
			return "Weekend", 1, nil
		}
		return "Weekday", 0, nil
	case ByWorkingDay:
		if r.WorkingDay {
			return "Working Day", 1, nil
		}
		return "Non-working Day", 0, nil
	case ByHoliday:
		if r.Holiday {
			return "Holiday", 1, nil
		}
		return "No Holiday", 0, nil
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
	}
}

func metricValue(r dataset.Record, m Metric) (float64, error) {
	switch m {
	case MetricRides:
		return float64(r.Rides), nil
	case MetricCasual:
		return float64(r.Casual), nil
	case MetricRegistered:
		return float64(r.Registered), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
	}
}

// DomainValues returns the distinct labels present in the dataset along a
// dimension, in the dimension's natural order.
func DomainValues(ds *dataset.Dataset, d Dimension) ([]string, error) {
	type entry struct {
		label string
		ord   int64
	}
	seen := make(map[string]int64)
	for _, r := range ds.Records() {
		label, ord, err := dimensionKey(r, d)
		if err != nil {
			return nil, err
		}
		seen[label] = ord
	}
	entries := make([]entry, 0, len(seen))
	for label, ord := range seen {
		entries = append(entries, entry{label, ord})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ord < entries[j].ord })

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label
	}
	return labels, nil
}
