package stats

import (
	"time"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// Filter narrows the records considered by an aggregation. Zero values and
// empty slices match everything. Values outside a category domain simply
// match nothing. Hour bounds apply to hourly records only; daily records
// pass through them.
type Filter struct {
	Years    []int     `json:"years,omitempty"`
	Seasons  []string  `json:"seasons,omitempty"`
	Weathers []string  `json:"weathers,omitempty"`
	DayTypes []string  `json:"day_types,omitempty"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
	FromHour *int      `json:"from_hour,omitempty"`
	ToHour   *int      `json:"to_hour,omitempty"`
}

func (f Filter) matches(r dataset.Record) bool {
	if len(f.Years) > 0 && !containsInt(f.Years, r.Year) {
		return false
	}
	if len(f.Seasons) > 0 && !containsString(f.Seasons, r.Season.String()) {
		return false
	}
	if len(f.Weathers) > 0 && !containsString(f.Weathers, r.Weather.String()) {
		return false
	}
	if len(f.DayTypes) > 0 && !containsString(f.DayTypes, r.DayType()) {
		return false
	}
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(f.To) {
		return false
	}
	if f.FromHour != nil && r.Hour != dataset.NoHour && r.Hour < *f.FromHour {
		return false
	}
	if f.ToHour != nil && r.Hour != dataset.NoHour && r.Hour > *f.ToHour {
		return false
	}
	return true
}

// Apply returns the records matching the filter, in dataset order. The
// returned slice shares no structure with future filter calls; records
// themselves are immutable.
func (f Filter) Apply(ds *dataset.Dataset) []dataset.Record {
	matched := make([]dataset.Record, 0, ds.Len())
	for _, r := range ds.Records() {
		if f.matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

func containsInt(vs []int, v int) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(vs []string, v string) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}
