package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/velora/bikepulse/internal/domain/stats"
)

// aggregateQuery holds the raw /api/aggregate parameters before they are
// handed to the stats service.
type aggregateQuery struct {
	Metric  string   `validate:"required"`
	Stat    string   `validate:"required"`
	GroupBy []string `validate:"required,min=1,max=2,dive,required"`
}

func (s *Server) parseAggregate(r *http.Request) (stats.Request, error) {
	q := aggregateQuery{
		Metric:  r.URL.Query().Get("metric"),
		Stat:    r.URL.Query().Get("stat"),
		GroupBy: splitList(r.URL.Query().Get("group_by")),
	}
	if err := s.validate.Struct(q); err != nil {
		return stats.Request{}, fmt.Errorf("invalid aggregate query: metric, stat and group_by (1-2 dimensions) are required")
	}

	filter, err := parseFilter(r)
	if err != nil {
		return stats.Request{}, err
	}

	groupBy := make([]stats.Dimension, len(q.GroupBy))
	for i, g := range q.GroupBy {
		groupBy[i] = stats.Dimension(g)
	}

	return stats.Request{
		Metric:    stats.Metric(q.Metric),
		Statistic: stats.Statistic(q.Stat),
		GroupBy:   groupBy,
		Filter:    filter,
	}, nil
}

// parseFilter reads the shared filter parameters: years, seasons, weathers,
// day_types, from, to, from_hour, to_hour.
func parseFilter(r *http.Request) (stats.Filter, error) {
	var f stats.Filter
	q := r.URL.Query()

	for _, y := range splitList(q.Get("years")) {
		year, err := strconv.Atoi(y)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid year %q", y)
		}
		f.Years = append(f.Years, year)
	}
	f.Seasons = splitList(q.Get("seasons"))
	f.Weathers = splitList(q.Get("weathers"))
	f.DayTypes = splitList(q.Get("day_types"))

	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid from date %q", from)
		}
		f.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid to date %q", to)
		}
		f.To = t
	}
	if v := q.Get("from_hour"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid from_hour %q", v)
		}
		f.FromHour = &h
	}
	if v := q.Get("to_hour"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid to_hour %q", v)
		}
		f.ToHour = &h
	}

	return f, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
