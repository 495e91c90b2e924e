package stats

import (
	"time"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// Overview summarizes a filtered dataset subset: the dashboard's headline
// metric cards.
type Overview struct {
	Records         int       `json:"records"`
	TotalRides      int       `json:"total_rides"`
	AvgRides        float64   `json:"avg_rides"`
	CasualShare     float64   `json:"casual_share"`
	RegisteredShare float64   `json:"registered_share"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
}

// Overview computes headline totals over the filtered subset. Shares are
// percentages of total rides.
func (s *Service) Overview(ds *dataset.Dataset, f Filter) Overview {
	var o Overview
	var casual, registered int
	for _, r := range ds.Records() {
		if !f.matches(r) {
			continue
		}
		if o.Records == 0 || r.Date.Before(o.From) {
			o.From = r.Date
		}
		if o.Records == 0 || r.Date.After(o.To) {
			o.To = r.Date
		}
		o.Records++
		o.TotalRides += r.Rides
		casual += r.Casual
		registered += r.Registered
	}
	if o.Records > 0 {
		o.AvgRides = float64(o.TotalRides) / float64(o.Records)
	}
	if o.TotalRides > 0 {
		o.CasualShare = 100 * float64(casual) / float64(o.TotalRides)
		o.RegisteredShare = 100 * float64(registered) / float64(o.TotalRides)
	}
	return o
}
