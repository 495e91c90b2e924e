package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/velora/bikepulse/internal/domain/dataset"
	"github.com/velora/bikepulse/internal/domain/stats"
)

// FilterInput is the shared filter block of the analytics tools. Dates use
// the YYYY-MM-DD format.
type FilterInput struct {
	Years    []int    `json:"years,omitempty" jsonschema:"calendar years to include"`
	Seasons  []string `json:"seasons,omitempty" jsonschema:"season labels to include (Winter, Spring, Summer, Fall)"`
	Weathers []string `json:"weathers,omitempty" jsonschema:"weather labels to include"`
	DayTypes []string `json:"day_types,omitempty" jsonschema:"Weekday and/or Weekend"`
	From     string   `json:"from,omitempty" jsonschema:"first date to include, YYYY-MM-DD"`
	To       string   `json:"to,omitempty" jsonschema:"last date to include, YYYY-MM-DD"`
	FromHour *int     `json:"from_hour,omitempty" jsonschema:"earliest hour to include (0-23), hourly datasets only"`
	ToHour   *int     `json:"to_hour,omitempty" jsonschema:"latest hour to include (0-23), hourly datasets only"`
}

func (in FilterInput) toFilter() (stats.Filter, error) {
	f := stats.Filter{
		Years:    in.Years,
		Seasons:  in.Seasons,
		Weathers: in.Weathers,
		DayTypes: in.DayTypes,
		FromHour: in.FromHour,
		ToHour:   in.ToHour,
	}
	if in.From != "" {
		t, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid from date %q", in.From)
		}
		f.From = t
	}
	if in.To != "" {
		t, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return stats.Filter{}, fmt.Errorf("invalid to date %q", in.To)
		}
		f.To = t
	}
	return f, nil
}

// AggregateInput describes one aggregate_rentals call.
type AggregateInput struct {
	Metric  string   `json:"metric" jsonschema:"metric to summarize: rides, casual or registered"`
	Stat    string   `json:"stat" jsonschema:"summary statistic: sum, mean, min, max or count"`
	GroupBy []string `json:"group_by" jsonschema:"one or two grouping dimensions"`
	FilterInput
}

// OverviewInput describes one get_dataset_overview call.
type OverviewInput struct {
	FilterInput
}

// DimensionsInput has no parameters.
type DimensionsInput struct{}

// CorrelationInput describes one get_correlation call.
type CorrelationInput struct {
	FilterInput
}

// DimensionsOutput lists the queryable schema of the loaded dataset.
type DimensionsOutput struct {
	Dataset     string              `json:"dataset"`
	Granularity dataset.Granularity `json:"granularity"`
	Records     int                 `json:"records"`
	Dimensions  []stats.Dimension   `json:"dimensions"`
	Metrics     []stats.Metric      `json:"metrics"`
	Statistics  []stats.Statistic   `json:"statistics"`
	Domains     map[string][]string `json:"domains"`
}

func registerTools(server *sdkmcp.Server, ds *dataset.Dataset, statsSvc *stats.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dataset_overview",
		Description: "Headline totals for the rental dataset under optional filters: total rides, average per period, casual/registered shares",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in OverviewInput) (*sdkmcp.CallToolResult, stats.Overview, error) {
		f, err := in.toFilter()
		if err != nil {
			return nil, stats.Overview{}, err
		}
		return nil, statsSvc.Overview(ds, f), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "aggregate_rentals",
		Description: "Compute a grouped summary of rentals, e.g. mean rides by season and weather",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AggregateInput) (*sdkmcp.CallToolResult, *stats.View, error) {
		f, err := in.toFilter()
		if err != nil {
			return nil, nil, err
		}
		groupBy := make([]stats.Dimension, len(in.GroupBy))
		for i, g := range in.GroupBy {
			groupBy[i] = stats.Dimension(g)
		}
		view, err := statsSvc.Aggregate(ds, stats.Request{
			Metric:    stats.Metric(in.Metric),
			Statistic: stats.Statistic(in.Stat),
			GroupBy:   groupBy,
			Filter:    f,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, view, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_dimensions",
		Description: "List the dataset's grouping dimensions, metrics, statistics and category domains",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DimensionsInput) (*sdkmcp.CallToolResult, DimensionsOutput, error) {
		domains := make(map[string][]string)
		for _, d := range []stats.Dimension{
			stats.ByYear, stats.BySeason, stats.ByWeather, stats.ByDayType, stats.ByHour,
		} {
			values, err := stats.DomainValues(ds, d)
			if err != nil {
				continue
			}
			domains[string(d)] = values
		}
		return nil, DimensionsOutput{
			Dataset:     ds.Name(),
			Granularity: ds.Granularity(),
			Records:     ds.Len(),
			Dimensions:  stats.DimensionsFor(ds),
			Metrics:     stats.Metrics(),
			Statistics:  stats.Statistics(),
			Domains:     domains,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_correlation",
		Description: "Pearson correlation matrix over the dataset's numeric columns under optional filters",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CorrelationInput) (*sdkmcp.CallToolResult, *stats.Correlation, error) {
		f, err := in.toFilter()
		if err != nil {
			return nil, nil, err
		}
		return nil, statsSvc.Correlation(ds, f), nil
	})
}
