// Package mcp exposes the dashboard's analytics as Model Context Protocol
// tools, so assistants can query the dataset the same way the web UI does.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/velora/bikepulse/internal/domain/dataset"
	"github.com/velora/bikepulse/internal/domain/stats"
)

const serverInstructions = `bikepulse serves read-only analytics over a bike
sharing rental dataset. Use list_dimensions to discover grouping dimensions,
metrics and category domains, then aggregate_rentals to compute grouped
summaries. get_dataset_overview returns headline totals and
get_correlation a Pearson correlation matrix over the numeric columns.`

// Config contains server configuration.
type Config struct {
	Dataset *dataset.Dataset
	Stats   *stats.Service
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "bikepulse",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Dataset, cfg.Stats)

	return server
}
