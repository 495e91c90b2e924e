package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/velora/bikepulse/internal/config"
	"github.com/velora/bikepulse/internal/domain/dataset"
	"github.com/velora/bikepulse/internal/domain/stats"
	"github.com/velora/bikepulse/internal/mcp"
	"github.com/velora/bikepulse/internal/sqlite"
	"github.com/velora/bikepulse/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ds, err := loadDataset(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	statsSvc := stats.NewService(logger)
	mcpServer := mcp.NewServer(mcp.Config{
		Dataset: ds,
		Stats:   statsSvc,
		Logger:  logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, ds, statsSvc, cfg.Server.Host, cfg.Server.Port)
	}
}

// loadDataset materializes the dataset once per process: from the SQLite
// catalog when configured, otherwise from a CSV file or URL.
func loadDataset(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dataset.Dataset, error) {
	if cfg.Data.Catalog != "" {
		db, err := sqlite.New(cfg.Data.Catalog)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		ds, err := sqlite.NewCatalog(db).Load(ctx, cfg.Data.Dataset)
		if err != nil {
			return nil, &dataset.LoadError{
				Source: cfg.Data.Catalog,
				Reason: fmt.Sprintf("dataset %q", cfg.Data.Dataset),
				Err:    err,
			}
		}
		logger.Info("dataset loaded from catalog",
			"catalog", cfg.Data.Catalog,
			"name", ds.Name(),
			"records", ds.Len())
		return ds, nil
	}
	return dataset.NewLoader(logger).Load(ctx, cfg.Data.Source)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, ds *dataset.Dataset, statsSvc *stats.Service, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewRouter(ds, statsSvc, logger, mcpHandler)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "dataset", ds.Name(), "records", ds.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
