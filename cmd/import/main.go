// Command import loads bike-sharing CSV files into the SQLite dataset
// catalog, so the server can start from the catalog instead of re-parsing
// CSVs.
//
// Usage:
//
//	import -db bikepulse.db data/day.csv data/hour.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/velora/bikepulse/internal/domain/dataset"
	"github.com/velora/bikepulse/internal/sqlite"
)

func main() {
	dbPath := flag.String("db", "bikepulse.db", "path to the catalog database")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(*logLevel),
	}))

	sources := flag.Args()
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: import [-db path] <csv-or-url> [...]")
		os.Exit(2)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	loader := dataset.NewLoader(logger)
	catalog := sqlite.NewCatalog(db)

	for _, source := range sources {
		ds, err := loader.Load(ctx, source)
		if err != nil {
			logger.Error("import failed", "source", source, "error", err)
			os.Exit(1)
		}
		batchID, err := catalog.Import(ctx, ds, source)
		if err != nil {
			logger.Error("import failed", "source", source, "error", err)
			os.Exit(1)
		}
		logger.Info("dataset imported",
			"source", source,
			"name", ds.Name(),
			"granularity", ds.Granularity(),
			"records", ds.Len(),
			"batch_id", batchID)
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
