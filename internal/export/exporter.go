// Package export serializes filtered rental records for download in
// csv, json or parquet format.
package export

import (
	"io"
	"strings"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// Exporter writes records to a stream in one format.
type Exporter interface {
	Export(w io.Writer, records []dataset.Record) error
	Extension() string
	ContentType() string
}

// New creates an exporter by format (csv, json, parquet).
// Returns nil if format not supported.
func New(format string) Exporter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVExporter{}
	case "json":
		return JSONExporter{}
	case "parquet":
		return ParquetExporter{}
	default:
		return nil
	}
}
