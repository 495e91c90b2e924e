package transport

import (
	"fmt"
	"net/http"

	"github.com/velora/bikepulse/internal/export"
)

// handleExport streams the filtered records as a download. Format defaults
// to csv.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	exporter := export.New(format)
	if exporter == nil {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("unsupported format %q (use: csv, json, parquet)", format))
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	records := filter.Apply(s.ds)

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.%s", s.ds.Name(), exporter.Extension()))
	if err := exporter.Export(w, records); err != nil {
		s.logger.Error("export failed", "format", format, "error", err)
	}
}
