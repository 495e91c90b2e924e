package export

import (
	"encoding/json"
	"io"

	"github.com/velora/bikepulse/internal/domain/dataset"
)

// JSONExporter writes records as an indented JSON array.
type JSONExporter struct{}

func (JSONExporter) Extension() string   { return "json" }
func (JSONExporter) ContentType() string { return "application/json" }

func (JSONExporter) Export(w io.Writer, records []dataset.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
