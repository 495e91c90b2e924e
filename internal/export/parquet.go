package export

import (
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/velora/bikepulse/internal/domain/dataset"
)

// ParquetExporter writes records as a parquet file.
type ParquetExporter struct{}

func (ParquetExporter) Extension() string   { return "parquet" }
func (ParquetExporter) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetExporter) Export(w io.Writer, records []dataset.Record) error {
	pw := parquet.NewGenericWriter[dataset.Record](w)
	if _, err := pw.Write(records); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}
