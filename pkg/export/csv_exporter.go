package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// ProvidedMark fills a CSV cell for a date the service was provided.
const ProvidedMark = "✓"

// Dataset defines tabular export content. Each row holds one value per header,
// in header order; short rows are padded with blanks.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset. Fields containing commas,
// quotes or line breaks are quoted with inner quotes doubled.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for i, row := range data.Rows {
		if len(row) > len(data.Headers) {
			return nil, fmt.Errorf("csv row %d has %d fields, want at most %d", i, len(row), len(data.Headers))
		}
		record := make([]string, len(data.Headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
