package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is the tabular form shared by the CSV and PDF renderers. Columns
// are positional; rows shorter than the header are padded with empty cells
// and longer rows are truncated, so the output stays rectangular.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

func (d Dataset) record(i int) []string {
	record := make([]string, len(d.Headers))
	copy(record, d.Rows[i])
	return record
}

// CSVExporter renders a dataset into UTF-8 CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset. A UTF-8 BOM is
// prepended so spreadsheet tools open the Vietnamese labels correctly.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	buf.WriteString("\uFEFF")
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for i := range data.Rows {
		if err := writer.Write(data.record(i)); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
