package datafile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVDecoder treats the first row as headers. The result holds "headers"
// ([]any of names) and "rows" ([]any of header-keyed maps), plus "name",
// the file name without extension.
type CSVDecoder struct{}

func (CSVDecoder) Decode(r io.Reader, filename string) (map[string]any, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	data := map[string]any{
		"name":    strings.TrimSuffix(filename, ".csv"),
		"headers": []any{},
		"rows":    []any{},
	}
	if len(records) == 0 {
		return data, nil
	}

	headers := records[0]
	hs := make([]any, len(headers))
	for i, h := range headers {
		hs[i] = h
	}
	data["headers"] = hs

	rows := make([]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]any, len(headers))
		for j, h := range headers {
			cell := ""
			if j < len(rec) {
				cell = rec[j]
			}
			row[h] = cell
		}
		rows = append(rows, row)
	}
	data["rows"] = rows
	return data, nil
}
