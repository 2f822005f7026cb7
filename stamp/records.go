package stamp

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one input row, column name to value.
type Record map[string]string

// ReadRecords parses CSV input with a header row into records. Column names
// are trimmed; values keep their whitespace.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("records: empty input, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("records: read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("records: line %d: %w", line, err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadRecordsFile reads CSV records from path.
func ReadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}
