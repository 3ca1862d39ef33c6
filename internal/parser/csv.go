package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/studentdash/internal/student"
)

// Parse reads CSV from r using the first row as field names. Blank lines are
// skipped; a row of empty fields such as ",,," is kept. Short rows leave
// trailing fields absent; extra fields are dropped.
func Parse(r io.Reader, opt Options) ([]student.Record, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []student.Record{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		// A UTF-8 BOM survives encoding/csv on the first header cell.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := []student.Record{}
	line := 1
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		if emptyLine(row) {
			continue
		}
		rec := make(student.Record, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// emptyLine reports a line that parsed to a single empty field.
func emptyLine(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}
