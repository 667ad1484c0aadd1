package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrDecode reports byte content that cannot be read as tabular text. It is
// not returned for empty or whitespace-only input, which decodes to zero
// rows.
var ErrDecode = errors.New("undecodable tabular content")

// ParseCSV decodes raw upload bytes into rows keyed by the header line.
//
// The parser is deliberately lenient: ragged rows are tolerated rather than
// rejected. A data row shorter than the header yields absent cells for the
// trailing columns; extra fields beyond the header are dropped. Empty cells
// become null cells, not errors. Only invalid UTF-8 and CSV structure the
// reader itself cannot recover (for example an unterminated quote) fail the
// whole decode.
func ParseCSV(content []byte) ([]Row, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("ParseCSV: content is not valid UTF-8: %w", ErrDecode)
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1 // ragged rows are handled below

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ParseCSV: reading rows: %v: %w", err, ErrDecode)
	}

	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i >= len(rec) {
				continue // short row: column stays absent
			}
			value := rec[i]
			row[name] = Cell{Value: value, Null: value == ""}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
