package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	"survey-dashboard-be/pkg/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(data []byte) (*table.Table, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Format: FormatCSV, Reason: "content is not valid UTF-8"}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	// A lone space is a real survey answer, so leading spaces are kept.
	r.TrimLeadingSpace = false

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Format: FormatCSV, Reason: "no columns to parse"}
		}
		return nil, &ParseError{Format: FormatCSV, Reason: "read header", Err: err}
	}

	t := table.New(headerNames(header))
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Reason: "read record", Err: err}
		}

		cells := make([]any, len(record))
		for i, raw := range record {
			cells[i] = cell(raw)
		}
		if err := t.Append(cells); err != nil {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{Format: FormatCSV, Reason: "line " + strconv.Itoa(line), Err: err}
		}
	}

	t.InferNumeric()
	return t, nil
}
