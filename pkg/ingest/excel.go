package ingest

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"survey-dashboard-be/pkg/table"
)

// parseExcel reads the first worksheet; its first row is the header.
func parseExcel(data []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: FormatExcel, Reason: "open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: FormatExcel, Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Format: FormatExcel, Reason: "read sheet " + sheets[0], Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Format: FormatExcel, Reason: "sheet " + sheets[0] + " is empty"}
	}

	// GetRows trims trailing empty cells, so the widest row sets the column count.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[0])

	t := table.New(headerNames(header))
	for _, row := range rows[1:] {
		cells := make([]any, len(row))
		for i, raw := range row {
			cells[i] = cell(raw)
		}
		if err := t.Append(cells); err != nil {
			return nil, &ParseError{Format: FormatExcel, Reason: "append row", Err: err}
		}
	}

	t.InferNumeric()
	return t, nil
}
