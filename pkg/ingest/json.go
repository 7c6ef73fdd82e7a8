package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"survey-dashboard-be/pkg/table"
)

// field is one key of a JSON object, in document order.
type field struct {
	key string
	raw json.RawMessage
}

// parseJSON accepts three layouts:
//
//	[{"col": v, ...}, ...]             records
//	{"col": {"0": v, "1": v}, ...}     column oriented (index -> value, or an array)
//	{"col": v}\n{"col": v}\n           newline-delimited records
func parseJSON(data []byte) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return nil, &ParseError{Format: FormatJSON, Reason: "decode document", Err: err}
	}

	first = bytes.TrimSpace(first)
	if len(first) == 0 {
		return nil, &ParseError{Format: FormatJSON, Reason: "empty document"}
	}

	if dec.More() {
		records := []json.RawMessage{first}
		for {
			var next json.RawMessage
			err := dec.Decode(&next)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, &ParseError{Format: FormatJSON, Reason: "decode line", Err: err}
			}
			records = append(records, next)
		}
		return fromRecords(records)
	}

	switch first[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(first, &records); err != nil {
			return nil, &ParseError{Format: FormatJSON, Reason: "decode records", Err: err}
		}
		return fromRecords(records)
	case '{':
		return fromColumns(first)
	}
	return nil, &ParseError{Format: FormatJSON, Reason: "top-level value must be an array or an object"}
}

func fromRecords(records []json.RawMessage) (*table.Table, error) {
	var columns []string
	index := map[string]int{}
	parsed := make([][]field, 0, len(records))

	for i, raw := range records {
		fields, err := readObject(raw)
		if err != nil {
			return nil, &ParseError{Format: FormatJSON, Reason: fmt.Sprintf("record %d", i), Err: err}
		}
		for _, f := range fields {
			if _, ok := index[f.key]; !ok {
				index[f.key] = len(columns)
				columns = append(columns, f.key)
			}
		}
		parsed = append(parsed, fields)
	}

	t := table.New(columns)
	for i, fields := range parsed {
		cells := make([]any, len(columns))
		for _, f := range fields {
			v, err := scalar(f.raw)
			if err != nil {
				return nil, &ParseError{Format: FormatJSON, Reason: fmt.Sprintf("record %d field %q", i, f.key), Err: err}
			}
			cells[index[f.key]] = v
		}
		t.Rows = append(t.Rows, cells)
	}

	t.InferNumeric()
	return t, nil
}

func fromColumns(raw json.RawMessage) (*table.Table, error) {
	cols, err := readObject(raw)
	if err != nil {
		return nil, &ParseError{Format: FormatJSON, Reason: "decode columns", Err: err}
	}

	columns := make([]string, len(cols))
	values := make([]map[string]any, len(cols))
	var rowKeys []string
	rowIndex := map[string]bool{}

	for ci, c := range cols {
		columns[ci] = c.key
		values[ci] = map[string]any{}

		entries, err := columnEntries(c.raw)
		if err != nil {
			return nil, &ParseError{Format: FormatJSON, Reason: fmt.Sprintf("column %q", c.key), Err: err}
		}
		for _, e := range entries {
			v, err := scalar(e.raw)
			if err != nil {
				return nil, &ParseError{Format: FormatJSON, Reason: fmt.Sprintf("column %q row %q", c.key, e.key), Err: err}
			}
			values[ci][e.key] = v
			if !rowIndex[e.key] {
				rowIndex[e.key] = true
				rowKeys = append(rowKeys, e.key)
			}
		}
	}

	t := table.New(columns)
	for _, rk := range rowKeys {
		cells := make([]any, len(columns))
		for ci := range columns {
			cells[ci] = values[ci][rk]
		}
		t.Rows = append(t.Rows, cells)
	}

	t.InferNumeric()
	return t, nil
}

// columnEntries reads a column given as an index->value object or a plain array.
func columnEntries(raw json.RawMessage) ([]field, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		out := make([]field, len(items))
		for i, item := range items {
			out[i] = field{key: fmt.Sprint(i), raw: item}
		}
		return out, nil
	}
	return readObject(raw)
}

// readObject decodes one JSON object keeping key order.
func readObject(raw json.RawMessage) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var out []field
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := kt.(string)

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, field{key: key, raw: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// scalar converts a JSON value into a table cell. Nested values are kept as their
// compact JSON text.
func scalar(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f, nil
		}
		return x.String(), nil
	case string:
		return x, nil
	case bool:
		return x, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.String(), nil
}
