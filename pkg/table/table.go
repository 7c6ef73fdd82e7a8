package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownColumn  = errors.New("unknown column")
	ErrRowOutOfRange  = errors.New("row out of range")
	ErrColumnMismatch = errors.New("column count mismatch")
)

// Table is an ordered set of named columns with row-major cells.
// A cell holds nil (missing), string, float64 or bool.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New creates a table with the given header and no rows.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: [][]any{}}
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{Columns: []string{}, Rows: [][]any{}}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no columns or no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Columns) == 0 || len(t.Rows) == 0
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether every named column exists.
func (t *Table) Has(cols ...string) bool {
	for _, c := range cols {
		if t.Index(c) < 0 {
			return false
		}
	}
	return true
}

// Missing returns the named columns that do not exist, in argument order.
func (t *Table) Missing(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if t.Index(c) < 0 {
			out = append(out, c)
		}
	}
	return out
}

// Column returns the cells of col in row order.
func (t *Table) Column(col string) ([]any, error) {
	idx := t.Index(col)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Append adds a row, padding short rows with missing cells.
func (t *Table) Append(row []any) error {
	if len(row) > len(t.Columns) {
		return fmt.Errorf("%w: got %d cells for %d columns", ErrColumnMismatch, len(row), len(t.Columns))
	}
	cells := make([]any, len(t.Columns))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
	return nil
}

func (t *Table) Clone() *Table {
	if t == nil {
		return Empty()
	}
	out := New(t.Columns)
	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		copy(cells, row)
		out.Rows[i] = cells
	}
	return out
}

// DropMissing returns a copy without every row that has a missing cell.
func (t *Table) DropMissing() *Table {
	out := New(t.Columns)
	for _, row := range t.Rows {
		keep := true
		for _, v := range row {
			if IsMissing(v) {
				keep = false
				break
			}
		}
		if keep {
			cells := make([]any, len(row))
			copy(cells, row)
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}

// MapColumn replaces each cell of col with fn(cell). The first error stops the walk.
func (t *Table) MapColumn(col string, fn func(row int, v any) (any, error)) error {
	idx := t.Index(col)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	for i, row := range t.Rows {
		v, err := fn(i, row[idx])
		if err != nil {
			return err
		}
		row[idx] = v
	}
	return nil
}

// Rename copies from into to and drops from. A new column is appended at the end;
// an existing column named to is overwritten in place.
func (t *Table) Rename(from, to string) error {
	src := t.Index(from)
	if src < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, from)
	}
	if from == to {
		return nil
	}
	dst := t.Index(to)
	if dst < 0 {
		t.Columns = append(t.Columns, to)
		for i, row := range t.Rows {
			t.Rows[i] = append(row, row[src])
		}
	} else {
		for _, row := range t.Rows {
			row[dst] = row[src]
		}
	}
	t.dropColumn(src)
	return nil
}

func (t *Table) dropColumn(idx int) {
	t.Columns = append(t.Columns[:idx:idx], t.Columns[idx+1:]...)
	for i, row := range t.Rows {
		t.Rows[i] = append(row[:idx:idx], row[idx+1:]...)
	}
}

// Set writes one cell.
func (t *Table) Set(row int, col string, v any) error {
	idx := t.Index(col)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("%w: %d (rows=%d)", ErrRowOutOfRange, row, len(t.Rows))
	}
	t.Rows[row][idx] = v
	return nil
}

// Records converts rows into column-keyed maps, the shape the table editor speaks.
func (t *Table) Records() []map[string]any {
	if t == nil {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, c := range t.Columns {
			rec[c] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// FromRecords builds a table from editor rows. Keys not listed in columns are
// appended in the order they are first seen (sorted within one record).
func FromRecords(columns []string, records []map[string]any) *Table {
	t := New(columns)
	for _, rec := range records {
		for _, k := range sortedKeys(rec) {
			if t.Index(k) < 0 {
				t.Columns = append(t.Columns, k)
			}
		}
	}
	for _, rec := range records {
		cells := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			cells[i] = Normalize(rec[c])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// InferNumeric turns every string column whose non-missing cells all parse as
// finite numbers into a float64 column.
func (t *Table) InferNumeric() {
	for ci := range t.Columns {
		numeric := true
		seen := false
		for _, row := range t.Rows {
			v := row[ci]
			if IsMissing(v) {
				continue
			}
			seen = true
			if _, ok := parseNumeric(v); !ok {
				numeric = false
				break
			}
		}
		if !numeric || !seen {
			continue
		}
		for _, row := range t.Rows {
			if IsMissing(row[ci]) {
				continue
			}
			f, _ := parseNumeric(row[ci])
			row[ci] = f
		}
	}
}

// IsMissing reports nil cells and NaN floats.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	}
	return false
}

// ToFloat reads numbers and numeric strings.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		return parseNumeric(x)
	}
	return 0, false
}

// Format renders a cell the way it appears in labels and legends.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func parseNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Normalize converts a decoded JSON or editor value into a cell.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, string, float64, bool:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
