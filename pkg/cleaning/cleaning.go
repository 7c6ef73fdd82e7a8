// Package cleaning applies the fixed normalization rules every uploaded survey goes through.
package cleaning

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"survey-dashboard-be/pkg/table"
)

// Column names as they appear in the survey export, typos included.
const (
	ColumnPlatform      = "Prefered social media platform"
	ColumnTV            = "Time spent on TV"
	ColumnConnectedLong = "Do you find yourself more connected with your family, close friends , relatives  ?"
	ColumnConnected     = "Are they connected with family and friends"
)

// tvZeroTokens are the answers read as "no TV time".
var tvZeroTokens = map[string]struct{}{
	"":      {},
	"n":     {},
	"N":     {},
	"No tv": {},
	" ":     {},
}

var platformLabels = map[string]string{
	"Whatsapp": "WhatsApp",
}

// CoercionError reports a cell that could not be read as a number.
type CoercionError struct {
	Column string
	Row    int
	Value  string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot convert %q to float", e.Column, e.Row, e.Value)
}

// IsCoercion reports whether err is (or wraps) a *CoercionError.
func IsCoercion(err error) bool {
	var ce *CoercionError
	return errors.As(err, &ce)
}

// Clean returns a new table with rows holding missing cells dropped, platform labels
// unified, TV time coerced to float64 and the family-connection question renamed.
// The input is never modified.
func Clean(t *table.Table) (*table.Table, error) {
	if t.IsEmpty() {
		return table.Empty(), nil
	}

	out := t.DropMissing()
	if out.Len() == 0 {
		return table.Empty(), nil
	}

	if out.Has(ColumnPlatform) {
		err := out.MapColumn(ColumnPlatform, func(_ int, v any) (any, error) {
			if s, ok := v.(string); ok {
				if fixed, found := platformLabels[s]; found {
					return fixed, nil
				}
			}
			return v, nil
		})
		if err != nil {
			return nil, err
		}
	}

	if out.Has(ColumnTV) {
		if err := out.MapColumn(ColumnTV, coerceTV); err != nil {
			return nil, err
		}
	}

	if out.Has(ColumnConnectedLong) {
		if err := out.Rename(ColumnConnectedLong, ColumnConnected); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func coerceTV(row int, v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case bool:
		if x {
			return 1.0, nil
		}
		return 0.0, nil
	case string:
		if _, ok := tvZeroTokens[x]; ok {
			return 0.0, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, &CoercionError{Column: ColumnTV, Row: row, Value: x}
		}
		return f, nil
	}
	return nil, &CoercionError{Column: ColumnTV, Row: row, Value: table.Format(v)}
}
