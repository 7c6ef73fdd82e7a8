package table

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPadsShortRows(t *testing.T) {
	tbl := New([]string{"a", "b", "c"})
	require.NoError(t, tbl.Append([]any{"x"}))
	assert.Equal(t, []any{"x", nil, nil}, tbl.Rows[0])

	err := tbl.Append([]any{1.0, 2.0, 3.0, 4.0})
	assert.ErrorIs(t, err, ErrColumnMismatch)
	assert.Equal(t, 1, tbl.Len())
}

func TestIsEmpty(t *testing.T) {
	var nilTable *Table
	assert.True(t, nilTable.IsEmpty())
	assert.True(t, Empty().IsEmpty())
	assert.True(t, New([]string{"a"}).IsEmpty())

	tbl := New([]string{"a"})
	require.NoError(t, tbl.Append([]any{1.0}))
	assert.False(t, tbl.IsEmpty())
}

func TestDropMissing(t *testing.T) {
	tbl := New([]string{"a", "b"})
	require.NoError(t, tbl.Append([]any{1.0, "x"}))
	require.NoError(t, tbl.Append([]any{nil, "y"}))
	require.NoError(t, tbl.Append([]any{math.NaN(), "z"}))
	require.NoError(t, tbl.Append([]any{2.0, ""}))

	out := tbl.DropMissing()
	assert.Equal(t, [][]any{{1.0, "x"}, {2.0, ""}}, out.Rows)
	assert.Equal(t, 4, tbl.Len())
}

func TestRename(t *testing.T) {
	tbl := New([]string{"old", "keep"})
	require.NoError(t, tbl.Append([]any{"v", 1.0}))

	require.NoError(t, tbl.Rename("old", "new"))
	assert.Equal(t, []string{"keep", "new"}, tbl.Columns)
	assert.Equal(t, []any{1.0, "v"}, tbl.Rows[0])

	require.NoError(t, tbl.Rename("new", "keep"))
	assert.Equal(t, []string{"keep"}, tbl.Columns)
	assert.Equal(t, []any{"v"}, tbl.Rows[0])

	assert.ErrorIs(t, tbl.Rename("absent", "x"), ErrUnknownColumn)
}

func TestSet(t *testing.T) {
	tbl := New([]string{"a"})
	require.NoError(t, tbl.Append([]any{1.0}))

	require.NoError(t, tbl.Set(0, "a", "edited"))
	assert.Equal(t, "edited", tbl.Rows[0][0])

	assert.ErrorIs(t, tbl.Set(1, "a", 2.0), ErrRowOutOfRange)
	assert.ErrorIs(t, tbl.Set(-1, "a", 2.0), ErrRowOutOfRange)
	assert.ErrorIs(t, tbl.Set(0, "b", 2.0), ErrUnknownColumn)
}

func TestRecordsRoundTrip(t *testing.T) {
	tbl := New([]string{"b", "a"})
	require.NoError(t, tbl.Append([]any{"x", 1.0}))
	require.NoError(t, tbl.Append([]any{nil, true}))

	back := FromRecords(tbl.Columns, tbl.Records())
	assert.Equal(t, tbl.Columns, back.Columns)
	assert.Equal(t, tbl.Rows, back.Rows)
}

func TestFromRecordsExtraKeysAndNumbers(t *testing.T) {
	records := []map[string]any{
		{"a": json.Number("3"), "z": "late", "m": 7},
	}
	tbl := FromRecords([]string{"a"}, records)
	assert.Equal(t, []string{"a", "m", "z"}, tbl.Columns)
	assert.Equal(t, []any{3.0, 7.0, "late"}, tbl.Rows[0])
}

func TestInferNumeric(t *testing.T) {
	tbl := New([]string{"num", "mixed", "blank"})
	require.NoError(t, tbl.Append([]any{"1", "2", nil}))
	require.NoError(t, tbl.Append([]any{" 2.5", "n", nil}))
	require.NoError(t, tbl.Append([]any{nil, "3", nil}))

	tbl.InferNumeric()

	num, err := tbl.Column("num")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.5, nil}, num)

	mixed, err := tbl.Column("mixed")
	require.NoError(t, err)
	assert.Equal(t, []any{"2", "n", "3"}, mixed)

	blank, err := tbl.Column("blank")
	require.NoError(t, err)
	assert.Equal(t, []any{nil, nil, nil}, blank)
}

func TestToFloatAndFormat(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		ok     bool
		format string
	}{
		{in: 2.5, want: 2.5, ok: true, format: "2.5"},
		{in: 3.0, want: 3, ok: true, format: "3"},
		{in: "4", want: 4, ok: true, format: "4"},
		{in: "four", ok: false, format: "four"},
		{in: nil, ok: false, format: ""},
		{in: true, ok: false, format: "true"},
	}

	for _, tt := range tests {
		got, ok := ToFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
		assert.Equal(t, tt.format, Format(tt.in))
	}
}
