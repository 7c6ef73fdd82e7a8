package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-dashboard-be/pkg/table"
)

func newTable(columns []string, rows ...[]any) *table.Table {
	t := table.New(columns)
	for _, r := range rows {
		t.Rows = append(t.Rows, r)
	}
	return t
}

func TestCleanIdentity(t *testing.T) {
	in := newTable([]string{"Region of residence", "Age of Subject"},
		[]any{"Delhi-NCR", 21.0},
		[]any{"Outside Delhi-NCR", 19.0},
	)

	out, err := Clean(in)
	require.NoError(t, err)
	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, in.Rows, out.Rows)
}

func TestCleanDropsRowsWithMissingCells(t *testing.T) {
	in := newTable([]string{"a", "b"},
		[]any{"x", 1.0},
		[]any{nil, 2.0},
		[]any{"z", nil},
	)

	out, err := Clean(in)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, []any{"x", 1.0}, out.Rows[0])
	assert.Equal(t, 3, in.Len(), "input must not be modified")
}

func TestCleanAllRowsMissing(t *testing.T) {
	out, err := Clean(newTable([]string{"a"}, []any{nil}))
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
	assert.Empty(t, out.Columns)

	out, err = Clean(table.Empty())
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}

func TestCleanPlatformLabels(t *testing.T) {
	in := newTable([]string{ColumnPlatform},
		[]any{"Whatsapp"},
		[]any{"WhatsApp"},
		[]any{"whatsapp"},
		[]any{"Instagram"},
		[]any{" Whatsapp"},
	)

	out, err := Clean(in)
	require.NoError(t, err)

	got, err := out.Column(ColumnPlatform)
	require.NoError(t, err)
	assert.Equal(t, []any{"WhatsApp", "WhatsApp", "whatsapp", "Instagram", " Whatsapp"}, got)
}

func TestCleanTVColumn(t *testing.T) {
	in := newTable([]string{ColumnTV},
		[]any{"2"}, []any{"n"}, []any{"N"}, []any{"No tv"}, []any{" "}, []any{"5.5"},
	)

	out, err := Clean(in)
	require.NoError(t, err)

	got, err := out.Column(ColumnTV)
	require.NoError(t, err)
	assert.Equal(t, []any{2.0, 0.0, 0.0, 0.0, 0.0, 5.5}, got)
}

func TestCleanTVColumnRejectsUnknownTokens(t *testing.T) {
	in := newTable([]string{ColumnTV}, []any{"1"}, []any{"sometimes"})

	_, err := Clean(in)
	require.Error(t, err)
	assert.True(t, IsCoercion(err))

	var ce *CoercionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Row)
	assert.Equal(t, "sometimes", ce.Value)
}

func TestCleanRenamesConnectedQuestion(t *testing.T) {
	in := newTable([]string{ColumnConnectedLong, "Age of Subject"},
		[]any{"YES", 20.0},
		[]any{"NO", 22.0},
	)

	out, err := Clean(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Age of Subject", ColumnConnected}, out.Columns)
	assert.Equal(t, []any{20.0, "YES"}, out.Rows[0])
	assert.Equal(t, []any{22.0, "NO"}, out.Rows[1])
}
