package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New(
		Column{Name: "a", Values: []any{"1", "2"}},
		Column{Name: "b", Values: []any{"1"}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "b"`)
}

func TestFromRowsPadsShortRows(t *testing.T) {
	tbl := FromRows([]string{"a", "b", "c"}, [][]any{
		{"1", "2", "3"},
		{"4"},
	})
	require.Equal(t, 2, tbl.NumRows())
	require.Equal(t, 3, tbl.NumCols())

	v, err := tbl.Value(1, "b")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestIndexReturnsFirstMatchForDuplicates(t *testing.T) {
	tbl := FromRows([]string{"mean", "cov", "mean"}, [][]any{{"1", "2", "3"}})
	assert.Equal(t, 0, tbl.Index("mean"))
	assert.Equal(t, -1, tbl.Index("missing"))
	assert.Error(t, tbl.CheckUniqueNames())
}

func TestWithColumnReplacesWithoutMutatingOriginal(t *testing.T) {
	tbl := FromRows([]string{"a", "b"}, [][]any{{"1", "2"}})

	out, err := tbl.WithColumn("a", []any{"x"})
	require.NoError(t, err)

	v, err := out.Value(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	orig, err := tbl.Value(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", orig)
}

func TestWithColumnAppendsNewColumn(t *testing.T) {
	tbl := FromRows([]string{"a"}, [][]any{{"1"}, {"2"}})

	out, err := tbl.WithColumn("b", []any{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Names())

	_, err = tbl.WithColumn("b", []any{"only one"})
	require.Error(t, err)
}

func TestSelectPositionsAndRename(t *testing.T) {
	tbl := FromRows([]string{"mean", "cov", "mean"}, [][]any{{"1", "2", "3"}})

	out, err := tbl.SelectPositions([]int{0, 2})
	require.NoError(t, err)

	out, err = out.RenameAt(0, "pm10")
	require.NoError(t, err)
	out, err = out.RenameAt(1, "pm25")
	require.NoError(t, err)

	require.Equal(t, []string{"pm10", "pm25"}, out.Names())
	v, err := out.Value(0, "pm25")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = tbl.SelectPositions([]int{0, 0})
	assert.Error(t, err)
	_, err = tbl.SelectPositions([]int{5})
	assert.Error(t, err)
}

func TestReorderPreservesValues(t *testing.T) {
	tbl := FromRows([]string{"a", "b", "c"}, [][]any{
		{"1", "2", "3"},
		{"4", "5", "6"},
	})

	out, err := tbl.Reorder([]string{"c", "a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, out.Names())
	require.Equal(t, tbl.NumRows(), out.NumRows())

	for row := 0; row < tbl.NumRows(); row++ {
		for _, name := range tbl.Names() {
			want, err := tbl.Value(row, name)
			require.NoError(t, err)
			got, err := out.Value(row, name)
			require.NoError(t, err)
			assert.Equal(t, want, got, "row %d column %s", row, name)
		}
	}

	_, err = tbl.Reorder([]string{"a", "b"})
	assert.Error(t, err)
	_, err = tbl.Reorder([]string{"a", "b", "z"})
	assert.Error(t, err)
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  float64
		isErr bool
	}{
		{"plain decimal string", "17.4", 17.4, false},
		{"padded string", "  3 ", 3, false},
		{"float64 passthrough", 2.5, 2.5, false},
		{"empty string", "", 0, true},
		{"nil", nil, 0, true},
		{"non-numeric", "converted", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AsFloat(tt.in)
			if tt.isErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFloatShortestForm(t *testing.T) {
	assert.Equal(t, "17.4", FormatFloat(17.4))
	assert.Equal(t, "3", FormatFloat(3))
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing("   "))
	assert.False(t, IsMissing("x"))
	assert.False(t, IsMissing(0.0))
}
