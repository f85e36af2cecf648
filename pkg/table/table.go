// pkg/table/table.go
package table

import (
	"fmt"
)

// Column is a single named column of row-aligned values. Values are produced
// by the loader as string or nil (empty cell); cleaning steps may replace
// them with float64.
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered sequence of named columns, all of equal length.
// Column names may be duplicated immediately after load (the source sheet
// repeats headers); the rename step restores uniqueness. Tables are treated
// as immutable: every transforming method returns a new Table.
type Table struct {
	cols []Column
}

// New creates a table from the given columns, validating that all columns
// have the same length.
func New(cols ...Column) (*Table, error) {
	if len(cols) > 0 {
		n := len(cols[0].Values)
		for _, col := range cols[1:] {
			if len(col.Values) != n {
				return nil, fmt.Errorf("column %q has %d rows, expected %d",
					col.Name, len(col.Values), n)
			}
		}
	}
	return &Table{cols: cols}, nil
}

// FromRows builds a table from a header row and row-major data. Short rows
// are padded with nil so all columns come out equal length.
func FromRows(header []string, rows [][]any) *Table {
	cols := make([]Column, len(header))
	for i, name := range header {
		values := make([]any, len(rows))
		for j, row := range rows {
			if i < len(row) {
				values[j] = row[i]
			}
		}
		cols[i] = Column{Name: name, Values: values}
	}
	return &Table{cols: cols}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Index returns the position of the first column with the given name,
// or -1 if absent.
func (t *Table) Index(name string) int {
	for i, col := range t.cols {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Column returns the values of the first column with the given name.
func (t *Table) Column(name string) ([]any, error) {
	i := t.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("no column named %q", name)
	}
	return t.cols[i].Values, nil
}

// ColumnAt returns the column at the given position.
func (t *Table) ColumnAt(i int) (Column, error) {
	if i < 0 || i >= len(t.cols) {
		return Column{}, fmt.Errorf("column position %d out of range [0,%d)", i, len(t.cols))
	}
	return t.cols[i], nil
}

// Value returns the value at the given row in the named column.
func (t *Table) Value(row int, name string) (any, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(values) {
		return nil, fmt.Errorf("row %d out of range [0,%d) in column %q", row, len(values), name)
	}
	return values[row], nil
}

// Row returns the values across all columns at the given row index.
func (t *Table) Row(i int) ([]any, error) {
	if i < 0 || i >= t.NumRows() {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, t.NumRows())
	}
	row := make([]any, len(t.cols))
	for j, col := range t.cols {
		row[j] = col.Values[i]
	}
	return row, nil
}

// clone returns a deep copy of the table's column slice. Value slices are
// copied so the new table can be modified without touching the original.
func (t *Table) clone() []Column {
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		values := make([]any, len(col.Values))
		copy(values, col.Values)
		cols[i] = Column{Name: col.Name, Values: values}
	}
	return cols
}

// WithColumn returns a new table where the first column with the given name
// is replaced with the given values; if no such column exists, the column is
// appended.
func (t *Table) WithColumn(name string, values []any) (*Table, error) {
	if t.NumCols() > 0 && len(values) != t.NumRows() {
		return nil, fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.NumRows())
	}
	cols := t.clone()
	if i := t.Index(name); i >= 0 {
		cols[i].Values = values
		return &Table{cols: cols}, nil
	}
	cols = append(cols, Column{Name: name, Values: values})
	return &Table{cols: cols}, nil
}

// SelectPositions returns a new table containing only the columns at the
// given positions, in the given order. Positions may not repeat.
func (t *Table) SelectPositions(positions []int) (*Table, error) {
	seen := make(map[int]bool, len(positions))
	cols := make([]Column, 0, len(positions))
	src := t.clone()
	for _, p := range positions {
		if p < 0 || p >= len(src) {
			return nil, fmt.Errorf("column position %d out of range [0,%d)", p, len(src))
		}
		if seen[p] {
			return nil, fmt.Errorf("column position %d selected twice", p)
		}
		seen[p] = true
		cols = append(cols, src[p])
	}
	return &Table{cols: cols}, nil
}

// RenameAt returns a new table with the column at the given position renamed.
func (t *Table) RenameAt(pos int, name string) (*Table, error) {
	if pos < 0 || pos >= len(t.cols) {
		return nil, fmt.Errorf("column position %d out of range [0,%d)", pos, len(t.cols))
	}
	cols := t.clone()
	cols[pos].Name = name
	return &Table{cols: cols}, nil
}

// Reorder returns a new table with columns arranged in the order given by
// names. Every current column must appear exactly once in names.
func (t *Table) Reorder(names []string) (*Table, error) {
	if len(names) != len(t.cols) {
		return nil, fmt.Errorf("reorder lists %d columns, table has %d", len(names), len(t.cols))
	}
	src := t.clone()
	used := make([]bool, len(src))
	cols := make([]Column, 0, len(src))
	for _, name := range names {
		found := false
		for i, col := range src {
			if !used[i] && col.Name == name {
				used[i] = true
				cols = append(cols, col)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("reorder names column %q not present in table", name)
		}
	}
	return &Table{cols: cols}, nil
}

// CheckUniqueNames returns an error if any column name appears more than once.
func (t *Table) CheckUniqueNames() error {
	seen := make(map[string]bool, len(t.cols))
	for _, col := range t.cols {
		if seen[col.Name] {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = true
	}
	return nil
}
