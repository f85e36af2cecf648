// pkg/cleaner/errors.go
package cleaner

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaMismatchError indicates the table's columns do not match what a step
// expected: a position out of range, an unexpected header, or a column that
// should exist but does not.
type SchemaMismatchError struct {
	Position int    // source column position, -1 when not positional
	Expected string // expected column name
	Actual   string // actual column name found, empty when absent
}

func (e *SchemaMismatchError) Error() string {
	if e.Position >= 0 {
		if e.Actual == "" {
			return fmt.Sprintf("schema mismatch: no column at position %d (expected %q)", e.Position, e.Expected)
		}
		return fmt.Sprintf("schema mismatch: column at position %d is %q, expected %q", e.Position, e.Actual, e.Expected)
	}
	return fmt.Sprintf("schema mismatch: missing column %q", e.Expected)
}

// InconsistentConversionFlagError reports every row where the presence of the
// "(n)-converted value" wrapper disagrees with the paired conversion note.
type InconsistentConversionFlagError struct {
	ConcentrationColumn string
	NoteColumn          string
	Rows                []int
}

func (e *InconsistentConversionFlagError) Error() string {
	return fmt.Sprintf("inconsistent conversion flag: %s disagrees with %s at rows %s",
		e.ConcentrationColumn, e.NoteColumn, formatRows(e.Rows))
}

// NumericParseError indicates a concentration value that is neither a plain
// decimal nor a wrapped converted value.
type NumericParseError struct {
	Column string
	Row    int
	Value  string
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("numeric parse error: column %s row %d: cannot parse %q", e.Column, e.Row, e.Value)
}

// UnexpectedLabelValueError indicates a conversion note that normalizes to
// something outside the closed {Measured, Converted} set.
type UnexpectedLabelValueError struct {
	Column string
	Row    int
	Value  string
}

func (e *UnexpectedLabelValueError) Error() string {
	return fmt.Sprintf("unexpected label value: column %s row %d: %q", e.Column, e.Row, e.Value)
}

// SplitPatternMismatchError reports every row of a compound field that lacks
// the trailing "(category)" structure.
type SplitPatternMismatchError struct {
	Column string
	Rows   []int
}

func (e *SplitPatternMismatchError) Error() string {
	return fmt.Sprintf("split pattern mismatch: column %s rows %s lack a parenthesized suffix",
		e.Column, formatRows(e.Rows))
}

// ColumnSetMismatchError indicates a reorder target whose column-name set
// differs from the table's.
type ColumnSetMismatchError struct {
	Missing []string // named in the target but absent from the table
	Extra   []string // present in the table but not in the target
}

func (e *ColumnSetMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing from table: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("not in target: %s", strings.Join(e.Extra, ", ")))
	}
	return "column set mismatch: " + strings.Join(parts, "; ")
}

// DuplicateEntityError indicates that appending the qualifier did not make
// the name column unique.
type DuplicateEntityError struct {
	Column     string
	Duplicates map[string][]int // duplicated name -> row indices
}

func (e *DuplicateEntityError) Error() string {
	names := make([]string, 0, len(e.Duplicates))
	for name := range e.Duplicates {
		names = append(names, name)
	}
	sort.Strings(names)
	var parts []string
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%q at rows %s", name, formatRows(e.Duplicates[name])))
	}
	return fmt.Sprintf("column %s still has duplicate entries after disambiguation: %s",
		e.Column, strings.Join(parts, "; "))
}

func formatRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
