// pkg/cleaner/operations.go
package cleaner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"github.com/matthew-brett/airquality/pkg/model"
	"github.com/matthew-brett/airquality/pkg/table"
)

// wrapperPattern matches the annotated form of a concentration value,
// e.g. "(3)-converted value". The captured group is the number inside the
// parentheses, which the source data uses as the decoded value.
var wrapperPattern = regexp.MustCompile(`^\(([0-9]+(?:\.[0-9]+)?)\)-converted value$`)

// compoundPattern splits "<name>  (<category>)": the name may contain
// internal whitespace, and one or more spaces precede the parentheses.
var compoundPattern = regexp.MustCompile(`^(.*\S)\s+\((.+)\)$`)

// SelectRename validates the table against the rename plan and returns a new
// table holding only the plan's columns, renamed to their target names and
// kept in plan order. Validation checks every (position, source-name) pair,
// so the sheet's duplicate headers are assigned to pollutants explicitly
// rather than by incidental ordering.
func SelectRename(t *table.Table, plan model.RenamePlan) (*table.Table, error) {
	positions := make([]int, len(plan))
	for i, m := range plan {
		col, err := t.ColumnAt(m.Position)
		if err != nil {
			return nil, &SchemaMismatchError{Position: m.Position, Expected: m.Source}
		}
		if !strings.EqualFold(strings.TrimSpace(col.Name), m.Source) {
			return nil, &SchemaMismatchError{Position: m.Position, Expected: m.Source, Actual: col.Name}
		}
		positions[i] = m.Position
	}

	out, err := t.SelectPositions(positions)
	if err != nil {
		return nil, fmt.Errorf("selecting plan columns: %w", err)
	}
	for i, m := range plan {
		out, err = out.RenameAt(i, m.Target)
		if err != nil {
			return nil, fmt.Errorf("renaming column %d to %q: %w", i, m.Target, err)
		}
	}
	if err := out.CheckUniqueNames(); err != nil {
		return nil, fmt.Errorf("rename plan produced duplicate names: %w", err)
	}
	return out, nil
}

// DecodeConverted decodes one concentration column after cross-validating it
// against its conversion-note column.
//
// Validation: for every row, the presence of the "(n)-converted value"
// wrapper must agree with the note saying "Converted" (case-insensitive).
// All violating rows are collected before failing, so one run surfaces every
// inconsistency.
//
// Decoding: a wrapped value decodes to the captured number taken verbatim; a
// plain value decodes as a decimal; a missing value stays missing (nil).
// The output column contains only float64 or nil.
func DecodeConverted(t *table.Table, concCol, noteCol string) (*table.Table, []model.CleaningOperation, error) {
	conc, err := t.Column(concCol)
	if err != nil {
		return nil, nil, &SchemaMismatchError{Position: -1, Expected: concCol}
	}
	notes, err := t.Column(noteCol)
	if err != nil {
		return nil, nil, &SchemaMismatchError{Position: -1, Expected: noteCol}
	}

	var badRows []int
	for i := range conc {
		hasWrapper := wrapperPattern.MatchString(strings.TrimSpace(table.AsString(conc[i])))
		noteSaysConverted := strings.EqualFold(strings.TrimSpace(table.AsString(notes[i])), model.NoteConverted)
		if hasWrapper != noteSaysConverted {
			badRows = append(badRows, i)
		}
	}
	if len(badRows) > 0 {
		return nil, nil, &InconsistentConversionFlagError{
			ConcentrationColumn: concCol,
			NoteColumn:          noteCol,
			Rows:                badRows,
		}
	}

	decoded := make([]any, len(conc))
	var ops []model.CleaningOperation
	var parseErrs error
	for i, v := range conc {
		if table.IsMissing(v) {
			decoded[i] = nil
			continue
		}
		raw := strings.TrimSpace(table.AsString(v))
		if m := wrapperPattern.FindStringSubmatch(raw); m != nil {
			// The captured group is the number in parentheses, decoded
			// verbatim; the note column already confirmed the wrapper.
			f, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				parseErrs = multierr.Append(parseErrs, &NumericParseError{Column: concCol, Row: i, Value: raw})
				continue
			}
			decoded[i] = f
			ops = append(ops, model.CleaningOperation{
				Step:          "decode_converted",
				ColumnName:    concCol,
				Row:           i,
				OriginalValue: v,
				NewValue:      f,
				Reason:        "unwrapped_converted_value",
			})
			continue
		}
		f, err := table.AsFloat(raw)
		if err != nil {
			parseErrs = multierr.Append(parseErrs, &NumericParseError{Column: concCol, Row: i, Value: raw})
			continue
		}
		decoded[i] = f
	}
	if parseErrs != nil {
		return nil, nil, parseErrs
	}

	out, err := t.WithColumn(concCol, decoded)
	if err != nil {
		return nil, nil, fmt.Errorf("replacing column %q: %w", concCol, err)
	}
	return out, ops, nil
}

// NormalizeLabels rewrites every value of a conversion-note column to title
// case, then checks the distinct value set is exactly {Measured, Converted}.
// Missing values pass through unchanged. Normalization is idempotent.
func NormalizeLabels(t *table.Table, noteCol string) (*table.Table, []model.CleaningOperation, error) {
	notes, err := t.Column(noteCol)
	if err != nil {
		return nil, nil, &SchemaMismatchError{Position: -1, Expected: noteCol}
	}

	normalized := make([]any, len(notes))
	var ops []model.CleaningOperation
	for i, v := range notes {
		if table.IsMissing(v) {
			normalized[i] = v
			continue
		}
		raw := table.AsString(v)
		norm := titleCase(raw)
		if norm != model.NoteMeasured && norm != model.NoteConverted {
			return nil, nil, &UnexpectedLabelValueError{Column: noteCol, Row: i, Value: raw}
		}
		normalized[i] = norm
		if norm != raw {
			ops = append(ops, model.CleaningOperation{
				Step:          "normalize_labels",
				ColumnName:    noteCol,
				Row:           i,
				OriginalValue: v,
				NewValue:      norm,
				Reason:        "label_case_normalization",
			})
		}
	}

	out, err := t.WithColumn(noteCol, normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("replacing column %q: %w", noteCol, err)
	}
	return out, ops, nil
}

// SplitCompound splits a "<name> (<category>)" column: the source column is
// overwritten with the trimmed name and the trimmed category is appended as
// newCol. Rows lacking the parenthesized suffix are all reported together.
func SplitCompound(t *table.Table, col, newCol string) (*table.Table, []model.CleaningOperation, error) {
	values, err := t.Column(col)
	if err != nil {
		return nil, nil, &SchemaMismatchError{Position: -1, Expected: col}
	}

	names := make([]any, len(values))
	categories := make([]any, len(values))
	var badRows []int
	var ops []model.CleaningOperation
	for i, v := range values {
		raw := strings.TrimSpace(table.AsString(v))
		m := compoundPattern.FindStringSubmatch(raw)
		if m == nil {
			badRows = append(badRows, i)
			continue
		}
		name := strings.TrimSpace(m[1])
		category := strings.TrimSpace(m[2])
		names[i] = name
		categories[i] = category
		ops = append(ops, model.CleaningOperation{
			Step:          "split_compound",
			ColumnName:    col,
			Row:           i,
			OriginalValue: v,
			NewValue:      name,
			Reason:        "split_parenthesized_category",
		})
	}
	if len(badRows) > 0 {
		return nil, nil, &SplitPatternMismatchError{Column: col, Rows: badRows}
	}

	out, err := t.WithColumn(col, names)
	if err != nil {
		return nil, nil, fmt.Errorf("replacing column %q: %w", col, err)
	}
	out, err = out.WithColumn(newCol, categories)
	if err != nil {
		return nil, nil, fmt.Errorf("appending column %q: %w", newCol, err)
	}
	return out, ops, nil
}

// Reorder arranges the table's columns into the target sequence. The target
// must name exactly the table's current column set.
func Reorder(t *table.Table, target []string) (*table.Table, error) {
	current := t.Names()
	currentSet := make(map[string]bool, len(current))
	for _, name := range current {
		currentSet[name] = true
	}
	targetSet := make(map[string]bool, len(target))
	for _, name := range target {
		targetSet[name] = true
	}

	var missing, extra []string
	for _, name := range target {
		if !currentSet[name] {
			missing = append(missing, name)
		}
	}
	for _, name := range current {
		if !targetSet[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return nil, &ColumnSetMismatchError{Missing: missing, Extra: extra}
	}

	out, err := t.Reorder(target)
	if err != nil {
		return nil, fmt.Errorf("reordering columns: %w", err)
	}
	return out, nil
}

// Disambiguate rewrites every value of nameCol to "<name> (<qualifier>)",
// then checks the rewritten column is duplicate-free. Appending the country
// is not guaranteed to separate two stations in the same city, so the check
// is explicit rather than assumed.
func Disambiguate(t *table.Table, nameCol, qualCol string) (*table.Table, []model.CleaningOperation, error) {
	names, err := t.Column(nameCol)
	if err != nil {
		return nil, nil, &SchemaMismatchError{Position: -1, Expected: nameCol}
	}
	quals, err := t.Column(qualCol)
	if err != nil {
		return nil, nil, &SchemaMismatchError{Position: -1, Expected: qualCol}
	}

	rewritten := make([]any, len(names))
	var ops []model.CleaningOperation
	for i := range names {
		combined := fmt.Sprintf("%s (%s)", table.AsString(names[i]), table.AsString(quals[i]))
		rewritten[i] = combined
		ops = append(ops, model.CleaningOperation{
			Step:          "disambiguate",
			ColumnName:    nameCol,
			Row:           i,
			OriginalValue: names[i],
			NewValue:      combined,
			Reason:        "appended_qualifier",
		})
	}

	rowsByName := make(map[string][]int, len(rewritten))
	for i, v := range rewritten {
		s := v.(string)
		rowsByName[s] = append(rowsByName[s], i)
	}
	duplicates := make(map[string][]int)
	for name, rows := range rowsByName {
		if len(rows) > 1 {
			duplicates[name] = rows
		}
	}
	if len(duplicates) > 0 {
		return nil, nil, &DuplicateEntityError{Column: nameCol, Duplicates: duplicates}
	}

	out, err := t.WithColumn(nameCol, rewritten)
	if err != nil {
		return nil, nil, fmt.Errorf("replacing column %q: %w", nameCol, err)
	}
	return out, ops, nil
}

// titleCase uppercases the first letter of each space-separated word and
// lowercases the rest, so "measured", "MEASURED" and "Measured" all come out
// as "Measured".
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
