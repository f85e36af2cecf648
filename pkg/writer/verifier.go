package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/matthew-brett/airquality/pkg/table"
)

// ValueDiscrepancy represents one cell that differs between the in-memory
// table and the reloaded output file.
type ValueDiscrepancy struct {
	Row      int
	Column   string
	Expected string
	Actual   string
}

// VerificationReport contains the results of a round-trip verification.
type VerificationReport struct {
	Path             string
	VerificationTime time.Time
	ColumnsMatch     bool
	RowCountMatches  bool
	ExpectedRows     int
	ActualRows       int
	Discrepancies    []ValueDiscrepancy
	Duration         time.Duration
}

// OK reports whether the round trip was fully faithful.
func (r *VerificationReport) OK() bool {
	return r.ColumnsMatch && r.RowCountMatches && len(r.Discrepancies) == 0
}

// RoundTripMismatchError indicates the written file does not faithfully
// represent the table that produced it.
type RoundTripMismatchError struct {
	Report *VerificationReport
}

func (e *RoundTripMismatchError) Error() string {
	r := e.Report
	if !r.ColumnsMatch {
		return fmt.Sprintf("round-trip mismatch in %s: column names differ", r.Path)
	}
	if !r.RowCountMatches {
		return fmt.Sprintf("round-trip mismatch in %s: wrote %d rows, reloaded %d",
			r.Path, r.ExpectedRows, r.ActualRows)
	}
	return fmt.Sprintf("round-trip mismatch in %s: %d cell(s) differ, first at row %d column %s (%q != %q)",
		r.Path, len(r.Discrepancies), r.Discrepancies[0].Row, r.Discrepancies[0].Column,
		r.Discrepancies[0].Expected, r.Discrepancies[0].Actual)
}

// Verifier reloads a just-written output file and checks it against the
// in-memory table: column names, row count, and every cell value. Numeric
// cells are compared after re-parsing, within a small tolerance.
type Verifier struct {
	logger    *zap.Logger
	tolerance float64
}

// NewVerifier creates a new verifier.
func NewVerifier(logger *zap.Logger) (*Verifier, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Verifier{
		logger:    logger,
		tolerance: 1e-9,
	}, nil
}

// WithTolerance sets a custom numeric comparison tolerance.
func (v *Verifier) WithTolerance(tolerance float64) *Verifier {
	v.tolerance = tolerance
	return v
}

// Verify reloads path and compares it to want. A report is always returned
// when the file can be read; the error is a *RoundTripMismatchError when the
// comparison fails.
func (v *Verifier) Verify(path string, want *table.Table) (*VerificationReport, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopening output %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reparsing output %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("output %s is empty", path)
	}

	report := &VerificationReport{
		Path:             path,
		VerificationTime: start,
		ExpectedRows:     want.NumRows(),
		ActualRows:       len(records) - 1,
	}

	report.ColumnsMatch = equalStrings(records[0], want.Names())
	report.RowCountMatches = report.ActualRows == report.ExpectedRows

	if report.ColumnsMatch && report.RowCountMatches {
		for i, record := range records[1:] {
			row, err := want.Row(i)
			if err != nil {
				return nil, err
			}
			for j, name := range want.Names() {
				var actual string
				if j < len(record) {
					actual = record[j]
				}
				if !v.cellsEqual(row[j], actual) {
					report.Discrepancies = append(report.Discrepancies, ValueDiscrepancy{
						Row:      i,
						Column:   name,
						Expected: formatCell(row[j]),
						Actual:   actual,
					})
				}
			}
		}
	}

	report.Duration = time.Since(start)

	if !report.OK() {
		v.logger.Warn("Round-trip verification failed",
			zap.String("path", path),
			zap.Bool("columns_match", report.ColumnsMatch),
			zap.Bool("row_count_matches", report.RowCountMatches),
			zap.Int("discrepancies", len(report.Discrepancies)))
		return report, &RoundTripMismatchError{Report: report}
	}

	v.logger.Info("Round-trip verification successful",
		zap.String("path", path),
		zap.Int("rows", report.ActualRows),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// cellsEqual compares one in-memory cell against its reloaded string form.
func (v *Verifier) cellsEqual(expected any, actual string) bool {
	if f, ok := expected.(float64); ok {
		got, err := strconv.ParseFloat(actual, 64)
		if err != nil {
			return false
		}
		return math.Abs(got-f) <= v.tolerance
	}
	return formatCell(expected) == actual
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
