// pkg/writer/writer.go
package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/matthew-brett/airquality/pkg/table"
)

// WriteError indicates the output file could not be produced.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Writer serializes a table to a UTF-8, comma-separated file with a header
// row and RFC-4180 quoting. No row-index column is emitted.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a new Writer instance.
func NewWriter(logger *zap.Logger) (*Writer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Writer{logger: logger}, nil
}

// Write serializes the table to path. The file is written to a temporary
// name in the same directory and renamed into place once complete, so a
// failed run leaves no partial output behind.
func (w *Writer) Write(path string, t *table.Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		// No-ops once the rename has happened.
		tmp.Close()
		os.Remove(tmpName)
	}()

	cw := csv.NewWriter(tmp)
	if err := cw.Write(t.Names()); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("writing header: %w", err)}
	}
	for i := 0; i < t.NumRows(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return &WriteError{Path: path, Err: fmt.Errorf("writing row %d: %w", i, err)}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	w.logger.Info("Wrote output file",
		zap.String("path", path),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()))
	return nil
}

// formatCell renders one cell for CSV output: nil becomes an empty field,
// float64 uses the shortest round-tripping decimal form.
func formatCell(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := v.(float64); ok {
		return table.FormatFloat(f)
	}
	return table.AsString(v)
}
