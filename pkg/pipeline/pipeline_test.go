package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matthew-brett/airquality/pkg/cleaner"
	"github.com/matthew-brett/airquality/pkg/model"
	"github.com/matthew-brett/airquality/pkg/table"
	"github.com/matthew-brett/airquality/pkg/writer"
)

// fakeSource serves a fixed table, standing in for the spreadsheet reader.
type fakeSource struct {
	tbl *table.Table
	err error
}

func (s *fakeSource) Load(ctx context.Context) (*table.Table, error) {
	return s.tbl, s.err
}

func (s *fakeSource) Close() error { return nil }

func sourceTable() *table.Table {
	header := []string{
		"WHO region", "Country", "City/Town",
		"Annual mean, ug/m3", "Temporal coverage, %",
		"Annual mean, ug/m3", "Temporal coverage, %",
		"Status PM10", "Status PM2.5", "Reference year",
	}
	return table.FromRows(header, [][]any{
		{"Europe (HIC)", "United Kingdom", "London", "21", "98", "(3)-converted value", "95", "measured", "converted", "2016"},
		{"Americas (HIC)", "Canada", "London", "17.4", "90", "9.2", "88", "measured", "measured", "2015"},
	})
}

func newPipeline(t *testing.T, src *fakeSource, outputPath string) *Pipeline {
	t.Helper()
	logger := zap.NewNop()

	c, err := cleaner.NewDataCleaner(model.DefaultRenamePlan(), logger)
	require.NoError(t, err)
	w, err := writer.NewWriter(logger)
	require.NoError(t, err)
	v, err := writer.NewVerifier(logger)
	require.NoError(t, err)

	p, err := New(src, c, w, v, outputPath, logger)
	require.NoError(t, err)
	return p
}

func TestRunEndToEnd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clean.csv")
	p := newPipeline(t, &fakeSource{tbl: sourceTable()}, out)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.FailedStep)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.RowsIn)
	assert.Equal(t, 2, report.RowsOut)
	assert.Equal(t, len(model.TargetColumnOrder()), report.ColumnsOut)
	assert.Positive(t, report.CleaningOperations)
	require.NotNil(t, report.Verification)
	assert.True(t, report.Verification.OK())

	names := make([]string, len(report.Steps))
	for i, s := range report.Steps {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"load", "clean", "write", "verify"}, names)

	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestRunFailsOnLoadError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clean.csv")
	p := newPipeline(t, &fakeSource{err: errors.New("boom")}, out)

	report, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, "load", report.FailedStep)

	// No output file on failure.
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunFailsOnCleanError(t *testing.T) {
	bad := table.FromRows([]string{"nope"}, [][]any{{"x"}})
	out := filepath.Join(t.TempDir(), "clean.csv")
	p := newPipeline(t, &fakeSource{tbl: bad}, out)

	report, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, "clean", report.FailedStep)

	var schemaErr *cleaner.SchemaMismatchError
	assert.ErrorAs(t, err, &schemaErr)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewValidatesDependencies(t *testing.T) {
	logger := zap.NewNop()
	c, err := cleaner.NewDataCleaner(model.DefaultRenamePlan(), logger)
	require.NoError(t, err)
	w, err := writer.NewWriter(logger)
	require.NoError(t, err)
	v, err := writer.NewVerifier(logger)
	require.NoError(t, err)
	src := &fakeSource{tbl: sourceTable()}

	_, err = New(nil, c, w, v, "out.csv", logger)
	assert.Error(t, err)
	_, err = New(src, nil, w, v, "out.csv", logger)
	assert.Error(t, err)
	_, err = New(src, c, nil, v, "out.csv", logger)
	assert.Error(t, err)
	_, err = New(src, c, w, nil, "out.csv", logger)
	assert.Error(t, err)
	_, err = New(src, c, w, v, "", logger)
	assert.Error(t, err)
	_, err = New(src, c, w, v, "out.csv", nil)
	assert.Error(t, err)
}
