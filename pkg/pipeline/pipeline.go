// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matthew-brett/airquality/pkg/cleaner"
	"github.com/matthew-brett/airquality/pkg/loader"
	"github.com/matthew-brett/airquality/pkg/writer"
)

// StepTiming records how long one pipeline phase took.
type StepTiming struct {
	Name     string
	Duration time.Duration
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	RunID              string
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
	RowsIn             int
	RowsOut            int
	ColumnsOut         int
	CleaningOperations int
	Steps              []StepTiming
	FailedStep         string // empty on success
	Verification       *writer.VerificationReport
}

// Pipeline wires the loader, cleaner, writer and verifier into one ordered
// run: load, clean, write, verify. The first failing phase aborts the run.
type Pipeline struct {
	source     loader.Source
	cleaner    *cleaner.DataCleaner
	writer     *writer.Writer
	verifier   *writer.Verifier
	outputPath string
	logger     *zap.Logger
}

// New creates a new Pipeline instance.
func New(
	source loader.Source,
	dataCleaner *cleaner.DataCleaner,
	w *writer.Writer,
	verifier *writer.Verifier,
	outputPath string,
	logger *zap.Logger,
) (*Pipeline, error) {
	if source == nil {
		return nil, errors.New("source cannot be nil")
	}
	if dataCleaner == nil {
		return nil, errors.New("cleaner cannot be nil")
	}
	if w == nil {
		return nil, errors.New("writer cannot be nil")
	}
	if verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}
	if outputPath == "" {
		return nil, errors.New("output path cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Pipeline{
		source:     source,
		cleaner:    dataCleaner,
		writer:     w,
		verifier:   verifier,
		outputPath: outputPath,
		logger:     logger,
	}, nil
}

// Run executes the pipeline once. The returned report is populated as far as
// the run got, including the name of the failed phase on error.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	logger := p.logger.With(zap.String("run_id", report.RunID))
	logger.Info("Starting cleaning run", zap.String("output", p.outputPath))

	defer func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}()

	fail := func(step string, err error) (*RunReport, error) {
		report.FailedStep = step
		logger.Error("Run failed", zap.String("step", step), zap.Error(err))
		return report, err
	}

	timed := func(name string, start time.Time) {
		report.Steps = append(report.Steps, StepTiming{Name: name, Duration: time.Since(start)})
	}

	start := time.Now()
	raw, err := p.source.Load(ctx)
	if err != nil {
		return fail("load", err)
	}
	timed("load", start)
	report.RowsIn = raw.NumRows()

	start = time.Now()
	cleaned, ops, err := p.cleaner.Clean(raw)
	if err != nil {
		return fail("clean", err)
	}
	timed("clean", start)
	report.RowsOut = cleaned.NumRows()
	report.ColumnsOut = cleaned.NumCols()
	report.CleaningOperations = len(ops)

	start = time.Now()
	if err := p.writer.Write(p.outputPath, cleaned); err != nil {
		return fail("write", err)
	}
	timed("write", start)

	start = time.Now()
	verification, err := p.verifier.Verify(p.outputPath, cleaned)
	report.Verification = verification
	if err != nil {
		return fail("verify", err)
	}
	timed("verify", start)

	logger.Info("Cleaning run complete",
		zap.Int("rows_in", report.RowsIn),
		zap.Int("rows_out", report.RowsOut),
		zap.Int("columns_out", report.ColumnsOut),
		zap.Int("cleaning_operations", report.CleaningOperations),
		zap.Duration("duration", time.Since(report.StartTime)))
	return report, nil
}
