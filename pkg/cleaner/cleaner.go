// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"

	"go.uber.org/zap"

	"github.com/matthew-brett/airquality/pkg/model"
	"github.com/matthew-brett/airquality/pkg/table"
)

// DataCleaner applies the cleaning steps between load and write: column
// selection/renaming, converted-value decoding, label normalization,
// compound-field splitting, column reordering, and entity disambiguation.
// Each step takes the previous step's table and returns a new one; the first
// failing step aborts the whole run.
type DataCleaner struct {
	plan   model.RenamePlan
	logger *zap.Logger
}

// NewDataCleaner creates a new DataCleaner instance.
func NewDataCleaner(plan model.RenamePlan, logger *zap.Logger) (*DataCleaner, error) {
	if len(plan) == 0 {
		return nil, errors.New("rename plan cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &DataCleaner{plan: plan, logger: logger}, nil
}

// Clean runs every cleaning step on the loaded table and returns the cleaned
// table along with the cleaning operations performed.
func (c *DataCleaner) Clean(t *table.Table) (*table.Table, []model.CleaningOperation, error) {
	var allOps []model.CleaningOperation

	out, err := SelectRename(t, c.plan)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("Selected and renamed source columns",
		zap.Strings("columns", out.Names()))

	for _, pair := range [][2]string{
		{model.ColPM10, model.ColPM10Note},
		{model.ColPM25, model.ColPM25Note},
	} {
		var ops []model.CleaningOperation
		out, ops, err = DecodeConverted(out, pair[0], pair[1])
		if err != nil {
			return nil, nil, err
		}
		allOps = append(allOps, ops...)
		c.logger.Info("Decoded concentration column",
			zap.String("column", pair[0]),
			zap.Int("unwrapped", len(ops)))
	}

	for _, noteCol := range []string{model.ColPM10Note, model.ColPM25Note} {
		var ops []model.CleaningOperation
		out, ops, err = NormalizeLabels(out, noteCol)
		if err != nil {
			return nil, nil, err
		}
		allOps = append(allOps, ops...)
		c.logger.Info("Normalized conversion notes",
			zap.String("column", noteCol),
			zap.Int("rewritten", len(ops)))
	}

	var ops []model.CleaningOperation
	out, ops, err = SplitCompound(out, model.ColRegion, model.ColIncomeGroup)
	if err != nil {
		return nil, nil, err
	}
	allOps = append(allOps, ops...)
	c.logger.Info("Split region field",
		zap.String("column", model.ColRegion),
		zap.String("new_column", model.ColIncomeGroup))

	out, err = Reorder(out, model.TargetColumnOrder())
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("Reordered columns", zap.Strings("order", out.Names()))

	out, ops, err = Disambiguate(out, model.ColCity, model.ColCountry)
	if err != nil {
		return nil, nil, err
	}
	allOps = append(allOps, ops...)
	c.logger.Info("Disambiguated city names",
		zap.String("column", model.ColCity),
		zap.String("qualifier", model.ColCountry))

	return out, allOps, nil
}
