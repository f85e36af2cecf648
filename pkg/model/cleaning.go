// pkg/model/cleaning.go
package model

// CleaningOperation records a single value rewrite performed by a cleaning
// step, so a run can report exactly what it changed and why.
type CleaningOperation struct {
	Step          string // Pipeline step that performed the rewrite
	ColumnName    string // Column that was cleaned
	Row           int    // Zero-based row index
	OriginalValue any    // Original value (may be nil)
	NewValue      any    // Value after cleaning
	Reason        string // Reason for cleaning (e.g., "wrapped_converted_value")
}
