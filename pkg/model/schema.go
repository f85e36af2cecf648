// pkg/model/schema.go
package model

// Target column names used throughout the pipeline.
const (
	ColRegion       = "who_region"
	ColIncomeGroup  = "income_group"
	ColCountry      = "country"
	ColCity         = "city"
	ColPM10         = "pm10_concentration"
	ColPM10Coverage = "pm10_coverage"
	ColPM25         = "pm25_concentration"
	ColPM25Coverage = "pm25_coverage"
	ColPM10Note     = "pm10_note"
	ColPM25Note     = "pm25_note"
	ColYear         = "year"
)

// ColumnMapping assigns one source column, identified by its position AND its
// expected header text, to an unambiguous target name. Position is what
// disambiguates the sheet's duplicate headers: the first "Annual mean" column
// is PM10, the second PM2.5. Both coordinates are validated at rename time so
// a reordered source sheet fails loudly instead of mis-assigning pollutants.
type ColumnMapping struct {
	Position int    // zero-based column position in the source table
	Source   string // expected header text at that position
	Target   string // unambiguous name after renaming
}

// RenamePlan is the ordered set of column mappings applied by the
// selector/renamer. Columns not listed in the plan are dropped.
type RenamePlan []ColumnMapping

// Targets returns the plan's target names in plan order.
func (p RenamePlan) Targets() []string {
	targets := make([]string, len(p))
	for i, m := range p {
		targets[i] = m.Target
	}
	return targets
}

// DefaultRenamePlan maps the WHO ambient air-quality sheet layout. Positions
// 3/5 and 4/6 carry identical headers in the source; order assigns them to
// PM10 and PM2.5 respectively.
func DefaultRenamePlan() RenamePlan {
	return RenamePlan{
		{Position: 0, Source: "WHO region", Target: ColRegion},
		{Position: 1, Source: "Country", Target: ColCountry},
		{Position: 2, Source: "City/Town", Target: ColCity},
		{Position: 3, Source: "Annual mean, ug/m3", Target: ColPM10},
		{Position: 4, Source: "Temporal coverage, %", Target: ColPM10Coverage},
		{Position: 5, Source: "Annual mean, ug/m3", Target: ColPM25},
		{Position: 6, Source: "Temporal coverage, %", Target: ColPM25Coverage},
		{Position: 7, Source: "Status PM10", Target: ColPM10Note},
		{Position: 8, Source: "Status PM2.5", Target: ColPM25Note},
		{Position: 9, Source: "Reference year", Target: ColYear},
	}
}

// TargetColumnOrder is the final column sequence of the cleaned table: the
// income group derived from the region field sits directly after the region.
func TargetColumnOrder() []string {
	return []string{
		ColRegion,
		ColIncomeGroup,
		ColCountry,
		ColCity,
		ColPM10,
		ColPM10Coverage,
		ColPM25,
		ColPM25Coverage,
		ColPM10Note,
		ColPM25Note,
		ColYear,
	}
}

// Conversion-note labels after normalization.
const (
	NoteMeasured  = "Measured"
	NoteConverted = "Converted"
)
