package domain

// Reshape converts one wide RawTable into long-form observations, one per
// (year, month) cell with a non-missing value. Missing cells are omitted
// entirely. Emission order is row order then canonical month order, but month
// identity is carried on each observation so downstream labeling does not
// depend on iteration order.
//
// Returns a SchemaMismatchError when the table header lacks the Year column
// or any of the twelve month columns; no observations are emitted in that
// case.
func Reshape(table RawTable) ([]Observation, error) {
	if missing := missingColumns(table.Columns); len(missing) > 0 {
		return nil, &SchemaMismatchError{Region: table.Region, Missing: missing}
	}

	obs := make([]Observation, 0, len(table.Rows)*len(Months))
	for _, row := range table.Rows {
		for _, month := range Months {
			anomaly, ok := row.Anomalies[month]
			if !ok {
				continue
			}
			obs = append(obs, Observation{
				Region:  table.Region,
				Year:    row.Year,
				Month:   month,
				Anomaly: anomaly,
			})
		}
	}
	return obs, nil
}

// missingColumns returns the expected columns absent from the header, in
// Year-then-canonical-month order.
func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	if !present["Year"] {
		missing = append(missing, "Year")
	}
	for _, month := range Months {
		if !present[string(month)] {
			missing = append(missing, string(month))
		}
	}
	return missing
}
