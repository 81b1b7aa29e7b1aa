// Package domain models NASA GISTEMP monthly temperature-anomaly series and
// the labels derived from them.
//
// # Data Source
//
// The input series are the GISTEMP v4 monthly means published by the NASA
// Goddard Institute for Space Studies at
// https://data.giss.nasa.gov/gistemp/: one CSV per region (global, northern
// hemisphere, southern hemisphere), one row per year since 1880, twelve
// monthly anomaly columns in degrees C against the 1951-1980 baseline, plus
// seasonal aggregate columns this pipeline ignores. The sentinel "***" marks
// months not yet observed.
//
// # Derived Labels
//
// Each non-missing (year, month, anomaly) cell receives:
//
//	Decade: year rounded UP to the decade boundary, so 1995 -> 2000 and
//	1990 -> 2000. Years ending in zero belong to the following decade; the
//	convention comes from the source dataset and is kept for output parity.
//
//	ClimatePeriod: one of four right-closed 30-year windows ending 1930,
//	1960, 1990 and 2020, labeled "<start> - <end>". Years past 2020 carry no
//	period; the windows are a closed enumeration, not extended as data grows.
//
//	TemperatureCategory: six right-closed anomaly bins with upper bounds
//	0, 0.5, 1.0, 1.5, 2.0 and 2.5, labeled "<0" through ">2". Anomalies
//	above 2.5 carry no category. That gap is inherited from the source bin
//	table (real data already exceeds 2.5) and is reproduced, not clamped.
//
//	Season (hemisphere table only): fixed month-to-season lookup, rotated
//	six months between hemispheres: northern December-February is Winter,
//	southern December-February is Summer. Global records span both
//	hemispheres and carry no season.
//
// Unassigned labels are the categorical types' zero value, never an error:
// the record keeps its remaining fields.
//
// Binning follows a single rule throughout: boundaries and labels are paired
// ordered sequences and a value takes the label of the first boundary at or
// above it. Records before 1900, the start of the earliest climate period,
// are excluded from transformed output entirely.
package domain
