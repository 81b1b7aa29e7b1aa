package domain

import "time"

// Region identifies one of the three independent GISTEMP input series.
type Region string

const (
	RegionGlobal   Region = "Global"
	RegionNorthern Region = "Northern"
	RegionSouthern Region = "Southern"
)

// Regions lists the input series in processing order: Global first, then the
// two hemispheres in concatenation order.
var Regions = []Region{RegionGlobal, RegionNorthern, RegionSouthern}

// Month is a three-letter calendar month code. Ordering is categorical
// (Jan..Dec per Months), never alphabetic.
type Month string

// Months declares the canonical month order. Chart axis order and season
// lookup both key off this sequence.
var Months = []Month{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Index returns the month's position in canonical order, or -1 for an
// unknown code.
func (m Month) Index() int {
	for i, known := range Months {
		if known == m {
			return i
		}
	}
	return -1
}

// Hemisphere labels a record in the hemisphere output table.
type Hemisphere string

const (
	HemisphereNorthern Hemisphere = "Northern"
	HemisphereSouthern Hemisphere = "Southern"
)

// Season is a quarter-year label derived from (Hemisphere, Month).
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
)

// Seasons declares the season display order.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// ClimatePeriod is a 30-year window label, e.g. "1900 - 1930". The zero value
// means the year falls outside all defined periods.
type ClimatePeriod string

// TemperatureCategory is an anomaly-magnitude bin label, e.g. "0.5 to 1.0".
// The zero value means the anomaly falls outside all defined bins.
type TemperatureCategory string

// RawTable is the wide year-by-month table produced by the retrieval
// collaborator for one region. Columns records the header as received so the
// reshaper can detect schema drift; Rows carry only non-missing cells.
type RawTable struct {
	Region  Region
	Columns []string
	Rows    []RawRow
}

// RawRow is one calendar year of the wide table. Anomalies holds only the
// months that had a value; a missing cell is an absent key, never a zero.
type RawRow struct {
	Year      int
	Anomalies map[Month]float64
}

// Observation is one long-form (Year, Month, Anomaly) tuple emitted by the
// reshaper, tagged with its region at reshape time.
type Observation struct {
	Region  Region
	Year    int
	Month   Month
	Anomaly float64
}

// Record is a fully classified observation. ClimatePeriod and
// TemperatureCategory stay empty when the year or anomaly falls outside the
// defined bins; the record keeps its other fields.
type Record struct {
	Identifier          Region              `json:"identifier"`
	ClimatePeriod       ClimatePeriod       `json:"climate_period,omitempty"`
	Decade              int                 `json:"decade"`
	Year                int                 `json:"year"`
	Month               Month               `json:"month"`
	Anomaly             float64             `json:"anomaly"`
	TemperatureCategory TemperatureCategory `json:"temperature_category,omitempty"`
	ProcessedAt         time.Time           `json:"processed_at"`
}

// HemisphereRecord is a Record relabeled with its hemisphere and the derived
// season. Only rows of the hemisphere table carry these two fields.
type HemisphereRecord struct {
	Record
	Hemisphere Hemisphere `json:"hemisphere"`
	Season     Season     `json:"season"`
}

// GlobalTable is the analysis-ready output for the single global series.
type GlobalTable []Record

// HemisphereTable is the analysis-ready concatenation of the northern and
// southern series, northern rows first.
type HemisphereTable []HemisphereRecord
