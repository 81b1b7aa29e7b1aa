package domain

import "fmt"

// FirstClimateYear is the start of the earliest climate period. Observations
// before it are excluded from transformed output.
const FirstClimateYear = 1900

// climatePeriodEnds are the right-closed end years of the four fixed 30-year
// climate periods, ascending. Years past the last end are deliberately left
// unassigned rather than re-binned.
var climatePeriodEnds = []int{1930, 1960, 1990, 2020}

// ClimatePeriods is the closed, ordered enumeration of period labels, built
// once from climatePeriodEnds so label text and ordering stay in lockstep
// with the boundary table.
var ClimatePeriods = buildClimatePeriods()

func buildClimatePeriods() []ClimatePeriod {
	labels := make([]ClimatePeriod, len(climatePeriodEnds))
	for i, end := range climatePeriodEnds {
		labels[i] = ClimatePeriod(fmt.Sprintf("%d - %d", end-30, end))
	}
	return labels
}

// categoryUppers are the ascending upper bounds of the six anomaly bins.
// Each bin is right-closed: an anomaly equal to a bound belongs to the bin
// it closes. Anomalies above the last bound stay unassigned: the source
// bin table stops at 2.5 even though observed anomalies already exceed it,
// and that gap is reproduced rather than clamped.
var categoryUppers = []float64{0.0, 0.5, 1.0, 1.5, 2.0, 2.5}

// TemperatureCategories is the closed, ordered enumeration of bin labels,
// paired index-for-index with categoryUppers. The first and last labels are
// open-ended by convention ("<0", ">2"); the middle four read "start to end".
var TemperatureCategories = []TemperatureCategory{
	"<0", "0 to 0.5", "0.5 to 1.0", "1.0 to 1.5", "1.5 to 2.0", ">2",
}

// ClassifyDecade rounds a year up to its decade boundary. A year ending
// exactly on a multiple of ten maps to the next decade (1990 -> 2000); the
// off-by-one convention is preserved for output parity with the source
// dataset.
func ClassifyDecade(year int) int {
	return year - year%10 + 10
}

// ClassifyClimatePeriod returns the label of the first period whose end year
// is >= year, or "" when the year falls past the last period.
func ClassifyClimatePeriod(year int) ClimatePeriod {
	for i, end := range climatePeriodEnds {
		if year <= end {
			return ClimatePeriods[i]
		}
	}
	return ""
}

// ClassifyTemperature returns the label of the first bin whose upper bound
// is >= anomaly (bounds are inclusive), or "" when the anomaly exceeds the
// last bound.
func ClassifyTemperature(anomaly float64) TemperatureCategory {
	for i, upper := range categoryUppers {
		if anomaly <= upper {
			return TemperatureCategories[i]
		}
	}
	return ""
}

// northernSeasons maps canonical month index to the northern-hemisphere
// season. The southern mapping is the same table rotated six months.
var northernSeasons = []Season{
	SeasonWinter, SeasonWinter, // Jan Feb
	SeasonSpring, SeasonSpring, SeasonSpring, // Mar Apr May
	SeasonSummer, SeasonSummer, SeasonSummer, // Jun Jul Aug
	SeasonAutumn, SeasonAutumn, SeasonAutumn, // Sep Oct Nov
	SeasonWinter, // Dec
}

// ClassifySeason returns the season for a hemisphere and month. Pure table
// lookup; returns "" for an unknown month code.
func ClassifySeason(hemisphere Hemisphere, month Month) Season {
	i := month.Index()
	if i < 0 {
		return ""
	}
	if hemisphere == HemisphereSouthern {
		i = (i + 6) % len(northernSeasons)
	}
	return northernSeasons[i]
}

// ClassifyObservation derives every time- and magnitude-based label for one
// observation. Labels are computed exactly once; the returned record is not
// modified afterwards.
func ClassifyObservation(o Observation) Record {
	return Record{
		Identifier:          o.Region,
		ClimatePeriod:       ClassifyClimatePeriod(o.Year),
		Decade:              ClassifyDecade(o.Year),
		Year:                o.Year,
		Month:               o.Month,
		Anomaly:             o.Anomaly,
		TemperatureCategory: ClassifyTemperature(o.Anomaly),
		ProcessedAt:         clock.Now(),
	}
}
