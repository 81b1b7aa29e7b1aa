package domain

import "gonum.org/v1/gonum/stat"

// TrendLine is a least-squares fit over a record set, with X measured in
// fractional years (year + month midpoint) and Y in anomaly degrees C.
type TrendLine struct {
	Intercept float64
	Slope     float64 // degrees C per year
}

// SlopePerDecade reports the fitted warming rate per 10 years, the unit the
// reporting layer plots.
func (t TrendLine) SlopePerDecade() float64 {
	return t.Slope * 10
}

// FitTrend fits an ordinary least-squares line through the records. Returns
// ok=false when fewer than two records are available, where a fit is
// undefined.
func FitTrend(records []Record) (TrendLine, bool) {
	if len(records) < 2 {
		return TrendLine{}, false
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		// Month midpoint keeps January and December of one year half a
		// step from the adjacent years instead of stacked on the boundary.
		xs[i] = float64(r.Year) + (float64(r.Month.Index())+0.5)/12
		ys[i] = r.Anomaly
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return TrendLine{Intercept: intercept, Slope: slope}, true
}
