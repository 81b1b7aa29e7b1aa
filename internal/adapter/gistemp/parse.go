package gistemp

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
)

// missingSentinel marks months not yet observed in GISTEMP tables. Some
// vintages pad it to five stars, so the check is prefix-based.
const missingSentinel = "***"

// ParseMonthlyTable reads a GISTEMP v4 monthly-means CSV into a RawTable.
//
// The file starts with a free-text title line ("Land-Ocean: Global Means"),
// then a header row beginning with "Year", then one row per year. Columns
// after the twelve months (J-D, D-N, DJF, ...) are seasonal aggregates and
// are recorded in Columns but never parsed into cells. Cells holding the
// missing sentinel are dropped, not zeroed.
func ParseMonthlyTable(r io.Reader, region domain.Region) (domain.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := readHeader(cr)
	if err != nil {
		return domain.RawTable{}, err
	}

	table := domain.RawTable{Region: region, Columns: header}

	monthCols := map[int]domain.Month{}
	yearCol := -1
	for i, name := range header {
		if name == "Year" {
			yearCol = i
			continue
		}
		if m := domain.Month(name); m.Index() >= 0 {
			monthCols[i] = m
		}
	}

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("read row: %w", err)
		}

		row := domain.RawRow{Anomalies: make(map[domain.Month]float64, len(monthCols))}
		if yearCol >= 0 && yearCol < len(fields) {
			year, err := strconv.Atoi(strings.TrimSpace(fields[yearCol]))
			if err != nil {
				return domain.RawTable{}, fmt.Errorf("parse year %q: %w", fields[yearCol], err)
			}
			row.Year = year
		}

		for i, month := range monthCols {
			if i >= len(fields) {
				continue
			}
			cell := strings.TrimSpace(fields[i])
			if cell == "" || strings.HasPrefix(cell, missingSentinel) {
				continue
			}
			anomaly, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return domain.RawTable{}, fmt.Errorf("parse anomaly %q for %d %s: %w", cell, row.Year, month, err)
			}
			row.Anomalies[month] = anomaly
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// readHeader skips leading title lines and returns the first row whose first
// field is "Year". GISTEMP files carry exactly one title line, but the scan
// tolerates none or several.
func readHeader(cr *csv.Reader) ([]string, error) {
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("no header row found")
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if len(fields) > 0 && strings.TrimSpace(fields[0]) == "Year" {
			header := make([]string, len(fields))
			for i, f := range fields {
				header[i] = strings.TrimSpace(f)
			}
			return header, nil
		}
	}
}
