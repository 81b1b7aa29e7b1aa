package pipeline

import (
	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
)

// transformRegion runs the per-region half of the pipeline: reshape to long
// form, drop pre-1900 observations, then classify each survivor. The region
// tag rides in from reshape; nothing here mutates records after creation.
func transformRegion(table domain.RawTable) ([]domain.Record, int, error) {
	observations, err := domain.Reshape(table)
	if err != nil {
		return nil, 0, err
	}

	filtered := 0
	records := make([]domain.Record, 0, len(observations))
	for _, obs := range observations {
		if obs.Year < domain.FirstClimateYear {
			filtered++
			continue
		}
		records = append(records, domain.ClassifyObservation(obs))
	}
	return records, filtered, nil
}

// hemisphereFor relabels a region identifier to its hemisphere name.
var hemisphereFor = map[domain.Region]domain.Hemisphere{
	domain.RegionNorthern: domain.HemisphereNorthern,
	domain.RegionSouthern: domain.HemisphereSouthern,
}

// joinHemispheres concatenates the northern and southern record sets
// (northern rows first, rows unchanged, no deduplication) and assigns each
// row its hemisphere label and season. Order is enforced here, not by task
// completion order.
func joinHemispheres(northern, southern []domain.Record) domain.HemisphereTable {
	table := make(domain.HemisphereTable, 0, len(northern)+len(southern))
	for _, records := range [2][]domain.Record{northern, southern} {
		for _, rec := range records {
			hemisphere := hemisphereFor[rec.Identifier]
			table = append(table, domain.HemisphereRecord{
				Record:     rec,
				Hemisphere: hemisphere,
				Season:     domain.ClassifySeason(hemisphere, rec.Month),
			})
		}
	}
	return table
}
