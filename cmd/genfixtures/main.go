// Command genfixtures writes synthetic GISTEMP-format CSV files for the
// three regions and the transformed JSON tables they produce, using the real
// pipeline so fixtures track actual behavior. A fixed clock keeps the
// ProcessedAt stamps reproducible.
//
// Usage:
//
//	go run ./cmd/genfixtures -csv-dir data/fixtures -json-dir data/fixtures
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-anomaly-etl/internal/adapter/gistemp"
	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
	"github.com/couchcryptid/climate-anomaly-etl/internal/observability"
	"github.com/couchcryptid/climate-anomaly-etl/internal/pipeline"
)

const (
	firstYear = 1880
	lastYear  = 2025
	// Months of the final year left unobserved, mimicking an in-progress year.
	unobservedMonths = 5
)

var regionFiles = map[domain.Region]string{
	domain.RegionGlobal:   "GLB.Ts+dSST.csv",
	domain.RegionNorthern: "NH.Ts+dSST.csv",
	domain.RegionSouthern: "SH.Ts+dSST.csv",
}

// regionOffsets skew each series so the three fixtures are distinguishable.
var regionOffsets = map[domain.Region]float64{
	domain.RegionGlobal:   0,
	domain.RegionNorthern: 0.15,
	domain.RegionSouthern: -0.1,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvDir := flag.String("csv-dir", "", "output directory for synthetic GISTEMP CSVs")
	jsonDir := flag.String("json-dir", "", "output directory for transformed JSON tables")
	flag.Parse()

	if *csvDir == "" || *jsonDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-dir, -json-dir")
	}

	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 15, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	if err := os.MkdirAll(*csvDir, 0o755); err != nil {
		return err
	}
	for region, file := range regionFiles {
		if err := writeSyntheticCSV(filepath.Join(*csvDir, file), region); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
	}
	log.Printf("synthetic CSVs written to %s", *csvDir)

	loader := &jsonLoader{dir: *jsonDir}
	p := pipeline.New(
		&fileFetcher{dir: *csvDir},
		[]pipeline.Loader{loader},
		slog.Default(),
		observability.NewMetrics(),
	)
	if err := p.Run(context.Background()); err != nil {
		return err
	}

	log.Printf("transformed tables written: %d global, %d hemisphere records",
		loader.globalCount, loader.hemisphereCount)
	return nil
}

// syntheticAnomaly produces a smooth warming curve: roughly -0.2 in 1880
// rising past 1.2 by the 2020s, with a small seasonal wobble.
func syntheticAnomaly(region domain.Region, year, monthIndex int) float64 {
	base := -0.2 + 1.5*float64(year-firstYear)/float64(lastYear-firstYear)
	wobble := 0.05 * float64(monthIndex%3)
	v := base + wobble + regionOffsets[region]
	return float64(int(v*100)) / 100 // two decimals, like the source tables
}

func writeSyntheticCSV(path string, region domain.Region) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "Synthetic Means: %s\n", region); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	header := []string{"Year"}
	for _, m := range domain.Months {
		header = append(header, string(m))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for year := firstYear; year <= lastYear; year++ {
		row := []string{strconv.Itoa(year)}
		for i := range domain.Months {
			if year == lastYear && i >= len(domain.Months)-unobservedMonths {
				row = append(row, "***")
				continue
			}
			row = append(row, strconv.FormatFloat(syntheticAnomaly(region, year, i), 'f', 2, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// fileFetcher implements pipeline.Fetcher over the freshly written CSVs.
type fileFetcher struct {
	dir string
}

func (ff *fileFetcher) FetchRegion(_ context.Context, region domain.Region) (domain.RawTable, error) {
	f, err := os.Open(filepath.Join(ff.dir, regionFiles[region]))
	if err != nil {
		return domain.RawTable{}, &domain.RetrievalError{Region: region, Err: err}
	}
	defer f.Close()
	return gistemp.ParseMonthlyTable(f, region)
}

// jsonLoader implements pipeline.Loader, writing each table as indented JSON.
type jsonLoader struct {
	dir             string
	globalCount     int
	hemisphereCount int
}

func (jl *jsonLoader) LoadTables(_ context.Context, global domain.GlobalTable, hemisphere domain.HemisphereTable) error {
	if err := os.MkdirAll(jl.dir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(jl.dir, "global_transformed.json"), global); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(jl.dir, "hemisphere_transformed.json"), hemisphere); err != nil {
		return err
	}
	jl.globalCount = len(global)
	jl.hemisphereCount = len(hemisphere)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
