package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
	"github.com/couchcryptid/climate-anomaly-etl/internal/observability"
)

// Fetcher retrieves the raw monthly table for one region.
type Fetcher interface {
	FetchRegion(ctx context.Context, region domain.Region) (domain.RawTable, error)
}

// Loader persists the two output tables.
type Loader interface {
	LoadTables(ctx context.Context, global domain.GlobalTable, hemisphere domain.HemisphereTable) error
}

// StageError reports which region and pipeline stage a run failed in.
type StageError struct {
	Region domain.Region
	Stage  string // "fetch", "transform", or "load"
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("region %s: %s stage: %v", e.Region, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline orchestrates one fetch-transform-load batch over the three
// regional series.
type Pipeline struct {
	fetcher Fetcher
	loaders []Loader
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline with the given stages and observability. Loaders
// run in order; all of them receive the same two tables.
func New(fetcher Fetcher, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		loaders: loaders,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a batch run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no batch run has completed yet")
	}
	return nil
}

// Run executes one batch: the three regions are fetched and transformed in
// parallel, joined, and handed to the loaders. Any structural failure aborts
// the whole run, since the hemisphere table cannot be built from a partial
// pair.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.logger.Info("pipeline run started", "regions", len(domain.Regions))

	// One result slot per region task; slots are disjoint, so no lock is
	// needed around the fan-out.
	results := make([][]domain.Record, len(domain.Regions))
	g, gctx := errgroup.WithContext(ctx)
	for i, region := range domain.Regions {
		g.Go(func() error {
			records, err := p.processRegion(gctx, region)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	// Join barrier: hemisphere concatenation needs both hemispheres, so
	// nothing downstream starts until every region task has finished.
	if err := g.Wait(); err != nil {
		p.logger.Error("pipeline run failed", "error", err)
		return err
	}

	global := domain.GlobalTable(results[0])
	hemisphere := joinHemispheres(results[1], results[2])

	p.countUnclassified(global, hemisphere)

	for _, loader := range p.loaders {
		if err := loader.LoadTables(ctx, global, hemisphere); err != nil {
			err = &StageError{Region: domain.RegionGlobal, Stage: "load", Err: err}
			p.logger.Error("pipeline run failed", "error", err)
			return err
		}
	}
	p.metrics.RecordsLoaded.WithLabelValues("global").Add(float64(len(global)))
	p.metrics.RecordsLoaded.WithLabelValues("hemisphere").Add(float64(len(hemisphere)))

	p.logSummary(global, hemisphere)
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

// processRegion runs fetch and transform for one region, wrapping any
// failure with the region and stage that produced it.
func (p *Pipeline) processRegion(ctx context.Context, region domain.Region) ([]domain.Record, error) {
	table, err := p.fetcher.FetchRegion(ctx, region)
	if err != nil {
		return nil, &StageError{Region: region, Stage: "fetch", Err: err}
	}

	records, filtered, err := transformRegion(table)
	if err != nil {
		return nil, &StageError{Region: region, Stage: "transform", Err: err}
	}

	p.metrics.ObservationsReshaped.WithLabelValues(string(region)).Add(float64(len(records) + filtered))
	p.metrics.RecordsFiltered.WithLabelValues(string(region)).Add(float64(filtered))
	p.logger.Info("region transformed",
		"region", region,
		"records", len(records),
		"filtered_pre_1900", filtered,
	)
	return records, nil
}

// countUnclassified tallies records whose year or anomaly fell outside the
// defined bins. Deliberately absent labels, not failures.
func (p *Pipeline) countUnclassified(global domain.GlobalTable, hemisphere domain.HemisphereTable) {
	periods, anomalies := 0, 0
	count := func(rec domain.Record) {
		if rec.ClimatePeriod == "" {
			periods++
		}
		if rec.TemperatureCategory == "" {
			anomalies++
		}
	}
	for _, rec := range global {
		count(rec)
	}
	for _, rec := range hemisphere {
		count(rec.Record)
	}

	p.metrics.UnclassifiedPeriods.Add(float64(periods))
	p.metrics.UnclassifiedAnomalies.Add(float64(anomalies))
	if periods > 0 || anomalies > 0 {
		p.logger.Debug("records with unassigned labels",
			"no_climate_period", periods,
			"no_temperature_category", anomalies,
		)
	}
}

// logSummary reports table sizes and the fitted global warming trend.
func (p *Pipeline) logSummary(global domain.GlobalTable, hemisphere domain.HemisphereTable) {
	attrs := []any{
		"global_records", len(global),
		"hemisphere_records", len(hemisphere),
	}
	if trend, ok := domain.FitTrend(global); ok {
		attrs = append(attrs, "global_trend_c_per_decade", trend.SlopePerDecade())
	}
	p.logger.Info("pipeline run complete", attrs...)
}
