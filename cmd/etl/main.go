// Command etl runs one batch of the climate anomaly pipeline: fetch the
// three GISTEMP regional tables, reshape and classify them, and write the
// Global and Hemisphere output tables. Operational endpoints stay up for the
// duration of the run.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-anomaly-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/climate-anomaly-etl/internal/adapter/gistemp"
	httpadapter "github.com/couchcryptid/climate-anomaly-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-anomaly-etl/internal/adapter/kafka"
	"github.com/couchcryptid/climate-anomaly-etl/internal/config"
	"github.com/couchcryptid/climate-anomaly-etl/internal/observability"
	"github.com/couchcryptid/climate-anomaly-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fetcher := gistemp.NewClient(cfg.SourceBaseURL, cfg.FetchTimeout, cfg.FetchMaxRetries, logger, metrics)

	loaders := []pipeline.Loader{csvfile.NewWriter(cfg.OutputDir, logger)}

	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, kafkaWriter)
		logger.Info("kafka record sink enabled", "topic", cfg.KafkaSinkTopic)
	}

	p := pipeline.New(fetcher, loaders, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	runErr := p.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline run failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
