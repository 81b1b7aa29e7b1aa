// Package kafka publishes classified anomaly records to a sink topic for
// downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/climate-anomaly-etl/internal/config"
	"github.com/couchcryptid/climate-anomaly-etl/internal/domain"
)

// Writer produces one message per output record. It implements
// pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadTables serializes every record of both tables and publishes them in a
// single WriteMessages call.
func (w *Writer) LoadTables(ctx context.Context, global domain.GlobalTable, hemisphere domain.HemisphereTable) error {
	msgs := make([]kafkago.Message, 0, len(global)+len(hemisphere))
	for _, rec := range global {
		msg, err := serializeRecord("global", rec.Identifier, rec)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	for _, rec := range hemisphere {
		msg, err := serializeRecord("hemisphere", rec.Identifier, rec)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish records: %w", err)
	}
	w.logger.Info("records published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRecord marshals a record into a Kafka message keyed by
// identifier|year|month so replays of the same cell land on one partition.
func serializeRecord(table string, identifier domain.Region, rec any) (kafkago.Message, error) {
	value, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}

	var year int
	var month domain.Month
	var processedAt time.Time
	switch r := rec.(type) {
	case domain.Record:
		year, month, processedAt = r.Year, r.Month, r.ProcessedAt
	case domain.HemisphereRecord:
		year, month, processedAt = r.Year, r.Month, r.ProcessedAt
	default:
		return kafkago.Message{}, fmt.Errorf("serialize record: unsupported type %T", rec)
	}

	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%s|%d|%s", identifier, year, month)),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "table", Value: []byte(table)},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
