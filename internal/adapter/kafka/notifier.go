// Package kafka publishes dataset refresh notifications so downstream
// consumers can invalidate anything derived from a previous snapshot.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/metroplexdata/caseboard/internal/config"
	"github.com/metroplexdata/caseboard/internal/dataset"
)

// Notifier produces refresh events to a Kafka topic.
// It implements dataset.Notifier.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the configured refresh topic.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Notifier{writer: w, logger: logger}
}

// NotifyRefresh serializes and publishes a single refresh event. The
// dataset name keys the message so per-dataset ordering is preserved.
func (n *Notifier) NotifyRefresh(ctx context.Context, event dataset.RefreshEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying Kafka writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}

func serializeToMessage(event dataset.RefreshEvent) (kafkago.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize refresh event: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(event.Dataset),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "dataset", Value: []byte(event.Dataset)},
			{Key: "loaded_at", Value: []byte(event.LoadedAt.Format(time.RFC3339))},
		},
	}, nil
}
