package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"ecommerce-transactions/config"
	"ecommerce-transactions/internal/adapter/queue"
	"ecommerce-transactions/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the worker needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewReader builds a consumer group reader on the closure retry topic.
func NewReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.ClosureRetryTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// ClosureRetryWorker feeds closure retry messages to the closure service.
type ClosureRetryWorker struct {
	reader  MessageReader
	service ports.ClosureRetryService
	log     zerolog.Logger
	now     func() time.Time
}

func NewClosureRetryWorker(reader MessageReader, service ports.ClosureRetryService, log zerolog.Logger) *ClosureRetryWorker {
	return &ClosureRetryWorker{
		reader:  reader,
		service: service,
		log:     log.With().Str("component", "closure_retry_worker").Logger(),
		now:     time.Now,
	}
}

// Run consumes until ctx is canceled or the reader is closed.
// Every fetched message is committed once handled, whatever the outcome:
// the service re-enqueues every attempt that failed for a transient reason.
func (w *ClosureRetryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("closure retry worker started")
	for {
		m, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				w.log.Info().Msg("closure retry worker stopped")
				return nil
			}
			return fmt.Errorf("fetching closure retry message: %w", err)
		}

		if err := w.handle(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.log.Error().Err(err).
				Int64("offset", m.Offset).
				Str("key", string(m.Key)).
				Msg("closure retry failed")
		}

		if err := w.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("committing closure retry message: %w", err)
		}
	}
}

func (w *ClosureRetryWorker) handle(ctx context.Context, m kafka.Message) error {
	var msg ports.RetryMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		w.log.Warn().Err(err).Int64("offset", m.Offset).Msg("dropping malformed closure retry message")
		return nil
	}

	if err := w.waitUntil(ctx, queue.RetryAt(m)); err != nil {
		return err
	}

	ctx = ports.WithTracingInfo(ctx, msg.TracingInfo)
	return w.service.RetryClosure(ctx, msg)
}

func (w *ClosureRetryWorker) waitUntil(ctx context.Context, at time.Time) error {
	d := at.Sub(w.now())
	if at.IsZero() || d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
