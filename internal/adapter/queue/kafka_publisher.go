package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecommerce-transactions/config"
	"ecommerce-transactions/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// RetryAtHeader holds the RFC 3339 instant before which a retry message
// must not be processed.
const RetryAtHeader = "retry-at"

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher implements ports.RetryQueue.
type KafkaPublisher struct {
	writer            MessageWriter
	closureTopic      string
	notificationTopic string
	retryDelay        time.Duration
	now               func() time.Time
}

func NewKafkaPublisher(writer MessageWriter, cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer:            writer,
		closureTopic:      cfg.ClosureRetryTopic,
		notificationTopic: cfg.NotificationRetryTopic,
		retryDelay:        cfg.RetryDelay,
		now:               time.Now,
	}
}

// NewWriter builds a synchronous writer; topics are set per message.
func NewWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// PublishClosureRetry enqueues a closure attempt. Attempt 0 is processed at
// once, later attempts after the configured retry delay.
func (p *KafkaPublisher) PublishClosureRetry(ctx context.Context, msg ports.RetryMessage) error {
	return p.publish(ctx, p.closureTopic, msg)
}

func (p *KafkaPublisher) PublishNotificationRetry(ctx context.Context, msg ports.RetryMessage) error {
	return p.publish(ctx, p.notificationTopic, msg)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic string, msg ports.RetryMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding retry message: %w", err)
	}

	retryAt := p.now()
	if msg.Attempt > 0 {
		retryAt = retryAt.Add(p.retryDelay)
	}

	headers := []kafka.Header{
		{Key: RetryAtHeader, Value: []byte(retryAt.UTC().Format(time.RFC3339Nano))},
	}
	if msg.TracingInfo.TraceParent != "" {
		headers = append(headers, kafka.Header{Key: "traceparent", Value: []byte(msg.TracingInfo.TraceParent)})
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     []byte(msg.TransactionID),
		Value:   value,
		Headers: headers,
	})
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// RetryAt reads the retry-at header; the zero time when absent or malformed.
func RetryAt(m kafka.Message) time.Time {
	for _, h := range m.Headers {
		if h.Key != RetryAtHeader {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, string(h.Value))
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}
