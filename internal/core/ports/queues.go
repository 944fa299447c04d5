package ports

//go:generate mockgen -source=queues.go -destination=mocks/queues_mock.go -package=mocks

import "context"

// TracingInfo carries W3C trace context across the retry queues.
type TracingInfo struct {
	TraceParent string `json:"traceparent"`
	TraceState  string `json:"tracestate,omitempty"`
	Baggage     string `json:"baggage,omitempty"`
}

// RetryMessage is the payload of the closure and notification retry queues.
type RetryMessage struct {
	TransactionID string      `json:"transactionId"`
	Attempt       int         `json:"attempt"`
	TracingInfo   TracingInfo `json:"tracingInfo"`
}

// RetryQueue publishes retry messages.
type RetryQueue interface {
	PublishClosureRetry(ctx context.Context, msg RetryMessage) error
	PublishNotificationRetry(ctx context.Context, msg RetryMessage) error
}

type tracingKey struct{}

// WithTracingInfo stores the inbound trace context on ctx.
func WithTracingInfo(ctx context.Context, info TracingInfo) context.Context {
	return context.WithValue(ctx, tracingKey{}, info)
}

// TracingInfoFrom returns the trace context stored by WithTracingInfo.
func TracingInfoFrom(ctx context.Context) TracingInfo {
	info, _ := ctx.Value(tracingKey{}).(TracingInfo)
	return info
}
