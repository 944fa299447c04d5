package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"ecommerce-transactions/internal/core/domain"
)

// ErrConcurrentModification is returned by EventStore.Append when another
// writer appended at the expected version first.
var ErrConcurrentModification = errors.New("concurrent modification of transaction events")

// ErrDuplicateEvent is returned by EventStore.Append when an event with the
// same idempotency key is already stored. Nothing is written.
var ErrDuplicateEvent = errors.New("event already stored")

// EventStore is the append-only transaction event log.
type EventStore interface {
	// Append stores event as version expectedVersion+1 of its transaction.
	// A non-empty idempotencyKey that was already stored writes nothing and
	// returns ErrDuplicateEvent.
	Append(ctx context.Context, event domain.Event, expectedVersion int, idempotencyKey string) error
	// LoadEvents returns the events of a transaction in append order.
	LoadEvents(ctx context.Context, transactionID domain.TransactionID) ([]domain.Event, error)
}

// TransactionViewRepository persists the read model.
// Finders return nil, nil when nothing matches.
type TransactionViewRepository interface {
	Save(ctx context.Context, view *domain.TransactionView) error
	FindByID(ctx context.Context, transactionID string) (*domain.TransactionView, error)
	FindByPaymentToken(ctx context.Context, paymentToken string) (*domain.TransactionView, error)
}

// PaymentRequestInfoCache keeps hub activation data per RptId.
type PaymentRequestInfoCache interface {
	Get(ctx context.Context, rptID string) (*domain.PaymentRequestInfo, error) // nil when absent
	Set(ctx context.Context, info *domain.PaymentRequestInfo, ttl time.Duration) error
}

// RateLimitStore counts requests per key over a fixed window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}
