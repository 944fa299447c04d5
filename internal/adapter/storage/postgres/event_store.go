package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// EventStore implements ports.EventStore on the transaction_events table.
// Each event takes the next version of its transaction; the unique
// (transaction_id, version) constraint rejects a concurrent writer.
type EventStore struct {
	pool  Pool
	codec eventCodec
}

// NewEventStore creates an EventStore. enc protects confidential event fields.
func NewEventStore(pool Pool, enc ports.EncryptionService) *EventStore {
	return &EventStore{pool: pool, codec: eventCodec{enc: enc}}
}

// Append stores event as version expectedVersion+1. An event whose
// idempotencyKey was already stored yields ports.ErrDuplicateEvent.
func (s *EventStore) Append(ctx context.Context, event domain.Event, expectedVersion int, idempotencyKey string) error {
	data, err := s.codec.encode(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Code(), err)
	}

	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	meta := event.Meta()
	query := `INSERT INTO transaction_events (id, transaction_id, version, event_code, data, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING`

	tag, err := s.pool.Exec(ctx, query,
		meta.EventID, meta.TransactionID.String(), expectedVersion+1,
		string(event.Code()), data, key, meta.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s version %d", ports.ErrConcurrentModification, meta.TransactionID, expectedVersion+1)
		}
		return fmt.Errorf("insert event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s key %s", ports.ErrDuplicateEvent, meta.TransactionID, idempotencyKey)
	}
	return nil
}

// LoadEvents returns the events of a transaction in version order.
func (s *EventStore) LoadEvents(ctx context.Context, transactionID domain.TransactionID) ([]domain.Event, error) {
	query := `SELECT id, event_code, data, created_at
		FROM transaction_events WHERE transaction_id = $1 ORDER BY version`

	rows, err := s.pool.Query(ctx, query, transactionID.String())
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			id        uuid.UUID
			code      string
			data      []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &code, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		meta := domain.EventMeta{EventID: id, TransactionID: transactionID, CreatedAt: createdAt}
		event, err := s.codec.decode(domain.EventCode(code), meta, data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", code, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
