package service

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"
)

// eventWriter appends events and refreshes the read model.
type eventWriter struct {
	events    ports.EventStore
	projector ports.Projector
}

// load rehydrates a transaction and returns it with its current version.
func (w eventWriter) load(ctx context.Context, id domain.TransactionID) (domain.Transaction, int, error) {
	events, err := w.events.LoadEvents(ctx, id)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("loading events: %w", err))
	}
	tx := domain.Rehydrate(events)
	if _, empty := tx.(domain.EmptyTransaction); empty {
		return nil, 0, apperror.TransactionNotFound(id.String())
	}
	return tx, len(events), nil
}

// commit appends event at expectedVersion and projects it. An event already
// stored under idempotencyKey is reported as already processed and is not
// projected.
func (w eventWriter) commit(ctx context.Context, event domain.Event, expectedVersion int, idempotencyKey string, legacyToken domain.PaymentToken) (*domain.TransactionView, error) {
	id := event.Meta().TransactionID.String()
	if err := w.events.Append(ctx, event, expectedVersion, idempotencyKey); err != nil {
		if errors.Is(err, ports.ErrDuplicateEvent) {
			return nil, apperror.AlreadyProcessed(id)
		}
		if errors.Is(err, ports.ErrConcurrentModification) {
			return nil, apperror.ConcurrentModification(id, err)
		}
		return nil, apperror.InternalError(fmt.Errorf("appending %s: %w", event.Code(), err))
	}

	view, err := w.projector.Project(ctx, event, legacyToken)
	if err != nil {
		return nil, fmt.Errorf("projecting %s: %w", event.Code(), err)
	}
	return view, nil
}

// legacyTokenOf returns the first payment token of an activated transaction.
func legacyTokenOf(tx domain.Transaction) domain.PaymentToken {
	if a, ok := domain.ActivatedOf(tx); ok && len(a.PaymentNotices) > 0 {
		return a.PaymentNotices[0].PaymentToken
	}
	return ""
}
