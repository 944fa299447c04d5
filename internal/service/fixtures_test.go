package service

import (
	"testing"
	"time"

	"ecommerce-transactions/internal/core/domain"

	"github.com/stretchr/testify/require"
)

const testPaymentToken domain.PaymentToken = "a7d3b1c9e5f24a8b9c0d"

type txFixture struct {
	id    domain.TransactionID
	rptID domain.RptID
	email domain.Email
	key   domain.IdempotencyKey
}

func newTxFixture(t *testing.T) txFixture {
	t.Helper()
	rptID, err := domain.NewRptID("77777777777302016723749670035")
	require.NoError(t, err)
	email, err := domain.NewEmail("foo@example.com")
	require.NoError(t, err)
	key, err := domain.NewIdempotencyKey("60000000001", "aabbccddee")
	require.NoError(t, err)
	return txFixture{id: domain.NewTransactionID(), rptID: rptID, email: email, key: key}
}

func (f txFixture) activationRequested() domain.ActivationRequestedEvent {
	return domain.ActivationRequestedEvent{
		EventMeta: domain.NewEventMeta(f.id),
		Data: domain.ActivationRequestedData{
			PaymentNotices: []domain.PaymentNotice{{RptID: f.rptID, Amount: 1000}},
			Email:          f.email,
			ClientID:       domain.ClientCheckout,
		},
	}
}

func (f txFixture) activated() domain.ActivatedEvent {
	return domain.ActivatedEvent{
		EventMeta: domain.NewEventMeta(f.id),
		Data: domain.ActivatedData{
			PaymentNotices: []domain.PaymentNotice{{
				PaymentToken: testPaymentToken,
				RptID:        f.rptID,
				Amount:       1000,
				Description:  "TARI 2024",
			}},
			IdempotencyKey: f.key,
		},
	}
}

func (f txFixture) authorizationRequested(gateway domain.PaymentGateway) domain.AuthorizationRequestedEvent {
	return domain.AuthorizationRequestedEvent{
		EventMeta: domain.NewEventMeta(f.id),
		Data: domain.AuthorizationRequestData{
			Amount:                 1000,
			Fee:                    50,
			PaymentInstrumentID:    "pm-card",
			PspID:                  "PSP1",
			PaymentTypeCode:        "CP",
			PaymentMethodName:      "CARDS",
			AuthorizationRequestID: "auth-req-1",
			Gateway:                gateway,
		},
	}
}

func (f txFixture) authorizationCompleted(outcome domain.Outcome) domain.AuthorizationCompletedEvent {
	return domain.AuthorizationCompletedEvent{
		EventMeta: domain.NewEventMeta(f.id),
		Data: domain.AuthorizationCompletedData{
			AuthorizationCode:  "AUTH01",
			Result:             outcome,
			OperationTimestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func (f txFixture) closureSent(outcome domain.Outcome) domain.ClosureSentEvent {
	return domain.ClosureSentEvent{EventMeta: domain.NewEventMeta(f.id), Data: domain.ClosureData{Outcome: outcome}}
}

func (f txFixture) closureError() domain.ClosureErrorEvent {
	return domain.ClosureErrorEvent{EventMeta: domain.NewEventMeta(f.id), Data: domain.ClosureErrorData{Reason: "nodo unavailable"}}
}

func (f txFixture) userCanceled() domain.UserCanceledEvent {
	return domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(f.id)}
}

// history returns the events of a transaction up to the completed authorization.
func (f txFixture) history(gateway domain.PaymentGateway, outcome domain.Outcome) []domain.Event {
	return []domain.Event{
		f.activationRequested(),
		f.activated(),
		f.authorizationRequested(gateway),
		f.authorizationCompleted(outcome),
	}
}

func (f txFixture) activatedTx(t *testing.T) domain.TransactionActivated {
	t.Helper()
	tx, ok := domain.Rehydrate([]domain.Event{f.activationRequested(), f.activated()}).(domain.TransactionActivated)
	require.True(t, ok)
	return tx
}
