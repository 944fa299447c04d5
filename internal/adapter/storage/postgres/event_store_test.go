package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testRptID = "77777777777302016723749670035"

// jsonField matches a JSON argument whose top level field equals want.
type jsonField struct {
	field string
	want  any
}

func (m jsonField) Match(v any) bool {
	data, ok := v.([]byte)
	if !ok {
		return false
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	return assert.ObjectsAreEqual(m.want, doc[m.field])
}

func setupEventStore(t *testing.T) (*EventStore, pgxmock.PgxPoolIface, *mocks.MockEncryptionService) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	enc := mocks.NewMockEncryptionService(gomock.NewController(t))
	return NewEventStore(mock, enc), mock, enc
}

func TestEventStore_Append(t *testing.T) {
	store, mock, _ := setupEventStore(t)
	id := domain.NewTransactionID()
	event := domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(id)}
	key := id.String() + ":TRANSACTION_USER_CANCELED_EVENT"

	mock.ExpectExec("INSERT INTO transaction_events").
		WithArgs(event.EventID, id.String(), 3, "TRANSACTION_USER_CANCELED_EVENT", []byte("{}"), &key, event.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.Append(context.Background(), event, 2, key)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventStore_Append_EncryptsEmail(t *testing.T) {
	store, mock, enc := setupEventStore(t)
	id := domain.NewTransactionID()
	rptID, err := domain.NewRptID(testRptID)
	require.NoError(t, err)
	email, err := domain.NewEmail("foo@example.com")
	require.NoError(t, err)
	event := domain.ActivationRequestedEvent{
		EventMeta: domain.NewEventMeta(id),
		Data: domain.ActivationRequestedData{
			PaymentNotices: []domain.PaymentNotice{{RptID: rptID, Amount: 1000}},
			Email:          email,
			ClientID:       domain.ClientCheckout,
		},
	}

	enc.EXPECT().Encrypt("foo@example.com").Return("v1:sealed", nil)
	mock.ExpectExec("INSERT INTO transaction_events").
		WithArgs(event.EventID, id.String(), 1, "TRANSACTION_ACTIVATION_REQUESTED_EVENT",
			jsonField{field: "email", want: "v1:sealed"}, (*string)(nil), event.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Append(context.Background(), event, 0, "")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventStore_Append_DuplicateIdempotencyKey(t *testing.T) {
	store, mock, _ := setupEventStore(t)
	id := domain.NewTransactionID()
	event := domain.ClosureSentEvent{EventMeta: domain.NewEventMeta(id), Data: domain.ClosureData{Outcome: domain.OutcomeOK}}

	mock.ExpectExec("INSERT INTO transaction_events").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 5, "TRANSACTION_CLOSED_EVENT",
			jsonField{field: "responseOutcome", want: "OK"}, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := store.Append(context.Background(), event, 4, id.String()+":TRANSACTION_CLOSED_EVENT")

	assert.ErrorIs(t, err, ports.ErrDuplicateEvent)
	assert.NotErrorIs(t, err, ports.ErrConcurrentModification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventStore_Append_VersionConflict(t *testing.T) {
	store, mock, _ := setupEventStore(t)
	event := domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(domain.NewTransactionID())}

	mock.ExpectExec("INSERT INTO transaction_events").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "transaction_events_version_uq"})

	err := store.Append(context.Background(), event, 2, "")

	assert.ErrorIs(t, err, ports.ErrConcurrentModification)
}

func TestEventStore_Append_DatabaseError(t *testing.T) {
	store, mock, _ := setupEventStore(t)
	event := domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(domain.NewTransactionID())}

	mock.ExpectExec("INSERT INTO transaction_events").WillReturnError(errors.New("connection reset"))

	err := store.Append(context.Background(), event, 2, "")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrConcurrentModification)
}

func TestEventStore_Append_EncryptionFailure(t *testing.T) {
	store, mock, enc := setupEventStore(t)
	email, err := domain.NewEmail("foo@example.com")
	require.NoError(t, err)
	event := domain.ActivationRequestedEvent{
		EventMeta: domain.NewEventMeta(domain.NewTransactionID()),
		Data:      domain.ActivationRequestedData{Email: email},
	}

	enc.EXPECT().Encrypt(gomock.Any()).Return("", errors.New("bad key"))

	err = store.Append(context.Background(), event, 0, "")

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventStore_LoadEvents(t *testing.T) {
	store, mock, enc := setupEventStore(t)
	id := domain.NewTransactionID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows([]string{"id", "event_code", "data", "created_at"}).
		AddRow(uuid.New(), "TRANSACTION_ACTIVATION_REQUESTED_EVENT",
			[]byte(`{"paymentNotices":[{"rptId":"`+testRptID+`","description":"","amount":1000}],"email":"v1:sealed","clientId":"CHECKOUT","paymentTokenValiditySeconds":900}`), now).
		AddRow(uuid.New(), "TRANSACTION_ACTIVATED_EVENT",
			[]byte(`{"paymentNotices":[{"paymentToken":"tok-1","rptId":"`+testRptID+`","description":"TARI","amount":1000}],"idempotencyKey":"60000000001_aabbccddee"}`), now)

	enc.EXPECT().Decrypt("v1:sealed").Return("foo@example.com", nil)
	mock.ExpectQuery("FROM transaction_events WHERE transaction_id").
		WithArgs(id.String()).
		WillReturnRows(rows)

	events, err := store.LoadEvents(context.Background(), id)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id, events[0].Meta().TransactionID)

	tx, ok := domain.Rehydrate(events).(domain.TransactionActivated)
	require.True(t, ok)
	assert.Equal(t, "foo@example.com", tx.Email.String())
	assert.Equal(t, 900, tx.PaymentTokenTimeout)
	assert.Equal(t, domain.PaymentToken("tok-1"), tx.PaymentNotices[0].PaymentToken)
	assert.Equal(t, "60000000001_aabbccddee", tx.IdempotencyKey.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventStore_LoadEvents_Empty(t *testing.T) {
	store, mock, _ := setupEventStore(t)
	id := domain.NewTransactionID()

	mock.ExpectQuery("FROM transaction_events WHERE transaction_id").
		WithArgs(id.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "event_code", "data", "created_at"}))

	events, err := store.LoadEvents(context.Background(), id)

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventStore_LoadEvents_UnknownCode(t *testing.T) {
	store, mock, _ := setupEventStore(t)
	id := domain.NewTransactionID()

	mock.ExpectQuery("FROM transaction_events WHERE transaction_id").
		WithArgs(id.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "event_code", "data", "created_at"}).
			AddRow(uuid.New(), "SOMETHING_ELSE", []byte(`{}`), time.Now()))

	_, err := store.LoadEvents(context.Background(), id)

	assert.Error(t, err)
}

func TestEventCodec_RoundTrip(t *testing.T) {
	codec := eventCodec{}
	id := domain.NewTransactionID()
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	events := []domain.Event{
		domain.AuthorizationRequestedEvent{EventMeta: domain.NewEventMeta(id), Data: domain.AuthorizationRequestData{
			Amount: 1000, Fee: 50, PspID: "PSP1", Gateway: domain.GatewayNPG, AuthorizationRequestID: "order-1",
		}},
		domain.AuthorizationCompletedEvent{EventMeta: domain.NewEventMeta(id), Data: domain.AuthorizationCompletedData{
			AuthorizationCode: "A1", RRN: "rrn", Result: domain.OutcomeOK, OperationTimestamp: ts, GatewayStatus: "EXECUTED",
		}},
		domain.ClosureErrorEvent{EventMeta: domain.NewEventMeta(id), Data: domain.ClosureErrorData{Reason: "timeout", HTTPStatus: 504}},
		domain.ClosureFailedEvent{EventMeta: domain.NewEventMeta(id), Data: domain.ClosureData{Outcome: domain.OutcomeKO}},
		domain.UserReceiptAddedEvent{EventMeta: domain.NewEventMeta(id), Data: domain.UserReceiptData{Outcome: domain.OutcomeOK, PaymentDate: ts}},
		domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(id)},
	}

	for _, e := range events {
		t.Run(string(e.Code()), func(t *testing.T) {
			data, err := codec.encode(e)
			require.NoError(t, err)

			decoded, err := codec.decode(e.Code(), e.Meta(), data)
			require.NoError(t, err)
			assert.Equal(t, e, decoded)
		})
	}
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transaction_events").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, Migrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))
}
