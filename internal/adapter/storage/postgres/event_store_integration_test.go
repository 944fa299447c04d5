//go:build integration

package postgres

import (
	"context"
	"testing"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const integrationAESKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ecommerce"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func TestEventStore_Integration(t *testing.T) {
	pool := startPostgres(t)
	enc, err := service.NewAESEncryptionService(integrationAESKey)
	require.NoError(t, err)
	store := NewEventStore(pool, enc)
	ctx := context.Background()

	rptID, err := domain.NewRptID(testRptID)
	require.NoError(t, err)
	email, err := domain.NewEmail("foo@example.com")
	require.NoError(t, err)
	key, err := domain.NewIdempotencyKey("60000000001", "aabbccddee")
	require.NoError(t, err)
	id := domain.NewTransactionID()

	requested := domain.ActivationRequestedEvent{EventMeta: domain.NewEventMeta(id), Data: domain.ActivationRequestedData{
		PaymentNotices: []domain.PaymentNotice{{RptID: rptID, Amount: 1000}},
		Email:          email,
		ClientID:       domain.ClientCheckout,
	}}
	activated := domain.ActivatedEvent{EventMeta: domain.NewEventMeta(id), Data: domain.ActivatedData{
		PaymentNotices: []domain.PaymentNotice{{PaymentToken: "tok-1", RptID: rptID, Amount: 1000}},
		IdempotencyKey: key,
	}}

	t.Run("append and load", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, requested, 0, ""))
		require.NoError(t, store.Append(ctx, activated, 1, id.String()+":"+key.String()))

		events, err := store.LoadEvents(ctx, id)
		require.NoError(t, err)
		require.Len(t, events, 2)

		tx, ok := domain.Rehydrate(events).(domain.TransactionActivated)
		require.True(t, ok)
		assert.Equal(t, email, tx.Email)
	})

	t.Run("email is encrypted at rest", func(t *testing.T) {
		var raw string
		err := pool.QueryRow(ctx,
			`SELECT data->>'email' FROM transaction_events WHERE transaction_id = $1 AND version = 1`, id.String()).Scan(&raw)
		require.NoError(t, err)
		assert.NotEqual(t, "foo@example.com", raw)
	})

	t.Run("duplicate idempotency key is rejected", func(t *testing.T) {
		replay := activated
		replay.EventMeta = domain.NewEventMeta(id)
		err := store.Append(ctx, replay, 2, id.String()+":"+key.String())
		assert.ErrorIs(t, err, ports.ErrDuplicateEvent)

		events, err := store.LoadEvents(ctx, id)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		canceled := domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(id)}
		err := store.Append(ctx, canceled, 1, "")
		assert.ErrorIs(t, err, ports.ErrConcurrentModification)
	})
}
