package npg

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-transactions/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, buildPath, r.URL.Path)
		assert.Equal(t, "npg-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "corr-1", r.Header.Get("Correlation-Id"))

		var body buildRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order-1", body.Order.OrderID)
		assert.Equal(t, "1050", body.Order.Amount)
		assert.Equal(t, "EUR", body.Order.Currency)
		assert.Equal(t, "eng", body.PaymentSession.Language)
		assert.Equal(t, "https://checkout.example/esito", body.PaymentSession.ResultURL)
		assert.Equal(t, "CARDS", body.PaymentSession.PaymentService)

		_, _ = w.Write([]byte(`{"sessionId":"sess-1","securityToken":"sec-1"}`))
	}))
	defer srv.Close()

	session, err := NewClient(srv.Client(), srv.URL, "npg-key").CreateSession(context.Background(), ports.NPGSessionRequest{
		CorrelationID: "corr-1",
		OrderID:       "order-1",
		Amount:        1050,
		Language:      "EN",
		ResultURL:     "https://checkout.example/esito",
	})

	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.SessionID)
	assert.Equal(t, "sec-1", session.SecurityToken)
}

func TestConfirmPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, confirmPath, r.URL.Path)

		var body confirmRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sess-1", body.SessionID)
		assert.Equal(t, "1050", body.Amount)

		_, _ = w.Write([]byte(`{"state":"GDI_VERIFICATION","url":"https://npg.example/gdi"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.Client(), srv.URL+"/", "npg-key").ConfirmPayment(context.Background(), ports.NPGConfirmRequest{
		CorrelationID: "corr-1",
		SessionID:     "sess-1",
		GrandTotal:    1050,
	})

	require.NoError(t, err)
	assert.Equal(t, "GDI_VERIFICATION", resp.State)
	assert.Equal(t, "https://npg.example/gdi", resp.URL)
}

func TestCreateSession_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.Client(), srv.URL, "npg-key").CreateSession(context.Background(), ports.NPGSessionRequest{OrderID: "order-1"})

	var gwErr *ports.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusServiceUnavailable, gwErr.StatusCode)
	assert.Equal(t, "npg", gwErr.Gateway)
}

func TestLanguage(t *testing.T) {
	tests := map[string]string{"": "ita", "it": "ita", "EN": "eng", "fr": "fra", "xx": "xx"}
	for in, want := range tests {
		assert.Equal(t, want, language(in), in)
	}
}
