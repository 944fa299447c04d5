package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecommerce-transactions/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Value string `json:"value"`
}

func TestCaller_PostJSON(t *testing.T) {
	t.Run("decodes success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

			var in echoPayload
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(echoPayload{Value: in.Value + "!"})
		}))
		defer srv.Close()

		caller := Caller{Name: "test", Client: NewHTTPClient(Timeouts{Connect: time.Second, Read: time.Second})}
		var out echoPayload
		err := caller.PostJSON(context.Background(), srv.URL, map[string]string{"X-Api-Key": "secret"}, echoPayload{Value: "hi"}, &out)

		require.NoError(t, err)
		assert.Equal(t, "hi!", out.Value)
	})

	t.Run("non 2xx keeps status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail":"down"}`))
		}))
		defer srv.Close()

		caller := Caller{Name: "test", Client: srv.Client()}
		err := caller.PostJSON(context.Background(), srv.URL, nil, echoPayload{}, nil)

		var gwErr *ports.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, http.StatusBadGateway, gwErr.StatusCode)
		assert.Equal(t, `{"detail":"down"}`, gwErr.Body)
		assert.Equal(t, "test", gwErr.Gateway)
	})

	t.Run("long body truncated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(strings.Repeat("x", maxLoggedBody*2)))
		}))
		defer srv.Close()

		err := Caller{Name: "test", Client: srv.Client()}.PostJSON(context.Background(), srv.URL, nil, echoPayload{}, nil)

		var gwErr *ports.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Len(t, gwErr.Body, maxLoggedBody)
	})

	t.Run("read timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		caller := Caller{Name: "test", Client: NewHTTPClient(Timeouts{Connect: time.Second, Read: 50 * time.Millisecond})}
		err := caller.PostJSON(context.Background(), srv.URL, nil, echoPayload{}, nil)

		var gwErr *ports.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, 0, gwErr.StatusCode)
		assert.True(t, gwErr.Timeout)
	})

	t.Run("undecodable success body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		var out echoPayload
		err := Caller{Name: "test", Client: srv.Client()}.PostJSON(context.Background(), srv.URL, nil, echoPayload{}, &out)

		var gwErr *ports.GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, http.StatusOK, gwErr.StatusCode)
	})
}
