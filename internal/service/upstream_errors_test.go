package service

import (
	"errors"
	"net/http"
	"testing"

	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, httpStatus int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, httpStatus, appErr.HTTPStatus)
	return appErr
}

func TestMapNodoError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		httpStatus int
	}{
		{"payment status fault", &ports.NodoFaultError{FaultCode: "PAA_PAGAMENTO_IN_CORSO"}, http.StatusConflict},
		{"expired notice", &ports.NodoFaultError{FaultCode: "PAA_PAGAMENTO_SCADUTO"}, http.StatusConflict},
		{"validation fault", &ports.NodoFaultError{FaultCode: "PPT_DOMINIO_SCONOSCIUTO"}, http.StatusNotFound},
		{"configuration fault", &ports.NodoFaultError{FaultCode: "PPT_DOMINIO_DISABILITATO"}, http.StatusBadGateway},
		{"timeout fault", &ports.NodoFaultError{FaultCode: "PPT_STAZIONE_INT_PA_TIMEOUT"}, http.StatusGatewayTimeout},
		{"unknown fault", &ports.NodoFaultError{FaultCode: "PPT_SOMETHING_NEW"}, http.StatusBadGateway},
		{"http timeout", &ports.GatewayError{Gateway: "nodo", Timeout: true}, http.StatusGatewayTimeout},
		{"http 500", &ports.GatewayError{Gateway: "nodo", StatusCode: 500}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAppError(t, mapNodoError(tt.err), tt.httpStatus)
		})
	}

	plain := errors.New("boom")
	assert.Equal(t, plain, mapNodoError(plain))
}

func TestMapAuthorizationError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		timeout    bool
		httpStatus int
	}{
		{"401 already processed", 401, false, http.StatusConflict},
		{"504 gateway timeout", 504, false, http.StatusGatewayTimeout},
		{"client timeout", 0, true, http.StatusGatewayTimeout},
		{"500 bad gateway", 500, false, http.StatusBadGateway},
		{"503 bad gateway", 503, false, http.StatusBadGateway},
		{"transport failure", 0, false, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapAuthorizationError("tx-1", &ports.GatewayError{Gateway: "XPAY", StatusCode: tt.statusCode, Timeout: tt.timeout})
			assertAppError(t, err, tt.httpStatus)
		})
	}
}

func TestMapAuthorizationError_PassThrough(t *testing.T) {
	gwErr := &ports.GatewayError{Gateway: "NPG", StatusCode: 400}
	err := mapAuthorizationError("tx-1", gwErr)

	var appErr *apperror.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Same(t, gwErr, err)

	invalid := apperror.InvalidRequest("x")
	assert.Equal(t, error(invalid), mapAuthorizationError("tx-1", invalid))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&ports.GatewayError{StatusCode: 502}))
	assert.True(t, isTransient(&ports.GatewayError{StatusCode: 0}))
	assert.False(t, isTransient(&ports.GatewayError{StatusCode: 400}))
	assert.False(t, isTransient(errors.New("x")))
}
