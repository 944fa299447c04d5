package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("TRX_001", "Transaction not found", "missing", http.StatusNotFound),
			expected: "[TRX_001] missing",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("GW_001", "Bad gateway", "pgs failed", http.StatusBadGateway, fmt.Errorf("connection refused")),
			expected: "[GW_001] pgs failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := BadGateway("wrapped", inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, InvalidRequest("x").Unwrap())
}

func TestTaxonomyStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"TransactionNotFound", TransactionNotFound("abc"), "TRX_001", 404},
		{"AlreadyProcessed", AlreadyProcessed("abc"), "TRX_002", 409},
		{"InvalidState", InvalidState("abc", "ACTIVATED"), "TRX_003", 409},
		{"ConcurrentModification", ConcurrentModification("abc", nil), "TRX_004", 409},
		{"InvalidRequest", InvalidRequest("bad"), "REQ_001", 400},
		{"PaymentMethodNotFound", PaymentMethodNotFound("pm"), "REQ_002", 404},
		{"NotImplemented", NotImplemented("nope"), "REQ_003", 501},
		{"BadGateway", BadGateway("down", nil), "GW_001", 502},
		{"GatewayTimeout", GatewayTimeout("slow", nil), "GW_002", 504},
		{"MissingPSPConfiguration", MissingPSPConfiguration("psp1"), "GW_003", 502},
		{"RateLimitExceeded", RateLimitExceeded(), "RATE_001", 429},
		{"InvalidToken", InvalidToken(), "AUTH_001", 401},
		{"ProcessingError", ProcessingError("boom", nil), "SYS_001", 500},
		{"InternalError", InternalError(nil), "SYS_002", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Title)
		})
	}
}

func TestUpstreamFault(t *testing.T) {
	tests := []struct {
		category   FaultCategory
		httpStatus int
	}{
		{FaultValidation, http.StatusNotFound},
		{FaultPaymentStatus, http.StatusConflict},
		{FaultConfiguration, http.StatusBadGateway},
		{FaultGateway, http.StatusBadGateway},
		{FaultTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := UpstreamFault(tt.category, "PPT_SOMETHING")
			assert.Equal(t, tt.httpStatus, err.HTTPStatus)
			assert.Equal(t, "PPT_SOMETHING", err.Detail)
			assert.Equal(t, "NODO_"+string(tt.category), err.Code)
		})
	}
}

func TestMissingPSPConfiguration_NamesPSP(t *testing.T) {
	err := MissingPSPConfiguration("checkout-psp")
	assert.Contains(t, err.Detail, "checkout-psp")
}
