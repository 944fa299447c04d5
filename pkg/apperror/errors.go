package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to a problem-detail HTTP response.
type AppError struct {
	Code       string `json:"error_code"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Detail, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Detail)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, title, detail string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Title:      title,
		Detail:     detail,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code, title, detail string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Title:      title,
		Detail:     detail,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Transaction lifecycle (TRX) ----

func TransactionNotFound(transactionID string) *AppError {
	return New("TRX_001", "Transaction not found",
		fmt.Sprintf("Transaction with id %s not found", transactionID), http.StatusNotFound)
}

func AlreadyProcessed(transactionID string) *AppError {
	return New("TRX_002", "Transaction already processed",
		fmt.Sprintf("Transaction %s has already been processed", transactionID), http.StatusConflict)
}

func InvalidState(transactionID, status string) *AppError {
	return New("TRX_003", "Invalid transaction status",
		fmt.Sprintf("Transaction %s is in status %s", transactionID, status), http.StatusConflict)
}

func ConcurrentModification(transactionID string, err error) *AppError {
	return Wrap("TRX_004", "Concurrent modification",
		fmt.Sprintf("Transaction %s was modified concurrently", transactionID), http.StatusConflict, err)
}

// ---- Request validation (REQ) ----

func InvalidRequest(detail string) *AppError {
	return New("REQ_001", "Bad request", detail, http.StatusBadRequest)
}

func PaymentMethodNotFound(paymentMethodID string) *AppError {
	return New("REQ_002", "Payment method not found",
		fmt.Sprintf("Payment method %s not found", paymentMethodID), http.StatusNotFound)
}

func NotImplemented(detail string) *AppError {
	return New("REQ_003", "Not implemented", detail, http.StatusNotImplemented)
}

// ---- Upstream gateways (GW) ----

func BadGateway(detail string, err error) *AppError {
	return Wrap("GW_001", "Bad gateway", detail, http.StatusBadGateway, err)
}

func GatewayTimeout(detail string, err error) *AppError {
	return Wrap("GW_002", "Gateway timeout", detail, http.StatusGatewayTimeout, err)
}

func MissingPSPConfiguration(pspID string) *AppError {
	return New("GW_003", "Bad gateway",
		fmt.Sprintf("Missing redirect configuration for PSP %s", pspID), http.StatusBadGateway)
}

// FaultCategory classifies a fault code returned by the payment hub.
type FaultCategory string

const (
	FaultConfiguration FaultCategory = "CONFIGURATION"
	FaultValidation    FaultCategory = "VALIDATION"
	FaultGateway       FaultCategory = "GATEWAY"
	FaultTimeout       FaultCategory = "TIMEOUT"
	FaultPaymentStatus FaultCategory = "PAYMENT_STATUS"
)

// UpstreamFault maps a categorised hub fault to its HTTP status.
func UpstreamFault(category FaultCategory, faultCode string) *AppError {
	status := http.StatusBadGateway
	switch category {
	case FaultValidation:
		status = http.StatusNotFound
	case FaultPaymentStatus:
		status = http.StatusConflict
	case FaultTimeout:
		status = http.StatusGatewayTimeout
	}
	return New("NODO_"+string(category), "Payment hub fault", faultCode, status)
}

// ---- Rate limiting and authentication ----

func RateLimitExceeded() *AppError {
	return New("RATE_001", "Too many requests", "Rate limit exceeded", http.StatusTooManyRequests)
}

func InvalidToken() *AppError {
	return New("AUTH_001", "Unauthorized", "Invalid or expired transaction token", http.StatusUnauthorized)
}

// ---- System (SYS) ----

// ProcessingError wraps an unexpected failure. Callers pick 422 or 500 at the HTTP edge.
func ProcessingError(detail string, err error) *AppError {
	return Wrap("SYS_001", "Processing error", detail, http.StatusInternalServerError, err)
}

func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal server error", "Internal server error", http.StatusInternalServerError, err)
}

func EncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Internal server error", "Confidential data service failure", http.StatusInternalServerError, err)
}
