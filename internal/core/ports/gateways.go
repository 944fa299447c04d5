package ports

//go:generate mockgen -source=gateways.go -destination=mocks/gateways_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/domain"

	"github.com/shopspring/decimal"
)

// GatewayError is a non-2xx answer or a transport failure from an upstream
// gateway. StatusCode is 0 when no HTTP response was received.
type GatewayError struct {
	Gateway    string
	StatusCode int
	Body       string
	Timeout    bool
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: transport error: %v", e.Gateway, e.Err)
	}
	return fmt.Sprintf("%s: http %d", e.Gateway, e.StatusCode)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NodoFaultError is a business fault answered by the payment hub.
type NodoFaultError struct {
	FaultCode   string
	Description string
}

func (e *NodoFaultError) Error() string {
	return fmt.Sprintf("nodo fault %s: %s", e.FaultCode, e.Description)
}

// --- Payment hub ---

type ActivatePaymentNoticeRequest struct {
	TransactionID       domain.TransactionID
	RptID               domain.RptID
	IdempotencyKey      domain.IdempotencyKey
	Amount              domain.Amount
	PaymentTokenTimeout time.Duration
}

type ActivatePaymentNoticeResponse struct {
	PaymentToken domain.PaymentToken
	TotalAmount  domain.Amount
	Description  string
}

type ClosePaymentRequest struct {
	TransactionID  string
	PaymentTokens  []string
	Outcome        domain.Outcome
	IDPSP          string
	IDBrokerPSP    string
	IDChannel      string
	PaymentMethod  string
	TotalAmount    decimal.Decimal // euros
	Fee            decimal.Decimal // euros
	Timestamp      time.Time
	AdditionalInfo map[string]string
}

type ClosePaymentResponse struct {
	Outcome domain.Outcome
}

// NodoClient talks to the payment hub.
type NodoClient interface {
	ActivatePaymentNotice(ctx context.Context, req ActivatePaymentNoticeRequest) (*ActivatePaymentNoticeResponse, error)
	ClosePayment(ctx context.Context, req ClosePaymentRequest) (*ClosePaymentResponse, error)
}

// --- Payment gateways ---

// CardData is forwarded to the gateway as is and must never be logged.
type CardData struct {
	Pan         string
	CVV         string
	ExpiryDate  string // yyyyMM
	HolderName  string
	Brand       string
	ThreeDsData string
}

type PGSAuthorizationRequest struct {
	Gateway                domain.PaymentGateway
	TransactionID          string
	AuthorizationRequestID string
	GrandTotal             domain.Amount
	Description            string
	PaymentChannel         string
	IdempotencyKey         string
	AccountEmail           string
	Card                   *CardData
	MDCInfo                map[string]string
}

type PGSAuthorizationResponse struct {
	RequestID        string
	AuthorizationURL string
}

// PGSClient requests authorizations to the PostePay, XPAY and VPOS gateways.
type PGSClient interface {
	RequestAuthorization(ctx context.Context, req PGSAuthorizationRequest) (*PGSAuthorizationResponse, error)
}

type NPGSessionRequest struct {
	CorrelationID   string
	OrderID         string
	Amount          domain.Amount
	Language        string
	ResultURL       string
	NotificationURL string
	CancelURL       string
}

type NPGSession struct {
	SessionID     string
	SecurityToken string
}

type NPGConfirmRequest struct {
	CorrelationID string
	SessionID     string
	GrandTotal    domain.Amount
}

type NPGConfirmResponse struct {
	State string
	URL   string
}

// NPGClient drives the NPG session based authorization.
type NPGClient interface {
	CreateSession(ctx context.Context, req NPGSessionRequest) (*NPGSession, error)
	ConfirmPayment(ctx context.Context, req NPGConfirmRequest) (*NPGConfirmResponse, error)
}

type RedirectURLRequest struct {
	TransactionID   string
	PaymentMethodID string
	Amount          domain.Amount
	Description     string
	TouchPoint      string
	ReturnURL       string
	Timeout         time.Duration
}

type RedirectURLResponse struct {
	URL              string
	PspTransactionID string
	Timeout          time.Duration
}

// RedirectClient talks to one redirect-style PSP.
type RedirectClient interface {
	CreateRedirectURL(ctx context.Context, req RedirectURLRequest) (*RedirectURLResponse, error)
}

// RedirectClientRegistry hands out one RedirectClient per PSP.
type RedirectClientRegistry interface {
	ClientFor(pspID string) (RedirectClient, error)
}

// PaymentMethodsClient resolves payment methods; nil, nil when unknown.
type PaymentMethodsClient interface {
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
}
