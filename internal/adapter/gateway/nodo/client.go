package nodo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecommerce-transactions/internal/adapter/gateway"
	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"

	"github.com/shopspring/decimal"
)

const (
	activatePath = "/nodo/nodo-per-pm/v1/activatePaymentNotice"
	closePath    = "/nodo/nodo-per-pm/v2/closepayment"
	outcomeOK    = "OK"
)

// Settings identifies this service towards the hub.
type Settings struct {
	BaseURL     string
	IDPSP       string
	IDBrokerPSP string
	IDChannel   string
}

// Client implements ports.NodoClient over the hub JSON API.
type Client struct {
	caller   gateway.Caller
	settings Settings
}

func NewClient(httpClient *http.Client, settings Settings) *Client {
	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	return &Client{
		caller:   gateway.Caller{Name: "nodo", Client: httpClient},
		settings: settings,
	}
}

type qrCode struct {
	FiscalCode   string `json:"fiscalCode"`
	NoticeNumber string `json:"noticeNumber"`
}

type activateRequest struct {
	IDPSP          string          `json:"idPSP"`
	IDBrokerPSP    string          `json:"idBrokerPSP"`
	IDChannel      string          `json:"idChannel"`
	QRCode         qrCode          `json:"qrCode"`
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotencyKey"`
	ExpirationTime int64           `json:"expirationTime"` // milliseconds
	PaymentNote    string          `json:"paymentNote"`
}

type fault struct {
	FaultCode   string `json:"faultCode"`
	Description string `json:"description"`
}

type activateResponse struct {
	Outcome            string          `json:"outcome"`
	PaymentToken       string          `json:"paymentToken"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaymentDescription string          `json:"paymentDescription"`
	Fault              *fault          `json:"fault,omitempty"`
}

// ActivatePaymentNotice locks the notice at the hub and returns its payment token.
func (c *Client) ActivatePaymentNotice(ctx context.Context, req ports.ActivatePaymentNoticeRequest) (*ports.ActivatePaymentNoticeResponse, error) {
	body := activateRequest{
		IDPSP:          c.settings.IDPSP,
		IDBrokerPSP:    c.settings.IDBrokerPSP,
		IDChannel:      c.settings.IDChannel,
		QRCode:         qrCode{FiscalCode: req.RptID.FiscalCode(), NoticeNumber: req.RptID.NoticeNumber()},
		Amount:         centsToEuros(req.Amount),
		IdempotencyKey: req.IdempotencyKey.String(),
		ExpirationTime: req.PaymentTokenTimeout.Milliseconds(),
		PaymentNote:    req.TransactionID.String(),
	}

	var resp activateResponse
	if err := c.caller.PostJSON(ctx, c.settings.BaseURL+activatePath, nil, body, &resp); err != nil {
		return nil, err
	}

	if resp.Outcome != outcomeOK {
		return nil, faultError(resp.Fault)
	}

	token, err := domain.NewPaymentToken(resp.PaymentToken)
	if err != nil {
		return nil, fmt.Errorf("nodo returned %w", err)
	}

	return &ports.ActivatePaymentNoticeResponse{
		PaymentToken: token,
		TotalAmount:  eurosToCents(resp.TotalAmount),
		Description:  resp.PaymentDescription,
	}, nil
}

type closeRequest struct {
	PaymentTokens      []string          `json:"paymentTokens"`
	Outcome            string            `json:"outcome"`
	IDPSP              string            `json:"idPSP"`
	IDBrokerPSP        string            `json:"idBrokerPSP"`
	IDChannel          string            `json:"idChannel"`
	PaymentMethod      string            `json:"paymentMethod,omitempty"`
	TransactionID      string            `json:"transactionId"`
	TotalAmount        decimal.Decimal   `json:"totalAmount"`
	Fee                decimal.Decimal   `json:"fee"`
	TimestampOperation string            `json:"timestampOperation,omitempty"`
	AdditionalInfo     map[string]string `json:"additionalPaymentInformations,omitempty"`
}

type closeResponse struct {
	Outcome string `json:"outcome"`
}

// ClosePayment reports the final outcome of the payment to the hub.
func (c *Client) ClosePayment(ctx context.Context, req ports.ClosePaymentRequest) (*ports.ClosePaymentResponse, error) {
	body := closeRequest{
		PaymentTokens:  req.PaymentTokens,
		Outcome:        string(req.Outcome),
		IDPSP:          req.IDPSP,
		IDBrokerPSP:    req.IDBrokerPSP,
		IDChannel:      req.IDChannel,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
		TotalAmount:    req.TotalAmount,
		Fee:            req.Fee,
		AdditionalInfo: req.AdditionalInfo,
	}
	if !req.Timestamp.IsZero() {
		body.TimestampOperation = req.Timestamp.UTC().Format(time.RFC3339)
	}

	var resp closeResponse
	if err := c.caller.PostJSON(ctx, c.settings.BaseURL+closePath, nil, body, &resp); err != nil {
		return nil, err
	}

	switch resp.Outcome {
	case string(domain.OutcomeOK):
		return &ports.ClosePaymentResponse{Outcome: domain.OutcomeOK}, nil
	case string(domain.OutcomeKO):
		return &ports.ClosePaymentResponse{Outcome: domain.OutcomeKO}, nil
	default:
		return nil, &ports.GatewayError{
			Gateway:    "nodo",
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("unexpected close payment outcome %q", resp.Outcome),
		}
	}
}

func faultError(f *fault) error {
	if f == nil {
		return &ports.NodoFaultError{FaultCode: "PPT_SYSTEM_ERROR", Description: "KO outcome without fault"}
	}
	return &ports.NodoFaultError{FaultCode: f.FaultCode, Description: f.Description}
}

func centsToEuros(a domain.Amount) decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func eurosToCents(d decimal.Decimal) domain.Amount {
	return domain.Amount(d.Shift(2).Round(0).IntPart())
}
