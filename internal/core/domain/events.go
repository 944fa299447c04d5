package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventCode is the persisted discriminator of a transaction event.
type EventCode string

const (
	EventActivationRequested    EventCode = "TRANSACTION_ACTIVATION_REQUESTED_EVENT"
	EventActivated              EventCode = "TRANSACTION_ACTIVATED_EVENT"
	EventAuthorizationRequested EventCode = "TRANSACTION_AUTHORIZATION_REQUESTED_EVENT"
	EventAuthorizationCompleted EventCode = "TRANSACTION_AUTHORIZATION_COMPLETED_EVENT"
	EventClosureSent            EventCode = "TRANSACTION_CLOSED_EVENT"
	EventClosureFailed          EventCode = "TRANSACTION_CLOSURE_FAILED_EVENT"
	EventClosureError           EventCode = "TRANSACTION_CLOSURE_ERROR_EVENT"
	EventUserReceiptAdded       EventCode = "TRANSACTION_USER_RECEIPT_ADDED_EVENT"
	EventUserCanceled           EventCode = "TRANSACTION_USER_CANCELED_EVENT"
)

// EventMeta is carried by every event.
type EventMeta struct {
	EventID       uuid.UUID
	TransactionID TransactionID
	CreatedAt     time.Time
}

// NewEventMeta stamps a fresh event id and the current time.
func NewEventMeta(transactionID TransactionID) EventMeta {
	return EventMeta{
		EventID:       uuid.New(),
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}
}

func (m EventMeta) Meta() EventMeta { return m }

// Event is an immutable fact about a transaction.
type Event interface {
	Meta() EventMeta
	Code() EventCode
}

type ActivationRequestedData struct {
	PaymentNotices      []PaymentNotice `json:"paymentNotices"`
	Email               Email           `json:"email"`
	ClientID            ClientID        `json:"clientId"`
	PaymentTokenTimeout int             `json:"paymentTokenValiditySeconds"`
}

type ActivationRequestedEvent struct {
	EventMeta
	Data ActivationRequestedData
}

func (ActivationRequestedEvent) Code() EventCode { return EventActivationRequested }

type ActivatedData struct {
	PaymentNotices []PaymentNotice `json:"paymentNotices"`
	IdempotencyKey IdempotencyKey  `json:"idempotencyKey"`
}

type ActivatedEvent struct {
	EventMeta
	Data ActivatedData
}

func (ActivatedEvent) Code() EventCode { return EventActivated }

type AuthorizationRequestData struct {
	Amount                 Amount         `json:"amount"`
	Fee                    Amount         `json:"fee"`
	PaymentInstrumentID    string         `json:"paymentInstrumentId"`
	PspID                  string         `json:"pspId"`
	PaymentTypeCode        string         `json:"paymentTypeCode"`
	PaymentMethodName      string         `json:"paymentMethodName"`
	AuthorizationRequestID string         `json:"authorizationRequestId"`
	Gateway                PaymentGateway `json:"paymentGateway"`
}

// GrandTotal is what the gateway charges: notices plus PSP fee.
func (d AuthorizationRequestData) GrandTotal() Amount {
	return d.Amount + d.Fee
}

type AuthorizationRequestedEvent struct {
	EventMeta
	Data AuthorizationRequestData
}

func (AuthorizationRequestedEvent) Code() EventCode { return EventAuthorizationRequested }

type AuthorizationCompletedData struct {
	AuthorizationCode  string    `json:"authorizationCode,omitempty"`
	RRN                string    `json:"rrn,omitempty"`
	OperationTimestamp time.Time `json:"timestampOperation"`
	Result             Outcome   `json:"authorizationResultDto"`
	ErrorCode          string    `json:"errorCode,omitempty"`
	GatewayStatus      string    `json:"gatewayAuthorizationStatus,omitempty"`
}

type AuthorizationCompletedEvent struct {
	EventMeta
	Data AuthorizationCompletedData
}

func (AuthorizationCompletedEvent) Code() EventCode { return EventAuthorizationCompleted }

// ClosureData is the hub answer to a closure request.
type ClosureData struct {
	Outcome Outcome `json:"responseOutcome"`
}

// ClosureSentEvent records a closure the hub acknowledged for an authorized payment
// or for a cancellation.
type ClosureSentEvent struct {
	EventMeta
	Data ClosureData
}

func (ClosureSentEvent) Code() EventCode { return EventClosureSent }

// ClosureFailedEvent records a KO closure of an unauthorized payment.
type ClosureFailedEvent struct {
	EventMeta
	Data ClosureData
}

func (ClosureFailedEvent) Code() EventCode { return EventClosureFailed }

type ClosureErrorData struct {
	Reason     string `json:"reason"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
}

// ClosureErrorEvent records that the closure could not be delivered to the hub.
type ClosureErrorEvent struct {
	EventMeta
	Data ClosureErrorData
}

func (ClosureErrorEvent) Code() EventCode { return EventClosureError }

type UserReceiptData struct {
	Outcome     Outcome   `json:"responseOutcome"`
	PaymentDate time.Time `json:"paymentDate"`
}

type UserReceiptAddedEvent struct {
	EventMeta
	Data UserReceiptData
}

func (UserReceiptAddedEvent) Code() EventCode { return EventUserReceiptAdded }

type UserCanceledEvent struct {
	EventMeta
}

func (UserCanceledEvent) Code() EventCode { return EventUserCanceled }
