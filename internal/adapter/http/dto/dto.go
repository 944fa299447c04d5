package dto

import (
	"encoding/json"
	"time"

	"ecommerce-transactions/internal/core/domain"
)

// PaymentNoticeRequest is one notice to pay.
type PaymentNoticeRequest struct {
	RptID  string `json:"rptId" binding:"required,rpt_id"`
	Amount int64  `json:"amount" binding:"required,gt=0,lte=99999999"`
}

// NewTransactionRequest is the body of POST /transactions.
type NewTransactionRequest struct {
	PaymentNotices []PaymentNoticeRequest `json:"paymentNotices" binding:"required,min=1,max=5,dive"`
	Email          string                 `json:"email" binding:"required,email,max=256"`
}

// NewTransactionResponse is the view of the created transaction plus its auth token.
type NewTransactionResponse struct {
	*domain.TransactionView
	AuthToken string `json:"authToken"`
}

// AuthorizationRequest is the body of POST /transactions/{id}/auth-requests.
type AuthorizationRequest struct {
	Amount              int64           `json:"amount" binding:"required,gt=0"`
	Fee                 int64           `json:"fee" binding:"gte=0"`
	PaymentInstrumentID string          `json:"paymentInstrumentId" binding:"required,max=64"`
	PspID               string          `json:"pspId" binding:"required,max=64"`
	Language            string          `json:"language" binding:"omitempty,len=2"`
	Details             json.RawMessage `json:"details"`
}

// AuthorizationResponse tells the client where to complete the payment.
type AuthorizationResponse struct {
	AuthorizationURL       string `json:"authorizationUrl"`
	AuthorizationRequestID string `json:"authorizationRequestId"`
}

// CardAuthorizationDetails carries card data for XPAY and VPOS.
type CardAuthorizationDetails struct {
	Pan         string `json:"pan" binding:"required,numeric,min=12,max=19"`
	CVV         string `json:"cvv" binding:"required,numeric,min=3,max=4"`
	ExpiryDate  string `json:"expiryDate" binding:"required,numeric,len=6"`
	HolderName  string `json:"holderName" binding:"max=128"`
	Brand       string `json:"brand" binding:"required,max=32"`
	ThreeDsData string `json:"threeDsData"`
}

type PostePayAuthorizationDetails struct {
	AccountEmail string `json:"accountEmail" binding:"omitempty,email"`
}

type NPGCardsAuthorizationDetails struct {
	OrderID string `json:"orderId" binding:"required,max=64"`
}

// UpdateAuthorizationRequest is the gateway callback body of PATCH auth-requests.
type UpdateAuthorizationRequest struct {
	TimestampOperation time.Time       `json:"timestampOperation"`
	OutcomeGateway     json.RawMessage `json:"outcomeGateway" binding:"required"`
}

// OutcomeGateway is the union of every gateway outcome shape, told apart by
// PaymentGatewayType.
type OutcomeGateway struct {
	PaymentGatewayType string `json:"paymentGatewayType"`
	Outcome            string `json:"outcome"`
	AuthorizationCode  string `json:"authorizationCode"`
	RRN                string `json:"rrn"`
	ErrorCode          string `json:"errorCode"`
	OperationResult    string `json:"operationResult"`
	OrderID            string `json:"orderId"`
	OperationID        string `json:"operationId"`
	PaymentEndToEndID  string `json:"paymentEndToEndId"`
	PspTransactionID   string `json:"pspTransactionId"`
	PspID              string `json:"pspId"`
}

// UserReceiptPayment identifies one paid notice in a receipt.
type UserReceiptPayment struct {
	PaymentToken string `json:"paymentToken" binding:"required,max=35"`
}

// AddUserReceiptRequest is the body of POST /transactions/{id}/user-receipts.
type AddUserReceiptRequest struct {
	Outcome     string               `json:"outcome" binding:"required,oneof=OK KO"`
	PaymentDate time.Time            `json:"paymentDate" binding:"required"`
	Payments    []UserReceiptPayment `json:"payments" binding:"required,min=1,dive"`
}

type AddUserReceiptResponse struct {
	Outcome string `json:"outcome"`
}
