package ports

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"
	"time"

	"ecommerce-transactions/internal/core/domain"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TokenService issues and validates the per-transaction JWT.
type TokenService interface {
	Generate(claims TransactionClaims) (string, time.Time, error)
	Validate(tokenString string) (*TransactionClaims, error)
}

// TransactionClaims holds the parsed JWT claims.
type TransactionClaims struct {
	TransactionID string
	RptIDs        []string
	ClientID      string
}

// Projector applies an event to the read model. legacyToken is used to find
// views stored before event sourcing, keyed by payment token.
type Projector interface {
	Project(ctx context.Context, event domain.Event, legacyToken domain.PaymentToken) (*domain.TransactionView, error)
}

// --- Service Ports (Business Logic) ---

// TransactionService holds the transaction commands and queries.
type TransactionService interface {
	NewTransaction(ctx context.Context, req NewTransactionRequest) (*NewTransactionResult, error)
	GetTransaction(ctx context.Context, transactionID domain.TransactionID) (*domain.TransactionView, error)
	RequestAuthorization(ctx context.Context, req AuthorizationRequest) (*AuthorizationResponse, error)
	UpdateAuthorization(ctx context.Context, req UpdateAuthorizationRequest) (*domain.TransactionView, error)
	AddUserReceipt(ctx context.Context, req AddUserReceiptRequest) (*domain.TransactionView, error)
	CancelTransaction(ctx context.Context, transactionID domain.TransactionID) error
}

// ClosureRetryService re-attempts closures delivered by the retry queue.
type ClosureRetryService interface {
	RetryClosure(ctx context.Context, msg RetryMessage) error
}

type NoticeRequest struct {
	RptID  domain.RptID
	Amount domain.Amount
}

// NewTransactionRequest holds validated input for a new transaction.
type NewTransactionRequest struct {
	PaymentNotices []NoticeRequest
	Email          domain.Email
	ClientID       domain.ClientID
}

type NewTransactionResult struct {
	View      *domain.TransactionView
	AuthToken string
}

// AuthorizationDetails is one of CardDetails, PostePayDetails, NPGCardDetails, RedirectDetails.
type AuthorizationDetails interface {
	DetailType() string
}

type CardDetails struct {
	Card CardData
}

func (CardDetails) DetailType() string { return "card" }

type PostePayDetails struct {
	AccountEmail string
}

func (PostePayDetails) DetailType() string { return "postepay" }

type NPGCardDetails struct {
	OrderID string
}

func (NPGCardDetails) DetailType() string { return "cards" }

type RedirectDetails struct{}

func (RedirectDetails) DetailType() string { return "redirect" }

// AuthorizationRequest holds validated input for an authorization request.
type AuthorizationRequest struct {
	TransactionID       domain.TransactionID
	Amount              domain.Amount
	Fee                 domain.Amount
	PaymentInstrumentID string
	PspID               string
	Language            string
	PgsID               string // X-Pgs-Id header
	Details             AuthorizationDetails
}

type AuthorizationResponse struct {
	AuthorizationURL       string
	AuthorizationRequestID string
}

type UpdateAuthorizationRequest struct {
	TransactionID      domain.TransactionID
	Outcome            domain.GatewayOutcome
	TimestampOperation time.Time
}

type AddUserReceiptRequest struct {
	TransactionID domain.TransactionID
	Outcome       domain.Outcome
	PaymentDate   time.Time
	PaymentTokens []string
}
