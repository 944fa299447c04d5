package domain

// TransactionStatus is the lifecycle state shared by the aggregate and the read model.
type TransactionStatus string

const (
	StatusActivationRequested    TransactionStatus = "ACTIVATION_REQUESTED"
	StatusActivated              TransactionStatus = "ACTIVATED"
	StatusAuthorizationRequested TransactionStatus = "AUTHORIZATION_REQUESTED"
	StatusAuthorizationCompleted TransactionStatus = "AUTHORIZATION_COMPLETED"
	StatusClosed                 TransactionStatus = "CLOSED"
	StatusClosureError           TransactionStatus = "CLOSURE_ERROR"
	StatusUnauthorized           TransactionStatus = "UNAUTHORIZED"
	StatusNotifiedOK             TransactionStatus = "NOTIFIED_OK"
	StatusNotifiedKO             TransactionStatus = "NOTIFIED_KO"
	StatusCancellationRequested  TransactionStatus = "CANCELLATION_REQUESTED"
	StatusCanceled               TransactionStatus = "CANCELED"
)

// IsFinal reports whether no further lifecycle event is expected.
func (s TransactionStatus) IsFinal() bool {
	switch s {
	case StatusUnauthorized, StatusNotifiedOK, StatusNotifiedKO, StatusCanceled:
		return true
	}
	return false
}

// Outcome is an OK/KO result reported by the hub, a gateway or the receipt flow.
type Outcome string

const (
	OutcomeOK Outcome = "OK"
	OutcomeKO Outcome = "KO"
)

// ReceiptOutcome tracks the send-payment-result notification on the read model.
type ReceiptOutcome string

const (
	ReceiptNotReceived ReceiptOutcome = "NOT_RECEIVED"
	ReceiptOK          ReceiptOutcome = "OK"
	ReceiptKO          ReceiptOutcome = "KO"
)
