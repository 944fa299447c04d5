package domain

import "time"

// Transaction is the event-sourced aggregate. The concrete types form a closed
// set; each one embeds its predecessor so earlier attributes are carried forward.
type Transaction interface {
	CurrentStatus() TransactionStatus
	// WithStatus returns a copy that differs only in status.
	WithStatus(status TransactionStatus) Transaction
	transaction()
}

// EmptyTransaction is the fold seed: no event has been applied yet.
type EmptyTransaction struct{}

func (EmptyTransaction) CurrentStatus() TransactionStatus { return "" }
func (t EmptyTransaction) WithStatus(TransactionStatus) Transaction { return t }
func (EmptyTransaction) transaction() {}

type TransactionActivationRequested struct {
	TransactionID       TransactionID
	PaymentNotices      []PaymentNotice
	Email               Email
	ClientID            ClientID
	PaymentTokenTimeout int
	CreatedAt           time.Time
	Status              TransactionStatus
}

func (t TransactionActivationRequested) CurrentStatus() TransactionStatus { return t.Status }
func (TransactionActivationRequested) transaction() {}

func (t TransactionActivationRequested) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionActivated struct {
	TransactionActivationRequested
	IdempotencyKey IdempotencyKey
}

func (t TransactionActivated) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionWithRequestedAuthorization struct {
	TransactionActivated
	AuthorizationRequest AuthorizationRequestData
}

func (t TransactionWithRequestedAuthorization) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionWithCompletedAuthorization struct {
	TransactionWithRequestedAuthorization
	Authorization AuthorizationCompletedData
}

func (t TransactionWithCompletedAuthorization) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

// TransactionWithClosureError waits for a retried closure.
type TransactionWithClosureError struct {
	TransactionWithCompletedAuthorization
	ClosureError ClosureErrorData
}

func (t TransactionWithClosureError) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionClosed struct {
	TransactionWithCompletedAuthorization
	ClosureOutcome Outcome
}

func (t TransactionClosed) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionWithUserReceipt struct {
	TransactionClosed
	Receipt UserReceiptData
}

func (t TransactionWithUserReceipt) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionCancellationRequested struct {
	TransactionActivated
}

func (t TransactionCancellationRequested) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

type TransactionCanceled struct {
	TransactionCancellationRequested
	ClosureOutcome Outcome
}

func (t TransactionCanceled) WithStatus(s TransactionStatus) Transaction {
	t.Status = s
	return t
}

// Apply returns the transaction that results from applying event to tx.
// Events that are not legal for the current variant leave tx unchanged: a
// replayed or out-of-order event is a no-op for the aggregate, and command
// handlers reject illegal commands before emitting anything.
func Apply(tx Transaction, event Event) Transaction {
	switch t := tx.(type) {
	case EmptyTransaction:
		if e, ok := event.(ActivationRequestedEvent); ok {
			return TransactionActivationRequested{
				TransactionID:       e.TransactionID,
				PaymentNotices:      e.Data.PaymentNotices,
				Email:               e.Data.Email,
				ClientID:            e.Data.ClientID,
				PaymentTokenTimeout: e.Data.PaymentTokenTimeout,
				CreatedAt:           e.CreatedAt,
				Status:              StatusActivationRequested,
			}
		}
	case TransactionActivationRequested:
		if e, ok := event.(ActivatedEvent); ok {
			next := TransactionActivated{TransactionActivationRequested: t, IdempotencyKey: e.Data.IdempotencyKey}
			next.PaymentNotices = e.Data.PaymentNotices
			next.Status = StatusActivated
			return next
		}
	case TransactionActivated:
		switch e := event.(type) {
		case AuthorizationRequestedEvent:
			next := TransactionWithRequestedAuthorization{TransactionActivated: t, AuthorizationRequest: e.Data}
			next.Status = StatusAuthorizationRequested
			return next
		case UserCanceledEvent:
			next := TransactionCancellationRequested{TransactionActivated: t}
			next.Status = StatusCancellationRequested
			return next
		}
	case TransactionWithRequestedAuthorization:
		if e, ok := event.(AuthorizationCompletedEvent); ok {
			next := TransactionWithCompletedAuthorization{TransactionWithRequestedAuthorization: t, Authorization: e.Data}
			next.Status = StatusAuthorizationCompleted
			return next
		}
	case TransactionWithCompletedAuthorization:
		switch e := event.(type) {
		case ClosureSentEvent:
			return closed(t, e.Data.Outcome, false)
		case ClosureFailedEvent:
			return closed(t, e.Data.Outcome, true)
		case ClosureErrorEvent:
			next := TransactionWithClosureError{TransactionWithCompletedAuthorization: t, ClosureError: e.Data}
			next.Status = StatusClosureError
			return next
		}
	case TransactionWithClosureError:
		switch e := event.(type) {
		case ClosureSentEvent:
			return closed(t.TransactionWithCompletedAuthorization, e.Data.Outcome, false)
		case ClosureFailedEvent:
			return closed(t.TransactionWithCompletedAuthorization, e.Data.Outcome, true)
		}
	case TransactionClosed:
		if e, ok := event.(UserReceiptAddedEvent); ok {
			next := TransactionWithUserReceipt{TransactionClosed: t, Receipt: e.Data}
			next.Status = StatusNotifiedOK
			if e.Data.Outcome != OutcomeOK {
				next.Status = StatusNotifiedKO
			}
			return next
		}
	case TransactionCancellationRequested:
		if e, ok := event.(ClosureSentEvent); ok {
			next := TransactionCanceled{TransactionCancellationRequested: t, ClosureOutcome: e.Data.Outcome}
			next.Status = StatusCanceled
			return next
		}
	case TransactionWithUserReceipt, TransactionCanceled:
		// terminal
	}
	return tx
}

// closed maps a hub answer to the Closed variant. A hub KO on an authorized
// payment leaves it unauthorized just like a KO closure.
func closed(t TransactionWithCompletedAuthorization, outcome Outcome, failed bool) TransactionClosed {
	next := TransactionClosed{TransactionWithCompletedAuthorization: t, ClosureOutcome: outcome}
	next.Status = StatusClosed
	if failed || outcome != OutcomeOK {
		next.Status = StatusUnauthorized
	}
	return next
}

// Rehydrate folds events over the empty transaction.
func Rehydrate(events []Event) Transaction {
	var tx Transaction = EmptyTransaction{}
	for _, e := range events {
		tx = Apply(tx, e)
	}
	return tx
}

// ActivatedOf returns the activation attributes of any variant past activation.
func ActivatedOf(tx Transaction) (TransactionActivated, bool) {
	switch t := tx.(type) {
	case TransactionActivated:
		return t, true
	case TransactionWithRequestedAuthorization:
		return t.TransactionActivated, true
	case TransactionWithCompletedAuthorization:
		return t.TransactionActivated, true
	case TransactionWithClosureError:
		return t.TransactionActivated, true
	case TransactionClosed:
		return t.TransactionActivated, true
	case TransactionWithUserReceipt:
		return t.TransactionActivated, true
	case TransactionCancellationRequested:
		return t.TransactionActivated, true
	case TransactionCanceled:
		return t.TransactionActivated, true
	}
	return TransactionActivated{}, false
}

// IDOf returns the transaction id, or the zero id for the empty transaction.
func IDOf(tx Transaction) TransactionID {
	if t, ok := tx.(TransactionActivationRequested); ok {
		return t.TransactionID
	}
	if t, ok := ActivatedOf(tx); ok {
		return t.TransactionID
	}
	return TransactionID{}
}
