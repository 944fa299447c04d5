package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ClosureSettings identifies this service towards the hub.
type ClosureSettings struct {
	IDPSP       string
	IDBrokerPSP string
	IDChannel   string
	MaxAttempts int
}

// closureFailure marks a hub call that did not produce a closure outcome.
type closureFailure struct {
	err error
}

func (f *closureFailure) Error() string { return "close payment: " + f.err.Error() }

func (f *closureFailure) Unwrap() error { return f.err }

// ClosureService sends closePayment to the hub and records its outcome.
type ClosureService struct {
	writer   eventWriter
	nodo     ports.NodoClient
	queue    ports.RetryQueue
	settings ClosureSettings
	log      zerolog.Logger
}

func NewClosureService(
	events ports.EventStore,
	projector ports.Projector,
	nodo ports.NodoClient,
	queue ports.RetryQueue,
	settings ClosureSettings,
	log zerolog.Logger,
) *ClosureService {
	return &ClosureService{
		writer:   eventWriter{events: events, projector: projector},
		nodo:     nodo,
		queue:    queue,
		settings: settings,
		log:      log,
	}
}

// Close closes a transaction whose authorization has just completed. When the
// hub cannot be reached a single ClosureError event is stored and a closure
// retry message is enqueued; the caller still gets the resulting view.
func (s *ClosureService) Close(ctx context.Context, tx domain.TransactionWithCompletedAuthorization, version int) (*domain.TransactionView, error) {
	view, err := s.send(ctx, tx, version)
	var failure *closureFailure
	if err == nil || !errors.As(err, &failure) {
		return view, err
	}
	return s.recordClosureError(ctx, tx, version, failure.err)
}

// RetryClosure handles a closure retry message. Any failure other than a
// client error (bad message, unknown or already closed transaction) is
// re-enqueued with the next attempt number until MaxAttempts is reached.
func (s *ClosureService) RetryClosure(ctx context.Context, msg ports.RetryMessage) error {
	id, err := domain.ParseTransactionID(msg.TransactionID)
	if err != nil {
		return apperror.InvalidRequest(fmt.Sprintf("Invalid transaction id %q in retry message", msg.TransactionID))
	}
	log := s.log.With().Str("transaction_id", msg.TransactionID).Int("attempt", msg.Attempt).Logger()

	err = s.retry(ctx, id, log)
	if err == nil || !retryable(err) {
		return err
	}

	next := msg.Attempt + 1
	if next > s.settings.MaxAttempts {
		log.Error().Err(err).Msg("closure retries exhausted")
		return nil
	}
	log.Warn().Err(err).Int("next_attempt", next).Msg("closure retry failed")
	retryMsg := ports.RetryMessage{TransactionID: msg.TransactionID, Attempt: next, TracingInfo: msg.TracingInfo}
	if err := s.queue.PublishClosureRetry(ctx, retryMsg); err != nil {
		return fmt.Errorf("re-enqueueing closure retry: %w", err)
	}
	return nil
}

func (s *ClosureService) retry(ctx context.Context, id domain.TransactionID, log zerolog.Logger) error {
	tx, version, err := s.writer.load(ctx, id)
	if err != nil {
		return err
	}
	switch tx.(type) {
	case domain.TransactionWithClosureError, domain.TransactionCancellationRequested:
	default:
		log.Info().Str("status", string(tx.CurrentStatus())).Msg("closure retry skipped")
		return nil
	}

	if _, err := s.send(ctx, tx, version); err != nil {
		return err
	}
	log.Info().Msg("closure retry succeeded")
	return nil
}

// retryable reports whether a later attempt may succeed where err failed.
func retryable(err error) bool {
	var failure *closureFailure
	if errors.As(err, &failure) {
		return true
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus >= http.StatusInternalServerError
	}
	return true
}

// send calls the hub and commits the closure outcome at version.
func (s *ClosureService) send(ctx context.Context, tx domain.Transaction, version int) (*domain.TransactionView, error) {
	req, err := s.closeRequest(tx)
	if err != nil {
		return nil, err
	}

	resp, err := s.nodo.ClosePayment(ctx, req)
	if err != nil {
		return nil, &closureFailure{err: err}
	}

	meta := domain.NewEventMeta(domain.IDOf(tx))
	var event domain.Event = domain.ClosureSentEvent{EventMeta: meta, Data: domain.ClosureData{Outcome: resp.Outcome}}
	if req.Outcome == domain.OutcomeKO {
		if _, canceled := tx.(domain.TransactionCancellationRequested); !canceled {
			event = domain.ClosureFailedEvent{EventMeta: meta, Data: domain.ClosureData{Outcome: resp.Outcome}}
		}
	}

	view, err := s.writer.commit(ctx, event, version, eventKey(meta.TransactionID, event.Code()), legacyTokenOf(tx))
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("transaction_id", meta.TransactionID.String()).
		Str("closure_outcome", string(req.Outcome)).
		Str("hub_outcome", string(resp.Outcome)).
		Msg("closure sent")
	return view, nil
}

func (s *ClosureService) closeRequest(tx domain.Transaction) (ports.ClosePaymentRequest, error) {
	activated, ok := domain.ActivatedOf(tx)
	if !ok {
		return ports.ClosePaymentRequest{}, apperror.InvalidState(domain.IDOf(tx).String(), string(tx.CurrentStatus()))
	}
	req := ports.ClosePaymentRequest{
		TransactionID: activated.TransactionID.String(),
		PaymentTokens: paymentTokens(activated.PaymentNotices),
		Outcome:       domain.OutcomeKO,
		IDPSP:         s.settings.IDPSP,
		IDBrokerPSP:   s.settings.IDBrokerPSP,
		IDChannel:     s.settings.IDChannel,
	}

	var completed domain.TransactionWithCompletedAuthorization
	switch t := tx.(type) {
	case domain.TransactionWithCompletedAuthorization:
		completed = t
	case domain.TransactionWithClosureError:
		completed = t.TransactionWithCompletedAuthorization
	case domain.TransactionCancellationRequested:
		return req, nil
	default:
		return ports.ClosePaymentRequest{}, apperror.InvalidState(activated.TransactionID.String(), string(tx.CurrentStatus()))
	}

	auth := completed.AuthorizationRequest
	req.Outcome = completed.Authorization.Result
	req.IDPSP = auth.PspID
	req.PaymentMethod = auth.PaymentTypeCode
	req.TotalAmount = euros(auth.GrandTotal())
	req.Fee = euros(auth.Fee)
	req.Timestamp = completed.Authorization.OperationTimestamp
	if req.Outcome == domain.OutcomeOK {
		req.AdditionalInfo = map[string]string{
			"authorizationCode": completed.Authorization.AuthorizationCode,
			"rrn":               completed.Authorization.RRN,
			"paymentGateway":    string(auth.Gateway),
			"tipoVersamento":    auth.PaymentTypeCode,
			"totalAmount":       req.TotalAmount.StringFixed(2),
			"fee":               req.Fee.StringFixed(2),
		}
	}
	return req, nil
}

func (s *ClosureService) recordClosureError(ctx context.Context, tx domain.TransactionWithCompletedAuthorization, version int, cause error) (*domain.TransactionView, error) {
	id := tx.TransactionID
	data := domain.ClosureErrorData{Reason: cause.Error()}
	var fault *ports.NodoFaultError
	if errors.As(cause, &fault) {
		data.Reason = fault.FaultCode
	}
	var gwErr *ports.GatewayError
	if errors.As(cause, &gwErr) {
		data.HTTPStatus = gwErr.StatusCode
	}

	s.log.Error().Err(cause).
		Str("transaction_id", id.String()).
		Int("http_status", data.HTTPStatus).
		Msg("closure failed")

	event := domain.ClosureErrorEvent{EventMeta: domain.NewEventMeta(id), Data: data}
	view, err := s.writer.commit(ctx, event, version, eventKey(id, event.Code()), legacyTokenOf(tx))
	if err != nil {
		return nil, err
	}

	msg := ports.RetryMessage{TransactionID: id.String(), Attempt: 1, TracingInfo: ports.TracingInfoFrom(ctx)}
	if err := s.queue.PublishClosureRetry(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("transaction_id", id.String()).Msg("enqueueing closure retry failed")
	}
	return view, nil
}

// eventKey is the event store idempotency key of an event that happens at
// most once per transaction.
func eventKey(id domain.TransactionID, code domain.EventCode) string {
	return id.String() + ":" + string(code)
}

func paymentTokens(notices []domain.PaymentNotice) []string {
	tokens := make([]string, 0, len(notices))
	for _, n := range notices {
		tokens = append(tokens, n.PaymentToken.String())
	}
	return tokens
}

// euros converts cents to a two decimal euro amount.
func euros(cents domain.Amount) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}
