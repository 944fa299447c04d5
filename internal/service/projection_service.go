package service

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"

	"github.com/rs/zerolog"
)

// ErrUnexpectedEvent is returned when an event reaches a projection that does not own it.
var ErrUnexpectedEvent = errors.New("unexpected event for projection")

// ProjectionService implements ports.Projector over the transactions view.
// Every handler only sets the fields its event owns, so re-delivering an
// event leaves the view unchanged.
type ProjectionService struct {
	views ports.TransactionViewRepository
	enc   ports.EncryptionService
	log   zerolog.Logger
}

func NewProjectionService(views ports.TransactionViewRepository, enc ports.EncryptionService, log zerolog.Logger) *ProjectionService {
	return &ProjectionService{views: views, enc: enc, log: log}
}

// Project routes event to its handler and stores the resulting view.
func (p *ProjectionService) Project(ctx context.Context, event domain.Event, legacyToken domain.PaymentToken) (*domain.TransactionView, error) {
	if e, ok := event.(domain.ActivationRequestedEvent); ok {
		return p.projectActivationRequested(ctx, e)
	}

	var mutate func(v *domain.TransactionView) error
	switch e := event.(type) {
	case domain.ActivatedEvent:
		mutate = func(v *domain.TransactionView) error { projectActivated(v, e); return nil }
	case domain.AuthorizationRequestedEvent:
		mutate = func(v *domain.TransactionView) error { projectAuthorizationRequested(v, e); return nil }
	case domain.AuthorizationCompletedEvent:
		mutate = func(v *domain.TransactionView) error { projectAuthorizationCompleted(v, e); return nil }
	case domain.ClosureSentEvent, domain.ClosureFailedEvent:
		mutate = func(v *domain.TransactionView) error { return projectClosure(v, event) }
	case domain.ClosureErrorEvent:
		mutate = func(v *domain.TransactionView) error { projectClosureError(v, e); return nil }
	case domain.UserReceiptAddedEvent:
		mutate = func(v *domain.TransactionView) error { projectUserReceipt(v, e); return nil }
	case domain.UserCanceledEvent:
		mutate = func(v *domain.TransactionView) error { projectUserCanceled(v); return nil }
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedEvent, event)
	}

	view, err := p.find(ctx, event.Meta().TransactionID.String(), legacyToken)
	if err != nil {
		return nil, err
	}
	if err := mutate(view); err != nil {
		return nil, err
	}
	if err := p.views.Save(ctx, view); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("saving view: %w", err))
	}

	p.log.Debug().
		Str("transaction_id", view.TransactionID).
		Str("event", string(event.Code())).
		Str("status", string(view.Status)).
		Msg("view updated")
	return view, nil
}

func (p *ProjectionService) find(ctx context.Context, transactionID string, legacyToken domain.PaymentToken) (*domain.TransactionView, error) {
	view, err := p.views.FindByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("finding view: %w", err))
	}
	if view == nil && legacyToken != "" {
		view, err = p.views.FindByPaymentToken(ctx, legacyToken.String())
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("finding view by payment token: %w", err))
		}
	}
	if view == nil {
		return nil, apperror.TransactionNotFound(transactionID)
	}
	return view, nil
}

func (p *ProjectionService) projectActivationRequested(ctx context.Context, e domain.ActivationRequestedEvent) (*domain.TransactionView, error) {
	id := e.TransactionID.String()
	existing, err := p.views.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("finding view: %w", err))
	}

	view := &domain.TransactionView{
		TransactionID:  id,
		ClientID:       e.Data.ClientID,
		Status:         domain.StatusActivationRequested,
		PaymentNotices: domain.NoticeViews(e.Data.PaymentNotices),
		Amount:         domain.TotalAmount(e.Data.PaymentNotices),
		CreationDate:   e.CreatedAt,
	}
	if existing != nil {
		view.Email = existing.Email
	} else {
		view.Email, err = p.enc.Encrypt(e.Data.Email.String())
		if err != nil {
			return nil, apperror.EncryptionFailure(err)
		}
	}

	if err := p.views.Save(ctx, view); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("saving view: %w", err))
	}
	return view, nil
}

func projectActivated(v *domain.TransactionView, e domain.ActivatedEvent) {
	v.Status = domain.StatusActivated
	v.PaymentNotices = domain.NoticeViews(e.Data.PaymentNotices)
	v.Amount = domain.TotalAmount(e.Data.PaymentNotices)
}

func projectAuthorizationRequested(v *domain.TransactionView, e domain.AuthorizationRequestedEvent) {
	fee := e.Data.Fee
	v.Status = domain.StatusAuthorizationRequested
	v.Fee = &fee
	v.PspID = e.Data.PspID
	v.PaymentGateway = e.Data.Gateway
	v.PaymentMethodName = e.Data.PaymentMethodName
	v.AuthorizationRequestID = e.Data.AuthorizationRequestID
}

func projectAuthorizationCompleted(v *domain.TransactionView, e domain.AuthorizationCompletedEvent) {
	v.Status = domain.StatusAuthorizationCompleted
	v.AuthorizationCode = e.Data.AuthorizationCode
	v.RRN = e.Data.RRN
	v.AuthorizationErrorCode = e.Data.ErrorCode
	v.GatewayAuthorizationStatus = e.Data.GatewayStatus
}

// projectClosure owns ClosureSentEvent and ClosureFailedEvent only.
func projectClosure(v *domain.TransactionView, event domain.Event) error {
	switch e := event.(type) {
	case domain.ClosureSentEvent:
		switch {
		case v.Status == domain.StatusCancellationRequested || v.Status == domain.StatusCanceled:
			v.Status = domain.StatusCanceled
		case e.Data.Outcome == domain.OutcomeOK:
			v.Status = domain.StatusClosed
			v.SendPaymentResultOutcome = domain.ReceiptNotReceived
		default:
			v.Status = domain.StatusUnauthorized
		}
	case domain.ClosureFailedEvent:
		v.Status = domain.StatusUnauthorized
	default:
		return fmt.Errorf("%w: closure projection received %s", ErrUnexpectedEvent, event.Code())
	}
	v.ClosureErrorReason = ""
	return nil
}

func projectClosureError(v *domain.TransactionView, e domain.ClosureErrorEvent) {
	v.Status = domain.StatusClosureError
	v.ClosureErrorReason = e.Data.Reason
}

func projectUserReceipt(v *domain.TransactionView, e domain.UserReceiptAddedEvent) {
	if e.Data.Outcome == domain.OutcomeOK {
		v.Status = domain.StatusNotifiedOK
		v.SendPaymentResultOutcome = domain.ReceiptOK
		return
	}
	v.Status = domain.StatusNotifiedKO
	v.SendPaymentResultOutcome = domain.ReceiptKO
}

func projectUserCanceled(v *domain.TransactionView) {
	v.Status = domain.StatusCancellationRequested
}
