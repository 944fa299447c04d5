package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GatewaySettings holds the callback URLs and retry policy of the gateways.
type GatewaySettings struct {
	NPGResultURL      string
	NPGNotifyURL      string
	NPGCancelURL      string
	RedirectReturnURL string
	RedirectTimeout   time.Duration
	SessionRetry      RetryPolicy
}

// GatewayAuthorization is what a gateway answered to an authorization request.
type GatewayAuthorization struct {
	Gateway                domain.PaymentGateway
	AuthorizationURL       string
	AuthorizationRequestID string
}

// GatewayOrchestrator selects the gateway of an authorization request, builds
// the gateway specific request and normalizes the asynchronous outcome.
type GatewayOrchestrator struct {
	pgs       ports.PGSClient
	npg       ports.NPGClient
	redirects ports.RedirectClientRegistry
	settings  GatewaySettings
	log       zerolog.Logger
}

func NewGatewayOrchestrator(
	pgs ports.PGSClient,
	npg ports.NPGClient,
	redirects ports.RedirectClientRegistry,
	settings GatewaySettings,
	log zerolog.Logger,
) *GatewayOrchestrator {
	return &GatewayOrchestrator{
		pgs:       pgs,
		npg:       npg,
		redirects: redirects,
		settings:  settings,
		log:       log,
	}
}

// SelectGateway picks the gateway from the request details and the X-Pgs-Id header.
func SelectGateway(pgsID string, details ports.AuthorizationDetails) (domain.PaymentGateway, error) {
	switch details.(type) {
	case ports.PostePayDetails:
		return domain.GatewayPostePay, nil
	case ports.CardDetails:
		switch gw := domain.PaymentGateway(pgsID); gw {
		case domain.GatewayXPay, domain.GatewayVPOS:
			return gw, nil
		}
		return "", apperror.InvalidRequest(fmt.Sprintf("Unsupported X-Pgs-Id %q for card details", pgsID))
	case ports.NPGCardDetails:
		return domain.GatewayNPG, nil
	case ports.RedirectDetails:
		return domain.GatewayRedirect, nil
	case nil:
		return "", apperror.InvalidRequest("Missing authorization details")
	}
	return "", apperror.NotImplemented(fmt.Sprintf("Authorization details %q not supported", details.DetailType()))
}

// Authorize sends the authorization request to the selected gateway.
func (o *GatewayOrchestrator) Authorize(
	ctx context.Context,
	tx domain.TransactionActivated,
	req ports.AuthorizationRequest,
	gateway domain.PaymentGateway,
) (*GatewayAuthorization, error) {
	txID := tx.TransactionID.String()
	grandTotal := req.Amount + req.Fee

	var (
		result *GatewayAuthorization
		err    error
	)
	switch gateway {
	case domain.GatewayPostePay, domain.GatewayXPay, domain.GatewayVPOS:
		result, err = o.authorizePGS(ctx, tx, req, gateway, grandTotal)
	case domain.GatewayNPG:
		result, err = o.authorizeNPG(ctx, tx, req, grandTotal)
	case domain.GatewayRedirect:
		result, err = o.authorizeRedirect(ctx, tx, req, grandTotal)
	default:
		return nil, apperror.NotImplemented(fmt.Sprintf("Gateway %s not supported", gateway))
	}
	if err != nil {
		o.logGatewayFailure(txID, gateway, err)
		return nil, mapAuthorizationError(txID, err)
	}

	o.log.Info().
		Str("transaction_id", txID).
		Str("gateway", string(gateway)).
		Str("authorization_request_id", result.AuthorizationRequestID).
		Msg("authorization requested")
	return result, nil
}

func (o *GatewayOrchestrator) authorizePGS(
	ctx context.Context,
	tx domain.TransactionActivated,
	req ports.AuthorizationRequest,
	gateway domain.PaymentGateway,
	grandTotal domain.Amount,
) (*GatewayAuthorization, error) {
	pgsReq := ports.PGSAuthorizationRequest{
		Gateway:                gateway,
		TransactionID:          tx.TransactionID.String(),
		AuthorizationRequestID: uuid.NewString(),
		GrandTotal:             grandTotal,
		Description:            noticeDescription(tx),
		PaymentChannel:         string(tx.ClientID),
		IdempotencyKey:         tx.IdempotencyKey.String(),
		MDCInfo: map[string]string{
			"transactionId": tx.TransactionID.String(),
			"pspId":         req.PspID,
		},
	}
	switch d := req.Details.(type) {
	case ports.CardDetails:
		card := d.Card
		pgsReq.Card = &card
	case ports.PostePayDetails:
		pgsReq.AccountEmail = d.AccountEmail
	}

	resp, err := o.pgs.RequestAuthorization(ctx, pgsReq)
	if err != nil {
		return nil, err
	}
	return &GatewayAuthorization{
		Gateway:                gateway,
		AuthorizationURL:       resp.AuthorizationURL,
		AuthorizationRequestID: resp.RequestID,
	}, nil
}

func (o *GatewayOrchestrator) authorizeNPG(
	ctx context.Context,
	tx domain.TransactionActivated,
	req ports.AuthorizationRequest,
	grandTotal domain.Amount,
) (*GatewayAuthorization, error) {
	orderID := ""
	if d, ok := req.Details.(ports.NPGCardDetails); ok {
		orderID = d.OrderID
	}
	if orderID == "" {
		return nil, apperror.InvalidRequest("Missing orderId for NPG authorization")
	}
	correlationID := uuid.NewString()

	session, err := retry(ctx, o.settings.SessionRetry, func() (*ports.NPGSession, error) {
		s, err := o.npg.CreateSession(ctx, ports.NPGSessionRequest{
			CorrelationID:   correlationID,
			OrderID:         orderID,
			Amount:          grandTotal,
			Language:        req.Language,
			ResultURL:       o.settings.NPGResultURL,
			NotificationURL: o.settings.NPGNotifyURL,
			CancelURL:       o.settings.NPGCancelURL,
		})
		if err != nil && !isTransient(err) {
			return nil, backoff.Permanent(err)
		}
		return s, err
	})
	if err != nil {
		return nil, err
	}

	confirm, err := o.npg.ConfirmPayment(ctx, ports.NPGConfirmRequest{
		CorrelationID: correlationID,
		SessionID:     session.SessionID,
		GrandTotal:    grandTotal,
	})
	if err != nil {
		return nil, err
	}
	return &GatewayAuthorization{
		Gateway:                domain.GatewayNPG,
		AuthorizationURL:       confirm.URL,
		AuthorizationRequestID: orderID,
	}, nil
}

func (o *GatewayOrchestrator) authorizeRedirect(
	ctx context.Context,
	tx domain.TransactionActivated,
	req ports.AuthorizationRequest,
	grandTotal domain.Amount,
) (*GatewayAuthorization, error) {
	client, err := o.redirects.ClientFor(req.PspID)
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateRedirectURL(ctx, ports.RedirectURLRequest{
		TransactionID:   tx.TransactionID.String(),
		PaymentMethodID: req.PaymentInstrumentID,
		Amount:          grandTotal,
		Description:     noticeDescription(tx),
		TouchPoint:      string(tx.ClientID),
		ReturnURL:       o.settings.RedirectReturnURL,
		Timeout:         o.settings.RedirectTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &GatewayAuthorization{
		Gateway:                domain.GatewayRedirect,
		AuthorizationURL:       resp.URL,
		AuthorizationRequestID: resp.PspTransactionID,
	}, nil
}

func (o *GatewayOrchestrator) logGatewayFailure(transactionID string, gateway domain.PaymentGateway, err error) {
	event := o.log.Error().Err(err).
		Str("transaction_id", transactionID).
		Str("gateway", string(gateway))
	var gwErr *ports.GatewayError
	if errors.As(err, &gwErr) {
		event = event.Int("http_status", gwErr.StatusCode).Str("response_body", gwErr.Body)
	}
	event.Msg("authorization request failed")
}

func noticeDescription(tx domain.TransactionActivated) string {
	if len(tx.PaymentNotices) == 0 {
		return ""
	}
	return tx.PaymentNotices[0].Description
}

var npgAuthorizedResults = map[string]bool{
	"AUTHORIZED": true,
	"EXECUTED":   true,
}

// NormalizeOutcome converts a gateway callback into the authorization completed
// payload. An outcome that does not belong to the gateway used for the
// authorization request is rejected.
func NormalizeOutcome(requested domain.PaymentGateway, outcome domain.GatewayOutcome, timestamp time.Time) (domain.AuthorizationCompletedData, error) {
	if outcome == nil {
		return domain.AuthorizationCompletedData{}, apperror.InvalidRequest("Missing authorization outcome")
	}
	if outcome.Gateway() != requested {
		return domain.AuthorizationCompletedData{}, apperror.InvalidRequest(
			fmt.Sprintf("Outcome from %s does not match gateway %s", outcome.Gateway(), requested))
	}

	data := domain.AuthorizationCompletedData{OperationTimestamp: timestamp}
	switch o := outcome.(type) {
	case domain.XPayOutcome:
		data.Result = o.Outcome
		data.AuthorizationCode = o.AuthorizationCode
		data.ErrorCode = o.ErrorCode
	case domain.PostePayOutcome:
		data.Result = o.Outcome
		data.AuthorizationCode = o.AuthorizationCode
		data.ErrorCode = o.ErrorCode
	case domain.VposOutcome:
		data.Result = o.Outcome
		data.AuthorizationCode = o.AuthorizationCode
		data.RRN = o.RRN
		data.ErrorCode = o.ErrorCode
	case domain.NpgOutcome:
		if o.OperationResult == "" {
			return domain.AuthorizationCompletedData{}, apperror.InvalidRequest("Missing NPG operation result")
		}
		data.Result = domain.OutcomeKO
		if npgAuthorizedResults[o.OperationResult] {
			data.Result = domain.OutcomeOK
		}
		data.AuthorizationCode = o.AuthorizationCode
		data.RRN = o.PaymentEndToEndID
		data.ErrorCode = o.ErrorCode
		data.GatewayStatus = o.OperationResult
	case domain.RedirectOutcome:
		data.Result = o.Outcome
		data.AuthorizationCode = o.AuthorizationCode
		data.RRN = o.PspTransactionID
	default:
		return domain.AuthorizationCompletedData{}, apperror.InvalidRequest(fmt.Sprintf("Unsupported authorization outcome %T", outcome))
	}

	if data.Result != domain.OutcomeOK && data.Result != domain.OutcomeKO {
		return domain.AuthorizationCompletedData{}, apperror.InvalidRequest(fmt.Sprintf("Invalid authorization outcome %q", data.Result))
	}
	return data, nil
}
