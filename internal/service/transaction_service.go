package service

import (
	"context"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"

	"github.com/rs/zerolog"
)

// maxPaymentNotices is the cart size accepted by the hub.
const maxPaymentNotices = 5

// TransactionSettings configures activation and token issuing.
type TransactionSettings struct {
	PSPFiscalCode         string
	PaymentTokenTimeout   time.Duration
	PaymentRequestInfoTTL time.Duration
	TokenRetry            RetryPolicy
}

// TransactionServiceDeps groups the collaborators of TransactionServiceImpl.
type TransactionServiceDeps struct {
	Events         ports.EventStore
	Projector      ports.Projector
	Views          ports.TransactionViewRepository
	Cache          ports.PaymentRequestInfoCache
	Nodo           ports.NodoClient
	PaymentMethods ports.PaymentMethodsClient
	Orchestrator   *GatewayOrchestrator
	Closure        *ClosureService
	Queue          ports.RetryQueue
	Tokens         ports.TokenService
	Settings       TransactionSettings
	Logger         zerolog.Logger
}

// TransactionServiceImpl implements ports.TransactionService.
type TransactionServiceImpl struct {
	writer         eventWriter
	views          ports.TransactionViewRepository
	cache          ports.PaymentRequestInfoCache
	nodo           ports.NodoClient
	paymentMethods ports.PaymentMethodsClient
	orchestrator   *GatewayOrchestrator
	closure        *ClosureService
	queue          ports.RetryQueue
	tokens         ports.TokenService
	settings       TransactionSettings
	log            zerolog.Logger
}

func NewTransactionService(deps TransactionServiceDeps) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		writer:         eventWriter{events: deps.Events, projector: deps.Projector},
		views:          deps.Views,
		cache:          deps.Cache,
		nodo:           deps.Nodo,
		paymentMethods: deps.PaymentMethods,
		orchestrator:   deps.Orchestrator,
		closure:        deps.Closure,
		queue:          deps.Queue,
		tokens:         deps.Tokens,
		settings:       deps.Settings,
		log:            deps.Logger,
	}
}

// NewTransaction records the activation request, activates every notice at the
// hub and issues the transaction token.
func (s *TransactionServiceImpl) NewTransaction(ctx context.Context, req ports.NewTransactionRequest) (*ports.NewTransactionResult, error) {
	if n := len(req.PaymentNotices); n == 0 || n > maxPaymentNotices {
		return nil, apperror.InvalidRequest(fmt.Sprintf("Between 1 and %d payment notices are required", maxPaymentNotices))
	}

	id := domain.NewTransactionID()
	log := s.log.With().Str("transaction_id", id.String()).Logger()

	notices := make([]domain.PaymentNotice, 0, len(req.PaymentNotices))
	for _, n := range req.PaymentNotices {
		notices = append(notices, domain.PaymentNotice{RptID: n.RptID, Amount: n.Amount})
	}
	requested := domain.ActivationRequestedEvent{
		EventMeta: domain.NewEventMeta(id),
		Data: domain.ActivationRequestedData{
			PaymentNotices:      notices,
			Email:               req.Email,
			ClientID:            req.ClientID,
			PaymentTokenTimeout: int(s.settings.PaymentTokenTimeout.Seconds()),
		},
	}
	if _, err := s.writer.commit(ctx, requested, 0, "", ""); err != nil {
		return nil, err
	}

	key, err := s.idempotencyKey(ctx, notices[0].RptID)
	if err != nil {
		return nil, err
	}

	activatedNotices := make([]domain.PaymentNotice, 0, len(notices))
	for _, n := range notices {
		activated, err := s.activate(ctx, id, n, key)
		if err != nil {
			log.Error().Err(err).Str("rpt_id", n.RptID.String()).Msg("payment notice activation failed")
			return nil, mapNodoError(err)
		}
		activatedNotices = append(activatedNotices, activated)
	}

	activatedEvent := domain.ActivatedEvent{
		EventMeta: domain.NewEventMeta(id),
		Data:      domain.ActivatedData{PaymentNotices: activatedNotices, IdempotencyKey: key},
	}
	view, err := s.writer.commit(ctx, activatedEvent, 1, id.String()+":"+key.String(), "")
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, id, req.ClientID, activatedNotices)
	if err != nil {
		return nil, err
	}

	log.Info().Int("notices", len(activatedNotices)).Msg("transaction activated")
	return &ports.NewTransactionResult{View: view, AuthToken: token}, nil
}

// idempotencyKey reuses the key of a previous activation of rptID so that the
// hub replays it instead of activating twice.
func (s *TransactionServiceImpl) idempotencyKey(ctx context.Context, rptID domain.RptID) (domain.IdempotencyKey, error) {
	info, err := s.cache.Get(ctx, rptID.String())
	if err != nil {
		s.log.Warn().Err(err).Str("rpt_id", rptID.String()).Msg("payment request info lookup failed")
	}
	if info != nil && info.IdempotencyKey != "" {
		if key, err := domain.ParseIdempotencyKey(info.IdempotencyKey); err == nil {
			return key, nil
		}
	}

	key, err := domain.GenerateIdempotencyKey(s.settings.PSPFiscalCode)
	if err != nil {
		return domain.IdempotencyKey{}, apperror.InternalError(fmt.Errorf("generating idempotency key: %w", err))
	}
	return key, nil
}

func (s *TransactionServiceImpl) activate(ctx context.Context, id domain.TransactionID, n domain.PaymentNotice, key domain.IdempotencyKey) (domain.PaymentNotice, error) {
	resp, err := s.nodo.ActivatePaymentNotice(ctx, ports.ActivatePaymentNoticeRequest{
		TransactionID:       id,
		RptID:               n.RptID,
		IdempotencyKey:      key,
		Amount:              n.Amount,
		PaymentTokenTimeout: s.settings.PaymentTokenTimeout,
	})
	if err != nil {
		return domain.PaymentNotice{}, err
	}

	activated := domain.PaymentNotice{
		PaymentToken: resp.PaymentToken,
		RptID:        n.RptID,
		Description:  resp.Description,
		Amount:       resp.TotalAmount,
	}
	info := &domain.PaymentRequestInfo{
		RptID:          n.RptID.String(),
		IdempotencyKey: key.String(),
		PaymentToken:   resp.PaymentToken.String(),
		Amount:         resp.TotalAmount,
		Description:    resp.Description,
		ActivatedAt:    time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, info, s.settings.PaymentRequestInfoTTL); err != nil {
		s.log.Warn().Err(err).Str("rpt_id", info.RptID).Msg("caching payment request info failed")
	}
	return activated, nil
}

func (s *TransactionServiceImpl) issueToken(ctx context.Context, id domain.TransactionID, clientID domain.ClientID, notices []domain.PaymentNotice) (string, error) {
	rptIDs := make([]string, 0, len(notices))
	for _, n := range notices {
		rptIDs = append(rptIDs, n.RptID.String())
	}
	claims := ports.TransactionClaims{TransactionID: id.String(), RptIDs: rptIDs, ClientID: string(clientID)}

	token, err := retry(ctx, s.settings.TokenRetry, func() (string, error) {
		token, _, err := s.tokens.Generate(claims)
		return token, err
	})
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("issuing transaction token: %w", err))
	}
	return token, nil
}

func (s *TransactionServiceImpl) GetTransaction(ctx context.Context, transactionID domain.TransactionID) (*domain.TransactionView, error) {
	view, err := s.views.FindByID(ctx, transactionID.String())
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("finding view: %w", err))
	}
	if view == nil {
		return nil, apperror.TransactionNotFound(transactionID.String())
	}
	return view, nil
}

// RequestAuthorization forwards the authorization request to the selected
// gateway and records it. Nothing is recorded when the gateway refuses.
func (s *TransactionServiceImpl) RequestAuthorization(ctx context.Context, req ports.AuthorizationRequest) (*ports.AuthorizationResponse, error) {
	tx, version, err := s.writer.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	id := req.TransactionID.String()

	activated, ok := tx.(domain.TransactionActivated)
	if !ok {
		if _, pending := tx.(domain.TransactionActivationRequested); pending {
			return nil, apperror.InvalidState(id, string(tx.CurrentStatus()))
		}
		return nil, apperror.AlreadyProcessed(id)
	}
	if total := domain.TotalAmount(activated.PaymentNotices); req.Amount != total {
		return nil, apperror.InvalidRequest(fmt.Sprintf("Amount %d does not match the payment notices total %d", req.Amount, total))
	}

	method, err := s.paymentMethods.GetPaymentMethod(ctx, req.PaymentInstrumentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolving payment method: %w", err))
	}
	if method == nil || !method.Enabled {
		return nil, apperror.PaymentMethodNotFound(req.PaymentInstrumentID)
	}

	gateway, err := SelectGateway(req.PgsID, req.Details)
	if err != nil {
		return nil, err
	}
	result, err := s.orchestrator.Authorize(ctx, activated, req, gateway)
	if err != nil {
		return nil, err
	}

	event := domain.AuthorizationRequestedEvent{
		EventMeta: domain.NewEventMeta(req.TransactionID),
		Data: domain.AuthorizationRequestData{
			Amount:                 req.Amount,
			Fee:                    req.Fee,
			PaymentInstrumentID:    req.PaymentInstrumentID,
			PspID:                  req.PspID,
			PaymentTypeCode:        method.PaymentTypeCode,
			PaymentMethodName:      method.Name,
			AuthorizationRequestID: result.AuthorizationRequestID,
			Gateway:                gateway,
		},
	}
	if _, err := s.writer.commit(ctx, event, version, eventKey(req.TransactionID, event.Code()), legacyTokenOf(tx)); err != nil {
		return nil, err
	}

	return &ports.AuthorizationResponse{
		AuthorizationURL:       result.AuthorizationURL,
		AuthorizationRequestID: result.AuthorizationRequestID,
	}, nil
}

// UpdateAuthorization records the gateway outcome and closes the payment at the hub.
func (s *TransactionServiceImpl) UpdateAuthorization(ctx context.Context, req ports.UpdateAuthorizationRequest) (*domain.TransactionView, error) {
	tx, version, err := s.writer.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	id := req.TransactionID.String()

	requested, ok := tx.(domain.TransactionWithRequestedAuthorization)
	if !ok {
		switch tx.(type) {
		case domain.TransactionActivationRequested, domain.TransactionActivated:
			return nil, apperror.InvalidState(id, string(tx.CurrentStatus()))
		}
		return nil, apperror.AlreadyProcessed(id)
	}

	timestamp := req.TimestampOperation
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	data, err := NormalizeOutcome(requested.AuthorizationRequest.Gateway, req.Outcome, timestamp)
	if err != nil {
		return nil, err
	}

	event := domain.AuthorizationCompletedEvent{EventMeta: domain.NewEventMeta(req.TransactionID), Data: data}
	if _, err := s.writer.commit(ctx, event, version, eventKey(req.TransactionID, event.Code()), legacyTokenOf(tx)); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("transaction_id", id).
		Str("gateway", string(requested.AuthorizationRequest.Gateway)).
		Str("outcome", string(data.Result)).
		Msg("authorization completed")

	completed, ok := domain.Apply(requested, event).(domain.TransactionWithCompletedAuthorization)
	if !ok {
		return nil, apperror.InternalError(fmt.Errorf("authorization completed did not apply to %s", id))
	}
	return s.closure.Close(ctx, completed, version+1)
}

// AddUserReceipt records the send payment result of a closed transaction and
// enqueues the notification to the user.
func (s *TransactionServiceImpl) AddUserReceipt(ctx context.Context, req ports.AddUserReceiptRequest) (*domain.TransactionView, error) {
	tx, version, err := s.writer.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	id := req.TransactionID.String()

	closedTx, ok := tx.(domain.TransactionClosed)
	if !ok {
		if _, done := tx.(domain.TransactionWithUserReceipt); done {
			return nil, apperror.AlreadyProcessed(id)
		}
		return nil, apperror.ProcessingError(fmt.Sprintf("Transaction %s is %s, cannot add a user receipt", id, tx.CurrentStatus()), nil)
	}
	if closedTx.Status != domain.StatusClosed {
		return nil, apperror.ProcessingError(fmt.Sprintf("Transaction %s was not authorized", id), nil)
	}
	if req.Outcome != domain.OutcomeOK && req.Outcome != domain.OutcomeKO {
		return nil, apperror.InvalidRequest(fmt.Sprintf("Invalid receipt outcome %q", req.Outcome))
	}
	if !sameTokens(req.PaymentTokens, paymentTokens(closedTx.PaymentNotices)) {
		return nil, apperror.InvalidRequest("Payment tokens do not match the transaction")
	}

	event := domain.UserReceiptAddedEvent{
		EventMeta: domain.NewEventMeta(req.TransactionID),
		Data:      domain.UserReceiptData{Outcome: req.Outcome, PaymentDate: req.PaymentDate},
	}
	view, err := s.writer.commit(ctx, event, version, eventKey(req.TransactionID, event.Code()), legacyTokenOf(tx))
	if err != nil {
		return nil, err
	}

	msg := ports.RetryMessage{TransactionID: id, TracingInfo: ports.TracingInfoFrom(ctx)}
	if err := s.queue.PublishNotificationRetry(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("transaction_id", id).Msg("enqueueing user notification failed")
	}
	return view, nil
}

// CancelTransaction records the user cancellation. The KO closure is sent by
// the closure retry worker.
func (s *TransactionServiceImpl) CancelTransaction(ctx context.Context, transactionID domain.TransactionID) error {
	tx, version, err := s.writer.load(ctx, transactionID)
	if err != nil {
		return err
	}
	id := transactionID.String()

	if _, ok := tx.(domain.TransactionActivated); !ok {
		if _, pending := tx.(domain.TransactionActivationRequested); pending {
			return apperror.InvalidState(id, string(tx.CurrentStatus()))
		}
		return apperror.AlreadyProcessed(id)
	}

	event := domain.UserCanceledEvent{EventMeta: domain.NewEventMeta(transactionID)}
	if _, err := s.writer.commit(ctx, event, version, eventKey(transactionID, event.Code()), legacyTokenOf(tx)); err != nil {
		return err
	}

	msg := ports.RetryMessage{TransactionID: id, TracingInfo: ports.TracingInfoFrom(ctx)}
	if err := s.queue.PublishClosureRetry(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("transaction_id", id).Msg("enqueueing cancellation closure failed")
	}
	s.log.Info().Str("transaction_id", id).Msg("transaction canceled by user")
	return nil
}

func sameTokens(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]int, len(want))
	for _, t := range want {
		seen[t]++
	}
	for _, t := range got {
		if seen[t] == 0 {
			return false
		}
		seen[t]--
	}
	return true
}
