package handler

import (
	"net/http"

	"ecommerce-transactions/internal/adapter/http/dto"
	"ecommerce-transactions/internal/adapter/http/middleware"
	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"
	"ecommerce-transactions/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderPgsID selects the gateway family of an authorization request.
const HeaderPgsID = "X-Pgs-Id"

// TransactionHandler serves the /transactions resource.
type TransactionHandler struct {
	svc ports.TransactionService
}

func NewTransactionHandler(svc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// NewTransaction handles POST /transactions.
func (h *TransactionHandler) NewTransaction(c *gin.Context) {
	clientID, err := domain.ParseClientID(c.GetHeader(middleware.HeaderClientID))
	if err != nil {
		response.Error(c, apperror.InvalidRequest("Missing or unknown X-Client-Id"))
		return
	}

	var req dto.NewTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	email, err := domain.NewEmail(req.Email)
	if err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	notices := make([]ports.NoticeRequest, 0, len(req.PaymentNotices))
	for _, n := range req.PaymentNotices {
		rptID, err := domain.NewRptID(n.RptID)
		if err != nil {
			response.Error(c, apperror.InvalidRequest(err.Error()))
			return
		}
		amount, err := domain.NewAmount(n.Amount)
		if err != nil {
			response.Error(c, apperror.InvalidRequest(err.Error()))
			return
		}
		notices = append(notices, ports.NoticeRequest{RptID: rptID, Amount: amount})
	}

	result, err := h.svc.NewTransaction(c.Request.Context(), ports.NewTransactionRequest{
		PaymentNotices: notices,
		Email:          email,
		ClientID:       clientID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewTransactionResponse{TransactionView: result.View, AuthToken: result.AuthToken})
}

// GetTransaction handles GET /transactions/:id.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	view, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// RequestAuthorization handles POST /transactions/:id/auth-requests.
func (h *TransactionHandler) RequestAuthorization(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req dto.AuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	details, err := dto.ParseAuthorizationDetails(req.Details)
	if err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	result, err := h.svc.RequestAuthorization(c.Request.Context(), ports.AuthorizationRequest{
		TransactionID:       id,
		Amount:              domain.Amount(req.Amount),
		Fee:                 domain.Amount(req.Fee),
		PaymentInstrumentID: req.PaymentInstrumentID,
		PspID:               req.PspID,
		Language:            req.Language,
		PgsID:               c.GetHeader(HeaderPgsID),
		Details:             details,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AuthorizationResponse{
		AuthorizationURL:       result.AuthorizationURL,
		AuthorizationRequestID: result.AuthorizationRequestID,
	})
}

// UpdateAuthorization handles PATCH /transactions/:id/auth-requests.
func (h *TransactionHandler) UpdateAuthorization(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req dto.UpdateAuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	outcome, err := dto.ParseOutcomeGateway(req.OutcomeGateway)
	if err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	view, err := h.svc.UpdateAuthorization(c.Request.Context(), ports.UpdateAuthorizationRequest{
		TransactionID:      id,
		Outcome:            outcome,
		TimestampOperation: req.TimestampOperation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// AddUserReceipt handles POST /transactions/:id/user-receipts. Unclassified
// failures answer 422.
func (h *TransactionHandler) AddUserReceipt(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req dto.AddUserReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidRequest(err.Error()))
		return
	}

	tokens := make([]string, 0, len(req.Payments))
	for _, p := range req.Payments {
		tokens = append(tokens, p.PaymentToken)
	}

	_, err := h.svc.AddUserReceipt(c.Request.Context(), ports.AddUserReceiptRequest{
		TransactionID: id,
		Outcome:       domain.Outcome(req.Outcome),
		PaymentDate:   req.PaymentDate,
		PaymentTokens: tokens,
	})
	if err != nil {
		response.ErrorWithFallback(c, err, http.StatusUnprocessableEntity)
		return
	}
	response.OK(c, dto.AddUserReceiptResponse{Outcome: string(domain.OutcomeOK)})
}

// CancelTransaction handles DELETE /transactions/:id.
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	if err := h.svc.CancelTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c)
}

func transactionID(c *gin.Context) (domain.TransactionID, bool) {
	id, err := domain.ParseTransactionID(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.InvalidRequest("Invalid transaction id"))
		return domain.TransactionID{}, false
	}
	return id, true
}
