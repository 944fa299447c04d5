package pgs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ecommerce-transactions/internal/adapter/gateway"
	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
)

var paths = map[domain.PaymentGateway]string{
	domain.GatewayPostePay: "/request-payments/postepay",
	domain.GatewayXPay:     "/request-payments/xpay",
	domain.GatewayVPOS:     "/request-payments/vpos",
}

// Client implements ports.PGSClient.
type Client struct {
	caller  gateway.Caller
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		caller:  gateway.Caller{Name: "pgs", Client: httpClient},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type authorizationRequest struct {
	TransactionID  string `json:"idTransaction"`
	RequestID      string `json:"requestId"`
	GrandTotal     int64  `json:"grandTotal"`
	Description    string `json:"description,omitempty"`
	PaymentChannel string `json:"paymentChannel"`
	AccountEmail   string `json:"emailNotice,omitempty"`
	Pan            string `json:"pan,omitempty"`
	SecurityCode   string `json:"securityCode,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	HolderName     string `json:"holder,omitempty"`
	Circuit        string `json:"circuit,omitempty"`
	ThreeDsData    string `json:"threeDsData,omitempty"`
}

type authorizationResponse struct {
	RequestID   string `json:"requestId"`
	URLRedirect string `json:"urlRedirect"`
}

// RequestAuthorization starts a PostePay, XPAY or VPOS authorization.
func (c *Client) RequestAuthorization(ctx context.Context, req ports.PGSAuthorizationRequest) (*ports.PGSAuthorizationResponse, error) {
	path, ok := paths[req.Gateway]
	if !ok {
		return nil, fmt.Errorf("pgs does not serve gateway %s", req.Gateway)
	}

	body := authorizationRequest{
		TransactionID:  req.TransactionID,
		RequestID:      req.AuthorizationRequestID,
		GrandTotal:     int64(req.GrandTotal),
		Description:    req.Description,
		PaymentChannel: req.PaymentChannel,
		AccountEmail:   req.AccountEmail,
	}
	if req.Card != nil {
		body.Pan = req.Card.Pan
		body.SecurityCode = req.Card.CVV
		body.ExpiryDate = req.Card.ExpiryDate
		body.HolderName = req.Card.HolderName
		body.Circuit = req.Card.Brand
		body.ThreeDsData = req.Card.ThreeDsData
	}

	headers, err := requestHeaders(req)
	if err != nil {
		return nil, err
	}

	var resp authorizationResponse
	if err := c.caller.PostJSON(ctx, c.baseURL+path, headers, body, &resp); err != nil {
		return nil, err
	}
	if resp.RequestID == "" {
		resp.RequestID = req.AuthorizationRequestID
	}
	return &ports.PGSAuthorizationResponse{
		RequestID:        resp.RequestID,
		AuthorizationURL: resp.URLRedirect,
	}, nil
}

// requestHeaders carries the client channel, the idempotency key and the
// diagnostic context (base64 JSON) expected by PGS.
func requestHeaders(req ports.PGSAuthorizationRequest) (map[string]string, error) {
	headers := map[string]string{
		"X-Client-Id":     req.PaymentChannel,
		"Idempotency-Key": req.IdempotencyKey,
	}
	if len(req.MDCInfo) > 0 {
		mdc, err := json.Marshal(req.MDCInfo)
		if err != nil {
			return nil, fmt.Errorf("encoding mdc info: %w", err)
		}
		headers["MDC-Info"] = base64.StdEncoding.EncodeToString(mdc)
	}
	return headers, nil
}
