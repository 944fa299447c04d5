package redirect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ecommerce-transactions/internal/adapter/gateway"
	"ecommerce-transactions/internal/core/ports"
)

// Client implements ports.RedirectClient for one PSP.
type Client struct {
	caller   gateway.Caller
	endpoint string
	apiKey   string
}

// NewClient validates the PSP endpoint. The http client is shared across PSPs.
func NewClient(httpClient *http.Client, endpoint, apiKey string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid redirect endpoint %q", endpoint)
	}
	return &Client{
		caller:   gateway.Caller{Name: "redirect", Client: httpClient},
		endpoint: u.String(),
		apiKey:   apiKey,
	}, nil
}

type urlRequest struct {
	TransactionID   string `json:"idTransaction"`
	PaymentMethodID string `json:"idPaymentMethod"`
	Amount          int64  `json:"amount"`
	Description     string `json:"description"`
	TouchPoint      string `json:"touchpoint"`
	ReturnURL       string `json:"urlBack"`
	Timeout         int64  `json:"timeout,omitempty"` // milliseconds
}

type urlResponse struct {
	URL              string `json:"url"`
	PspTransactionID string `json:"idPSPTransaction"`
	Timeout          int64  `json:"timeout"` // milliseconds
}

// CreateRedirectURL asks the PSP where the user completes the payment.
func (c *Client) CreateRedirectURL(ctx context.Context, req ports.RedirectURLRequest) (*ports.RedirectURLResponse, error) {
	body := urlRequest{
		TransactionID:   req.TransactionID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          int64(req.Amount),
		Description:     req.Description,
		TouchPoint:      req.TouchPoint,
		ReturnURL:       req.ReturnURL,
		Timeout:         req.Timeout.Milliseconds(),
	}

	var resp urlResponse
	headers := map[string]string{"X-Api-Key": c.apiKey}
	if err := c.caller.PostJSON(ctx, c.endpoint, headers, body, &resp); err != nil {
		return nil, err
	}
	if resp.URL == "" {
		return nil, &ports.GatewayError{
			Gateway:    "redirect",
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("psp returned no redirect url"),
		}
	}

	return &ports.RedirectURLResponse{
		URL:              resp.URL,
		PspTransactionID: resp.PspTransactionID,
		Timeout:          time.Duration(resp.Timeout) * time.Millisecond,
	}, nil
}
