package npg

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"ecommerce-transactions/internal/adapter/gateway"
	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
)

const (
	buildPath   = "/api/v1/orders/build"
	confirmPath = "/api/v1/build/confirmPayment"
	currency    = "EUR"
)

// Client implements ports.NPGClient.
type Client struct {
	caller  gateway.Caller
	baseURL string
	apiKey  string
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{
		caller:  gateway.Caller{Name: "npg", Client: httpClient},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type order struct {
	OrderID  string `json:"orderId"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type paymentSession struct {
	ActionType      string `json:"actionType"`
	Amount          string `json:"amount"`
	Language        string `json:"language,omitempty"`
	PaymentService  string `json:"paymentService"`
	ResultURL       string `json:"resultUrl"`
	CancelURL       string `json:"cancelUrl"`
	NotificationURL string `json:"notificationUrl"`
}

type buildRequest struct {
	Order          order          `json:"order"`
	PaymentSession paymentSession `json:"paymentSession"`
}

type buildResponse struct {
	SessionID     string `json:"sessionId"`
	SecurityToken string `json:"securityToken"`
}

// CreateSession opens a card payment session for orderId.
func (c *Client) CreateSession(ctx context.Context, req ports.NPGSessionRequest) (*ports.NPGSession, error) {
	amount := formatAmount(req.Amount)
	body := buildRequest{
		Order: order{OrderID: req.OrderID, Amount: amount, Currency: currency},
		PaymentSession: paymentSession{
			ActionType:      "PAY",
			Amount:          amount,
			Language:        language(req.Language),
			PaymentService:  "CARDS",
			ResultURL:       req.ResultURL,
			CancelURL:       req.CancelURL,
			NotificationURL: req.NotificationURL,
		},
	}

	var resp buildResponse
	if err := c.caller.PostJSON(ctx, c.baseURL+buildPath, c.headers(req.CorrelationID), body, &resp); err != nil {
		return nil, err
	}
	return &ports.NPGSession{SessionID: resp.SessionID, SecurityToken: resp.SecurityToken}, nil
}

type confirmRequest struct {
	SessionID string `json:"sessionId"`
	Amount    string `json:"amount"`
}

type confirmResponse struct {
	State string `json:"state"`
	URL   string `json:"url"`
}

// ConfirmPayment confirms the session amount and returns where to send the user.
func (c *Client) ConfirmPayment(ctx context.Context, req ports.NPGConfirmRequest) (*ports.NPGConfirmResponse, error) {
	body := confirmRequest{SessionID: req.SessionID, Amount: formatAmount(req.GrandTotal)}

	var resp confirmResponse
	if err := c.caller.PostJSON(ctx, c.baseURL+confirmPath, c.headers(req.CorrelationID), body, &resp); err != nil {
		return nil, err
	}
	return &ports.NPGConfirmResponse{State: resp.State, URL: resp.URL}, nil
}

func (c *Client) headers(correlationID string) map[string]string {
	return map[string]string{
		"X-Api-Key":      c.apiKey,
		"Correlation-Id": correlationID,
	}
}

// NPG amounts are cents rendered as a string.
func formatAmount(a domain.Amount) string {
	return strconv.FormatInt(int64(a), 10)
}

// language maps the two-letter code to the ISO 639-2 code NPG expects.
func language(code string) string {
	switch strings.ToLower(code) {
	case "", "it":
		return "ita"
	case "en":
		return "eng"
	case "de":
		return "deu"
	case "fr":
		return "fra"
	case "sl":
		return "slv"
	default:
		return code
	}
}
