package domain

import "time"

// TransactionView is the read model served by GET /transactions/{id}.
// Email holds the encrypted address, never the clear text.
type TransactionView struct {
	TransactionID              string              `json:"transactionId"`
	ClientID                   ClientID            `json:"clientId"`
	Email                      string              `json:"-"`
	Status                     TransactionStatus   `json:"status"`
	PaymentNotices             []PaymentNoticeView `json:"payments"`
	Amount                     Amount              `json:"amount"`
	Fee                        *Amount             `json:"fee,omitempty"`
	PaymentGateway             PaymentGateway      `json:"gateway,omitempty"`
	PspID                      string              `json:"pspId,omitempty"`
	PaymentMethodName          string              `json:"paymentMethodName,omitempty"`
	AuthorizationRequestID     string              `json:"authorizationRequestId,omitempty"`
	AuthorizationCode          string              `json:"authorizationCode,omitempty"`
	RRN                        string              `json:"rrn,omitempty"`
	AuthorizationErrorCode     string              `json:"errorCode,omitempty"`
	GatewayAuthorizationStatus string              `json:"gatewayAuthorizationStatus,omitempty"`
	ClosureErrorReason         string              `json:"-"`
	SendPaymentResultOutcome   ReceiptOutcome      `json:"sendPaymentResultOutcome,omitempty"`
	CreationDate               time.Time           `json:"creationDate"`
}

type PaymentNoticeView struct {
	PaymentToken string `json:"paymentToken,omitempty"`
	RptID        string `json:"rptId"`
	Description  string `json:"reason"`
	Amount       Amount `json:"amount"`
}

// NoticeViews flattens notices for the read model.
func NoticeViews(notices []PaymentNotice) []PaymentNoticeView {
	views := make([]PaymentNoticeView, 0, len(notices))
	for _, n := range notices {
		views = append(views, PaymentNoticeView{
			PaymentToken: n.PaymentToken.String(),
			RptID:        n.RptID.String(),
			Description:  n.Description,
			Amount:       n.Amount,
		})
	}
	return views
}

// PaymentRequestInfo is the cached hub state of one RptId, reused when the
// same notice is activated again.
type PaymentRequestInfo struct {
	RptID          string    `json:"rptId"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty"`
	PaymentToken   string    `json:"paymentToken,omitempty"`
	Amount         Amount    `json:"amount"`
	Description    string    `json:"description,omitempty"`
	ActivatedAt    time.Time `json:"activatedAt"`
}
