package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-transactions/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const paymentTokenField = "paymentNotices.paymentToken"

type noticeDocument struct {
	PaymentToken string `bson:"paymentToken,omitempty"`
	RptID        string `bson:"rptId"`
	Description  string `bson:"description"`
	Amount       int64  `bson:"amount"`
}

// viewDocument is the stored shape of a transaction view.
type viewDocument struct {
	TransactionID              string           `bson:"_id"`
	ClientID                   string           `bson:"clientId"`
	Email                      string           `bson:"email"`
	Status                     string           `bson:"status"`
	PaymentNotices             []noticeDocument `bson:"paymentNotices"`
	Amount                     int64            `bson:"amount"`
	Fee                        *int64           `bson:"fee,omitempty"`
	PaymentGateway             string           `bson:"paymentGateway,omitempty"`
	PspID                      string           `bson:"pspId,omitempty"`
	PaymentMethodName          string           `bson:"paymentMethodName,omitempty"`
	AuthorizationRequestID     string           `bson:"authorizationRequestId,omitempty"`
	AuthorizationCode          string           `bson:"authorizationCode,omitempty"`
	RRN                        string           `bson:"rrn,omitempty"`
	AuthorizationErrorCode     string           `bson:"authorizationErrorCode,omitempty"`
	GatewayAuthorizationStatus string           `bson:"gatewayAuthorizationStatus,omitempty"`
	ClosureErrorReason         string           `bson:"closureErrorReason,omitempty"`
	SendPaymentResultOutcome   string           `bson:"sendPaymentResultOutcome,omitempty"`
	CreationDate               time.Time        `bson:"creationDate"`
}

// ViewRepository implements ports.TransactionViewRepository on a MongoDB collection.
type ViewRepository struct {
	coll    *gomongo.Collection
	timeout time.Duration
}

func NewViewRepository(coll *gomongo.Collection, timeout time.Duration) *ViewRepository {
	return &ViewRepository{coll: coll, timeout: timeout}
}

// EnsureIndexes creates the payment token index used by the legacy lookup.
func (r *ViewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, gomongo.IndexModel{
		Keys:    bson.D{{Key: paymentTokenField, Value: 1}},
		Options: options.Index().SetName("payment_token_idx").SetSparse(true),
	})
	if err != nil {
		return fmt.Errorf("creating payment token index: %w", err)
	}
	return nil
}

// Save upserts the whole view.
func (r *ViewRepository) Save(ctx context.Context, view *domain.TransactionView) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := toDocument(view)
	filter := bson.D{{Key: "_id", Value: doc.TransactionID}}
	if _, err := r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("saving transaction view %s: %w", doc.TransactionID, err)
	}
	return nil
}

func (r *ViewRepository) FindByID(ctx context.Context, transactionID string) (*domain.TransactionView, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: transactionID}})
}

func (r *ViewRepository) FindByPaymentToken(ctx context.Context, paymentToken string) (*domain.TransactionView, error) {
	return r.findOne(ctx, bson.D{{Key: paymentTokenField, Value: paymentToken}})
}

func (r *ViewRepository) findOne(ctx context.Context, filter bson.D) (*domain.TransactionView, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc viewDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, gomongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding transaction view: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *ViewRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func toDocument(v *domain.TransactionView) viewDocument {
	notices := make([]noticeDocument, 0, len(v.PaymentNotices))
	for _, n := range v.PaymentNotices {
		notices = append(notices, noticeDocument{
			PaymentToken: n.PaymentToken,
			RptID:        n.RptID,
			Description:  n.Description,
			Amount:       int64(n.Amount),
		})
	}

	var fee *int64
	if v.Fee != nil {
		f := int64(*v.Fee)
		fee = &f
	}

	return viewDocument{
		TransactionID:              v.TransactionID,
		ClientID:                   string(v.ClientID),
		Email:                      v.Email,
		Status:                     string(v.Status),
		PaymentNotices:             notices,
		Amount:                     int64(v.Amount),
		Fee:                        fee,
		PaymentGateway:             string(v.PaymentGateway),
		PspID:                      v.PspID,
		PaymentMethodName:          v.PaymentMethodName,
		AuthorizationRequestID:     v.AuthorizationRequestID,
		AuthorizationCode:          v.AuthorizationCode,
		RRN:                        v.RRN,
		AuthorizationErrorCode:     v.AuthorizationErrorCode,
		GatewayAuthorizationStatus: v.GatewayAuthorizationStatus,
		ClosureErrorReason:         v.ClosureErrorReason,
		SendPaymentResultOutcome:   string(v.SendPaymentResultOutcome),
		CreationDate:               v.CreationDate.UTC(),
	}
}

func fromDocument(d viewDocument) *domain.TransactionView {
	notices := make([]domain.PaymentNoticeView, 0, len(d.PaymentNotices))
	for _, n := range d.PaymentNotices {
		notices = append(notices, domain.PaymentNoticeView{
			PaymentToken: n.PaymentToken,
			RptID:        n.RptID,
			Description:  n.Description,
			Amount:       domain.Amount(n.Amount),
		})
	}

	var fee *domain.Amount
	if d.Fee != nil {
		f := domain.Amount(*d.Fee)
		fee = &f
	}

	return &domain.TransactionView{
		TransactionID:              d.TransactionID,
		ClientID:                   domain.ClientID(d.ClientID),
		Email:                      d.Email,
		Status:                     domain.TransactionStatus(d.Status),
		PaymentNotices:             notices,
		Amount:                     domain.Amount(d.Amount),
		Fee:                        fee,
		PaymentGateway:             domain.PaymentGateway(d.PaymentGateway),
		PspID:                      d.PspID,
		PaymentMethodName:          d.PaymentMethodName,
		AuthorizationRequestID:     d.AuthorizationRequestID,
		AuthorizationCode:          d.AuthorizationCode,
		RRN:                        d.RRN,
		AuthorizationErrorCode:     d.AuthorizationErrorCode,
		GatewayAuthorizationStatus: d.GatewayAuthorizationStatus,
		ClosureErrorReason:         d.ClosureErrorReason,
		SendPaymentResultOutcome:   domain.ReceiptOutcome(d.SendPaymentResultOutcome),
		CreationDate:               d.CreationDate,
	}
}
