package paymentmethods

import (
	"context"

	"ecommerce-transactions/config"
	"ecommerce-transactions/internal/core/domain"
)

// Catalog implements ports.PaymentMethodsClient over the configured methods.
type Catalog struct {
	methods map[string]domain.PaymentMethod
}

func NewCatalog(entries []config.PaymentMethodConfig) *Catalog {
	methods := make(map[string]domain.PaymentMethod, len(entries))
	for _, e := range entries {
		methods[e.ID] = domain.PaymentMethod{
			ID:              e.ID,
			Name:            e.Name,
			PaymentTypeCode: e.PaymentTypeCode,
			Enabled:         e.Enabled,
		}
	}
	return &Catalog{methods: methods}
}

// GetPaymentMethod returns nil, nil for an unknown id.
func (c *Catalog) GetPaymentMethod(_ context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	m, ok := c.methods[paymentMethodID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}
