package postgres

import (
	"encoding/json"
	"fmt"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
)

// storedActivationRequested keeps the user email encrypted at rest.
type storedActivationRequested struct {
	PaymentNotices      []domain.PaymentNotice `json:"paymentNotices"`
	Email               string                 `json:"email"`
	ClientID            domain.ClientID        `json:"clientId"`
	PaymentTokenTimeout int                    `json:"paymentTokenValiditySeconds"`
}

// eventCodec converts events to and from the JSONB data column.
type eventCodec struct {
	enc ports.EncryptionService
}

func (c eventCodec) encode(event domain.Event) ([]byte, error) {
	var payload any
	switch e := event.(type) {
	case domain.ActivationRequestedEvent:
		email, err := c.enc.Encrypt(e.Data.Email.String())
		if err != nil {
			return nil, fmt.Errorf("encrypting email: %w", err)
		}
		payload = storedActivationRequested{
			PaymentNotices:      e.Data.PaymentNotices,
			Email:               email,
			ClientID:            e.Data.ClientID,
			PaymentTokenTimeout: e.Data.PaymentTokenTimeout,
		}
	case domain.ActivatedEvent:
		payload = e.Data
	case domain.AuthorizationRequestedEvent:
		payload = e.Data
	case domain.AuthorizationCompletedEvent:
		payload = e.Data
	case domain.ClosureSentEvent:
		payload = e.Data
	case domain.ClosureFailedEvent:
		payload = e.Data
	case domain.ClosureErrorEvent:
		payload = e.Data
	case domain.UserReceiptAddedEvent:
		payload = e.Data
	case domain.UserCanceledEvent:
		payload = struct{}{}
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
	return json.Marshal(payload)
}

func (c eventCodec) decode(code domain.EventCode, meta domain.EventMeta, data []byte) (domain.Event, error) {
	switch code {
	case domain.EventActivationRequested:
		var stored storedActivationRequested
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, err
		}
		plain, err := c.enc.Decrypt(stored.Email)
		if err != nil {
			return nil, fmt.Errorf("decrypting email: %w", err)
		}
		email, err := domain.NewEmail(plain)
		if err != nil {
			return nil, err
		}
		return domain.ActivationRequestedEvent{EventMeta: meta, Data: domain.ActivationRequestedData{
			PaymentNotices:      stored.PaymentNotices,
			Email:               email,
			ClientID:            stored.ClientID,
			PaymentTokenTimeout: stored.PaymentTokenTimeout,
		}}, nil
	case domain.EventActivated:
		d, err := unmarshalData[domain.ActivatedData](data)
		return domain.ActivatedEvent{EventMeta: meta, Data: d}, err
	case domain.EventAuthorizationRequested:
		d, err := unmarshalData[domain.AuthorizationRequestData](data)
		return domain.AuthorizationRequestedEvent{EventMeta: meta, Data: d}, err
	case domain.EventAuthorizationCompleted:
		d, err := unmarshalData[domain.AuthorizationCompletedData](data)
		return domain.AuthorizationCompletedEvent{EventMeta: meta, Data: d}, err
	case domain.EventClosureSent:
		d, err := unmarshalData[domain.ClosureData](data)
		return domain.ClosureSentEvent{EventMeta: meta, Data: d}, err
	case domain.EventClosureFailed:
		d, err := unmarshalData[domain.ClosureData](data)
		return domain.ClosureFailedEvent{EventMeta: meta, Data: d}, err
	case domain.EventClosureError:
		d, err := unmarshalData[domain.ClosureErrorData](data)
		return domain.ClosureErrorEvent{EventMeta: meta, Data: d}, err
	case domain.EventUserReceiptAdded:
		d, err := unmarshalData[domain.UserReceiptData](data)
		return domain.UserReceiptAddedEvent{EventMeta: meta, Data: d}, err
	case domain.EventUserCanceled:
		return domain.UserCanceledEvent{EventMeta: meta}, nil
	}
	return nil, fmt.Errorf("unknown event code %q", code)
}

func unmarshalData[D any](data []byte) (D, error) {
	var d D
	err := json.Unmarshal(data, &d)
	return d, err
}
