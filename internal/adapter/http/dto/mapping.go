package dto

import (
	"encoding/json"
	"fmt"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"

	"github.com/gin-gonic/gin/binding"
)

type discriminator struct {
	DetailType string `json:"detailType"`
}

// ParseAuthorizationDetails decodes the details union by its detailType.
// Missing details mean a redirect payment.
func ParseAuthorizationDetails(raw json.RawMessage) (ports.AuthorizationDetails, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return ports.RedirectDetails{}, nil
	}

	var d discriminator
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("invalid details: %w", err)
	}

	switch d.DetailType {
	case ports.CardDetails{}.DetailType():
		var card CardAuthorizationDetails
		if err := decodeAndValidate(raw, &card); err != nil {
			return nil, err
		}
		return ports.CardDetails{Card: ports.CardData{
			Pan:         card.Pan,
			CVV:         card.CVV,
			ExpiryDate:  card.ExpiryDate,
			HolderName:  card.HolderName,
			Brand:       card.Brand,
			ThreeDsData: card.ThreeDsData,
		}}, nil
	case ports.PostePayDetails{}.DetailType():
		var pp PostePayAuthorizationDetails
		if err := decodeAndValidate(raw, &pp); err != nil {
			return nil, err
		}
		return ports.PostePayDetails{AccountEmail: pp.AccountEmail}, nil
	case ports.NPGCardDetails{}.DetailType():
		var npg NPGCardsAuthorizationDetails
		if err := decodeAndValidate(raw, &npg); err != nil {
			return nil, err
		}
		return ports.NPGCardDetails{OrderID: npg.OrderID}, nil
	case ports.RedirectDetails{}.DetailType():
		return ports.RedirectDetails{}, nil
	default:
		return nil, fmt.Errorf("unknown detailType %q", d.DetailType)
	}
}

// ParseOutcomeGateway decodes a gateway callback into its domain outcome.
func ParseOutcomeGateway(raw json.RawMessage) (domain.GatewayOutcome, error) {
	var o OutcomeGateway
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("invalid outcomeGateway: %w", err)
	}

	switch domain.PaymentGateway(o.PaymentGatewayType) {
	case domain.GatewayXPay:
		outcome, err := parseOutcome(o.Outcome)
		if err != nil {
			return nil, err
		}
		return domain.XPayOutcome{Outcome: outcome, AuthorizationCode: o.AuthorizationCode, ErrorCode: o.ErrorCode}, nil
	case domain.GatewayPostePay:
		outcome, err := parseOutcome(o.Outcome)
		if err != nil {
			return nil, err
		}
		return domain.PostePayOutcome{Outcome: outcome, AuthorizationCode: o.AuthorizationCode, ErrorCode: o.ErrorCode}, nil
	case domain.GatewayVPOS:
		outcome, err := parseOutcome(o.Outcome)
		if err != nil {
			return nil, err
		}
		return domain.VposOutcome{Outcome: outcome, AuthorizationCode: o.AuthorizationCode, RRN: o.RRN, ErrorCode: o.ErrorCode}, nil
	case domain.GatewayNPG:
		if o.OperationResult == "" {
			return nil, fmt.Errorf("missing operationResult")
		}
		return domain.NpgOutcome{
			OperationResult:   o.OperationResult,
			OrderID:           o.OrderID,
			OperationID:       o.OperationID,
			AuthorizationCode: o.AuthorizationCode,
			PaymentEndToEndID: o.PaymentEndToEndID,
			ErrorCode:         o.ErrorCode,
		}, nil
	case domain.GatewayRedirect:
		outcome, err := parseOutcome(o.Outcome)
		if err != nil {
			return nil, err
		}
		return domain.RedirectOutcome{
			Outcome:           outcome,
			PspTransactionID:  o.PspTransactionID,
			PspID:             o.PspID,
			AuthorizationCode: o.AuthorizationCode,
		}, nil
	default:
		return nil, fmt.Errorf("unknown paymentGatewayType %q", o.PaymentGatewayType)
	}
}

func parseOutcome(s string) (domain.Outcome, error) {
	switch domain.Outcome(s) {
	case domain.OutcomeOK, domain.OutcomeKO:
		return domain.Outcome(s), nil
	default:
		return "", fmt.Errorf("invalid outcome %q", s)
	}
}

func decodeAndValidate(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid details: %w", err)
	}
	return binding.Validator.ValidateStruct(out)
}
