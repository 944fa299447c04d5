package domain

// PaymentGateway identifies who authorizes the payment.
type PaymentGateway string

const (
	GatewayPostePay PaymentGateway = "POSTEPAY"
	GatewayXPay     PaymentGateway = "XPAY"
	GatewayVPOS     PaymentGateway = "VPOS"
	GatewayNPG      PaymentGateway = "NPG"
	GatewayRedirect PaymentGateway = "REDIRECT"
)

// IsPGS reports whether the gateway is served by the legacy payment gateway service.
func (g PaymentGateway) IsPGS() bool {
	return g == GatewayPostePay || g == GatewayXPay || g == GatewayVPOS
}

// GatewayOutcome is the raw authorization result delivered by a gateway callback.
// Implementations are XPayOutcome, VposOutcome, NpgOutcome and RedirectOutcome.
type GatewayOutcome interface {
	Gateway() PaymentGateway
}

type XPayOutcome struct {
	Outcome           Outcome
	AuthorizationCode string
	ErrorCode         string
}

func (XPayOutcome) Gateway() PaymentGateway { return GatewayXPay }

type VposOutcome struct {
	Outcome           Outcome
	AuthorizationCode string
	RRN               string
	ErrorCode         string
}

func (VposOutcome) Gateway() PaymentGateway { return GatewayVPOS }

// PostePayOutcome shares the XPAY shape.
type PostePayOutcome struct {
	Outcome           Outcome
	AuthorizationCode string
	ErrorCode         string
}

func (PostePayOutcome) Gateway() PaymentGateway { return GatewayPostePay }

type NpgOutcome struct {
	OperationResult   string
	OrderID           string
	OperationID       string
	AuthorizationCode string
	PaymentEndToEndID string
	ErrorCode         string
}

func (NpgOutcome) Gateway() PaymentGateway { return GatewayNPG }

type RedirectOutcome struct {
	Outcome           Outcome
	PspTransactionID  string
	PspID             string
	AuthorizationCode string
}

func (RedirectOutcome) Gateway() PaymentGateway { return GatewayRedirect }

// PaymentMethod is a resolved entry of the payment methods catalogue.
type PaymentMethod struct {
	ID              string
	Name            string
	PaymentTypeCode string
	Enabled         bool
}
