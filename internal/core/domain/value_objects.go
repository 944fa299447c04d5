package domain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidValue is wrapped by every value object constructor failure.
var ErrInvalidValue = errors.New("invalid value")

func invalid(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidValue, kind, value)
}

// TransactionID identifies a transaction for its whole lifetime.
type TransactionID uuid.UUID

func NewTransactionID() TransactionID {
	return TransactionID(uuid.New())
}

func ParseTransactionID(s string) (TransactionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TransactionID{}, invalid("transaction id", s)
	}
	return TransactionID(id), nil
}

func (id TransactionID) String() string { return uuid.UUID(id).String() }

func (id TransactionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id TransactionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *TransactionID) UnmarshalText(b []byte) error {
	parsed, err := ParseTransactionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

var rptIDPattern = regexp.MustCompile(`^([0-9]{11})([0-3][0-9]{17})$`)

// RptID is the 29-digit payment notice reference: an 11-digit creditor fiscal
// code followed by the 18-digit notice number.
type RptID struct {
	value string
}

func NewRptID(s string) (RptID, error) {
	if !rptIDPattern.MatchString(s) {
		return RptID{}, invalid("rpt id", s)
	}
	return RptID{value: s}, nil
}

func (r RptID) String() string { return r.value }

func (r RptID) FiscalCode() string { return r.value[:11] }

func (r RptID) NoticeNumber() string { return r.value[11:] }

func (r RptID) AuxDigit() string { return r.value[11:12] }

// ApplicationCode is only defined for aux digit 0.
func (r RptID) ApplicationCode() string {
	if r.AuxDigit() == "0" {
		return r.value[12:14]
	}
	return ""
}

// SegregationCode is only defined for aux digit 3.
func (r RptID) SegregationCode() string {
	if r.AuxDigit() == "3" {
		return r.value[12:14]
	}
	return ""
}

// IUV is what remains of the notice number after the aux digit and the application code.
func (r RptID) IUV() string {
	if r.AuxDigit() == "0" {
		return r.value[14:]
	}
	return r.value[12:]
}

func (r RptID) MarshalText() ([]byte, error) { return []byte(r.value), nil }

func (r *RptID) UnmarshalText(b []byte) error {
	parsed, err := NewRptID(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

const maxPaymentTokenLength = 35

// PaymentToken is the hub-issued handle of an activated payment notice.
// The zero value means the notice has not been activated yet.
type PaymentToken string

func NewPaymentToken(s string) (PaymentToken, error) {
	if s == "" || len(s) > maxPaymentTokenLength {
		return "", invalid("payment token", s)
	}
	return PaymentToken(s), nil
}

func (p PaymentToken) String() string { return string(p) }

// Email is a syntactically valid e-mail address.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@"):], ".") {
		return Email{}, invalid("email", s)
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }

func (e Email) MarshalText() ([]byte, error) { return []byte(e.value), nil }

func (e *Email) UnmarshalText(b []byte) error {
	parsed, err := NewEmail(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

var (
	pspFiscalCodePattern = regexp.MustCompile(`^[0-9]{11}$`)
	keyIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9]{10}$`)
)

const keyIdentifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// IdempotencyKey deduplicates activations at the hub: <PSP fiscal code>_<10 alphanumerics>.
type IdempotencyKey struct {
	pspFiscalCode string
	keyIdentifier string
}

func NewIdempotencyKey(pspFiscalCode, keyIdentifier string) (IdempotencyKey, error) {
	if !pspFiscalCodePattern.MatchString(pspFiscalCode) {
		return IdempotencyKey{}, invalid("psp fiscal code", pspFiscalCode)
	}
	if !keyIdentifierPattern.MatchString(keyIdentifier) {
		return IdempotencyKey{}, invalid("key identifier", keyIdentifier)
	}
	return IdempotencyKey{pspFiscalCode: pspFiscalCode, keyIdentifier: keyIdentifier}, nil
}

// GenerateIdempotencyKey draws a fresh random key identifier for the PSP.
func GenerateIdempotencyKey(pspFiscalCode string) (IdempotencyKey, error) {
	var sb strings.Builder
	alphabetSize := big.NewInt(int64(len(keyIdentifierAlphabet)))
	for i := 0; i < 10; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return IdempotencyKey{}, fmt.Errorf("generating key identifier: %w", err)
		}
		sb.WriteByte(keyIdentifierAlphabet[n.Int64()])
	}
	return NewIdempotencyKey(pspFiscalCode, sb.String())
}

func ParseIdempotencyKey(s string) (IdempotencyKey, error) {
	fiscalCode, identifier, ok := strings.Cut(s, "_")
	if !ok {
		return IdempotencyKey{}, invalid("idempotency key", s)
	}
	return NewIdempotencyKey(fiscalCode, identifier)
}

func (k IdempotencyKey) PSPFiscalCode() string { return k.pspFiscalCode }

func (k IdempotencyKey) KeyIdentifier() string { return k.keyIdentifier }

func (k IdempotencyKey) IsZero() bool { return k.pspFiscalCode == "" }

func (k IdempotencyKey) String() string {
	if k.IsZero() {
		return ""
	}
	return k.pspFiscalCode + "_" + k.keyIdentifier
}

func (k IdempotencyKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *IdempotencyKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = IdempotencyKey{}
		return nil
	}
	parsed, err := ParseIdempotencyKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Amount is expressed in euro cents.
type Amount int64

const maxNoticeAmount Amount = 99999999

func NewAmount(cents int64) (Amount, error) {
	if cents < 0 || Amount(cents) > maxNoticeAmount {
		return 0, invalid("amount", fmt.Sprint(cents))
	}
	return Amount(cents), nil
}

// ClientID names the channel that opened the transaction.
type ClientID string

const (
	ClientCheckout     ClientID = "CHECKOUT"
	ClientCheckoutCart ClientID = "CHECKOUT_CART"
	ClientIO           ClientID = "IO"
)

func ParseClientID(s string) (ClientID, error) {
	switch c := ClientID(s); c {
	case ClientCheckout, ClientCheckoutCart, ClientIO:
		return c, nil
	}
	return "", invalid("client id", s)
}

// PaymentNotice is one notice of a transaction. PaymentToken is empty until activation.
type PaymentNotice struct {
	PaymentToken PaymentToken `json:"paymentToken,omitempty"`
	RptID        RptID        `json:"rptId"`
	Description  string       `json:"description"`
	Amount       Amount       `json:"amount"`
}

// TotalAmount sums the notice amounts.
func TotalAmount(notices []PaymentNotice) Amount {
	var total Amount
	for _, n := range notices {
		total += n.Amount
	}
	return total
}
