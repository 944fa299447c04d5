package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRptID_Decomposition(t *testing.T) {
	tests := []struct {
		name            string
		value           string
		auxDigit        string
		applicationCode string
		segregationCode string
		iuv             string
	}{
		{"aux digit 0", "77777777777002016723749670035", "0", "02", "", "016723749670035"},
		{"aux digit 1", "77777777777102016723749670035", "1", "", "", "02016723749670035"},
		{"aux digit 2", "77777777777202016723749670035", "2", "", "", "02016723749670035"},
		{"aux digit 3", "77777777777302016723749670035", "3", "", "02", "02016723749670035"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRptID(tt.value)
			require.NoError(t, err)

			assert.Equal(t, "77777777777", r.FiscalCode())
			assert.Equal(t, tt.auxDigit, r.AuxDigit())
			assert.Equal(t, tt.applicationCode, r.ApplicationCode())
			assert.Equal(t, tt.segregationCode, r.SegregationCode())
			assert.Equal(t, tt.iuv, r.IUV())
			assert.Equal(t, r.NoticeNumber(), r.AuxDigit()+r.ApplicationCode()+r.IUV())
			assert.Equal(t, tt.value, r.String())
		})
	}
}

func TestRptID_Invalid(t *testing.T) {
	for _, v := range []string{
		"",
		"7777777777730201672374967003",   // 28 chars
		"777777777773020167237496700351", // 30 chars
		"77777777777402016723749670035",  // aux digit 4
		"7777777777A302016723749670035",
	} {
		_, err := NewRptID(v)
		assert.ErrorIs(t, err, ErrInvalidValue, v)
	}
}

func TestIdempotencyKey_RoundTrip(t *testing.T) {
	key, err := NewIdempotencyKey("12345678901", "aabbccddee")
	require.NoError(t, err)
	assert.Equal(t, "12345678901_aabbccddee", key.String())

	parsed, err := ParseIdempotencyKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
	assert.Equal(t, "12345678901", parsed.PSPFiscalCode())
	assert.Equal(t, "aabbccddee", parsed.KeyIdentifier())
}

func TestIdempotencyKey_Invalid(t *testing.T) {
	tests := []struct {
		fiscalCode string
		identifier string
	}{
		{"1234567890", "aabbccddee"},
		{"1234567890A", "aabbccddee"},
		{"12345678901", "aabbccdde"},
		{"12345678901", "aabbccdde_"},
	}
	for _, tt := range tests {
		_, err := NewIdempotencyKey(tt.fiscalCode, tt.identifier)
		assert.ErrorIs(t, err, ErrInvalidValue)
	}

	_, err := ParseIdempotencyKey("12345678901aabbccddee")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestGenerateIdempotencyKey(t *testing.T) {
	a, err := GenerateIdempotencyKey("12345678901")
	require.NoError(t, err)
	b, err := GenerateIdempotencyKey("12345678901")
	require.NoError(t, err)

	assert.Regexp(t, `^12345678901_[a-zA-Z0-9]{10}$`, a.String())
	assert.NotEqual(t, a, b)

	_, err = GenerateIdempotencyKey("bad")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEmail(t *testing.T) {
	e, err := NewEmail("foo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "foo@example.com", e.String())

	for _, v := range []string{"", "foo", "foo@", "Foo <foo@example.com>", "foo@localhost"} {
		_, err := NewEmail(v)
		assert.True(t, errors.Is(err, ErrInvalidValue), v)
	}
}

func TestPaymentToken(t *testing.T) {
	_, err := NewPaymentToken("")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewPaymentToken("0123456789012345678901234567890123456")
	assert.ErrorIs(t, err, ErrInvalidValue)

	tok, err := NewPaymentToken("a3f6b2c1")
	require.NoError(t, err)
	assert.Equal(t, "a3f6b2c1", tok.String())
}

func TestAmount(t *testing.T) {
	_, err := NewAmount(-1)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = NewAmount(100000000)
	assert.ErrorIs(t, err, ErrInvalidValue)

	a, err := NewAmount(1000)
	require.NoError(t, err)
	assert.Equal(t, Amount(1000), a)
}

func TestParseClientID(t *testing.T) {
	c, err := ParseClientID("CHECKOUT")
	require.NoError(t, err)
	assert.Equal(t, ClientCheckout, c)

	_, err = ParseClientID("WEB")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestTransactionID_Text(t *testing.T) {
	id := NewTransactionID()
	parsed, err := ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.False(t, id.IsZero())

	_, err = ParseTransactionID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPaymentNotice_JSONValidatesOnDecode(t *testing.T) {
	var n PaymentNotice
	err := json.Unmarshal([]byte(`{"rptId":"123","amount":100}`), &n)
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, json.Unmarshal([]byte(`{"rptId":"77777777777302016723749670035","amount":100,"paymentToken":"tok"}`), &n))
	assert.Equal(t, PaymentToken("tok"), n.PaymentToken)
	assert.Equal(t, Amount(100), n.Amount)
}

func TestTotalAmount(t *testing.T) {
	assert.Equal(t, Amount(350), TotalAmount([]PaymentNotice{{Amount: 100}, {Amount: 250}}))
	assert.Equal(t, Amount(0), TotalAmount(nil))
}

func TestTransactionStatus_IsFinal(t *testing.T) {
	assert.True(t, StatusNotifiedOK.IsFinal())
	assert.True(t, StatusCanceled.IsFinal())
	assert.True(t, StatusUnauthorized.IsFinal())
	assert.False(t, StatusClosed.IsFinal())
	assert.False(t, StatusClosureError.IsFinal())
}
