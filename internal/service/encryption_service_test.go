package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAESKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestAESEncryptionService_RoundTrip(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	ct, err := svc.Encrypt("foo@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "v1:"))
	assert.NotContains(t, ct, "foo@example.com")

	pt, err := svc.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "foo@example.com", pt)
}

func TestAESEncryptionService_RandomNonce(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	a, err := svc.Encrypt("same")
	require.NoError(t, err)
	b, err := svc.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestAESEncryptionService_InvalidKey(t *testing.T) {
	_, err := NewAESEncryptionService("not-hex")
	assert.Error(t, err)

	_, err = NewAESEncryptionService("0123456789abcdef")
	assert.Error(t, err)
}

func TestAESEncryptionService_DecryptErrors(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	other, err := NewAESEncryptionService(strings.Repeat("ab", 32))
	require.NoError(t, err)
	foreign, err := other.Encrypt("foo@example.com")
	require.NoError(t, err)

	for _, ct := range []string{"", "plain", "v2:abcd", "v1:!!!", "v1:AAAA", foreign} {
		_, err := svc.Decrypt(ct)
		assert.Error(t, err, ct)
	}
}
