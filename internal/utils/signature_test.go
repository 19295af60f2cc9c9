package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"kind":"product","recordId":3,"action":"updated"}`)

	sig := GenerateSignature(payload, "webhook-secret")
	assert.True(t, VerifySignature(payload, sig, "webhook-secret"))
	assert.False(t, VerifySignature(payload, sig, "other-secret"))
	assert.False(t, VerifySignature([]byte("tampered"), sig, "webhook-secret"))
	assert.False(t, VerifySignature(payload, "", "webhook-secret"))
}
