package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Verifier checks HMAC-SHA256 signatures attached to webhook deliveries.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier with the shared webhook secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign computes the hex-encoded HMAC-SHA256 signature of the payload.
func (v *Verifier) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify validates the signature presented with a webhook payload.
func (v *Verifier) Verify(payload []byte, signature string) error {
	if signature == "" {
		return ErrInvalidSignature
	}
	expected := v.Sign(payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
