package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const signaturePrefix = "sha256="

// Sign returns the x-signature value of body: "sha256=" followed by the hex
// HMAC-SHA256 of the raw bytes.
func Sign(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return signaturePrefix + hex.EncodeToString(h.Sum(nil))
}

// VerifyHMAC checks the x-signature header against the raw request body.
func (g *Gate) VerifyHMAC(signature string, rawBody []byte) bool {
	if g.config.HMACSecret == "" || signature == "" {
		return false
	}
	expected := Sign(g.config.HMACSecret, rawBody)
	return hmac.Equal([]byte(signature), []byte(expected))
}
