// Package auth is the authentication gate of the ingestion webhooks. A request
// is accepted when either its bearer token or its HMAC signature is valid.
// Secrets are injected through Config, a scheme whose secret is empty always
// fails closed.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	AuthorizationHeader = "Authorization"
	SignatureHeader     = "x-signature"

	bearerPrefix = "Bearer "
	basicPrefix  = "Basic "
)

type Config struct {
	BearerToken string
	HMACSecret  string
	AdminUser   string
	AdminPass   string
}

// ConfigFromEnv reads the secrets from env. It is only meant to be called
// from main, after dotenv files are loaded.
func ConfigFromEnv() Config {
	return Config{
		BearerToken: os.Getenv("WEBHOOK_TOKEN"),
		HMACSecret:  os.Getenv("WEBHOOK_HMAC_SECRET"),
		AdminUser:   os.Getenv("ADMIN_BASIC_AUTH_USER"),
		AdminPass:   os.Getenv("ADMIN_BASIC_AUTH_PASS"),
	}
}

// ValidateWebhook fails when no webhook scheme is usable, so that a
// misconfigured server refuses to start instead of rejecting every call.
func (c Config) ValidateWebhook() error {
	if c.BearerToken == "" && c.HMACSecret == "" {
		return errors.New("neither WEBHOOK_TOKEN nor WEBHOOK_HMAC_SECRET is configured")
	}
	return nil
}

func (c Config) ValidateAdmin() error {
	if c.AdminUser == "" || c.AdminPass == "" {
		return errors.New("ADMIN_BASIC_AUTH_USER and ADMIN_BASIC_AUTH_PASS must both be configured")
	}
	return nil
}

type Gate struct {
	config Config
}

func NewGate(config Config) *Gate {
	return &Gate{config: config}
}

// Authorize accepts the request if either scheme validates. rawBody must be
// the exact bytes received, the caller reads the body once and shares it with
// the json parsing.
func (g *Gate) Authorize(header http.Header, rawBody []byte) bool {
	if g.VerifyBearer(header.Get(AuthorizationHeader)) {
		return true
	}
	return g.VerifyHMAC(header.Get(SignatureHeader), rawBody)
}

// VerifyBearer checks "Authorization: Bearer <token>".
func (g *Gate) VerifyBearer(authHeader string) bool {
	if g.config.BearerToken == "" {
		return false
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return false
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)
	return secureEqual(token, g.config.BearerToken)
}

// VerifyBasic checks the admin "Authorization: Basic <base64(user:pass)>".
func (g *Gate) VerifyBasic(authHeader string) bool {
	if g.config.AdminUser == "" || g.config.AdminPass == "" {
		return false
	}
	if !strings.HasPrefix(authHeader, basicPrefix) {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, basicPrefix))
	if err != nil {
		return false
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return false
	}
	// Evaluate both to not leak which half was wrong.
	userOk := secureEqual(parts[0], g.config.AdminUser)
	passOk := secureEqual(parts[1], g.config.AdminPass)
	return userOk && passOk
}

func secureEqual(given string, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
