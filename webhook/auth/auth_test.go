package auth

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testToken  = "tok_live_123"
	testSecret = "hmac-secret"
)

func testGate() *Gate {
	return NewGate(Config{
		BearerToken: testToken,
		HMACSecret:  testSecret,
		AdminUser:   "admin",
		AdminPass:   "hunter2",
	})
}

func TestSign(t *testing.T) {
	// echo -n 'abc' | openssl dgst -sha256 -hmac 'key'
	assert.Equal(t,
		"sha256=9c196e32dc0175f86f4b1cb89289d6619de6bee699e4c378e68309ed97a1a6ab",
		Sign("key", []byte("abc")))
}

func TestVerifyBearer(t *testing.T) {
	g := testGate()
	assert.True(t, g.VerifyBearer("Bearer "+testToken))
	assert.False(t, g.VerifyBearer("Bearer wrong"))
	assert.False(t, g.VerifyBearer(testToken))
	assert.False(t, g.VerifyBearer("bearer "+testToken))
	assert.False(t, g.VerifyBearer(""))
}

func TestVerifyBearerFailsClosedWithoutToken(t *testing.T) {
	g := NewGate(Config{HMACSecret: testSecret})
	assert.False(t, g.VerifyBearer("Bearer "))
	assert.False(t, g.VerifyBearer("Bearer anything"))
}

func TestVerifyHMAC(t *testing.T) {
	g := testGate()
	body := []byte(`{"title":"Prince's"}`)

	assert.True(t, g.VerifyHMAC(Sign(testSecret, body), body))
	assert.False(t, g.VerifyHMAC(Sign(testSecret, body), []byte(`{"title":"Princes"}`)))
	assert.False(t, g.VerifyHMAC(Sign("other", body), body))
	assert.False(t, g.VerifyHMAC("", body))
	// the bare hex without the sha256= prefix is not accepted
	assert.False(t, g.VerifyHMAC(Sign(testSecret, body)[len("sha256="):], body))
}

func TestVerifyHMACFailsClosedWithoutSecret(t *testing.T) {
	g := NewGate(Config{BearerToken: testToken})
	body := []byte(`{}`)
	assert.False(t, g.VerifyHMAC(Sign("", body), body))
}

func TestAuthorize(t *testing.T) {
	g := testGate()
	body := []byte(`{"a":1}`)

	h := http.Header{}
	assert.False(t, g.Authorize(h, body))

	h.Set(AuthorizationHeader, "Bearer "+testToken)
	assert.True(t, g.Authorize(h, body))

	h = http.Header{}
	h.Set(SignatureHeader, Sign(testSecret, body))
	assert.True(t, g.Authorize(h, body))

	// a bad token does not prevent a good signature from passing
	h.Set(AuthorizationHeader, "Bearer nope")
	assert.True(t, g.Authorize(h, body))
}

func TestVerifyBasic(t *testing.T) {
	g := testGate()
	encode := func(s string) string { return "Basic " + base64.StdEncoding.EncodeToString([]byte(s)) }

	assert.True(t, g.VerifyBasic(encode("admin:hunter2")))
	assert.False(t, g.VerifyBasic(encode("admin:wrong")))
	assert.False(t, g.VerifyBasic(encode("root:hunter2")))
	assert.False(t, g.VerifyBasic(encode("adminhunter2")))
	assert.False(t, g.VerifyBasic("Basic !!notbase64"))
	assert.False(t, NewGate(Config{}).VerifyBasic(encode(":")))
}

func TestConfigValidation(t *testing.T) {
	assert.NotNil(t, Config{}.ValidateWebhook())
	assert.Nil(t, Config{BearerToken: "x"}.ValidateWebhook())
	assert.Nil(t, Config{HMACSecret: "x"}.ValidateWebhook())

	assert.NotNil(t, Config{AdminUser: "a"}.ValidateAdmin())
	assert.Nil(t, Config{AdminUser: "a", AdminPass: "b"}.ValidateAdmin())
}
