package middlewares

import (
	"net/http"

	"github.com/Luismorlan/nashbites/webhook/auth"
	"github.com/gin-gonic/gin"
)

const (
	ErrorBasicAuthFail = "BASIC_AUTH_FAILED"
	basicAuthRealm     = `Basic realm="Admin Area"`
)

// BasicAuth guards admin routes with the admin credentials of gate. It fails
// closed when no admin credentials are configured.
func BasicAuth(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.VerifyBasic(c.GetHeader(auth.AuthorizationHeader)) {
			c.Header("WWW-Authenticate", basicAuthRealm)
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":  ErrorBasicAuthFail,
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
