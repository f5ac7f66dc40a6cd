package middleware

import (
	"crypto/subtle"
	"net/http"

	"partage/internal/apierror"

	"github.com/gin-gonic/gin"
)

// InternalSecret gates service-to-service routes behind the shared secret
// header. Not a user-facing auth scheme: no token parsing, just a constant
// time comparison.
func InternalSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("x-internal-secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Secret interne invalide"))
			return
		}
		c.Next()
	}
}
