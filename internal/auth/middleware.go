package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vulntrack/internal/token"
)

const claimsKey = "claims"

// Bearer returns a Gin middleware that validates the Authorization header
// against the token service. Downstream handlers never run without a
// validated identity.
func Bearer(svc *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing bearer token",
			})
			return
		}

		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		claims, err := svc.ValidateAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentClaims reads the validated identity set by Bearer.
func CurrentClaims(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}
