package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/service"
)

// PrincipalKey is the gin context key the verified principal is stored
// under.
const PrincipalKey = "principal"

// AuthMiddleware validates the bearer access token on every request and
// rejects the request before any handler runs if the token is missing,
// malformed, expired or badly signed. Verification is pure in-memory
// cryptography; the refresh store is never consulted on this path.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		principal, err := authService.Verify(token)
		if err != nil {
			// Expired and forged tokens are deliberately indistinguishable
			// to the caller.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the principal attached by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (*core.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}

	principal, ok := value.(*core.Principal)
	return principal, ok
}
