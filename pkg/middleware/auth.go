package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/server/internal/auth"
	"github.com/folio/folio/server/internal/tokens"
)

// AdminAuth returns a Gin middleware that verifies Bearer tokens signed with
// the configured secret. Verification is local and synchronous; the only
// network touch is the optional Redis blacklist lookup. Requests without a
// valid admin token are rejected closed.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		var raw string
		if n, _ := fmt.Sscanf(header, "Bearer %s", &raw); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		if black, err := auth.IsTokenBlacklisted(c.Request.Context(), raw); err == nil && black {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		claims, err := tokens.ParseAdminToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
