// README: Firebase ID token auth; exposes the caller's uid and role to handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stayride/internal/infra"
)

const (
	callerUIDKey  = "caller_uid"
	callerRoleKey = "caller_role"
)

// Auth requires a valid "Bearer <id token>" header. A nil verifier disables
// verification and treats every caller as an anonymous guest.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Set(callerRoleKey, infra.RoleGuest)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(callerUIDKey, token.UID)
		c.Set(callerRoleKey, token.Role)
		c.Next()
	}
}

func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(callerRoleKey)
}
