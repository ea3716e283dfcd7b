package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/entities"
)

// ContextKeyClaims is the gin context key under which verified token
// claims are stored.
const ContextKeyClaims = "auth_claims"

// RequireAuth verifies the Bearer token and stores its claims in the
// request context. Malformed or expired tokens get a 401.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "token não fornecido",
				"error":   "MISSING_TOKEN",
			})
			return
		}

		claims := VerifyToken(strings.TrimPrefix(header, "Bearer "), secret)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "token inválido ou expirado",
				"error":   "INVALID_TOKEN",
			})
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin allows only tokens carrying the admin role. Must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != entities.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "acesso restrito a administradores",
				"error":   "FORBIDDEN",
			})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by RequireAuth,
// or nil when the request is unauthenticated.
func ClaimsFromContext(c *gin.Context) *Claims {
	value, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
