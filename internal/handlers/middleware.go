package handlers

import (
	"net/http"

	"pos_system/internal/services"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests without a valid Bearer session token and
// stores the session on the context for downstream handlers.
func RequireAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		session, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set("session", session)
		c.Next()
	}
}
