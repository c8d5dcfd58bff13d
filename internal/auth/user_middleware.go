package auth

import (
	"net/http"

	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// RequireUser checks that the authenticated user still exists.
// It must be used AFTER AuthMiddleware. repoFor returns the repository
// serving the current request.
func RequireUser(repoFor func(*gin.Context) repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := Username(c)
		if !ok {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, err := repoFor(c).GetUser(c.Request.Context(), username)
		if err != nil {
			logging.Error().Err(err).Str("username", username).Msg("user lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
			return
		}

		c.Set(UsernameKey, user.Username)
		c.Next()
	}
}
