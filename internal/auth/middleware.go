package auth

import (
	"net/http"
	"strings"

	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

// Username returns the authenticated username, if any.
func Username(c *gin.Context) (string, bool) {
	v, ok := c.Get(UsernameKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}

// AuthMiddleware rejects requests without a valid bearer token and sets
// the username for the rest of the chain.
func AuthMiddleware(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		username, err := issuer.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(UsernameKey, username)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the username if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if username, err := issuer.ParseToken(tokenString); err == nil {
				c.Set(UsernameKey, username)
			}
		}
		c.Next()
	}
}
