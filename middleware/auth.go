package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

// PrincipalKey is the gin context key holding the authenticated principal id.
const PrincipalKey = "principalID"

// AuthMiddleware validates the bearer token and stores the principal id on
// the context. Token issuance belongs to the external identity service; this
// only consumes it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		principalID, err := utils.ExtractPrincipalFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(PrincipalKey, principalID)
		c.Next()
	}
}

// Principal returns the authenticated principal id from the context.
func Principal(c *gin.Context) string {
	val, ok := c.Get(PrincipalKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}
