package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/capability"
)

// AdminMiddleware rejects principals without the admin capability. Runs
// after AuthMiddleware.
func AdminMiddleware(checker capability.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID := Principal(c)
		if principalID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		isAdmin, err := checker.HasRole(c.Request.Context(), principalID, capability.RoleAdmin)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Capability service unavailable"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Next()
	}
}
