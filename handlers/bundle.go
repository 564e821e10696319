package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all HTTP handlers for route registration.
type HandlerBundle struct {
	Engagement *EngagementHandler
	Settlement *SettlementHandler
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
