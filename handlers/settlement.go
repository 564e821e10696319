package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/settlement"
)

// SettlementHandler exposes reconciliation and refund operations.
type SettlementHandler struct {
	Svc    settlement.Service
	Logger *zap.Logger
}

func NewSettlementHandler(svc settlement.Service, logger *zap.Logger) *SettlementHandler {
	return &SettlementHandler{Svc: svc, Logger: logger}
}

func (h *SettlementHandler) ReconcileSessionHandler(c *gin.Context) {
	result, err := h.Svc.ReconcileCheckoutSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SettlementHandler) IssueRefundHandler(c *gin.Context) {
	fee, err := h.Svc.IssueRefund(c.Request.Context(), c.Param("feeID"), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee": fee})
}
