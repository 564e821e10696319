package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

func (h *EngagementHandler) CreateFeeCheckoutHandler(c *gin.Context) {
	session, err := h.Svc.CreateFeeCheckout(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": session.ID, "checkoutUrl": session.URL})
}

type confirmFeePayload struct {
	SessionID string `json:"sessionId"`
}

// ConfirmFeePaymentHandler verifies payment with the gateway. The session id
// is optional; when absent the fee's stored session is used.
func (h *EngagementHandler) ConfirmFeePaymentHandler(c *gin.Context) {
	var payload confirmFeePayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}

	result, err := h.Svc.ConfirmFeePayment(c.Request.Context(), c.Param("id"), payload.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
