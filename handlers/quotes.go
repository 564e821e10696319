package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

type submitQuotePayload struct {
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

func (h *EngagementHandler) SubmitQuoteHandler(c *gin.Context) {
	var payload submitQuotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	quote, err := h.Svc.SubmitQuote(c.Request.Context(), c.Param("id"), middleware.Principal(c), payload.Amount, payload.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func (h *EngagementHandler) ListQuotesHandler(c *gin.Context) {
	quotes, err := h.Svc.ListQuotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

type selectQuotePayload struct {
	QuoteID string `json:"quoteId" binding:"required"`
}

func (h *EngagementHandler) SelectQuoteHandler(c *gin.Context) {
	var payload selectQuotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	fee, err := h.Svc.SelectQuote(c.Request.Context(), c.Param("id"), payload.QuoteID, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee": fee})
}
