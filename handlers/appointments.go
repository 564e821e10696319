package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

type confirmAppointmentPayload struct {
	StartTime time.Time `json:"startTime" binding:"required"`
}

func (h *EngagementHandler) ConfirmAppointmentHandler(c *gin.Context) {
	var payload confirmAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	apt, err := h.Svc.ConfirmAppointment(c.Request.Context(), c.Param("id"), middleware.Principal(c), payload.StartTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

type reviseQuotePayload struct {
	Amount int64 `json:"amount" binding:"required"`
}

func (h *EngagementHandler) AttachRevisedQuoteHandler(c *gin.Context) {
	var payload reviseQuotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	apt, err := h.Svc.AttachRevisedQuote(c.Request.Context(), c.Param("id"), payload.Amount, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *EngagementHandler) AcceptRevisedQuoteHandler(c *gin.Context) {
	apt, err := h.Svc.AcceptRevisedQuote(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

type cancelAppointmentPayload struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *EngagementHandler) CancelAppointmentHandler(c *gin.Context) {
	var payload cancelAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	record, err := h.Svc.CancelAppointment(c.Request.Context(), c.Param("id"), payload.Reason, middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *EngagementHandler) CompleteAppointmentHandler(c *gin.Context) {
	apt, err := h.Svc.CompleteAppointment(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}
