package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConfirmFeePaymentHandlerMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &EngagementHandler{Logger: zap.NewNop()}
	r := gin.New()
	r.POST("/api/fees/:id/confirm", h.ConfirmFeePaymentHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/fees/fee-1/confirm", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
