package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/handlers"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/capability"
)

// RegisterRequestRoutes registers service-request and quote endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", hb.Engagement.CreateRequestHandler)
		api.GET("/:id", hb.Engagement.GetRequestHandler)
		api.POST("/:id/photos", hb.Engagement.UploadRequestPhotoHandler)
		api.POST("/:id/quotes", hb.Engagement.SubmitQuoteHandler)
		api.GET("/:id/quotes", hb.Engagement.ListQuotesHandler)
		api.POST("/:id/select", hb.Engagement.SelectQuoteHandler)
	}
}

// RegisterFeeRoutes registers referral-fee checkout and confirmation endpoints.
func RegisterFeeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/fees")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/:id/checkout", hb.Engagement.CreateFeeCheckoutHandler)
		api.POST("/:id/confirm", hb.Engagement.ConfirmFeePaymentHandler)
	}
}

// RegisterAppointmentRoutes registers the post-payment appointment lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/:id/confirm", hb.Engagement.ConfirmAppointmentHandler)
		api.POST("/:id/revise", hb.Engagement.AttachRevisedQuoteHandler)
		api.POST("/:id/revise/accept", hb.Engagement.AcceptRevisedQuoteHandler)
		api.POST("/:id/cancel", hb.Engagement.CancelAppointmentHandler)
		api.POST("/:id/complete", hb.Engagement.CompleteAppointmentHandler)
	}
}

// RegisterSettlementRoutes registers reconciliation and refund endpoints.
// Refunds are admin-only.
func RegisterSettlementRoutes(r *gin.Engine, hb *handlers.HandlerBundle, checker capability.Checker) {
	api := r.Group("/api/settlement")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/reconcile/:sessionID", hb.Settlement.ReconcileSessionHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminMiddleware(checker))
		admin.POST("/refunds/:feeID", hb.Settlement.IssueRefundHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, checker capability.Checker) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterRequestRoutes(r, hb)
	RegisterFeeRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterSettlementRoutes(r, hb, checker)
}
