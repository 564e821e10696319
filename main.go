package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/config"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/cron"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/database"
	engagementRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/engagement"
	outboxRepo "github.com/teamdoneez-lab/core-crest-69848-sub002/database/repository/outbox"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/handlers"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/middleware"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/routes"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/capability"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/marketplace"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/notification"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/payment"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/settlement"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/services/storage"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitRoleCache()

	storageService, err := storage.NewCloudinaryStorageService(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	repo := engagementRepo.NewMongoEngagementRepo()
	notifRepo := outboxRepo.NewMongoOutboxRepo()

	// async task client for outbox delivery.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	})
	defer asynqClient.Close()

	// services.
	notifService := &notification.DefaultService{
		Repo:     notifRepo,
		Enqueuer: asynqClient,
		Logger:   logger.Named("notification"),
	}

	gateway := payment.NewStripeGateway(logger.Named("stripe"))

	engagementService := &marketplace.DefaultService{
		Repo:       repo,
		Gateway:    gateway,
		Notifier:   notifService,
		Logger:     logger.Named("marketplace"),
		FeePercent: config.AppConfig.ReferralFeePercent,
	}

	capabilityChecker := capability.NewHTTPChecker(
		config.AppConfig.CapabilityServiceURL,
		utils.GetRoleCacheClient(),
		time.Duration(config.AppConfig.CapabilityCacheTTLSec)*time.Second,
		logger.Named("capability"),
	)

	settlementService := &settlement.DefaultService{
		Repo:       repo,
		Gateway:    gateway,
		Capability: capabilityChecker,
		Confirmer:  engagementService,
		Notifier:   notifService,
		Logger:     logger.Named("settlement"),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Engagement: handlers.NewEngagementHandler(engagementService, storageService, logger.Named("http")),
		Settlement: handlers.NewSettlementHandler(settlementService, logger.Named("http")),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, capabilityChecker)

	// Background worker: outbox delivery, requeue sweep, fee expiry.
	cron.InitOutboxWorker(notifRepo, &notification.LogSender{Logger: logger.Named("sender")}, asynqClient, engagementService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
