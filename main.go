package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kingscogent/config"
	"kingscogent/database"
	notificationRepo "kingscogent/database/repository/notification"
	transactionRepo "kingscogent/database/repository/transaction"
	userRepoPkg "kingscogent/database/repository/user"
	"kingscogent/handlers"
	"kingscogent/middleware"
	"kingscogent/routes"
	"kingscogent/services/mailer"
	"kingscogent/services/notification"
	"kingscogent/services/webhook"
	"kingscogent/utils"
	"kingscogent/worker"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.GetLogger().Sugar().Fatalf("main: failed to load config: %v", err)
	}
	utils.InitializeLogger(cfg.IsProduction())
	logger := utils.GetLogger()
	defer logger.Sync()

	mongoClient, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}

	fcmClient, err := utils.FirebaseInit(cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase messaging: %v", err)
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	queueClient := asynq.NewClient(redisOpts)
	defer queueClient.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	utils.StartHealthMonitor(redisClient, mongoClient)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(mongoClient)
	txRepo := transactionRepo.NewMongoTransactionRepo(mongoClient)
	notifRepo := notificationRepo.NewMongoNotificationRepo(mongoClient)

	// services.
	dispatcher := &notification.Dispatcher{
		Notifications: notifRepo,
		Push:          fcmClient,
		Email:         queueClient,
		Logger:        logger,
	}
	webhookService := &webhook.Service{
		Users:        userRepo,
		Transactions: txRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	}

	// Background email worker.
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	emailWorker := worker.NewEmailWorker(redisOpts, smtpMailer, logger)
	emailWorker.Start()

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := &routes.HandlerBundle{
		Webhook:       handlers.NewWebhookHandler(webhookService, logger),
		Notification:  handlers.NewNotificationHandler(notifRepo, logger),
		WebhookSecret: cfg.FlutterwaveSecretHash,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	emailWorker.Shutdown()

	logger.Sugar().Info("main: server stopped gracefully")
}
