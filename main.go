package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tempo/config"
	"tempo/cron"
	"tempo/database"
	policyRepoPkg "tempo/database/repository/policy"
	"tempo/handlers"
	"tempo/middleware"
	"tempo/routes"
	"tempo/services/calendar"
	"tempo/services/intelligence"
	"tempo/services/mailer"
	"tempo/services/schedule"
	"tempo/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	policyRepo := policyRepoPkg.NewMongoPolicyRepo()

	// external capabilities.
	tokenStore := calendar.NewRedisTokenStore(utils.GetTokenClient())
	calendarProvider := calendar.NewGoogleProvider(
		config.AppConfig.GoogleClientID,
		config.AppConfig.GoogleClientSecret,
		tokenStore,
	)
	gmailMailer := mailer.NewGmailMailer(
		config.AppConfig.GoogleClientID,
		config.AppConfig.GoogleClientSecret,
		tokenStore,
		config.AppConfig.DigestFromAddress,
	)

	// services.
	scheduleService := &schedule.DefaultScheduleService{
		Calendar: calendarProvider,
		Cache:    utils.GetCacheClient(),
		Executor: schedule.NewExecutor(calendarProvider, 0),
	}

	ctxStore := intelligence.NewRedisContextStore(utils.GetAssistantContextClient(), 30*time.Minute)
	var gemini *intelligence.GeminiClient
	if config.AppConfig.GeminiAPIKey != "" {
		gemini = intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	} else {
		logger.Warn("GEMINI_API_KEY not set; assistant replies fall back to engine summaries")
	}
	assistantService := intelligence.NewDefaultAssistantService(ctxStore, scheduleService, gemini)

	// background digest worker and its queue client.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	cron.InitDigestWorker(scheduleService, policyRepo, gmailMailer)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(scheduleService, assistantService, policyRepo, queueClient)
	routes.RegisterRoutes(router, handlerBundle)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
