package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"railbot/config"
	"railbot/database"
	historyRepo "railbot/database/repository/history"
	trainRepo "railbot/database/repository/train"
	"railbot/handlers"
	"railbot/middleware"
	"railbot/routes"
	"railbot/services/booking"
	"railbot/services/concierge"
	"railbot/utils"
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
	trains := trainRepo.NewMongoTrainRepo()
	history := historyRepo.NewMongoHistoryRepo()

	// services.
	ticketService := &booking.DefaultTicketService{
		Repo: trains,
	}

	geminiClient, err := concierge.NewGeminiClient(
		context.Background(),
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	offerStore := concierge.NewRedisOfferStore(utils.GetContextCacheClient(), 30*time.Minute)
	conciergeService := concierge.NewConciergeService(geminiClient, ticketService, offerStore)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatStreamHandler: handlers.ChatStreamHandler(conciergeService, history),
		GetChatHistory:    handlers.GetChatHistoryHandler(history),
		ClearChatHandler:  handlers.ClearChatHandler(conciergeService, history),

		GetTrainsHandler:   handlers.GetTrainsHandler(ticketService),
		AddTrainHandler:    handlers.AddTrainHandler(ticketService),
		UpdateTrainHandler: handlers.UpdateTrainHandler(ticketService),
		DeleteTrainHandler: handlers.DeleteTrainHandler(ticketService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetContextCacheClient()},
		database.MongoClient,
	)

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
