// File: staywise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staywise/config"
	"staywise/cron"
	"staywise/database"
	accountRepoPkg "staywise/database/repository/account"
	bookingRepoPkg "staywise/database/repository/booking"
	roomRepoPkg "staywise/database/repository/room"
	"staywise/handlers"
	"staywise/middleware"
	"staywise/routes"
	"staywise/services/account"
	"staywise/services/alert"
	"staywise/services/availability"
	"staywise/services/payment"
	"staywise/services/pricing"
	"staywise/services/recommend"
	"staywise/services/reservation"
	"staywise/services/settlement"
	"staywise/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	if err := roomRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure room indexes: %v", err)
	}
	if err := bookingRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := accountRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure account indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	accountRepo := accountRepoPkg.NewMongoAccountRepo()

	// operator alert queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAlertDB,
	})
	defer asynqClient.Close()
	alertNotifier := alert.NewAsynqNotifier(asynqClient, logger)
	cron.InitAlertWorker()

	// services.
	pricingEngine := pricing.NewEngine()
	availabilityResolver := &availability.Resolver{
		Rooms:    roomRepo,
		Bookings: bookingRepo,
		Pricing:  pricingEngine,
	}
	paymentOrchestrator := payment.NewOrchestrator(
		roomRepo,
		pricingEngine,
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
		logger,
	)
	settlementProcessor := settlement.NewProcessor(
		bookingRepo,
		roomRepo,
		accountRepo,
		alertNotifier,
		config.AppConfig.StripeWebhookSecret,
		logger,
	)
	reservationService := reservation.NewService(bookingRepo, roomRepo, accountRepo, pricingEngine, logger)
	accountService := account.NewService(
		accountRepo,
		&account.RedisWhitelist{Client: utils.GetAuthCacheClient()},
		logger,
	)
	recommendService := recommend.NewService(
		availabilityResolver,
		recommend.NewGeminiClient(config.AppConfig.GeminiAPIKey),
	)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Rooms:     handlers.NewRoomHandler(roomRepo, availabilityResolver),
		Bookings:  handlers.NewBookingHandler(reservationService, paymentOrchestrator, logger),
		Stripe:    handlers.NewStripeHandler(settlementProcessor, paymentOrchestrator, logger),
		Auth:      handlers.NewAuthHandler(accountService),
		Recommend: handlers.NewRecommendHandler(recommendService),
	}

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
