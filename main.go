package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handyhub/config"
	"handyhub/cron"
	"handyhub/database"
	bookingRepoPkg "handyhub/database/repository/booking"
	providerRepoPkg "handyhub/database/repository/provider"
	userRepoPkg "handyhub/database/repository/user"
	"handyhub/handlers"
	"handyhub/routes"
	"handyhub/services/booking"
	"handyhub/services/notification"
	"handyhub/services/payment"
	"handyhub/services/provider"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	notification.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}

	// services.
	notificationService := &notification.DefaultNotificationService{
		Users:     userRepo,
		Providers: providerRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		ProviderRepo: providerRepo,
		UserRepo:     userRepo,
		SMS:          utils.LogSMSSender{},
		Notifier:     notificationService,
		Reminders:    cron.NewReminderScheduler(),
		Logger:       logger,
	}

	providerService := &provider.DefaultProviderService{
		Repo: providerRepo,
	}

	paymentService := &payment.DefaultPaymentService{
		Repo:     bookingRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	// Background workers.
	cron.InitReminderWorker(bookingRepo, notificationService)
	availabilityCron := cron.StartAvailabilityScheduler(providerRepo)
	defer availabilityCron.Stop()

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService),
		Provider: handlers.NewProviderHandler(providerService),
		Payment:  handlers.NewPaymentHandler(paymentService),
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
