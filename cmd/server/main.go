package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "toolshare-backend/internal/api/http"
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/notify"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/repository/postgres"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ToolShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Notification Dispatch
	publisher := notify.NewQueuePublisher(cfg.AMQP.URL)
	emailer := notify.NewSendGridEmailer(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	dispatcher := notify.NewDispatcher(store.NotificationRepository, store.UserRepository, emailer, publisher)

	// Initialize Services
	refunds := payment.NewQueueRefundGateway(publisher)
	settlementService := service.NewSettlementService(store.LedgerRepository, refunds)
	bookingService := service.NewBookingService(
		store.BookingRepository,
		store.UserRepository,
		settlementService,
		dispatcher,
		nil,
	)
	disputeService := service.NewDisputeService(
		store.DisputeRepository,
		store.BookingRepository,
		settlementService,
		dispatcher,
		nil,
	)
	reviewService := service.NewReviewService(
		store.ReviewRepository,
		store.BookingRepository,
		dispatcher,
		nil,
	)
	notificationService := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP API
	bookingHandler := httpapi.NewBookingHandler(bookingService, settlementService)
	disputeHandler := httpapi.NewDisputeHandler(disputeService)
	reviewHandler := httpapi.NewReviewHandler(reviewService)
	notificationHandler := httpapi.NewNotificationHandler(notificationService)

	router := httpapi.NewRouter(tokens, bookingHandler, disputeHandler, reviewHandler, notificationHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server exited", "error", err)
		log.Fatalf("HTTP server exited: %v", err)
	}
}
