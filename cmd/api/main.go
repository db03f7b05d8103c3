package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"eventhive/config"
	"eventhive/internal/adapters/auth"
	"eventhive/internal/adapters/email"
	delivery "eventhive/internal/delivery/http"
	"eventhive/internal/delivery/http/controllers"
	"eventhive/internal/delivery/http/middleware"
	"eventhive/internal/metrics"
	"eventhive/internal/repository/postgres"
	"eventhive/internal/repository/rediscache"
	"eventhive/internal/services"
)

// @title EventHive API
// @version 1.0
// @description Event registration and capacity management API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(db, "migrations"); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	txManager := postgres.NewTxManager(db)

	// A typed-nil *EventCache would defeat the service's interface nil check,
	// so assign the interface only when a cache was actually configured.
	var cache services.ListingCache
	eventCache, err := rediscache.New(cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	if eventCache != nil {
		cache = eventCache
		defer eventCache.Close()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()
	emailService := services.NewEmailService(mailer, renderer)

	notifier := services.NewQueueNotifier(emailService, cfg.NotifierQueueSize, m, logger)
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	go notifier.Run(notifierCtx)

	tokenIssuer, tokenVerifier := auth.NewJWT(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry, emailService, logger)
	eventService := services.NewEventService(eventRepo, userRepo, cache, logger)
	registrationService := services.NewRegistrationService(eventRepo, registrationRepo, txManager, notifier, m, logger)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	registrationController := controllers.NewRegistrationController(logger, registrationService)

	mux := delivery.NewRouter(authController, eventController, registrationController, tokenVerifier, logger)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	stopNotifier()
	logger.Info("server stopped")
}
