package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "eventhive/docs"
	"eventhive/internal/delivery/http/controllers"
	"eventhive/internal/delivery/http/middleware"
	"eventhive/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, logger)
	optionalAuth := middleware.OptionalAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /auth/me", requireAuth(authController.Me))
	mux.HandleFunc("POST /auth/forgot-password", authController.ForgotPassword)
	mux.HandleFunc("POST /auth/reset-password", authController.ResetPassword)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.Create))
	mux.HandleFunc("GET /events", optionalAuth(eventController.List))
	mux.HandleFunc("GET /events/my-events", requireAuth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", optionalAuth(eventController.GetByID))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.Delete))

	// Registrations
	mux.HandleFunc("POST /registrations/{eventID}", requireAuth(registrationController.Register))
	mux.HandleFunc("DELETE /registrations/{eventID}", requireAuth(registrationController.Cancel))
	mux.HandleFunc("GET /registrations/my-registrations", requireAuth(registrationController.ListMyRegistrations))
	mux.HandleFunc("GET /registrations/event/{eventID}/attendees", requireAuth(registrationController.ListEventAttendees))

	// Operational endpoints
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
