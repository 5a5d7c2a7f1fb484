package http

import (
	"net/http"

	"quickcare/internal/delivery/http/handler"
	"quickcare/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router                *mux.Router
	log                   *logrus.Logger
	authHandler           *handler.AuthHandler
	hospitalHandler       *handler.HospitalHandler
	appointmentHandler    *handler.AppointmentHandler
	reviewHandler         *handler.ReviewHandler
	userHandler           *handler.UserHandler
	auditLogHandler       *handler.AuditLogHandler
	paymentAttemptHandler *handler.PaymentAttemptHandler
	healthHandler         *handler.HealthHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

type Handlers struct {
	Auth           *handler.AuthHandler
	Hospital       *handler.HospitalHandler
	Appointment    *handler.AppointmentHandler
	Review         *handler.ReviewHandler
	User           *handler.UserHandler
	AuditLog       *handler.AuditLogHandler
	PaymentAttempt *handler.PaymentAttemptHandler
	Health         *handler.HealthHandler
}

func NewRouter(
	log *logrus.Logger,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		log:                   log,
		authHandler:           handlers.Auth,
		hospitalHandler:       handlers.Hospital,
		appointmentHandler:    handlers.Appointment,
		reviewHandler:         handlers.Review,
		userHandler:           handlers.User,
		auditLogHandler:       handlers.AuditLog,
		paymentAttemptHandler: handlers.PaymentAttempt,
		healthHandler:         handlers.Health,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

// Setup registers every route and returns the root handler. CORS sits
// outside the mux so preflight requests never reach method matching.
func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/google", r.authHandler.GoogleLogin).Methods(http.MethodPost)

	// Logout clears the cookie even without a valid session
	authOptional := api.PathPrefix("/auth").Subrouter()
	authOptional.Use(r.authMiddleware.Resolve)
	authOptional.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Hospital routes (public)
	hospitals := api.PathPrefix("/hospitals").Subrouter()
	hospitals.HandleFunc("", r.hospitalHandler.ListHospitals).Methods(http.MethodGet)
	hospitals.HandleFunc("/status", r.hospitalHandler.CheckConnectivity).Methods(http.MethodGet)
	hospitals.HandleFunc("/{id}/doctors", r.hospitalHandler.ListDoctors).Methods(http.MethodGet)
	hospitals.HandleFunc("/{id}/doctors/{docId}/status", r.hospitalHandler.QueueStatus).Methods(http.MethodGet)
	hospitals.HandleFunc("/{id}/review", r.reviewHandler.GetReviews).Methods(http.MethodGet)

	// Hospital routes (protected)
	hospitalsProtected := api.PathPrefix("/hospitals").Subrouter()
	hospitalsProtected.Use(r.authMiddleware.Authenticate)
	hospitalsProtected.HandleFunc("/{id}/doctors/{docId}/pay", r.hospitalHandler.Pay).Methods(http.MethodPost)
	hospitalsProtected.HandleFunc("/{id}/review", r.reviewHandler.SubmitReview).Methods(http.MethodPost)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)

	// User routes (protected)
	user := api.PathPrefix("/user").Subrouter()
	user.Use(r.authMiddleware.Authenticate)
	user.HandleFunc("/appointments", r.userHandler.GetAppointments).Methods(http.MethodGet)
	user.HandleFunc("/reviews", r.userHandler.GetReviews).Methods(http.MethodGet)
	user.HandleFunc("/dashboard", r.userHandler.GetDashboard).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/payment-attempts", r.paymentAttemptHandler.GetPaymentAttempts).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	var h http.Handler = r.router
	h = r.corsMiddleware.Handle(h)
	h = middleware.Logger(r.log)(h)
	h = middleware.Recovery(r.log)(h)
	return h
}
