package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickcare/config"
	deliveryHttp "quickcare/internal/delivery/http"
	"quickcare/internal/delivery/http/handler"
	"quickcare/internal/delivery/http/middleware"
	"quickcare/internal/infrastructure/cache"
	"quickcare/internal/infrastructure/database"
	"quickcare/internal/infrastructure/google"
	"quickcare/internal/infrastructure/hospital"
	"quickcare/internal/repository"
	"quickcare/internal/service"
	"quickcare/internal/usecase"
	"quickcare/pkg/jwt"
	"quickcare/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Log.Info("Database migrations applied")
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize hospital directory
	directory, err := loadHospitalDirectory(cfg.Hospital, app.Log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load hospital directory: %w", err)
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, app.Log, db, redisClient, directory)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// loadHospitalDirectory prefers the directory file, which is watched for
// changes, over the URL table from the environment.
func loadHospitalDirectory(cfg config.HospitalConfig, log *logrus.Logger) (*hospital.Directory, error) {
	if cfg.DirectoryFile == "" {
		log.Infof("Hospital directory loaded from environment with %d hospitals", len(cfg.URLs))
		return hospital.NewDirectory(cfg.URLs)
	}

	file, err := config.OpenHospitalDirectoryFile(cfg.DirectoryFile)
	if err != nil {
		return nil, err
	}
	directory, err := hospital.NewDirectory(file.Hospitals())
	if err != nil {
		return nil, err
	}

	file.Watch(func(hospitals map[string]string) {
		if err := directory.Replace(hospitals); err != nil {
			log.Errorf("Rejected hospital directory reload from %s: %+v", cfg.DirectoryFile, err)
			return
		}
		log.Infof("Hospital directory reloaded with %d hospitals", len(hospitals))
	})

	log.Infof("Hospital directory loaded from %s with %d hospitals", cfg.DirectoryFile, len(directory.IDs()))
	return directory, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, directory *hospital.Directory) *http.Server {
	// Initialize JWT and session services
	jwtService := jwt.NewJWTService(cfg.JWT)
	revocationStore := service.NewRedisTokenRevocationStore(redisClient)
	sessionService := service.NewSessionService(jwtService, revocationStore, cfg.Session, log)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	attemptRepo := repository.NewPaymentAttemptRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize external clients
	hospitalClient := hospital.NewClient(directory, hospital.Options{
		ReadTimeout: cfg.Hospital.ReadTimeout,
		PayTimeout:  cfg.Hospital.PayTimeout,
	}, log)
	googleVerifier := google.NewTokenVerifier(cfg.Google.TokenInfoURL, cfg.Google.ClientID, nil)

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, sessionService, googleVerifier, auditService)
	bookingUsecase := usecase.NewBookingUsecase(log, userRepo, attemptRepo, hospitalClient, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo)
	reviewUsecase := usecase.NewReviewUsecase(log, userRepo, reviewRepo, hospitalClient, auditService)
	hospitalUsecase := usecase.NewHospitalUsecase(log, hospitalClient)
	userUsecase := usecase.NewUserUsecase(log, userRepo, appointmentRepo, reviewRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)
	paymentAttemptUsecase := usecase.NewPaymentAttemptUsecase(log, attemptRepo)
	healthUsecase := usecase.NewHealthUsecase(log, map[string]usecase.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:           handler.NewAuthHandler(authUsecase, sessionService, customValidator),
		Hospital:       handler.NewHospitalHandler(hospitalUsecase, bookingUsecase, customValidator),
		Appointment:    handler.NewAppointmentHandler(appointmentUsecase, bookingUsecase, customValidator),
		Review:         handler.NewReviewHandler(reviewUsecase, customValidator),
		User:           handler.NewUserHandler(appointmentUsecase, reviewUsecase, userUsecase),
		AuditLog:       handler.NewAuditLogHandler(auditLogUsecase),
		PaymentAttempt: handler.NewPaymentAttemptHandler(paymentAttemptUsecase),
		Health:         handler.NewHealthHandler(healthUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(log, handlers, authMiddleware, corsMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// In-flight pay calls finish their bookkeeping before connections close
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
