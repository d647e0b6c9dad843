package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/coursehub/backend/docs"
	"github.com/coursehub/backend/internal/auth/middleware"
	"github.com/coursehub/backend/internal/auth/service"
	"github.com/coursehub/backend/internal/cache"
	"github.com/coursehub/backend/internal/config"
	"github.com/coursehub/backend/internal/handlers"
	"github.com/coursehub/backend/internal/logger"
	loggerMiddleware "github.com/coursehub/backend/internal/logger/middleware"
	sharedMiddleware "github.com/coursehub/backend/internal/middlewares"
	"github.com/coursehub/backend/internal/notifications"
	"github.com/coursehub/backend/internal/repositories"
	"github.com/coursehub/backend/internal/services"
	"github.com/coursehub/backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title CourseHub API
// @version 1.0
// @description API for courses, their modules and content, participants and personal calendars

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for internal endpoints
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting CourseHub API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// The category cache is optional, the API keeps serving from MySQL without it
	ctx := context.Background()
	var categoryCache services.Cache = cache.NewRedisCache(rdb, "coursehub", cfg.Cache.CategoryTTL)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		categoryCache = cache.NewNoopCache()
	}

	// Create Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	notifier := notifications.NewDispatcher(asynqClient)

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	files := storage.NewLocalStorage(cfg.MediaBasePath)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	categoryRepo := repositories.NewCategoryRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	moduleRepo := repositories.NewModuleRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	adminRepo := repositories.NewCourseAdminRepository(db)
	calendarRepo := repositories.NewCalendarRepository(db)

	// Initialize services
	accountService := services.NewAccountService(userRepo, tokenGenerator)
	categoryService := services.NewCategoryService(categoryRepo, categoryCache, logger.Logger)
	courseService := services.NewCourseService(courseRepo, categoryService, membershipRepo, userRepo, adminRepo, files, logger.Logger)
	moduleService := services.NewModuleService(moduleRepo, courseRepo, membershipRepo, adminRepo, files, logger.Logger)
	contentService := services.NewContentService(contentRepo, moduleRepo, courseRepo, membershipRepo, adminRepo, files, apiBaseURL(cfg), logger.Logger)
	membershipService := services.NewMembershipService(membershipRepo, courseRepo, userRepo, adminRepo, notifier, logger.Logger)
	courseAdminService := services.NewCourseAdminService(adminRepo, courseRepo, userRepo)
	calendarService := services.NewCalendarService(calendarRepo, userRepo, notifier, logger.Logger)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, logger.Logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger.Logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	moduleHandler := handlers.NewModuleHandler(moduleService, logger.Logger)
	contentHandler := handlers.NewContentHandler(contentService, logger.Logger)
	membershipHandler := handlers.NewMembershipHandler(membershipService, logger.Logger)
	courseAdminHandler := handlers.NewCourseAdminHandler(courseAdminService, logger.Logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, logger.Logger)
	reminderHandler := handlers.NewReminderHandler(calendarService, logger.Logger)

	// Initialize auth middleware
	mw := handlers.Middlewares{
		Auth:     middleware.AuthMiddleware(tokenGenerator),
		Optional: middleware.OptionalAuthMiddleware(tokenGenerator),
		Teacher:  middleware.RoleMiddleware(tokenGenerator, middleware.RoleTeacher),
		Admin:    middleware.RoleMiddleware(tokenGenerator, middleware.RoleAdmin),
	}
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(cfg.Server.MaxBodySize, cfg.Server.MaxUploadSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		accountHandler.RegisterRoutes(r, mw)
		categoryHandler.RegisterRoutes(r, mw)
		courseHandler.RegisterRoutes(r, mw)
		moduleHandler.RegisterRoutes(r, mw)
		contentHandler.RegisterRoutes(r, mw)
		membershipHandler.RegisterRoutes(r, mw)
		courseAdminHandler.RegisterRoutes(r, mw)
		calendarHandler.RegisterRoutes(r, mw)

		// Internal endpoints (API Key protected)
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			reminderHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// apiBaseURL is the prefix of download links handed to clients
func apiBaseURL(cfg *config.Config) string {
	if cfg.MediaBaseURL != "" {
		return cfg.MediaBaseURL
	}
	return fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port)
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "coursehub_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Running from cmd/api during development finds the folder two levels up
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
