package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coursehub/backend/internal/config"
	"github.com/coursehub/backend/internal/logger"
	"github.com/coursehub/backend/internal/notifications"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

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

	logger.Logger.Info("Starting CourseHub notification worker")

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				notifications.Queue: 1,
			},
			Logger: logger.Logger.Sugar(),
		},
	)

	// Create worker instance
	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	worker := NewWorker(logger.Logger, dialer, cfg.SMTP.From)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(notifications.TypeEnrollmentConfirmation, worker.HandleEnrollmentConfirmation)
	mux.HandleFunc(notifications.TypeEventReminder, worker.HandleEventReminder)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}
