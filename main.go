package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/database"
	"github.com/zherujiang/spotlight/internal/database/migrations"
	"github.com/zherujiang/spotlight/internal/directory/db"
	"github.com/zherujiang/spotlight/internal/directory/directory_api"
	directory "github.com/zherujiang/spotlight/internal/directory/service"
	"github.com/zherujiang/spotlight/internal/kafka"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/share"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	logger := logger.NewLogger(cfg.Log)
	defer logger.Close()

	logger.Info("APP", "Starting Spotlight directory service initialization")
	if envErr != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx := context.Background()

	logger.Info("APP", "Verifying database connection")
	bunDB, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, bunDB, cfg.Database.Driver, logger); err != nil {
			logger.Fatal("MIGRATION", fmt.Sprintf("Failed to migrate schema: %v", err))
		}
	} else {
		logger.Info("MIGRATION", "AUTO_MIGRATE disabled, skipping schema migrations")
	}

	var events directory.Publisher = directory.NoopPublisher{}
	if cfg.Kafka.Enabled {
		logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Kafka.Brokers))
		producer := kafka.NewProducer(cfg.Kafka, logger)
		defer producer.Close()

		topics := make([]string, 0, len(kafka.EventTypes))
		for _, eventType := range kafka.EventTypes {
			topics = append(topics, producer.Topic(eventType))
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics, logger); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
		events = producer
	} else {
		logger.Info("KAFKA", "Kafka disabled, booking events will not be published")
	}

	directoryService := directory.NewDirectoryService(&db.DB{Bun: bunDB}, events, logger)
	handler := directory_api.NewHandler(directoryService, share.NewQRGenerator(cfg.Server.PublicBaseURL), logger)

	logger.Info("HTTP", "Setting up router and middleware")
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      directory_api.NewRouter(handler, cfg.Server, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Spotlight running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Spotlight shutdown complete")
	}
}
