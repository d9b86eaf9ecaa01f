package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ate-lier/microservice-questions/internal/config"
	"github.com/Ate-lier/microservice-questions/internal/handler"
	"github.com/Ate-lier/microservice-questions/internal/middleware"
	"github.com/Ate-lier/microservice-questions/internal/repository"
	"github.com/Ate-lier/microservice-questions/internal/service"
	"github.com/Ate-lier/microservice-questions/pkg/db"
	"github.com/Ate-lier/microservice-questions/pkg/helpers"
	"github.com/Ate-lier/microservice-questions/pkg/logger"
	"github.com/Ate-lier/microservice-questions/pkg/metrics"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger("qa-service", cfg.LogLevel)
	log.Info("Starting Q&A Service...")

	// Initialize database connection
	conn, err := db.NewConnection(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer conn.Close()

	// Validate schema
	schemaGuard := db.NewSchemaGuard(conn.DB)
	if err := schemaGuard.ValidateTables(db.QATables()); err != nil {
		log.WithError(err).Warn("Schema validation warning")
	}
	log.Info("Database connected and schema validated")

	// Initialize repositories
	questionRepo := repository.NewQuestionRepository(conn.DB)
	answerRepo := repository.NewAnswerRepository(conn.DB)
	photoRepo := repository.NewPhotoRepository(conn.DB)

	// Initialize services
	questionService := service.NewQuestionService(questionRepo)
	answerService := service.NewAnswerService(conn.DB, answerRepo, photoRepo)

	// Initialize HTTP handlers
	validate := helpers.NewCustomValidator()
	questionHandler := handler.NewQuestionHandler(questionService, validate, log)
	answerHandler := handler.NewAnswerHandler(answerService, validate, log)

	// Metrics
	serviceMetrics := metrics.NewMetrics("qa")
	stopPoolStats := make(chan struct{})
	go metrics.CollectPoolStats(serviceMetrics, conn.DB, 15*time.Second, stopPoolStats)

	// Build the middleware chain around the router
	var routes http.Handler = handler.NewRouter(questionHandler, answerHandler)
	routes = metrics.HTTPMiddleware(serviceMetrics)(routes)
	routes = middleware.ThrottleMiddleware(cfg.RequestsPerMinute)(routes)
	routes = middleware.LoggingMiddleware(log)(routes)
	routes = middleware.CORSMiddleware(routes)
	routes = middleware.RequestIDMiddleware(routes)
	routes = middleware.RecoveryMiddleware(log)(routes)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: routes,
	}

	// Metrics endpoint on its own port
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux,
	}

	go func() {
		log.WithField("port", cfg.MetricsPort).Info("Metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Metrics server failed")
		}
	}()

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("Q&A Service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down gracefully...")
	close(stopPoolStats)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shut down HTTP server cleanly")
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shut down metrics server cleanly")
	}

	log.Info("Q&A Service stopped")
}
