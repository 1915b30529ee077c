package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rukshanl/product-order-api/internal/config"
	"github.com/rukshanl/product-order-api/internal/handlers"
	"github.com/rukshanl/product-order-api/internal/middleware"
	"github.com/rukshanl/product-order-api/internal/repository"
	"github.com/rukshanl/product-order-api/internal/service"
	"github.com/rukshanl/product-order-api/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting product ordering api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Connect to MongoDB. One client for the process lifetime; the driver
	// handles pooling and reconnects. DefaultDocumentM keeps loosely typed
	// characteristic values map-shaped when documents are read back.
	mongoOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongo.Connect(ctx, mongoOpts)
	if err == nil {
		err = mongoClient.Ping(ctx, readpref.Primary())
	}
	cancel()
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	log.Info("connected to mongodb", "database", cfg.Mongo.Database)

	db := mongoClient.Database(cfg.Mongo.Database)

	// Initialize repository and enforce id uniqueness at the store
	orderRepo := repository.NewMongoOrderRepository(db)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = orderRepo.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		log.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Initialize services
	orderService := service.NewOrderService(orderRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	}, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration: a single allowed origin. PATCH and DELETE are
	// declared per the TMF conformance profile but have no routes.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// TMF product ordering routes
	r.Route(handlers.BasePath, func(r chi.Router) {
		r.Post("/productOrder", orderHandler.CreateOrder)
		r.Get("/productOrder", orderHandler.ListOrders)
		r.Get("/productOrder/{id}", orderHandler.GetOrder)
	})

	// Catch-all for undefined routes; method mismatches fall through to the
	// same handler so any unmatched request gets the route-not-found body
	r.NotFound(handlers.NotFoundHandler(log))
	r.MethodNotAllowed(handlers.NotFoundHandler(log))

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect from mongodb", "error", err)
	}

	log.Info("server stopped gracefully")
}
