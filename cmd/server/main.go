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

	"github.com/blumelein/blumelein-server/internal/config"
	"github.com/blumelein/blumelein-server/internal/handlers"
	"github.com/blumelein/blumelein-server/internal/payments"
	"github.com/blumelein/blumelein-server/internal/repository"
	"github.com/blumelein/blumelein-server/internal/service"
	"github.com/blumelein/blumelein-server/pkg/logger"
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

	log.Info("starting blumelein server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"database_type", cfg.Database.Type,
		"stripe_configured", cfg.Stripe.APIKey != "",
		"log_level", cfg.LogLevel,
	)

	// Initialize the order store
	repo, err := repository.New(cfg.Database)
	if err != nil {
		log.Error("failed to create order repository", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		// Close is safe after a partial Init
		_ = repo.Close(ctx)
		log.Error("failed to initialize order repository", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Error("failed to close order repository", "error", err)
		}
	}()

	// Initialize the payment processor
	processor := payments.NewStripeProcessor(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)

	// Initialize services
	orderService := service.NewOrderService(repo)
	paymentService := service.NewPaymentService(repo, processor, log)

	// Assemble the router
	r := handlers.NewRouter(handlers.RouterConfig{
		Logger:         log,
		AdminAPIKey:    cfg.Admin.APIKey,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Health:         handlers.NewHealthHandler(log),
		Orders:         handlers.NewOrderHandler(orderService, log),
		Manage:         handlers.NewManageHandler(orderService, log),
		Payments:       handlers.NewPaymentHandler(paymentService, processor, log),
	})

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

	// Attempt graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
