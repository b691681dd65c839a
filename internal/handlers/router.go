package handlers

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blumelein/blumelein-server/internal/middleware"
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Logger         *slog.Logger
	AdminAPIKey    string
	AllowedOrigins []string

	Health   *HealthHandler
	Orders   *OrderHandler
	Manage   *ManageHandler
	Payments *PaymentHandler
}

// NewRouter assembles the full route tree with common middleware. The
// /manage group sits behind the admin key; everything else is public.
func NewRouter(rc RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(rc.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rc.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.AdminKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", rc.Health.ServeHTTP)
	r.Get("/health", rc.Health.ServeHTTP)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", rc.Orders.SubmitOrder)
		r.Get("/{orderID}", rc.Orders.GetOrder)
	})

	r.Route("/manage", func(r chi.Router) {
		r.Use(middleware.AdminAuth(rc.AdminAPIKey))
		r.Get("/orders", rc.Manage.ListOrders)
		r.Get("/orders/{orderID}", rc.Manage.GetOrder)
		r.Patch("/orders/{orderID}/status", rc.Manage.UpdateOrderStatus)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/create-payment-intent", rc.Payments.CreatePaymentIntent)
		r.Post("/webhook", rc.Payments.Webhook)
	})

	return r
}
