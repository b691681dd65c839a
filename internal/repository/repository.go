package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/config"
	"github.com/blumelein/blumelein-server/internal/models"
)

var (
	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotReady indicates an operation was attempted before Init completed.
	ErrNotReady = errors.New("repository not initialized")
)

// OrderRepository is the only contract through which the rest of the
// service touches durable storage. Implementations must make each status
// update a single atomic write; concurrent updates to the same order race
// at last-write-wins granularity.
type OrderRepository interface {
	// CreateOrder persists a fully-formed order, ids and timestamps included.
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)

	// GetOrder returns the stored order exactly as last written, or
	// ErrOrderNotFound.
	GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error)

	// GetAllOrders returns every stored order, newest first by creation time.
	GetAllOrders(ctx context.Context) ([]models.Order, error)

	// UpdateOrderPaymentStatus atomically sets the payment status and
	// refreshes the updated timestamp. Returns ErrOrderNotFound if the order
	// does not exist; never creates one.
	UpdateOrderPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (models.Order, error)

	// UpdateOrderStatus is the same contract for fulfillment status.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (models.Order, error)

	// Init acquires the backing connection. Operations invoked before Init
	// completes fail with ErrNotReady.
	Init(ctx context.Context) error

	// Close releases all resources. Safe to call after a partial Init.
	Close(ctx context.Context) error
}

// New selects the repository implementation from configuration.
func New(cfg config.DatabaseConfig) (OrderRepository, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryRepository(), nil
	case "postgres":
		return NewPostgresRepository(cfg.PostgresDSN), nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
