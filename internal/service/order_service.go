package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/models"
	"github.com/blumelein/blumelein-server/internal/repository"
)

// ErrUpdateNotApplied indicates a status write-back did not come back from
// storage, which should never happen for an order that was just looked up.
var ErrUpdateNotApplied = errors.New("order status update was not applied")

// OrderService handles order intake and status management.
type OrderService struct {
	repo repository.OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// SubmitOrder validates the request, mints identifiers and timestamps, and
// persists the new order. Nothing is persisted when validation fails.
func (s *OrderService) SubmitOrder(ctx context.Context, req models.OrderCreate) (models.Order, error) {
	if err := req.Validate(); err != nil {
		return models.Order{}, err
	}

	now := time.Now().UTC()

	items := make([]models.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = models.Item{
			ItemID:      uuid.New(),
			MainColours: it.MainColours,
			Size:        it.Size,
			Comments:    it.Comments,
			CreatedAt:   now,
		}
	}

	order := models.Order{
		OrderID:         uuid.New(),
		Items:           items,
		BuyerFullName:   req.BuyerFullName,
		BuyerEmail:      req.BuyerEmail,
		BuyerPhone:      req.BuyerPhone,
		DeliveryAddress: req.DeliveryAddress,
		PaymentStatus:   models.PaymentIncomplete,
		OrderStatus:     models.OrderNotStarted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

// GetOrder returns the stored order. Absence passes through as
// repository.ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ListOrders returns all orders newest-first for the admin view.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.GetAllOrders(ctx)
}

// UpdateOrderStatus transitions the fulfillment status unconditionally: any
// status may follow any other, including a re-set of the current value.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown order status %q", models.ErrValidation, status)
	}

	if _, err := s.repo.GetOrder(ctx, id); err != nil {
		return models.Order{}, err
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			// looked up a moment ago, gone now
			return models.Order{}, ErrUpdateNotApplied
		}
		return models.Order{}, fmt.Errorf("update order status: %w", err)
	}
	if updated.OrderStatus != status {
		return models.Order{}, ErrUpdateNotApplied
	}
	return updated, nil
}
