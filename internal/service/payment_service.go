package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/models"
	"github.com/blumelein/blumelein-server/internal/payments"
	"github.com/blumelein/blumelein-server/internal/repository"
)

// ErrOrderAlreadyPaid indicates a payment intent was requested for an order
// whose payment is already settled.
var ErrOrderAlreadyPaid = errors.New("order has already been paid")

// metadata key correlating processor events back to orders
const metadataOrderID = "order_id"

// PaymentService drives intent creation and webhook-based confirmation.
type PaymentService struct {
	repo      repository.OrderRepository
	processor payments.Processor
	log       *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(repo repository.OrderRepository, processor payments.Processor, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		processor: processor,
		log:       log,
	}
}

// CreateIntent opens a processor payment intent for an existing, unpaid
// order. The processor is never called for an order that is already paid.
func (s *PaymentService) CreateIntent(ctx context.Context, req models.PaymentIntentRequest) (models.PaymentIntentResponse, error) {
	if err := req.Validate(); err != nil {
		return models.PaymentIntentResponse{}, err
	}

	order, err := s.repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return models.PaymentIntentResponse{}, err
	}

	if order.PaymentStatus == models.PaymentCompleted {
		return models.PaymentIntentResponse{}, ErrOrderAlreadyPaid
	}

	intent, err := s.processor.CreateIntent(ctx, req.Amount, req.Currency, map[string]string{
		metadataOrderID: req.OrderID.String(),
	})
	if err != nil {
		return models.PaymentIntentResponse{}, fmt.Errorf("processor: %w", err)
	}

	return models.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}, nil
}

// HandleEvent applies a verified processor event. A succeeded payment whose
// order id is missing, malformed, or unknown is logged and dropped so the
// webhook acknowledgment still succeeds and the processor stops retrying.
func (s *PaymentService) HandleEvent(ctx context.Context, event *payments.Event) error {
	if event.Type != payments.EventPaymentSucceeded {
		s.log.Debug("ignoring webhook event", "type", event.Type)
		return nil
	}

	orderIDStr := event.Metadata[metadataOrderID]
	if orderIDStr == "" {
		s.log.Warn("payment succeeded event carries no order id")
		return nil
	}

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		s.log.Warn("invalid order id in payment metadata", "order_id", orderIDStr)
		return nil
	}

	if _, err := s.repo.UpdateOrderPaymentStatus(ctx, orderID, models.PaymentCompleted); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			s.log.Warn("order not found for payment update", "order_id", orderID)
			return nil
		}
		return fmt.Errorf("update payment status: %w", err)
	}

	s.log.Info("order payment completed", "order_id", orderID)
	return nil
}
