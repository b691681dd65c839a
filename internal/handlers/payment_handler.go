package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/blumelein/blumelein-server/internal/models"
	"github.com/blumelein/blumelein-server/internal/payments"
	"github.com/blumelein/blumelein-server/internal/repository"
	"github.com/blumelein/blumelein-server/internal/service"
)

// SignatureHeader carries the processor's signature over the raw webhook body.
const SignatureHeader = "stripe-signature"

// maxWebhookBody bounds the webhook payload read.
const maxWebhookBody = 1 << 20

// PaymentHandler handles payment intent creation and processor webhooks.
type PaymentHandler struct {
	paymentService *service.PaymentService
	processor      payments.Processor
	log            *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, processor payments.Processor, log *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		processor:      processor,
		log:            log,
	}
}

// CreatePaymentIntent handles POST /payments/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	resp, err := h.paymentService.CreateIntent(r.Context(), req)
	if err != nil {
		var procErr *payments.ProcessorError
		switch {
		case errors.Is(err, models.ErrValidation):
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		case errors.Is(err, repository.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order with ID "+req.OrderID.String()+" not found", h.log)
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			WriteError(w, http.StatusBadRequest, "Order has already been paid", h.log)
		case errors.As(err, &procErr):
			WriteError(w, http.StatusBadRequest, "Stripe error: "+procErr.Message, h.log)
		default:
			h.log.Error("failed to create payment intent", "order_id", req.OrderID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("payment intent created", "order_id", req.OrderID, "payment_intent_id", resp.PaymentIntentID)
	WriteJSON(w, http.StatusCreated, resp, h.log)
}

// Webhook handles POST /payments/webhook. Verification failures are
// surfaced to the processor; order-lookup failures are not (the service
// swallows them so the processor stops retrying).
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		WriteError(w, http.StatusBadRequest, "Missing Stripe signature", h.log)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload", h.log)
		return
	}

	event, err := h.processor.VerifyEvent(payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			WriteError(w, http.StatusBadRequest, "Invalid signature", h.log)
		default:
			WriteError(w, http.StatusBadRequest, "Invalid payload", h.log)
		}
		return
	}

	if err := h.paymentService.HandleEvent(r.Context(), event); err != nil {
		h.log.Error("failed to apply webhook event", "type", event.Type, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"}, h.log)
}
