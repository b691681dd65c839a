package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/models"
	"github.com/blumelein/blumelein-server/internal/repository"
	"github.com/blumelein/blumelein-server/internal/service"
)

// OrderHandler handles the public order endpoints.
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// SubmitOrder handles POST /orders
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.SubmitOrder(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
			return
		}
		h.log.Error("failed to create order", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	h.log.Info("order submitted", "order_id", order.OrderID, "items_count", len(order.Items))
	WriteJSON(w, http.StatusCreated, order, h.log)
}

// GetOrder handles GET /orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r, h.log)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order with ID "+id.String()+" not found", h.log)
			return
		}
		h.log.Error("failed to fetch order", "order_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}

// parseOrderID reads the orderID path parameter, writing a 400 on malformed
// ids.
func parseOrderID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid order ID", log)
		return uuid.Nil, false
	}
	return id, true
}
