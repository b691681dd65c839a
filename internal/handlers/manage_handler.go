package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/blumelein/blumelein-server/internal/models"
	"github.com/blumelein/blumelein-server/internal/repository"
	"github.com/blumelein/blumelein-server/internal/service"
)

// ManageHandler handles the admin endpoints under /manage. Authentication
// is applied by middleware on the route group, not here.
type ManageHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewManageHandler creates a new management handler
func NewManageHandler(orderService *service.OrderService, log *slog.Logger) *ManageHandler {
	return &ManageHandler{
		orderService: orderService,
		log:          log,
	}
}

// ListOrders handles GET /manage/orders
func (h *ManageHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET /manage/orders/{orderID}
func (h *ManageHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
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

// UpdateOrderStatus handles PATCH /manage/orders/{orderID}/status
func (h *ManageHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r, h.log)
	if !ok {
		return
	}

	var req models.OrderStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order with ID "+id.String()+" not found", h.log)
		case errors.Is(err, models.ErrValidation):
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		default:
			h.log.Error("failed to update order status", "order_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to update order status", h.log)
		}
		return
	}

	h.log.Info("order status updated", "order_id", id, "order_status", order.OrderStatus)
	WriteJSON(w, http.StatusOK, order, h.log)
}
