package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/middleware"
	"github.com/blumelein/blumelein-server/internal/models"
)

func adminHeaders() map[string]string {
	return map[string]string{middleware.AdminKeyHeader: testAdminKey}
}

func TestManageEndpoints_RequireAdminKey(t *testing.T) {
	ts := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/manage/orders"},
		{http.MethodGet, "/manage/orders/" + uuid.New().String()},
		{http.MethodPatch, "/manage/orders/" + uuid.New().String() + "/status"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path+" without key", func(t *testing.T) {
			w := ts.do(t, p.method, p.path, nil, nil)
			if w.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", w.Code)
			}
		})
		t.Run(p.method+" "+p.path+" with wrong key", func(t *testing.T) {
			w := ts.do(t, p.method, p.path, nil, map[string]string{middleware.AdminKeyHeader: "nope"})
			if w.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", w.Code)
			}
		})
	}
}

func TestManageHandler_ListOrders(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 2; i++ {
		if w := ts.do(t, http.MethodPost, "/orders", validOrderBody(), nil); w.Code != http.StatusCreated {
			t.Fatalf("seed order failed: %d", w.Code)
		}
	}

	w := ts.do(t, http.MethodGet, "/manage/orders", nil, adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var orders []models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("got %d orders, want 2", len(orders))
	}
}

func TestManageHandler_GetOrder(t *testing.T) {
	ts := newTestServer(t)

	created := decodeOrder(t, ts.do(t, http.MethodPost, "/orders", validOrderBody(), nil))

	w := ts.do(t, http.MethodGet, "/manage/orders/"+created.OrderID.String(), nil, adminHeaders())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decodeOrder(t, w); got.OrderID != created.OrderID {
		t.Errorf("order id = %s, want %s", got.OrderID, created.OrderID)
	}

	w = ts.do(t, http.MethodGet, "/manage/orders/"+uuid.New().String(), nil, adminHeaders())
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestManageHandler_UpdateOrderStatus(t *testing.T) {
	ts := newTestServer(t)

	created := decodeOrder(t, ts.do(t, http.MethodPost, "/orders", validOrderBody(), nil))
	statusPath := "/manage/orders/" + created.OrderID.String() + "/status"

	t.Run("valid transition", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, statusPath,
			models.OrderStatusUpdate{OrderStatus: models.OrderInProgress}, adminHeaders())
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
		}
		if got := decodeOrder(t, w); got.OrderStatus != models.OrderInProgress {
			t.Errorf("order status = %s, want In Progress", got.OrderStatus)
		}
	})

	t.Run("backward transition allowed", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, statusPath,
			models.OrderStatusUpdate{OrderStatus: models.OrderNotStarted}, adminHeaders())
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("unknown status token", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, statusPath, `{"order_status":"Shipped"}`, adminHeaders())
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, "/manage/orders/"+uuid.New().String()+"/status",
			models.OrderStatusUpdate{OrderStatus: models.OrderCompleted}, adminHeaders())
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
