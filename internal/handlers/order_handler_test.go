package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/models"
	"github.com/blumelein/blumelein-server/internal/payments"
	"github.com/blumelein/blumelein-server/internal/repository"
	"github.com/blumelein/blumelein-server/internal/service"
	"github.com/blumelein/blumelein-server/pkg/logger"
)

const testAdminKey = "test-admin-key"

// fakeProcessor is shared by the handler tests in this package.
type fakeProcessor struct {
	createCalls int
	verifyCalls int
	verifyEvent *payments.Event
	verifyErr   error
}

func (f *fakeProcessor) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	f.createCalls++
	return &payments.Intent{
		ID:           "pi_test_123",
		ClientSecret: "pi_test_123_secret",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (f *fakeProcessor) VerifyEvent(payload []byte, signatureHeader string) (*payments.Event, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if f.verifyEvent != nil {
		return f.verifyEvent, nil
	}
	return &payments.Event{Type: "payment_intent.created", Metadata: map[string]string{}}, nil
}

// testServer wires a full router against an in-memory store.
type testServer struct {
	router    http.Handler
	repo      repository.OrderRepository
	processor *fakeProcessor
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := repository.NewMemoryRepository()
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	log := logger.New("error")
	proc := &fakeProcessor{}
	orderService := service.NewOrderService(repo)
	paymentService := service.NewPaymentService(repo, proc, log)

	router := NewRouter(RouterConfig{
		Logger:         log,
		AdminAPIKey:    testAdminKey,
		AllowedOrigins: []string{"*"},
		Health:         NewHealthHandler(log),
		Orders:         NewOrderHandler(orderService, log),
		Manage:         NewManageHandler(orderService, log),
		Payments:       NewPaymentHandler(paymentService, proc, log),
	})

	return &testServer{router: router, repo: repo, processor: proc}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) models.Order {
	t.Helper()
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order response: %v", err)
	}
	return order
}

func validOrderBody() models.OrderCreate {
	return models.OrderCreate{
		Items: []models.ItemCreate{
			{MainColours: []string{"red", "pink"}, Size: models.SizeMedium},
		},
		BuyerFullName:   "Jane Smith",
		BuyerEmail:      "jane.smith@example.com",
		BuyerPhone:      "+1-555-0123",
		DeliveryAddress: "123 Main St, New York, NY 10001",
	}
}

func TestOrderHandler_SubmitOrder(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid order", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/orders", validOrderBody(), nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
		}
		order := decodeOrder(t, w)
		if order.OrderID == uuid.Nil {
			t.Error("order id missing in response")
		}
		if order.PaymentStatus != models.PaymentIncomplete {
			t.Errorf("payment status = %s, want Incomplete", order.PaymentStatus)
		}
	})

	t.Run("zero items", func(t *testing.T) {
		body := validOrderBody()
		body.Items = nil
		w := ts.do(t, http.MethodPost, "/orders", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/orders", "not json", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	ts := newTestServer(t)

	created := decodeOrder(t, ts.do(t, http.MethodPost, "/orders", validOrderBody(), nil))

	t.Run("existing order", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/orders/"+created.OrderID.String(), nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		got := decodeOrder(t, w)
		if got.OrderID != created.OrderID {
			t.Errorf("order id = %s, want %s", got.OrderID, created.OrderID)
		}
		if len(got.Items) != 1 {
			t.Errorf("items = %d, want 1", len(got.Items))
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/orders/"+uuid.New().String(), nil, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/orders/not-a-uuid", nil, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
