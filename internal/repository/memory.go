package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blumelein/blumelein-server/internal/models"
)

// MemoryRepository implements OrderRepository with in-process storage.
// Useful for tests and local development without a database.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]models.Order
	ready  bool
}

// NewMemoryRepository creates an uninitialized in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Init allocates the backing map.
func (r *MemoryRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[uuid.UUID]models.Order)
	r.ready = true
	return nil
}

// Close drops the backing map. Safe to call at any point.
func (r *MemoryRepository) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	r.ready = false
	return nil
}

// CreateOrder stores a copy of the order.
func (r *MemoryRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return models.Order{}, ErrNotReady
	}
	r.orders[order.OrderID] = copyOrder(order)
	return order, nil
}

// GetOrder returns the stored order or ErrOrderNotFound.
func (r *MemoryRepository) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return models.Order{}, ErrNotReady
	}
	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return copyOrder(o), nil
}

// GetAllOrders returns every order, newest first. Ties break on order id so
// the result is deterministic.
func (r *MemoryRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].OrderID.String() > out[j].OrderID.String()
	})
	return out, nil
}

// UpdateOrderPaymentStatus sets the payment status and refreshes updated_at.
func (r *MemoryRepository) UpdateOrderPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return models.Order{}, ErrNotReady
	}
	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return copyOrder(o), nil
}

// UpdateOrderStatus sets the fulfillment status and refreshes updated_at.
func (r *MemoryRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return models.Order{}, ErrNotReady
	}
	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	o.OrderStatus = status
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return copyOrder(o), nil
}

// copyOrder returns a deep copy so callers never share item slices with the
// stored value.
func copyOrder(o models.Order) models.Order {
	items := make([]models.Item, len(o.Items))
	for i, it := range o.Items {
		colours := make([]string, len(it.MainColours))
		copy(colours, it.MainColours)
		it.MainColours = colours
		items[i] = it
	}
	o.Items = items
	return o
}
