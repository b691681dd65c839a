package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Field length bounds enforced at the request boundary.
const (
	MaxCommentsLength = 500
	MaxBuyerNameLen   = 100
	MinBuyerEmailLen  = 3
	MaxBuyerEmailLen  = 254
	MaxBuyerPhoneLen  = 20
	MaxAddressLen     = 300
)

// ErrValidation is the sentinel wrapped by every request validation failure.
var ErrValidation = errors.New("validation failed")

// Item is a single bouquet request within an order. Items are owned by
// their parent order and never persisted independently.
type Item struct {
	ItemID      uuid.UUID   `json:"item_id"`
	MainColours []string    `json:"main_colours"`
	Size        BouquetSize `json:"size"`
	Comments    string      `json:"comments,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Order is a buyer's purchase request. Payment status and order status
// are independent axes: any combination is valid.
type Order struct {
	OrderID         uuid.UUID     `json:"order_id"`
	Items           []Item        `json:"items"`
	BuyerFullName   string        `json:"buyer_full_name"`
	BuyerEmail      string        `json:"buyer_email"`
	BuyerPhone      string        `json:"buyer_phone"`
	DeliveryAddress string        `json:"delivery_address"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	OrderStatus     OrderStatus   `json:"order_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ItemCreate is the request shape for a single item in an order submission.
type ItemCreate struct {
	MainColours []string    `json:"main_colours"`
	Size        BouquetSize `json:"size"`
	Comments    string      `json:"comments,omitempty"`
}

// OrderCreate is the request shape for submitting a new order.
type OrderCreate struct {
	Items           []ItemCreate `json:"items"`
	BuyerFullName   string       `json:"buyer_full_name"`
	BuyerEmail      string       `json:"buyer_email"`
	BuyerPhone      string       `json:"buyer_phone"`
	DeliveryAddress string       `json:"delivery_address"`
}

// OrderStatusUpdate is the request shape for the admin status transition.
type OrderStatusUpdate struct {
	OrderStatus OrderStatus `json:"order_status"`
}

// Validate checks structural constraints on an item creation request.
func (i ItemCreate) Validate() error {
	if len(i.MainColours) == 0 {
		return fmt.Errorf("%w: main_colours must contain at least one colour", ErrValidation)
	}
	for _, c := range i.MainColours {
		if c == "" {
			return fmt.Errorf("%w: main_colours must not contain empty values", ErrValidation)
		}
	}
	if !i.Size.Valid() {
		return fmt.Errorf("%w: size must be one of S, M, L", ErrValidation)
	}
	if len(i.Comments) > MaxCommentsLength {
		return fmt.Errorf("%w: comments must be at most %d characters", ErrValidation, MaxCommentsLength)
	}
	return nil
}

// Validate checks structural constraints on an order submission. It runs
// before any business logic; a failing request must never reach storage.
func (o OrderCreate) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for i, item := range o.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	if o.BuyerFullName == "" || len(o.BuyerFullName) > MaxBuyerNameLen {
		return fmt.Errorf("%w: buyer_full_name must be 1-%d characters", ErrValidation, MaxBuyerNameLen)
	}
	if len(o.BuyerEmail) < MinBuyerEmailLen || len(o.BuyerEmail) > MaxBuyerEmailLen {
		return fmt.Errorf("%w: buyer_email must be %d-%d characters", ErrValidation, MinBuyerEmailLen, MaxBuyerEmailLen)
	}
	if o.BuyerPhone == "" || len(o.BuyerPhone) > MaxBuyerPhoneLen {
		return fmt.Errorf("%w: buyer_phone must be 1-%d characters", ErrValidation, MaxBuyerPhoneLen)
	}
	if o.DeliveryAddress == "" || len(o.DeliveryAddress) > MaxAddressLen {
		return fmt.Errorf("%w: delivery_address must be 1-%d characters", ErrValidation, MaxAddressLen)
	}
	return nil
}

// Validate checks the requested status token.
func (u OrderStatusUpdate) Validate() error {
	if !u.OrderStatus.Valid() {
		return fmt.Errorf("%w: order_status must be one of %q, %q, %q",
			ErrValidation, OrderNotStarted, OrderInProgress, OrderCompleted)
	}
	return nil
}
