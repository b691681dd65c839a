package models

import (
	"fmt"

	"github.com/google/uuid"
)

// PaymentIntentRequest asks the payment processor to open an intent for an
// existing order. It is never persisted.
type PaymentIntentRequest struct {
	OrderID  uuid.UUID `json:"order_id"`
	Amount   int64     `json:"amount"`   // minor currency units (cents)
	Currency string    `json:"currency"` // three-letter ISO code, defaults to "usd"
}

// PaymentIntentResponse echoes the processor's answer back to the client.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// Validate checks structural constraints on an intent request. The empty
// currency is filled with the default rather than rejected.
func (p *PaymentIntentRequest) Validate() error {
	if p.OrderID == uuid.Nil {
		return fmt.Errorf("%w: order_id is required", ErrValidation)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive number of cents", ErrValidation)
	}
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a three-letter ISO code", ErrValidation)
	}
	return nil
}
