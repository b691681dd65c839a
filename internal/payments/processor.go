// Package payments defines the contract with the external payment
// processor and its Stripe implementation.
package payments

import (
	"context"
	"errors"
)

// EventPaymentSucceeded is the only event type the service acts on; all
// other verified events are acknowledged and ignored.
const EventPaymentSucceeded = "payment_intent.succeeded"

var (
	// ErrInvalidPayload indicates the webhook body could not be parsed.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrInvalidSignature indicates the webhook signature did not verify.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// ProcessorError carries a failure message reported by the processor
// itself, suitable for passing through to the API client.
type ProcessorError struct {
	Message string
}

func (e *ProcessorError) Error() string {
	return e.Message
}

// Intent is the processor's answer to an intent creation request.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Event is a verified webhook event. Metadata carries whatever the service
// attached when the intent was created, notably the order id.
type Event struct {
	Type     string
	Metadata map[string]string
}

// Processor is the external payment collaborator.
type Processor interface {
	// CreateIntent opens a payment intent for the given amount in minor
	// currency units, attaching metadata for later webhook correlation.
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)

	// VerifyEvent checks the signature header against the raw body and
	// parses the event. Fails with ErrInvalidSignature or ErrInvalidPayload.
	VerifyEvent(payload []byte, signatureHeader string) (*Event, error)
}
