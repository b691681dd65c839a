package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeProcessor implements Processor against the Stripe API.
type StripeProcessor struct {
	webhookSecret string
}

// NewStripeProcessor configures the Stripe client with the account API key
// and keeps the webhook signing secret for event verification.
func NewStripeProcessor(apiKey, webhookSecret string) *StripeProcessor {
	stripe.Key = apiKey
	return &StripeProcessor{webhookSecret: webhookSecret}
}

// CreateIntent opens a Stripe payment intent with automatic payment methods.
func (p *StripeProcessor) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &ProcessorError{Message: stripeErr.Msg}
		}
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// VerifyEvent validates the stripe-signature header over the raw body and
// extracts the intent metadata for payment_intent events.
func (p *StripeProcessor) VerifyEvent(payload []byte, signatureHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		if isSignatureError(err) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidPayload
	}

	out := &Event{Type: string(event.Type), Metadata: map[string]string{}}

	if strings.HasPrefix(out.Type, "payment_intent.") {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, ErrInvalidPayload
		}
		out.Metadata = pi.Metadata
	}

	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrTooOld)
}
