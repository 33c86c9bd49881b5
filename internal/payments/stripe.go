// Package payments obtains client secrets for card payments from Stripe.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrInvalidAmount = errors.New("amount must be positive")

type StripeIntents struct {
	api      *client.API
	currency string
}

func NewStripeIntents(secretKey, currency string) *StripeIntents {
	return &StripeIntents{api: client.New(secretKey, nil), currency: currency}
}

// ClientSecret creates a card payment intent for price and returns its client secret.
func (s *StripeIntents) ClientSecret(ctx context.Context, price decimal.Decimal) (string, error) {
	amount, err := MinorUnits(price)
	if err != nil {
		return "", err
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// MinorUnits converts a price to cents, rounding half away from zero.
func MinorUnits(price decimal.Decimal) (int64, error) {
	cents := price.Mul(decimal.NewFromInt(100)).Round(0)
	if !cents.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}
