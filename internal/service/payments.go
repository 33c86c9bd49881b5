package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/events"
	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/stats"
)

const defaultPaymentStatus = "pending"

type PaymentStore interface {
	CreatePayment(ctx context.Context, p *models.Payment) (*models.PaymentResult, error)
	ListPayments(ctx context.Context, uid string) ([]models.Payment, error)
}

type IntentCreator interface {
	ClientSecret(ctx context.Context, price decimal.Decimal) (string, error)
}

type PaymentService struct {
	Repo    PaymentStore
	Events  events.Publisher
	Intents IntentCreator
	Now     func() time.Time
}

func (s *PaymentService) CreateIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	if s.Intents == nil {
		return "", ErrUnavailable
	}
	if !price.IsPositive() {
		return "", invalid("price must be positive")
	}
	return s.Intents.ClientSecret(ctx, price)
}

// Record validates p and stores it, removing the paid cart entries in the
// same store transaction.
func (s *PaymentService) Record(ctx context.Context, p models.Payment) (*models.PaymentResult, error) {
	p.UID = strings.TrimSpace(p.UID)
	if p.UID == "" {
		return nil, invalid("uid is required")
	}
	if err := stats.CheckPairing(p.MenuItemIDs, p.Quantities); err != nil {
		return nil, invalid("%v", err)
	}
	for i, q := range p.Quantities {
		if q <= 0 {
			return nil, invalid("quantities[%d] must be positive", i)
		}
	}
	if p.Price.IsNegative() {
		return nil, invalid("price cannot be negative")
	}
	if p.Status == "" {
		p.Status = defaultPaymentStatus
	}
	p.CreatedAt = s.now()

	res, err := s.Repo.CreatePayment(ctx, &p)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicPayments, p.UID, events.New("payment_recorded", map[string]any{
		"paymentId":     p.ID,
		"uid":           p.UID,
		"price":         p.Price,
		"transactionId": p.TransactionID,
		"items":         len(p.MenuItemIDs),
	}))
	return res, nil
}

func (s *PaymentService) History(ctx context.Context, uid string) ([]models.Payment, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, invalid("uid is required")
	}
	return s.Repo.ListPayments(ctx, uid)
}

func (s *PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
