package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePayment removes the paid cart entries owned by p.UID and records the
// payment in one transaction.
func (r *GormRepo) CreatePayment(ctx context.Context, p *models.Payment) (*models.PaymentResult, error) {
	cartIDs := make([]uuid.UUID, 0, len(p.CartIDs))
	for _, s := range p.CartIDs {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		cartIDs = append(cartIDs, id)
	}

	pid, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("payment id: %w", err)
	}
	row := paymentRow{
		ID:            pid,
		UID:           p.UID,
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Price:         p.Price,
		MenuItemIDs:   stringList(p.MenuItemIDs),
		Quantities:    intList(p.Quantities),
		CartIDs:       stringList(p.CartIDs),
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}

	var deleted int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cartIDs) > 0 {
			res := tx.Where("id IN ? AND user_id = ?", cartIDs, p.UID).Delete(&cartRow{})
			if res.Error != nil {
				return res.Error
			}
			deleted = res.RowsAffected
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	p.ID = pid.String()
	p.CreatedAt = row.CreatedAt
	return &models.PaymentResult{
		PaymentResult: *models.Inserted(p.ID),
		DeleteResult:  models.DeleteResult{Acknowledged: true, DeletedCount: deleted},
	}, nil
}

func (r *GormRepo) ListPayments(ctx context.Context, uid string) ([]models.Payment, error) {
	var rows []paymentRow
	err := r.DB.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	payments := make([]models.Payment, len(rows))
	for i, row := range rows {
		payments[i] = row.toModel()
	}
	return payments, nil
}
