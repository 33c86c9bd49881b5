package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&userRow{}, &menuRow{}, &cartRow{}, &paymentRow{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormRepo) Close(context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", s, ErrInvalidID)
	}
	return id, nil
}

// updateByID applies updates to the row with the given id and reports how many
// rows matched and how many were written.
func (r *GormRepo) updateByID(ctx context.Context, model any, id uuid.UUID, updates map[string]any) (matched, modified int64, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(model).Where("id = ?", id).Count(&matched).Error; err != nil {
			return err
		}
		if matched == 0 || len(updates) == 0 {
			return nil
		}
		res := tx.Model(model).Where("id = ?", id).Updates(updates)
		modified = res.RowsAffected
		return res.Error
	})
	return matched, modified, err
}
