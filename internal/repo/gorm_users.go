package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/bistro/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) (*models.InsertResult, error) {
	row := userRow{
		UID:      u.UID,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "uid"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyExists
	}
	u.ID = row.ID.String()
	return models.Inserted(u.ID), nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.DB.WithContext(ctx).Order("uid ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, len(rows))
	for i, row := range rows {
		users[i] = row.toModel()
	}
	return users, nil
}

func (r *GormRepo) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	var row userRow
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u := row.toModel()
	return &u, nil
}

func (r *GormRepo) PromoteUser(ctx context.Context, id string) (*models.UpdateResult, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var matched, modified int64
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userRow{}).Where("id = ?", pk).Count(&matched).Error; err != nil {
			return err
		}
		res := tx.Model(&userRow{}).
			Where("id = ? AND role <> ?", pk, models.RoleAdmin).
			Update("role", models.RoleAdmin)
		modified = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}, nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id string) (*models.DeleteResult, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res := r.DB.WithContext(ctx).Where("id = ?", pk).Delete(&userRow{})
	if res.Error != nil {
		return nil, res.Error
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
