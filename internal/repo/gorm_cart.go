package repo

import (
	"context"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) ProjectCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	var rows []cartLineRow
	err := r.DB.WithContext(ctx).
		Table("cart_entries AS c").
		Select("c.id AS id, c.quantity AS quantity, m.name AS name, m.image AS image, m.price AS price").
		Joins("JOIN menu_items AS m ON m.id = c.menu_item_id").
		Where("c.user_id = ?", userID).
		Order("c.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, len(rows))
	for i, row := range rows {
		lines[i] = models.CartLine{
			ID:       row.ID.String(),
			Quantity: row.Quantity,
			Name:     row.Name,
			Image:    row.Image,
			Price:    row.Price,
		}
	}
	return lines, nil
}

func (r *GormRepo) CountCart(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&cartRow{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// AddToCart inserts the (user, menu item) pair with quantity 1 or increments the
// existing entry in the same statement.
func (r *GormRepo) AddToCart(ctx context.Context, userID, menuID string) (*models.UpdateResult, error) {
	mid, err := parseID(menuID)
	if err != nil {
		return nil, err
	}

	row := cartRow{ID: uuid.New(), UserID: userID, MenuItemID: mid, Quantity: 1}
	var stored cartRow
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_entries.quantity + ?", 1),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND menu_item_id = ?", userID, mid).First(&stored).Error
	})
	if err != nil {
		return nil, err
	}

	if stored.ID == row.ID {
		id := stored.ID.String()
		return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *GormRepo) DeleteCartEntry(ctx context.Context, id, userID string) (*models.DeleteResult, error) {
	cid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", cid, userID).Delete(&cartRow{})
	if res.Error != nil {
		return nil, res.Error
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
