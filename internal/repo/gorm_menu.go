package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/bistro/internal/models"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GormRepo) ListMenu(ctx context.Context, category string) ([]models.MenuItem, error) {
	q := r.DB.WithContext(ctx).Model(&menuRow{})
	if category != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(category)) + "%"
		q = q.Where(`LOWER(category) LIKE ? ESCAPE '\'`, pattern)
	}

	var rows []menuRow
	if err := q.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]models.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = row.toModel()
	}
	return items, nil
}

func (r *GormRepo) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	mid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row menuRow
	if err := r.DB.WithContext(ctx).Where("id = ?", mid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item := row.toModel()
	return &item, nil
}

func (r *GormRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.InsertResult, error) {
	row := menuRow{
		Name:     item.Name,
		Recipe:   item.Recipe,
		Image:    item.Image,
		Category: item.Category,
		Price:    item.Price,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	item.ID = row.ID.String()
	return models.Inserted(item.ID), nil
}

func (r *GormRepo) UpdateMenuItem(ctx context.Context, id string, patch models.MenuPatch) (*models.UpdateResult, error) {
	mid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Recipe != nil {
		updates["recipe"] = *patch.Recipe
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}

	matched, modified, err := r.updateByID(ctx, &menuRow{}, mid, updates)
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}, nil
}

func (r *GormRepo) DeleteMenuItem(ctx context.Context, id string) (*models.DeleteResult, error) {
	mid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	res := r.DB.WithContext(ctx).Where("id = ?", mid).Delete(&menuRow{})
	if res.Error != nil {
		return nil, res.Error
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
