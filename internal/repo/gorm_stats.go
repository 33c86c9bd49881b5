package repo

import (
	"context"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/stats"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const statsBatchSize = 500

func (r *GormRepo) Summary(ctx context.Context) (*models.Summary, error) {
	db := r.DB.WithContext(ctx)
	var s models.Summary
	if err := db.Model(&userRow{}).Count(&s.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&menuRow{}).Count(&s.MenuItems).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&paymentRow{}).Count(&s.Orders).Error; err != nil {
		return nil, err
	}

	revenue, err := r.revenue(db)
	if err != nil {
		return nil, err
	}
	s.Revenue = revenue
	return &s, nil
}

// revenue sums payment prices. Only postgres keeps numeric columns exact; SQLite
// stores them as REAL, so elsewhere the sum is done in decimal arithmetic.
func (r *GormRepo) revenue(db *gorm.DB) (decimal.Decimal, error) {
	if r.DB.Dialector.Name() == "postgres" {
		var agg struct {
			Revenue decimal.Decimal
		}
		if err := db.Model(&paymentRow{}).Select("COALESCE(SUM(price), 0) AS revenue").Scan(&agg).Error; err != nil {
			return decimal.Zero, err
		}
		return agg.Revenue, nil
	}

	total := decimal.Zero
	var batch []paymentRow
	res := db.Select("id", "price").FindInBatches(&batch, statsBatchSize, func(*gorm.DB, int) error {
		for _, p := range batch {
			total = total.Add(p.Price)
		}
		return nil
	})
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	return total, nil
}

// OrderStats walks payments in primary key order and resolves their menu items
// batch by batch, so memory stays bounded by the menu size.
func (r *GormRepo) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	l := logging.FromContext(ctx)
	breakdown := stats.NewBreakdown()
	catalog := map[uuid.UUID]stats.Item{}
	looked := map[uuid.UUID]bool{}

	lookup := func(id string) (stats.Item, bool) {
		mid, err := uuid.Parse(id)
		if err != nil {
			return stats.Item{}, false
		}
		item, ok := catalog[mid]
		return item, ok
	}

	var batch []paymentRow
	res := r.DB.WithContext(ctx).
		Select("id", "menu_item_ids", "quantities").
		FindInBatches(&batch, statsBatchSize, func(tx *gorm.DB, _ int) error {
			var missing []uuid.UUID
			for _, p := range batch {
				for _, s := range p.MenuItemIDs {
					mid, err := uuid.Parse(s)
					if err != nil || looked[mid] {
						continue
					}
					looked[mid] = true
					missing = append(missing, mid)
				}
			}
			if len(missing) > 0 {
				var items []menuRow
				if err := r.DB.WithContext(ctx).Select("id", "category", "price").Where("id IN ?", missing).Find(&items).Error; err != nil {
					return err
				}
				for _, it := range items {
					catalog[it.ID] = stats.Item{Category: it.Category, Price: it.Price}
				}
			}

			for _, p := range batch {
				if err := breakdown.Add(p.MenuItemIDs, p.Quantities, lookup); err != nil {
					l.Warn("order_stats_payment_skipped", "payment_id", p.ID.String(), "error", err)
				}
			}
			return nil
		})
	if res.Error != nil {
		return nil, res.Error
	}
	return breakdown.Rows(), nil
}
