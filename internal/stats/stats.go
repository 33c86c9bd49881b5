// Package stats accumulates per-category order statistics from payment records.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/shopspring/decimal"
)

var ErrLengthMismatch = errors.New("menu item ids and quantities differ in length")

// Item is what a payment line needs to know about the menu item it references.
type Item struct {
	Category string
	Price    decimal.Decimal
}

// CheckPairing reports whether every menu item id has a quantity at the same index.
func CheckPairing(menuIDs []string, quantities []int) error {
	if len(menuIDs) != len(quantities) {
		return fmt.Errorf("%w: %d ids, %d quantities", ErrLengthMismatch, len(menuIDs), len(quantities))
	}
	return nil
}

type Breakdown struct {
	byCategory map[string]*models.CategoryStat
}

func NewBreakdown() *Breakdown {
	return &Breakdown{byCategory: map[string]*models.CategoryStat{}}
}

// Add pairs menuIDs[i] with quantities[i]. Ids the lookup cannot resolve are skipped.
// A record with mismatched lengths is rejected whole.
func (b *Breakdown) Add(menuIDs []string, quantities []int, lookup func(id string) (Item, bool)) error {
	if err := CheckPairing(menuIDs, quantities); err != nil {
		return err
	}
	for i, id := range menuIDs {
		item, ok := lookup(id)
		if !ok {
			continue
		}
		row, ok := b.byCategory[item.Category]
		if !ok {
			row = &models.CategoryStat{Category: item.Category, Revenue: decimal.Zero}
			b.byCategory[item.Category] = row
		}
		q := int64(quantities[i])
		row.Quantity += q
		row.Revenue = row.Revenue.Add(item.Price.Mul(decimal.NewFromInt(q)))
	}
	return nil
}

// Rows returns the accumulated categories sorted by name.
func (b *Breakdown) Rows() []models.CategoryStat {
	out := make([]models.CategoryStat, 0, len(b.byCategory))
	for _, row := range b.byCategory {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
