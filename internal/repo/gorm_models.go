package repo

import (
	"time"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UID      string    `gorm:"uniqueIndex;not null"`
	Name     string
	Email    string
	PhotoURL string
	Role     string `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func (u *userRow) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u userRow) toModel() models.User {
	return models.User{
		ID:       u.ID.String(),
		UID:      u.UID,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
	}
}

type menuRow struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"not null"`
	Recipe    string
	Image     string
	Category  string          `gorm:"index;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time
}

func (menuRow) TableName() string { return "menu_items" }

func (m *menuRow) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m menuRow) toModel() models.MenuItem {
	return models.MenuItem{
		ID:       m.ID.String(),
		Name:     m.Name,
		Recipe:   m.Recipe,
		Image:    m.Image,
		Category: m.Category,
		Price:    m.Price,
	}
}

type cartRow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"uniqueIndex:idx_cart_user_menu;not null"`
	MenuItemID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_menu;not null"`
	Quantity   int       `gorm:"not null;check:quantity > 0"`
	CreatedAt  time.Time
}

func (cartRow) TableName() string { return "cart_entries" }

func (c *cartRow) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type cartLineRow struct {
	ID       uuid.UUID
	Quantity int
	Name     string
	Image    string
	Price    decimal.Decimal
}

type paymentRow struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UID           string    `gorm:"index;not null"`
	Email         string
	TransactionID string
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MenuItemIDs   stringList      `gorm:"column:menu_item_ids;not null"`
	Quantities    intList         `gorm:"not null"`
	CartIDs       stringList      `gorm:"column:cart_ids;not null"`
	Status        string
	CreatedAt     time.Time `gorm:"index"`
}

func (paymentRow) TableName() string { return "payments" }

func (p paymentRow) toModel() models.Payment {
	return models.Payment{
		ID:            p.ID.String(),
		UID:           p.UID,
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Price:         p.Price,
		MenuItemIDs:   nonNil([]string(p.MenuItemIDs)),
		Quantities:    nonNil([]int(p.Quantities)),
		CartIDs:       nonNil([]string(p.CartIDs)),
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
