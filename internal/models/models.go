package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const RoleAdmin = "admin"

type User struct {
	ID       string `json:"_id"`
	UID      string `json:"uid"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type MenuItem struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Recipe   string          `json:"recipe,omitempty"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// MenuPatch carries the fields of a partial menu update; nil fields are left untouched.
type MenuPatch struct {
	Name     *string
	Recipe   *string
	Image    *string
	Category *string
	Price    *decimal.Decimal
}

func (p MenuPatch) Empty() bool {
	return p.Name == nil && p.Recipe == nil && p.Image == nil && p.Category == nil && p.Price == nil
}

// CartLine is a cart entry joined with the current state of its menu item.
type CartLine struct {
	ID       string          `json:"_id"`
	Quantity int             `json:"quantity"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
}

type Payment struct {
	ID            string          `json:"_id"`
	UID           string          `json:"uid"`
	Email         string          `json:"email,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	Price         decimal.Decimal `json:"price"`
	MenuItemIDs   []string        `json:"menuItemIds"`
	Quantities    []int           `json:"quantities"`
	CartIDs       []string        `json:"cartIds"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Summary struct {
	Users     int64           `json:"users"`
	MenuItems int64           `json:"menuItems"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CategoryStat struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
