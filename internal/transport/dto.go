package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/models"
)

type IssueTokenRequest struct {
	UID   string `json:"uid" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterUserRequest struct {
	UID      string `json:"uid" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	PhotoURL string `json:"photoURL"`
}

func (r RegisterUserRequest) ToModel() models.User {
	return models.User{UID: r.UID, Name: r.Name, Email: r.Email, PhotoURL: r.PhotoURL}
}

type CreateMenuItemRequest struct {
	Name     string           `json:"name" validate:"required"`
	Recipe   string           `json:"recipe"`
	Image    string           `json:"image"`
	Category string           `json:"category" validate:"required"`
	Price    *decimal.Decimal `json:"price" validate:"required"`
}

func (r CreateMenuItemRequest) ToModel() models.MenuItem {
	item := models.MenuItem{Name: r.Name, Recipe: r.Recipe, Image: r.Image, Category: r.Category}
	if r.Price != nil {
		item.Price = *r.Price
	}
	return item
}

type PatchMenuItemRequest struct {
	Name     *string          `json:"name"`
	Recipe   *string          `json:"recipe"`
	Image    *string          `json:"image"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
}

func (r PatchMenuItemRequest) ToPatch() models.MenuPatch {
	return models.MenuPatch{Name: r.Name, Recipe: r.Recipe, Image: r.Image, Category: r.Category, Price: r.Price}
}

// AddToCartRequest is the natural key of a cart entry. Extra fields sent by
// clients (name, image, price) are ignored; the cart always reads them from the menu.
type AddToCartRequest struct {
	MenuID string `json:"menuId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type PaymentIntentRequest struct {
	Price decimal.Decimal `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type RecordPaymentRequest struct {
	UID           string          `json:"uid" validate:"required"`
	Email         string          `json:"email" validate:"omitempty,email"`
	TransactionID string          `json:"transactionId"`
	Price         decimal.Decimal `json:"price"`
	MenuItemIDs   []string        `json:"menuItemIds" validate:"dive,required"`
	Quantities    []int           `json:"quantities" validate:"dive,gt=0"`
	CartIDs       []string        `json:"cartIds" validate:"dive,required"`
	Status        string          `json:"status"`
}

func (r RecordPaymentRequest) ToModel() models.Payment {
	return models.Payment{
		UID:           r.UID,
		Email:         r.Email,
		TransactionID: r.TransactionID,
		Price:         r.Price,
		MenuItemIDs:   r.MenuItemIDs,
		Quantities:    r.Quantities,
		CartIDs:       r.CartIDs,
		Status:        r.Status,
	}
}

type AdminResponse struct {
	Admin bool `json:"admin"`
}

type MessageResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}
