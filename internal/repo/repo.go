package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/bistro/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrAlreadyExists = errors.New("already exists")
)

// Store is the persistence contract shared by the relational and document backends.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) (*models.InsertResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	PromoteUser(ctx context.Context, id string) (*models.UpdateResult, error)
	DeleteUser(ctx context.Context, id string) (*models.DeleteResult, error)

	ListMenu(ctx context.Context, category string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.InsertResult, error)
	UpdateMenuItem(ctx context.Context, id string, patch models.MenuPatch) (*models.UpdateResult, error)
	DeleteMenuItem(ctx context.Context, id string) (*models.DeleteResult, error)

	ProjectCart(ctx context.Context, userID string) ([]models.CartLine, error)
	CountCart(ctx context.Context, userID string) (int64, error)
	AddToCart(ctx context.Context, userID, menuID string) (*models.UpdateResult, error)
	DeleteCartEntry(ctx context.Context, id, userID string) (*models.DeleteResult, error)

	CreatePayment(ctx context.Context, p *models.Payment) (*models.PaymentResult, error)
	ListPayments(ctx context.Context, uid string) ([]models.Payment, error)

	Summary(ctx context.Context) (*models.Summary, error)
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
