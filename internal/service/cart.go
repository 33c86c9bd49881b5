package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/bistro/internal/events"
	"github.com/Skotchmaster/bistro/internal/models"
)

type CartStore interface {
	ProjectCart(ctx context.Context, userID string) ([]models.CartLine, error)
	CountCart(ctx context.Context, userID string) (int64, error)
	AddToCart(ctx context.Context, userID, menuID string) (*models.UpdateResult, error)
	DeleteCartEntry(ctx context.Context, id, userID string) (*models.DeleteResult, error)
}

type CartService struct {
	Repo   CartStore
	Events events.Publisher
}

// Cart returns the user's entries joined with current menu data. An empty
// user id is rejected so the store never runs an unfiltered query.
func (s *CartService) Cart(ctx context.Context, userID string) ([]models.CartLine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("user id is required")
	}
	return s.Repo.ProjectCart(ctx, userID)
}

func (s *CartService) Count(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, invalid("user id is required")
	}
	return s.Repo.CountCart(ctx, userID)
}

func (s *CartService) Add(ctx context.Context, userID, menuID string) (*models.UpdateResult, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(menuID) == "" {
		return nil, invalid("userId and menuId are required")
	}
	res, err := s.Repo.AddToCart(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicCarts, userID, events.New("cart_item_added", map[string]any{
		"userId": userID,
		"menuId": menuID,
	}))
	return res, nil
}

func (s *CartService) Remove(ctx context.Context, id, userID string) (*models.DeleteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("uid is required")
	}
	res, err := s.Repo.DeleteCartEntry(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		publish(ctx, s.Events, events.TopicCarts, userID, events.New("cart_item_removed", map[string]any{
			"userId":  userID,
			"entryId": id,
		}))
	}
	return res, nil
}
