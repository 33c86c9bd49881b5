package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/bistro/internal/events"
	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/models"
)

type MenuStore interface {
	ListMenu(ctx context.Context, category string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.InsertResult, error)
	UpdateMenuItem(ctx context.Context, id string, patch models.MenuPatch) (*models.UpdateResult, error)
	DeleteMenuItem(ctx context.Context, id string) (*models.DeleteResult, error)
}

// MenuIndex is the full-text index kept next to the store.
type MenuIndex interface {
	Put(ctx context.Context, item models.MenuItem) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error)
}

type MenuService struct {
	Repo   MenuStore
	Events events.Publisher
	Index  MenuIndex
}

func (s *MenuService) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	return s.Repo.ListMenu(ctx, strings.TrimSpace(category))
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.Repo.GetMenuItem(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, item models.MenuItem) (*models.InsertResult, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if item.Name == "" {
		return nil, invalid("name is required")
	}
	if item.Category == "" {
		return nil, invalid("category is required")
	}
	if item.Price.IsNegative() {
		return nil, invalid("price cannot be negative")
	}

	res, err := s.Repo.CreateMenuItem(ctx, &item)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, item)
	publish(ctx, s.Events, events.TopicMenu, item.ID, events.New("menu_item_created", map[string]any{
		"menuId":   item.ID,
		"name":     item.Name,
		"category": item.Category,
		"price":    item.Price,
	}))
	return res, nil
}

func (s *MenuService) Update(ctx context.Context, id string, patch models.MenuPatch) (*models.UpdateResult, error) {
	if patch.Empty() {
		return nil, invalid("nothing to update")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name cannot be empty")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, invalid("category cannot be empty")
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, invalid("price cannot be negative")
	}

	res, err := s.Repo.UpdateMenuItem(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount > 0 {
		if item, err := s.Repo.GetMenuItem(ctx, id); err == nil {
			s.reindex(ctx, *item)
		}
		publish(ctx, s.Events, events.TopicMenu, id, events.New("menu_item_updated", map[string]any{"menuId": id}))
	}
	return res, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	res, err := s.Repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		if s.Index != nil {
			if err := s.Index.Remove(ctx, id); err != nil {
				logging.FromContext(ctx).Warn("menu_unindex_failed", "menu_id", id, "error", err)
			}
		}
		publish(ctx, s.Events, events.TopicMenu, id, events.New("menu_item_deleted", map[string]any{"menuId": id}))
	}
	return res, nil
}

func (s *MenuService) Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error) {
	if s.Index == nil {
		return 0, nil, ErrUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, invalid("query is required")
	}
	return s.Index.Search(ctx, query, from, size)
}

func (s *MenuService) reindex(ctx context.Context, item models.MenuItem) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("menu_index_failed", "menu_id", item.ID, "error", err)
	}
}
