package service

import (
	"context"

	"github.com/Skotchmaster/bistro/internal/models"
)

type StatsStore interface {
	Summary(ctx context.Context) (*models.Summary, error)
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)
}

type StatsService struct {
	Repo StatsStore
}

func (s *StatsService) Summary(ctx context.Context) (*models.Summary, error) {
	return s.Repo.Summary(ctx)
}

// OrderStats never returns nil so the response is always a JSON array.
func (s *StatsService) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	rows, err := s.Repo.OrderStats(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.CategoryStat{}
	}
	return rows, nil
}
