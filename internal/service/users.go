package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/bistro/internal/events"
	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/repo"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (*models.InsertResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	PromoteUser(ctx context.Context, id string) (*models.UpdateResult, error)
	DeleteUser(ctx context.Context, id string) (*models.DeleteResult, error)
}

type UserService struct {
	Repo   UserStore
	Events events.Publisher
}

// Register stores u unless a user with the same uid exists, in which case the
// returned error wraps repo.ErrAlreadyExists. Roles cannot be self-assigned.
func (s *UserService) Register(ctx context.Context, u models.User) (*models.InsertResult, error) {
	u.UID = strings.TrimSpace(u.UID)
	if u.UID == "" {
		return nil, invalid("uid is required")
	}
	u.Role = ""

	res, err := s.Repo.CreateUser(ctx, &u)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicUsers, u.UID, events.New("user_registered", map[string]any{
		"userId": u.ID,
		"uid":    u.UID,
		"email":  u.Email,
	}))
	return res, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.Repo.GetUserByUID(ctx, uid)
}

// IsAdmin treats an unknown uid as a non-admin.
func (s *UserService) IsAdmin(ctx context.Context, uid string) (bool, error) {
	u, err := s.Repo.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *UserService) Promote(ctx context.Context, id string) (*models.UpdateResult, error) {
	res, err := s.Repo.PromoteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.ModifiedCount > 0 {
		publish(ctx, s.Events, events.TopicUsers, id, events.New("user_promoted", map[string]any{"userId": id}))
	}
	return res, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	res, err := s.Repo.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		publish(ctx, s.Events, events.TopicUsers, id, events.New("user_deleted", map[string]any{"userId": id}))
	}
	return res, nil
}
