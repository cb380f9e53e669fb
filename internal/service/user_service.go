package service

import (
	"context"
	"fmt"

	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{u: u}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, exists, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user info")
	}
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) IsAdmin(ctx context.Context, id int64) (bool, error) {
	user, exists, err := s.u.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return exists && user.IsAdmin, nil
}
