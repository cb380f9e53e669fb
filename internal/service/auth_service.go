package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (int64, error)
}

type authService struct {
	u repository.UserRepository
}

func NewAuthService(u repository.UserRepository) AuthService {
	return &authService{u: u}
}

func (s *authService) Register(ctx context.Context, email, password string) (int64, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return 0, errors.New("a valid email address is required")
	}
	if len(password) < 8 {
		return 0, errors.New("password must be at least 8 characters")
	}

	_, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	count, err := s.u.Count(ctx)
	if err != nil {
		return 0, err
	}

	// The first registered user administers the credential settings.
	userID, err := s.u.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      count == 0,
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (int64, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}
