package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error)
	Promote(ctx context.Context, email string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *userService) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	user := &models.User{
		Name:  strings.TrimSpace(name),
		Email: NormalizeEmail(email),
		Role:  models.RoleAdmin,
	}

	if err := s.userRepo.CreateUser(ctx, user, password); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("create admin %s: %w", user.Email, ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Promote(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return user, nil
	}

	if err := s.userRepo.UpdateRole(ctx, user.UserID, models.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = models.RoleAdmin

	return user, nil
}
