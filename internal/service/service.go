package service

import (
	"errors"

	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrConflict           = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
)

type Service struct {
	User  UserService
	Post  PostService
	Auth  AuthService
	Stats StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		User:  NewUserService(rep.User),
		Post:  NewPostService(rep.Post, rep.Image, storage),
		Auth:  NewAuthService(rep.User, cfg),
		Stats: NewStatsService(rep.Stats, rep.Post),
	}
}
