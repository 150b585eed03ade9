package handlers

import (
	"blogapi/internal/config"
	"blogapi/internal/service"

	"github.com/go-playground/validator/v10"
)

type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService  service.AuthService
	UserService  service.UserService
	PostService  service.PostService
	StatsService service.StatsService
	DB           HealthChecker
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(services *service.Service, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:  services.Auth,
		UserService:  services.User,
		PostService:  services.Post,
		StatsService: services.Stats,
		DB:           db,
		Cfg:          cfg,
		Validate:     NewValidator(),
	}
}
