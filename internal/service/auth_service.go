package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	IssueToken(user *models.User) (string, error)
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

// Claims carried by access tokens. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	email := NormalizeEmail(req.Email)

	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, "", fmt.Errorf("register %s: %w", email, ErrConflict)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("look up email: %w", err)
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  models.RoleUser,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, "", fmt.Errorf("register %s: %w", email, ErrConflict)
		}
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, NormalizeEmail(email), password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrPasswordMismatch) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("verify password: %w", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Authenticate validates the token and resolves it to a stored user.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
		}
		return nil, err
	}

	return user, nil
}
