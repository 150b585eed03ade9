package repository

import (
	"context"
	"errors"

	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrPasswordMismatch = errors.New("password does not match")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, userID, role string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error)
	ListAll(ctx context.Context, limit int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (models.Counts, error)
}

type Repository struct {
	User  UserRepository
	Post  PostRepository
	Image ImageRepository
	Stats StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Post:  NewPostRepository(db),
		Image: NewImageRepository(db),
		Stats: NewStatsRepository(db),
	}
}

// constraintError translates PostgreSQL constraint violations into repository sentinels.
func constraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case "23505":
		return ErrAlreadyExists
	case "23503":
		return ErrInvalidReference
	}
	return nil
}
