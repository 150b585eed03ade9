package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogapi/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `user_id, name, email, password_hash, role, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, name, email, password_hash, role, created_at, updated_at)
		VALUES (:user_id, :name, :email, :password_hash, :role, :created_at, :updated_at)
	`

	if _, err = r.db.NamedExecContext(ctx, query, user); err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return fmt.Errorf("create user %s: %w", user.Email, sentinel)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	return user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, user_id DESC`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, role string) error {
	query := `UPDATE users SET role = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, role, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return nil
}
