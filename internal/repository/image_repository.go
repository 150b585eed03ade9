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
)

const imageColumns = `image_id, post_id, object_name, image_url, file_name, file_size, mime_type, created_at`

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (image_id, post_id, object_name, image_url, file_name, file_size, mime_type, created_at)
		VALUES (:image_id, :post_id, :object_name, :image_url, :file_name, :file_size, :mime_type, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NamedExecContext(ctx, query, image); err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return fmt.Errorf("create image: %w", sentinel)
		}
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByID(ctx context.Context, imageID string) (*models.Image, error) {
	var image models.Image
	err := r.db.GetContext(ctx, &image, `SELECT `+imageColumns+` FROM images WHERE image_id = $1`, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("image %s: %w", imageID, ErrNotFound)
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	images := []models.Image{}
	query := `SELECT ` + imageColumns + ` FROM images WHERE post_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &images, query, postID); err != nil {
		return nil, fmt.Errorf("get post images: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE image_id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("image %s: %w", imageID, ErrNotFound)
	}

	return nil
}
