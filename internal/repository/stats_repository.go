package repository

import (
	"context"
	"fmt"

	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (models.Counts, error) {
	var counts models.Counts

	err := r.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			COUNT(*) AS total_posts,
			COUNT(*) FILTER (WHERE status = 'published') AS published_posts,
			COUNT(*) FILTER (WHERE status = 'draft') AS draft_posts
		FROM posts
	`)
	if err != nil {
		return models.Counts{}, fmt.Errorf("count users and posts: %w", err)
	}

	return counts, nil
}
