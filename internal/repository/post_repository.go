package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const postSelect = `
	SELECT p.post_id, p.author_id, p.title, p.content, p.excerpt, p.status, p.tags,
		p.read_time, p.created_at, p.updated_at,
		u.name AS author_name, u.email AS author_email
	FROM posts p
	JOIN users u ON u.user_id = p.author_id`

const postOrder = ` ORDER BY p.created_at DESC, p.post_id DESC`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

// postRow is a post joined with the author columns it is always served with.
type postRow struct {
	models.Post
	AuthorName  string `db:"author_name"`
	AuthorEmail string `db:"author_email"`
}

func (row postRow) toPost() models.Post {
	post := row.Post
	post.Author = &models.Author{
		ID:    post.AuthorID,
		Name:  row.AuthorName,
		Email: row.AuthorEmail,
	}
	return post
}

func toPosts(rows []postRow) []models.Post {
	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
	}
	return posts
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.Status == "" {
		post.Status = models.StatusDraft
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Derive()

	query := `
		INSERT INTO posts
		(post_id, author_id, title, content, excerpt, status, tags, read_time, created_at, updated_at)
		VALUES
		(:post_id, :author_id, :title, :content, :excerpt, :status, :tags, :read_time, :created_at, :updated_at)
	`

	if _, err := r.DB.NamedExecContext(ctx, query, post); err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return fmt.Errorf("create post: %w", sentinel)
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var row postRow
	if err := r.DB.GetContext(ctx, &row, postSelect+` WHERE p.post_id = $1`, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	var rows []postRow
	if err := r.DB.SelectContext(ctx, &rows, postSelect+` WHERE p.author_id = $1`+postOrder, authorID); err != nil {
		return nil, fmt.Errorf("get author posts: %w", err)
	}

	return toPosts(rows), nil
}

// List returns one page of published posts matching the filter and the total match count.
func (r *PostRepositoryImpl) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	where, args := listConditions(filter)

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts p`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := postSelect + where + postOrder +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	var rows []postRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return toPosts(rows), total, nil
}

// ListAll returns posts in every status, newest first. A limit of zero means no limit.
func (r *PostRepositoryImpl) ListAll(ctx context.Context, limit int) ([]models.Post, error) {
	query := postSelect + postOrder
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	var rows []postRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}

	return toPosts(rows), nil
}

// Update rewrites the mutable fields of a post. author_id is never part of the statement.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	post.Derive()

	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			excerpt = :excerpt,
			status = :status,
			tags = :tags,
			read_time = :read_time,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}

// listConditions builds the WHERE clause for public listing:
// published AND tag AND (title OR content contains search).
func listConditions(filter models.PostFilter) (string, []any) {
	conds := []string{"p.status = $1"}
	args := []any{models.StatusPublished}

	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(p.tags)", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", n, n))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
