package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"blogapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{
	"post_id", "author_id", "title", "content", "excerpt", "status", "tags",
	"read_time", "created_at", "updated_at", "author_name", "author_email",
}

func TestNewPostRepository(t *testing.T) {
	db, _ := setupMockDB(t)

	repo := NewPostRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.DB)
}

func TestPostRepositoryImpl_Create(t *testing.T) {
	longContent := strings.Repeat("lorem ipsum ", 120)

	tests := []struct {
		name        string
		post        *models.Post
		setupMock   func(mock sqlmock.Sqlmock)
		expectError error
		check       func(t *testing.T, post *models.Post)
	}{
		{
			name: "derives read time and excerpt before insert",
			post: &models.Post{
				PostID:   "post-1",
				AuthorID: "author-1",
				Title:    "Title",
				Content:  longContent,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(
						"post-1",
						"author-1",
						"Title",
						longContent,
						longContent[:150]+"...",
						models.StatusDraft,
						sqlmock.AnyArg(),
						2,
						sqlmock.AnyArg(),
						sqlmock.AnyArg(),
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			check: func(t *testing.T, post *models.Post) {
				assert.Equal(t, 2, post.ReadTime)
				assert.Equal(t, models.StatusDraft, post.Status)
				assert.NotNil(t, post.Tags)
				assert.False(t, post.CreatedAt.IsZero())
			},
		},
		{
			name: "keeps supplied excerpt and status",
			post: &models.Post{
				AuthorID: "author-1",
				Title:    "Title",
				Content:  "short",
				Excerpt:  "mine",
				Status:   models.StatusPublished,
				Tags:     pq.StringArray{"go"},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(
						sqlmock.AnyArg(),
						"author-1",
						"Title",
						"short",
						"mine",
						models.StatusPublished,
						sqlmock.AnyArg(),
						1,
						sqlmock.AnyArg(),
						sqlmock.AnyArg(),
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			check: func(t *testing.T, post *models.Post) {
				assert.NotEmpty(t, post.PostID)
				assert.Equal(t, "mine", post.Excerpt)
			},
		},
		{
			name: "missing author maps to ErrInvalidReference",
			post: &models.Post{AuthorID: "ghost", Title: "T", Content: "c"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			expectError: ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)
			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.post)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				require.NoError(t, err)
				tt.check(t, tt.post)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepositoryImpl_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	t.Run("populates author", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.post_id = $1`)).
			WithArgs("post-1").
			WillReturnRows(sqlmock.NewRows(postRowColumns).
				AddRow("post-1", "author-1", "Title", "Body", "Body...", models.StatusPublished,
					"{go,systems}", 1, now, now, "Ann", "ann@example.com"))

		post, err := repo.GetByID(context.Background(), "post-1")

		require.NoError(t, err)
		assert.Equal(t, "post-1", post.PostID)
		assert.Equal(t, pq.StringArray{"go", "systems"}, post.Tags)
		require.NotNil(t, post.Author)
		assert.Equal(t, models.Author{ID: "author-1", Name: "Ann", Email: "ann@example.com"}, *post.Author)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.post_id = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(context.Background(), "missing")

		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryImpl_GetByAuthorID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.post_id DESC`)).
		WithArgs("author-1").
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p2", "author-1", "Draft", "b", "b...", models.StatusDraft, "{}", 1, now, now, "Ann", "a@x.io").
			AddRow("p1", "author-1", "Pub", "b", "b...", models.StatusPublished, "{}", 1, now, now, "Ann", "a@x.io"))

	posts, err := repo.GetByAuthorID(context.Background(), "author-1")

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, models.StatusDraft, posts[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListConditions(t *testing.T) {
	tests := []struct {
		name      string
		filter    models.PostFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "published only",
			filter:    models.PostFilter{},
			wantWhere: " WHERE p.status = $1",
			wantArgs:  []any{models.StatusPublished},
		},
		{
			name:      "tag",
			filter:    models.PostFilter{Tag: "go"},
			wantWhere: " WHERE p.status = $1 AND $2 = ANY(p.tags)",
			wantArgs:  []any{models.StatusPublished, "go"},
		},
		{
			name:      "search",
			filter:    models.PostFilter{Search: "Systems"},
			wantWhere: " WHERE p.status = $1 AND (p.title ILIKE $2 OR p.content ILIKE $2)",
			wantArgs:  []any{models.StatusPublished, "%Systems%"},
		},
		{
			name:      "tag and search",
			filter:    models.PostFilter{Tag: "go", Search: "systems"},
			wantWhere: " WHERE p.status = $1 AND $2 = ANY(p.tags) AND (p.title ILIKE $3 OR p.content ILIKE $3)",
			wantArgs:  []any{models.StatusPublished, "go", "%systems%"},
		},
		{
			name:      "wildcards in search are literal",
			filter:    models.PostFilter{Search: `100%_\`},
			wantWhere: " WHERE p.status = $1 AND (p.title ILIKE $2 OR p.content ILIKE $2)",
			wantArgs:  []any{models.StatusPublished, `%100\%\_\\%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := listConditions(tt.filter)

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPostRepositoryImpl_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	filter := models.PostFilter{Tag: "go", Search: "systems", Page: 2, Limit: 10}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts p WHERE p.status = $1 AND $2 = ANY(p.tags)`)).
		WithArgs(models.StatusPublished, "go", "%systems%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.created_at DESC, p.post_id DESC LIMIT $4 OFFSET $5`)).
		WithArgs(models.StatusPublished, "go", "%systems%", 10, 10).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow("p11", "a1", "Systems in Go", "b", "b...", models.StatusPublished, "{go}", 1, now, now, "Ann", "a@x.io"))

	posts, total, err := repo.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "p11", posts[0].PostID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryImpl_List_CountError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("boom"))

	_, _, err := repo.List(context.Background(), models.PostFilter{Page: 1, Limit: 10})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryImpl_ListAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.created_at DESC, p.post_id DESC LIMIT $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	posts, err := repo.ListAll(context.Background(), 5)

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryImpl_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	content := strings.TrimSpace(strings.Repeat("word ", 201))

	t.Run("recomputes derived fields and never touches author", func(t *testing.T) {
		post := &models.Post{
			PostID:   "post-1",
			AuthorID: "author-1",
			Title:    "New",
			Content:  content,
			Status:   models.StatusPublished,
			ReadTime: 1,
		}

		mock.ExpectExec(`UPDATE posts SET`).
			WithArgs("New", content, content[:150]+"...", models.StatusPublished, sqlmock.AnyArg(), 2, sqlmock.AnyArg(), "post-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), post))
		assert.Equal(t, 2, post.ReadTime)
	})

	t.Run("missing post", func(t *testing.T) {
		mock.ExpectExec(`UPDATE posts SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &models.Post{PostID: "gone", Content: "x"})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryImpl_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE post_id = $1`)).
		WithArgs("post-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE post_id = $1`)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "post-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "gone"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
