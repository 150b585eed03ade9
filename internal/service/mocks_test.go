package service

import (
	"context"
	"io"

	"blogapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) ListAll(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) GetByID(ctx context.Context, imageID string) (*models.Image, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageRepository) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *MockImageRepository) Delete(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Counts(ctx context.Context) (models.Counts, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Counts), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, postID, fileName, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
