package test

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Promote(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPublished(ctx context.Context, filter models.PostFilter) (*models.PostPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostPage), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string, viewer *models.Identity) (*models.Post, error) {
	args := m.Called(ctx, postID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, author models.Identity, req service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, author, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, caller models.Identity, postID string, req service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, caller, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, caller models.Identity, postID string) error {
	args := m.Called(ctx, caller, postID)
	return args.Error(0)
}

func (m *MockPostService) AddImage(ctx context.Context, caller models.Identity, postID string, upload service.ImageUpload) (*models.Image, error) {
	args := m.Called(ctx, caller, postID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, caller models.Identity, postID, imageID string) error {
	args := m.Called(ctx, caller, postID, imageID)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck() error {
	args := m.Called()
	return args.Error(0)
}
