package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	RecentPosts  = 5

	// MaxPage keeps (page-1)*limit within int32 for every allowed limit.
	MaxPage = math.MaxInt32 / MaxLimit
)

// PostInput is the client-controlled part of a post. Author is never part of it.
type PostInput struct {
	Title   string
	Content string
	Excerpt string
	Status  string
	Tags    []string
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

type PostService interface {
	ListPublished(ctx context.Context, filter models.PostFilter) (*models.PostPage, error)
	GetPost(ctx context.Context, postID string, viewer *models.Identity) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, author models.Identity, req PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, caller models.Identity, postID string, req PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, caller models.Identity, postID string) error
	AddImage(ctx context.Context, caller models.Identity, postID string, upload ImageUpload) (*models.Image, error)
	DeleteImage(ctx context.Context, caller models.Identity, postID, imageID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
	}
}

// NormalizeFilter applies paging defaults and bounds.
func NormalizeFilter(filter models.PostFilter) models.PostFilter {
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.Page > MaxPage {
		filter.Page = MaxPage
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	return filter
}

func (p *postService) ListPublished(ctx context.Context, filter models.PostFilter) (*models.PostPage, error) {
	filter = NormalizeFilter(filter)

	posts, total, err := p.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.PostPage{
		Posts:       posts,
		Total:       total,
		TotalPages:  (total + filter.Limit - 1) / filter.Limit,
		CurrentPage: filter.Page,
	}, nil
}

func (p *postService) GetPost(ctx context.Context, postID string, viewer *models.Identity) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// hidden drafts look exactly like missing posts
	if !CanView(post, viewer) {
		return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return p.postRepo.GetByAuthorID(ctx, authorID)
}

func (p *postService) ListAll(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.ListAll(ctx, 0)
}

func (p *postService) CreatePost(ctx context.Context, author models.Identity, req PostInput) (*models.Post, error) {
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	post := &models.Post{
		AuthorID: author.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Status:   status,
		Tags:     models.NormalizeTags(req.Tags),
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, fmt.Errorf("%w: author %s does not exist", ErrUnauthenticated, author.UserID)
		}
		return nil, err
	}

	return p.postRepo.GetByID(ctx, post.PostID)
}

// authorize loads the post and checks the caller may change it.
// A missing post is reported before ownership.
func (p *postService) authorize(ctx context.Context, caller models.Identity, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !CanModify(post, caller) {
		return nil, fmt.Errorf("post %s: %w", postID, ErrForbidden)
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, caller models.Identity, postID string, req PostInput) (*models.Post, error) {
	post, err := p.authorize(ctx, caller, postID)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	if req.Status != "" {
		post.Status = req.Status
	}
	if req.Tags != nil {
		post.Tags = models.NormalizeTags(req.Tags)
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, caller models.Identity, postID string) error {
	if _, err := p.authorize(ctx, caller, postID); err != nil {
		return err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	// image rows go with the post through the foreign key cascade
	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	for _, image := range images {
		if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
			log.Printf("Warning: orphaned object %s: %v", image.ObjectName, err)
		}
	}

	return nil
}

func (p *postService) AddImage(ctx context.Context, caller models.Identity, postID string, upload ImageUpload) (*models.Image, error) {
	if _, err := p.authorize(ctx, caller, postID); err != nil {
		return nil, err
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, upload.FileName, upload.ContentType, upload.File, upload.Size)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	image := &models.Image{
		PostID:     postID,
		ObjectName: objectName,
		ImageURL:   imageURL,
		FileName:   upload.FileName,
		FileSize:   upload.Size,
		MimeType:   upload.ContentType,
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		if delErr := p.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Warning: orphaned object %s: %v", objectName, delErr)
		}
		return nil, fmt.Errorf("save image: %w", err)
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, caller models.Identity, postID, imageID string) error {
	if _, err := p.authorize(ctx, caller, postID); err != nil {
		return err
	}

	image, err := p.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.PostID != postID {
		return fmt.Errorf("image %s of post %s: %w", imageID, postID, ErrNotFound)
	}

	if err := p.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Warning: orphaned object %s: %v", image.ObjectName, err)
	}

	return nil
}
