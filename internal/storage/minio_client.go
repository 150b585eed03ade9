package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"blogapi/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage interface {
	UploadImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (objectName string, url string, err error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	m := &MinIOClient{
		client:    client,
		bucket:    cfg.MinIO.BucketName,
		publicURL: strings.TrimSuffix(cfg.MinIO.PublicURL, "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.ensureBucket(ctx, cfg.MinIO.Region); err != nil {
		log.Printf("Warning: bucket %s not ready: %v", m.bucket, err)
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region})
}

// ObjectName builds the key an uploaded image is stored under.
func ObjectName(postID, fileName string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	return fmt.Sprintf("posts/%s/%d/%02d/%s%s",
		postID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)
}

func (m *MinIOClient) UploadImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	now := time.Now().UTC()
	objectName := ObjectName(postID, fileName, now)

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(objectName))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"post-id":           postID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload to minio: %w", err)
	}

	return objectName, fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}
